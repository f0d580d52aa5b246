/*
Copyright 2025 Bankview Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kdiomande/bankview"
	"github.com/kdiomande/bankview/config"
	"github.com/kdiomande/bankview/internal/request"
	"github.com/kdiomande/bankview/internal/store"
)

// Bankview represents the CLI application, encapsulating the root Cobra command.
type Bankview struct {
	cmd *cobra.Command // Root command for the CLI application
}

// appInstance holds the session and its collaborators, wired up in preRun
// and shared by every subcommand.
type appInstance struct {
	session *bankview.Session
	store   *store.Store
	cnf     *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec) // Log the recovered panic
		os.Exit(1)        // Exit the program with an error status
	}
}

// preRun loads configuration and assembles the session before any command
// runs: durable store, transport client, orchestrator, and a restore of any
// session persisted by a previous invocation.
func preRun(app *appInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("bankview.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cnf.Storage.DataDir, 0o700); err != nil {
			return err
		}

		st, err := store.Open(cnf.StorePath())
		if err != nil {
			return err
		}

		client := request.New(cnf.Api.BaseUrl, time.Duration(cnf.Api.TimeoutSeconds)*time.Second, st)
		client.OnSessionExpired(func(loginRoute string) {
			fmt.Fprintln(os.Stderr, "session expired, run 'bankview login' to continue")
		})

		session := bankview.NewSession(client, st)
		session.OnNavigate(func(route string) {
			logrus.WithField("route", route).Debug("navigate")
		})
		session.Restore(cmd.Context())

		app.session = session
		app.store = st
		app.cnf = cnf
		return nil
	}
}

// NewCLI initializes the Bankview CLI with the root command and attaches all subcommands.
func NewCLI() *Bankview {
	var app appInstance

	var rootCmd = &cobra.Command{
		Use:               "bankview",
		Short:             "bankview is a terminal client for the banking dashboard API",
		PersistentPreRunE: preRun(&app),
	}

	rootCmd.AddCommand(loginCommand(&app))
	rootCmd.AddCommand(registerCommand(&app))
	rootCmd.AddCommand(logoutCommand(&app))
	rootCmd.AddCommand(whoamiCommand(&app))
	rootCmd.AddCommand(accountCommands(&app))
	rootCmd.AddCommand(depositCommand(&app))
	rootCmd.AddCommand(transferCommands(&app))
	rootCmd.AddCommand(transferListCommand(&app))
	rootCmd.AddCommand(profileCommands(&app))
	rootCmd.AddCommand(adminCommands(&app))

	return &Bankview{cmd: rootCmd}
}

// executeCLI runs the root command and handles any execution errors.
func (w Bankview) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
