package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kdiomande/bankview"
)

func loginCommand(app *appInstance) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "authenticate against the backend and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Login(cmd.Context(), email, password); err != nil {
				return err
			}

			user := app.session.User()
			fmt.Printf("logged in as %s (%s)\n", user.FullName(), user.Email)
			if app.session.IsAdmin() {
				fmt.Println("admin session: use 'bankview admin' commands")
				return nil
			}

			accounts := app.session.Accounts()
			if len(accounts) == 0 {
				fmt.Println("no accounts yet: open one with 'bankview accounts new'")
			} else {
				fmt.Printf("%d account(s) available: select one with 'bankview accounts select'\n", len(accounts))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func registerCommand(app *appInstance) *cobra.Command {
	var data bankview.RegisterData

	cmd := &cobra.Command{
		Use:   "register",
		Short: "create a new user (does not log in)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Register(cmd.Context(), data); err != nil {
				return err
			}
			fmt.Println("registration successful, log in with 'bankview login'")
			return nil
		},
	}
	cmd.Flags().StringVar(&data.Email, "email", "", "email address")
	cmd.Flags().StringVar(&data.Password, "password", "", "password (min 8 characters)")
	cmd.Flags().StringVar(&data.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&data.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&data.PhoneNumber, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")

	return cmd
}

func logoutCommand(app *appInstance) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "end the session and clear local credentials",
		Run: func(cmd *cobra.Command, args []string) {
			app.session.Logout(cmd.Context())
			fmt.Println("logged out")
		},
	}
}

func whoamiCommand(app *appInstance) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "show the current session user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.session.User()
			if user == nil {
				return fmt.Errorf("not logged in")
			}
			fmt.Printf("%s <%s>\n", user.FullName(), user.Email)
			for _, role := range user.Roles {
				fmt.Printf("  role: %s\n", role)
			}
			if selected, ok := app.session.SelectedAccount(); ok {
				fmt.Printf("  selected account: %s\n", selected.MaskedNumber())
			}
			return nil
		},
	}
}
