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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_BASE_URL        = "http://localhost:8001/api"
	DEFAULT_TIMEOUT_SECONDS = 10
)

var ConfigStore atomic.Value

type ApiConfig struct {
	BaseUrl        string `json:"base_url" envconfig:"BANKVIEW_API_BASE_URL"`
	TimeoutSeconds int    `json:"timeout_seconds" envconfig:"BANKVIEW_API_TIMEOUT_SECONDS"`
}

type StorageConfig struct {
	DataDir string `json:"data_dir" envconfig:"BANKVIEW_DATA_DIR"`
}

type Notification struct {
	Webhook struct {
		Url     string            `json:"url"`
		Headers map[string]string `json:"headers"`
	} `json:"webhook"`
}

type Configuration struct {
	ProjectName  string        `json:"project_name" envconfig:"BANKVIEW_PROJECT_NAME"`
	Api          ApiConfig     `json:"api"`
	Storage      StorageConfig `json:"storage"`
	Notification Notification  `json:"notification"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("bankview", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called bankview.json with your config")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		cnf.ProjectName = "Bankview"
	}

	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Api.BaseUrl = strings.TrimSpace(cnf.Api.BaseUrl)
	cnf.Storage.DataDir = strings.TrimSpace(cnf.Storage.DataDir)

	if cnf.Api.BaseUrl == "" {
		cnf.Api.BaseUrl = DEFAULT_BASE_URL
		log.Printf("Warning: API base url not specified in config. Setting default: %s", DEFAULT_BASE_URL)
	}
	cnf.Api.BaseUrl = strings.TrimSuffix(cnf.Api.BaseUrl, "/")

	if cnf.Api.TimeoutSeconds <= 0 {
		cnf.Api.TimeoutSeconds = DEFAULT_TIMEOUT_SECONDS
	}

	if cnf.Storage.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("storage data dir not set and home directory unavailable")
		}
		cnf.Storage.DataDir = filepath.Join(home, ".bankview")
	}

	return nil
}

// StorePath returns the location of the durable local store inside DataDir.
func (cnf *Configuration) StorePath() string {
	return filepath.Join(cnf.Storage.DataDir, "bankview.db")
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
