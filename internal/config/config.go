// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads dictcc2stardict configuration from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "DICTCC2STARDICT"

// ErrInvalidConfig indicates that the configuration could not be read or did
// not validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the dictcc2stardict configuration.
type Config struct {
	// Dictionary metadata written to the .ifo file. Empty values are
	// generated from the language pair.
	Bookname    string `mapstructure:"bookname" validate:"singleline"`
	Author      string `mapstructure:"author" validate:"singleline"`
	Email       string `mapstructure:"email" validate:"omitempty,email"`
	Website     string `mapstructure:"website" validate:"omitempty,url"`
	Description string `mapstructure:"description" validate:"singleline"`

	// OutputDir is the directory dictionaries are written to.
	OutputDir string `mapstructure:"output_dir" validate:"required"`

	// DictZip compresses the .dict file.
	DictZip bool `mapstructure:"dictzip"`
}

var keys = []string{
	"bookname",
	"author",
	"email",
	"website",
	"description",
	"output_dir",
	"dictzip",
}

// Load reads the configuration. If configFile is empty then config.yaml is
// looked up in the user configuration directory and is optional. Environment
// variables such as DICTCC2STARDICT_AUTHOR override file values.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "dictcc2stardict"))
		}
	}

	v.SetDefault("output_dir", ".")
	v.SetDefault("dictzip", true)

	v.SetEnvPrefix(EnvPrefix)
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s_%s: %w", EnvPrefix, strings.ToUpper(k), err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: reading config file: %w", ErrInvalidConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
