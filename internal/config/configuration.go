// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
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
//
// SPDX-License-Identifier: Apache-2.0

// Package config holds the configuration of the reqkit server.
package config

import (
	"github.com/dadrus/reqkit/internal/config/parser"
	"github.com/dadrus/reqkit/internal/validation"
)

const DefaultEnvPrefix = "REQKITCFG_"

var ErrConfiguration = parser.ErrConfiguration

type Configuration struct {
	Serve       ServeConfig   `koanf:"serve"`
	Log         LoggingConfig `koanf:"log"`
	Development bool          `koanf:"development"`
	Metrics     MetricsConfig `koanf:"metrics"`
	Body        BodyConfig    `koanf:"body"`
	Auth        AuthConfig    `koanf:"auth"`
	Notes       NotesConfig   `koanf:"notes"`
	Files       FilesConfig   `koanf:"files"`
}

// NewConfiguration loads the configuration from the given file, if any, and from
// environment variables starting with envPrefix. Values not set there keep their
// defaults.
func NewConfiguration(envPrefix, configFile string) (*Configuration, error) {
	result := defaultConfig()

	err := parser.New(
		parser.WithDecodeHookFunc(logLevelDecodeHookFunc),
		parser.WithDecodeHookFunc(logFormatDecodeHookFunc),
		parser.WithDecodeHookFunc(byteSizeDecodeHookFunc),
		parser.WithConfigFile(configFile),
		parser.WithDefaultConfigFilename("reqkit.yaml"),
		parser.WithConfigLookupDir("."),
		parser.WithConfigLookupDir("/etc/reqkit"),
		parser.WithEnvPrefix(envPrefix),
		parser.WithConfigValidator(validation.ValidateStruct),
	).Load(result)
	if err != nil {
		return nil, err
	}

	return result, nil
}
