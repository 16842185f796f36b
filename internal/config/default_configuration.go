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

package config

import (
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/rs/zerolog"
)

const (
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 2 * time.Minute

	defaultPort = 8080

	defaultFormMaxMemory = 32 * bytesize.MB
	defaultJSONMaxSize   = 10 * bytesize.MB

	defaultNotesTTL      = time.Hour
	defaultNotesCapacity = 1000
)

func defaultConfig() *Configuration {
	return &Configuration{
		Serve: ServeConfig{
			Port: defaultPort,
			Timeout: Timeout{
				Read:  defaultReadTimeout,
				Write: defaultWriteTimeout,
				Idle:  defaultIdleTimeout,
			},
			BufferLimit: BufferLimit{
				Read: 4 * bytesize.KB,
			},
		},
		Log: LoggingConfig{
			Format: LogTextFormat,
			Level:  zerolog.ErrorLevel,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "http",
		},
		Body: BodyConfig{
			FormMaxMemory: defaultFormMaxMemory,
			JSONMaxSize:   defaultJSONMaxSize,
		},
		Notes: NotesConfig{
			TTL:      defaultNotesTTL,
			Capacity: defaultNotesCapacity,
		},
		Files: FilesConfig{
			Dir: ".",
		},
	}
}
