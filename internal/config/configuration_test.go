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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfiguration(t *testing.T) {
	for _, tc := range []struct {
		uc     string
		config string
		env    map[string]string
		assert func(t *testing.T, err error, conf *Configuration)
	}{
		{
			uc: "defaults only",
			assert: func(t *testing.T, err error, conf *Configuration) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, ":8080", conf.Serve.Address())
				assert.Equal(t, 5*time.Second, conf.Serve.Timeout.Read)
				assert.Equal(t, LogTextFormat, conf.Log.Format)
				assert.Equal(t, zerolog.ErrorLevel, conf.Log.Level)
				assert.False(t, conf.Development)
				assert.True(t, conf.Metrics.Enabled)
				assert.Equal(t, "/metrics", conf.Metrics.Path)
				assert.Equal(t, "http", conf.Metrics.Namespace)
				assert.Equal(t, 32*bytesize.MB, conf.Body.FormMaxMemory)
				assert.Equal(t, time.Hour, conf.Notes.TTL)
				assert.Nil(t, conf.Serve.CORS)
			},
		},
		{
			uc: "file and environment",
			config: `
serve:
  host: 127.0.0.1
  port: 9090
  timeout:
    read: 1s
  cors:
    allowed_origins:
      - https://example.com
    max_age: 60
log:
  format: gelf
  level: debug
development: true
body:
  json_max_size: 1KB
auth:
  tokens:
    - token: ${CONFIGTEST_TOKEN}
      subject: alice
      policies: [ "notes:write" ]
`,
			env: map[string]string{
				"CONFIGTEST_TOKEN":                 "secret",
				"REQKITCFG_SERVE_PORT":             "9191",
				"REQKITCFG_BODY_FORM__MAX__MEMORY": "2048",
				"REQKITCFG_METRICS_ENABLED":        "false",
			},
			assert: func(t *testing.T, err error, conf *Configuration) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "127.0.0.1:9191", conf.Serve.Address())
				assert.Equal(t, time.Second, conf.Serve.Timeout.Read)
				assert.Equal(t, 10*time.Second, conf.Serve.Timeout.Write)
				require.NotNil(t, conf.Serve.CORS)
				assert.Equal(t, []string{"https://example.com"}, conf.Serve.CORS.AllowedOrigins)
				assert.Equal(t, 60, conf.Serve.CORS.MaxAge)
				assert.Equal(t, LogGelfFormat, conf.Log.Format)
				assert.Equal(t, zerolog.DebugLevel, conf.Log.Level)
				assert.True(t, conf.Development)
				assert.False(t, conf.Metrics.Enabled)
				assert.Equal(t, bytesize.KB, conf.Body.JSONMaxSize)
				assert.Equal(t, bytesize.ByteSize(2048), conf.Body.FormMaxMemory)
				require.Len(t, conf.Auth.Tokens, 1)
				assert.Equal(t, TokenConfig{Token: "secret", Subject: "alice", Policies: []string{"notes:write"}},
					conf.Auth.Tokens[0])
			},
		},
		{
			uc: "invalid port",
			config: `
serve:
  port: 70000
`,
			assert: func(t *testing.T, err error, _ *Configuration) {
				t.Helper()

				require.ErrorIs(t, err, ErrConfiguration)
				assert.Contains(t, err.Error(), "invalid configuration")
			},
		},
		{
			uc: "custom error codes",
			config: `
serve:
  respond:
    verbose: true
    with:
      client_error: 422
      internal_error: 503
`,
			assert: func(t *testing.T, err error, conf *Configuration) {
				t.Helper()

				require.NoError(t, err)
				assert.True(t, conf.Serve.Respond.Verbose)
				assert.Equal(t, ErrorCodes{ClientError: 422, InternalError: 503}, conf.Serve.Respond.With)
			},
		},
		{
			uc: "client error code out of range",
			config: `
serve:
  respond:
    with:
      client_error: 503
`,
			assert: func(t *testing.T, err error, _ *Configuration) {
				t.Helper()

				require.ErrorIs(t, err, ErrConfiguration)
				assert.Contains(t, err.Error(), "'client_error' must be less than 500")
			},
		},
		{
			uc: "token without subject",
			config: `
auth:
  tokens:
    - token: foo
`,
			assert: func(t *testing.T, err error, _ *Configuration) {
				t.Helper()

				require.ErrorIs(t, err, ErrConfiguration)
				assert.Contains(t, err.Error(), "'subject' is a required field")
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			for key, val := range tc.env {
				t.Setenv(key, val)
			}

			var configFile string

			if len(tc.config) != 0 {
				configFile = filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(configFile, []byte(tc.config), 0o600))
			}

			// WHEN
			conf, err := NewConfiguration(DefaultEnvPrefix, configFile)

			// THEN
			tc.assert(t, err, conf)
		})
	}
}
