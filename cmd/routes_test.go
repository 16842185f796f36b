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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/reqkit/cmd/flags"
)

func TestRoutesCommand(t *testing.T) {
	for _, tc := range []struct {
		uc     string
		config string
		assert func(t *testing.T, err error, out string)
	}{
		{
			uc: "without cors",
			assert: func(t *testing.T, err error, out string) {
				t.Helper()

				require.NoError(t, err)

				lines := strings.Split(strings.TrimSpace(out), "\n")
				require.Len(t, lines, 11)
				assert.Regexp(t, `^METHOD\s+PATTERN\s+AUTH\s+CORS\s+HOSTS\s+METADATA$`, lines[0])
				assert.Regexp(t, `^GET\s+/health\s+anonymous\s+disabled\s*$`, lines[1])
				assert.Regexp(t, `^DELETE\s+/notes/\{id\}\s+required notes:write\s+disabled\s*$`, lines[7])
				assert.Regexp(t, `^GET\s+/whoami\s+anonymous\s+disabled\s+feature=whoami$`, lines[10])
			},
		},
		{
			uc: "with cors",
			config: `
serve:
  cors:
    allowed_origins: [ "*" ]
`,
			assert: func(t *testing.T, err error, out string) {
				t.Helper()

				require.NoError(t, err)
				assert.Regexp(t, `GET\s+/notes/\{id\}\s+anonymous\s+default`, out)
			},
		},
		{
			uc:     "invalid configuration",
			config: "serve: { port: -1 }",
			assert: func(t *testing.T, err error, _ string) {
				t.Helper()

				require.Error(t, err)
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			cmd := newRoutesCmd()
			out := &bytes.Buffer{}

			cmd.SetOut(out)
			cmd.SetErr(out)

			args := []string{"--" + flags.EnvironmentConfigPrefix, "REQKITROUTESTEST_"}

			if len(tc.config) != 0 {
				file := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(file, []byte(tc.config), 0o600))

				args = append(args, "-c", file)
			}

			cmd.SetArgs(args)

			// WHEN
			err := cmd.Execute()

			// THEN
			tc.assert(t, err, out.String())
		})
	}
}
