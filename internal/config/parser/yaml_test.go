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

package parser

import (
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKoanfFromYaml(t *testing.T) {
	t.Setenv("YAMLTEST_HOST", "example.com")

	for _, tc := range []struct {
		uc     string
		config string
		assert func(t *testing.T, err error, konf *koanf.Koanf)
	}{
		{
			uc: "valid content with substitution",
			config: `
host: ${YAMLTEST_HOST}
port: ${YAMLTEST_PORT:-8080}
nested:
  - name: foo
`,
			assert: func(t *testing.T, err error, konf *koanf.Koanf) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "example.com", konf.Get("host"))
				assert.Equal(t, 8080, konf.Get("port"))
				assert.Equal(t, []any{map[string]any{"name": "foo"}}, konf.Get("nested"))
			},
		},
		{
			uc:     "invalid content",
			config: "foobar",
			assert: func(t *testing.T, err error, _ *koanf.Koanf) {
				t.Helper()

				require.ErrorIs(t, err, ErrConfiguration)
				assert.Contains(t, err.Error(), "failed to load")
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			fileName := writeConfig(t, tc.config)

			// WHEN
			konf, err := koanfFromYaml(fileName)

			// THEN
			tc.assert(t, err, konf)
		})
	}
}
