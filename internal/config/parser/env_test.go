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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKoanfFromEnv(t *testing.T) {
	// GIVEN
	t.Setenv("ENVTEST_SOME_0_STRING__KEY", "first val")
	t.Setenv("ENVTEST_SOME_0_INT__KEY", "10")
	t.Setenv("ENVTEST_SOME_2_INT__KEY", "11")
	t.Setenv("ENVTEST_LIST_1", "bar")
	t.Setenv("ENVTEST_LIST_0", "foo")
	t.Setenv("ENVTEST_A_SIMPLE_KEY", "simple")
	t.Setenv("ENVTEST_FLAG", "true")
	t.Setenv("OTHER_KEY", "ignored")

	// WHEN
	konf, err := koanfFromEnv("ENVTEST_")

	// THEN
	require.NoError(t, err)

	assert.Equal(t, []any{"foo", "bar"}, konf.Get("list"))
	assert.Equal(t, "simple", konf.Get("a.simple.key"))
	assert.Equal(t, true, konf.Get("flag"))
	assert.False(t, konf.Exists("other"))

	some, ok := konf.Get("some").([]any)
	require.True(t, ok)
	require.Len(t, some, 3)
	assert.Equal(t, map[string]any{"string_key": "first val", "int_key": 10}, some[0])
	assert.Nil(t, some[1])
	assert.Equal(t, map[string]any{"int_key": 11}, some[2])
}

func TestEnvKeyToPath(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc  string
		key string
		exp []string
	}{
		{uc: "single element", key: "FOO", exp: []string{"foo"}},
		{uc: "nested elements", key: "FOO_BAR", exp: []string{"foo", "bar"}},
		{uc: "escaped underscore", key: "FOO__BAR_BAZ", exp: []string{"foo_bar", "baz"}},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.exp, envKeyToPath(tc.key))
		})
	}
}
