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

package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/reqkit/errorsx"
)

type clock interface {
	Now() string
}

type fixedClock struct{ now string }

func (c fixedClock) Now() string { return c.now }

type user struct{ name string }

func TestRegistry(t *testing.T) {
	t.Parallel()

	errFactory := errors.New("factory failed")

	// GIVEN
	reg := NewRegistry()
	Provide[clock](reg, fixedClock{now: "noon"})
	Provide(reg, 42)
	ProvideFunc(reg, func(req *http.Request) (*user, error) {
		if name := req.Header.Get("X-User"); len(name) != 0 {
			return &user{name: name}, nil
		}

		return nil, errFactory
	})

	for _, tc := range []struct {
		uc     string
		header string
		assert func(t *testing.T, req *http.Request)
	}{
		{
			uc: "interface typed service",
			assert: func(t *testing.T, req *http.Request) {
				t.Helper()

				clk, err := Get[clock](reg, req)
				require.NoError(t, err)
				assert.Equal(t, "noon", clk.Now())
			},
		},
		{
			uc: "value typed service",
			assert: func(t *testing.T, req *http.Request) {
				t.Helper()

				val, err := Get[int](reg, req)
				require.NoError(t, err)
				assert.Equal(t, 42, val)
			},
		},
		{
			uc:     "request scoped service",
			header: "jane",
			assert: func(t *testing.T, req *http.Request) {
				t.Helper()

				usr, err := Get[*user](reg, req)
				require.NoError(t, err)
				assert.Equal(t, "jane", usr.name)
			},
		},
		{
			uc: "failing factory",
			assert: func(t *testing.T, req *http.Request) {
				t.Helper()

				_, err := Get[*user](reg, req)
				require.ErrorIs(t, err, errFactory)
			},
		},
		{
			uc: "missing service",
			assert: func(t *testing.T, req *http.Request) {
				t.Helper()

				_, err := Get[string](reg, req)
				require.ErrorIs(t, err, errorsx.ErrMissingDependency)
				require.ErrorIs(t, err, errorsx.ErrServer)
				assert.Contains(t, err.Error(), "string")
			},
		},
		{
			uc: "concrete type is not the interface type",
			assert: func(t *testing.T, req *http.Request) {
				t.Helper()

				_, err := Get[fixedClock](reg, req)
				require.ErrorIs(t, err, errorsx.ErrMissingDependency)
			},
		},
		{
			uc: "no locator",
			assert: func(t *testing.T, req *http.Request) {
				t.Helper()

				_, err := Get[int](nil, req)
				require.ErrorIs(t, err, errorsx.ErrMissingDependency)
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if len(tc.header) != 0 {
				req.Header.Set("X-User", tc.header)
			}

			tc.assert(t, req)
		})
	}
}
