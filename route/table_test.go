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

package route

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/reqkit/errorsx"
	"github.com/dadrus/reqkit/exchange"
	"github.com/dadrus/reqkit/workload"
)

func noop(*exchange.Request) (workload.Workload, error) { return workload.End(), nil }

func TestTableRegister(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc     string
		setup  func(t *testing.T, tbl *Table)
		method string
		path   string
		assert func(t *testing.T, err error, tbl *Table)
	}{
		{
			uc:     "first registration",
			method: http.MethodGet,
			path:   "/x",
			assert: func(t *testing.T, err error, tbl *Table) {
				t.Helper()

				require.NoError(t, err)

				entry, ok := tbl.Lookup(http.MethodGet, "/x")
				require.True(t, ok)
				assert.Equal(t, "GET /x", entry.Key())
			},
		},
		{
			uc: "same pattern different method",
			setup: func(t *testing.T, tbl *Table) {
				t.Helper()

				require.NoError(t, tbl.Get("/x", noop, Policy{}))
			},
			method: http.MethodPost,
			path:   "/x",
			assert: func(t *testing.T, err error, tbl *Table) {
				t.Helper()

				require.NoError(t, err)
				assert.Len(t, tbl.Entries(), 2)
			},
		},
		{
			uc: "duplicate",
			setup: func(t *testing.T, tbl *Table) {
				t.Helper()

				require.NoError(t, tbl.Get("/x", noop, Policy{}))
			},
			method: "get",
			path:   "/x",
			assert: func(t *testing.T, err error, tbl *Table) {
				t.Helper()

				require.ErrorIs(t, err, errorsx.ErrDuplicateRoute)
				require.ErrorIs(t, err, errorsx.ErrServer)
				assert.Contains(t, err.Error(), "GET /x")
				assert.Len(t, tbl.Entries(), 1)
			},
		},
		{
			uc:     "invalid method",
			method: "GE T",
			path:   "/x",
			assert: func(t *testing.T, err error, _ *Table) {
				t.Helper()

				require.ErrorIs(t, err, errorsx.ErrInternal)
			},
		},
		{
			uc:     "invalid pattern",
			method: http.MethodGet,
			path:   "x",
			assert: func(t *testing.T, err error, _ *Table) {
				t.Helper()

				require.ErrorIs(t, err, errorsx.ErrInternal)
			},
		},
		{
			uc: "sealed table",
			setup: func(t *testing.T, tbl *Table) {
				t.Helper()

				tbl.Seal()
			},
			method: http.MethodGet,
			path:   "/x",
			assert: func(t *testing.T, err error, tbl *Table) {
				t.Helper()

				require.ErrorIs(t, err, errorsx.ErrInternal)
				assert.True(t, tbl.Sealed())
				assert.Empty(t, tbl.Entries())
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			tbl := NewTable()
			if tc.setup != nil {
				tc.setup(t, tbl)
			}

			// WHEN
			err := tbl.Register(tc.method, tc.path, noop, Policy{})

			// THEN
			tc.assert(t, err, tbl)
		})
	}
}

func TestTableRegisterNilHandler(t *testing.T) {
	t.Parallel()

	err := NewTable().Register(http.MethodGet, "/x", nil, Policy{})

	require.ErrorIs(t, err, errorsx.ErrInternal)
}

func TestTableConvenienceMethods(t *testing.T) {
	t.Parallel()

	// GIVEN
	tbl := NewTable()

	// WHEN
	require.NoError(t, tbl.Get("/a", noop, Policy{}))
	require.NoError(t, tbl.Post("/a", noop, Policy{}))
	require.NoError(t, tbl.Put("/a", noop, Policy{}))
	require.NoError(t, tbl.Patch("/a", noop, Policy{}))
	require.NoError(t, tbl.Delete("/a", noop, Policy{}))
	tbl.MustRegister(http.MethodHead, "/b", noop, Policy{})

	// THEN
	var keys []string
	for _, entry := range tbl.Entries() {
		keys = append(keys, entry.Key())
	}

	assert.Equal(t, []string{"GET /a", "POST /a", "PUT /a", "PATCH /a", "DELETE /a", "HEAD /b"}, keys)
	assert.Panics(t, func() { tbl.MustRegister(http.MethodHead, "/b", noop, Policy{}) })

	_, ok := tbl.Lookup(http.MethodOptions, "/a")
	assert.False(t, ok)
}
