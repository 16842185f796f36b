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

package errorsx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/reqkit/internal/x/errorchain"
)

func TestDeclaredErrorFamilies(t *testing.T) {
	t.Parallel()

	errCause := errors.New("cause")

	for _, tc := range []struct {
		uc     string
		err    error
		kind   *Kind
		family error
		expStr string
	}{
		{
			uc:     "missing required field",
			err:    MissingRequiredField("id"),
			kind:   ErrMissingRequiredField,
			family: ErrClientInput,
			expStr: "MissingRequiredFieldException: required field 'id' is missing or malformed",
		},
		{
			uc:     "missing required form",
			err:    MissingRequiredForm(errCause),
			kind:   ErrMissingRequiredForm,
			family: ErrClientInput,
			expStr: "MissingRequiredFormException: request does not carry a form",
		},
		{
			uc:     "missing required form field",
			err:    MissingRequiredFormField("name"),
			kind:   ErrMissingRequiredFormField,
			family: ErrClientInput,
			expStr: "MissingRequiredFormFieldException: required form field 'name' is missing or malformed",
		},
		{
			uc:     "missing required form file",
			err:    MissingRequiredFormFile("avatar"),
			kind:   ErrMissingRequiredFormFile,
			family: ErrClientInput,
			expStr: "MissingRequiredFormFileException: required form file 'avatar' is missing",
		},
		{
			uc:     "missing required json",
			err:    MissingRequiredJSON(nil),
			kind:   ErrMissingRequiredJSON,
			family: ErrClientInput,
			expStr: "MissingRequiredJsonException: request does not carry a JSON document",
		},
		{
			uc:     "missing required json field",
			err:    MissingRequiredJSONField("a.c", errCause),
			kind:   ErrMissingRequiredJSONField,
			family: ErrClientInput,
			expStr: "MissingRequiredJsonFieldException: required JSON property 'a.c' is missing or malformed",
		},
		{
			uc:     "missing dependency",
			err:    MissingDependency("*notes.Store"),
			kind:   ErrMissingDependency,
			family: ErrServer,
			expStr: "MissingDependencyException: no service registered for *notes.Store",
		},
		{
			uc:     "duplicate route",
			err:    DuplicateRoute("GET", "/x"),
			kind:   ErrDuplicateRoute,
			family: ErrServer,
			expStr: "DuplicateRouteException: route GET /x is already registered",
		},
		{
			uc:     "internal",
			err:    Internal("broken"),
			kind:   ErrInternal,
			family: ErrServer,
			expStr: "InternalConsistencyException: broken",
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// THEN
			require.ErrorIs(t, tc.err, tc.kind)
			require.ErrorIs(t, tc.err, tc.family)
			assert.True(t, IsDeclared(tc.err))

			kind, ok := KindOf(tc.err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.expStr, Describe(tc.err))
		})
	}
}

func TestFamiliesAreDisjoint(t *testing.T) {
	t.Parallel()

	assert.NotErrorIs(t, MissingRequiredField("x"), ErrServer)
	assert.NotErrorIs(t, DuplicateRoute("GET", "/"), ErrClientInput)
	assert.NotErrorIs(t, MissingRequiredField("x"), ErrMissingRequiredFormField)
}

func TestDescribeUndeclaredError(t *testing.T) {
	t.Parallel()

	// GIVEN
	errTest := errors.New("boom")

	// THEN
	assert.False(t, IsDeclared(errTest))
	assert.Equal(t, "boom", Describe(errTest))
	assert.Equal(t, "boom: reason", Describe(errorchain.NewWithMessage(errTest, "reason")))

	_, ok := KindOf(errTest)
	assert.False(t, ok)
}

func TestDescribeWrappedDeclaredError(t *testing.T) {
	t.Parallel()

	// GIVEN
	err := errors.Join(MissingRequiredFormField("name"))

	// THEN
	assert.Equal(t, "MissingRequiredFormFieldException: required form field 'name' is missing or malformed",
		Describe(err))
}
