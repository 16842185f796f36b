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

package errorchain_test

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/reqkit/internal/x/errorchain"
)

var (
	errTest1 = errors.New("test error 1")
	errTest2 = errors.New("test error 2")
)

func TestErrorChainNew(t *testing.T) {
	t.Parallel()

	// WHEN
	err := errorchain.New(errTest1)

	// THEN
	require.Error(t, err)
	require.ErrorIs(t, err, errTest1)
	assert.Equal(t, errTest1.Error(), err.Error())
	assert.Equal(t, errTest1.Error(), err.String())
}

func TestErrorChainNewWithMessage(t *testing.T) {
	t.Parallel()

	// WHEN
	err := errorchain.NewWithMessage(errTest1, "foobar")

	// THEN
	require.Error(t, err)
	require.ErrorIs(t, err, errTest1)
	assert.Equal(t, errTest1.Error()+": foobar", err.Error())
	assert.Equal(t, errTest1.Error()+": foobar", err.String())
	assert.Equal(t, errTest1, err.Head())
}

func TestErrorChainNewWithFormattedMessage(t *testing.T) {
	t.Parallel()

	// WHEN
	err := errorchain.NewWithMessagef(errTest1, "%s%s", "foo", "bar")

	// THEN
	require.Error(t, err)
	require.ErrorIs(t, err, errTest1)
	assert.Equal(t, errTest1.Error()+": foobar", err.Error())
}

func TestCreateErrorWithCause(t *testing.T) {
	t.Parallel()

	// WHEN
	err := errorchain.NewWithMessage(errTest1, "foo").CausedBy(errTest2)

	// THEN
	require.Error(t, err)
	require.ErrorIs(t, err, errTest1)
	require.ErrorIs(t, err, errTest2)
	assert.Equal(t, errTest1.Error()+": foo: "+errTest2.Error(), err.Error())
	assert.Equal(t, errTest1.Error()+": foo", err.String())
	require.ErrorIs(t, err.Unwrap(), errTest2)
	assert.NotErrorIs(t, err.Unwrap(), errTest1)
}

func TestCausedByNilIsIgnored(t *testing.T) {
	t.Parallel()

	// WHEN
	err := errorchain.New(errTest1).CausedBy(nil)

	// THEN
	assert.NoError(t, err.Unwrap())
}

func TestErrorChainJSONMarshal(t *testing.T) {
	t.Parallel()

	// GIVEN
	testErr := errorchain.NewWithMessage(errTest1, "foo").CausedBy(errTest2)

	// WHEN
	res, err := testErr.MarshalJSON()

	// THEN
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"test error 1","message":"foo"}`, string(res))
}

func TestErrorChainXMLMarshal(t *testing.T) {
	t.Parallel()

	// GIVEN
	testErr := errorchain.NewWithMessage(errTest1, "foo").CausedBy(errTest2)

	// WHEN
	res, err := xml.Marshal(testErr)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, `<error><code>test error 1</code><message>foo</message></error>`, string(res))
}
