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

package coerce

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type age int

type color struct{ name string }

func (c *color) UnmarshalText(text []byte) error {
	c.name = "color:" + string(text)

	return nil
}

func TestToString(t *testing.T) {
	t.Parallel()

	val, ok := To[string]("foo bar")

	require.True(t, ok)
	assert.Equal(t, "foo bar", val)
}

func TestToNumbers(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc  string
		run func(t *testing.T)
	}{
		{
			uc: "int",
			run: func(t *testing.T) {
				t.Helper()

				val, ok := To[int]("-42")
				require.True(t, ok)
				assert.Equal(t, -42, val)
			},
		},
		{
			uc: "int8 overflow",
			run: func(t *testing.T) {
				t.Helper()

				_, ok := To[int8]("300")
				assert.False(t, ok)
			},
		},
		{
			uc: "uint rejects negative",
			run: func(t *testing.T) {
				t.Helper()

				_, ok := To[uint]("-1")
				assert.False(t, ok)
			},
		},
		{
			uc: "float64",
			run: func(t *testing.T) {
				t.Helper()

				val, ok := To[float64]("3.25")
				require.True(t, ok)
				assert.InDelta(t, 3.25, val, 0.0001)
			},
		},
		{
			uc: "named integer type",
			run: func(t *testing.T) {
				t.Helper()

				val, ok := To[age]("33")
				require.True(t, ok)
				assert.Equal(t, age(33), val)
			},
		},
		{
			uc: "malformed",
			run: func(t *testing.T) {
				t.Helper()

				val, ok := To[int]("12abc")
				assert.False(t, ok)
				assert.Zero(t, val)
			},
		},
		{
			uc: "empty string is not a number",
			run: func(t *testing.T) {
				t.Helper()

				_, ok := To[int]("")
				assert.False(t, ok)
			},
		},
	} {
		t.Run(tc.uc, tc.run)
	}
}

func TestToBool(t *testing.T) {
	t.Parallel()

	val, ok := To[bool]("true")
	require.True(t, ok)
	assert.True(t, val)

	_, ok = To[bool]("yes please")
	assert.False(t, ok)
}

func TestToDurationAndTime(t *testing.T) {
	t.Parallel()

	dur, ok := To[time.Duration]("1m30s")
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, dur)

	ts, ok := To[time.Time]("2024-01-02T03:04:05Z")
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	_, ok = To[time.Time]("yesterday")
	assert.False(t, ok)
}

func TestToTextUnmarshaler(t *testing.T) {
	t.Parallel()

	val, ok := To[color]("red")
	require.True(t, ok)
	assert.Equal(t, "color:red", val.name)
}

func TestToPointer(t *testing.T) {
	t.Parallel()

	val, ok := To[*int]("7")
	require.True(t, ok)
	require.NotNil(t, val)
	assert.Equal(t, 7, *val)

	_, ok = To[*int]("seven")
	assert.False(t, ok)
}

func TestToFallback(t *testing.T) {
	t.Parallel()

	ip, ok := To[net.IP]("10.0.0.1")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", ip.String())

	list, ok := To[[]int]("1,2,3")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, list)
}

func TestFromAbsent(t *testing.T) {
	t.Parallel()

	_, ok := From[string]("ignored", false)
	assert.False(t, ok)

	val, ok := From[string]("", true)
	require.True(t, ok)
	assert.Empty(t, val)
}
