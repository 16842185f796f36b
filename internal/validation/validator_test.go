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

package validation

import (
	"reflect"
	"strings"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evenValidator struct{}

func (evenValidator) Tag() string { return "even" }

func (evenValidator) Validate(fl validator.FieldLevel) bool { return fl.Field().Int()%2 == 0 }

func (evenValidator) AlwaysValidate() bool { return false }

type evenTranslator struct{}

func (evenTranslator) Tag() string { return "even" }

func (evenTranslator) MessageTemplate() string { return "{0} must be even" }

func (evenTranslator) Translate(ut ut.Translator, fe validator.FieldError) string {
	t, _ := ut.T("even", fe.Field())

	return t
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	type Nested struct {
		Value string `json:"value" validate:"required"`
	}

	type Config struct {
		Name    string        `json:"name"    validate:"required"`
		Timeout time.Duration `mapstructure:"timeout" validate:"gt=1s"`
		Nested  Nested        `json:"nested"`
	}

	for _, tc := range []struct {
		uc     string
		value  Config
		assert func(t *testing.T, err error)
	}{
		{
			uc:    "valid",
			value: Config{Name: "foo", Timeout: 2 * time.Second, Nested: Nested{Value: "bar"}},
			assert: func(t *testing.T, err error) {
				t.Helper()

				require.NoError(t, err)
			},
		},
		{
			uc:    "missing required fields",
			value: Config{Timeout: 2 * time.Second},
			assert: func(t *testing.T, err error) {
				t.Helper()

				require.Error(t, err)
				assert.Contains(t, err.Error(), "'name' is a required field")
				assert.Contains(t, err.Error(), "'value' is a required field")

				var verrs validator.ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.Len(t, verrs, 2)
			},
		},
		{
			uc:    "duration too small",
			value: Config{Name: "foo", Timeout: time.Second, Nested: Nested{Value: "bar"}},
			assert: func(t *testing.T, err error) {
				t.Helper()

				require.Error(t, err)
				assert.Equal(t, "'timeout' must be greater than 1s", err.Error())
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			// WHEN
			err := ValidateStruct(tc.value)

			// THEN
			tc.assert(t, err)
		})
	}
}

func TestValidatorWithOptions(t *testing.T) {
	t.Parallel()

	// GIVEN
	type Value struct {
		Count int `validate:"even" custom:"amount"`
	}

	v, err := NewValidator(
		WithTagValidator(evenValidator{}),
		WithErrorTranslator(evenTranslator{}),
		WithTagNameSupplier(TagNameSupplierFunc(func(sf reflect.StructField) string {
			return strings.ToUpper(sf.Tag.Get("custom"))
		})),
	)
	require.NoError(t, err)

	// WHEN
	okErr := v.ValidateStruct(Value{Count: 2})
	failErr := v.ValidateStruct(&Value{Count: 3})

	// THEN
	require.NoError(t, okErr)
	require.Error(t, failErr)
	assert.Equal(t, "AMOUNT must be even", failErr.Error())
}

func TestIsValidatable(t *testing.T) {
	t.Parallel()

	type Value struct{}

	assert.True(t, IsValidatable(reflect.TypeOf(Value{})))
	assert.True(t, IsValidatable(reflect.TypeOf(&Value{})))
	assert.False(t, IsValidatable(reflect.TypeOf(1)))
	assert.False(t, IsValidatable(reflect.TypeOf([]Value{})))
}

func TestDefaultValidatorSlugTag(t *testing.T) {
	t.Parallel()

	type Value struct {
		Tags []string `json:"tags" validate:"dive,slug"`
	}

	for _, tc := range []struct {
		uc     string
		tags   []string
		errMsg string
	}{
		{uc: "single word", tags: []string{"work"}},
		{uc: "words and digits", tags: []string{"release-notes", "q3"}},
		{uc: "upper case", tags: []string{"Work"}, errMsg: "must consist of lower case letters"},
		{uc: "double dash", tags: []string{"ok", "a--b"}, errMsg: "must consist of lower case letters"},
		{uc: "trailing dash", tags: []string{"a-"}, errMsg: "separated by single dashes"},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			// WHEN
			err := ValidateStruct(Value{Tags: tc.tags})

			// THEN
			if len(tc.errMsg) == 0 {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
			}
		})
	}
}
