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

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// TagValidator contributes a validation tag usable in `validate` struct tags.
type TagValidator interface {
	Tag() string
	Validate(fl validator.FieldLevel) bool
	// AlwaysValidate makes Validate run for zero values as well.
	AlwaysValidate() bool
}

// ErrorTranslator renders the failures of a tag. MessageTemplate uses {0} for the
// field name.
type ErrorTranslator interface {
	Tag() string
	MessageTemplate() string
	Translate(ut ut.Translator, fe validator.FieldError) string
}

type TagNameSupplier interface {
	TagName(sf reflect.StructField) string
}

type TagNameSupplierFunc func(sf reflect.StructField) string

func (f TagNameSupplierFunc) TagName(sf reflect.StructField) string {
	return f(sf)
}

type Option interface {
	apply(v *validator.Validate, t ut.Translator) error
}

type optionFunc func(v *validator.Validate, t ut.Translator) error

func (f optionFunc) apply(v *validator.Validate, t ut.Translator) error {
	return f(v, t)
}

func WithTagValidator(tv TagValidator) Option {
	return optionFunc(func(v *validator.Validate, _ ut.Translator) error {
		return v.RegisterValidation(tv.Tag(), tv.Validate, tv.AlwaysValidate())
	})
}

func WithErrorTranslator(et ErrorTranslator) Option {
	return optionFunc(func(v *validator.Validate, t ut.Translator) error {
		return v.RegisterTranslation(et.Tag(), t,
			registrationFunc(et.Tag(), et.MessageTemplate(), true), et.Translate)
	})
}

func WithTagNameSupplier(tns TagNameSupplier) Option {
	return optionFunc(func(v *validator.Validate, _ ut.Translator) error {
		v.RegisterTagNameFunc(tns.TagName)

		return nil
	})
}
