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
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// registerTranslations adds the messages the default english translations lack or
// get wrong for the types used here.
func registerTranslations(validate *validator.Validate, trans ut.Translator) error {
	translations := []struct {
		tag         string
		translation string
		transFunc   validator.TranslationFunc
	}{
		{
			tag:         "gt-duration",
			translation: "{0} must be greater than {1}",
		},
		{
			tag:         "required_without",
			translation: "{0} is a required field as long as {1} is not set",
			transFunc:   paramTranslateFunc,
		},
	}

	for _, entry := range translations {
		transFunc := entry.transFunc
		if transFunc == nil {
			transFunc = translateFunc
		}

		if err := validate.RegisterTranslation(entry.tag, trans,
			registrationFunc(entry.tag, entry.translation, true), transFunc); err != nil {
			return err
		}
	}

	// gt on durations is rendered with the duration notation instead of a
	// plain number.
	return validate.RegisterTranslation("gt", trans,
		func(ut ut.Translator) error { return nil },
		func(ut ut.Translator, fe validator.FieldError) string {
			if fe.Type() == reflect.TypeOf(time.Duration(0)) {
				if t, err := ut.T("gt-duration", fe.Field(), fe.Param()); err == nil {
					return t
				}
			}

			if t, err := ut.T("gt-number", fe.Field(), fe.Param()); err == nil {
				return t
			}

			return fe.Error()
		})
}

func registrationFunc(tag string, translation string, override bool) validator.RegisterTranslationsFunc {
	return func(ut ut.Translator) error {
		return ut.Add(tag, translation, override)
	}
}

func translateFunc(ut ut.Translator, fe validator.FieldError) string {
	t, err := ut.T(fe.Tag(), fe.Field())
	if err != nil {
		return fe.Error()
	}

	return t
}

func paramTranslateFunc(ut ut.Translator, fe validator.FieldError) string {
	t, err := ut.T(fe.Tag(), fe.Field(), fe.Param())
	if err != nil {
		return fe.Error()
	}

	return t
}
