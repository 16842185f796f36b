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
	"regexp"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`) //nolint:gochecknoglobals

// slug accepts lower case words made of letters and digits, joined by single dashes,
// like "release-notes" or "q3".
type slug struct{}

func (slug) Tag() string { return "slug" }

func (slug) Validate(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func (slug) AlwaysValidate() bool { return false }

func (slug) MessageTemplate() string {
	return "{0} must consist of lower case letters and digits separated by single dashes"
}

func (slug) Translate(ut ut.Translator, fe validator.FieldError) string {
	t, err := ut.T("slug", fe.Field())
	if err != nil {
		return fe.Error()
	}

	return t
}
