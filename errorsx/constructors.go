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
	"github.com/dadrus/reqkit/internal/x/errorchain"
)

func MissingRequiredField(key string) error {
	return errorchain.NewWithMessagef(ErrMissingRequiredField, "required field '%s' is missing or malformed", key)
}

func MissingRequiredForm(cause error) error {
	return errorchain.NewWithMessage(ErrMissingRequiredForm, "request does not carry a form").CausedBy(cause)
}

func MissingRequiredFormField(name string) error {
	return errorchain.NewWithMessagef(ErrMissingRequiredFormField,
		"required form field '%s' is missing or malformed", name)
}

func MissingRequiredFormFile(name string) error {
	return errorchain.NewWithMessagef(ErrMissingRequiredFormFile, "required form file '%s' is missing", name)
}

func MissingRequiredJSON(cause error) error {
	return errorchain.NewWithMessage(ErrMissingRequiredJSON, "request does not carry a JSON document").
		CausedBy(cause)
}

func MissingRequiredJSONField(path string, cause error) error {
	return errorchain.NewWithMessagef(ErrMissingRequiredJSONField,
		"required JSON property '%s' is missing or malformed", path).CausedBy(cause)
}

func MissingDependency(typeName string) error {
	return errorchain.NewWithMessagef(ErrMissingDependency, "no service registered for %s", typeName)
}

func DuplicateRoute(method, pattern string) error {
	return errorchain.NewWithMessagef(ErrDuplicateRoute, "route %s %s is already registered", method, pattern)
}

func Internal(message string) *errorchain.ErrorChain {
	return errorchain.NewWithMessage(ErrInternal, message)
}
