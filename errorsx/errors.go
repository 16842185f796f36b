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

// Package errorsx defines the closed set of errors the dispatch pipeline translates
// into HTTP responses.
//
// There are two families. Errors of the ErrClientInput family describe something the
// caller failed to supply and end up as 400 responses. Errors of the ErrServer family
// describe an internal inconsistency and end up as 500 responses. Every declared
// error is an error chain headed by one of the Kind sentinels below.
package errorsx

import (
	"errors"

	"github.com/dadrus/reqkit/internal/x/errorchain"
)

var (
	ErrClientInput = errors.New("client input error")
	ErrServer      = errors.New("server error")
)

var (
	ErrMissingRequiredField     = newKind("MissingRequiredFieldException", ErrClientInput)
	ErrMissingRequiredForm      = newKind("MissingRequiredFormException", ErrClientInput)
	ErrMissingRequiredFormField = newKind("MissingRequiredFormFieldException", ErrClientInput)
	ErrMissingRequiredFormFile  = newKind("MissingRequiredFormFileException", ErrClientInput)
	ErrMissingRequiredJSON      = newKind("MissingRequiredJsonException", ErrClientInput)
	ErrMissingRequiredJSONField = newKind("MissingRequiredJsonFieldException", ErrClientInput)

	ErrMissingDependency = newKind("MissingDependencyException", ErrServer)
	ErrDuplicateRoute    = newKind("DuplicateRouteException", ErrServer)
	ErrInternal          = newKind("InternalConsistencyException", ErrServer)
)

// Kind identifies a declared error. Its name is what clients see in error responses.
type Kind struct {
	name   string
	family error
}

func newKind(name string, family error) *Kind { return &Kind{name: name, family: family} }

func (k *Kind) Error() string { return k.name }

func (k *Kind) Name() string { return k.name }

func (k *Kind) Family() error { return k.family }

func (k *Kind) Is(target error) bool { return target == k.family } //nolint:errorlint

// KindOf returns the kind of a declared error.
func KindOf(err error) (*Kind, bool) {
	var kind *Kind

	if errors.As(err, &kind) {
		return kind, true
	}

	return nil, false
}

// IsDeclared reports whether err belongs to one of the two families.
func IsDeclared(err error) bool {
	return errors.Is(err, ErrClientInput) || errors.Is(err, ErrServer)
}

// Describe renders a declared error as "<KindName>: <message>". For errors not
// produced by this package, the plain error text is returned.
func Describe(err error) string {
	var chain *errorchain.ErrorChain

	if errors.As(err, &chain) {
		if _, ok := chain.Head().(*Kind); ok {
			return chain.String()
		}
	}

	return err.Error()
}
