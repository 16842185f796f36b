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

// Package fields provides typed access to route segments, query parameters,
// headers and cookies.
package fields

import (
	"errors"

	"github.com/dadrus/reqkit/coerce"
	"github.com/dadrus/reqkit/errorsx"
)

// Extractor wraps a Source. It is a Source itself, so the typed accessors of this
// package accept it.
type Extractor struct {
	src Source
}

func New(src Source) *Extractor { return &Extractor{src: src} }

// Values returns the values as sent, without any conversion.
func (e *Extractor) Values(key string) []string { return e.src.Values(key) }

func (e *Extractor) Has(key string) bool { return len(e.src.Values(key)) != 0 }

// Required returns the first value of key converted to T. If there is no such
// value or it cannot be converted, an errorsx.ErrMissingRequiredField error is
// returned.
func Required[T any](src Source, key string) (T, error) {
	var zero T

	values := src.Values(key)
	if len(values) == 0 {
		return zero, errorsx.MissingRequiredField(key)
	}

	val, ok := coerce.To[T](values[0])
	if !ok {
		return zero, errorsx.MissingRequiredField(key)
	}

	return val, nil
}

// Optional is like Required, but reports a missing or malformed value by setting
// ok to false.
func Optional[T any](src Source, key string) (T, bool) {
	val, err := Required[T](src, key)
	if errors.Is(err, errorsx.ErrMissingRequiredField) {
		var zero T

		return zero, false
	}

	return val, err == nil
}

// Get is like Optional, but returns def if there is no usable value.
func Get[T any](src Source, key string, def T) T {
	if val, ok := Optional[T](src, key); ok {
		return val
	}

	return def
}

// List converts all values of key to T. Values which cannot be converted are
// skipped. The order of the remaining values is preserved.
func List[T any](src Source, key string) []T {
	values := src.Values(key)
	res := make([]T, 0, len(values))

	for _, raw := range values {
		if val, ok := coerce.To[T](raw); ok {
			res = append(res, val)
		}
	}

	return res
}
