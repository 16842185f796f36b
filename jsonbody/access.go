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

package jsonbody

import (
	"errors"
	"reflect"

	"github.com/tidwall/gjson"

	"github.com/dadrus/reqkit/errorsx"
	"github.com/dadrus/reqkit/internal/validation"
)

// Required decodes the value at path into T. If the path does not resolve or the
// value cannot be decoded into T an errorsx.ErrMissingRequiredJSONField error is
// returned. Without a document the error is errorsx.ErrMissingRequiredJSON.
func Required[T any](b *Body, path string) (T, error) {
	var val T

	res, err := b.lookup(path)
	if err != nil {
		return val, err
	}

	if err = decodeResult(res, path, &val); err != nil {
		var zero T

		return zero, err
	}

	return val, nil
}

// Optional is like Required, but reports a missing document or a path which does
// not resolve by setting ok to false. A value which cannot be decoded into T is
// still an error.
func Optional[T any](b *Body, path string) (T, bool, error) {
	val, err := Required[T](b, path)
	if err == nil {
		return val, true, nil
	}

	var zero T

	if errors.Is(err, errorsx.ErrMissingRequiredJSON) || errors.Is(err, errPathNotFound) {
		return zero, false, nil
	}

	return zero, false, err
}

func Get[T any](b *Body, path string, def T) (T, error) {
	val, ok, err := Optional[T](b, path)
	if err != nil {
		return def, err
	}

	if !ok {
		return def, nil
	}

	return val, nil
}

// List decodes all values path resolves to. Arrays are expanded into their
// elements. A path which does not resolve results in an empty list.
func List[T any](b *Body, path string) ([]T, error) {
	doc, err := b.doc.Get()
	if err != nil {
		return nil, err
	}

	res := gjson.GetBytes(doc, path)
	if !res.Exists() {
		return []T{}, nil
	}

	items := []gjson.Result{res}
	if res.IsArray() {
		items = res.Array()
	}

	values := make([]T, 0, len(items))

	for _, item := range items {
		var val T

		if err = decodeResult(item, path, &val); err != nil {
			return nil, err
		}

		values = append(values, val)
	}

	return values, nil
}

// Exact decodes the whole document into T and validates the result against its
// validate struct tags.
func Exact[T any](b *Body) (T, error) {
	var val T

	doc, err := b.doc.Get()
	if err != nil {
		return val, err
	}

	if err = decodeResult(gjson.ParseBytes(doc), "$", &val); err != nil {
		var zero T

		return zero, err
	}

	if validation.IsValidatable(reflect.TypeOf(val)) && !isNilPointer(val) {
		if err = validation.ValidateStruct(val); err != nil {
			var zero T

			return zero, errorsx.MissingRequiredJSONField("$", err)
		}
	}

	return val, nil
}

func isNilPointer(val any) bool {
	rv := reflect.ValueOf(val)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
