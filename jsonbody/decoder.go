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
	"bytes"
	"encoding"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/dadrus/reqkit/errorsx"
)

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// decodeResult decodes res into target, which must be a pointer. Errors name
// path, or the path of the offending property if a mandatory one is missing.
func decodeResult(res gjson.Result, path string, target any) error {
	if res.Type == gjson.Null && !nillable(reflect.TypeOf(target).Elem()) {
		return errorsx.MissingRequiredJSONField(path, errNullValue)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(res.Raw)))
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		return errorsx.MissingRequiredJSONField(path, err)
	}

	return checkMandatory(reflect.TypeOf(target).Elem(), res, path)
}

// checkMandatory walks typ alongside the decoded document and verifies every
// mandatory struct property has been sent.
//
//nolint:cyclop
func checkMandatory(typ reflect.Type, res gjson.Result, path string) error {
	if res.Type == gjson.Null {
		return nil
	}

	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if decodesItself(typ) {
		return nil
	}

	// nolint: exhaustive
	switch typ.Kind() {
	case reflect.Struct:
		return checkStruct(typ, res, path)
	case reflect.Slice, reflect.Array:
		var err error

		idx := 0
		res.ForEach(func(_, value gjson.Result) bool {
			err = checkMandatory(typ.Elem(), value, join(path, strconv.Itoa(idx)))
			idx++

			return err == nil
		})

		return err
	case reflect.Map:
		var err error

		res.ForEach(func(key, value gjson.Result) bool {
			err = checkMandatory(typ.Elem(), value, join(path, key.String()))

			return err == nil
		})

		return err
	default:
		return nil
	}
}

func checkStruct(typ reflect.Type, res gjson.Result, path string) error {
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, optional, skip := property(field)
		if skip {
			continue
		}

		if field.Anonymous && len(name) == 0 && indirect(field.Type).Kind() == reflect.Struct {
			if err := checkStruct(indirect(field.Type), res, path); err != nil {
				return err
			}

			continue
		}

		if len(name) == 0 {
			name = field.Name
		}

		value, found := member(res, name)
		if !found {
			if optional || field.Type.Kind() == reflect.Pointer {
				continue
			}

			return errorsx.MissingRequiredJSONField(join(path, name), errMandatoryProp)
		}

		if err := checkMandatory(field.Type, value, join(path, name)); err != nil {
			return err
		}
	}

	return nil
}

func property(field reflect.StructField) (string, bool, bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	parts := strings.Split(tag, ",")
	optional := false

	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			optional = true
		}
	}

	return parts[0], optional, false
}

// member looks up the object member name. As in decoding, an exact match is
// preferred, a case-insensitive one accepted.
func member(res gjson.Result, name string) (gjson.Result, bool) {
	var (
		found gjson.Result
		ok    bool
	)

	res.ForEach(func(key, value gjson.Result) bool {
		if key.String() == name {
			found, ok = value, true

			return false
		}

		if !ok && strings.EqualFold(key.String(), name) {
			found, ok = value, true
		}

		return true
	})

	return found, ok
}

func decodesItself(typ reflect.Type) bool {
	ptr := reflect.PointerTo(typ)

	return ptr.Implements(jsonUnmarshalerType) || ptr.Implements(textUnmarshalerType)
}

func nillable(typ reflect.Type) bool {
	// nolint: exhaustive
	switch typ.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

func indirect(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ
}

func join(path, elem string) string {
	if path == "$" {
		return elem
	}

	return path + "." + elem
}
