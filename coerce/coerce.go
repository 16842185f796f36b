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

// Package coerce converts raw string values taken from requests into typed values.
//
// Conversion never fails loudly. A value which cannot be converted is reported
// exactly like a value which is not there at all, so callers only ever deal with
// "have a value" and "have none".
package coerce

import (
	"encoding"
	"reflect"
	"strconv"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

// From converts raw to T if present is true. Otherwise, or if raw cannot be
// converted, ok is false.
func From[T any](raw string, present bool) (T, bool) {
	if !present {
		var zero T

		return zero, false
	}

	return To[T](raw)
}

// To converts raw to T. ok is false if raw cannot be represented as T.
func To[T any](raw string) (T, bool) {
	var val T

	if err := into(raw, &val); err != nil {
		var zero T

		return zero, false
	}

	return val, true
}

func into(raw string, target any) error {
	if tu, ok := target.(encoding.TextUnmarshaler); ok {
		return tu.UnmarshalText([]byte(raw))
	}

	rv := reflect.ValueOf(target).Elem()

	switch rv.Type() {
	case durationType:
		dur, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}

		rv.SetInt(int64(dur))

		return nil
	case timeType:
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return err
		}

		rv.Set(reflect.ValueOf(ts))

		return nil
	}

	// nolint: exhaustive
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)
	case reflect.Bool:
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}

		rv.SetBool(val)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := strconv.ParseInt(raw, 10, rv.Type().Bits())
		if err != nil {
			return err
		}

		rv.SetInt(val)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		val, err := strconv.ParseUint(raw, 10, rv.Type().Bits())
		if err != nil {
			return err
		}

		rv.SetUint(val)
	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(raw, rv.Type().Bits())
		if err != nil {
			return err
		}

		rv.SetFloat(val)
	case reflect.Pointer:
		elem := reflect.New(rv.Type().Elem())
		if err := into(raw, elem.Interface()); err != nil {
			return err
		}

		rv.Set(elem)
	default:
		return decode(raw, target)
	}

	return nil
}

func decode(raw string, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToIPHookFunc(),
			mapstructure.StringToIPNetHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}

	return dec.Decode(raw)
}
