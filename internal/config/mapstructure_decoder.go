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

package config

import (
	"reflect"
	"strconv"

	"github.com/inhies/go-bytesize"
	"github.com/rs/zerolog"

	"github.com/dadrus/reqkit/internal/x"
)

// Decode zeroLog LogLevels from strings.
func logLevelDecodeHookFunc(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(zerolog.Level(0)) {
		return data, nil
	}

	name, _ := data.(string)

	level, err := zerolog.ParseLevel(name)
	if err != nil || len(name) == 0 {
		return zerolog.InfoLevel, nil
	}

	return level, nil
}

func logFormatDecodeHookFunc(from reflect.Type, to reflect.Type, val any) (any, error) {
	if from.Kind() == reflect.String && to == reflect.TypeOf(LogFormat(0)) {
		return x.IfThenElse(val == "gelf", LogGelfFormat, LogTextFormat), nil
	}

	return val, nil
}

// byteSizeDecodeHookFunc decodes values like "10MB". Plain numbers are taken as
// number of bytes.
func byteSizeDecodeHookFunc(from reflect.Type, to reflect.Type, val any) (any, error) {
	if to != reflect.TypeOf(bytesize.ByteSize(0)) || from.Kind() != reflect.String {
		return val, nil
	}

	str, _ := val.(string)

	if size, err := strconv.ParseUint(str, 10, 64); err == nil {
		return bytesize.ByteSize(size), nil
	}

	return bytesize.Parse(str)
}
