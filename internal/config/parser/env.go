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

package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/dadrus/reqkit/internal/x/errorchain"
)

// keys of the env provider carry this separator followed by a digest of the
// variable, so that variables addressing the same slice do not overwrite each other.
const uniqueSuffixSeparator = "#"

// koanfFromEnv loads all environment variables starting with prefix. The remainder
// of the name is lowercased, "_" separates levels and "__" stands for a literal
// underscore. Numeric levels address slice elements, e.g. FOO_LIST_0_NAME.
func koanfFromEnv(prefix string) (*koanf.Koanf, error) {
	parser := koanf.New(".")

	provider := env.Provider(".", env.Opt{
		Prefix: prefix,
		TransformFunc: func(key, val string) (string, any) {
			path := envKeyToPath(strings.TrimPrefix(key, prefix))
			newKey, newVal := nest(path, typed(val))

			return newKey + uniqueSuffixSeparator + digest(key), newVal
		},
	})

	if err := parser.Load(provider, nil, koanf.WithMergeFunc(func(src, dest map[string]any) error {
		for key, val := range src {
			name, _, _ := strings.Cut(key, uniqueSuffixSeparator)

			dest[name] = merge(dest[name], val)
		}

		return nil
	})); err != nil {
		return nil, errorchain.NewWithMessage(ErrConfiguration,
			"failed to parse environment variables to config").CausedBy(err)
	}

	return parser, nil
}

func envKeyToPath(key string) []string {
	const placeholder = "\x00"

	key = strings.ReplaceAll(strings.ToLower(key), "__", placeholder)
	parts := strings.Split(key, "_")

	for idx, part := range parts {
		parts[idx] = strings.ReplaceAll(part, placeholder, "_")
	}

	return parts
}

// nest returns the dotted key up to the first numeric element of path and the
// value to store there. Numeric elements become slices holding the remainder.
func nest(path []string, val any) (string, any) {
	for idx, part := range path {
		pos, err := strconv.Atoi(part)
		if err != nil || pos < 0 {
			continue
		}

		slice := make([]any, pos+1)

		if rest := path[idx+1:]; len(rest) == 0 {
			slice[pos] = val
		} else {
			key, nested := nest(rest, val)
			slice[pos] = map[string]any{key: nested}
		}

		return strings.Join(path[:idx], "."), slice
	}

	return strings.Join(path, "."), val
}

// typed lets the yaml parser guess the type of val.
func typed(val string) any {
	var parsed map[string]any

	if err := yaml.Unmarshal([]byte("val: "+val), &parsed); err != nil {
		return val
	}

	return parsed["val"]
}

func digest(val string) string {
	sum := sha256.Sum256([]byte(val))

	return hex.EncodeToString(sum[:8])
}
