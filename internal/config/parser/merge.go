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
	"strings"
)

// merge merges src into dest. Maps and slices are merged element wise, any other
// value of src replaces the one in dest.
func merge(dest, src any) any {
	switch srcVal := src.(type) {
	case map[string]any:
		destVal, ok := dest.(map[string]any)
		if !ok {
			return stripSuffixes(srcVal)
		}

		for key, val := range srcVal {
			name, _, _ := strings.Cut(key, uniqueSuffixSeparator)

			destVal[name] = merge(destVal[name], val)
		}

		return destVal
	case []any:
		destVal, ok := dest.([]any)
		if !ok {
			return mergeSlices(nil, srcVal)
		}

		return mergeSlices(destVal, srcVal)
	default:
		return src
	}
}

func mergeSlices(dest, src []any) []any {
	if len(dest) < len(src) {
		grown := make([]any, len(src))
		copy(grown, dest)
		dest = grown
	}

	for idx, val := range src {
		if val != nil {
			dest[idx] = merge(dest[idx], val)
		}
	}

	return dest
}

func stripSuffixes(src map[string]any) map[string]any {
	res := make(map[string]any, len(src))

	for key, val := range src {
		name, _, _ := strings.Cut(key, uniqueSuffixSeparator)

		if nested, ok := val.(map[string]any); ok {
			res[name] = merge(res[name], stripSuffixes(nested))
		} else {
			res[name] = merge(res[name], val)
		}
	}

	return res
}
