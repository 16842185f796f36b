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

package route

import (
	"context"
	"maps"
)

type ctxKey int

const (
	metadataKey ctxKey = iota + 1
	entryKey
)

func withRoute(ctx context.Context, entry Entry, md map[string]any) context.Context {
	return context.WithValue(context.WithValue(ctx, entryKey, entry), metadataKey, md)
}

// MetadataFrom returns a copy of the metadata of the route serving the request
// ctx belongs to.
func MetadataFrom(ctx context.Context) map[string]any {
	if md, ok := ctx.Value(metadataKey).(map[string]any); ok {
		return maps.Clone(md)
	}

	return map[string]any{}
}

// EntryFrom returns the entry of the route serving the request ctx belongs to.
func EntryFrom(ctx context.Context) (Entry, bool) {
	entry, ok := ctx.Value(entryKey).(Entry)

	return entry, ok
}
