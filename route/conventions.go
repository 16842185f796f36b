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
	"maps"

	"github.com/justinas/alice"
)

// Conventions is what the build steps of a route configure. Middlewares added with
// Use wrap the handler in the order they are added, the first one being the
// outermost.
type Conventions struct {
	entry    Entry
	chain    alice.Chain
	metadata map[string]any
}

func newConventions(entry Entry) *Conventions {
	md := maps.Clone(entry.Policy.Metadata)
	if md == nil {
		md = make(map[string]any)
	}

	return &Conventions{entry: entry, chain: alice.New(), metadata: md}
}

func (c *Conventions) Use(constructors ...alice.Constructor) {
	c.chain = c.chain.Append(constructors...)
}

func (c *Conventions) SetMetadata(key string, value any) { c.metadata[key] = value }

func (c *Conventions) Metadata() map[string]any { return maps.Clone(c.metadata) }

func (c *Conventions) Entry() Entry { return c.entry }
