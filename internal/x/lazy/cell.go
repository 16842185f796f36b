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

// Package lazy provides a memoized, compute-once result cell.
package lazy

import (
	"sync"
	"sync/atomic"
)

// Cell holds a value computed at most once. Until Get is called for the first time
// the cell is unresolved. Afterwards it is either resolved to a value or resolved to
// an error describing why no value is available. Both outcomes are cached.
type Cell[T any] struct {
	once     sync.Once
	compute  func() (T, error)
	val      T
	err      error
	resolved atomic.Bool
}

func New[T any](compute func() (T, error)) *Cell[T] {
	return &Cell[T]{compute: compute}
}

func (c *Cell[T]) Get() (T, error) {
	c.once.Do(func() {
		c.val, c.err = c.compute()
		c.compute = nil
		c.resolved.Store(true)
	})

	return c.val, c.err
}

// Resolved reports whether Get has been called. It never triggers the computation.
func (c *Cell[T]) Resolved() bool { return c.resolved.Load() }
