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

// Package route holds the route table and turns its entries into handlers.
package route

import (
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/dadrus/reqkit/errorsx"
	"github.com/dadrus/reqkit/exchange"
	"github.com/dadrus/reqkit/workload"
)

// Handler is implemented by application code. It reads the request through r
// and returns what should be sent back.
type Handler func(r *exchange.Request) (workload.Workload, error)

type Entry struct {
	Method  string
	Pattern string
	Handler Handler
	Policy  Policy
}

// Key is the form the host router expects, e.g. "GET /notes/{id}".
func (e Entry) Key() string { return e.Method + " " + e.Pattern }

// Table keeps route entries in registration order. Once sealed, it is immutable
// and safe for concurrent reads.
type Table struct {
	mut     sync.RWMutex
	entries []Entry
	index   map[string]int
	sealed  bool
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Register adds a route. Registering the same method and pattern twice results
// in an errorsx.ErrDuplicateRoute error.
func (t *Table) Register(method, pattern string, handler Handler, policy Policy) error {
	method = strings.ToUpper(strings.TrimSpace(method))

	if err := validate(method, pattern, handler); err != nil {
		return err
	}

	t.mut.Lock()
	defer t.mut.Unlock()

	if t.sealed {
		return errorsx.Internal("route table is sealed, " + method + " " + pattern + " cannot be registered")
	}

	entry := Entry{Method: method, Pattern: pattern, Handler: handler, Policy: policy}
	if _, exists := t.index[entry.Key()]; exists {
		return errorsx.DuplicateRoute(method, pattern)
	}

	t.index[entry.Key()] = len(t.entries)
	t.entries = append(t.entries, entry)

	return nil
}

func (t *Table) MustRegister(method, pattern string, handler Handler, policy Policy) {
	if err := t.Register(method, pattern, handler, policy); err != nil {
		panic(err)
	}
}

func (t *Table) Get(pattern string, handler Handler, policy Policy) error {
	return t.Register(http.MethodGet, pattern, handler, policy)
}

func (t *Table) Post(pattern string, handler Handler, policy Policy) error {
	return t.Register(http.MethodPost, pattern, handler, policy)
}

func (t *Table) Put(pattern string, handler Handler, policy Policy) error {
	return t.Register(http.MethodPut, pattern, handler, policy)
}

func (t *Table) Patch(pattern string, handler Handler, policy Policy) error {
	return t.Register(http.MethodPatch, pattern, handler, policy)
}

func (t *Table) Delete(pattern string, handler Handler, policy Policy) error {
	return t.Register(http.MethodDelete, pattern, handler, policy)
}

// Lookup returns the entry registered for method and pattern.
func (t *Table) Lookup(method, pattern string) (Entry, bool) {
	t.mut.RLock()
	defer t.mut.RUnlock()

	idx, ok := t.index[strings.ToUpper(method)+" "+pattern]
	if !ok {
		return Entry{}, false
	}

	return t.entries[idx], true
}

// Entries returns all entries in registration order.
func (t *Table) Entries() []Entry {
	t.mut.RLock()
	defer t.mut.RUnlock()

	return slices.Clone(t.entries)
}

// Seal makes the table immutable. Later registrations fail.
func (t *Table) Seal() {
	t.mut.Lock()
	t.sealed = true
	t.mut.Unlock()
}

func (t *Table) Sealed() bool {
	t.mut.RLock()
	defer t.mut.RUnlock()

	return t.sealed
}

func validate(method, pattern string, handler Handler) error {
	if len(method) == 0 || strings.IndexFunc(method, func(r rune) bool { return r < 'A' || r > 'Z' }) != -1 {
		return errorsx.Internal("invalid route method '" + method + "'")
	}

	if !strings.HasPrefix(pattern, "/") || strings.ContainsAny(pattern, " \t\r\n") {
		return errorsx.Internal("invalid route pattern '" + pattern + "'")
	}

	if handler == nil {
		return errorsx.Internal("no handler for route " + method + " " + pattern)
	}

	return nil
}
