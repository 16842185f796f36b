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

// Package services is a minimal service locator. Values are registered by type at
// startup and looked up by type while serving requests.
package services

import (
	"net/http"
	"reflect"
	"sync"

	"github.com/dadrus/reqkit/errorsx"
)

// Locator resolves services for a request.
type Locator interface {
	Lookup(typ reflect.Type, req *http.Request) (any, bool, error)
}

type provider func(req *http.Request) (any, error)

// Registry is a Locator populated with Provide and ProvideFunc. It is safe for
// concurrent use.
type Registry struct {
	mut       sync.RWMutex
	providers map[reflect.Type]provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[reflect.Type]provider)}
}

func (r *Registry) Lookup(typ reflect.Type, req *http.Request) (any, bool, error) {
	if r == nil {
		return nil, false, nil
	}

	r.mut.RLock()
	prov, ok := r.providers[typ]
	r.mut.RUnlock()

	if !ok {
		return nil, false, nil
	}

	val, err := prov(req)

	return val, true, err
}

func (r *Registry) set(typ reflect.Type, prov provider) {
	r.mut.Lock()
	defer r.mut.Unlock()

	r.providers[typ] = prov
}

// Provide registers value as the service of type T. An earlier registration for T
// is replaced.
func Provide[T any](reg *Registry, value T) {
	reg.set(typeOf[T](), func(*http.Request) (any, error) { return value, nil })
}

// ProvideFunc registers a factory creating the service of type T per request.
func ProvideFunc[T any](reg *Registry, factory func(req *http.Request) (T, error)) {
	reg.set(typeOf[T](), func(req *http.Request) (any, error) { return factory(req) })
}

// Get resolves the service of type T. An errorsx.ErrMissingDependency error is
// returned if there is none. Errors of a factory are returned as is.
func Get[T any](loc Locator, req *http.Request) (T, error) {
	var zero T

	typ := typeOf[T]()

	if loc == nil {
		return zero, errorsx.MissingDependency(typ.String())
	}

	val, ok, err := loc.Lookup(typ, req)
	if err != nil {
		return zero, err
	}

	if !ok {
		return zero, errorsx.MissingDependency(typ.String())
	}

	res, ok := val.(T)
	if !ok {
		return zero, errorsx.MissingDependency(typ.String())
	}

	return res, nil
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
