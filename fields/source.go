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

package fields

import (
	"net/http"
	"net/url"
)

// Source is a read-only view on a possibly multi-valued string mapping, like the
// query string or the headers of a request.
type Source interface {
	Values(key string) []string
}

type SourceFunc func(key string) []string

func (f SourceFunc) Values(key string) []string { return f(key) }

// RouteValues exposes the wildcard segments matched by the router. A segment which
// matched the empty string is treated as absent.
func RouteValues(req *http.Request) Source {
	return SourceFunc(func(key string) []string {
		if val := req.PathValue(key); len(val) != 0 {
			return []string{val}
		}

		return nil
	})
}

// QueryValues exposes the query string parameters. Keys are case-sensitive.
func QueryValues(req *http.Request) Source {
	return MapValues(req.URL.Query())
}

// HeaderValues exposes the request headers. Keys are case-insensitive.
func HeaderValues(req *http.Request) Source {
	return SourceFunc(req.Header.Values)
}

// CookieValues exposes the values of all cookies sent with the given name, in the
// order they were sent.
func CookieValues(req *http.Request) Source {
	return SourceFunc(func(key string) []string {
		var values []string

		for _, cookie := range req.CookiesNamed(key) {
			values = append(values, cookie.Value)
		}

		return values
	})
}

// MapValues exposes url.Values like mappings. Keys are case-sensitive.
func MapValues(values url.Values) Source {
	return SourceFunc(func(key string) []string { return values[key] })
}
