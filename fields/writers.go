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
)

// Headers gives read access to the request headers and write access to the
// response headers. Writing never changes what is read.
type Headers struct {
	*Extractor

	out http.Header
}

func NewHeaders(req *http.Request, rw http.ResponseWriter) *Headers {
	return &Headers{Extractor: New(HeaderValues(req)), out: rw.Header()}
}

// Set replaces all values of the response header key.
func (h *Headers) Set(key string, values ...string) {
	h.out.Del(key)

	for _, value := range values {
		h.out.Add(key, value)
	}
}

func (h *Headers) Add(key, value string) { h.out.Add(key, value) }

func (h *Headers) Del(key string) { h.out.Del(key) }

// Cookies gives read access to the request cookies and write access to the
// Set-Cookie headers of the response.
type Cookies struct {
	*Extractor

	rw http.ResponseWriter
}

func NewCookies(req *http.Request, rw http.ResponseWriter) *Cookies {
	return &Cookies{Extractor: New(CookieValues(req)), rw: rw}
}

// Set sets a cookie scoped to the whole site, not accessible by scripts.
func (c *Cookies) Set(name, value string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *Cookies) SetCookie(cookie *http.Cookie) { http.SetCookie(c.rw, cookie) }

// Delete instructs the client to drop the cookie.
func (c *Cookies) Delete(name string) {
	c.SetCookie(&http.Cookie{Name: name, Path: "/", MaxAge: -1})
}
