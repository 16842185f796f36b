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

// Package exchange bundles everything a handler needs to read a request and shape
// its response.
package exchange

import (
	"context"
	"maps"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dadrus/reqkit/fields"
	"github.com/dadrus/reqkit/form"
	"github.com/dadrus/reqkit/jsonbody"
	"github.com/dadrus/reqkit/services"
)

// Request is created per request by the dispatch pipeline and must not be used
// after the handler returned.
type Request struct {
	req      *http.Request
	status   int
	route    *fields.Extractor
	query    *fields.Extractor
	header   *fields.Headers
	cookie   *fields.Cookies
	form     *form.Form
	json     *jsonbody.Body
	services services.Locator
	metadata map[string]any
}

type opts struct {
	formMaxMemory int64
	jsonMaxBytes  int64
	services      services.Locator
	metadata      map[string]any
}

type Option func(o *opts)

func WithFormMaxMemory(size int64) Option {
	return func(o *opts) { o.formMaxMemory = size }
}

// WithJSONMaxBytes limits the size of JSON bodies. 0 means no limit.
func WithJSONMaxBytes(size int64) Option {
	return func(o *opts) { o.jsonMaxBytes = size }
}

func WithServices(loc services.Locator) Option {
	return func(o *opts) { o.services = loc }
}

func WithMetadata(md map[string]any) Option {
	return func(o *opts) { o.metadata = md }
}

func New(rw http.ResponseWriter, req *http.Request, options ...Option) *Request {
	var o opts

	for _, opt := range options {
		opt(&o)
	}

	return &Request{
		req:      req,
		route:    fields.New(fields.RouteValues(req)),
		query:    fields.New(fields.QueryValues(req)),
		header:   fields.NewHeaders(req, rw),
		cookie:   fields.NewCookies(req, rw),
		form:     form.New(req, form.WithMaxMemory(o.formMaxMemory)),
		json:     jsonbody.New(req, jsonbody.WithMaxBytes(o.jsonMaxBytes)),
		services: o.services,
		metadata: o.metadata,
	}
}

// Route gives access to the wildcard segments of the matched route pattern.
func (r *Request) Route() *fields.Extractor { return r.route }

func (r *Request) Query() *fields.Extractor { return r.query }

// Header gives access to the request headers. Writes go to the response headers.
func (r *Request) Header() *fields.Headers { return r.header }

// Cookie gives access to the request cookies. Writes add Set-Cookie headers to
// the response.
func (r *Request) Cookie() *fields.Cookies { return r.cookie }

func (r *Request) Form() *form.Form { return r.form }

// Close releases what reading the body left behind, like temporary files of
// multipart uploads.
func (r *Request) Close() error { return r.form.Close() }

func (r *Request) JSON() *jsonbody.Body { return r.json }

func (r *Request) Services() services.Locator { return r.services }

func (r *Request) Context() context.Context { return r.req.Context() }

func (r *Request) HTTPRequest() *http.Request { return r.req }

// Logger returns the request scoped logger.
func (r *Request) Logger() *zerolog.Logger { return zerolog.Ctx(r.req.Context()) }

// Metadata returns a copy of the metadata attached to the matched route.
func (r *Request) Metadata() map[string]any { return maps.Clone(r.metadata) }

// SetStatus sets the status code used when the workload is written. 0 means the
// default of 200.
func (r *Request) SetStatus(code int) { r.status = code }

func (r *Request) Status() int { return r.status }

// Service resolves the service of type T for the request.
func Service[T any](r *Request) (T, error) {
	return services.Get[T](r.services, r.req)
}
