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

// Package dispatch serves the routes of a route table. It invokes the handlers,
// writes the workloads they return and translates declared errors into responses.
package dispatch

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dadrus/reqkit/errorsx"
	"github.com/dadrus/reqkit/exchange"
	"github.com/dadrus/reqkit/internal/accesscontext"
	"github.com/dadrus/reqkit/internal/x"
	"github.com/dadrus/reqkit/internal/x/errorchain"
	"github.com/dadrus/reqkit/route"
	"github.com/dadrus/reqkit/workload"
)

const (
	textContentType = "text/plain; charset=utf-8"
	serverErrorBody = "Server Error"
)

type state string

const (
	stateReceived    state = "received"
	stateExtracting  state = "extracting"
	stateHandling    state = "handling"
	stateTranslating state = "translating"
	stateCompleted   state = "completed"
)

// Pipeline is an http.Handler serving the routes of a sealed route table.
type Pipeline struct {
	*opts

	mux   *http.ServeMux
	table *route.Table
}

// New seals table and builds the handlers for all its routes. Errors in route
// policies and conflicting routes are reported here, not while serving.
func New(table *route.Table, options ...Option) (*Pipeline, error) {
	conf := defaultOptions()

	for _, opt := range options {
		opt(conf)
	}

	table.Seal()

	pipeline := &Pipeline{opts: conf, mux: http.NewServeMux(), table: table}
	env := route.Environment{Authorizer: conf.authorizer, DefaultCORS: conf.defaultCORS}

	var patterns []string

	byPattern := make(map[string][]route.Entry)

	for _, entry := range table.Entries() {
		handler, err := route.Build(entry, env, pipeline.terminal(entry))
		if err != nil {
			return nil, err
		}

		if err = register(pipeline.mux, entry.Key(), handler); err != nil {
			return nil, err
		}

		if _, known := byPattern[entry.Pattern]; !known {
			patterns = append(patterns, entry.Pattern)
		}

		byPattern[entry.Pattern] = append(byPattern[entry.Pattern], entry)
	}

	for _, pattern := range patterns {
		if err := pipeline.registerPreflight(pattern, byPattern[pattern], env); err != nil {
			return nil, err
		}
	}

	return pipeline, nil
}

func (p *Pipeline) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	if zerolog.Ctx(req.Context()).GetLevel() == zerolog.Disabled {
		req = req.WithContext(p.logger.WithContext(req.Context()))
	}

	p.mux.ServeHTTP(rw, req)
}

// Pattern returns the pattern of the route serving req, e.g. "GET /notes/{id}".
// It is empty if there is none.
func (p *Pipeline) Pattern(req *http.Request) string {
	_, pattern := p.mux.Handler(req)

	return pattern
}

func (p *Pipeline) Routes() []route.Entry { return p.table.Entries() }

func (p *Pipeline) registerPreflight(pattern string, entries []route.Entry, env route.Environment) error {
	withCORS := false

	for _, entry := range entries {
		if entry.Method == http.MethodOptions {
			return nil
		}

		withCORS = withCORS || entry.Policy.CORS.Mode != route.CORSDisabled
	}

	if !withCORS {
		return nil
	}

	handler, err := route.Preflight(entries, env)
	if err != nil {
		return err
	}

	return register(p.mux, http.MethodOptions+" "+pattern, handler)
}

func (p *Pipeline) terminal(entry route.Entry) http.Handler {
	key := entry.Key()

	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		logger := zerolog.Ctx(ctx).With().Str("_route", key).Logger()

		accesscontext.SetRoute(ctx, key)

		trace(&logger, stateReceived)

		trace(&logger, stateExtracting)

		exOpts := append([]exchange.Option{
			exchange.WithServices(p.services),
			exchange.WithMetadata(route.MetadataFrom(ctx)),
		}, p.exchangeOpts...)
		ex := exchange.New(rw, req, exOpts...)

		defer func() {
			if err := ex.Close(); err != nil {
				logger.Warn().Err(err).Msg("Releasing request resources failed")
			}
		}()

		trace(&logger, stateHandling)

		wl, err := entry.Handler(ex)

		trace(&logger, stateTranslating)

		if err != nil {
			p.translateError(rw, req, &logger, err)
		} else if err = workload.Write(rw, req, ex.Status(), wl); err != nil {
			logger.Warn().Err(err).Str("_workload", workload.Kind(wl)).Msg("Writing workload failed")

			p.translateError(rw, req, &logger, err)
		}

		trace(&logger, stateCompleted)
	})
}

func (p *Pipeline) translateError(rw http.ResponseWriter, req *http.Request, logger *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, errorsx.ErrClientInput):
		logger.Debug().Err(err).Msg("Request rejected")

		writeText(rw, http.StatusBadRequest, errorsx.Describe(err))
	case errors.Is(err, errorsx.ErrServer):
		logger.Error().Err(err).Msg("Request failed")

		writeText(rw, http.StatusInternalServerError, x.IfThenElse(p.development, err.Error(), serverErrorBody))
	default:
		p.fallback.HandleError(rw, req, err)

		return
	}

	accesscontext.SetError(req.Context(), err)
}

func writeText(rw http.ResponseWriter, code int, body string) {
	rw.Header().Set("Content-Type", textContentType)
	rw.Header().Set("X-Content-Type-Options", "nosniff")
	rw.WriteHeader(code)

	_, _ = rw.Write([]byte(body))
}

func trace(logger *zerolog.Logger, st state) {
	logger.Trace().Str("_state", string(st)).Msg("Dispatch state changed")
}

// register adds handler to mux. The mux panics on conflicting and malformed
// patterns. These panics are turned into errors.
func register(mux *http.ServeMux, key string, handler http.Handler) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cause := fmt.Errorf("%v", rec) //nolint: err113

			if strings.Contains(cause.Error(), "conflicts with") {
				err = errorchain.NewWithMessagef(errorsx.ErrDuplicateRoute,
					"route %s conflicts with an already registered route", key).CausedBy(cause)
			} else {
				err = errorsx.Internal("route " + key + " cannot be registered").CausedBy(cause)
			}
		}
	}()

	mux.Handle(key, handler)

	return nil
}
