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

// Package api assembles the HTTP server exposing the notes API.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dadrus/reqkit/dispatch"
	"github.com/dadrus/reqkit/exchange"
	"github.com/dadrus/reqkit/internal/config"
	"github.com/dadrus/reqkit/internal/handler/middleware/http/accesslog"
	"github.com/dadrus/reqkit/internal/handler/middleware/http/errorhandler"
	"github.com/dadrus/reqkit/internal/handler/middleware/http/logger"
	"github.com/dadrus/reqkit/internal/handler/middleware/http/passthrough"
	prometheus3 "github.com/dadrus/reqkit/internal/handler/middleware/http/prometheus"
	"github.com/dadrus/reqkit/internal/handler/middleware/http/recovery"
	"github.com/dadrus/reqkit/internal/notes"
	"github.com/dadrus/reqkit/internal/x"
	"github.com/dadrus/reqkit/route"
	"github.com/dadrus/reqkit/services"
)

const serviceName = "reqkit"

// Service is the HTTP server together with the resources its handlers depend on.
type Service struct {
	srv      *http.Server
	store    *notes.Store
	pipeline *dispatch.Pipeline
	log      zerolog.Logger
}

// NewTable creates the route table of the notes API.
func NewTable(conf *config.Configuration) (*route.Table, error) {
	tbl := route.NewTable()

	if err := notes.Register(tbl, notes.Options{FilesDir: conf.Files.Dir, CORS: conf.Serve.CORS != nil}); err != nil {
		return nil, err
	}

	return tbl, nil
}

func NewService(
	conf *config.Configuration,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
	log zerolog.Logger,
) (*Service, error) {
	tbl, err := NewTable(conf)
	if err != nil {
		return nil, err
	}

	store := notes.NewStore(conf.Notes.TTL, conf.Notes.Capacity)
	locator := services.NewRegistry()
	services.Provide(locator, store)

	eh := errorhandler.New(
		errorhandler.WithVerboseErrors(conf.Serve.Respond.Verbose),
		errorhandler.WithClientErrorCode(conf.Serve.Respond.With.ClientError),
		errorhandler.WithInternalServerErrorCode(conf.Serve.Respond.With.InternalError),
	)

	pipeline, err := dispatch.New(tbl,
		dispatch.WithLogger(log),
		dispatch.WithDevelopmentMode(conf.Development),
		dispatch.WithServices(locator),
		dispatch.WithAuthorizer(notes.NewTokenAuthorizer(conf.Auth)),
		dispatch.WithDefaultCORS(conf.Serve.CORS),
		dispatch.WithFallbackErrorHandler(eh),
		dispatch.WithExchangeOptions(
			exchange.WithFormMaxMemory(int64(conf.Body.FormMaxMemory)), //nolint:gosec
			exchange.WithJSONMaxBytes(int64(conf.Body.JSONMaxSize)),    //nolint:gosec
		),
	)
	if err != nil {
		return nil, err
	}

	metricsEndpoint := func(req *http.Request) bool {
		return conf.Metrics.Enabled && req.URL.Path == conf.Metrics.Path
	}

	hc := alice.New(
		logger.New(log),
		accesslog.New(log),
		recovery.New(eh),
		x.IfThenElseExec(conf.Metrics.Enabled,
			func() func(http.Handler) http.Handler {
				return prometheus3.New(
					prometheus3.WithServiceName(serviceName),
					prometheus3.WithRegisterer(reg),
					prometheus3.WithNamespace(conf.Metrics.Namespace),
					prometheus3.WithSubsystem(conf.Metrics.Subsystem),
					prometheus3.WithOperationFilter(metricsEndpoint),
					prometheus3.WithPathResolver(func(req *http.Request) string {
						return prometheus3.PathOf(pipeline.Pattern(req))
					}),
				)
			},
			func() func(http.Handler) http.Handler { return passthrough.New },
		),
	).Then(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if metricsEndpoint(req) {
			promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP(rw, req)

			return
		}

		pipeline.ServeHTTP(rw, req)
	}))

	cfg := conf.Serve

	return &Service{
		srv: &http.Server{
			Handler:        hc,
			Addr:           cfg.Address(),
			ReadTimeout:    cfg.Timeout.Read,
			WriteTimeout:   cfg.Timeout.Write,
			IdleTimeout:    cfg.Timeout.Idle,
			MaxHeaderBytes: int(cfg.BufferLimit.Read), //nolint:gosec
		},
		store:    store,
		pipeline: pipeline,
		log:      log,
	}, nil
}

// Handler returns the handler serving all requests.
func (s *Service) Handler() http.Handler { return s.srv.Handler }

// Routes returns the served routes.
func (s *Service) Routes() []route.Entry { return s.pipeline.Routes() }

// Start serves requests until Stop is called.
func (s *Service) Start(ctx context.Context) error {
	if err := s.store.Start(ctx); err != nil {
		return err
	}

	s.log.Info().Str("_address", s.srv.Addr).Msg("Starting listening")

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error().Err(err).Msg("Could not start service")

		return err
	}

	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	s.log.Info().Msg("Tearing down service")

	err := s.srv.Shutdown(ctx)

	return errors.Join(err, s.store.Stop(ctx))
}
