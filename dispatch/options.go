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

package dispatch

import (
	"github.com/rs/zerolog"

	"github.com/dadrus/reqkit/exchange"
	"github.com/dadrus/reqkit/internal/handler/middleware/http/errorhandler"
	"github.com/dadrus/reqkit/route"
	"github.com/dadrus/reqkit/services"
)

type opts struct {
	development  bool
	services     services.Locator
	authorizer   route.Authorizer
	defaultCORS  *route.CORSOptions
	fallback     errorhandler.ErrorHandler
	exchangeOpts []exchange.Option
	logger       zerolog.Logger
}

type Option func(*opts)

func defaultOptions() *opts {
	return &opts{
		fallback: errorhandler.New(),
		logger:   zerolog.Nop(),
	}
}

// WithDevelopmentMode makes server errors be rendered into the response body.
// Never enable it in production.
func WithDevelopmentMode(flag bool) Option {
	return func(o *opts) { o.development = flag }
}

func WithServices(loc services.Locator) Option {
	return func(o *opts) {
		if loc != nil {
			o.services = loc
		}
	}
}

func WithAuthorizer(authorizer route.Authorizer) Option {
	return func(o *opts) { o.authorizer = authorizer }
}

func WithDefaultCORS(cors *route.CORSOptions) Option {
	return func(o *opts) { o.defaultCORS = cors }
}

// WithFallbackErrorHandler sets the handler for errors which are not declared by
// errorsx.
func WithFallbackErrorHandler(eh errorhandler.ErrorHandler) Option {
	return func(o *opts) {
		if eh != nil {
			o.fallback = eh
		}
	}
}

func WithExchangeOptions(options ...exchange.Option) Option {
	return func(o *opts) { o.exchangeOpts = append(o.exchangeOpts, options...) }
}

// WithLogger sets the logger used for requests whose context does not carry one.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *opts) { o.logger = logger }
}
