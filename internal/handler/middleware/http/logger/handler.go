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

package logger

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-Id"

// New places a logger into the request context, which carries the id of the
// request. The id is taken from the X-Request-Id header, or generated if the
// header is absent. It is echoed back in the response.
func New(logger zerolog.Logger, opts ...Option) func(http.Handler) http.Handler {
	conf := config{header: requestIDHeader}

	for _, opt := range opts {
		opt(&conf)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			requestID := req.Header.Get(conf.header)
			if len(requestID) == 0 || len(requestID) > conf.maxLength() {
				requestID = uuid.NewString()
				req.Header.Set(conf.header, requestID)
			}

			rw.Header().Set(conf.header, requestID)

			reqLogger := logger.With().Str("_request_id", requestID).Logger()

			next.ServeHTTP(rw, req.WithContext(reqLogger.WithContext(req.Context())))
		})
	}
}
