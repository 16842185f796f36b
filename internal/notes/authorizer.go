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

package notes

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/dadrus/reqkit/internal/accesscontext"
	"github.com/dadrus/reqkit/internal/config"
	"github.com/dadrus/reqkit/route"
)

var ErrPolicyNotGranted = errors.New("policy not granted")

// TokenAuthorizer authorizes requests presenting one of the configured bearer tokens.
type TokenAuthorizer struct {
	tokens []config.TokenConfig
}

func NewTokenAuthorizer(conf config.AuthConfig) *TokenAuthorizer {
	return &TokenAuthorizer{tokens: conf.Tokens}
}

func (a *TokenAuthorizer) Authorize(req *http.Request, policies []string) error {
	token, ok := bearerToken(req)
	if !ok {
		return route.ErrUnauthenticated
	}

	grant, ok := a.lookup(token)
	if !ok {
		return route.ErrUnauthenticated
	}

	accesscontext.SetSubject(req.Context(), grant.Subject)

	for _, policy := range policies {
		if !slices.Contains(grant.Policies, policy) {
			return ErrPolicyNotGranted
		}
	}

	return nil
}

func (a *TokenAuthorizer) lookup(token string) (config.TokenConfig, bool) {
	for _, tc := range a.tokens {
		if subtle.ConstantTimeCompare([]byte(tc.Token), []byte(token)) == 1 {
			return tc, true
		}
	}

	return config.TokenConfig{}, false
}

func bearerToken(req *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(req.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, len(token) != 0
}
