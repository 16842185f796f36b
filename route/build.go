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

package route

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"

	"github.com/dadrus/reqkit/errorsx"
	"github.com/dadrus/reqkit/internal/x/httpx"
)

// ErrUnauthenticated is returned by an Authorizer if the request does not carry
// valid credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authorizer decides whether a request satisfies the given policies. Returning
// ErrUnauthenticated results in 401, any other error in 403.
type Authorizer interface {
	Authorize(req *http.Request, policies []string) error
}

type AuthorizerFunc func(req *http.Request, policies []string) error

func (f AuthorizerFunc) Authorize(req *http.Request, policies []string) error {
	return f(req, policies)
}

// Environment provides what policies refer to, but do not define themselves.
type Environment struct {
	Authorizer  Authorizer
	DefaultCORS *CORSOptions
}

type step struct {
	name  string
	apply func(c *Conventions, env Environment, md *map[string]any) error
}

// steps are applied in exactly this order.
var steps = []step{ //nolint:gochecknoglobals
	{name: "pre-configure", apply: func(c *Conventions, _ Environment, _ *map[string]any) error {
		return configure(c, c.entry.Policy.PreConfigure)
	}},
	{name: "authorization", apply: func(c *Conventions, env Environment, _ *map[string]any) error {
		return authorizationStep(c, env)
	}},
	{name: "cors", apply: func(c *Conventions, env Environment, _ *map[string]any) error {
		return corsStep(c, env)
	}},
	{name: "host filter", apply: func(c *Conventions, _ Environment, _ *map[string]any) error {
		return hostStep(c)
	}},
	{name: "metadata", apply: func(c *Conventions, _ Environment, md *map[string]any) error {
		return metadataStep(c, md)
	}},
	{name: "post-configure", apply: func(c *Conventions, _ Environment, _ *map[string]any) error {
		return configure(c, c.entry.Policy.PostConfigure)
	}},
}

// Build wraps terminal with the middlewares the policy of entry asks for. Requests
// see the route metadata as it is after all steps have been applied.
func Build(entry Entry, env Environment, terminal http.Handler) (http.Handler, error) {
	conv := newConventions(entry)
	md := new(map[string]any)

	for _, s := range steps {
		if err := s.apply(conv, env, md); err != nil {
			if errorsx.IsDeclared(err) {
				return nil, err
			}

			return nil, errorsx.Internal(
				fmt.Sprintf("%s step failed for route %s", s.name, entry.Key())).CausedBy(err)
		}
	}

	*md = conv.Metadata()

	return conv.chain.Then(terminal), nil
}

func configure(c *Conventions, fn ConfigureFunc) error {
	if fn == nil {
		return nil
	}

	return fn(c)
}

func authorizationStep(c *Conventions, env Environment) error {
	authz := c.entry.Policy.Authorization

	switch authz.Mode {
	case AllowAnonymous:
		return nil
	case RequireAuthorization:
		if env.Authorizer == nil {
			return errorsx.Internal("route " + c.entry.Key() + " requires authorization, but no authorizer is configured")
		}

		c.Use(authorize(env.Authorizer, slices.Clone(authz.Policies)))

		return nil
	default:
		return errorsx.Internal(fmt.Sprintf("unsupported authorization mode %d", authz.Mode))
	}
}

func authorize(authorizer Authorizer, policies []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			if err := authorizer.Authorize(req, policies); err != nil {
				code := http.StatusForbidden
				if errors.Is(err, ErrUnauthenticated) {
					code = http.StatusUnauthorized
				}

				zerolog.Ctx(req.Context()).Debug().Err(err).Int("_http_status_code", code).
					Msg("Authorization failed")

				http.Error(rw, http.StatusText(code), code)

				return
			}

			next.ServeHTTP(rw, req)
		})
	}
}

func corsOptions(entry Entry, env Environment) (*CORSOptions, error) {
	switch entry.Policy.CORS.Mode {
	case CORSDisabled:
		return nil, nil // nolint: nilnil
	case CORSDefault:
		if env.DefaultCORS == nil {
			return nil, errorsx.Internal("route " + entry.Key() + " uses the default CORS policy, but none is configured")
		}

		return env.DefaultCORS, nil
	case CORSCustom:
		if entry.Policy.CORS.Custom == nil {
			return nil, errorsx.Internal("route " + entry.Key() + " uses a custom CORS policy, but does not define it")
		}

		return entry.Policy.CORS.Custom, nil
	default:
		return nil, errorsx.Internal(fmt.Sprintf("unsupported CORS mode %d", entry.Policy.CORS.Mode))
	}
}

func corsStep(c *Conventions, env Environment) error {
	opts, err := corsOptions(c.entry, env)
	if err != nil || opts == nil {
		return err
	}

	c.Use(opts.handler(c.entry.Method).Handler)

	return nil
}

type hostMatcher struct {
	withPort bool
	glob     glob.Glob
}

func hostStep(c *Conventions) error {
	if len(c.entry.Policy.Hosts) == 0 {
		return nil
	}

	matchers := make([]hostMatcher, 0, len(c.entry.Policy.Hosts))

	for _, pattern := range c.entry.Policy.Hosts {
		pattern = strings.ToLower(pattern)

		compiled, err := glob.Compile(pattern, '.')
		if err != nil {
			return errorsx.Internal("invalid host pattern '" + pattern + "'").CausedBy(err)
		}

		matchers = append(matchers, hostMatcher{withPort: strings.Contains(pattern, ":"), glob: compiled})
	}

	c.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			hostPort := strings.ToLower(req.Host)
			host, _ := httpx.HostPort(hostPort)

			for _, m := range matchers {
				if (m.withPort && m.glob.Match(hostPort)) || (!m.withPort && m.glob.Match(host)) {
					next.ServeHTTP(rw, req)

					return
				}
			}

			http.NotFound(rw, req)
		})
	})

	return nil
}

func metadataStep(c *Conventions, md *map[string]any) error {
	entry := c.entry

	c.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(rw, req.WithContext(withRoute(req.Context(), entry, *md)))
		})
	})

	return nil
}

// Preflight creates the handler answering CORS preflight requests for entries,
// which are expected to share a pattern. The entry serving the requested method
// decides about the response.
func Preflight(entries []Entry, env Environment) (http.Handler, error) {
	handlers := make(map[string]http.Handler, len(entries))
	methods := make([]string, 0, len(entries))

	for _, entry := range entries {
		methods = append(methods, entry.Method)

		opts, err := corsOptions(entry, env)
		if err != nil {
			return nil, err
		}

		if opts != nil {
			handlers[entry.Method] = opts.handler(entry.Method).Handler(http.HandlerFunc(
				func(rw http.ResponseWriter, _ *http.Request) { rw.WriteHeader(http.StatusNoContent) }))
		}
	}

	slices.Sort(methods)
	allow := strings.Join(append(methods, http.MethodOptions), ", ")

	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if handler, ok := handlers[req.Header.Get("Access-Control-Request-Method")]; ok {
			handler.ServeHTTP(rw, req)

			return
		}

		rw.Header().Set("Allow", allow)
		rw.WriteHeader(http.StatusNoContent)
	}), nil
}

// Summary renders the policy of entry in a human-readable form.
func Summary(entry Entry) map[string]string {
	pol := entry.Policy

	md := slices.Sorted(maps.Keys(pol.Metadata))
	for i, key := range md {
		md[i] = fmt.Sprintf("%s=%v", key, pol.Metadata[key])
	}

	return map[string]string{
		"auth":     strings.TrimSpace(pol.Authorization.Mode.String() + " " + strings.Join(pol.Authorization.Policies, ",")),
		"cors":     pol.CORS.Mode.String(),
		"hosts":    strings.Join(pol.Hosts, ","),
		"metadata": strings.Join(md, ","),
	}
}
