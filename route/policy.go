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
	"net/http"

	"github.com/rs/cors"
)

type AuthorizationMode int

const (
	AllowAnonymous AuthorizationMode = iota
	RequireAuthorization
)

func (m AuthorizationMode) String() string {
	switch m {
	case AllowAnonymous:
		return "anonymous"
	case RequireAuthorization:
		return "required"
	default:
		return "unknown"
	}
}

type Authorization struct {
	Mode     AuthorizationMode
	Policies []string
}

type CORSMode int

const (
	CORSDisabled CORSMode = iota
	CORSDefault
	CORSCustom
)

func (m CORSMode) String() string {
	switch m {
	case CORSDisabled:
		return "disabled"
	case CORSDefault:
		return "default"
	case CORSCustom:
		return "custom"
	default:
		return "unknown"
	}
}

type CORS struct {
	Mode   CORSMode
	Custom *CORSOptions
}

type CORSOptions struct {
	AllowedOrigins   []string `koanf:"allowed_origins"   mapstructure:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"   mapstructure:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"   mapstructure:"allowed_headers"`
	ExposedHeaders   []string `koanf:"exposed_headers"   mapstructure:"exposed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials" mapstructure:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"           mapstructure:"max_age"`
}

// handler creates the CORS handler for a route registered for method. If no
// methods are allowed explicitly, only method is.
func (o *CORSOptions) handler(method string) *cors.Cors {
	methods := o.AllowedMethods
	if len(methods) == 0 {
		methods = []string{method}
	}

	return cors.New(cors.Options{
		AllowedOrigins:       o.AllowedOrigins,
		AllowedMethods:       methods,
		AllowedHeaders:       o.AllowedHeaders,
		ExposedHeaders:       o.ExposedHeaders,
		AllowCredentials:     o.AllowCredentials,
		MaxAge:               o.MaxAge,
		OptionsSuccessStatus: http.StatusNoContent,
	})
}

// ConfigureFunc customizes the Conventions of a route while it is built.
type ConfigureFunc func(c *Conventions) error

// Policy bundles the cross-cutting concerns of a route.
type Policy struct {
	Authorization Authorization
	CORS          CORS
	// Hosts restricts the route to requests for matching hosts. Patterns are
	// globs with '.' as separator. A pattern containing ':' is matched against
	// host and port, otherwise against the host only. Empty means any host.
	Hosts         []string
	Metadata      map[string]any
	PreConfigure  ConfigureFunc
	PostConfigure ConfigureFunc
}
