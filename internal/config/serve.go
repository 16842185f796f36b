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

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/inhies/go-bytesize"

	"github.com/dadrus/reqkit/route"
)

type ServeConfig struct {
	Host        string             `koanf:"host"`
	Port        int                `koanf:"port"         validate:"gt=0,lte=65535"`
	Timeout     Timeout            `koanf:"timeout"`
	BufferLimit BufferLimit        `koanf:"buffer_limit"`
	CORS        *route.CORSOptions `koanf:"cors,omitempty"`
	Respond     RespondConfig      `koanf:"respond"`
}

func (c ServeConfig) Address() string { return net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) }

// BufferLimit.Read limits the size of request headers.
type BufferLimit struct {
	Read bytesize.ByteSize `koanf:"read" mapstructure:"read"`
}

type Timeout struct {
	Read  time.Duration `koanf:"read,string"  mapstructure:"read"  validate:"gte=0"`
	Write time.Duration `koanf:"write,string" mapstructure:"write" validate:"gte=0"`
	Idle  time.Duration `koanf:"idle,string"  mapstructure:"idle"  validate:"gte=0"`
}

// RespondConfig controls how errors no route handler took care of are answered.
// Zero codes keep the defaults (400 and 500).
type RespondConfig struct {
	Verbose bool       `koanf:"verbose"`
	With    ErrorCodes `koanf:"with"`
}

type ErrorCodes struct {
	ClientError   int `koanf:"client_error"   mapstructure:"client_error"   validate:"omitempty,gte=400,lt=500"`
	InternalError int `koanf:"internal_error" mapstructure:"internal_error" validate:"omitempty,gte=500,lt=600"`
}

type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Path      string `koanf:"path"      validate:"omitempty,startswith=/"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

type BodyConfig struct {
	FormMaxMemory bytesize.ByteSize `koanf:"form_max_memory" mapstructure:"form_max_memory"`
	JSONMaxSize   bytesize.ByteSize `koanf:"json_max_size"   mapstructure:"json_max_size"`
}

type AuthConfig struct {
	Tokens []TokenConfig `koanf:"tokens" validate:"dive"`
}

// TokenConfig grants the policies to requests presenting the token as bearer token.
type TokenConfig struct {
	Token    string   `koanf:"token"    validate:"required"`
	Subject  string   `koanf:"subject"  validate:"required"`
	Policies []string `koanf:"policies"`
}

type NotesConfig struct {
	TTL      time.Duration `koanf:"ttl,string" mapstructure:"ttl" validate:"gte=0"`
	Capacity uint64        `koanf:"capacity"`
}

type FilesConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}
