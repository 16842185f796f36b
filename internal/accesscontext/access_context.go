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

// Package accesscontext carries what became known about a request while it was
// served, so that the access log can report it once the response is written.
package accesscontext

import (
	"context"
)

type ctxKey struct{}

type accessContext struct {
	err     error
	subject string
	route   string
}

func New(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, &accessContext{})
}

func from(ctx context.Context) *accessContext {
	if c, ok := ctx.Value(ctxKey{}).(*accessContext); ok {
		return c
	}

	return &accessContext{}
}

// Error returns the error the request failed with, if any.
func Error(ctx context.Context) error { return from(ctx).err }

func SetError(ctx context.Context, err error) { from(ctx).err = err }

// Subject returns the authenticated subject, the request has been served for.
func Subject(ctx context.Context) string { return from(ctx).subject }

func SetSubject(ctx context.Context, sub string) { from(ctx).subject = sub }

// Route returns the key ("METHOD /pattern") of the route which handled the request.
func Route(ctx context.Context) string { return from(ctx).route }

func SetRoute(ctx context.Context, key string) { from(ctx).route = key }
