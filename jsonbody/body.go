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

// Package jsonbody provides typed access to JSON request bodies.
//
// Values are addressed with gjson paths, e.g. "author.name", "tags.0" or
// "items.#.id". Typed values are decoded strictly: unknown object members are
// rejected and struct properties are mandatory unless tagged omitempty or
// omitzero, or of pointer type.
package jsonbody

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/dadrus/reqkit/errorsx"
	"github.com/dadrus/reqkit/internal/mediatype"
	"github.com/dadrus/reqkit/internal/x/lazy"
)

var (
	errNotJSON       = errors.New("content type does not indicate a JSON document")
	errTooLarge      = errors.New("body exceeds the configured size limit")
	errMalformed     = errors.New("body is not a well-formed JSON document")
	errPathNotFound  = errors.New("path does not resolve")
	errMandatoryProp = errors.New("mandatory property is missing")
	errNullValue     = errors.New("value is null")

	utf8BOM = []byte{0xef, 0xbb, 0xbf}
)

// Body gives access to the JSON document sent in a request body. Negotiation
// happens on construction and does not touch the body. The body is read and
// parsed on first access. Its outcome is kept for the lifetime of the Body.
type Body struct {
	req      *http.Request
	json     bool
	enc      encoding.Encoding
	maxBytes int64
	doc      *lazy.Cell[[]byte]
}

type Option func(b *Body)

// WithMaxBytes limits the number of bytes read from the body. 0 means no limit.
func WithMaxBytes(size int64) Option {
	return func(b *Body) {
		if size >= 0 {
			b.maxBytes = size
		}
	}
}

func New(req *http.Request, opts ...Option) *Body {
	body := &Body{req: req}
	body.json, body.enc = negotiate(req)

	for _, opt := range opts {
		opt(body)
	}

	body.doc = lazy.New(body.read)

	return body
}

// IsPresent reports whether the request carries a well-formed JSON document. It
// reads the body if that did not happen yet.
func (b *Body) IsPresent() bool {
	_, err := b.doc.Get()

	return err == nil
}

// Raw returns the UTF-8 encoded document.
func (b *Body) Raw() ([]byte, error) {
	doc, err := b.doc.Get()
	if err != nil {
		return nil, err
	}

	return bytes.Clone(doc), nil
}

func (b *Body) lookup(path string) (gjson.Result, error) {
	doc, err := b.doc.Get()
	if err != nil {
		return gjson.Result{}, err
	}

	res := gjson.GetBytes(doc, path)
	if !res.Exists() {
		return res, errorsx.MissingRequiredJSONField(path, errPathNotFound)
	}

	return res, nil
}

func (b *Body) read() ([]byte, error) {
	if !b.json {
		return nil, errorsx.MissingRequiredJSON(errNotJSON)
	}

	if b.req.Body == nil {
		return nil, errorsx.MissingRequiredJSON(io.ErrUnexpectedEOF)
	}

	var src io.Reader = b.req.Body
	if b.maxBytes > 0 {
		src = io.LimitReader(src, b.maxBytes+1)
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, errorsx.MissingRequiredJSON(err)
	}

	if b.maxBytes > 0 && int64(len(raw)) > b.maxBytes {
		return nil, errorsx.MissingRequiredJSON(errTooLarge)
	}

	if b.enc != nil {
		if raw, _, err = transform.Bytes(b.enc.NewDecoder(), raw); err != nil {
			return nil, errorsx.MissingRequiredJSON(err)
		}
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)

	if !gjson.ValidBytes(raw) {
		return nil, errorsx.MissingRequiredJSON(errMalformed)
	}

	return raw, nil
}

// negotiate decides whether the request carries JSON and which encoding the body
// uses. A nil encoding stands for UTF-8.
func negotiate(req *http.Request) (bool, encoding.Encoding) {
	charset, ok := mediatype.JSONCharset(req)
	if !ok {
		return false, nil
	}

	if len(charset) == 0 || strings.EqualFold(charset, "utf-8") {
		return true, nil
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return false, nil
	}

	return true, enc
}
