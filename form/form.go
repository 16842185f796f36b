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

// Package form provides typed access to url-encoded and multipart form bodies.
package form

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/dadrus/reqkit/coerce"
	"github.com/dadrus/reqkit/errorsx"
	"github.com/dadrus/reqkit/internal/mediatype"
	"github.com/dadrus/reqkit/internal/x/lazy"
)

const defaultMaxMemory = 32 << 20

var errNoForm = errors.New("content type does not indicate form encoding")

type snapshot struct {
	values url.Values
	files  map[string][]*multipart.FileHeader
}

// Form gives access to the form fields and files sent in a request body. The body
// is parsed on first access only. The outcome of that, be it a snapshot or an
// error, is kept for the lifetime of the Form.
type Form struct {
	req       *http.Request
	present   bool
	multipart bool
	maxMemory int64
	snapshot  *lazy.Cell[*snapshot]
}

type Option func(f *Form)

// WithMaxMemory sets the number of bytes of a multipart body held in memory. The
// remainder is stored in temporary files.
func WithMaxMemory(size int64) Option {
	return func(f *Form) {
		if size > 0 {
			f.maxMemory = size
		}
	}
}

func New(req *http.Request, opts ...Option) *Form {
	frm := &Form{
		req:       req,
		present:   mediatype.IsForm(req),
		multipart: mediatype.IsMultipart(req),
		maxMemory: defaultMaxMemory,
	}

	for _, opt := range opts {
		opt(frm)
	}

	frm.snapshot = lazy.New(frm.parse)

	return frm
}

// IsPresent reports whether the Content-Type of the request indicates form
// encoding. The body is not inspected.
func (f *Form) IsPresent() bool { return f.present }

// Raw returns a copy of all body fields.
func (f *Form) Raw() (url.Values, error) {
	snap, err := f.snapshot.Get()
	if err != nil {
		return nil, err
	}

	res := make(url.Values, len(snap.values))
	for key, values := range snap.values {
		res[key] = append([]string(nil), values...)
	}

	return res, nil
}

// Files returns all uploaded files by field name. It is empty for url-encoded forms.
func (f *Form) Files() (map[string][]*multipart.FileHeader, error) {
	snap, err := f.snapshot.Get()
	if err != nil {
		return nil, err
	}

	res := make(map[string][]*multipart.FileHeader, len(snap.files))
	for key, files := range snap.files {
		res[key] = append([]*multipart.FileHeader(nil), files...)
	}

	return res, nil
}

func (f *Form) RequiredFile(name string) (*multipart.FileHeader, error) {
	snap, err := f.snapshot.Get()
	if err != nil {
		return nil, err
	}

	if files := snap.files[name]; len(files) != 0 {
		return files[0], nil
	}

	return nil, errorsx.MissingRequiredFormFile(name)
}

func (f *Form) OptionalFile(name string) (*multipart.FileHeader, bool, error) {
	file, err := f.RequiredFile(name)
	if err != nil {
		if errors.Is(err, errorsx.ErrMissingRequiredFormFile) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return file, true, nil
}

func (f *Form) FileList(name string) ([]*multipart.FileHeader, error) {
	snap, err := f.snapshot.Get()
	if err != nil {
		return nil, err
	}

	return append([]*multipart.FileHeader{}, snap.files[name]...), nil
}

// Close deletes the temporary files a parsed multipart body has been spilled to.
// Unparsed and url-encoded forms have nothing to release.
func (f *Form) Close() error {
	if !f.multipart || !f.snapshot.Resolved() {
		return nil
	}

	if _, err := f.snapshot.Get(); err != nil || f.req.MultipartForm == nil {
		return nil
	}

	return f.req.MultipartForm.RemoveAll()
}

func (f *Form) parse() (*snapshot, error) {
	if !f.present {
		return nil, errorsx.MissingRequiredForm(errNoForm)
	}

	if f.multipart {
		if err := f.req.ParseMultipartForm(f.maxMemory); err != nil {
			return nil, errorsx.MissingRequiredForm(err)
		}

		return &snapshot{values: f.req.MultipartForm.Value, files: f.req.MultipartForm.File}, nil
	}

	if err := f.req.ParseForm(); err != nil {
		return nil, errorsx.MissingRequiredForm(err)
	}

	return &snapshot{values: f.req.PostForm, files: map[string][]*multipart.FileHeader{}}, nil
}

// Required returns the first value of the named body field converted to T. An
// errorsx.ErrMissingRequiredFormField error is returned if there is no such value
// or it cannot be converted. Without a form an errorsx.ErrMissingRequiredForm
// error is returned instead.
func Required[T any](f *Form, name string) (T, error) {
	var zero T

	snap, err := f.snapshot.Get()
	if err != nil {
		return zero, err
	}

	values := snap.values[name]
	if len(values) == 0 {
		return zero, errorsx.MissingRequiredFormField(name)
	}

	val, ok := coerce.To[T](values[0])
	if !ok {
		return zero, errorsx.MissingRequiredFormField(name)
	}

	return val, nil
}

// Optional is like Required, but reports a missing or malformed field by setting
// ok to false. A missing form is still an error.
func Optional[T any](f *Form, name string) (T, bool, error) {
	val, err := Required[T](f, name)
	if err == nil {
		return val, true, nil
	}

	var zero T

	if errors.Is(err, errorsx.ErrMissingRequiredFormField) {
		return zero, false, nil
	}

	return zero, false, err
}

func Get[T any](f *Form, name string, def T) (T, error) {
	val, ok, err := Optional[T](f, name)
	if err != nil {
		return def, err
	}

	if !ok {
		return def, nil
	}

	return val, nil
}

// List converts all values of the named body field to T, skipping the ones which
// cannot be converted.
func List[T any](f *Form, name string) ([]T, error) {
	snap, err := f.snapshot.Get()
	if err != nil {
		return nil, err
	}

	values := snap.values[name]
	res := make([]T, 0, len(values))

	for _, raw := range values {
		if val, ok := coerce.To[T](raw); ok {
			res = append(res, val)
		}
	}

	return res, nil
}
