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

// Package workload defines what a handler produces and how it is turned into a
// response.
package workload

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

const (
	textContentType = "text/plain; charset=utf-8"
	jsonContentType = "application/json; charset=utf-8"
)

// Workload is the result of a handler. The set of implementations is closed. Use
// End, Text, File or JSON to create one.
type Workload interface {
	write(rw http.ResponseWriter, req *http.Request, status int) error
}

type end struct{}

type text struct {
	body string
}

type file struct {
	path         string
	contentType  string
	downloadName string
}

type jsonValue struct {
	value any
}

// End finalizes the response as it is. Only the status is written.
func End() Workload { return end{} }

// Text writes body as a plain text response.
func Text(body string) Workload { return text{body: body} }

// JSON writes the JSON representation of value.
func JSON(value any) Workload { return jsonValue{value: value} }

type FileOption func(f *file)

// WithContentType overrides the content type derived from the file extension or
// content.
func WithContentType(contentType string) FileOption {
	return func(f *file) { f.contentType = contentType }
}

// WithDownloadName makes clients save the file under the given name instead of
// displaying it.
func WithDownloadName(name string) FileOption {
	return func(f *file) { f.downloadName = name }
}

// File streams the file at path. Range and conditional requests are supported.
func File(path string, opts ...FileOption) Workload {
	wl := file{path: path}

	for _, opt := range opts {
		opt(&wl)
	}

	return wl
}

// Write translates w into a response. A status of 0 means 200.
func Write(rw http.ResponseWriter, req *http.Request, status int, w Workload) error {
	if w == nil {
		w = end{}
	}

	if status == 0 {
		status = http.StatusOK
	}

	return w.write(rw, req, status)
}

// Kind names the type of w, e.g. for logging.
func Kind(w Workload) string {
	switch w.(type) {
	case text:
		return "text"
	case file:
		return "file"
	case jsonValue:
		return "json"
	default:
		return "end"
	}
}

func (end) write(rw http.ResponseWriter, _ *http.Request, status int) error {
	rw.WriteHeader(status)

	return nil
}

func (t text) write(rw http.ResponseWriter, _ *http.Request, status int) error {
	rw.Header().Set("Content-Type", textContentType)
	rw.WriteHeader(status)

	_, err := rw.Write([]byte(t.body))

	return err
}

func (j jsonValue) write(rw http.ResponseWriter, _ *http.Request, status int) error {
	body, err := json.Marshal(j.value)
	if err != nil {
		return err
	}

	rw.Header().Set("Content-Type", jsonContentType)
	rw.WriteHeader(status)

	_, err = rw.Write(body)

	return err
}

func (f file) write(rw http.ResponseWriter, req *http.Request, _ int) error {
	fd, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(rw, req)

			return nil
		}

		return err
	}

	defer fd.Close()

	info, err := fd.Stat()
	if err != nil {
		return err
	}

	if info.IsDir() {
		http.NotFound(rw, req)

		return nil
	}

	if len(f.contentType) != 0 {
		rw.Header().Set("Content-Type", f.contentType)
	}

	if len(f.downloadName) != 0 {
		rw.Header().Set("Content-Disposition",
			mime.FormatMediaType("attachment", map[string]string{"filename": f.downloadName}))
	}

	http.ServeContent(rw, req, filepath.Base(f.path), info.ModTime(), fd)

	return nil
}
