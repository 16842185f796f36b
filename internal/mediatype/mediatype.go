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

// Package mediatype classifies the Content-Type of inbound requests.
package mediatype

import (
	"net/http"
	"strings"

	"github.com/elnormous/contenttype"
)

const (
	FormURLEncoded = "application/x-www-form-urlencoded"
	MultipartForm  = "multipart/form-data"
	JSON           = "application/json"
)

// Of returns the parsed media type of the request. ok is false if the request has
// no or an unparsable Content-Type header.
func Of(req *http.Request) (contenttype.MediaType, bool) {
	if len(req.Header.Get("Content-Type")) == 0 {
		return contenttype.MediaType{}, false
	}

	mt, err := contenttype.GetMediaType(req)
	if err != nil || len(mt.Type) == 0 {
		return contenttype.MediaType{}, false
	}

	return mt, true
}

// IsForm reports whether the request body is url-encoded or multipart form data.
func IsForm(req *http.Request) bool {
	mt, ok := Of(req)
	if !ok {
		return false
	}

	mime := mime(mt)

	return mime == FormURLEncoded || mime == MultipartForm
}

// IsMultipart reports whether the request body is multipart form data.
func IsMultipart(req *http.Request) bool {
	mt, ok := Of(req)

	return ok && mime(mt) == MultipartForm
}

// JSONCharset reports whether the request carries a JSON document, that is its
// media type is application/json or has a +json suffix, and returns the value of
// the charset parameter, if any.
func JSONCharset(req *http.Request) (string, bool) {
	mt, ok := Of(req)
	if !ok {
		return "", false
	}

	subtype := strings.ToLower(mt.Subtype)
	if mime(mt) != JSON && !strings.HasSuffix(subtype, "+json") {
		return "", false
	}

	return Parameter(mt, "charset"), true
}

// Parameter returns the value of the named media type parameter. Names are
// compared case-insensitively.
func Parameter(mt contenttype.MediaType, name string) string {
	for key, value := range mt.Parameters {
		if strings.EqualFold(key, name) {
			return value
		}
	}

	return ""
}

func mime(mt contenttype.MediaType) string {
	return strings.ToLower(mt.Type + "/" + mt.Subtype)
}
