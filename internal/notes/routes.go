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
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dadrus/reqkit/exchange"
	"github.com/dadrus/reqkit/fields"
	"github.com/dadrus/reqkit/form"
	"github.com/dadrus/reqkit/internal/accesscontext"
	"github.com/dadrus/reqkit/internal/x"
	"github.com/dadrus/reqkit/jsonbody"
	"github.com/dadrus/reqkit/route"
	"github.com/dadrus/reqkit/workload"
)

const (
	defaultListLimit = 20
	maxGreetings     = 10

	WritePolicy = "notes:write"
)

type notFound struct {
	Error string `json:"error"`
	ID    int    `json:"id"`
}

// Options control the registration of the notes routes.
type Options struct {
	// FilesDir is the directory served by GET /files/{name}.
	FilesDir string
	// CORS enables the default CORS policy on the notes routes.
	CORS bool
}

// Register adds all routes of the notes API to tbl. The handlers expect a *Store
// to be available through the service locator.
func Register(tbl *route.Table, opts Options) error {
	notesPolicy := route.Policy{
		CORS: route.CORS{Mode: x.IfThenElse(opts.CORS, route.CORSDefault, route.CORSDisabled)},
	}

	writePolicy := notesPolicy
	writePolicy.Authorization = route.Authorization{
		Mode:     route.RequireAuthorization,
		Policies: []string{WritePolicy},
	}

	for _, r := range []struct {
		method  string
		pattern string
		handler route.Handler
		policy  route.Policy
	}{
		{http.MethodGet, "/health", health, route.Policy{}},
		{http.MethodGet, "/greet/{name}", greet, route.Policy{}},
		{http.MethodGet, "/notes", listNotes, notesPolicy},
		{http.MethodGet, "/notes/{id}", getNote, notesPolicy},
		{http.MethodPost, "/notes", createNote, notesPolicy},
		{http.MethodPatch, "/notes/{id}", updateNote, notesPolicy},
		{http.MethodDelete, "/notes/{id}", deleteNote, writePolicy},
		{http.MethodPost, "/notes/{id}/attachments", addAttachment, notesPolicy},
		{http.MethodGet, "/files/{name}", serveFile(opts.FilesDir), route.Policy{}},
		{http.MethodGet, "/whoami", whoami, route.Policy{Metadata: map[string]any{"feature": "whoami"}}},
	} {
		if err := tbl.Register(r.method, r.pattern, r.handler, r.policy); err != nil {
			return err
		}
	}

	return nil
}

func health(*exchange.Request) (workload.Workload, error) { return workload.Text("ok"), nil }

func greet(r *exchange.Request) (workload.Workload, error) {
	name, err := fields.Required[string](r.Route(), "name")
	if err != nil {
		return nil, err
	}

	times := min(max(fields.Get(r.Query(), "times", 1), 1), maxGreetings)
	greeting := "Hello " + name + x.IfThenElse(fields.Get(r.Query(), "excited", false), "!", ".")

	return workload.Text(strings.TrimSpace(strings.Repeat(greeting+" ", times))), nil
}

func listNotes(r *exchange.Request) (workload.Workload, error) {
	store, err := exchange.Service[*Store](r)
	if err != nil {
		return nil, err
	}

	tags := fields.List[string](r.Query(), "tag")
	limit := fields.Get(r.Query(), "limit", defaultListLimit)

	return workload.JSON(store.List(tags, limit)), nil
}

func getNote(r *exchange.Request) (workload.Workload, error) {
	store, err := exchange.Service[*Store](r)
	if err != nil {
		return nil, err
	}

	id, err := fields.Required[int](r.Route(), "id")
	if err != nil {
		return nil, err
	}

	note, ok := store.Get(id)
	if !ok {
		return noteNotFound(r, id), nil
	}

	return workload.JSON(note), nil
}

func createNote(r *exchange.Request) (workload.Workload, error) {
	store, err := exchange.Service[*Store](r)
	if err != nil {
		return nil, err
	}

	nn, err := jsonbody.Exact[NewNote](r.JSON())
	if err != nil {
		return nil, err
	}

	note := store.Create(nn)

	r.Header().Set("Location", "/notes/"+strconv.Itoa(note.ID))
	r.SetStatus(http.StatusCreated)

	return workload.JSON(note), nil
}

func updateNote(r *exchange.Request) (workload.Workload, error) {
	store, err := exchange.Service[*Store](r)
	if err != nil {
		return nil, err
	}

	id, err := fields.Required[int](r.Route(), "id")
	if err != nil {
		return nil, err
	}

	title, hasTitle, err := jsonbody.Optional[string](r.JSON(), "title")
	if err != nil {
		return nil, err
	}

	body, hasBody, err := jsonbody.Optional[string](r.JSON(), "body")
	if err != nil {
		return nil, err
	}

	tags, hasTags, err := jsonbody.Optional[[]string](r.JSON(), "tags")
	if err != nil {
		return nil, err
	}

	note, ok := store.Update(id, func(note *Note) {
		if hasTitle {
			note.Title = title
		}

		if hasBody {
			note.Body = body
		}

		if hasTags {
			note.Tags = tags
		}
	})
	if !ok {
		return noteNotFound(r, id), nil
	}

	return workload.JSON(note), nil
}

func deleteNote(r *exchange.Request) (workload.Workload, error) {
	store, err := exchange.Service[*Store](r)
	if err != nil {
		return nil, err
	}

	id, err := fields.Required[int](r.Route(), "id")
	if err != nil {
		return nil, err
	}

	r.Logger().Info().Int("_note", id).Str("_subject", accesscontext.Subject(r.Context())).Msg("Deleting note")

	r.SetStatus(x.IfThenElse(store.Delete(id), http.StatusNoContent, http.StatusNotFound))

	return workload.End(), nil
}

func addAttachment(r *exchange.Request) (workload.Workload, error) {
	store, err := exchange.Service[*Store](r)
	if err != nil {
		return nil, err
	}

	id, err := fields.Required[int](r.Route(), "id")
	if err != nil {
		return nil, err
	}

	file, err := r.Form().RequiredFile("file")
	if err != nil {
		return nil, err
	}

	description, err := form.Get(r.Form(), "description", "")
	if err != nil {
		return nil, err
	}

	attachment := Attachment{
		Name:        file.Filename,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
		Description: description,
	}

	note, ok := store.Update(id, func(note *Note) { note.Attachments = append(note.Attachments, attachment) })
	if !ok {
		return noteNotFound(r, id), nil
	}

	r.SetStatus(http.StatusCreated)

	return workload.JSON(note), nil
}

func serveFile(dir string) route.Handler {
	return func(r *exchange.Request) (workload.Workload, error) {
		name, err := fields.Required[string](r.Route(), "name")
		if err != nil {
			return nil, err
		}

		// only files directly in dir are served
		base := filepath.Base(name)

		return workload.File(filepath.Join(dir, base), workload.WithDownloadName(base)), nil
	}
}

func whoami(r *exchange.Request) (workload.Workload, error) {
	visits := fields.Get(r.Cookie(), "visits", 0) + 1

	r.Cookie().Set("visits", strconv.Itoa(visits))
	r.Header().Set("X-Visits", strconv.Itoa(visits))

	return workload.JSON(map[string]any{
		"user_agent": fields.Get(r.Header(), "User-Agent", ""),
		"languages":  fields.List[string](r.Header(), "Accept-Language"),
		"visits":     visits,
		"metadata":   r.Metadata(),
	}), nil
}

func noteNotFound(r *exchange.Request, id int) workload.Workload {
	r.SetStatus(http.StatusNotFound)

	return workload.JSON(notFound{Error: "note not found", ID: id})
}
