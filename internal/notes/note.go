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

// Package notes implements a small note taking API on top of the route table. It
// exercises all extractors and workload kinds.
package notes

import (
	"slices"
	"time"
)

type Attachment struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
	Description string `json:"description,omitempty"`
}

type Note struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Body        string       `json:"body,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Created     time.Time    `json:"created"`
	Updated     time.Time    `json:"updated"`
}

// NewNote is the document expected when creating notes.
type NewNote struct {
	Title string   `json:"title"          validate:"required,max=120"`
	Body  string   `json:"body,omitempty" validate:"max=4096"`
	Tags  []string `json:"tags,omitempty" validate:"max=10,dive,required,max=32,slug"`
}

func (n Note) hasTags(tags []string) bool {
	for _, tag := range tags {
		if !slices.Contains(n.Tags, tag) {
			return false
		}
	}

	return true
}
