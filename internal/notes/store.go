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
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Store keeps notes in memory. Notes expire after the configured ttl unless they
// are updated. If the capacity is reached, the least recently used note is evicted.
type Store struct {
	c   *ttlcache.Cache[int, Note]
	seq atomic.Int64
	mut sync.Mutex
	now func() time.Time
}

// NewStore creates a store. A ttl of 0 disables expiration, a capacity of 0
// disables the limit.
func NewStore(ttl time.Duration, capacity uint64) *Store {
	return &Store{
		c: ttlcache.New[int, Note](
			ttlcache.WithTTL[int, Note](ttl),
			ttlcache.WithCapacity[int, Note](capacity),
		),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Start runs the removal of expired notes until Stop is called.
func (s *Store) Start(_ context.Context) error {
	go s.c.Start()

	return nil
}

func (s *Store) Stop(_ context.Context) error {
	s.c.Stop()

	return nil
}

func (s *Store) Create(nn NewNote) Note {
	now := s.now()
	note := Note{
		ID:      int(s.seq.Add(1)),
		Title:   nn.Title,
		Body:    nn.Body,
		Tags:    slices.Clone(nn.Tags),
		Created: now,
		Updated: now,
	}

	s.c.Set(note.ID, note, ttlcache.DefaultTTL)

	return note
}

func (s *Store) Get(id int) (Note, bool) {
	item := s.c.Get(id)
	if item == nil || item.IsExpired() {
		return Note{}, false
	}

	return item.Value(), true
}

// List returns up to limit notes having all given tags, ordered by id. A limit
// below 1 means no limit.
func (s *Store) List(tags []string, limit int) []Note {
	res := make([]Note, 0)

	s.c.Range(func(item *ttlcache.Item[int, Note]) bool {
		if note := item.Value(); !item.IsExpired() && note.hasTags(tags) {
			res = append(res, note)
		}

		return true
	})

	slices.SortFunc(res, func(a, b Note) int { return a.ID - b.ID })

	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}

	return res
}

// Update applies fn to the note with the given id and stores the result.
func (s *Store) Update(id int, fn func(note *Note)) (Note, bool) {
	s.mut.Lock()
	defer s.mut.Unlock()

	note, ok := s.Get(id)
	if !ok {
		return Note{}, false
	}

	fn(&note)

	note.ID = id
	note.Updated = s.now()

	s.c.Set(id, note, ttlcache.DefaultTTL)

	return note, true
}

func (s *Store) Delete(id int) bool {
	s.mut.Lock()
	defer s.mut.Unlock()

	_, found := s.c.GetAndDelete(id)

	return found
}
