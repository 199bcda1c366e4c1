// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package engine

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// StaticRoster is a fixed in-memory Roster for seeds and experiments where
// the character list is known up front.
type StaticRoster struct {
	mu     sync.RWMutex
	byID   map[ulid.ULID]map[ulid.ULID]string
	byName map[ulid.ULID]map[string]ulid.ULID
}

// NewStaticRoster creates an empty roster.
func NewStaticRoster() *StaticRoster {
	return &StaticRoster{
		byID:   make(map[ulid.ULID]map[ulid.ULID]string),
		byName: make(map[ulid.ULID]map[string]ulid.ULID),
	}
}

// Add registers a character under a novel.
func (r *StaticRoster) Add(novelID, characterID ulid.ULID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[novelID] == nil {
		r.byID[novelID] = make(map[ulid.ULID]string)
		r.byName[novelID] = make(map[string]ulid.ULID)
	}
	r.byID[novelID][characterID] = name
	r.byName[novelID][name] = characterID
}

func (r *StaticRoster) ResolveName(novelID, characterID ulid.ULID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byID[novelID][characterID]
	return name, ok
}

func (r *StaticRoster) ResolveID(novelID ulid.ULID, name string) (ulid.ULID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[novelID][name]
	return id, ok
}

var _ Roster = (*StaticRoster)(nil)
