// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package engine

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/karmaloom/karmaloom/internal/face"
	"github.com/karmaloom/karmaloom/internal/feud"
	"github.com/karmaloom/karmaloom/internal/graph"
	"github.com/karmaloom/karmaloom/internal/karma"
	"github.com/karmaloom/karmaloom/internal/ripple"
)

// MemoryStore is an in-memory Store for tests and local experimentation.
// Everything is held per novel; nothing survives the process.
type MemoryStore struct {
	mu      sync.Mutex
	configs map[ulid.ULID]*NovelConfig
	novels  map[ulid.ULID]*memoryNovel
}

type memoryNovel struct {
	profiles map[ulid.ULID]*face.Profile
	links    []*graph.Link
	events   []*karma.Event
	feuds    []*feud.BloodFeud
	debts    []*feud.FaceDebt
	ripples  map[ulid.ULID]*ripple.Ripple
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		configs: make(map[ulid.ULID]*NovelConfig),
		novels:  make(map[ulid.ULID]*memoryNovel),
	}
}

func (s *MemoryStore) novel(id ulid.ULID) *memoryNovel {
	n, ok := s.novels[id]
	if !ok {
		n = &memoryNovel{
			profiles: make(map[ulid.ULID]*face.Profile),
			ripples:  make(map[ulid.ULID]*ripple.Ripple),
		}
		s.novels[id] = n
	}
	return n
}

func (s *MemoryStore) LoadConfig(_ context.Context, novelID ulid.ULID) (*NovelConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[novelID]
	if !ok {
		return nil, ErrNotFound
	}
	return cfg, nil
}

func (s *MemoryStore) SaveConfig(_ context.Context, cfg *NovelConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[cfg.NovelID] = cfg
	return nil
}

func (s *MemoryStore) LoadProfiles(_ context.Context, novelID ulid.ULID) ([]*face.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.novel(novelID)
	out := make([]*face.Profile, 0, len(n.profiles))
	for _, p := range n.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryStore) SaveProfile(_ context.Context, novelID ulid.ULID, p *face.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.novel(novelID).profiles[p.CharacterID] = p
	return nil
}

func (s *MemoryStore) LoadLinks(_ context.Context, novelID ulid.ULID) ([]*graph.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.novel(novelID)
	return append([]*graph.Link(nil), n.links...), nil
}

func (s *MemoryStore) UpsertLink(_ context.Context, novelID ulid.ULID, l *graph.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.novel(novelID)
	for i, existing := range n.links {
		if existing.SourceID == l.SourceID && existing.TargetID == l.TargetID && existing.Type == l.Type {
			n.links[i] = l
			return nil
		}
	}
	n.links = append(n.links, l)
	return nil
}

func (s *MemoryStore) LoadEvents(_ context.Context, novelID ulid.ULID) ([]*karma.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*karma.Event(nil), s.novel(novelID).events...), nil
}

func (s *MemoryStore) SaveEvent(_ context.Context, novelID ulid.ULID, e *karma.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.novel(novelID)
	for i, existing := range n.events {
		if existing.ID == e.ID {
			n.events[i] = e
			return nil
		}
	}
	n.events = append(n.events, e)
	return nil
}

func (s *MemoryStore) LoadFeuds(_ context.Context, novelID ulid.ULID) ([]*feud.BloodFeud, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*feud.BloodFeud(nil), s.novel(novelID).feuds...), nil
}

func (s *MemoryStore) SaveFeud(_ context.Context, novelID ulid.ULID, f *feud.BloodFeud) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.novel(novelID)
	for i, existing := range n.feuds {
		if existing.ID == f.ID {
			n.feuds[i] = f
			return nil
		}
	}
	n.feuds = append(n.feuds, f)
	return nil
}

func (s *MemoryStore) LoadDebts(_ context.Context, novelID ulid.ULID) ([]*feud.FaceDebt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*feud.FaceDebt(nil), s.novel(novelID).debts...), nil
}

func (s *MemoryStore) SaveDebt(_ context.Context, novelID ulid.ULID, d *feud.FaceDebt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.novel(novelID)
	for i, existing := range n.debts {
		if existing.ID == d.ID {
			n.debts[i] = d
			return nil
		}
	}
	n.debts = append(n.debts, d)
	return nil
}

func (s *MemoryStore) LoadRipples(_ context.Context, novelID ulid.ULID) ([]*ripple.Ripple, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.novel(novelID)
	out := make([]*ripple.Ripple, 0, len(n.ripples))
	for _, r := range n.ripples {
		out = append(out, r)
	}
	return out, nil
}

func (s *MemoryStore) SaveRipple(_ context.Context, novelID ulid.ULID, r *ripple.Ripple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.novel(novelID).ripples[r.ID] = r
	return nil
}

func (s *MemoryStore) DeleteRipple(_ context.Context, novelID, rippleID ulid.ULID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.novel(novelID).ripples, rippleID)
	return nil
}

var _ Store = (*MemoryStore)(nil)
