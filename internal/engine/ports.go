// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

// Package engine orchestrates the karma/face graph: it owns the
// RecordKarmaEvent pipeline, per-novel single-writer locking, the
// persistence port, and context formatting for the generation collaborator.
package engine

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"

	"github.com/karmaloom/karmaloom/internal/face"
	"github.com/karmaloom/karmaloom/internal/feud"
	"github.com/karmaloom/karmaloom/internal/graph"
	"github.com/karmaloom/karmaloom/internal/karma"
	"github.com/karmaloom/karmaloom/internal/ripple"
)

// ErrNotFound is returned by the persistence port for missing entities.
var ErrNotFound = errors.New("not found")

// ErrPersistence marks a failure of the persistence port. The engine never
// retries; retry policy belongs to the embedding service.
var ErrPersistence = errors.New("persistence failure")

// ErrNovelDisabled is returned when the engine is switched off for a novel.
var ErrNovelDisabled = errors.New("karma engine disabled for novel")

// Store is the persistence port. The engine requires only these CRUD
// operations keyed by novel id and entity id; it never assumes a storage
// technology. Implementations are accessed synchronously.
type Store interface {
	LoadConfig(ctx context.Context, novelID ulid.ULID) (*NovelConfig, error)
	SaveConfig(ctx context.Context, cfg *NovelConfig) error

	LoadProfiles(ctx context.Context, novelID ulid.ULID) ([]*face.Profile, error)
	SaveProfile(ctx context.Context, novelID ulid.ULID, p *face.Profile) error

	LoadLinks(ctx context.Context, novelID ulid.ULID) ([]*graph.Link, error)
	UpsertLink(ctx context.Context, novelID ulid.ULID, l *graph.Link) error

	LoadEvents(ctx context.Context, novelID ulid.ULID) ([]*karma.Event, error)
	SaveEvent(ctx context.Context, novelID ulid.ULID, e *karma.Event) error

	LoadFeuds(ctx context.Context, novelID ulid.ULID) ([]*feud.BloodFeud, error)
	SaveFeud(ctx context.Context, novelID ulid.ULID, f *feud.BloodFeud) error

	LoadDebts(ctx context.Context, novelID ulid.ULID) ([]*feud.FaceDebt, error)
	SaveDebt(ctx context.Context, novelID ulid.ULID, d *feud.FaceDebt) error

	LoadRipples(ctx context.Context, novelID ulid.ULID) ([]*ripple.Ripple, error)
	SaveRipple(ctx context.Context, novelID ulid.ULID, r *ripple.Ripple) error
	DeleteRipple(ctx context.Context, novelID, rippleID ulid.ULID) error
}

// Roster resolves character references against the externally owned
// character roster.
type Roster interface {
	// ResolveName maps a character id to its display name.
	ResolveName(novelID, characterID ulid.ULID) (string, bool)
	// ResolveID maps a display name to a character id.
	ResolveID(novelID ulid.ULID, name string) (ulid.ULID, bool)
}

// CharacterRef names a character by id, by name, or both. A zero ID is
// resolved through the roster; an unresolvable reference rejects the event
// with face.ErrCharacterNotFound.
type CharacterRef struct {
	ID   ulid.ULID
	Name string
}
