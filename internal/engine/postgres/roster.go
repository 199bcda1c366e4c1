// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// ProfileRoster resolves character names from the face_profiles table. It
// only knows characters that have appeared in at least one karma event;
// first appearances carry their names on the event itself and the ledger
// bootstraps their profiles from those.
type ProfileRoster struct {
	pool poolIface
}

// NewProfileRoster creates a roster backed by the given pool.
func NewProfileRoster(pool poolIface) *ProfileRoster {
	return &ProfileRoster{pool: pool}
}

func (r *ProfileRoster) ResolveName(novelID, characterID ulid.ULID) (string, bool) {
	var name string
	err := r.pool.QueryRow(context.Background(),
		`SELECT character_name FROM face_profiles WHERE novel_id = $1 AND character_id = $2`,
		novelID.String(), characterID.String(),
	).Scan(&name)
	if err != nil {
		return "", false
	}
	return name, true
}

func (r *ProfileRoster) ResolveID(novelID ulid.ULID, name string) (ulid.ULID, bool) {
	var raw string
	err := r.pool.QueryRow(context.Background(),
		`SELECT character_id FROM face_profiles WHERE novel_id = $1 AND character_name = $2`,
		novelID.String(), name,
	).Scan(&raw)
	if err != nil {
		return ulid.ULID{}, false
	}
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, false
	}
	return id, true
}
