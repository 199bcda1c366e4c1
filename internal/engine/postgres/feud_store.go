// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/karmaloom/karmaloom/internal/feud"
)

// LoadFeuds retrieves every blood feud for a novel.
func (s *Store) LoadFeuds(ctx context.Context, novelID ulid.ULID) ([]*feud.BloodFeud, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, party_a, party_b, cause, origin_event_id, intensity,
		       resolved, resolution, resolved_chapter, escalations, created_at
		FROM blood_feuds WHERE novel_id = $1
		ORDER BY id
	`, novelID.String())
	if err != nil {
		return nil, oops.Code("FEUD_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	defer rows.Close()

	var feuds []*feud.BloodFeud
	for rows.Next() {
		var (
			f           feud.BloodFeud
			id          string
			originID    string
			resolution  string
			partyA      []byte
			partyB      []byte
			escalations []byte
		)
		err := rows.Scan(&id, &partyA, &partyB, &f.Cause, &originID, &f.Intensity,
			&f.Resolved, &resolution, &f.ResolvedChapter, &escalations, &f.CreatedAt)
		if err != nil {
			return nil, oops.Code("FEUD_SCAN_FAILED").Wrap(err)
		}
		if f.ID, err = parseULID(id, "id"); err != nil {
			return nil, err
		}
		if f.OriginEventID, err = parseULID(originID, "origin_event_id"); err != nil {
			return nil, err
		}
		f.NovelID = novelID
		f.Resolution = feud.ResolutionType(resolution)
		if err := unmarshalJSON(partyA, &f.PartyA, "party_a"); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(partyB, &f.PartyB, "party_b"); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(escalations, &f.Escalations, "escalations"); err != nil {
			return nil, err
		}
		feuds = append(feuds, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("FEUD_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	return feuds, nil
}

// SaveFeud upserts a blood feud by id.
func (s *Store) SaveFeud(ctx context.Context, novelID ulid.ULID, f *feud.BloodFeud) error {
	partyA, err := marshalJSON(f.PartyA, "party_a")
	if err != nil {
		return err
	}
	partyB, err := marshalJSON(f.PartyB, "party_b")
	if err != nil {
		return err
	}
	escalations, err := marshalJSON(f.Escalations, "escalations")
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO blood_feuds (
			id, novel_id, party_a, party_b, cause, origin_event_id,
			intensity, resolved, resolution, resolved_chapter,
			escalations, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			party_a = $3, party_b = $4, intensity = $7, resolved = $8,
			resolution = $9, resolved_chapter = $10, escalations = $11
	`, f.ID.String(), novelID.String(), partyA, partyB, f.Cause,
		f.OriginEventID.String(), f.Intensity, f.Resolved, string(f.Resolution),
		f.ResolvedChapter, escalations, f.CreatedAt)
	if err != nil {
		return oops.Code("FEUD_SAVE_FAILED").With("id", f.ID.String()).Wrap(err)
	}
	return nil
}
