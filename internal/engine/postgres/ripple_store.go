// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/karmaloom/karmaloom/internal/ripple"
)

// LoadRipples retrieves every pending ripple for a novel.
func (s *Store) LoadRipples(ctx context.Context, novelID ulid.ULID) ([]*ripple.Ripple, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, event_id, character_id, path, degree,
		       sentiment_change, becomes_threat, threat, potential_response,
		       decay_factor, manifested, created_chapter, created_at
		FROM karma_ripples WHERE novel_id = $1
		ORDER BY id
	`, novelID.String())
	if err != nil {
		return nil, oops.Code("RIPPLE_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	defer rows.Close()

	var ripples []*ripple.Ripple
	for rows.Next() {
		var (
			r           ripple.Ripple
			id          string
			eventID     string
			characterID string
			threat      string
			path        []byte
		)
		err := rows.Scan(&id, &eventID, &characterID, &path, &r.Degree,
			&r.SentimentChange, &r.BecomesThreat, &threat, &r.PotentialResponse,
			&r.DecayFactor, &r.Manifested, &r.CreatedChapter, &r.CreatedAt)
		if err != nil {
			return nil, oops.Code("RIPPLE_SCAN_FAILED").Wrap(err)
		}
		if r.ID, err = parseULID(id, "id"); err != nil {
			return nil, err
		}
		if r.EventID, err = parseULID(eventID, "event_id"); err != nil {
			return nil, err
		}
		if r.CharacterID, err = parseULID(characterID, "character_id"); err != nil {
			return nil, err
		}
		r.NovelID = novelID
		r.Threat = ripple.ThreatLevel(threat)
		if err := unmarshalJSON(path, &r.Path, "path"); err != nil {
			return nil, err
		}
		ripples = append(ripples, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("RIPPLE_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	return ripples, nil
}

// SaveRipple upserts a ripple by id.
func (s *Store) SaveRipple(ctx context.Context, novelID ulid.ULID, r *ripple.Ripple) error {
	path, err := marshalJSON(r.Path, "path")
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO karma_ripples (
			id, novel_id, event_id, character_id, path, degree,
			sentiment_change, becomes_threat, threat, potential_response,
			decay_factor, manifested, created_chapter, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			decay_factor = $11, manifested = $12
	`, r.ID.String(), novelID.String(), r.EventID.String(), r.CharacterID.String(),
		path, r.Degree, r.SentimentChange, r.BecomesThreat, string(r.Threat),
		r.PotentialResponse, r.DecayFactor, r.Manifested, r.CreatedChapter, r.CreatedAt)
	if err != nil {
		return oops.Code("RIPPLE_SAVE_FAILED").With("id", r.ID.String()).Wrap(err)
	}
	return nil
}

// DeleteRipple removes a faded ripple. Deleting an already-gone ripple is
// not an error; decay sweeps race benignly with manifestation.
func (s *Store) DeleteRipple(ctx context.Context, novelID, rippleID ulid.ULID) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM karma_ripples WHERE novel_id = $1 AND id = $2
	`, novelID.String(), rippleID.String())
	if err != nil {
		return oops.Code("RIPPLE_DELETE_FAILED").With("id", rippleID.String()).Wrap(err)
	}
	return nil
}
