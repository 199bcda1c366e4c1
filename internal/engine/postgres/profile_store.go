// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/karmaloom/karmaloom/internal/face"
	"github.com/karmaloom/karmaloom/internal/karma"
)

// LoadProfiles retrieves every face profile for a novel.
func (s *Store) LoadProfiles(ctx context.Context, novelID ulid.ULID) ([]*face.Profile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT character_id, character_name, total_face, categories,
		       karma_balance, positive_karma_total, negative_karma_total,
		       tier, titles, accomplishments, shames, created_at, updated_at
		FROM face_profiles WHERE novel_id = $1
	`, novelID.String())
	if err != nil {
		return nil, oops.Code("PROFILE_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	defer rows.Close()

	var profiles []*face.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("PROFILE_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	return profiles, nil
}

// SaveProfile upserts one character's face profile.
func (s *Store) SaveProfile(ctx context.Context, novelID ulid.ULID, p *face.Profile) error {
	categories, err := marshalJSON(p.Categories, "categories")
	if err != nil {
		return err
	}
	titles, err := marshalJSON(p.Titles, "titles")
	if err != nil {
		return err
	}
	accomplishments, err := marshalJSON(p.Accomplishments, "accomplishments")
	if err != nil {
		return err
	}
	shames, err := marshalJSON(p.Shames, "shames")
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO face_profiles (
			novel_id, character_id, character_name, total_face, categories,
			karma_balance, positive_karma_total, negative_karma_total,
			tier, titles, accomplishments, shames, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (novel_id, character_id) DO UPDATE SET
			character_name = $3, total_face = $4, categories = $5,
			karma_balance = $6, positive_karma_total = $7,
			negative_karma_total = $8, tier = $9, titles = $10,
			accomplishments = $11, shames = $12, updated_at = $14
	`, novelID.String(), p.CharacterID.String(), p.CharacterName, p.TotalFace, categories,
		p.KarmaBalance, p.PositiveKarmaTotal, p.NegativeKarmaTotal,
		string(p.Tier), titles, accomplishments, shames, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return oops.Code("PROFILE_SAVE_FAILED").With("character_id", p.CharacterID.String()).Wrap(err)
	}
	return nil
}

// profileScanner abstracts pgx.Row and pgx.Rows for scanning.
type profileScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row profileScanner) (*face.Profile, error) {
	var (
		p               face.Profile
		characterID     string
		tier            string
		categories      []byte
		titles          []byte
		accomplishments []byte
		shames          []byte
	)
	err := row.Scan(&characterID, &p.CharacterName, &p.TotalFace, &categories,
		&p.KarmaBalance, &p.PositiveKarmaTotal, &p.NegativeKarmaTotal,
		&tier, &titles, &accomplishments, &shames, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, oops.Code("PROFILE_SCAN_FAILED").Wrap(err)
	}
	p.CharacterID, err = parseULID(characterID, "character_id")
	if err != nil {
		return nil, err
	}
	p.Tier = face.Tier(tier)
	p.Categories = make(map[karma.FaceCategory]int)
	if err := unmarshalJSON(categories, &p.Categories, "categories"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(titles, &p.Titles, "titles"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(accomplishments, &p.Accomplishments, "accomplishments"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(shames, &p.Shames, "shames"); err != nil {
		return nil, err
	}
	return &p, nil
}
