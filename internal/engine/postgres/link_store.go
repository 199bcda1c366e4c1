// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/karmaloom/karmaloom/internal/graph"
)

// LoadLinks retrieves every social link for a novel.
func (s *Store) LoadLinks(ctx context.Context, novelID ulid.ULID) ([]*graph.Link, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT source_id, target_id, link_type, strength, sentiment,
		       mutual_karma_balance, unsettled_karma,
		       established_chapter, last_interaction_chapter,
		       inherited, inherited_from, hidden, updated_at
		FROM social_links WHERE novel_id = $1
	`, novelID.String())
	if err != nil {
		return nil, oops.Code("LINK_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	defer rows.Close()

	var links []*graph.Link
	for rows.Next() {
		var (
			l        graph.Link
			sourceID string
			targetID string
			linkType string
			strength string
		)
		err := rows.Scan(&sourceID, &targetID, &linkType, &strength, &l.Sentiment,
			&l.MutualKarmaBalance, &l.UnsettledKarma,
			&l.EstablishedChapter, &l.LastInteractionChapter,
			&l.Inherited, &l.InheritedFrom, &l.Hidden, &l.UpdatedAt)
		if err != nil {
			return nil, oops.Code("LINK_SCAN_FAILED").Wrap(err)
		}
		if l.SourceID, err = parseULID(sourceID, "source_id"); err != nil {
			return nil, err
		}
		if l.TargetID, err = parseULID(targetID, "target_id"); err != nil {
			return nil, err
		}
		l.Type = graph.LinkType(linkType)
		l.Strength = graph.LinkStrength(strength)
		links = append(links, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("LINK_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	return links, nil
}

// UpsertLink writes a link keyed by its (source, target, type) triple.
func (s *Store) UpsertLink(ctx context.Context, novelID ulid.ULID, l *graph.Link) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO social_links (
			novel_id, source_id, target_id, link_type, strength, sentiment,
			mutual_karma_balance, unsettled_karma,
			established_chapter, last_interaction_chapter,
			inherited, inherited_from, hidden, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (novel_id, source_id, target_id, link_type) DO UPDATE SET
			strength = $5, sentiment = $6, mutual_karma_balance = $7,
			unsettled_karma = $8, last_interaction_chapter = $10,
			inherited = $11, inherited_from = $12, hidden = $13, updated_at = $14
	`, novelID.String(), l.SourceID.String(), l.TargetID.String(), string(l.Type),
		string(l.Strength), l.Sentiment, l.MutualKarmaBalance, l.UnsettledKarma,
		l.EstablishedChapter, l.LastInteractionChapter,
		l.Inherited, l.InheritedFrom, l.Hidden, l.UpdatedAt)
	if err != nil {
		return oops.Code("LINK_SAVE_FAILED").
			With("source_id", l.SourceID.String()).
			With("target_id", l.TargetID.String()).
			Wrap(err)
	}
	return nil
}
