// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/karmaloom/karmaloom/internal/karma"
)

// LoadEvents retrieves a novel's karma events in recording order.
func (s *Store) LoadEvents(ctx context.Context, novelID ulid.ULID) ([]*karma.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, actor_id, actor_name, target_id, target_name,
		       action, severity, base_weight, final_weight, polarity,
		       modifiers, chapter, description, witness_ids,
		       settled, settlement_type, settled_chapter,
		       ripple_affected_ids, created_at
		FROM karma_events WHERE novel_id = $1
		ORDER BY id
	`, novelID.String())
	if err != nil {
		return nil, oops.Code("EVENT_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	defer rows.Close()

	var events []*karma.Event
	for rows.Next() {
		var (
			e          karma.Event
			id         string
			actorID    string
			targetID   string
			action     string
			severity   string
			polarity   string
			settlement string
			modifiers  []byte
			witnesses  []byte
			affected   []byte
		)
		err := rows.Scan(&id, &actorID, &e.ActorName, &targetID, &e.TargetName,
			&action, &severity, &e.BaseWeight, &e.FinalWeight, &polarity,
			&modifiers, &e.Chapter, &e.Description, &witnesses,
			&e.Settled, &settlement, &e.SettledChapter,
			&affected, &e.CreatedAt)
		if err != nil {
			return nil, oops.Code("EVENT_SCAN_FAILED").Wrap(err)
		}
		if e.ID, err = parseULID(id, "id"); err != nil {
			return nil, err
		}
		if e.ActorID, err = parseULID(actorID, "actor_id"); err != nil {
			return nil, err
		}
		if e.TargetID, err = parseULID(targetID, "target_id"); err != nil {
			return nil, err
		}
		e.NovelID = novelID
		e.Action = karma.ActionType(action)
		e.Severity = karma.Severity(severity)
		e.Polarity = karma.Polarity(polarity)
		e.SettlementType = karma.Settlement(settlement)
		if err := unmarshalJSON(modifiers, &e.Modifiers, "modifiers"); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(witnesses, &e.WitnessIDs, "witness_ids"); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(affected, &e.RippleAffectedIDs, "ripple_affected_ids"); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("EVENT_LIST_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	return events, nil
}

// SaveEvent upserts a karma event by id.
func (s *Store) SaveEvent(ctx context.Context, novelID ulid.ULID, e *karma.Event) error {
	modifiers, err := marshalJSON(e.Modifiers, "modifiers")
	if err != nil {
		return err
	}
	witnesses, err := marshalJSON(e.WitnessIDs, "witness_ids")
	if err != nil {
		return err
	}
	affected, err := marshalJSON(e.RippleAffectedIDs, "ripple_affected_ids")
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO karma_events (
			id, novel_id, actor_id, actor_name, target_id, target_name,
			action, severity, base_weight, final_weight, polarity,
			modifiers, chapter, description, witness_ids,
			settled, settlement_type, settled_chapter,
			ripple_affected_ids, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20)
		ON CONFLICT (id) DO UPDATE SET
			settled = $16, settlement_type = $17, settled_chapter = $18,
			ripple_affected_ids = $19
	`, e.ID.String(), novelID.String(), e.ActorID.String(), e.ActorName,
		e.TargetID.String(), e.TargetName, string(e.Action), string(e.Severity),
		e.BaseWeight, e.FinalWeight, string(e.Polarity), modifiers, e.Chapter,
		e.Description, witnesses, e.Settled, string(e.SettlementType),
		e.SettledChapter, affected, e.CreatedAt)
	if err != nil {
		return oops.Code("EVENT_SAVE_FAILED").With("id", e.ID.String()).Wrap(err)
	}
	return nil
}
