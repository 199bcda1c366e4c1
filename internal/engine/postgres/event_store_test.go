// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmaloom/karmaloom/internal/karma"
)

var eventColumns = []string{
	"id", "actor_id", "actor_name", "target_id", "target_name",
	"action", "severity", "base_weight", "final_weight", "polarity",
	"modifiers", "chapter", "description", "witness_ids",
	"settled", "settlement_type", "settled_chapter",
	"ripple_affected_ids", "created_at",
}

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)
	return mock, NewStore(mock)
}

func TestStore_LoadEvents(t *testing.T) {
	novelID := ulid.Make()
	evtID := ulid.Make()
	actorID := ulid.Make()
	targetID := ulid.Make()
	witnessID := ulid.Make()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("scans columns and JSONB payloads back into the event", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery(`SELECT .+ FROM karma_events`).
			WithArgs(novelID.String()).
			WillReturnRows(pgxmock.NewRows(eventColumns).AddRow(
				evtID.String(), actorID.String(), "Wei Long", targetID.String(), "Chen Yu",
				"kill", "extreme", 80, 100, "negative",
				[]byte(`[{"type":"public_visibility","multiplier":1.4,"reason":"committed in public"}]`),
				12, "slain at the sect gates",
				[]byte(`["`+witnessID.String()+`"]`),
				true, "avenged", 30,
				[]byte(`null`), created,
			))

		events, err := store.LoadEvents(context.Background(), novelID)
		require.NoError(t, err)
		require.Len(t, events, 1)

		e := events[0]
		assert.Equal(t, evtID, e.ID)
		assert.Equal(t, novelID, e.NovelID)
		assert.Equal(t, actorID, e.ActorID)
		assert.Equal(t, "Wei Long", e.ActorName)
		assert.Equal(t, targetID, e.TargetID)
		assert.Equal(t, karma.ActionKill, e.Action)
		assert.Equal(t, karma.SeverityExtreme, e.Severity)
		assert.Equal(t, 100, e.FinalWeight)
		assert.Equal(t, karma.PolarityNegative, e.Polarity)
		require.Len(t, e.Modifiers, 1)
		assert.Equal(t, karma.ModifierPublicVisibility, e.Modifiers[0].Type)
		assert.Equal(t, []ulid.ULID{witnessID}, e.WitnessIDs)
		assert.True(t, e.Settled)
		assert.Equal(t, karma.SettlementAvenged, e.SettlementType)
		assert.Empty(t, e.RippleAffectedIDs)
		assert.Equal(t, created, e.CreatedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no events yields an empty slice", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery(`SELECT .+ FROM karma_events`).
			WithArgs(novelID.String()).
			WillReturnRows(pgxmock.NewRows(eventColumns))

		events, err := store.LoadEvents(context.Background(), novelID)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("query error is wrapped with the novel id", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery(`SELECT .+ FROM karma_events`).
			WithArgs(novelID.String()).
			WillReturnError(errors.New("connection refused"))

		_, err := store.LoadEvents(context.Background(), novelID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("corrupt stored id is a hard failure", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery(`SELECT .+ FROM karma_events`).
			WithArgs(novelID.String()).
			WillReturnRows(pgxmock.NewRows(eventColumns).AddRow(
				"not-a-ulid", actorID.String(), "Wei Long", targetID.String(), "Chen Yu",
				"kill", "extreme", 80, 100, "negative",
				[]byte(`[]`), 12, "x", []byte(`[]`),
				false, "", 0, []byte(`[]`), created,
			))

		_, err := store.LoadEvents(context.Background(), novelID)
		require.Error(t, err)
	})
}

func TestStore_SaveEvent(t *testing.T) {
	novelID := ulid.Make()
	evt, err := karma.NewEvent(novelID, ulid.Make(), ulid.Make(), "Wei Long", "Chen Yu",
		karma.Result{
			Action:      karma.ActionKill,
			Severity:    karma.SeverityExtreme,
			BaseWeight:  80,
			FinalWeight: 100,
			Polarity:    karma.PolarityNegative,
		}, 12, "slain at the sect gates")
	require.NoError(t, err)

	t.Run("upserts all columns", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectExec(`INSERT INTO karma_events`).
			WithArgs(evt.ID.String(), novelID.String(), evt.ActorID.String(), "Wei Long",
				evt.TargetID.String(), "Chen Yu", "kill", "extreme",
				80, 100, "negative", pgxmock.AnyArg(), 12,
				"slain at the sect gates", pgxmock.AnyArg(), false, "unsettled", 0,
				pgxmock.AnyArg(), evt.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, store.SaveEvent(context.Background(), novelID, evt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error is wrapped with the event id", func(t *testing.T) {
		mock, store := newMockStore(t)
		args := make([]interface{}, 20)
		for i := range args {
			args[i] = pgxmock.AnyArg()
		}
		mock.ExpectExec(`INSERT INTO karma_events`).
			WithArgs(args...).
			WillReturnError(errors.New("deadlock detected"))

		err := store.SaveEvent(context.Background(), novelID, evt)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deadlock detected")
		assert.Contains(t, err.Error(), evt.ID.String())
	})
}
