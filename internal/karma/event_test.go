// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package karma_test

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmaloom/karmaloom/internal/karma"
)

func newTestEvent(t *testing.T) *karma.Event {
	t.Helper()
	res, err := karma.ComputeWeight(karma.ActionKill, karma.SeveritySevere, karma.Context{})
	require.NoError(t, err)
	evt, err := karma.NewEvent(ulid.Make(), ulid.Make(), ulid.Make(), "Wei Long", "Han Shan", res, 12, "struck down at the sect gates")
	require.NoError(t, err)
	return evt
}

func TestNewEvent(t *testing.T) {
	t.Run("carries computed result", func(t *testing.T) {
		evt := newTestEvent(t)
		assert.Equal(t, karma.ActionKill, evt.Action)
		assert.Equal(t, 80, evt.BaseWeight)
		assert.Equal(t, karma.PolarityNegative, evt.Polarity)
		assert.Equal(t, karma.SettlementUnsettled, evt.SettlementType)
		assert.True(t, evt.Unsettled())
	})

	t.Run("zero actor rejected", func(t *testing.T) {
		res, err := karma.ComputeWeight(karma.ActionKill, karma.SeveritySevere, karma.Context{})
		require.NoError(t, err)
		_, err = karma.NewEvent(ulid.Make(), ulid.ULID{}, ulid.Make(), "", "Han Shan", res, 12, "")
		require.Error(t, err)
		var verr *karma.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "actor_id", verr.Field)
	})
}

func TestEvent_Settle(t *testing.T) {
	t.Run("first settlement applies", func(t *testing.T) {
		evt := newTestEvent(t)
		changed, err := evt.Settle(karma.SettlementAvenged, 40)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, evt.Settled)
		assert.Equal(t, karma.SettlementAvenged, evt.SettlementType)
		assert.Equal(t, 40, evt.SettledChapter)
	})

	t.Run("second settlement is a no-op", func(t *testing.T) {
		evt := newTestEvent(t)
		_, err := evt.Settle(karma.SettlementAvenged, 40)
		require.NoError(t, err)
		changed, err := evt.Settle(karma.SettlementForgiven, 55)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, karma.SettlementAvenged, evt.SettlementType)
		assert.Equal(t, 40, evt.SettledChapter)
	})

	t.Run("cannot settle to unsettled", func(t *testing.T) {
		evt := newTestEvent(t)
		_, err := evt.Settle(karma.SettlementUnsettled, 40)
		require.Error(t, err)
	})
}
