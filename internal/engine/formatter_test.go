// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package engine_test

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmaloom/karmaloom/internal/karma"
)

func TestFormatContext(t *testing.T) {
	ctx := context.Background()

	t.Run("renders every relevant section", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.RecordKarmaEvent(ctx, f.novelID, killRequest(f))
		require.NoError(t, err)

		out, err := f.engine.FormatContext(ctx, f.novelID,
			[]ulid.ULID{f.weiLong, f.chenYu, f.liuFeng}, 20)
		require.NoError(t, err)

		assert.Contains(t, out, "## Karmic Context")
		assert.Contains(t, out, "### Relationships")
		assert.Contains(t, out, "### Unsettled Karma")
		assert.Contains(t, out, "Wei Long wronged Chen Yu (kill, weight 100, chapter 12, 8 chapters ago)")
		assert.Contains(t, out, "### Active Blood Feuds")
		assert.Contains(t, out, "### Pending Threats")
		assert.Contains(t, out, "Liu Feng harbors a moderate grievance (degree 1)")
	})

	t.Run("absent characters contribute nothing", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.RecordKarmaEvent(ctx, f.novelID, killRequest(f))
		require.NoError(t, err)

		out, err := f.engine.FormatContext(ctx, f.novelID, []ulid.ULID{f.liuFeng}, 20)
		require.NoError(t, err)
		assert.NotContains(t, out, "### Unsettled Karma")
		assert.Contains(t, out, "### Pending Threats")
	})

	t.Run("deterministic for identical state", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.RecordKarmaEvent(ctx, f.novelID, killRequest(f))
		require.NoError(t, err)

		present := []ulid.ULID{f.chenYu, f.weiLong, f.liuFeng}
		first, err := f.engine.FormatContext(ctx, f.novelID, present, 20)
		require.NoError(t, err)
		// Different input ordering, same block.
		second, err := f.engine.FormatContext(ctx, f.novelID,
			[]ulid.ULID{f.liuFeng, f.weiLong, f.chenYu}, 20)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("settled events drop out", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.engine.RecordKarmaEvent(ctx, f.novelID, killRequest(f))
		require.NoError(t, err)
		require.NoError(t, f.engine.SettleEvent(ctx, f.novelID, res.Event.ID, karma.SettlementAvenged, 15))

		out, err := f.engine.FormatContext(ctx, f.novelID,
			[]ulid.ULID{f.weiLong, f.chenYu}, 20)
		require.NoError(t, err)
		assert.NotContains(t, out, "### Unsettled Karma")
	})

	t.Run("empty state renders the header only", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.engine.FormatContext(ctx, f.novelID, []ulid.ULID{f.weiLong}, 1)
		require.NoError(t, err)
		assert.Equal(t, "## Karmic Context\n", out)
	})
}
