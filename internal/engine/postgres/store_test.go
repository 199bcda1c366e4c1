// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package postgres

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karmaloom/karmaloom/internal/engine"
)

func TestStore_LoadConfig(t *testing.T) {
	novelID := ulid.Make()

	t.Run("decodes the stored config", func(t *testing.T) {
		mock, store := newMockStore(t)
		want := engine.DefaultNovelConfig(novelID)
		raw, err := json.Marshal(want)
		require.NoError(t, err)
		mock.ExpectQuery(`SELECT config FROM novel_configs`).
			WithArgs(novelID.String()).
			WillReturnRows(pgxmock.NewRows([]string{"config"}).AddRow(raw))

		cfg, err := store.LoadConfig(context.Background(), novelID)
		require.NoError(t, err)
		assert.Equal(t, want.MaxRippleDegrees, cfg.MaxRippleDegrees)
		assert.Equal(t, want.Enabled, cfg.Enabled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing novel maps to ErrNotFound", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery(`SELECT config FROM novel_configs`).
			WithArgs(novelID.String()).
			WillReturnError(pgx.ErrNoRows)

		_, err := store.LoadConfig(context.Background(), novelID)
		require.ErrorIs(t, err, engine.ErrNotFound)
	})
}

func TestStore_SaveConfig(t *testing.T) {
	cfg := engine.DefaultNovelConfig(ulid.Make())

	mock, store := newMockStore(t)
	mock.ExpectExec(`INSERT INTO novel_configs`).
		WithArgs(cfg.NovelID.String(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.SaveConfig(context.Background(), cfg))
	assert.NoError(t, mock.ExpectationsWereMet())
}
