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

	"github.com/karmaloom/karmaloom/internal/face"
	"github.com/karmaloom/karmaloom/internal/karma"
)

var profileColumns = []string{
	"character_id", "character_name", "total_face", "categories",
	"karma_balance", "positive_karma_total", "negative_karma_total",
	"tier", "titles", "accomplishments", "shames", "created_at", "updated_at",
}

func TestStore_LoadProfiles(t *testing.T) {
	novelID := ulid.Make()
	characterID := ulid.Make()
	created := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)

	t.Run("scans a full profile with face history", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery(`SELECT .+ FROM face_profiles`).
			WithArgs(novelID.String()).
			WillReturnRows(pgxmock.NewRows(profileColumns).AddRow(
				characterID.String(), "Wei Long", 160, []byte(`{"martial":160}`),
				-100, 0, 100,
				"known",
				[]byte(`[{"name":"Sword Demon","chapter":9}]`),
				[]byte(`[{"description":"defeated the champion","category":"martial","amount":160,"chapter":9}]`),
				[]byte(`[]`), created, created,
			))

		profiles, err := store.LoadProfiles(context.Background(), novelID)
		require.NoError(t, err)
		require.Len(t, profiles, 1)

		p := profiles[0]
		assert.Equal(t, characterID, p.CharacterID)
		assert.Equal(t, "Wei Long", p.CharacterName)
		assert.Equal(t, 160, p.TotalFace)
		assert.Equal(t, 160, p.Categories[karma.FaceMartial])
		assert.Equal(t, -100, p.KarmaBalance)
		assert.Equal(t, 100, p.NegativeKarmaTotal)
		assert.Equal(t, face.TierKnown, p.Tier)
		require.Len(t, p.Titles, 1)
		assert.Equal(t, "Sword Demon", p.Titles[0].Name)
		require.Len(t, p.Accomplishments, 1)
		assert.Equal(t, karma.FaceMartial, p.Accomplishments[0].Category)
		assert.Empty(t, p.Shames)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error is wrapped with the novel id", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery(`SELECT .+ FROM face_profiles`).
			WithArgs(novelID.String()).
			WillReturnError(errors.New("connection refused"))

		_, err := store.LoadProfiles(context.Background(), novelID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestStore_SaveProfile(t *testing.T) {
	novelID := ulid.Make()
	p := face.NewProfile(ulid.Make(), "Chen Yu")
	p.KarmaBalance = 100

	t.Run("upserts all columns", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectExec(`INSERT INTO face_profiles`).
			WithArgs(novelID.String(), p.CharacterID.String(), "Chen Yu", 0,
				pgxmock.AnyArg(), 100, 0, 0, "nobody",
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				p.CreatedAt, p.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, store.SaveProfile(context.Background(), novelID, p))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error is wrapped with the character id", func(t *testing.T) {
		mock, store := newMockStore(t)
		args := make([]interface{}, 14)
		for i := range args {
			args[i] = pgxmock.AnyArg()
		}
		mock.ExpectExec(`INSERT INTO face_profiles`).
			WithArgs(args...).
			WillReturnError(errors.New("deadlock detected"))

		err := store.SaveProfile(context.Background(), novelID, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), p.CharacterID.String())
	})
}
