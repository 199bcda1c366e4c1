// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

// Package postgres implements the engine's persistence port on PostgreSQL.
// Scalar fields get columns; nested value objects (modifiers, parties,
// paths, face history) are stored as JSONB.
package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/karmaloom/karmaloom/internal/engine"
)

// poolIface is the subset of pgxpool.Pool the adapter uses, narrowed so
// unit tests can substitute a mock connection.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements engine.Store using PostgreSQL.
type Store struct {
	pool poolIface
}

// NewStore creates a PostgreSQL-backed store.
func NewStore(pool poolIface) *Store {
	return &Store{pool: pool}
}

var _ engine.Store = (*Store)(nil)

// LoadConfig retrieves a novel's engine configuration.
func (s *Store) LoadConfig(ctx context.Context, novelID ulid.ULID) (*engine.NovelConfig, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT config FROM novel_configs WHERE novel_id = $1
	`, novelID.String()).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CONFIG_NOT_FOUND").With("novel_id", novelID.String()).Wrap(engine.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CONFIG_GET_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	var cfg engine.NovelConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, oops.Code("CONFIG_DECODE_FAILED").With("novel_id", novelID.String()).Wrap(err)
	}
	return &cfg, nil
}

// SaveConfig upserts a novel's engine configuration.
func (s *Store) SaveConfig(ctx context.Context, cfg *engine.NovelConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return oops.Code("CONFIG_ENCODE_FAILED").With("novel_id", cfg.NovelID.String()).Wrap(err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO novel_configs (novel_id, config, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (novel_id) DO UPDATE SET config = $2, updated_at = now()
	`, cfg.NovelID.String(), raw)
	if err != nil {
		return oops.Code("CONFIG_SAVE_FAILED").With("novel_id", cfg.NovelID.String()).Wrap(err)
	}
	return nil
}
