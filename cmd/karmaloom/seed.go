// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/karmaloom/karmaloom/internal/engine"
	"github.com/karmaloom/karmaloom/internal/engine/postgres"
	"github.com/karmaloom/karmaloom/internal/karma"
	"github.com/karmaloom/karmaloom/internal/store"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// Well-known IDs so duplicate seeds fail with a constraint violation
// instead of creating a second demo novel. ULIDs are 26 characters of
// Crockford base32.
const (
	seedNovelID  = "01K4RMA0000000000000000001"
	seedProtagID = "01K4RMA0000000000000000002"
	seedRivalID  = "01K4RMA0000000000000000003"
	seedMasterID = "01K4RMA0000000000000000004"
)

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed a demo novel with initial karma data",
		Long: `Creates a demo novel with a small cast and a few recorded karma events.
This command is idempotent - it will not create duplicates if run multiple times.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, cfg)
		},
	}

	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string, cfg *seedConfig) error {
	appCfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if appCfg.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database URL is required (flag, config file, or DATABASE_URL)")
	}

	// Use cmd.Context() to respect SIGINT/SIGTERM signals.
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	pool, err := store.Connect(ctx, appCfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	cmd.Println("Running migrations...")
	migrator, err := store.NewMigrator(appCfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "open migrator").Wrap(err)
	}
	migrateErr := migrator.Up()
	if closeErr := migrator.Close(); closeErr != nil {
		slog.Warn("error closing migrator", "error", closeErr)
	}
	if migrateErr != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "run migrations").Wrap(migrateErr)
	}

	novelID, err := ulid.Parse(seedNovelID)
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "parse seed novel ID").Wrap(err)
	}

	novelCfg := engine.DefaultNovelConfig(novelID)
	rawCfg, err := json.Marshal(novelCfg)
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "encode novel config").Wrap(err)
	}

	// Claim the demo novel with a plain insert; a unique violation means a
	// previous seed already ran.
	_, err = pool.Exec(ctx, `
		INSERT INTO novel_configs (novel_id, config, updated_at)
		VALUES ($1, $2, now())
	`, novelID.String(), rawCfg)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			cmd.Println("Demo novel already exists, skipping seed")
			verifySeedConfig(ctx, postgres.NewStore(pool), novelID, novelCfg)
			slog.Info("demo novel already seeded", "novel_id", novelID)
			return nil
		}
		return oops.Code("SEED_FAILED").With("operation", "create demo novel").Wrap(err)
	}

	if err := seedDemoEvents(ctx, pool, novelID); err != nil {
		return err
	}

	cmd.Println("Created demo novel with seed karma events")
	slog.Info("demo novel seeded", "novel_id", novelID)

	cmd.Println("Seeding complete!")
	return nil
}

// seedDemoEvents records a handful of karma events so the demo novel has a
// populated graph: a life-saving rescue that creates a face debt, then a
// public kill that starts a blood feud.
func seedDemoEvents(ctx context.Context, pool *pgxpool.Pool, novelID ulid.ULID) error {
	protagonistID := ulid.MustParse(seedProtagID)
	rivalID := ulid.MustParse(seedRivalID)
	masterID := ulid.MustParse(seedMasterID)

	roster := engine.NewStaticRoster()
	roster.Add(novelID, protagonistID, "Shen Tian")
	roster.Add(novelID, rivalID, "Mo Jian")
	roster.Add(novelID, masterID, "Elder Qingshan")

	eng := engine.New(engine.Config{
		Store:  postgres.NewStore(pool),
		Roster: roster,
		Logger: slog.Default(),
	})

	events := []engine.RecordRequest{
		{
			Actor:       engine.CharacterRef{ID: masterID, Name: "Elder Qingshan"},
			Target:      engine.CharacterRef{ID: protagonistID, Name: "Shen Tian"},
			Action:      karma.ActionSave,
			Severity:    karma.SeveritySevere,
			Chapter:     3,
			Description: "Elder Qingshan shields Shen Tian from a fatal palm strike",
		},
		{
			Actor:       engine.CharacterRef{ID: rivalID, Name: "Mo Jian"},
			Target:      engine.CharacterRef{ID: masterID, Name: "Elder Qingshan"},
			Action:      karma.ActionKill,
			Severity:    karma.SeverityExtreme,
			Chapter:     7,
			Description: "Mo Jian strikes down Elder Qingshan before the assembled sects",
			Context:     karma.Context{WasPublic: true},
			WitnessIDs:  []ulid.ULID{protagonistID},
		},
		{
			Actor:       engine.CharacterRef{ID: rivalID, Name: "Mo Jian"},
			Target:      engine.CharacterRef{ID: protagonistID, Name: "Shen Tian"},
			Action:      karma.ActionHumiliate,
			Severity:    karma.SeverityModerate,
			Chapter:     8,
			Description: "Mo Jian mocks Shen Tian over his master's corpse",
			Context:     karma.Context{WasPublic: true},
		},
	}

	for _, req := range events {
		if _, err := eng.RecordKarmaEvent(ctx, novelID, req); err != nil {
			return oops.Code("SEED_FAILED").
				With("operation", "record seed event").
				With("action", string(req.Action)).
				Wrap(err)
		}
	}
	return nil
}

// verifySeedConfig warns when an existing demo novel's configuration has
// drifted from the defaults without failing the command.
func verifySeedConfig(ctx context.Context, s *postgres.Store, novelID ulid.ULID, want *engine.NovelConfig) {
	existing, err := s.LoadConfig(ctx, novelID)
	if err != nil {
		slog.Warn("could not verify existing demo novel config",
			"novel_id", novelID,
			"error", err)
		return
	}
	if existing.MaxRippleDegrees != want.MaxRippleDegrees {
		slog.Warn("demo novel ripple degrees mismatch",
			"novel_id", novelID,
			"expected", want.MaxRippleDegrees,
			"actual", existing.MaxRippleDegrees)
	}
	if existing.Enabled != want.Enabled {
		slog.Warn("demo novel enabled flag mismatch",
			"novel_id", novelID,
			"expected", want.Enabled,
			"actual", existing.Enabled)
	}
}
