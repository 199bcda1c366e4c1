// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/karmaloom/karmaloom/internal/store"
)

// EngineStatus holds the health information reported by the status command.
type EngineStatus struct {
	Database          string `json:"database"`
	MigrationVersion  uint   `json:"migration_version"`
	MigrationName     string `json:"migration_name,omitempty"`
	Dirty             bool   `json:"dirty"`
	PendingMigrations int    `json:"pending_migrations"`
	Error             string `json:"error,omitempty"`
}

// statusConfig holds configuration for the status command.
type statusConfig struct {
	jsonOutput bool
}

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database and migration status",
		Long:  `Check database connectivity and report the applied and pending schema migrations.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")

	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, cfg *statusConfig) error {
	appCfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	status := queryEngineStatus(cmd.Context(), appCfg.DatabaseURL)

	var output string
	if cfg.jsonOutput {
		output, err = formatStatusJSON(status)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
	} else {
		output = formatStatusTable(status)
	}

	cmd.Println(output)
	return nil
}

// queryEngineStatus probes the database and the migration state. Failures
// are reported in the status rather than returned, so the command always
// prints something useful.
func queryEngineStatus(ctx context.Context, databaseURL string) EngineStatus {
	status := EngineStatus{Database: "unreachable"}

	if databaseURL == "" {
		status.Error = "database URL not configured"
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := store.Connect(ctx, databaseURL)
	if err != nil {
		status.Error = fmt.Sprintf("failed to connect: %v", err)
		return status
	}
	pool.Close()
	status.Database = "ok"

	m, err := store.NewMigrator(databaseURL)
	if err != nil {
		status.Error = fmt.Sprintf("failed to open migrator: %v", err)
		return status
	}
	defer func() { _ = m.Close() }()

	version, dirty, err := m.Version()
	if err != nil {
		status.Error = fmt.Sprintf("failed to read migration version: %v", err)
		return status
	}
	status.MigrationVersion = version
	status.Dirty = dirty
	if version > 0 {
		if name, nameErr := store.MigrationName(version); nameErr == nil {
			status.MigrationName = name
		}
	}

	pending, err := m.PendingMigrations()
	if err != nil {
		status.Error = fmt.Sprintf("failed to list pending migrations: %v", err)
		return status
	}
	status.PendingMigrations = len(pending)

	return status
}

// formatStatusTable formats the status as a human-readable table.
func formatStatusTable(status EngineStatus) string {
	var buf []byte
	w := tabwriter.NewWriter((*byteWriter)(&buf), 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "CHECK\tSTATUS")
	_, _ = fmt.Fprintln(w, "-----\t------")
	_, _ = fmt.Fprintf(w, "database\t%s\n", status.Database)

	if status.Database == "ok" {
		migration := "none applied"
		if status.MigrationVersion > 0 {
			migration = fmt.Sprintf("%d (%s)", status.MigrationVersion, status.MigrationName)
		}
		if status.Dirty {
			migration += " DIRTY"
		}
		_, _ = fmt.Fprintf(w, "migration\t%s\n", migration)
		_, _ = fmt.Fprintf(w, "pending\t%d\n", status.PendingMigrations)
	}
	if status.Error != "" {
		_, _ = fmt.Fprintf(w, "error\t%s\n", status.Error)
	}

	_ = w.Flush()
	return string(buf)
}

// formatStatusJSON formats the status as JSON.
func formatStatusJSON(status EngineStatus) (string, error) {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal status: %w", err)
	}
	return string(data), nil
}

// byteWriter is a simple writer that appends to a byte slice.
type byteWriter []byte

func (w *byteWriter) Write(p []byte) (int, error) {
	*w = append(*w, p...)
	return len(p), nil
}
