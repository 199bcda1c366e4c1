// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package main

import (
	"context"

	"github.com/karmaloom/karmaloom/internal/engine"
	"github.com/karmaloom/karmaloom/internal/observability"
)

// ServeDeps contains injectable dependencies for the serve command.
// All fields with nil values use their default implementations.
type ServeDeps struct {
	// Migrate brings the database schema up to date.
	// Default: store.NewMigrator + Up.
	Migrate func(databaseURL string) error

	// StoreFactory connects to the database and returns the engine's
	// persistence port, its roster, and a cleanup function.
	// Default: store.Connect + postgres.NewStore + postgres.NewProfileRoster.
	StoreFactory func(ctx context.Context, databaseURL string) (engine.Store, engine.Roster, func(), error)

	// ObservabilityServerFactory creates the metrics/health server.
	// Default: observability.NewServer.
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer
}

// ObservabilityServer wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}
