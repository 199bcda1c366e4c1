// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCommand_Properties(t *testing.T) {
	cmd := NewSeedCmd()

	assert.Equal(t, "seed", cmd.Use)
	assert.Contains(t, cmd.Short, "demo", "Short description should mention the demo novel")
	assert.Contains(t, cmd.Long, "idempotent", "Long description should mention idempotency")
}

func TestSeedCommand_TimeoutFlag(t *testing.T) {
	cmd := NewSeedCmd()

	flag := cmd.Flags().Lookup("timeout")
	require.NotNil(t, flag, "seed should have a --timeout flag")
	assert.Equal(t, defaultSeedTimeout.String(), flag.DefValue)

	require.NoError(t, cmd.Flags().Set("timeout", "1m"))
	parsed, err := cmd.Flags().GetDuration("timeout")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, parsed)
}

func TestSeedCommand_NoDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	configFile = ""

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"seed"})

	err := cmd.Execute()
	require.Error(t, err, "Expected error when no database URL is configured")
	assert.Contains(t, err.Error(), "database URL")
}

func TestSeedCommand_InvalidDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "invalid://not-a-real-db")
	configFile = ""

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"seed"})

	err := cmd.Execute()
	require.Error(t, err, "Expected error with invalid database URL")
}

func TestSeedIDs_AreValidULIDs(t *testing.T) {
	for _, raw := range []string{seedNovelID, seedProtagID, seedRivalID, seedMasterID} {
		_, err := ulid.Parse(raw)
		assert.NoError(t, err, "seed ID %q should parse", raw)
	}
}
