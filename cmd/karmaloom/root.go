// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/karmaloom/karmaloom/internal/config"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Karmaloom CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "karmaloom",
		Short: "Karmaloom - karma and face graph engine for serialized narratives",
		Long: `Karmaloom tracks karma events, face (reputation), and typed character
relationships for serialized novels, propagating consequences through the
social graph so that narrative debts eventually come due.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().String("database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	cmd.PersistentFlags().String("metrics-addr", "", "metrics/health HTTP address (empty = disabled)")
	cmd.PersistentFlags().String("log-format", "", "log format (json or text)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewStatusCmd())

	return cmd
}

// loadConfig resolves the effective configuration for a command, layering
// defaults, the optional config file, environment, and command-line flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configFile, cmd.Flags())
}
