// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command saksham serves the Saksham school revitalization website.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sakshamfoundation/saksham-web/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func versionInfo() version.Info {
	return version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "saksham",
		Short: "Saksham - Revitalizing Government Schools",
		Long: `Serves the Saksham website: school projects, funding dashboard,
donation pledges and partner registration.

Configuration is read from SAKSHAM_* environment variables and an optional
.env file. SAKSHAM_SESSION_SECRET is required (min 32 bytes).`,
		Version:       versionInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// Load .env files if present (development)
			_ = godotenv.Load()
		},
		RunE: serve.RunE,
	}
	root.SetVersionTemplate("saksham {{.Version}}\n")

	root.AddCommand(
		serve,
		newMigrateCmd(),
		newSeedCmd(),
		newRoutesCmd(),
		newEventsCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saksham %s\n", versionInfo())
		},
	}
}
