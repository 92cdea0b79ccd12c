// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sakshamfoundation/saksham-web/internal/handler"
	"github.com/sakshamfoundation/saksham-web/internal/router"
	"github.com/sakshamfoundation/saksham-web/internal/store"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			v, err := store.MigrationVersion(db)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", v)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load initial content into an empty database",
		Long: `Loads the bundled schools, donations, team, events, press and blog
content. Nothing is written when the database already has schools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if file == "" {
				file = cfg.SeedFile
			}
			if err := seedDatabase(cmd.Context(), db, file); err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}

			n, err := store.New(db).CountSchools(cmd.Context())
			if err != nil {
				return err
			}
			slog.Info("seed complete", "schools", n)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d schools in database\n", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML content file (default: bundled content)")
	return cmd
}

func newRoutesCmd() *cobra.Command {
	var resolve string
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the site routes or resolve a path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := handler.RouteTable()
			if cmd.Flags().Changed("resolve") {
				return printResolution(cmd.OutOrStdout(), table, resolve)
			}
			printRoutes(cmd.OutOrStdout(), table)
			return nil
		},
	}
	cmd.Flags().StringVar(&resolve, "resolve", "", "show which route a path activates")
	return cmd
}

func printRoutes(w io.Writer, table *router.Table[string]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATTERN\tNAME\tPARAM")
	for _, r := range table.Routes() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Pattern, r.Name, r.ParamName())
	}
	_ = tw.Flush()
}

func printResolution(w io.Writer, table *router.Table[string], path string) error {
	res, ok := table.Resolve(path)
	if !ok {
		return fmt.Errorf("no route matches %q", path)
	}

	kind := "exact"
	if !res.Exact {
		kind = "prefix"
	}
	_, _ = fmt.Fprintf(w, "%s -> %s (%s, %s)\n", path, res.Route.Name, res.Route.Pattern, kind)
	if name := res.Route.ParamName(); name != "" {
		_, _ = fmt.Fprintf(w, "  %s = %q\n", name, res.Param)
	}
	if candidates := table.Candidates(path); len(candidates) > 1 {
		_, _ = fmt.Fprintf(w, "  %d routes match; the one above wins\n", len(candidates))
	}
	return nil
}

func newEventsCmd() *cobra.Command {
	var limit int64
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the most recent event log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			entries, err := store.New(db).ListEventLog(cmd.Context(), store.ListEventLogParams{Limit: limit})
			if err != nil {
				return fmt.Errorf("listing event log: %w", err)
			}
			printEvents(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().Int64VarP(&limit, "limit", "n", 20, "number of entries")
	return cmd
}

func printEvents(w io.Writer, entries []store.EventLog) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIME\tLEVEL\tCATEGORY\tMESSAGE")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Level, e.Category, e.Message)
	}
	_ = tw.Flush()
}
