package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ishanichuri/portfolio/internal/bootstrap"
	"github.com/ishanichuri/portfolio/internal/markers"
	"github.com/ishanichuri/portfolio/internal/projects/repository"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Prepare local databases",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.AddCommand(migrateProjectsCmd(a), migrateMarkersCmd(a))
	return cmd
}

func migrateProjectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Create the projects table in the Postgres database at DB_DSN",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := bootstrap.OpenDB(cmd.Context(), bootstrap.DBOptions{DSN: a.cfg.Data.DSN})
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := repository.NewPostgresRepository(pool).Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "projects schema is up to date")
			return nil
		},
	}
}

func migrateMarkersCmd(a *app) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "markers",
		Short: "Create the view-marker database at VIEW_MARKER_DB and prune old markers",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := a.cfg.Client.ViewMarkerDB
			if dsn == "" {
				return fmt.Errorf("VIEW_MARKER_DB is not set")
			}
			store, err := markers.OpenSQLite(dsn)
			if err != nil {
				return err
			}
			defer store.Close()

			if olderThan > 0 {
				n, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "pruned %d markers\n", n)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "prune", 0, "delete markers older than this (e.g. 720h)")
	return cmd
}
