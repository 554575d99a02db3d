// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gdpotter/pgmt/pkg/loggerx"
	"github.com/gdpotter/pgmt/pkg/pgconn"
	"github.com/gdpotter/pgmt/pkg/section"
	"github.com/gdpotter/pgmt/pkg/tracking"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate <directory>",
		Short:     "Apply outstanding migrations from a directory to the target database",
		Example:   "migrate ./migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"directory"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			migrationsDir := args[0]

			db, err := openTarget(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			store, sectionStore, err := openTracking(db)
			if err != nil {
				return err
			}
			if err := store.EnsureTable(ctx); err != nil {
				return fmt.Errorf("ensuring tracking table: %w", err)
			}
			if err := sectionStore.EnsureTable(ctx); err != nil {
				return fmt.Errorf("ensuring section tracking table: %w", err)
			}

			files, err := listMigrationFiles(migrationsDir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				pterm.Info.Println("No migration files found; nothing to do")
				return nil
			}

			logger := loggerx.New()

			for _, f := range files {
				applied, err := store.IsApplied(ctx, f.Version)
				if err != nil {
					return err
				}

				content, err := os.ReadFile(f.Path)
				if err != nil {
					return fmt.Errorf("reading migration file %s: %w", f.Path, err)
				}

				if applied {
					if err := store.VerifyChecksum(ctx, f.Version, content); err != nil {
						return err
					}
					continue
				}

				if err := applyMigrationFile(ctx, db, store, sectionStore, logger, f, content); err != nil {
					return fmt.Errorf("applying migration %d (%s): %w", f.Version, f.Description, err)
				}
				logger.LogMigrationApplied(f.Version, f.Description)
			}

			pterm.Success.Println("All migrations applied")
			return nil
		},
	}

	return cmd
}

// applyMigrationFile parses a migration file into sections, validates
// them, runs each one through the section executor (which itself
// consults the tracking store to skip already-completed sections on a
// resumed run), and records the migration as applied once every section
// has completed.
func applyMigrationFile(ctx context.Context, db *pgconn.RDB, store *tracking.Store, sectionStore *tracking.SectionStore, logger loggerx.Logger, f migrationFile, content []byte) error {
	sections, err := section.Parse(string(content))
	if err != nil {
		return err
	}
	if err := section.Validate(sections); err != nil {
		return err
	}

	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	if err := sectionStore.Initialize(ctx, f.Version, names); err != nil {
		return err
	}

	exec := &section.Executor{
		DB:       db,
		Tracker:  tracking.SectionTracker{Store: sectionStore},
		Reporter: logger,
		Mode:     section.ExecutionProduction,
		Version:  f.Version,
	}

	if err := exec.Execute(ctx, sections); err != nil {
		return err
	}

	return store.RecordApplied(ctx, f.Version, f.Description, tracking.Checksum(content))
}
