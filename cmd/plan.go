// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gdpotter/pgmt/cmd/flags"
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/differ"
)

// planCmd computes the diff between the target database and the
// desired schema files and writes it out as a new versioned migration
// file, completing the round trip that diffCmd only prints to stdout.
func planCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Write a new migration file for the difference between the target database and the desired schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openTarget(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			filter := targetFilter()

			sp, _ := pterm.DefaultSpinner.WithText("Loading target catalog...").Start()
			current, warnings, err := catalog.Load(ctx, db.DB, filter)
			if err != nil {
				sp.Fail(fmt.Sprintf("failed to load target catalog: %s", err))
				return err
			}
			for _, w := range warnings {
				pterm.Warning.Printfln("%s", w.Error())
			}
			sp.Success("Target catalog loaded")

			sp, _ = pterm.DefaultSpinner.WithText("Loading desired catalog from " + flags.SchemaDir() + "...").Start()
			desired, warnings, err := loadDesiredCatalog(ctx, flags.SchemaDir(), filter)
			if err != nil {
				sp.Fail(fmt.Sprintf("failed to load desired catalog: %s", err))
				return err
			}
			for _, w := range warnings {
				pterm.Warning.Printfln("%s", w.Error())
			}
			sp.Success("Desired catalog loaded")

			plan, err := differ.Diff(current, desired)
			if err != nil {
				return err
			}
			if len(plan) == 0 {
				pterm.Success.Println("No differences found; no migration file written")
				return nil
			}

			if description == "" {
				description = "migration"
			}

			if err := os.MkdirAll(flags.MigrationsDir(), 0o755); err != nil {
				return fmt.Errorf("creating migrations directory: %w", err)
			}

			version := nextMigrationVersion(flags.MigrationsDir())
			path := filepath.Join(flags.MigrationsDir(), fmt.Sprintf("%d_%s.sql", version, description))

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()

			for _, step := range plan {
				for _, rendered := range step.ToSQL() {
					if _, err := fmt.Fprintf(f, "-- %s\n%s;\n\n", rendered.Description, rendered.SQL); err != nil {
						return err
					}
				}
			}

			pterm.Success.Printfln("Migration written to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "short description used in the migration filename")

	return cmd
}

// nextMigrationVersion picks the version for a newly planned migration
// file: the highest existing version in dir plus one, or a Unix-seconds
// timestamp-derived value if the directory has no prior migrations.
func nextMigrationVersion(dir string) uint64 {
	files, err := listMigrationFiles(dir)
	if err != nil || len(files) == 0 {
		return uint64(time.Now().Unix())
	}
	return files[len(files)-1].Version + 1
}
