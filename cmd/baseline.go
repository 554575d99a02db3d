// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/differ"
	"github.com/gdpotter/pgmt/pkg/tracking"
)

// baselineCmd snapshots the target database's current schema into a
// single self-contained SQL file and records it as the migration
// history's starting point, so a future `migrate` run treats
// everything up to this version as already applied without replaying
// it. File rendering reuses the differ: diffing an empty catalog
// against the live one yields exactly the create steps needed to
// reproduce the schema from scratch.
func baselineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline <version> <target directory>",
		Short: "Create a baseline SQL snapshot of the target database's current schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("version must be a non-negative integer: %w", err)
			}
			targetDir := args[1]

			ctx := cmd.Context()

			db, err := openTarget(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			sp, _ := pterm.DefaultSpinner.WithText("Loading target catalog...").Start()
			current, _, err := catalog.Load(ctx, db.DB, targetFilter())
			if err != nil {
				sp.Fail(fmt.Sprintf("failed to load target catalog: %s", err))
				return err
			}
			sp.Success("Target catalog loaded")

			plan, err := differ.Diff(catalog.NewBuilder().Build(), current)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(targetDir, 0o755); err != nil {
				return fmt.Errorf("creating target directory: %w", err)
			}

			path := filepath.Join(targetDir, fmt.Sprintf("baseline_V%d.sql", version))
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()

			var content []byte
			for _, step := range plan {
				for _, rendered := range step.ToSQL() {
					line := fmt.Sprintf("-- %s\n%s;\n\n", rendered.Description, rendered.SQL)
					content = append(content, line...)
					if _, err := f.WriteString(line); err != nil {
						return err
					}
				}
			}

			store, _, err := openTracking(db)
			if err != nil {
				return err
			}
			if err := store.EnsureTable(ctx); err != nil {
				return fmt.Errorf("ensuring tracking table: %w", err)
			}
			if err := store.RecordBaseline(ctx, version, "baseline", tracking.Checksum(content)); err != nil {
				return fmt.Errorf("recording baseline: %w", err)
			}

			pterm.Success.Printfln("Baseline written to %s and recorded as applied", path)
			return nil
		},
	}
	return cmd
}
