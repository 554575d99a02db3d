// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create pgmt's tracking tables on the target database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openTarget(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			store, sectionStore, err := openTracking(db)
			if err != nil {
				return err
			}

			sp, _ := pterm.DefaultSpinner.WithText("Creating tracking tables...").Start()
			if err := store.EnsureTable(ctx); err != nil {
				sp.Fail(fmt.Sprintf("failed to create tracking table: %s", err))
				return err
			}
			if err := sectionStore.EnsureTable(ctx); err != nil {
				sp.Fail(fmt.Sprintf("failed to create section tracking table: %s", err))
				return err
			}

			sp.Success("Initialization complete")
			return nil
		},
	}
}
