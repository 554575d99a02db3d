// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gdpotter/pgmt/cmd/flags"
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/differ"
)

func diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the SQL required to bring the target database to the desired schema",
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
				pterm.Success.Println("No differences found")
				return nil
			}

			for _, step := range plan {
				for _, rendered := range step.ToSQL() {
					fmt.Printf("-- %s\n%s;\n\n", rendered.Description, rendered.SQL)
				}
			}

			return ErrDifferencesFound
		},
	}
	return cmd
}
