// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/spf13/cobra"
)

type statusLine struct {
	Schema        string `json:"schema"`
	LatestVersion uint64 `json:"latest_version"`
	Applied       int    `json:"migrations_applied"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations have been applied to the target database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		db, err := openTarget(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		store, _, err := openTracking(db)
		if err != nil {
			return err
		}

		records, err := store.AppliedMigrations(ctx)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
				return errNotInitialized
			}
			return err
		}

		line := statusLine{Applied: len(records)}
		for _, r := range records {
			if r.Version > line.LatestVersion {
				line.LatestVersion = r.Version
			}
		}

		out, err := json.MarshalIndent(line, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
