// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gdpotter/pgmt/cmd/flags"
	"github.com/gdpotter/pgmt/internal/connstr"
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/pgconn"
	"github.com/gdpotter/pgmt/pkg/tracking"
)

// Version is the pgmt version.
var Version = "development"

func init() {
	viper.SetEnvPrefix("PGMT")
	viper.AutomaticEnv()

	flags.PgConnectionFlags(rootCmd)
}

var rootCmd = &cobra.Command{
	Use:          "pgmt",
	SilenceUsage: true,
	Version:      Version,
}

// Execute runs the root command.
func Execute() error {
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(baselineCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(statusCmd)

	return rootCmd.Execute()
}

// openTarget connects to the target database via the retrying pgconn
// wrapper, using the URL and object filter the persistent flags name.
// The connection string's search_path is pinned to the managed schema
// so unqualified object references in migration SQL resolve there.
func openTarget(ctx context.Context) (*pgconn.RDB, error) {
	dsn, err := connstr.AppendSearchPathOption(flags.PostgresURL(), flags.Schema())
	if err != nil {
		return nil, err
	}

	db, err := pgconn.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.DB.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// openTracking wires a tracking.Store + SectionStore against the target
// connection, per the tracking-schema/tracking-table flags.
func openTracking(db *pgconn.RDB) (*tracking.Store, *tracking.SectionStore, error) {
	store, err := tracking.NewStore(db, flags.TrackingSchema(), flags.TrackingTable())
	if err != nil {
		return nil, nil, err
	}
	return store, tracking.NewSectionStore(store), nil
}

func targetFilter() catalog.ObjectFilter {
	return catalog.ObjectFilter{
		IncludeSchemas: []string{flags.Schema()},
	}
}
