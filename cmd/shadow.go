// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"

	"github.com/gdpotter/pgmt/internal/testutils"
	"github.com/gdpotter/pgmt/pkg/catalog"
	"github.com/gdpotter/pgmt/pkg/shadowdb"
)

// loadDesiredCatalog provisions a shadow database, applies every *.sql
// file in schemaDir (in lexical order) to it, loads the resulting
// Catalog, and tears the shadow DB down - regardless of whether loading
// succeeded.
func loadDesiredCatalog(ctx context.Context, schemaDir string, filter catalog.ObjectFilter) (*catalog.Catalog, []catalog.MissingDependencyWarning, error) {
	shadow := shadowDBFor(ctx)
	defer shadow.Close(ctx)

	connStr, err := shadow.ConnectionString(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("provisioning shadow db: %w", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	if err := applySchemaFiles(ctx, db, schemaDir); err != nil {
		return nil, nil, err
	}

	return catalog.Load(ctx, db, filter)
}

// shadowDBFor is the one place a concrete shadowdb.ShadowDB is chosen;
// swapping it for a different provisioning strategy only touches this
// function.
func shadowDBFor(_ context.Context) shadowdb.ShadowDB {
	return testutils.NewContainerShadowDB("")
}

func applySchemaFiles(ctx context.Context, db *sql.DB, schemaDir string) error {
	entries, err := os.ReadDir(schemaDir)
	if err != nil {
		return fmt.Errorf("reading schema dir %s: %w", schemaDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(schemaDir, name))
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("applying schema file %s: %w", name, err)
		}
	}
	return nil
}
