// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// migrationFile is one <version>_<description>.sql entry from a
// migrations directory.
type migrationFile struct {
	Version     uint64
	Description string
	Path        string
}

// parseMigrationFilename extracts the version and description from a
// migration file's base name, accepting an optional legacy "V" prefix
// on the version for backwards compatibility.
func parseMigrationFilename(name string) (uint64, string, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("migration filename %q must be <version>_<description>.sql", name)
	}

	versionPart := strings.TrimPrefix(parts[0], "V")
	version, err := strconv.ParseUint(versionPart, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("migration filename %q has a non-numeric version: %w", name, err)
	}

	description := parts[1]
	if len(description) > 100 {
		return 0, "", fmt.Errorf("migration filename %q: description exceeds 100 characters", name)
	}
	if strings.ContainsAny(description, "/\\") {
		return 0, "", fmt.Errorf("migration filename %q: description must not contain path separators", name)
	}

	return version, description, nil
}

// listMigrationFiles returns every *.sql file in dir as a migrationFile,
// sorted by ascending version.
func listMigrationFiles(dir string) ([]migrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations dir %s: %w", dir, err)
	}

	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") || strings.HasPrefix(e.Name(), "baseline_") {
			continue
		}
		version, description, err := parseMigrationFilename(e.Name())
		if err != nil {
			return nil, err
		}
		files = append(files, migrationFile{
			Version:     version,
			Description: description,
			Path:        filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Version < files[j].Version })
	return files, nil
}
