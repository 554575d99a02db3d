// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrationFilename(t *testing.T) {
	version, description, err := parseMigrationFilename("1753795200_add_accounts_table.sql")
	require.NoError(t, err)
	assert.EqualValues(t, 1753795200, version)
	assert.Equal(t, "add_accounts_table", description)
}

func TestParseMigrationFilenameAcceptsLegacyVPrefix(t *testing.T) {
	version, description, err := parseMigrationFilename("V2_add_index.sql")
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)
	assert.Equal(t, "add_index", description)
}

func TestParseMigrationFilenameRejectsMissingUnderscore(t *testing.T) {
	_, _, err := parseMigrationFilename("nounderscore.sql")
	assert.Error(t, err)
}

func TestParseMigrationFilenameRejectsNonNumericVersion(t *testing.T) {
	_, _, err := parseMigrationFilename("abc_add_accounts.sql")
	assert.Error(t, err)
}

func TestParseMigrationFilenameRejectsOverlongDescription(t *testing.T) {
	longDesc := ""
	for i := 0; i < 101; i++ {
		longDesc += "a"
	}
	_, _, err := parseMigrationFilename("1_" + longDesc + ".sql")
	assert.Error(t, err)
}

func TestParseMigrationFilenameRejectsPathSeparatorsInDescription(t *testing.T) {
	_, _, err := parseMigrationFilename("1_../../etc_passwd.sql")
	assert.Error(t, err)
}

func TestListMigrationFilesSortsByVersionAndSkipsBaselines(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"2_second.sql",
		"1_first.sql",
		"10_tenth.sql",
		"baseline_0_initial.sql",
		"README.md",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("-- noop"), 0o644))
	}

	files, err := listMigrationFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "first", files[0].Description)
	assert.Equal(t, "second", files[1].Description)
	assert.Equal(t, "tenth", files[2].Description)
}

func TestListMigrationFilesPropagatesParseErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "not-a-valid-name.sql"), []byte("-- noop"), 0o644))

	_, err := listMigrationFiles(dir)
	assert.Error(t, err)
}
