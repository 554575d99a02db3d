// SPDX-License-Identifier: Apache-2.0

package tracking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumIsStableAndContentSensitive(t *testing.T) {
	a := Checksum([]byte("CREATE TABLE foo (id int);"))
	b := Checksum([]byte("CREATE TABLE foo (id int);"))
	c := Checksum([]byte("CREATE TABLE foo (id int, name text);"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32) // MD5 hex digest
}

func TestValidateIdentifierAcceptsWellFormedNames(t *testing.T) {
	for _, name := range []string{"pgmt", "_pgmt", "pgmt_migrations", "a1", "x$y"} {
		assert.NoError(t, ValidateIdentifier("table", name), name)
	}
}

func TestValidateIdentifierRejectsUnsafeNames(t *testing.T) {
	for _, name := range []string{"", "1abc", "pgmt; DROP TABLE x", "pgmt-migrations", "pgmt migrations", `pgmt"`} {
		err := ValidateIdentifier("table", name)
		require.Error(t, err, name)
		var invalid InvalidIdentifierError
		assert.ErrorAs(t, err, &invalid)
		assert.Equal(t, "table", invalid.Kind)
	}
}

func TestNewStoreRejectsUnsafeSchemaOrTable(t *testing.T) {
	_, err := NewStore(nil, "public; DROP SCHEMA public CASCADE; --", "pgmt_migrations")
	assert.Error(t, err)

	_, err = NewStore(nil, "public", "pgmt; --")
	assert.Error(t, err)
}

func TestVersionToDBRoundTrips(t *testing.T) {
	for _, v := range []uint64{0, 1, 1753795200, math.MaxInt64} {
		dbVal, err := versionToDB(v)
		require.NoError(t, err)
		assert.Equal(t, v, versionFromDB(dbVal))
	}
}

func TestVersionToDBRejectsOverflow(t *testing.T) {
	_, err := versionToDB(math.MaxInt64 + 1)
	assert.Error(t, err)
}

func TestChecksumMismatchErrorMessage(t *testing.T) {
	err := ChecksumMismatchError{Version: 42, Expected: "aaa", Actual: "bbb"}
	assert.Contains(t, err.Error(), "42")
	assert.Contains(t, err.Error(), "aaa")
	assert.Contains(t, err.Error(), "bbb")
}
