// SPDX-License-Identifier: Apache-2.0

package section

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoSections(t *testing.T) {
	sql := "ALTER TABLE foo ADD COLUMN bar int;"
	sections, err := Parse(sql)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	s := sections[0]
	assert.Equal(t, "default", s.Name)
	assert.Equal(t, ModeTransactional, s.Mode)
	assert.Equal(t, DefaultTimeout, s.Timeout)
	assert.Equal(t, sql, s.SQL)
}

func TestParseSingleSectionWithAttributesOnTheDirectiveLine(t *testing.T) {
	sql := `-- pgmt:section name="add_column" mode="non-transactional" timeout="5m" retry_attempts="3"
ALTER TABLE foo ADD COLUMN bar int;`

	sections, err := Parse(sql)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	s := sections[0]
	assert.Equal(t, "add_column", s.Name)
	assert.Equal(t, ModeNonTransactional, s.Mode)
	assert.Equal(t, 5*time.Minute, s.Timeout)
	assert.EqualValues(t, 3, s.RetryAttempts)
	assert.Equal(t, "ALTER TABLE foo ADD COLUMN bar int;", s.SQL)
}

func TestParseAttributesOnContinuationLines(t *testing.T) {
	sql := `-- pgmt:section
-- pgmt:  name="backfill"
-- pgmt:  mode="autocommit"
-- pgmt:  batch_size="1000"
-- pgmt:  batch_delay="100ms"
UPDATE foo SET bar = 1 WHERE bar IS NULL;`

	sections, err := Parse(sql)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	s := sections[0]
	assert.Equal(t, "backfill", s.Name)
	assert.Equal(t, ModeAutocommit, s.Mode)
	require.NotNil(t, s.Batch)
	assert.Equal(t, 1000, s.Batch.Size)
	assert.Equal(t, 100*time.Millisecond, s.Batch.Delay)
}

func TestParseMultipleSections(t *testing.T) {
	sql := `-- pgmt:section name="a"
CREATE TABLE foo (id int);
-- pgmt:section name="b" mode="autocommit"
UPDATE foo SET id = id;
-- pgmt:section name="c"
DROP TABLE bar;`

	sections, err := Parse(sql)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, "a", sections[0].Name)
	assert.Equal(t, "CREATE TABLE foo (id int);", sections[0].SQL)
	assert.Equal(t, "b", sections[1].Name)
	assert.Equal(t, ModeAutocommit, sections[1].Mode)
	assert.Equal(t, "c", sections[2].Name)
	assert.Equal(t, "DROP TABLE bar;", sections[2].SQL)
}

func TestParseMissingNameIsAnError(t *testing.T) {
	sql := `-- pgmt:section mode="autocommit"
SELECT 1;`
	_, err := Parse(sql)
	require.Error(t, err)
	var parseErr ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseUnknownAttributeIsAnError(t *testing.T) {
	sql := `-- pgmt:section name="a" bogus="1"
SELECT 1;`
	_, err := Parse(sql)
	require.Error(t, err)
}

func TestParseUnknownModeIsAnError(t *testing.T) {
	sql := `-- pgmt:section name="a" mode="sideways"
SELECT 1;`
	_, err := Parse(sql)
	require.Error(t, err)
}

func TestParseQuotedValueWithSpaces(t *testing.T) {
	sql := `-- pgmt:section name="a" description="adds a new column"
SELECT 1;`
	sections, err := Parse(sql)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "adds a new column", sections[0].Description)
}

func TestParseUnclosedQuoteIsAnError(t *testing.T) {
	sql := `-- pgmt:section name="a
SELECT 1;`
	_, err := Parse(sql)
	require.Error(t, err)
}
