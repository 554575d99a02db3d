// SPDX-License-Identifier: Apache-2.0

package section

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func baseSection(name string) MigrationSection {
	return MigrationSection{
		Name:          name,
		Mode:          ModeTransactional,
		Timeout:       DefaultTimeout,
		RetryAttempts: 1,
		SQL:           "SELECT 1;",
	}
}

func TestValidateDuplicateNames(t *testing.T) {
	err := Validate([]MigrationSection{baseSection("a"), baseSection("a")})
	assert.Error(t, err)
	var valErr ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestValidateZeroTimeoutRejected(t *testing.T) {
	s := baseSection("a")
	s.Timeout = 0
	assert.Error(t, Validate([]MigrationSection{s}))
}

func TestValidateRetryAttemptsBounds(t *testing.T) {
	s := baseSection("a")
	s.RetryAttempts = 0
	assert.Error(t, Validate([]MigrationSection{s}))

	s.RetryAttempts = 101
	assert.Error(t, Validate([]MigrationSection{s}))

	s.RetryAttempts = 100
	assert.NoError(t, Validate([]MigrationSection{s}))
}

func TestValidateEmptySQLRejected(t *testing.T) {
	s := baseSection("a")
	s.SQL = "   "
	assert.Error(t, Validate([]MigrationSection{s}))
}

func TestValidateConcurrentlyRequiresNonTransactional(t *testing.T) {
	s := baseSection("a")
	s.SQL = "CREATE INDEX CONCURRENTLY idx_foo ON foo (bar);"
	s.Mode = ModeTransactional
	assert.Error(t, Validate([]MigrationSection{s}))

	s.Mode = ModeNonTransactional
	assert.NoError(t, Validate([]MigrationSection{s}))

	s.Mode = ModeAutocommit
	assert.NoError(t, Validate([]MigrationSection{s}))
}

func TestValidateConcurrentlyCaseInsensitive(t *testing.T) {
	s := baseSection("a")
	s.SQL = "create index concurrently idx_foo on foo (bar);"
	s.Mode = ModeTransactional
	assert.Error(t, Validate([]MigrationSection{s}))
}

func TestValidateBatchSizeRequiresAutocommit(t *testing.T) {
	s := baseSection("a")
	s.Mode = ModeTransactional
	s.Batch = &BatchConfig{Size: 100}
	assert.Error(t, Validate([]MigrationSection{s}))

	s.Mode = ModeAutocommit
	assert.NoError(t, Validate([]MigrationSection{s}))
}

func TestValidateBatchSizeBounds(t *testing.T) {
	s := baseSection("a")
	s.Mode = ModeAutocommit

	s.Batch = &BatchConfig{Size: 0}
	assert.Error(t, Validate([]MigrationSection{s}))

	s.Batch = &BatchConfig{Size: MaxBatchSize + 1}
	assert.Error(t, Validate([]MigrationSection{s}))

	s.Batch = &BatchConfig{Size: MaxBatchSize}
	assert.NoError(t, Validate([]MigrationSection{s}))
}

func TestValidateAcceptsWellFormedSections(t *testing.T) {
	sections := []MigrationSection{baseSection("a"), baseSection("b")}
	assert.NoError(t, Validate(sections))
}

func TestRetryDelayForAttemptUnaffectedByValidation(t *testing.T) {
	// Sanity check that Validate doesn't mutate its input.
	s := baseSection("a")
	s.RetryDelay = time.Second
	before := s
	_ = Validate([]MigrationSection{s})
	assert.Equal(t, before, s)
}
