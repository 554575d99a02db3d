// SPDX-License-Identifier: Apache-2.0

package tracking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// SectionStatus is the lifecycle state of one section within a
// migration run.
type SectionStatus int

const (
	SectionPending SectionStatus = iota
	SectionRunning
	SectionCompleted
	SectionFailed
)

func (s SectionStatus) String() string {
	switch s {
	case SectionPending:
		return "pending"
	case SectionRunning:
		return "running"
	case SectionCompleted:
		return "completed"
	case SectionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func parseSectionStatus(s string) (SectionStatus, error) {
	switch s {
	case "pending":
		return SectionPending, nil
	case "running":
		return SectionRunning, nil
	case "completed":
		return SectionCompleted, nil
	case "failed":
		return SectionFailed, nil
	default:
		return 0, fmt.Errorf("tracking: unknown section status %q", s)
	}
}

// SectionRecord is one row of the sections tracking table.
type SectionRecord struct {
	MigrationVersion uint64
	SectionName      string
	SectionOrder     int
	Status           SectionStatus
	StartedAt        *time.Time
	CompletedAt      *time.Time
	Attempts         int
	LastError        *string
	RowsAffected     *int64
	DurationMs       *int64
}

// SectionStore manages the "<table>_sections" tracking table that
// accompanies a migrations Store.
type SectionStore struct {
	db     *Store
	schema string
	table  string
}

// NewSectionStore derives a section tracker from an already-validated
// migrations Store, naming its table "<table>_sections" in the same
// schema, per the original tool's convention.
func NewSectionStore(migrations *Store) *SectionStore {
	return &SectionStore{
		db:     migrations,
		schema: migrations.schema,
		table:  migrations.table + "_sections",
	}
}

func (s *SectionStore) qualifiedName() string {
	return fmt.Sprintf("%s.%s", pq.QuoteIdentifier(s.schema), pq.QuoteIdentifier(s.table))
}

const createSectionsTableSQL = `
CREATE TABLE IF NOT EXISTS %[1]s (
	migration_version  BIGINT NOT NULL,
	section_name       TEXT NOT NULL,
	section_order      INTEGER NOT NULL,
	status             TEXT NOT NULL DEFAULT 'pending',
	started_at         TIMESTAMPTZ,
	completed_at       TIMESTAMPTZ,
	attempts           INTEGER NOT NULL DEFAULT 0,
	last_error         TEXT,
	rows_affected      BIGINT,
	duration_ms        BIGINT,

	PRIMARY KEY (migration_version, section_name)
);

CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s (migration_version, status);
`

// EnsureTable creates the sections tracking table if it does not exist.
func (s *SectionStore) EnsureTable(ctx context.Context) error {
	idxName := pq.QuoteIdentifier(s.table + "_status_idx")
	stmt := fmt.Sprintf(createSectionsTableSQL, s.qualifiedName(), idxName)
	_, err := s.db.db.ExecContext(ctx, stmt)
	return err
}

// Initialize inserts a pending row for every section of a migration,
// ignoring sections already present (idempotent across resumes).
func (s *SectionStore) Initialize(ctx context.Context, version uint64, sectionNames []string) error {
	dbVersion, err := versionToDB(version)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf(
		"INSERT INTO %s (migration_version, section_name, section_order) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING",
		s.qualifiedName(),
	)
	for order, name := range sectionNames {
		if _, err := s.db.db.ExecContext(ctx, stmt, dbVersion, name, order); err != nil {
			return err
		}
	}
	return nil
}

// Status returns the current status of a section, or SectionPending
// with ErrNotApplied-free nil error if no row exists yet (treated as
// not-yet-started).
func (s *SectionStore) Status(ctx context.Context, version uint64, sectionName string) (SectionStatus, error) {
	dbVersion, err := versionToDB(version)
	if err != nil {
		return 0, err
	}
	var raw string
	stmt := fmt.Sprintf("SELECT status FROM %s WHERE migration_version = $1 AND section_name = $2", s.qualifiedName())
	err = s.db.db.QueryRowContext(ctx, stmt, dbVersion, sectionName).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return SectionPending, nil
	}
	if err != nil {
		return 0, err
	}
	return parseSectionStatus(raw)
}

// RecordStart marks a section running and increments its attempt count.
func (s *SectionStore) RecordStart(ctx context.Context, version uint64, sectionName string) error {
	dbVersion, err := versionToDB(version)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf(`
		UPDATE %s
		SET status = 'running', started_at = CURRENT_TIMESTAMP, attempts = attempts + 1
		WHERE migration_version = $1 AND section_name = $2`, s.qualifiedName())
	_, err = s.db.db.ExecContext(ctx, stmt, dbVersion, sectionName)
	return err
}

// RecordComplete marks a section completed, with the reported row count
// and wall-clock duration.
func (s *SectionStore) RecordComplete(ctx context.Context, version uint64, sectionName string, rowsAffected int64, duration time.Duration) error {
	dbVersion, err := versionToDB(version)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf(`
		UPDATE %s
		SET status = 'completed', completed_at = CURRENT_TIMESTAMP, rows_affected = $3, duration_ms = $4
		WHERE migration_version = $1 AND section_name = $2`, s.qualifiedName())
	_, err = s.db.db.ExecContext(ctx, stmt, dbVersion, sectionName, rowsAffected, duration.Milliseconds())
	return err
}

// RecordFailed marks a section failed with the given error text.
func (s *SectionStore) RecordFailed(ctx context.Context, version uint64, sectionName string, lastErr string) error {
	dbVersion, err := versionToDB(version)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf(`
		UPDATE %s
		SET status = 'failed', last_error = $3
		WHERE migration_version = $1 AND section_name = $2`, s.qualifiedName())
	_, err = s.db.db.ExecContext(ctx, stmt, dbVersion, sectionName, lastErr)
	return err
}
