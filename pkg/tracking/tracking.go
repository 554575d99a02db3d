// SPDX-License-Identifier: Apache-2.0

// Package tracking records which migrations (and, within them, which
// sections) have been applied to a target database, so that a crashed
// or interrupted run can resume instead of re-applying already-completed
// work.
package tracking

import (
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/pgconn"
)

// identifierPattern mirrors the Postgres unquoted-identifier grammar:
// a letter or underscore, followed by letters, digits, underscores, or
// dollar signs.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// ErrNotApplied is returned when a migration expected to be recorded as
// applied has no tracking row.
var ErrNotApplied = errors.New("tracking: migration not applied")

// ChecksumMismatchError indicates that a migration file's content no
// longer matches the checksum recorded for it when it was applied -
// migrations are immutable once applied.
type ChecksumMismatchError struct {
	Version  uint64
	Expected string
	Actual   string
}

func (e ChecksumMismatchError) Error() string {
	return fmt.Sprintf("migration %d: checksum mismatch (recorded %s, computed %s): applied migrations must not be edited",
		e.Version, e.Expected, e.Actual)
}

// InvalidIdentifierError is returned when a configured tracking table or
// schema name isn't a safe SQL identifier to interpolate.
type InvalidIdentifierError struct {
	Kind  string
	Value string
}

func (e InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid %s %q: must match %s", e.Kind, e.Value, identifierPattern.String())
}

// ValidateIdentifier rejects any table/schema name pgmt will later
// interpolate into raw SQL without a placeholder.
func ValidateIdentifier(kind, value string) error {
	if !identifierPattern.MatchString(value) {
		return InvalidIdentifierError{Kind: kind, Value: value}
	}
	return nil
}

// MigrationRecord is one row of the migrations tracking table.
type MigrationRecord struct {
	Version     uint64
	Description string
	Checksum    string
	AppliedAt   time.Time
	AppliedBy   string
}

// Checksum returns the MD5 hex digest of a migration file's contents,
// matching the original tool's checksum scheme.
func Checksum(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}

// versionToDB narrows a uint64 version into the signed BIGINT column.
// Versions are monotonic timestamps/counters well within int64 range in
// practice; this only guards against a version so large it would wrap.
func versionToDB(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("tracking: version %d overflows BIGINT", v)
	}
	return int64(v), nil
}

func versionFromDB(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// Store manages the pgmt_migrations tracking table.
type Store struct {
	db     *pgconn.RDB
	schema string
	table  string
}

// NewStore builds a Store against the given schema-qualified tracking
// table name. Both must already be validated identifiers.
func NewStore(db *pgconn.RDB, schema, table string) (*Store, error) {
	if err := ValidateIdentifier("schema", schema); err != nil {
		return nil, err
	}
	if err := ValidateIdentifier("table", table); err != nil {
		return nil, err
	}
	return &Store{db: db, schema: schema, table: table}, nil
}

func (s *Store) qualifiedName() string {
	return fmt.Sprintf("%s.%s", pq.QuoteIdentifier(s.schema), pq.QuoteIdentifier(s.table))
}

const createTableSQL = `
CREATE SCHEMA IF NOT EXISTS %[1]s;

CREATE TABLE IF NOT EXISTS %[2]s (
	version      BIGINT PRIMARY KEY,
	description  TEXT NOT NULL DEFAULT '',
	checksum     TEXT NOT NULL,
	applied_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	applied_by   TEXT NOT NULL DEFAULT CURRENT_USER
);
`

// EnsureTable creates the tracking schema/table if they do not exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	stmt := fmt.Sprintf(createTableSQL, pq.QuoteIdentifier(s.schema), s.qualifiedName())
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

// IsApplied reports whether a migration version has already been
// recorded as applied.
func (s *Store) IsApplied(ctx context.Context, version uint64) (bool, error) {
	dbVersion, err := versionToDB(version)
	if err != nil {
		return false, err
	}
	var exists bool
	stmt := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE version = $1)", s.qualifiedName())
	if err := s.db.DB.QueryRowContext(ctx, stmt, dbVersion).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// RecordApplied inserts a new migration record. It is the caller's
// responsibility to ensure the migration's sections have all completed
// first.
func (s *Store) RecordApplied(ctx context.Context, version uint64, description string, checksum string) error {
	dbVersion, err := versionToDB(version)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf(
		"INSERT INTO %s (version, description, checksum) VALUES ($1, $2, $3)",
		s.qualifiedName(),
	)
	_, err = s.db.ExecContext(ctx, stmt, dbVersion, description, checksum)
	return err
}

// RecordBaseline marks a version as applied without actually running
// it, for adopting pgmt onto a database whose schema was brought to
// that state by other means.
func (s *Store) RecordBaseline(ctx context.Context, version uint64, description, checksum string) error {
	return s.RecordApplied(ctx, version, description, checksum)
}

// VerifyChecksum confirms a migration's recorded checksum still matches
// its current file content.
func (s *Store) VerifyChecksum(ctx context.Context, version uint64, content []byte) error {
	dbVersion, err := versionToDB(version)
	if err != nil {
		return err
	}
	var recorded string
	stmt := fmt.Sprintf("SELECT checksum FROM %s WHERE version = $1", s.qualifiedName())
	err = s.db.DB.QueryRowContext(ctx, stmt, dbVersion).Scan(&recorded)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotApplied
	}
	if err != nil {
		return err
	}
	actual := Checksum(content)
	if recorded != actual {
		return ChecksumMismatchError{Version: version, Expected: recorded, Actual: actual}
	}
	return nil
}

// AppliedMigrations returns every recorded migration, ordered by
// version ascending.
func (s *Store) AppliedMigrations(ctx context.Context) ([]MigrationRecord, error) {
	stmt := fmt.Sprintf(
		"SELECT version, description, checksum, applied_at, applied_by FROM %s ORDER BY version ASC",
		s.qualifiedName(),
	)
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MigrationRecord
	for rows.Next() {
		var rec MigrationRecord
		var dbVersion int64
		if err := rows.Scan(&dbVersion, &rec.Description, &rec.Checksum, &rec.AppliedAt, &rec.AppliedBy); err != nil {
			return nil, err
		}
		rec.Version = versionFromDB(dbVersion)
		out = append(out, rec)
	}
	return out, rows.Err()
}
