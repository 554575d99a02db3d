// SPDX-License-Identifier: Apache-2.0

package section

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gdpotter/pgmt/pkg/pgconn"
)

// ExecutionMode selects whether Executor actually runs a section's SQL
// and records it in the tracking tables (Production), or merely checks
// that it would apply without committing anything (Validation, used by
// a dry-run "plan" command).
type ExecutionMode int

const (
	ExecutionProduction ExecutionMode = iota
	ExecutionValidation
)

// Tracker is the subset of pkg/tracking's SectionStore the executor
// needs, kept as a local interface so pkg/section doesn't import
// pkg/tracking directly and tests can supply a fake.
type Tracker interface {
	Status(ctx context.Context, version uint64, sectionName string) (SectionTrackedStatus, error)
	RecordStart(ctx context.Context, version uint64, sectionName string) error
	RecordComplete(ctx context.Context, version uint64, sectionName string, rowsAffected int64, duration time.Duration) error
	RecordFailed(ctx context.Context, version uint64, sectionName string, lastErr string) error
}

// SectionTrackedStatus mirrors tracking.SectionStatus without importing
// it, avoiding a dependency from pkg/section onto pkg/tracking.
type SectionTrackedStatus int

const (
	TrackedPending SectionTrackedStatus = iota
	TrackedRunning
	TrackedCompleted
	TrackedFailed
)

// Reporter receives progress notifications as sections execute. It is
// satisfied by pkg/loggerx.Logger; the zero value of any interface
// implementing these three methods works, including a no-op.
type Reporter interface {
	LogSectionStart(*MigrationSection)
	LogSectionComplete(*MigrationSection)
	LogSectionRetry(name string, attempt uint32, err error)
}

// Executor runs a migration's sections in order against a database,
// honoring each section's transaction mode and retry policy.
type Executor struct {
	DB       *pgconn.RDB
	Tracker  Tracker
	Reporter Reporter
	Mode     ExecutionMode
	Version  uint64

	// LastRunID is set by Execute to a fresh id on every invocation, for
	// log correlation across a run's sections and retries.
	LastRunID uuid.UUID
}

// Execute runs every section in order, skipping any already recorded as
// Completed (resume-after-crash). The first section that fails stops
// the run and returns an ExecError; later sections are left Pending.
// Each invocation is tagged with a fresh RunID (see Executor.LastRunID)
// so a caller's logger can correlate a section's retries back to one
// apply invocation.
func (e *Executor) Execute(ctx context.Context, sections []MigrationSection) error {
	e.LastRunID = uuid.New()
	for i := range sections {
		if err := e.executeOne(ctx, &sections[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) executeOne(ctx context.Context, s *MigrationSection) error {
	if e.Mode == ExecutionProduction && e.Tracker != nil {
		status, err := e.Tracker.Status(ctx, e.Version, s.Name)
		if err != nil {
			return err
		}
		if status == TrackedCompleted {
			return nil
		}
	}

	if e.Reporter != nil {
		e.Reporter.LogSectionStart(s)
	}

	if e.Mode == ExecutionValidation {
		err := e.executeValidation(ctx, s)
		if err != nil {
			return ExecError{Section: s.Name, SQL: s.SQL, Err: err, Detail: pqDetail(err), Hint: pqHint(err)}
		}
		return nil
	}

	if e.Tracker != nil {
		if err := e.Tracker.RecordStart(ctx, e.Version, s.Name); err != nil {
			return err
		}
	}

	start := time.Now()
	rowsAffected, err := e.dispatch(ctx, s)
	duration := time.Since(start)

	if err != nil {
		if e.Tracker != nil {
			_ = e.Tracker.RecordFailed(ctx, e.Version, s.Name, err.Error())
		}
		return ExecError{Section: s.Name, SQL: s.SQL, Err: err, Detail: pqDetail(err), Hint: pqHint(err)}
	}

	if e.Tracker != nil {
		if err := e.Tracker.RecordComplete(ctx, e.Version, s.Name, rowsAffected, duration); err != nil {
			return err
		}
	}
	if e.Reporter != nil {
		e.Reporter.LogSectionComplete(s)
	}
	return nil
}

func (e *Executor) dispatch(ctx context.Context, s *MigrationSection) (int64, error) {
	switch s.Mode {
	case ModeTransactional:
		return e.executeTransactional(ctx, s)
	case ModeNonTransactional:
		return e.executeNonTransactional(ctx, s)
	case ModeAutocommit:
		return e.executeAutocommit(ctx, s)
	default:
		return 0, fmt.Errorf("section %q: unknown mode %v", s.Name, s.Mode)
	}
}

// executeTransactional runs the whole section inside one transaction,
// with statement_timeout scoped to that transaction via SET LOCAL.
func (e *Executor) executeTransactional(ctx context.Context, s *MigrationSection) (int64, error) {
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %s", pq.QuoteLiteral(fmt.Sprintf("%dms", s.Timeout.Milliseconds())))); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, s.SQL)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return rowsAffectedOf(res), nil
}

// executeNonTransactional runs the section's SQL directly against the
// connection (no wrapping transaction, required for statements like
// CREATE INDEX CONCURRENTLY), retrying on lock-timeout per the
// section's retry policy.
func (e *Executor) executeNonTransactional(ctx context.Context, s *MigrationSection) (int64, error) {
	var lastErr error
	for attempt := uint32(1); attempt <= s.RetryAttempts; attempt++ {
		if _, err := e.DB.DB.ExecContext(ctx, fmt.Sprintf("SET statement_timeout = %s", pq.QuoteLiteral(fmt.Sprintf("%dms", s.Timeout.Milliseconds())))); err != nil {
			return 0, err
		}

		res, err := e.DB.DB.ExecContext(ctx, s.SQL)
		if err == nil {
			return rowsAffectedOf(res), nil
		}
		lastErr = err

		isTimeout := isLockTimeoutError(err)
		last := attempt == s.RetryAttempts
		if !isTimeout || s.OnLockTimeout == LockTimeoutFail || last {
			return 0, err
		}

		if e.Reporter != nil {
			e.Reporter.LogSectionRetry(s.Name, attempt, err)
		}
		if err := sleepCtx(ctx, s.RetryDelayForAttempt(attempt)); err != nil {
			return 0, err
		}
	}
	return 0, lastErr
}

// executeAutocommit runs the section's SQL as a single autocommit
// statement. BatchConfig is accepted but not yet applied - see the
// doc comment on BatchConfig.
func (e *Executor) executeAutocommit(ctx context.Context, s *MigrationSection) (int64, error) {
	res, err := e.DB.DB.ExecContext(ctx, s.SQL)
	if err != nil {
		return 0, err
	}
	return rowsAffectedOf(res), nil
}

// executeValidation checks that a section's SQL would apply, without
// persisting anything: a transactional section runs inside a
// begin/rollback pair, everything else runs directly (autocommit and
// CONCURRENTLY statements can't be wrapped in a transaction at all).
func (e *Executor) executeValidation(ctx context.Context, s *MigrationSection) error {
	if s.Mode != ModeTransactional {
		_, err := e.DB.DB.ExecContext(ctx, s.SQL)
		return err
	}
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, s.SQL); err != nil {
		return err
	}
	return nil
}

func rowsAffectedOf(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

// isLockTimeoutError applies the substring heuristic the original tool
// uses at this layer ("timeout" or "lock" anywhere in the lowercased
// error text), deliberately looser than pkg/pgconn's exact SQLSTATE
// check: a non-transactional section's statement can fail with a
// driver-wrapped error that has lost its SQLSTATE by the time it
// reaches here.
func isLockTimeoutError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "lock")
}

func pqDetail(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Detail
	}
	return ""
}

func pqHint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Hint
	}
	return ""
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
