// SPDX-License-Identifier: Apache-2.0

// Package pgconn wraps *sql.DB with retry on lock-timeout errors
// (SQLSTATE 55P03): RDB.ExecContext and RDB.QueryContext retry them with
// exponential backoff. BeginTx, QueryRowContext and calls made on the
// wrapped *sql.DB directly are not retried.
package pgconn

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cloudflare/backoff"
	"github.com/lib/pq"
)

const (
	// LockNotAvailable is the SQLSTATE PostgreSQL returns when a
	// statement_timeout or lock_timeout expires waiting on a lock. This
	// is a stricter replacement for the substring-matching heuristic
	// pkg/section's retry loop uses (that package keeps the substring
	// check since it must also catch driver-wrapped messages without a
	// SQLSTATE); here, where we control every caller, the SQLSTATE
	// comparison is exact.
	LockNotAvailable pq.ErrorCode = "55P03"

	maxBackoffDuration = 1 * time.Minute
	backoffInterval    = 1 * time.Second
)

// DB is the connection surface every package above pgconn depends on,
// never *sql.DB directly - so tests can substitute a fake.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	Close() error
}

// RDB wraps a *sql.DB, retrying ExecContext/QueryContext on lock-timeout
// errors with capped exponential backoff. BeginTx/QueryRowContext are not
// retried: a transaction spans multiple statements and a caller that
// started one is responsible for its own retry (or rollback) policy, and
// a single QueryRowContext's error isn't observable until Scan.
type RDB struct {
	DB *sql.DB
}

func Open(driverName, dsn string) (*RDB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return &RDB{DB: db}, nil
}

func (db *RDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	b := backoff.New(maxBackoffDuration, backoffInterval)
	for {
		res, err := db.DB.ExecContext(ctx, query, args...)
		if err == nil {
			return res, nil
		}
		if !isLockNotAvailable(err) {
			return nil, err
		}
		if err := sleepCtx(ctx, b.Duration()); err != nil {
			return nil, err
		}
	}
}

func (db *RDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	b := backoff.New(maxBackoffDuration, backoffInterval)
	for {
		rows, err := db.DB.QueryContext(ctx, query, args...)
		if err == nil {
			return rows, nil
		}
		if !isLockNotAvailable(err) {
			return nil, err
		}
		if err := sleepCtx(ctx, b.Duration()); err != nil {
			return nil, err
		}
	}
}

func (db *RDB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRowContext(ctx, query, args...)
}

func (db *RDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.DB.BeginTx(ctx, opts)
}

func (db *RDB) Close() error {
	return db.DB.Close()
}

func isLockNotAvailable(err error) bool {
	pqErr := &pq.Error{}
	return errors.As(err, &pqErr) && pqErr.Code == LockNotAvailable
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
