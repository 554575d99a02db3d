// SPDX-License-Identifier: Apache-2.0

package pgconn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsLockNotAvailableMatchesExactSQLSTATE(t *testing.T) {
	err := &pq.Error{Code: LockNotAvailable}
	assert.True(t, isLockNotAvailable(err))
}

func TestIsLockNotAvailableRejectsOtherSQLSTATEs(t *testing.T) {
	err := &pq.Error{Code: "42P01"} // undefined_table
	assert.False(t, isLockNotAvailable(err))
}

func TestIsLockNotAvailableRejectsNonPqErrors(t *testing.T) {
	assert.False(t, isLockNotAvailable(errors.New("boom")))
	assert.False(t, isLockNotAvailable(nil))
}

func TestIsLockNotAvailableUnwrapsWrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), &pq.Error{Code: LockNotAvailable})
	assert.True(t, isLockNotAvailable(wrapped))
}

func TestSleepCtxRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleepCtx(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSleepCtxReturnsAfterDuration(t *testing.T) {
	err := sleepCtx(context.Background(), time.Millisecond)
	assert.NoError(t, err)
}
