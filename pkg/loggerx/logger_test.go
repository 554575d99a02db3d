// SPDX-License-Identifier: Apache-2.0

package loggerx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdpotter/pgmt/pkg/section"
	"github.com/gdpotter/pgmt/pkg/steps"
)

func TestNoopLoggerNeverPanics(t *testing.T) {
	var l Logger = NewNoop()

	assert.NotPanics(t, func() {
		l.LogPlanStart(3)
		l.LogPlanComplete(3)
		l.LogStepStart(steps.DropTable{SchemaName: "public", Name: "orders"})
		l.LogStepComplete(steps.DropTable{SchemaName: "public", Name: "orders"})
		l.LogSectionStart(&section.MigrationSection{Name: "default", Mode: section.ModeTransactional})
		l.LogSectionComplete(&section.MigrationSection{Name: "default"})
		l.LogSectionRetry("default", 1, errors.New("boom"))
		l.LogSectionFailed("default", errors.New("boom"))
		l.LogMigrationApplied(1, "init")
		l.Info("hello")
		l.Warn("careful")
	})
}

func TestNewLoggerImplementsInterface(t *testing.T) {
	var l Logger = New()
	assert.NotNil(t, l)
}
