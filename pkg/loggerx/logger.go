// SPDX-License-Identifier: Apache-2.0

// Package loggerx is the structured-logging surface used by the CLI
// commands; its Logger also satisfies the section executor's Reporter.
package loggerx

import (
	"github.com/pterm/pterm"

	"github.com/gdpotter/pgmt/pkg/section"
	"github.com/gdpotter/pgmt/pkg/steps"
)

// Logger is responsible for reporting the progress of a plan/apply run.
type Logger interface {
	LogPlanStart(stepCount int)
	LogPlanComplete(stepCount int)

	LogStepStart(steps.MigrationStep)
	LogStepComplete(steps.MigrationStep)

	LogSectionStart(*section.MigrationSection)
	LogSectionComplete(*section.MigrationSection)
	LogSectionRetry(name string, attempt uint32, err error)
	LogSectionFailed(name string, err error)

	LogMigrationApplied(version uint64, description string)

	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type logger struct {
	logger pterm.Logger
}

type noopLogger struct{}

func New() Logger {
	return &logger{logger: pterm.DefaultLogger}
}

func NewNoop() Logger {
	return &noopLogger{}
}

func (l *logger) LogPlanStart(stepCount int) {
	l.logger.Info("starting plan", l.logger.Args("step_count", stepCount))
}

func (l *logger) LogPlanComplete(stepCount int) {
	l.logger.Info("plan complete", l.logger.Args("step_count", stepCount))
}

func (l *logger) LogStepStart(s steps.MigrationStep) {
	l.logger.Info("applying step", l.logger.Args("step", s.ID().String()))
}

func (l *logger) LogStepComplete(s steps.MigrationStep) {
	l.logger.Info("step applied", l.logger.Args("step", s.ID().String()))
}

func (l *logger) LogSectionStart(s *section.MigrationSection) {
	l.logger.Info("starting section", l.logger.Args("section", s.Name, "mode", s.Mode.String()))
}

func (l *logger) LogSectionComplete(s *section.MigrationSection) {
	l.logger.Info("section complete", l.logger.Args("section", s.Name))
}

func (l *logger) LogSectionRetry(name string, attempt uint32, err error) {
	l.logger.Warn("retrying section", l.logger.Args("section", name, "attempt", attempt, "error", err.Error()))
}

func (l *logger) LogSectionFailed(name string, err error) {
	l.logger.Error("section failed", l.logger.Args("section", name, "error", err.Error()))
}

func (l *logger) LogMigrationApplied(version uint64, description string) {
	l.logger.Info("migration applied", l.logger.Args("version", version, "description", description))
}

func (l *logger) Info(msg string, args ...any) {
	l.logger.Info(msg, l.logger.Args(args...))
}

func (l *logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, l.logger.Args(args...))
}

func (l *noopLogger) LogPlanStart(stepCount int)                             {}
func (l *noopLogger) LogPlanComplete(stepCount int)                          {}
func (l *noopLogger) LogStepStart(s steps.MigrationStep)                     {}
func (l *noopLogger) LogStepComplete(s steps.MigrationStep)                  {}
func (l *noopLogger) LogSectionStart(s *section.MigrationSection)            {}
func (l *noopLogger) LogSectionComplete(s *section.MigrationSection)         {}
func (l *noopLogger) LogSectionRetry(name string, attempt uint32, err error) {}
func (l *noopLogger) LogSectionFailed(name string, err error)               {}
func (l *noopLogger) LogMigrationApplied(version uint64, description string) {}
func (l *noopLogger) Info(msg string, args ...any)                           {}
func (l *noopLogger) Warn(msg string, args ...any)                           {}
