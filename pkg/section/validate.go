// SPDX-License-Identifier: Apache-2.0

package section

import "strings"

// Validate checks a parsed section list against the structural rules the
// executor assumes hold: unique names, sane timeouts/retry/batch bounds,
// and the CONCURRENTLY-vs-transactional conflict.
func Validate(sections []MigrationSection) error {
	if err := validateUniqueNames(sections); err != nil {
		return err
	}
	for _, s := range sections {
		if err := validateSection(s); err != nil {
			return err
		}
	}
	return nil
}

func validateUniqueNames(sections []MigrationSection) error {
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if seen[s.Name] {
			return ValidationError{Section: s.Name, Line: s.StartLine, Msg: "duplicate section name"}
		}
		seen[s.Name] = true
	}
	return nil
}

func validateSection(s MigrationSection) error {
	if s.Timeout <= 0 {
		return ValidationError{Section: s.Name, Line: s.StartLine, Msg: "timeout must be greater than zero"}
	}
	if s.RetryAttempts == 0 || s.RetryAttempts > MaxRetryAttempts {
		return ValidationError{Section: s.Name, Line: s.StartLine, Msg: "retry_attempts must be between 1 and 100"}
	}
	if s.Batch != nil {
		if s.Batch.Size <= 0 || s.Batch.Size > MaxBatchSize {
			return ValidationError{Section: s.Name, Line: s.StartLine, Msg: "batch_size must be between 1 and 1,000,000"}
		}
		if s.Mode != ModeAutocommit {
			return ValidationError{Section: s.Name, Line: s.StartLine, Msg: "batch_size requires mode=\"autocommit\""}
		}
	}
	if strings.TrimSpace(s.SQL) == "" {
		return ValidationError{Section: s.Name, Line: s.StartLine, Msg: "section has no SQL statements"}
	}
	if s.Mode == ModeTransactional && strings.Contains(strings.ToUpper(s.SQL), "CONCURRENTLY") {
		return ValidationError{Section: s.Name, Line: s.StartLine, Msg: "CONCURRENTLY cannot run inside a transaction: use mode=\"non-transactional\" or mode=\"autocommit\""}
	}
	return nil
}
