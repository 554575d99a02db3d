// SPDX-License-Identifier: Apache-2.0

package section

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	sectionDirective = "-- pgmt:section"
	attrPrefix       = "-- pgmt:"
)

// Parse splits a migration file's SQL text into its declared sections. A
// file with no `-- pgmt:section` directives is wrapped in a single
// default-configuration section named "default".
func Parse(sql string) ([]MigrationSection, error) {
	lines := strings.Split(sql, "\n")

	var sections []MigrationSection
	var current *builder
	var body strings.Builder

	flush := func() error {
		if current == nil {
			return nil
		}
		sec, err := current.build(body.String())
		if err != nil {
			return err
		}
		sections = append(sections, sec)
		body.Reset()
		return nil
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, sectionDirective):
			if err := flush(); err != nil {
				return nil, err
			}
			current = newBuilder(i + 1)
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, sectionDirective))
			if rest != "" {
				if err := current.applyAttrLine(rest); err != nil {
					return nil, err
				}
			}
		case strings.HasPrefix(trimmed, attrPrefix):
			if current == nil {
				continue
			}
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, attrPrefix))
			if err := current.applyAttrLine(rest); err != nil {
				return nil, err
			}
		default:
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(sections) == 0 {
		return []MigrationSection{{
			Name:          "default",
			Mode:          ModeTransactional,
			Timeout:       DefaultTimeout,
			RetryAttempts: 1,
			SQL:           strings.TrimSpace(sql),
		}}, nil
	}
	return sections, nil
}

type builder struct {
	startLine     int
	name          string
	haveName      bool
	description   string
	mode          *Mode
	timeout       *time.Duration
	retryAttempts *uint32
	retryDelay    *time.Duration
	retryBackoff  *Backoff
	onLockTimeout *LockTimeoutAction
	batchSize     *int
	batchDelay    *time.Duration
}

func newBuilder(startLine int) *builder {
	return &builder{startLine: startLine}
}

func (b *builder) applyAttrLine(line string) error {
	pairs, err := parseKeyValuePairs(line)
	if err != nil {
		return ParseError{Line: b.startLine, Msg: err.Error()}
	}
	for _, kv := range pairs {
		if err := b.applyAttr(kv.key, kv.value); err != nil {
			return ParseError{Line: b.startLine, Msg: err.Error()}
		}
	}
	return nil
}

func (b *builder) applyAttr(key, value string) error {
	switch key {
	case "name":
		b.name, b.haveName = value, true
	case "description":
		b.description = value
	case "mode":
		m, err := parseMode(value)
		if err != nil {
			return err
		}
		b.mode = &m
	case "timeout":
		d, err := ParseDuration(value)
		if err != nil {
			return err
		}
		b.timeout = &d
	case "retry_attempts":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		v := uint32(n)
		b.retryAttempts = &v
	case "retry_delay":
		d, err := ParseDuration(value)
		if err != nil {
			return err
		}
		b.retryDelay = &d
	case "retry_backoff":
		v, err := parseBackoff(value)
		if err != nil {
			return err
		}
		b.retryBackoff = &v
	case "on_lock_timeout":
		v, err := parseLockTimeoutAction(value)
		if err != nil {
			return err
		}
		b.onLockTimeout = &v
	case "batch_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		b.batchSize = &n
	case "batch_delay":
		d, err := ParseDuration(value)
		if err != nil {
			return err
		}
		b.batchDelay = &d
	default:
		return unknownAttrError(key)
	}
	return nil
}

func (b *builder) build(sql string) (MigrationSection, error) {
	if !b.haveName {
		return MigrationSection{}, ParseError{Line: b.startLine, Msg: "section missing required 'name' attribute"}
	}

	sec := MigrationSection{
		Name:        b.name,
		Description: b.description,
		Mode:        ModeTransactional,
		Timeout:     DefaultTimeout,
		StartLine:   b.startLine,
		SQL:         strings.TrimSpace(sql),
	}
	if b.mode != nil {
		sec.Mode = *b.mode
	}
	if b.timeout != nil {
		sec.Timeout = *b.timeout
	}

	sec.RetryAttempts = 1
	if b.retryAttempts != nil {
		sec.RetryAttempts = *b.retryAttempts
	}
	if b.retryDelay != nil {
		sec.RetryDelay = *b.retryDelay
	}
	if b.retryBackoff != nil {
		sec.RetryBackoff = *b.retryBackoff
	}
	if b.onLockTimeout != nil {
		sec.OnLockTimeout = *b.onLockTimeout
	}

	if b.batchSize != nil {
		sec.Batch = &BatchConfig{Size: *b.batchSize}
		if b.batchDelay != nil {
			sec.Batch.Delay = *b.batchDelay
		}
	}

	return sec, nil
}

type keyValue struct{ key, value string }

// parseKeyValuePairs parses `key="value"` pairs separated by whitespace,
// supporting spaces inside the quoted value (e.g. `description="two words"`).
func parseKeyValuePairs(input string) ([]keyValue, error) {
	var pairs []keyValue
	i := 0
	n := len(input)
	for i < n {
		for i < n && input[i] == ' ' {
			i++
		}
		if i >= n {
			break
		}

		keyStart := i
		for i < n && input[i] != '=' {
			if input[i] == ' ' {
				return nil, keyMissingEqualsError(input[keyStart:i])
			}
			i++
		}
		if i >= n {
			return nil, keyMissingEqualsError(input[keyStart:i])
		}
		key := input[keyStart:i]
		i++ // consume '='
		if key == "" {
			break
		}

		if i >= n || input[i] != '"' {
			return nil, missingQuoteError(key)
		}
		i++ // consume opening quote

		valStart := i
		for i < n && input[i] != '"' {
			i++
		}
		if i >= n {
			return nil, unclosedQuoteError(key)
		}
		value := input[valStart:i]
		i++ // consume closing quote

		pairs = append(pairs, keyValue{key: key, value: value})
	}
	return pairs, nil
}

func parseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "transactional":
		return ModeTransactional, nil
	case "non-transactional":
		return ModeNonTransactional, nil
	case "autocommit":
		return ModeAutocommit, nil
	default:
		return 0, unknownModeError(s)
	}
}

func parseBackoff(s string) (Backoff, error) {
	switch strings.ToLower(s) {
	case "none":
		return BackoffNone, nil
	case "exponential":
		return BackoffExponential, nil
	default:
		return 0, unknownBackoffError(s)
	}
}

func parseLockTimeoutAction(s string) (LockTimeoutAction, error) {
	switch strings.ToLower(s) {
	case "fail":
		return LockTimeoutFail, nil
	case "retry":
		return LockTimeoutRetry, nil
	default:
		return 0, unknownLockActionError(s)
	}
}

func unknownAttrError(key string) error {
	return fmt.Errorf("unknown section attribute %q", key)
}

func keyMissingEqualsError(key string) error {
	return fmt.Errorf("attribute %q missing '='", key)
}

func missingQuoteError(key string) error {
	return fmt.Errorf("attribute %q: expected opening quote after '='", key)
}

func unclosedQuoteError(key string) error {
	return fmt.Errorf("attribute %q: unclosed quote", key)
}

func unknownModeError(s string) error {
	return fmt.Errorf("unknown mode %q: expected transactional, non-transactional, or autocommit", s)
}

func unknownBackoffError(s string) error {
	return fmt.Errorf("unknown retry_backoff %q: expected none or exponential", s)
}

func unknownLockActionError(s string) error {
	return fmt.Errorf("unknown on_lock_timeout %q: expected fail or retry", s)
}
