// SPDX-License-Identifier: Apache-2.0

package section

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "milliseconds", input: "500ms", expected: 500 * time.Millisecond},
		{name: "seconds", input: "30s", expected: 30 * time.Second},
		{name: "minutes", input: "10m", expected: 10 * time.Minute},
		{name: "hours", input: "2h", expected: 2 * time.Hour},
		{name: "composed", input: "1m30s", expected: time.Minute + 30*time.Second},
		{name: "composed with interior whitespace", input: "1m 30s", expected: time.Minute + 30*time.Second},
		{name: "complex composition", input: "2h15m30s", expected: 2*time.Hour + 15*time.Minute + 30*time.Second},
		{name: "bare number rejected", input: "30", wantErr: true},
		{name: "unknown unit rejected", input: "30d", wantErr: true},
		{name: "empty string rejected", input: "", wantErr: true},
		{name: "trailing number with no unit rejected", input: "1m30", wantErr: true},
		{name: "unit with no preceding number rejected", input: "m30s", wantErr: true},
		{name: "invalid character rejected", input: "1m#", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRetryDelayForAttempt(t *testing.T) {
	t.Run("no backoff returns the base delay for every attempt", func(t *testing.T) {
		s := MigrationSection{RetryDelay: 2 * time.Second, RetryBackoff: BackoffNone}
		assert.Equal(t, 2*time.Second, s.RetryDelayForAttempt(1))
		assert.Equal(t, 2*time.Second, s.RetryDelayForAttempt(5))
	})

	t.Run("exponential backoff doubles per attempt", func(t *testing.T) {
		s := MigrationSection{RetryDelay: time.Second, RetryBackoff: BackoffExponential}
		assert.Equal(t, time.Second, s.RetryDelayForAttempt(1))
		assert.Equal(t, 2*time.Second, s.RetryDelayForAttempt(2))
		assert.Equal(t, 4*time.Second, s.RetryDelayForAttempt(3))
	})

	t.Run("exponential backoff caps at base*32", func(t *testing.T) {
		s := MigrationSection{RetryDelay: time.Second, RetryBackoff: BackoffExponential}
		assert.Equal(t, 32*time.Second, s.RetryDelayForAttempt(6))
		assert.Equal(t, 32*time.Second, s.RetryDelayForAttempt(20))
	})
}
