// SPDX-License-Identifier: Apache-2.0

package section

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration accepts composed unit strings like "1m30s", "500ms",
// "2h15m30s". Unlike time.ParseDuration it allows interior whitespace
// ("30 s", "1m 30s"); it accepts only whole numbers with the units ms,
// s, m and h (no fractions, signs, "us" or "ns"), and rejects a bare
// number and a zero total.
func ParseDuration(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	var total time.Duration
	var num strings.Builder

	i := 0
	for i < len(trimmed) {
		ch := trimmed[i]
		switch {
		case ch >= '0' && ch <= '9':
			num.WriteByte(ch)
			i++
		case ch == ' ' || ch == '\t':
			i++
		case isAlpha(ch):
			unitStart := i
			for i < len(trimmed) && isAlpha(trimmed[i]) {
				i++
			}
			unit := trimmed[unitStart:i]
			if num.Len() == 0 {
				return 0, fmt.Errorf("duration %q: unit %q with no preceding number", s, unit)
			}
			n, err := strconv.ParseUint(num.String(), 10, 64)
			if err != nil {
				return 0, fmt.Errorf("duration %q: invalid number %q: %w", s, num.String(), err)
			}
			unitDuration, err := unitDuration(unit, n)
			if err != nil {
				return 0, fmt.Errorf("duration %q: %w", s, err)
			}
			total += unitDuration
			num.Reset()
		default:
			return 0, fmt.Errorf("duration %q: invalid character %q", s, ch)
		}
	}

	if num.Len() > 0 {
		return 0, fmt.Errorf("duration %q: trailing number %q has no unit", s, num.String())
	}
	if total == 0 {
		return 0, fmt.Errorf("duration %q: empty or zero duration", s)
	}
	return total, nil
}

func unitDuration(unit string, n uint64) (time.Duration, error) {
	switch unit {
	case "ms":
		return time.Duration(n) * time.Millisecond, nil
	case "s":
		return time.Duration(n) * time.Second, nil
	case "m":
		return time.Duration(n) * time.Minute, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit %q", unit)
	}
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
