package util

import (
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, a plain "2006-01-02T15:04:05" layout,
// and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// ParseWindow converts a lookback window label to a duration.
func ParseWindow(tf string) (time.Duration, bool) {
	switch tf {
	case "1D":
		return 24 * time.Hour, true
	case "7D":
		return 7 * 24 * time.Hour, true
	case "30D":
		return 30 * 24 * time.Hour, true
	case "90D":
		return 90 * 24 * time.Hour, true
	}
	return 0, false
}

// WindowDefault converts a window label or falls back to 7 days.
func WindowDefault(tf string) time.Duration {
	if d, ok := ParseWindow(tf); ok {
		return d
	}
	return 7 * 24 * time.Hour
}
