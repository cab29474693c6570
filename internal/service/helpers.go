package service

import (
	"strings"
	"time"
)

// Actor identifies who performed an administrative action.
type Actor struct {
	ID   uint
	Role string
}

// clock returns the current instant at the precision every supported store
// can persist, so timestamps survive a round trip unchanged.
func clock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextUpdatedAt returns a modification timestamp strictly after previous.
func nextUpdatedAt(now, previous time.Time) time.Time {
	if now.After(previous) {
		return now
	}
	return previous.Add(time.Microsecond)
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func normalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == "" {
		return "anonymous"
	}
	return r
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampPageSize(size int) int {
	switch {
	case size <= 0:
		return 25
	case size > 200:
		return 200
	default:
		return size
	}
}
