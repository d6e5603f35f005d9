package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- ID Generators ---

func GetUUID() string {
	return uuid.NewString()
}

// NewID builds a prefixed record id like "book_3f2a9c41d0e7".
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// --- Names ---

// Initials derives the anonymized two-letter display code shown on the
// public slot view.
func Initials(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	switch {
	case len(parts) >= 2:
		return strings.ToUpper(string([]rune(parts[0])[0]) + string([]rune(parts[len(parts)-1])[0]))
	case len(parts) == 1 && len([]rune(parts[0])) >= 2:
		return strings.ToUpper(string([]rune(parts[0])[:2]))
	}
	return "XX"
}

// --- Dates ---

const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsPastDate reports whether date (YYYY-MM-DD) falls before today in UTC.
// Malformed dates count as past so they can never be mutated.
func IsPastDate(date string, now time.Time) bool {
	d, err := ParseDate(date)
	if err != nil {
		return true
	}
	today := now.UTC().Truncate(24 * time.Hour)
	return d.Before(today)
}
