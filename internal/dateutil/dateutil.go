// Package dateutil formats reader timestamps for rendered notes.
//
// Patterns use friendly tokens (YYYY, MM, DD, ...) rather than Go's
// reference time. Two named modes exist besides literal patterns:
// "locale" for a human-readable date and "daily-note" for the
// YYYY-MM-DD form used by daily-note links.
package dateutil

import (
	"strings"
	"time"
)

// Named pattern modes.
const (
	ModeLocale    = "locale"
	ModeDailyNote = "daily-note"
)

// DefaultPattern is used when no pattern is given.
const DefaultPattern = "YYYY-MM-DD"

// tokens maps friendly format tokens to Go time layout components,
// ordered by length descending for greedy matching.
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
	{"h", "3"},
	{"m", "4"},
	{"s", "5"},
	{"A", "PM"},
	{"a", "pm"},
}

// inputLayouts are the timestamp shapes readers are known to emit.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse converts value to a time.Time, trying each known reader layout.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Layout converts a friendly pattern to a Go time layout. Bracketed
// text ([at]) is copied literally; unknown characters pass through.
func Layout(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 8)
	i := 0
	for i < len(pattern) {
		if pattern[i] == '[' {
			end := strings.Index(pattern[i+1:], "]")
			if end >= 0 {
				b.WriteString(pattern[i+1 : i+1+end])
				i += end + 2
				continue
			}
		}
		matched := false
		for _, t := range tokens {
			if strings.HasPrefix(pattern[i:], t.token) {
				b.WriteString(t.layout)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

// Format renders a reader timestamp with the given pattern. Values that
// do not parse as a timestamp are returned unchanged, and an empty
// pattern falls back to DefaultPattern.
func Format(value, pattern string) string {
	t, ok := Parse(value)
	if !ok {
		return value
	}
	switch pattern {
	case "":
		pattern = DefaultPattern
	case ModeLocale:
		return t.Format("January 2, 2006 3:04 PM")
	case ModeDailyNote:
		return t.Format("2006-01-02")
	}
	return t.Format(Layout(pattern))
}
