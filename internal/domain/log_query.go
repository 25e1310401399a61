package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LogQuery narrows a user's log. Nil bounds and a non-positive Limit are ignored.
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// ParseLogQuery builds a LogQuery from raw query-string values.
// Malformed from/to are rejected. limit is read from its leading digits, so "5abc"
// and "2.5" mean 5 and 2; anything without a positive leading integer means no limit.
func ParseLogQuery(from, to, limit string) (LogQuery, error) {
	var q LogQuery
	if from = strings.TrimSpace(from); from != "" {
		t, err := ParseDate(from)
		if err != nil {
			return LogQuery{}, fmt.Errorf("from: %w: %q", err, from)
		}
		q.From = &t
	}
	if to = strings.TrimSpace(to); to != "" {
		t, err := ParseDate(to)
		if err != nil {
			return LogQuery{}, fmt.Errorf("to: %w: %q", err, to)
		}
		q.To = &t
	}
	if n := leadingInt(limit); n > 0 {
		q.Limit = n
	}
	return q, nil
}

// leadingInt parses the optionally signed run of digits at the start of s.
// It returns 0 when there are none or the value overflows an int.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// HasDateBounds reports whether either date bound is set.
func (q LogQuery) HasDateBounds() bool {
	return q.From != nil || q.To != nil
}

// Apply returns the entries of log that fall inside the date bounds, in their
// stored order, truncated to the first Limit. log itself is never modified.
// Entries whose date cannot be parsed are dropped whenever a bound is set.
func (q LogQuery) Apply(log []LogEntry) []LogEntry {
	out := make([]LogEntry, 0, len(log))
	for _, entry := range log {
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
		if q.HasDateBounds() && !q.contains(entry) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (q LogQuery) contains(entry LogEntry) bool {
	day, err := ParseDate(entry.Date)
	if err != nil {
		return false
	}
	if q.From != nil && day.Before(*q.From) {
		return false
	}
	if q.To != nil && day.After(*q.To) {
		return false
	}
	return true
}
