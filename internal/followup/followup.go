// Package followup decides how urgently an interaction needs chasing.
package followup

import (
	"math"
	"strings"
	"time"

	"jobtrail/internal/taxonomy"
)

type Severity string

const (
	Normal Severity = "normal"
	Orange Severity = "orange"
	Red    Severity = "red"
)

// Days elapsed since a Waiting interaction was sent before it escalates.
const (
	OrangeAfterDays = 14
	RedAfterDays    = 28
)

// DateLayout is the calendar date format used for every date field.
const DateLayout = "2006-01-02"

// Input carries the fields the classifier reads. Dates are YYYY-MM-DD or empty.
type Input struct {
	Status           string
	DateSent         string
	NextFollowUpDate string
}

// Today maps the caller's wall clock to a UTC midnight on the same calendar day.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD date as a UTC midnight. Empty or malformed
// values report false.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsOverdue reports whether a scheduled follow-up date is today or earlier.
func IsOverdue(nextFollowUpDate string, now time.Time) bool {
	next, ok := ParseDate(nextFollowUpDate)
	if !ok {
		return false
	}
	return !next.After(Today(now))
}

// DaysSince returns whole days between dateSent and today. Future dates give
// negative values.
func DaysSince(dateSent string, now time.Time) (int, bool) {
	sent, ok := ParseDate(dateSent)
	if !ok {
		return 0, false
	}
	return int(math.Floor(Today(now).Sub(sent).Hours() / 24)), true
}

// Classify returns the escalation level of one interaction. An overdue
// follow-up date always wins; otherwise only Waiting interactions age.
func Classify(in Input, now time.Time) Severity {
	if IsOverdue(in.NextFollowUpDate, now) {
		return Red
	}
	if in.Status != taxonomy.StatusWaiting {
		return Normal
	}
	days, ok := DaysSince(in.DateSent, now)
	if !ok {
		return Normal
	}
	switch {
	case days >= RedAfterDays:
		return Red
	case days >= OrangeAfterDays:
		return Orange
	default:
		return Normal
	}
}
