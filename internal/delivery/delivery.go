// Package delivery estimates when an order arrives. Only Monday to Friday
// count as working days.
package delivery

import (
	"errors"
	"strings"
	"time"
)

// DisplayLayout is how delivery dates are shown to customers ("12 Mar 2025").
const DisplayLayout = "2 Jan 2006"

const inputLayout = "2006-01-02"

var ErrInvalidLeadTime = errors.New("lead time must be at least one working day")

func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// AddWorkingDays walks forward from start one calendar day at a time and
// returns the day on which the n-th working day is reached. The time of day
// and location of start are preserved.
func AddWorkingDays(start time.Time, n int) (time.Time, error) {
	if n < 1 {
		return time.Time{}, ErrInvalidLeadTime
	}

	d := start
	for added := 0; added < n; {
		d = d.AddDate(0, 0, 1)
		if IsWorkingDay(d) {
			added++
		}
	}
	return d, nil
}

func Format(t time.Time) string {
	return t.Format(DisplayLayout)
}

// Estimate is AddWorkingDays followed by Format.
func Estimate(start time.Time, n int) (string, error) {
	d, err := AddWorkingDays(start, n)
	if err != nil {
		return "", err
	}
	return Format(d), nil
}

// NormalizeInput accepts an admin supplied delivery date. ISO dates
// (2025-03-12) are rewritten to the display form; anything else is kept as
// typed once trimmed.
func NormalizeInput(s string) string {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(inputLayout, s); err == nil {
		return Format(t)
	}
	return s
}
