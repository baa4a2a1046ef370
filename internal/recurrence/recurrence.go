// Package recurrence implements the date math for cyclic transactions:
// advancing a date by a frequency and expanding a start date into a
// bounded, deterministic sequence.
package recurrence

import (
	"fmt"
	"time"
)

type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
	Yearly
)

var freqNames = map[Frequency]string{
	Daily:   "DAILY",
	Weekly:  "WEEKLY",
	Monthly: "MONTHLY",
	Yearly:  "YEARLY",
}

var freqFromName = map[string]Frequency{
	"DAILY":   Daily,
	"WEEKLY":  Weekly,
	"MONTHLY": Monthly,
	"YEARLY":  Yearly,
}

func (f Frequency) String() string {
	return freqNames[f]
}

// ParseFrequency parses "DAILY", "WEEKLY", "MONTHLY" or "YEARLY".
func ParseFrequency(s string) (Frequency, error) {
	f, ok := freqFromName[s]
	if !ok {
		return 0, fmt.Errorf("unknown frequency: %q", s)
	}
	return f, nil
}

// Next advances t by one frequency step. Monthly steps land on the same
// day of the next month, clamped to the month's last day when the next
// month is shorter. Yearly steps clamp a Feb 29 start to Feb 28 in
// non-leap years. Each step advances from the previous occurrence's
// actual date, so a clamped date stays clamped: Jan 31 -> Feb 29 ->
// Mar 29.
func Next(t time.Time, f Frequency) time.Time {
	switch f {
	case Daily:
		return t.AddDate(0, 0, 1)
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		year, month, day := t.Date()
		year, month = nextMonth(year, month)
		if last := daysInMonth(year, month); day > last {
			day = last
		}
		return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	case Yearly:
		year, month, day := t.Date()
		year++
		if last := daysInMonth(year, month); day > last {
			day = last
		}
		return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}
	return t
}

// Dates expands start into n occurrence dates: the first at start, each
// subsequent one advanced from its predecessor by f. Deterministic for
// fixed inputs.
func Dates(start time.Time, f Frequency, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	current := start
	for i := 0; i < n; i++ {
		if i > 0 {
			current = Next(current, f)
		}
		dates = append(dates, current)
	}
	return dates
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
