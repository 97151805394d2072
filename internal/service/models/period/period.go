package period

import "time"

// Period is a symbolic recency bucket used to window orders by creation
// time. Every tag maps to a rolling window measured back from "now";
// calendar-boundary cutoffs are deliberately not used so that the same
// tag always means the same thing on every page.
//
// Comparisons use wall-clock instants as provided by the upstream, with
// no timezone normalization.
type Period string

const (
	Last24      Period = "last24"
	Last3Days   Period = "3days"
	Week        Period = "week"
	ThisWeek    Period = "thisWeek"
	Month       Period = "month"
	ThisMonth   Period = "thisMonth"
	ThreeMonths Period = "3months"
	Last3Months Period = "last3Months"
	SixMonths   Period = "6months"
	Last6Months Period = "last6Months"
	Year        Period = "year"
	LastYear    Period = "lastYear"
	AllTime     Period = "allTime"
)

const day = 24 * time.Hour

var windows = map[Period]time.Duration{
	Last24:      day,
	Last3Days:   3 * day,
	Week:        7 * day,
	ThisWeek:    7 * day,
	Month:       30 * day,
	ThisMonth:   30 * day,
	ThreeMonths: 90 * day,
	Last3Months: 90 * day,
	SixMonths:   180 * day,
	Last6Months: 180 * day,
	Year:        365 * day,
	LastYear:    365 * day,
}

// Parse maps a tag to a Period. An unrecognized tag means "include
// everything" rather than an error.
func Parse(s string) Period {
	if _, ok := windows[Period(s)]; ok {
		return Period(s)
	}

	return AllTime
}

func (p Period) String() string {
	return string(p)
}

// Contains reports whether createdAt falls inside the window ending at
// now. AllTime and unknown tags contain every instant, future ones
// included.
func (p Period) Contains(now, createdAt time.Time) bool {
	window, ok := windows[p]
	if !ok {
		return true
	}

	return now.Sub(createdAt) <= window
}
