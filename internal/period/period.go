// Package period computes the statistics windows offered by the bot menus.
package period

import "time"

// Period names one of the selectable statistics windows.
type Period string

const (
	Today     Period = "today"
	Yesterday Period = "yesterday"
	Week      Period = "week"
	Month     Period = "month"
	All       Period = "all"
)

// Window is a closed [From, To] time range. A zero Window means no bounds.
type Window struct {
	From time.Time
	To   time.Time
}

// Bounded reports whether the window constrains the query.
func (w Window) Bounded() bool {
	return !w.From.IsZero() || !w.To.IsZero()
}

// Contains reports whether t falls inside the window (inclusive).
func (w Window) Contains(t time.Time) bool {
	if !w.Bounded() {
		return true
	}
	return !t.Before(w.From) && !t.After(w.To)
}

// Range resolves p into a concrete window relative to now, in now's location.
// Today/week/month end at now; yesterday covers the full previous calendar
// day; week and month reach back 7 and 30 days from the start of today.
func Range(p Period, now time.Time) Window {
	y, m, d := now.Date()
	todayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch p {
	case Today:
		return Window{From: todayStart, To: now}
	case Yesterday:
		return Window{
			From: todayStart.AddDate(0, 0, -1),
			To:   todayStart.Add(-time.Nanosecond),
		}
	case Week:
		return Window{From: todayStart.AddDate(0, 0, -7), To: now}
	case Month:
		return Window{From: todayStart.AddDate(0, 0, -30), To: now}
	}
	return Window{}
}

// Title returns the Uzbek display name of the period.
func Title(p Period) string {
	switch p {
	case Today:
		return "Bugungi"
	case Yesterday:
		return "Kechagi"
	case Week:
		return "Haftalik"
	case Month:
		return "Oylik"
	}
	return "Umumiy"
}
