package period

import (
	"testing"
	"time"
)

var ref = time.Date(2026, time.January, 15, 14, 30, 0, 0, time.UTC)

func TestRangeToday(t *testing.T) {
	w := Range(Today, ref)
	wantFrom := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !w.From.Equal(wantFrom) {
		t.Errorf("From = %v, want %v", w.From, wantFrom)
	}
	if !w.To.Equal(ref) {
		t.Errorf("To = %v, want %v", w.To, ref)
	}
}

func TestRangeYesterday(t *testing.T) {
	w := Range(Yesterday, ref)
	wantFrom := time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)
	if !w.From.Equal(wantFrom) {
		t.Errorf("From = %v, want %v", w.From, wantFrom)
	}
	dayStart := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !w.To.Before(dayStart) {
		t.Errorf("To = %v, should precede start of today", w.To)
	}
	if !w.Contains(time.Date(2026, time.January, 14, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("end of yesterday should be inside the window")
	}
	if w.Contains(dayStart) {
		t.Errorf("start of today should be outside the window")
	}
}

func TestRangeWeekAndMonth(t *testing.T) {
	week := Range(Week, ref)
	if want := time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC); !week.From.Equal(want) {
		t.Errorf("week From = %v, want %v", week.From, want)
	}
	month := Range(Month, ref)
	if want := time.Date(2025, time.December, 16, 0, 0, 0, 0, time.UTC); !month.From.Equal(want) {
		t.Errorf("month From = %v, want %v", month.From, want)
	}
}

func TestRangeAllUnbounded(t *testing.T) {
	w := Range(All, ref)
	if w.Bounded() {
		t.Errorf("all-time window should be unbounded: %+v", w)
	}
	if !w.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unbounded window must contain any time")
	}
}

func TestTitle(t *testing.T) {
	if Title(Today) != "Bugungi" || Title(Month) != "Oylik" || Title(All) != "Umumiy" {
		t.Errorf("unexpected titles: %q %q %q", Title(Today), Title(Month), Title(All))
	}
}
