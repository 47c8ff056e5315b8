package services

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeFrame(t *testing.T) {
	tests := []struct {
		raw  string
		want TimeFrame
		days int
	}{
		{raw: "", want: TimeFrameWeek, days: 7},
		{raw: "week", want: TimeFrameWeek, days: 7},
		{raw: " Month ", want: TimeFrameMonth, days: 30},
		{raw: "three_months", want: TimeFrameThreeMonths, days: 90},
		{raw: "3m", want: TimeFrameThreeMonths, days: 90},
		{raw: "year", want: TimeFrameYear, days: 365},
	}

	for _, tt := range tests {
		got, err := ParseTimeFrame(tt.raw)
		if err != nil {
			t.Fatalf("ParseTimeFrame(%q) unexpected error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseTimeFrame(%q) = %q, want %q", tt.raw, got, tt.want)
		}
		if got.Days() != tt.days {
			t.Fatalf("%q.Days() = %d, want %d", got, got.Days(), tt.days)
		}
	}

	if _, err := ParseTimeFrame("decade"); !errors.Is(err, ErrInvalidTimeFrame) {
		t.Fatalf("expected ErrInvalidTimeFrame, got %v", err)
	}
}

func TestTimeFrameWindowEndsAtNow(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	from, to := TimeFrameMonth.Window(now)
	if !to.Equal(now) {
		t.Fatalf("expected window to end at now, got %s", to)
	}
	if want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC); !from.Equal(want) {
		t.Fatalf("expected window start %s, got %s", want, from)
	}
}
