package services

import (
	"testing"
	"time"
)

func TestDayRangeUsesLocalMidnight(t *testing.T) {
	location := mustLoadLocation(t, "Asia/Tokyo")

	// 19:35 UTC on Feb 1 is already Feb 2 in Tokyo.
	raw := time.Date(2026, 2, 1, 19, 35, 10, 0, time.UTC)
	start, end := DayRange(raw, location)

	if start.Day() != 2 || start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("expected Feb 2 midnight start, got %s", start.Format(time.RFC3339))
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("expected next day end, got %s", end.Format(time.RFC3339))
	}
}

func TestDayRangeSpansShortDSTDay(t *testing.T) {
	location := mustLoadLocation(t, "Europe/Berlin")

	start, end := DayRange(time.Date(2026, 3, 29, 12, 0, 0, 0, location), location)
	if got := end.Sub(start); got != 23*time.Hour {
		t.Fatalf("expected 23h day on DST change, got %s", got)
	}
}

func TestMonthRangeCoversCalendarMonth(t *testing.T) {
	start, end := MonthRange(time.Date(2026, 2, 17, 8, 0, 0, 0, time.UTC), time.UTC)
	if want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("expected %s, got %s", want, start)
	}
	if want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Fatalf("expected %s, got %s", want, end)
	}
}

func TestDateAtLocationDefaultsToLocal(t *testing.T) {
	value := time.Date(2026, 2, 17, 8, 0, 0, 0, time.UTC)
	if got := DateAtLocation(value, nil); got.Location() != time.Local {
		t.Fatalf("expected local location, got %s", got.Location())
	}
}
