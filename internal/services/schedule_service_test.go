package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/chemocompanion/internal/models"
)

func newTestScheduleService(store *memoryStore) *ScheduleService {
	service := NewScheduleService(store, memorySessions{store: store})
	service.newID = sequentialIDs("session")
	return service
}

func TestCreateSessionValidatesInput(t *testing.T) {
	when := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input SessionInput
		want  error
	}{
		{name: "missing date", input: SessionInput{Location: "Clinic"}, want: ErrInvalidSessionDate},
		{name: "blank location", input: SessionInput{Date: when, Location: "   "}, want: ErrInvalidLocation},
		{name: "long location", input: SessionInput{Date: when, Location: strings.Repeat("a", maxLocationLength+1)}, want: ErrInvalidLocation},
		{name: "long notes", input: SessionInput{Date: when, Location: "Clinic", Notes: strings.Repeat("n", maxNotesLength+1)}, want: ErrInvalidNotes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			service := newTestScheduleService(store)

			_, err := service.CreateSession(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, models.ErrValidation) {
				t.Fatalf("expected validation class, got %v", err)
			}
			if store.writes != 0 {
				t.Fatalf("expected no writes, got %d", store.writes)
			}
		})
	}
}

func TestCreateSessionAssignsIDAndStoresUTC(t *testing.T) {
	newYork := mustLoadLocation(t, "America/New_York")
	store := newMemoryStore()
	service := newTestScheduleService(store)

	local := time.Date(2026, 3, 10, 9, 30, 0, 0, newYork)
	session, err := service.CreateSession(context.Background(), SessionInput{
		Date:     local,
		Location: "  Infusion Center  ",
		Notes:    " bring snacks ",
	})
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}
	if session.ID != "session-1" {
		t.Fatalf("expected session-1, got %q", session.ID)
	}
	if session.Date.Location() != time.UTC || !session.Date.Equal(local) {
		t.Fatalf("expected UTC instant equal to %s, got %s", local, session.Date)
	}
	if session.Location != "Infusion Center" || session.Notes != "bring snacks" {
		t.Fatalf("expected trimmed text, got %q / %q", session.Location, session.Notes)
	}

	stored, err := service.GetSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetSession() unexpected error: %v", err)
	}
	if stored.Location != "Infusion Center" {
		t.Fatalf("expected stored location, got %q", stored.Location)
	}
}

func TestCreateSessionPropagatesStorageFailure(t *testing.T) {
	store := newMemoryStore()
	store.putErr = errors.Join(models.ErrStorage, errors.New("disk full"))
	service := newTestScheduleService(store)

	_, err := service.CreateSession(context.Background(), SessionInput{
		Date:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Location: "Clinic",
	})
	if !errors.Is(err, models.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestUpdateSessionRewritesFields(t *testing.T) {
	store := newMemoryStore()
	service := newTestScheduleService(store)
	ctx := context.Background()

	session, err := service.CreateSession(ctx, SessionInput{
		Date:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Location: "Clinic",
	})
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	moved := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	updated, err := service.UpdateSession(ctx, session.ID, SessionInput{Date: moved, Location: "Hospital", Notes: "room 4"})
	if err != nil {
		t.Fatalf("UpdateSession() unexpected error: %v", err)
	}
	if updated.ID != session.ID || !updated.Date.Equal(moved) || updated.Location != "Hospital" || updated.Notes != "room 4" {
		t.Fatalf("unexpected updated session: %+v", updated)
	}
}

func TestSessionCommandsReportMissingSession(t *testing.T) {
	service := newTestScheduleService(newMemoryStore())
	ctx := context.Background()

	_, err := service.UpdateSession(ctx, "missing", SessionInput{
		Date:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Location: "Clinic",
	})
	if !errors.Is(err, ErrSessionNotFound) || !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected session not found from update, got %v", err)
	}

	if err := service.DeleteSession(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session not found from delete, got %v", err)
	}

	if _, err := service.GetSession(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session not found from get, got %v", err)
	}
}

func TestSessionsUpcomingReturnsEarliestWithinLimit(t *testing.T) {
	store := newMemoryStore()
	service := newTestScheduleService(store)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for _, offset := range []int{10, 3, 7} {
		if _, err := service.CreateSession(ctx, SessionInput{Date: base.AddDate(0, 0, offset), Location: "Clinic"}); err != nil {
			t.Fatalf("CreateSession() unexpected error: %v", err)
		}
	}

	sessions, err := service.SessionsUpcoming(ctx, base, 2)
	if err != nil {
		t.Fatalf("SessionsUpcoming() unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if !sessions[0].Date.Equal(base.AddDate(0, 0, 3)) || !sessions[1].Date.Equal(base.AddDate(0, 0, 7)) {
		t.Fatalf("expected days +3 and +7, got %s and %s", sessions[0].Date, sessions[1].Date)
	}
}

func TestUpcomingFromTodayIncludesEarlierToday(t *testing.T) {
	berlin := mustLoadLocation(t, "Europe/Berlin")
	store := newMemoryStore()
	service := newTestScheduleService(store)
	ctx := context.Background()

	now := time.Date(2026, 5, 4, 15, 0, 0, 0, berlin)
	if _, err := service.CreateSession(ctx, SessionInput{Date: now.Add(-5 * time.Hour), Location: "Clinic"}); err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}
	if _, err := service.CreateSession(ctx, SessionInput{Date: now.AddDate(0, 0, -1), Location: "Clinic"}); err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}

	sessions, err := service.UpcomingFromToday(ctx, now, berlin, 0)
	if err != nil {
		t.Fatalf("UpcomingFromToday() unexpected error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected only today's session, got %d", len(sessions))
	}

	next, found, err := service.NextSession(ctx, now)
	if err != nil {
		t.Fatalf("NextSession() unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected no session after now, got %+v", next)
	}
}

func TestSessionsInMonthUsesLocalMonthBounds(t *testing.T) {
	tokyo := mustLoadLocation(t, "Asia/Tokyo")
	store := newMemoryStore()
	service := newTestScheduleService(store)
	ctx := context.Background()

	// 2026-05-31 20:00 UTC is already June 1st in Tokyo.
	inJune := time.Date(2026, 5, 31, 20, 0, 0, 0, time.UTC)
	inMay := time.Date(2026, 5, 31, 10, 0, 0, 0, time.UTC)
	for _, date := range []time.Time{inJune, inMay} {
		if _, err := service.CreateSession(ctx, SessionInput{Date: date, Location: "Clinic"}); err != nil {
			t.Fatalf("CreateSession() unexpected error: %v", err)
		}
	}

	june, err := service.SessionsInMonth(ctx, time.Date(2026, 6, 15, 0, 0, 0, 0, tokyo), tokyo)
	if err != nil {
		t.Fatalf("SessionsInMonth() unexpected error: %v", err)
	}
	if len(june) != 1 || !june[0].Date.Equal(inJune) {
		t.Fatalf("expected only the June session, got %+v", june)
	}
}

func TestScheduleReadsClassifyStorageFailures(t *testing.T) {
	store := newMemoryStore()
	store.readErr = errors.New("database is locked")
	service := newTestScheduleService(store)

	if _, err := service.ListSessions(context.Background()); !errors.Is(err, models.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, _, err := service.NextSession(context.Background(), time.Now()); !errors.Is(err, models.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
