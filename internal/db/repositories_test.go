package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/chemocompanion/internal/models"
)

func TestSessionRepositoryListUpcomingOrdersAndLimits(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	for id, offset := range map[string]int{"past": -2, "third": 9, "first": 1, "second": 4} {
		require.NoError(t, store.Put(ctx, &models.Session{ID: id, Date: from.AddDate(0, 0, offset), Location: "Clinic"}))
	}

	sessions, err := NewSessionRepository(store.DB()).ListUpcoming(ctx, from, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "first", sessions[0].ID)
	assert.Equal(t, "second", sessions[1].ID)

	all, err := NewSessionRepository(store.DB()).ListUpcoming(ctx, from, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSessionRepositoryNormalizesLocationBeforeComparing(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, &models.Session{ID: "s-1", Date: time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC), Location: "Clinic"}))

	// 10:30 in New York is 14:30 UTC, before the session.
	next, found, err := NewSessionRepository(store.DB()).FindNextAfter(ctx, time.Date(2026, 5, 1, 10, 30, 0, 0, newYork))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "s-1", next.ID)

	_, found, err = NewSessionRepository(store.DB()).FindNextAfter(ctx, time.Date(2026, 5, 1, 11, 30, 0, 0, newYork))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSymptomLogRepositoryListInRangeIsHalfOpen(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	logs := []models.SymptomLog{
		{ID: "at-start", Date: start, SymptomType: "Nausea", Severity: 4},
		{ID: "midday", Date: start.Add(12 * time.Hour), SymptomType: "Fatigue", Severity: 6},
		{ID: "at-end", Date: end, SymptomType: "Nausea", Severity: 2},
	}
	for index := range logs {
		require.NoError(t, store.Put(ctx, &logs[index]))
	}

	repo := NewSymptomLogRepository(store.DB())
	inRange, err := repo.ListInRange(ctx, &start, &end, nil)
	require.NoError(t, err)
	require.Len(t, inRange, 2)
	assert.Equal(t, "at-start", inRange[0].ID)
	assert.Equal(t, "midday", inRange[1].ID)

	nausea := "Nausea"
	filtered, err := repo.ListInRange(ctx, &start, &end, &nausea)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "at-start", filtered[0].ID)

	open, err := repo.ListInRange(ctx, nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, open, 3)

	types, err := repo.ListSymptomTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fatigue", "Nausea"}, types)
}

func TestChecklistItemRepositoryOrdersByTitle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &models.Session{ID: "s-1", Date: time.Now(), Location: "Clinic"}))
	require.NoError(t, store.Put(ctx, &models.ChecklistItem{ID: "c-1", Title: "Water bottle", SessionID: stringPtr("s-1")}))
	require.NoError(t, store.Put(ctx, &models.ChecklistItem{ID: "c-2", Title: "Book", SessionID: stringPtr("s-1")}))
	require.NoError(t, store.Put(ctx, &models.ChecklistItem{ID: "c-3", Title: "Call insurer"}))

	repo := NewChecklistItemRepository(store.DB())
	forSession, err := repo.ListBySession(ctx, stringPtr("s-1"))
	require.NoError(t, err)
	require.Len(t, forSession, 2)
	assert.Equal(t, "Book", forSession[0].Title)
	assert.Equal(t, "Water bottle", forSession[1].Title)

	all, err := repo.ListBySession(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Book", "Call insurer", "Water bottle"}, []string{all[0].Title, all[1].Title, all[2].Title})
}
