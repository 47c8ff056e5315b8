package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/chemocompanion/internal/models"
)

// memoryStore is an in-process stand-in for the record store and its
// repositories.
type memoryStore struct {
	sessions map[string]models.Session
	items    map[string]models.ChecklistItem
	logs     map[string]models.SymptomLog
	putErr   error
	readErr  error
	writes   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: make(map[string]models.Session),
		items:    make(map[string]models.ChecklistItem),
		logs:     make(map[string]models.SymptomLog),
	}
}

func (store *memoryStore) Put(_ context.Context, entity models.Entity) error {
	if store.putErr != nil {
		return store.putErr
	}
	switch value := entity.(type) {
	case *models.Session:
		store.sessions[value.ID] = *value
	case *models.ChecklistItem:
		store.items[value.ID] = *value
	case *models.SymptomLog:
		store.logs[value.ID] = *value
	default:
		return fmt.Errorf("%w: unsupported entity %T", models.ErrValidation, entity)
	}
	store.writes++
	return nil
}

func (store *memoryStore) Update(ctx context.Context, kind models.Kind, id string, mutate func(models.Entity) error) (models.Entity, error) {
	entity, err := store.get(kind, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(entity); err != nil {
		return nil, err
	}
	if err := store.Put(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (store *memoryStore) Delete(_ context.Context, kind models.Kind, id string) error {
	if _, err := store.get(kind, id); err != nil {
		return err
	}
	switch kind {
	case models.KindSession:
		delete(store.sessions, id)
		for itemID, item := range store.items {
			if item.BelongsTo(id) {
				delete(store.items, itemID)
			}
		}
	case models.KindChecklistItem:
		delete(store.items, id)
	case models.KindSymptomLog:
		delete(store.logs, id)
	}
	store.writes++
	return nil
}

func (store *memoryStore) get(kind models.Kind, id string) (models.Entity, error) {
	switch kind {
	case models.KindSession:
		if value, ok := store.sessions[id]; ok {
			return &value, nil
		}
	case models.KindChecklistItem:
		if value, ok := store.items[id]; ok {
			return &value, nil
		}
	case models.KindSymptomLog:
		if value, ok := store.logs[id]; ok {
			return &value, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", models.ErrNotFound, kind, id)
}

type memorySessions struct {
	store *memoryStore
}

func (repo memorySessions) FindByID(_ context.Context, id string) (models.Session, bool, error) {
	if repo.store.readErr != nil {
		return models.Session{}, false, repo.store.readErr
	}
	session, ok := repo.store.sessions[id]
	return session, ok, nil
}

func (repo memorySessions) sorted(keep func(models.Session) bool) []models.Session {
	result := make([]models.Session, 0)
	for _, session := range repo.store.sessions {
		if keep(session) {
			result = append(result, session)
		}
	}
	slices.SortFunc(result, func(left models.Session, right models.Session) int {
		if order := left.Date.Compare(right.Date); order != 0 {
			return order
		}
		return strings.Compare(left.ID, right.ID)
	})
	return result
}

func (repo memorySessions) ListAll(context.Context) ([]models.Session, error) {
	if repo.store.readErr != nil {
		return nil, repo.store.readErr
	}
	return repo.sorted(func(models.Session) bool { return true }), nil
}

func (repo memorySessions) ListUpcoming(_ context.Context, from time.Time, limit int) ([]models.Session, error) {
	if repo.store.readErr != nil {
		return nil, repo.store.readErr
	}
	result := repo.sorted(func(session models.Session) bool { return !session.Date.Before(from) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (repo memorySessions) ListInRange(_ context.Context, fromStart time.Time, toEnd time.Time) ([]models.Session, error) {
	if repo.store.readErr != nil {
		return nil, repo.store.readErr
	}
	return repo.sorted(func(session models.Session) bool {
		return !session.Date.Before(fromStart) && session.Date.Before(toEnd)
	}), nil
}

func (repo memorySessions) FindNextAfter(_ context.Context, now time.Time) (models.Session, bool, error) {
	if repo.store.readErr != nil {
		return models.Session{}, false, repo.store.readErr
	}
	result := repo.sorted(func(session models.Session) bool { return session.Date.After(now) })
	if len(result) == 0 {
		return models.Session{}, false, nil
	}
	return result[0], true, nil
}

type memoryChecklist struct {
	store *memoryStore
}

func (repo memoryChecklist) FindByID(_ context.Context, id string) (models.ChecklistItem, bool, error) {
	if repo.store.readErr != nil {
		return models.ChecklistItem{}, false, repo.store.readErr
	}
	item, ok := repo.store.items[id]
	return item, ok, nil
}

func (repo memoryChecklist) ListBySession(_ context.Context, sessionID *string) ([]models.ChecklistItem, error) {
	if repo.store.readErr != nil {
		return nil, repo.store.readErr
	}
	result := make([]models.ChecklistItem, 0)
	for _, item := range repo.store.items {
		if sessionID == nil || item.BelongsTo(*sessionID) {
			result = append(result, item)
		}
	}
	slices.SortFunc(result, func(left models.ChecklistItem, right models.ChecklistItem) int {
		if order := strings.Compare(left.Title, right.Title); order != 0 {
			return order
		}
		return strings.Compare(left.ID, right.ID)
	})
	return result, nil
}

type memorySymptomLogs struct {
	store *memoryStore
}

func (repo memorySymptomLogs) FindByID(_ context.Context, id string) (models.SymptomLog, bool, error) {
	if repo.store.readErr != nil {
		return models.SymptomLog{}, false, repo.store.readErr
	}
	entry, ok := repo.store.logs[id]
	return entry, ok, nil
}

func (repo memorySymptomLogs) ListAll(ctx context.Context) ([]models.SymptomLog, error) {
	return repo.ListInRange(ctx, nil, nil, nil)
}

func (repo memorySymptomLogs) ListInRange(_ context.Context, fromStart *time.Time, toEnd *time.Time, symptomType *string) ([]models.SymptomLog, error) {
	if repo.store.readErr != nil {
		return nil, repo.store.readErr
	}
	result := make([]models.SymptomLog, 0)
	for _, entry := range repo.store.logs {
		if fromStart != nil && entry.Date.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !entry.Date.Before(*toEnd) {
			continue
		}
		if symptomType != nil && entry.SymptomType != *symptomType {
			continue
		}
		result = append(result, entry)
	}
	slices.SortFunc(result, func(left models.SymptomLog, right models.SymptomLog) int {
		if order := left.Date.Compare(right.Date); order != 0 {
			return order
		}
		return strings.Compare(left.ID, right.ID)
	})
	return result, nil
}

func (repo memorySymptomLogs) ListSymptomTypes(context.Context) ([]string, error) {
	if repo.store.readErr != nil {
		return nil, repo.store.readErr
	}
	types := make([]string, 0)
	for _, entry := range repo.store.logs {
		if !slices.Contains(types, entry.SymptomType) {
			types = append(types, entry.SymptomType)
		}
	}
	slices.Sort(types)
	return types, nil
}

func sequentialIDs(prefix string) func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("%s-%d", prefix, next)
	}
}

func mustLoadLocation(t testing.TB, name string) *time.Location {
	t.Helper()
	location, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return location
}
