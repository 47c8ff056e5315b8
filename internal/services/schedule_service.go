package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/chemocompanion/internal/models"
)

type SessionRepository interface {
	FindByID(ctx context.Context, id string) (models.Session, bool, error)
	ListAll(ctx context.Context) ([]models.Session, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]models.Session, error)
	ListInRange(ctx context.Context, fromStart time.Time, toEnd time.Time) ([]models.Session, error)
	FindNextAfter(ctx context.Context, now time.Time) (models.Session, bool, error)
}

// ScheduleService owns chemotherapy sessions.
type ScheduleService struct {
	store    RecordStore
	sessions SessionRepository
	newID    func() string
}

func NewScheduleService(store RecordStore, sessions SessionRepository) *ScheduleService {
	return &ScheduleService{
		store:    store,
		sessions: sessions,
		newID:    uuid.NewString,
	}
}

type SessionInput struct {
	Date     time.Time
	Location string
	Notes    string
}

func normalizeSessionInput(input SessionInput) (SessionInput, error) {
	if input.Date.IsZero() {
		return SessionInput{}, ErrInvalidSessionDate
	}
	location, err := validateText(input.Location, maxLocationLength, ErrInvalidLocation)
	if err != nil {
		return SessionInput{}, err
	}
	notes, err := validateNotes(input.Notes)
	if err != nil {
		return SessionInput{}, err
	}
	return SessionInput{Date: input.Date.UTC(), Location: location, Notes: notes}, nil
}

func (service *ScheduleService) CreateSession(ctx context.Context, input SessionInput) (models.Session, error) {
	normalized, err := normalizeSessionInput(input)
	if err != nil {
		return models.Session{}, err
	}

	session := models.Session{
		ID:       service.newID(),
		Date:     normalized.Date,
		Location: normalized.Location,
		Notes:    normalized.Notes,
	}
	if err := service.store.Put(ctx, &session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (service *ScheduleService) UpdateSession(ctx context.Context, id string, input SessionInput) (models.Session, error) {
	normalized, err := normalizeSessionInput(input)
	if err != nil {
		return models.Session{}, err
	}

	entity, err := service.store.Update(ctx, models.KindSession, id, func(entity models.Entity) error {
		session := entity.(*models.Session)
		session.Date = normalized.Date
		session.Location = normalized.Location
		session.Notes = normalized.Notes
		return nil
	})
	if err != nil {
		return models.Session{}, notFoundAs(ErrSessionNotFound, id, err)
	}
	return *entity.(*models.Session), nil
}

// DeleteSession removes the session together with its checklist items.
func (service *ScheduleService) DeleteSession(ctx context.Context, id string) error {
	if err := service.store.Delete(ctx, models.KindSession, id); err != nil {
		return notFoundAs(ErrSessionNotFound, id, err)
	}
	return nil
}

func (service *ScheduleService) GetSession(ctx context.Context, id string) (models.Session, error) {
	session, found, err := service.sessions.FindByID(ctx, id)
	if err != nil {
		return models.Session{}, storageFailure("load session", err)
	}
	if !found {
		return models.Session{}, notFoundAs(ErrSessionNotFound, id, models.ErrNotFound)
	}
	return session, nil
}

func (service *ScheduleService) ListSessions(ctx context.Context) ([]models.Session, error) {
	sessions, err := service.sessions.ListAll(ctx)
	if err != nil {
		return nil, storageFailure("list sessions", err)
	}
	return sessions, nil
}

// SessionsUpcoming returns sessions dated at or after from, earliest first,
// truncated to limit when limit is positive.
func (service *ScheduleService) SessionsUpcoming(ctx context.Context, from time.Time, limit int) ([]models.Session, error) {
	sessions, err := service.sessions.ListUpcoming(ctx, from, limit)
	if err != nil {
		return nil, storageFailure("list upcoming sessions", err)
	}
	return sessions, nil
}

// UpcomingFromToday counts every session on today's local date as upcoming,
// including ones earlier today.
func (service *ScheduleService) UpcomingFromToday(ctx context.Context, now time.Time, location *time.Location, limit int) ([]models.Session, error) {
	return service.SessionsUpcoming(ctx, DateAtLocation(now, location), limit)
}

// NextSession returns the first session strictly after now.
func (service *ScheduleService) NextSession(ctx context.Context, now time.Time) (models.Session, bool, error) {
	session, found, err := service.sessions.FindNextAfter(ctx, now)
	if err != nil {
		return models.Session{}, false, storageFailure("load next session", err)
	}
	return session, found, nil
}

// SessionsInMonth returns the sessions of month's local calendar month.
func (service *ScheduleService) SessionsInMonth(ctx context.Context, month time.Time, location *time.Location) ([]models.Session, error) {
	start, end := MonthRange(month, location)
	sessions, err := service.sessions.ListInRange(ctx, start, end)
	if err != nil {
		return nil, storageFailure("list sessions in month", err)
	}
	return sessions, nil
}
