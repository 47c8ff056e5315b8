package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/chemocompanion/internal/models"
)

type SymptomLogRepository interface {
	FindByID(ctx context.Context, id string) (models.SymptomLog, bool, error)
	ListAll(ctx context.Context) ([]models.SymptomLog, error)
	ListInRange(ctx context.Context, fromStart *time.Time, toEnd *time.Time, symptomType *string) ([]models.SymptomLog, error)
	ListSymptomTypes(ctx context.Context) ([]string, error)
}

type SymptomService struct {
	store RecordStore
	logs  SymptomLogRepository
	newID func() string
}

func NewSymptomService(store RecordStore, logs SymptomLogRepository) *SymptomService {
	return &SymptomService{
		store: store,
		logs:  logs,
		newID: uuid.NewString,
	}
}

type SymptomInput struct {
	Date        time.Time
	SymptomType string
	Severity    int
	Notes       string
}

// LogSymptom records one observation. Catalog names are stored with their
// catalog spelling; free text is kept as typed.
func (service *SymptomService) LogSymptom(ctx context.Context, input SymptomInput) (models.SymptomLog, error) {
	if input.Date.IsZero() {
		return models.SymptomLog{}, ErrInvalidSymptomDate
	}
	symptomType, err := validateText(input.SymptomType, maxSymptomTypeLength, ErrInvalidSymptomType)
	if err != nil {
		return models.SymptomLog{}, err
	}
	if !models.IsValidSeverity(input.Severity) {
		return models.SymptomLog{}, ErrInvalidSeverity
	}
	notes, err := validateNotes(input.Notes)
	if err != nil {
		return models.SymptomLog{}, err
	}

	entry := models.SymptomLog{
		ID:          service.newID(),
		Date:        input.Date.UTC(),
		SymptomType: models.CatalogSymptomName(symptomType),
		Severity:    input.Severity,
		Notes:       notes,
	}
	if err := service.store.Put(ctx, &entry); err != nil {
		return models.SymptomLog{}, err
	}
	return entry, nil
}

func (service *SymptomService) DeleteSymptomLog(ctx context.Context, id string) error {
	if err := service.store.Delete(ctx, models.KindSymptomLog, id); err != nil {
		return notFoundAs(ErrSymptomLogNotFound, id, err)
	}
	return nil
}

func (service *SymptomService) GetSymptomLog(ctx context.Context, id string) (models.SymptomLog, error) {
	entry, found, err := service.logs.FindByID(ctx, id)
	if err != nil {
		return models.SymptomLog{}, storageFailure("load symptom log", err)
	}
	if !found {
		return models.SymptomLog{}, notFoundAs(ErrSymptomLogNotFound, id, models.ErrNotFound)
	}
	return entry, nil
}

func (service *SymptomService) FetchAllLogs(ctx context.Context) ([]models.SymptomLog, error) {
	logs, err := service.logs.ListAll(ctx)
	if err != nil {
		return nil, storageFailure("list symptom logs", err)
	}
	return logs, nil
}

// SymptomsInRange returns logs with start <= date < end, earliest first.
// A blank symptomType matches every type.
func (service *SymptomService) SymptomsInRange(ctx context.Context, start time.Time, end time.Time, symptomType string) ([]models.SymptomLog, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	return service.fetchRange(ctx, &start, &end, symptomType)
}

// FetchLogsForOptionalRange treats a nil bound as open.
func (service *SymptomService) FetchLogsForOptionalRange(ctx context.Context, from *time.Time, to *time.Time) ([]models.SymptomLog, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, ErrInvalidRange
	}
	return service.fetchRange(ctx, from, to, "")
}

func (service *SymptomService) fetchRange(ctx context.Context, from *time.Time, to *time.Time, symptomType string) ([]models.SymptomLog, error) {
	var filter *string
	if trimmed := strings.TrimSpace(symptomType); trimmed != "" {
		name := models.CatalogSymptomName(trimmed)
		filter = &name
	}

	logs, err := service.logs.ListInRange(ctx, from, to, filter)
	if err != nil {
		return nil, storageFailure("list symptom logs in range", err)
	}
	return logs, nil
}

func (service *SymptomService) SymptomsForDay(ctx context.Context, day time.Time, location *time.Location) ([]models.SymptomLog, error) {
	start, end := DayRange(day, location)
	return service.SymptomsInRange(ctx, start, end, "")
}

// SymptomHistory returns every log grouped by local day, newest day first.
func (service *SymptomService) SymptomHistory(ctx context.Context, location *time.Location) ([]DayGroup, error) {
	logs, err := service.FetchAllLogs(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByDay(logs, location), nil
}

func (service *SymptomService) ListSymptomTypes(ctx context.Context) ([]string, error) {
	types, err := service.logs.ListSymptomTypes(ctx)
	if err != nil {
		return nil, storageFailure("list symptom types", err)
	}
	return types, nil
}

func (service *SymptomService) Categories() []models.SymptomCategory {
	return models.DefaultSymptomCategories()
}
