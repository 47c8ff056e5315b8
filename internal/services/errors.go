package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/chemocompanion/internal/models"
)

var (
	ErrInvalidSessionDate    = fmt.Errorf("%w: session date is required", models.ErrValidation)
	ErrInvalidLocation       = fmt.Errorf("%w: invalid session location", models.ErrValidation)
	ErrInvalidTitle          = fmt.Errorf("%w: invalid checklist title", models.ErrValidation)
	ErrInvalidNotes          = fmt.Errorf("%w: notes too long", models.ErrValidation)
	ErrInvalidSymptomDate    = fmt.Errorf("%w: symptom date is required", models.ErrValidation)
	ErrInvalidSymptomType    = fmt.Errorf("%w: invalid symptom type", models.ErrValidation)
	ErrInvalidSeverity       = fmt.Errorf("%w: severity must be between %d and %d", models.ErrValidation, models.MinSeverity, models.MaxSeverity)
	ErrInvalidTimeFrame      = fmt.Errorf("%w: unknown time frame", models.ErrValidation)
	ErrInvalidRange          = fmt.Errorf("%w: range end precedes start", models.ErrValidation)
	ErrSessionNotFound       = fmt.Errorf("%w: session", models.ErrNotFound)
	ErrChecklistItemNotFound = fmt.Errorf("%w: checklist item", models.ErrNotFound)
	ErrSymptomLogNotFound    = fmt.Errorf("%w: symptom log", models.ErrNotFound)
)

const (
	maxLocationLength    = 200
	maxTitleLength       = 200
	maxSymptomTypeLength = 80
	maxNotesLength       = 2000
)

// RecordStore is the write side of the record store.
type RecordStore interface {
	Put(ctx context.Context, entity models.Entity) error
	Update(ctx context.Context, kind models.Kind, id string, mutate func(models.Entity) error) (models.Entity, error)
	Delete(ctx context.Context, kind models.Kind, id string) error
}

// storageFailure classifies an unexpected read error as a storage failure.
func storageFailure(operation string, err error) error {
	if errors.Is(err, models.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", models.ErrStorage, operation, err)
}

// notFoundAs re-labels a store miss with the service's specific error.
func notFoundAs(target error, id string, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%w %s", target, id)
	}
	return err
}

func validateNotes(notes string) (string, error) {
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return "", ErrInvalidNotes
	}
	return notes, nil
}

func validateText(value string, maxLength int, invalid error) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || utf8.RuneCountInString(value) > maxLength {
		return "", invalid
	}
	return value, nil
}
