package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/terraincognita07/chemocompanion/internal/models"
)

type ChecklistItemRepository interface {
	FindByID(ctx context.Context, id string) (models.ChecklistItem, bool, error)
	ListBySession(ctx context.Context, sessionID *string) ([]models.ChecklistItem, error)
}

type ChecklistSessionLookup interface {
	FindByID(ctx context.Context, id string) (models.Session, bool, error)
}

type ChecklistService struct {
	store    RecordStore
	items    ChecklistItemRepository
	sessions ChecklistSessionLookup
	newID    func() string
}

func NewChecklistService(store RecordStore, items ChecklistItemRepository, sessions ChecklistSessionLookup) *ChecklistService {
	return &ChecklistService{
		store:    store,
		items:    items,
		sessions: sessions,
		newID:    uuid.NewString,
	}
}

// CreateChecklistItem adds an item, optionally attached to an existing session.
func (service *ChecklistService) CreateChecklistItem(ctx context.Context, title string, notes string, sessionID *string) (models.ChecklistItem, error) {
	title, err := validateText(title, maxTitleLength, ErrInvalidTitle)
	if err != nil {
		return models.ChecklistItem{}, err
	}
	notes, err = validateNotes(notes)
	if err != nil {
		return models.ChecklistItem{}, err
	}

	var owner *string
	if sessionID != nil && strings.TrimSpace(*sessionID) != "" {
		id := strings.TrimSpace(*sessionID)
		_, found, err := service.sessions.FindByID(ctx, id)
		if err != nil {
			return models.ChecklistItem{}, storageFailure("load session", err)
		}
		if !found {
			return models.ChecklistItem{}, notFoundAs(ErrSessionNotFound, id, models.ErrNotFound)
		}
		owner = &id
	}

	item := models.ChecklistItem{
		ID:        service.newID(),
		Title:     title,
		Notes:     notes,
		SessionID: owner,
	}
	if err := service.store.Put(ctx, &item); err != nil {
		return models.ChecklistItem{}, err
	}
	return item, nil
}

// ToggleChecklistItem flips the completion flag and returns the stored item.
func (service *ChecklistService) ToggleChecklistItem(ctx context.Context, id string) (models.ChecklistItem, error) {
	entity, err := service.store.Update(ctx, models.KindChecklistItem, id, func(entity models.Entity) error {
		item := entity.(*models.ChecklistItem)
		item.IsCompleted = !item.IsCompleted
		return nil
	})
	if err != nil {
		return models.ChecklistItem{}, notFoundAs(ErrChecklistItemNotFound, id, err)
	}
	return *entity.(*models.ChecklistItem), nil
}

func (service *ChecklistService) UpdateChecklistItemNotes(ctx context.Context, id string, notes string) (models.ChecklistItem, error) {
	notes, err := validateNotes(notes)
	if err != nil {
		return models.ChecklistItem{}, err
	}

	entity, err := service.store.Update(ctx, models.KindChecklistItem, id, func(entity models.Entity) error {
		entity.(*models.ChecklistItem).Notes = notes
		return nil
	})
	if err != nil {
		return models.ChecklistItem{}, notFoundAs(ErrChecklistItemNotFound, id, err)
	}
	return *entity.(*models.ChecklistItem), nil
}

func (service *ChecklistService) DeleteChecklistItem(ctx context.Context, id string) error {
	if err := service.store.Delete(ctx, models.KindChecklistItem, id); err != nil {
		return notFoundAs(ErrChecklistItemNotFound, id, err)
	}
	return nil
}

func (service *ChecklistService) GetChecklistItem(ctx context.Context, id string) (models.ChecklistItem, error) {
	item, found, err := service.items.FindByID(ctx, id)
	if err != nil {
		return models.ChecklistItem{}, storageFailure("load checklist item", err)
	}
	if !found {
		return models.ChecklistItem{}, notFoundAs(ErrChecklistItemNotFound, id, models.ErrNotFound)
	}
	return item, nil
}

// ChecklistItemsFor returns the items of a session ordered by title, or all
// items when sessionID is nil.
func (service *ChecklistService) ChecklistItemsFor(ctx context.Context, sessionID *string) ([]models.ChecklistItem, error) {
	items, err := service.items.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, storageFailure("list checklist items", err)
	}
	return items, nil
}
