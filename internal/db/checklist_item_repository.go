package db

import (
	"context"

	"github.com/terraincognita07/chemocompanion/internal/models"
	"gorm.io/gorm"
)

type ChecklistItemRepository struct {
	database *gorm.DB
}

func NewChecklistItemRepository(database *gorm.DB) *ChecklistItemRepository {
	return &ChecklistItemRepository{database: database}
}

func (repo *ChecklistItemRepository) FindByID(ctx context.Context, id string) (models.ChecklistItem, bool, error) {
	item := models.ChecklistItem{}
	result := repo.database.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&item)
	if result.Error != nil {
		return models.ChecklistItem{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ChecklistItem{}, false, nil
	}
	return item, true, nil
}

// ListBySession returns the items of one session ordered by title, or every
// item when sessionID is nil.
func (repo *ChecklistItemRepository) ListBySession(ctx context.Context, sessionID *string) ([]models.ChecklistItem, error) {
	query := repo.database.WithContext(ctx).Model(&models.ChecklistItem{})
	if sessionID != nil {
		query = query.Where("session_id = ?", *sessionID)
	}

	items := make([]models.ChecklistItem, 0)
	if err := query.Order("title ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
