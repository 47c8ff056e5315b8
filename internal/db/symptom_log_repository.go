package db

import (
	"context"
	"time"

	"github.com/terraincognita07/chemocompanion/internal/models"
	"gorm.io/gorm"
)

type SymptomLogRepository struct {
	database *gorm.DB
}

func NewSymptomLogRepository(database *gorm.DB) *SymptomLogRepository {
	return &SymptomLogRepository{database: database}
}

func (repo *SymptomLogRepository) FindByID(ctx context.Context, id string) (models.SymptomLog, bool, error) {
	entry := models.SymptomLog{}
	result := repo.database.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.SymptomLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SymptomLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *SymptomLogRepository) ListAll(ctx context.Context) ([]models.SymptomLog, error) {
	logs := make([]models.SymptomLog, 0)
	if err := repo.database.WithContext(ctx).Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListInRange returns logs with fromStart <= date < toEnd, earliest first.
// Nil bounds are open and a nil symptomType matches every type.
func (repo *SymptomLogRepository) ListInRange(ctx context.Context, fromStart *time.Time, toEnd *time.Time, symptomType *string) ([]models.SymptomLog, error) {
	query := repo.database.WithContext(ctx).Model(&models.SymptomLog{})
	if fromStart != nil {
		query = query.Where("date >= ?", utc(*fromStart))
	}
	if toEnd != nil {
		query = query.Where("date < ?", utc(*toEnd))
	}
	if symptomType != nil {
		query = query.Where("symptom_type = ?", *symptomType)
	}

	logs := make([]models.SymptomLog, 0)
	if err := query.Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *SymptomLogRepository) ListSymptomTypes(ctx context.Context) ([]string, error) {
	types := make([]string, 0)
	if err := repo.database.WithContext(ctx).
		Model(&models.SymptomLog{}).
		Distinct().
		Order("symptom_type ASC").
		Pluck("symptom_type", &types).Error; err != nil {
		return nil, err
	}
	return types, nil
}
