package db

import (
	"context"
	"time"

	"github.com/terraincognita07/chemocompanion/internal/models"
	"gorm.io/gorm"
)

type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

func (repo *SessionRepository) FindByID(ctx context.Context, id string) (models.Session, bool, error) {
	session := models.Session{}
	result := repo.database.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&session)
	if result.Error != nil {
		return models.Session{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Session{}, false, nil
	}
	return session, true, nil
}

func (repo *SessionRepository) ListAll(ctx context.Context) ([]models.Session, error) {
	sessions := make([]models.Session, 0)
	if err := repo.database.WithContext(ctx).Order("date ASC, id ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListUpcoming returns sessions dated at or after from, earliest first. A
// non-positive limit returns all of them.
func (repo *SessionRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]models.Session, error) {
	query := repo.database.WithContext(ctx).
		Where("date >= ?", utc(from)).
		Order("date ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	sessions := make([]models.Session, 0)
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (repo *SessionRepository) ListInRange(ctx context.Context, fromStart time.Time, toEnd time.Time) ([]models.Session, error) {
	sessions := make([]models.Session, 0)
	if err := repo.database.WithContext(ctx).
		Where("date >= ? AND date < ?", utc(fromStart), utc(toEnd)).
		Order("date ASC, id ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (repo *SessionRepository) FindNextAfter(ctx context.Context, now time.Time) (models.Session, bool, error) {
	session := models.Session{}
	result := repo.database.WithContext(ctx).
		Where("date > ?", utc(now)).
		Order("date ASC, id ASC").
		Limit(1).
		Find(&session)
	if result.Error != nil {
		return models.Session{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Session{}, false, nil
	}
	return session, true, nil
}
