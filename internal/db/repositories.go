package db

import (
	"time"

	"gorm.io/gorm"
)

type Repositories struct {
	Sessions       *SessionRepository
	ChecklistItems *ChecklistItemRepository
	SymptomLogs    *SymptomLogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Sessions:       NewSessionRepository(database),
		ChecklistItems: NewChecklistItemRepository(database),
		SymptomLogs:    NewSymptomLogRepository(database),
	}
}

// Stored instants are UTC so that textual comparisons in SQLite order them
// correctly.
func utc(value time.Time) time.Time {
	return value.UTC()
}
