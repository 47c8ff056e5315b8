package models

import "time"

const (
	MinSeverity = 1
	MaxSeverity = 10
)

// SymptomLog is one severity-rated symptom observation.
type SymptomLog struct {
	ID          string    `gorm:"primaryKey;type:text"`
	Date        time.Time `gorm:"not null;index"`
	SymptomType string    `gorm:"not null;index"`
	Severity    int       `gorm:"not null"`
	Notes       string    `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (entry *SymptomLog) EntityKind() Kind { return KindSymptomLog }
func (entry *SymptomLog) EntityID() string { return entry.ID }

func IsValidSeverity(severity int) bool {
	return severity >= MinSeverity && severity <= MaxSeverity
}
