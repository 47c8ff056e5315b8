package models

import "time"

// Session is one scheduled or past chemotherapy appointment.
type Session struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Date      time.Time `gorm:"not null;index"`
	Location  string    `gorm:"not null"`
	Notes     string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (session *Session) EntityKind() Kind { return KindSession }
func (session *Session) EntityID() string { return session.ID }
