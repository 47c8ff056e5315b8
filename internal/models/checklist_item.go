package models

import "time"

// ChecklistItem is a to-do entry, optionally tied to a Session.
type ChecklistItem struct {
	ID          string  `gorm:"primaryKey;type:text"`
	Title       string  `gorm:"not null;index"`
	IsCompleted bool    `gorm:"not null"`
	Notes       string  `gorm:"not null"`
	SessionID   *string `gorm:"type:text;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (item *ChecklistItem) EntityKind() Kind { return KindChecklistItem }
func (item *ChecklistItem) EntityID() string { return item.ID }

// BelongsTo reports whether the item references the given session.
func (item ChecklistItem) BelongsTo(sessionID string) bool {
	return item.SessionID != nil && *item.SessionID == sessionID
}
