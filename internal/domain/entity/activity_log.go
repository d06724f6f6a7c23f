package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLog is an append-only audit record of a staff action.
// Entries are never mutated or deleted; the repository exposes no
// update or delete operation for them.
type ActivityLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	StaffName string    `gorm:"size:255;not null" json:"staff_name"`
	Action    string    `gorm:"size:255;not null" json:"action"`
	DocRef    *string   `gorm:"size:50" json:"doc_ref,omitempty"`
}

// BeforeCreate generates a UUID before creating a new log entry
func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return nil
}

// TableName returns the table name for the ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_logs"
}
