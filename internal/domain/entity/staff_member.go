package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffMember is an entry in the staff registry. Non-owner logins must
// be present here to be granted a session; removal revokes access at
// the next token issuance.
type StaffMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new staff member
func (s *StaffMember) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StaffMember model
func (StaffMember) TableName() string {
	return "staff_members"
}
