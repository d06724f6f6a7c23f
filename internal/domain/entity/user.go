package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cekapguard/agency-api/internal/domain/enum"
)

// User is a staff login identity.
type User struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Email     string        `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string        `gorm:"size:255;not null" json:"-"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	Role      enum.UserRole `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
