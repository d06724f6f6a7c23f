package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cekapguard/agency-api/internal/domain/enum"
)

// Customer is the identity record for a person or company the agency
// insures. A customer is created once and mutated in place whenever a
// new document carries updated contact or policy details; the core
// never deletes customers.
type Customer struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Name          string               `gorm:"size:255;not null" json:"name"`
	Phone         string               `gorm:"size:50;not null" json:"phone"`
	IC            string               `gorm:"size:20;index" json:"ic"`
	Email         *string              `gorm:"size:255" json:"email,omitempty"`
	IsCompany     bool                 `gorm:"default:false" json:"is_company"`
	AssetType     enum.AssetType       `gorm:"size:20;not null" json:"asset_type"`
	AssetRegNo    string               `gorm:"size:100" json:"asset_reg_no"`
	PolicyType    enum.PolicyType      `gorm:"size:30" json:"policy_type,omitempty"`
	OthersDefault *enum.OthersCategory `gorm:"size:50" json:"others_category,omitempty"`
	LastUpdated   time.Time            `json:"last_updated"`
	CreatedAt     time.Time            `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
