package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cekapguard/agency-api/internal/domain/enum"
)

// OthersEntry is one coverage line on an "Others" document: a category
// from the fixed set with its own amount.
type OthersEntry struct {
	Category enum.OthersCategory `json:"category"`
	Amount   int64               `json:"-"` // Stored in cents
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e OthersEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category enum.OthersCategory `json:"category"`
		Amount   float64             `json:"amount"`
	}{
		Category: e.Category,
		Amount:   float64(e.Amount) / 100,
	})
}

// UnmarshalJSON accepts decimal amounts and stores them as cents
func (e *OthersEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Category enum.OthersCategory `json:"category"`
		Amount   float64             `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Category = raw.Category
	e.Amount = int64(raw.Amount * 100)
	return nil
}

// OthersEntryList is stored as a jsonb column.
type OthersEntryList []OthersEntry

// Value implements driver.Valuer
func (l OthersEntryList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *OthersEntryList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type %T for OthersEntryList", value)
}

// Document is an issued invoice or receipt. It is immutable once
// issued: the only fields that may change afterwards are the
// invoice-only payment fields, which transition exactly once from
// absent to present. Customer name and IC are denormalized at issuance
// so the record stays stable if the customer is later edited.
type Document struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	DocNumber     string               `gorm:"size:50;unique;not null" json:"doc_number"`
	Type          enum.DocType         `gorm:"size:20;not null;index" json:"type"`
	CustomerID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName  string               `gorm:"size:255;not null" json:"customer_name"`
	CustomerIC    string               `gorm:"size:20" json:"customer_ic"`
	IssuedCompany string               `gorm:"size:255" json:"issued_company"`
	Date          time.Time            `gorm:"type:date;not null" json:"date"`
	Amount        int64                `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Details       string               `gorm:"type:text" json:"insurance_details"`
	Remarks       string               `gorm:"type:text" json:"remarks"`
	StaffID       string               `gorm:"size:64" json:"staff_id"`
	StaffName     string               `gorm:"size:255" json:"staff_name"`
	AssetType     enum.AssetType       `gorm:"size:20;not null" json:"asset_type"`
	OthersCat     *enum.OthersCategory `gorm:"size:50" json:"others_category,omitempty"`
	OthersEntries OthersEntryList      `gorm:"type:jsonb" json:"others_entries,omitempty"`
	ServiceCharge *int64               `json:"-"` // Cents; nil when no charge was applied
	AttachmentURL *string              `gorm:"size:512" json:"attachment_url,omitempty"`

	// Payment lifecycle, present only on paid invoices.
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	ReceiptID        *uuid.UUID `gorm:"type:uuid" json:"receipt_id,omitempty"`
	ReceiptDocNumber *string    `gorm:"size:50" json:"receipt_doc_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (d Document) MarshalJSON() ([]byte, error) {
	type Alias Document
	out := struct {
		Alias
		Amount        float64  `json:"amount"`
		ServiceCharge *float64 `json:"service_charge,omitempty"`
	}{
		Alias:  Alias(d),
		Amount: float64(d.Amount) / 100,
	}
	if d.ServiceCharge != nil {
		sc := float64(*d.ServiceCharge) / 100
		out.ServiceCharge = &sc
	}
	return json.Marshal(&out)
}

// IsPaid reports whether the invoice has gone through the payment
// transition.
func (d *Document) IsPaid() bool {
	return d.PaidAt != nil
}

// GetAmountDecimal returns the total as a decimal
func (d *Document) GetAmountDecimal() float64 {
	return float64(d.Amount) / 100
}

// BeforeCreate generates a UUID before creating a new document
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Document model
func (Document) TableName() string {
	return "documents"
}
