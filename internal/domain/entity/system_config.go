package entity

import "time"

// SystemConfig is the singleton agency configuration read by the
// identifier generator and the rendering layer. Exactly one row exists;
// it is seeded with DefaultSystemConfig on first load and written only
// through the owner's settings screen.
type SystemConfig struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	CompanyName   string    `gorm:"size:255;not null" json:"company_name"`
	Address       string    `gorm:"size:512" json:"address"`
	Contact       string    `gorm:"size:255" json:"contact"`
	Logo          string    `gorm:"size:512" json:"logo"`
	FooterNotes   string    `gorm:"type:text" json:"footer_notes"`
	InvoicePrefix string    `gorm:"size:10;not null" json:"invoice_prefix"`
	ReceiptPrefix string    `gorm:"size:10;not null" json:"receipt_prefix"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for the SystemConfig model
func (SystemConfig) TableName() string {
	return "system_config"
}

// DefaultSystemConfig returns the configuration used when no row exists yet.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		ID:            1,
		CompanyName:   "Cekap Guard Insurance Solutions",
		Address:       "123 Business Avenue, Suite 400, Financial District",
		Contact:       "+60 3-9876 5432 | contact@cekapguard.com",
		Logo:          "https://picsum.photos/200/200",
		FooterNotes:   "Thank you for choosing Cekap Guard. This is a computer-generated document.",
		InvoicePrefix: "INV-",
		ReceiptPrefix: "REC-",
	}
}
