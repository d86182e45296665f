package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanySettings holds the store identity printed on documents. A single
// row exists; updates always target it.
type CompanySettings struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	TaxNumber     *string        `gorm:"size:100" json:"tax_number,omitempty"`
	Currency      string         `gorm:"size:10;default:'XOF'" json:"currency"`
	Logo          *string        `gorm:"size:255" json:"logo,omitempty"`
	ReceiptFooter *string        `gorm:"type:text" json:"receipt_footer,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating the settings row
func (cs *CompanySettings) BeforeCreate(tx *gorm.DB) error {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CompanySettings model
func (CompanySettings) TableName() string {
	return "company_settings"
}
