package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

// CashEntry is one movement in the cash register. Cash sales produce
// income entries automatically; expenses are recorded by hand.
type CashEntry struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID *uuid.UUID         `gorm:"type:uuid;index" json:"payment_id,omitempty"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      enum.CashEntryType `gorm:"size:20;not null" json:"type"`
	Amount    decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Label     string             `gorm:"size:255;not null" json:"label"`
	EntryDate time.Time          `gorm:"type:date;not null;index" json:"entry_date"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Payment *Payment `gorm:"foreignKey:PaymentID" json:"-"`
	User    User     `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new cash entry
func (ce *CashEntry) BeforeCreate(tx *gorm.DB) error {
	if ce.ID == uuid.Nil {
		ce.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashEntry model
func (CashEntry) TableName() string {
	return "cash_entries"
}
