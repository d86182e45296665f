package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

// Payment is one settlement recorded against a document. The ledger is
// append-only; corrections are new entries, never edits.
type Payment struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	DocumentKind enum.DocumentKind  `gorm:"size:30;not null;index:idx_payments_doc" json:"document_kind"`
	DocumentID   uuid.UUID          `gorm:"type:uuid;not null;index:idx_payments_doc" json:"document_id"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Method       enum.PaymentMethod `gorm:"size:30;not null" json:"method"`
	Amount       decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"amount"`
	BankID       *uuid.UUID         `gorm:"type:uuid;index" json:"bank_id,omitempty"`
	CheckNumber  *string            `gorm:"size:100" json:"check_number,omitempty"`
	PaidAt       time.Time          `gorm:"not null" json:"paid_at"`
	Notes        *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User User  `gorm:"foreignKey:UserID" json:"-"`
	Bank *Bank `gorm:"foreignKey:BankID" json:"bank,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
