package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

// Tax is a configured tax applied to sales documents. Percentage taxes
// hold a rate, fixed taxes hold a flat amount.
type Tax struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;unique;not null" json:"name"`
	Type      enum.TaxType    `gorm:"size:20;default:'percentage'" json:"type"`
	Rate      decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"rate"`
	IsActive  bool            `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax
func (t *Tax) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tax model
func (Tax) TableName() string {
	return "taxes"
}

// DocumentTax is a snapshot of one tax as applied to a document at the
// time it was priced. Later tax edits never change past documents.
type DocumentTax struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	DocumentKind enum.DocumentKind `gorm:"size:30;not null;index:idx_document_taxes_doc" json:"document_kind"`
	DocumentID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_document_taxes_doc" json:"document_id"`
	TaxID        *uuid.UUID        `gorm:"type:uuid" json:"tax_id,omitempty"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Type         enum.TaxType      `gorm:"size:20;not null" json:"type"`
	Rate         decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"rate"`
	Amount       decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt    time.Time         `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new document tax
func (dt *DocumentTax) BeforeCreate(tx *gorm.DB) error {
	if dt.ID == uuid.Nil {
		dt.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DocumentTax model
func (DocumentTax) TableName() string {
	return "document_taxes"
}
