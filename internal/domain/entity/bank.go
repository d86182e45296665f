package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

// Bank is one of the store's bank accounts
type Bank struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	AccountHolder *string         `gorm:"size:255" json:"account_holder,omitempty"`
	AccountNumber *string         `gorm:"size:100" json:"account_number,omitempty"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"balance"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Transactions []BankTransaction `gorm:"foreignKey:BankID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bank
func (b *Bank) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bank model
func (Bank) TableName() string {
	return "banks"
}

// BankTransaction is one movement on a bank account
type BankTransaction struct {
	ID        uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	BankID    uuid.UUID                `gorm:"type:uuid;not null;index" json:"bank_id"`
	PaymentID *uuid.UUID               `gorm:"type:uuid;index" json:"payment_id,omitempty"`
	UserID    uuid.UUID                `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      enum.BankTransactionType `gorm:"size:30;not null" json:"type"`
	Amount    decimal.Decimal          `gorm:"type:decimal(15,2);not null" json:"amount"`
	Label     string                   `gorm:"size:255;not null" json:"label"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
	DeletedAt gorm.DeletedAt           `gorm:"index" json:"-"`

	// Relationships
	Bank    Bank     `gorm:"foreignKey:BankID" json:"-"`
	Payment *Payment `gorm:"foreignKey:PaymentID" json:"-"`
	User    User     `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bank transaction
func (bt *BankTransaction) BeforeCreate(tx *gorm.DB) error {
	if bt.ID == uuid.Nil {
		bt.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BankTransaction model
func (BankTransaction) TableName() string {
	return "bank_transactions"
}
