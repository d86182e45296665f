package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

// Quote represents a priced offer to a client. Quotes never touch stock;
// stock only moves when a quote is transferred to a ticket or invoice.
type Quote struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Reference     string           `gorm:"size:100;unique;not null" json:"reference"`
	ClientID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Status        enum.QuoteStatus `gorm:"default:0" json:"status"`
	SubTotal      decimal.Decimal  `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	DiscountTotal decimal.Decimal  `gorm:"type:decimal(15,2);default:0" json:"discount_total"`
	TaxTotal      decimal.Decimal  `gorm:"type:decimal(15,2);default:0" json:"tax_total"`
	Total         decimal.Decimal  `gorm:"type:decimal(15,2);default:0" json:"total"`
	ValidUntil    *time.Time       `gorm:"type:date" json:"valid_until,omitempty"`
	TicketID      *uuid.UUID       `gorm:"type:uuid;index" json:"ticket_id,omitempty"`
	InvoiceID     *uuid.UUID       `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	Notes         *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Client Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	User   User          `gorm:"foreignKey:UserID" json:"-"`
	Items  []QuoteItem   `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
	Taxes  []DocumentTax `gorm:"-" json:"taxes,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// IsTransferred reports whether the quote already became a ticket or invoice
func (q *Quote) IsTransferred() bool {
	return q.TicketID != nil || q.InvoiceID != nil
}

// QuoteItem is a line on a quote
type QuoteItem struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"quote_id"`
	ArticleID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"article_id"`
	ArticleName   string            `gorm:"size:255;not null" json:"article_name"`
	UnitPrice     decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Quantity      int64             `gorm:"not null" json:"quantity"`
	DiscountType  enum.DiscountType `gorm:"size:20;default:'percentage'" json:"discount_type"`
	DiscountValue decimal.Decimal   `gorm:"type:decimal(15,2);default:0" json:"discount_value"`
	Total         decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"total"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Quote   Quote   `gorm:"foreignKey:QuoteID" json:"-"`
	Article Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote item
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}
