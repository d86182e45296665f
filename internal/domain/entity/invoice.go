package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

// Invoice represents a formal sales invoice, either created directly or
// produced by transferring a ticket or a confirmed quote.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Reference     string             `gorm:"size:100;unique;not null" json:"reference"`
	ClientID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"client_id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Status        enum.InvoiceStatus `gorm:"default:0" json:"status"`
	SubTotal      decimal.Decimal    `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	DiscountTotal decimal.Decimal    `gorm:"type:decimal(15,2);default:0" json:"discount_total"`
	TaxTotal      decimal.Decimal    `gorm:"type:decimal(15,2);default:0" json:"tax_total"`
	Total         decimal.Decimal    `gorm:"type:decimal(15,2);default:0" json:"total"`
	Paid          decimal.Decimal    `gorm:"type:decimal(15,2);default:0" json:"paid"`
	Due           decimal.Decimal    `gorm:"type:decimal(15,2);default:0" json:"due"`
	DueDate       *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	TicketID      *uuid.UUID         `gorm:"type:uuid;index" json:"ticket_id,omitempty"`
	QuoteID       *uuid.UUID         `gorm:"type:uuid;index" json:"quote_id,omitempty"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Client Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	User   User          `gorm:"foreignKey:UserID" json:"-"`
	Items  []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Taxes  []DocumentTax `gorm:"-" json:"taxes,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a line on an invoice
type InvoiceItem struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"invoice_id"`
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
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Article Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
