package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

// Ticket represents a point-of-sale receipt. Stock is decremented the
// moment the ticket is created.
type Ticket struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Reference     string            `gorm:"size:100;unique;not null" json:"reference"`
	ClientID      *uuid.UUID        `gorm:"type:uuid;index" json:"client_id,omitempty"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Status        enum.TicketStatus `gorm:"default:0" json:"status"`
	SubTotal      decimal.Decimal   `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	DiscountTotal decimal.Decimal   `gorm:"type:decimal(15,2);default:0" json:"discount_total"`
	TaxTotal      decimal.Decimal   `gorm:"type:decimal(15,2);default:0" json:"tax_total"`
	Total         decimal.Decimal   `gorm:"type:decimal(15,2);default:0" json:"total"`
	Paid          decimal.Decimal   `gorm:"type:decimal(15,2);default:0" json:"paid"`
	Due           decimal.Decimal   `gorm:"type:decimal(15,2);default:0" json:"due"`
	InvoiceID     *uuid.UUID        `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	Notes         *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Client *Client      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	User   User         `gorm:"foreignKey:UserID" json:"-"`
	Items  []TicketItem `gorm:"foreignKey:TicketID" json:"items,omitempty"`
	Taxes  []DocumentTax `gorm:"-" json:"taxes,omitempty"`
}

// BeforeCreate generates a UUID before creating a new ticket
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Ticket model
func (Ticket) TableName() string {
	return "tickets"
}

// IsTransferred reports whether the ticket was already turned into an invoice
func (t *Ticket) IsTransferred() bool {
	return t.InvoiceID != nil
}

// TicketItem is a line on a ticket with prices frozen at sale time
type TicketItem struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TicketID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"ticket_id"`
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
	Ticket  Ticket  `gorm:"foreignKey:TicketID" json:"-"`
	Article Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

// BeforeCreate generates a UUID before creating a new ticket item
func (ti *TicketItem) BeforeCreate(tx *gorm.DB) error {
	if ti.ID == uuid.Nil {
		ti.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TicketItem model
func (TicketItem) TableName() string {
	return "ticket_items"
}
