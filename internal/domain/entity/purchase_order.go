package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

// PurchaseOrder represents an order placed with a supplier. Reception
// increments stock and refreshes article buying prices.
type PurchaseOrder struct {
	ID              uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	Reference       string                   `gorm:"size:100;unique;not null" json:"reference"`
	SupplierID      uuid.UUID                `gorm:"type:uuid;not null;index" json:"supplier_id"`
	UserID          uuid.UUID                `gorm:"type:uuid;not null;index" json:"user_id"`
	Status          enum.PurchaseOrderStatus `gorm:"default:0" json:"status"`
	PaymentProgress enum.PaymentProgress     `gorm:"default:0" json:"payment_progress"`
	SubTotal        decimal.Decimal          `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	TaxTotal        decimal.Decimal          `gorm:"type:decimal(15,2);default:0" json:"tax_total"`
	Total           decimal.Decimal          `gorm:"type:decimal(15,2);default:0" json:"total"`
	Paid            decimal.Decimal          `gorm:"type:decimal(15,2);default:0" json:"paid"`
	Due             decimal.Decimal          `gorm:"type:decimal(15,2);default:0" json:"due"`
	OrderDate       time.Time                `gorm:"type:date;not null" json:"order_date"`
	ReceivedAt      *time.Time               `json:"received_at,omitempty"`
	Notes           *string                  `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
	DeletedAt       gorm.DeletedAt           `gorm:"index" json:"-"`

	// Relationships
	Supplier Supplier            `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	User     User                `gorm:"foreignKey:UserID" json:"-"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
	Taxes    []DocumentTax       `gorm:"-" json:"taxes,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase order
func (po *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrder model
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is a line on a purchase order with the negotiated
// buying price per unit
type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ArticleID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"article_id"`
	ArticleName     string          `gorm:"size:255;not null" json:"article_name"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_cost"`
	Quantity        int64           `gorm:"not null" json:"quantity"`
	Total           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	PurchaseOrder PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"-"`
	Article       Article       `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase order item
func (poi *PurchaseOrderItem) BeforeCreate(tx *gorm.DB) error {
	if poi.ID == uuid.Nil {
		poi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseOrderItem model
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
