package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups articles for browsing and reporting
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;unique;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Articles []Article `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Article represents a sellable auto part in stock
type Article struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Barcode       string          `gorm:"size:100;unique;not null" json:"barcode"`
	Reference     *string         `gorm:"size:100" json:"reference,omitempty"`
	BuyingPrice   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"buying_price"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"selling_price"`
	Quantity      int64           `gorm:"default:0" json:"quantity"`
	AlertQuantity int64           `gorm:"default:0" json:"alert_quantity"`
	Unit          *string         `gorm:"size:50" json:"unit,omitempty"`
	Image         *string         `gorm:"size:255" json:"image,omitempty"`
	Thumbnail     *string         `gorm:"size:255" json:"thumbnail,omitempty"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new article
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// IsLowStock reports whether the on-hand quantity reached the alert level
func (a *Article) IsLowStock() bool {
	return a.AlertQuantity > 0 && a.Quantity <= a.AlertQuantity
}
