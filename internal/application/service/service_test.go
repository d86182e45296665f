package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	gormrepo "github.com/mbayedev/partstore-api/internal/infrastructure/repository"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.Category{},
		&entity.Article{},
		&entity.Client{},
		&entity.Supplier{},
		&entity.Ticket{},
		&entity.TicketItem{},
		&entity.Quote{},
		&entity.QuoteItem{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.PurchaseOrder{},
		&entity.PurchaseOrderItem{},
		&entity.Payment{},
		&entity.Bank{},
		&entity.BankTransaction{},
		&entity.CashEntry{},
		&entity.Tax{},
		&entity.DocumentTax{},
		&entity.CompanySettings{},
		&entity.Sequence{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *entity.User {
	user := &entity.User{
		FirstName: "Awa",
		LastName:  "Ndiaye",
		Email:     fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		Password:  "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedClient(t *testing.T, db *gorm.DB) *entity.Client {
	client := &entity.Client{Name: "Garage Toure"}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func seedSupplier(t *testing.T, db *gorm.DB) *entity.Supplier {
	supplier := &entity.Supplier{Name: "Pieces Auto SARL"}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return supplier
}

func seedArticle(t *testing.T, db *gorm.DB, name string, quantity int64, sellingPrice int64) *entity.Article {
	article := &entity.Article{
		Name:         name,
		Barcode:      uuid.New().String(),
		BuyingPrice:  decimal.NewFromInt(sellingPrice / 2),
		SellingPrice: decimal.NewFromInt(sellingPrice),
		Quantity:     quantity,
	}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("seed article: %v", err)
	}
	return article
}

func seedTax(t *testing.T, db *gorm.DB, name string, taxType enum.TaxType, rate float64, active bool) *entity.Tax {
	tax := &entity.Tax{
		Name:     name,
		Type:     taxType,
		Rate:     decimal.NewFromFloat(rate),
		IsActive: active,
	}
	if err := db.Create(tax).Error; err != nil {
		t.Fatalf("seed tax: %v", err)
	}
	return tax
}

func seedBank(t *testing.T, db *gorm.DB, balance int64) *entity.Bank {
	bank := &entity.Bank{
		Name:     "CBAO",
		Balance:  decimal.NewFromInt(balance),
		IsActive: true,
	}
	if err := db.Create(bank).Error; err != nil {
		t.Fatalf("seed bank: %v", err)
	}
	return bank
}

func articleQuantity(t *testing.T, db *gorm.DB, id uuid.UUID) int64 {
	var article entity.Article
	if err := db.First(&article, "id = ?", id).Error; err != nil {
		t.Fatalf("reload article: %v", err)
	}
	return article.Quantity
}

func newTicketService(db *gorm.DB) *TicketService {
	return NewTicketService(
		gormrepo.NewTicketRepository(db),
		gormrepo.NewInvoiceRepository(db),
		gormrepo.NewArticleRepository(db),
		gormrepo.NewTaxRepository(db),
		gormrepo.NewClientRepository(db),
		gormrepo.NewSequenceRepository(db),
	)
}

func newQuoteService(db *gorm.DB) *QuoteService {
	return NewQuoteService(
		gormrepo.NewQuoteRepository(db),
		gormrepo.NewTicketRepository(db),
		gormrepo.NewInvoiceRepository(db),
		gormrepo.NewArticleRepository(db),
		gormrepo.NewTaxRepository(db),
		gormrepo.NewClientRepository(db),
		gormrepo.NewSequenceRepository(db),
	)
}

func newPaymentService(db *gorm.DB) *PaymentService {
	return NewPaymentService(
		gormrepo.NewPaymentRepository(db),
		gormrepo.NewTicketRepository(db),
		gormrepo.NewInvoiceRepository(db),
		gormrepo.NewPurchaseOrderRepository(db),
		gormrepo.NewBankRepository(db),
	)
}

func newPurchaseOrderService(db *gorm.DB) *PurchaseOrderService {
	return NewPurchaseOrderService(
		gormrepo.NewPurchaseOrderRepository(db),
		gormrepo.NewArticleRepository(db),
		gormrepo.NewTaxRepository(db),
		gormrepo.NewSupplierRepository(db),
		gormrepo.NewSequenceRepository(db),
	)
}
