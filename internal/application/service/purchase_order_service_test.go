package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

func TestCreatePurchaseOrderStaysDraft(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newPurchaseOrderService(db)
	user := seedUser(t, db)
	supplier := seedSupplier(t, db)
	article := seedArticle(t, db, "Gasket set", 5, 9000)

	order, err := svc.CreatePurchaseOrder(context.Background(), &PurchaseOrderInput{
		UserID:     user.ID,
		SupplierID: supplier.ID,
		Items:      []PurchaseOrderLineInput{{ArticleID: article.ID, Quantity: 10}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if !strings.HasPrefix(order.Reference, "PO-") {
		t.Fatalf("expected PO- reference, got %q", order.Reference)
	}
	if order.Status != enum.PurchaseOrderStatusDraft {
		t.Fatalf("expected draft status, got %v", order.Status)
	}
	// Without an explicit unit cost the article's buying price applies
	if !order.Total.Equal(decimal.NewFromInt(45000)) {
		t.Fatalf("expected total 45000, got %s", order.Total)
	}
	if got := articleQuantity(t, db, article.ID); got != 5 {
		t.Fatalf("stock must not move before reception, got %d", got)
	}
}

func TestReceivePurchaseOrderRestocks(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newPurchaseOrderService(db)
	user := seedUser(t, db)
	supplier := seedSupplier(t, db)
	article := seedArticle(t, db, "Brake disc", 5, 12000)

	cost := decimal.NewFromInt(7000)
	order, err := svc.CreatePurchaseOrder(context.Background(), &PurchaseOrderInput{
		UserID:     user.ID,
		SupplierID: supplier.ID,
		Items:      []PurchaseOrderLineInput{{ArticleID: article.ID, Quantity: 10, UnitCost: &cost}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := svc.ValidatePurchaseOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("validate order: %v", err)
	}

	received, err := svc.ReceivePurchaseOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("receive order: %v", err)
	}
	if received.Status != enum.PurchaseOrderStatusReceived {
		t.Fatalf("expected received status, got %v", received.Status)
	}
	if received.ReceivedAt == nil {
		t.Fatal("expected received timestamp")
	}
	if got := articleQuantity(t, db, article.ID); got != 15 {
		t.Fatalf("expected stock 15 after reception, got %d", got)
	}

	// Reception updates the article's buying price to the actual cost
	var reloaded entity.Article
	if err := db.First(&reloaded, "id = ?", article.ID).Error; err != nil {
		t.Fatalf("reload article: %v", err)
	}
	if !reloaded.BuyingPrice.Equal(cost) {
		t.Fatalf("expected buying price %s, got %s", cost, reloaded.BuyingPrice)
	}
}

func TestReceiveDraftOrderRejected(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newPurchaseOrderService(db)
	user := seedUser(t, db)
	supplier := seedSupplier(t, db)
	article := seedArticle(t, db, "Exhaust pipe", 3, 15000)

	order, err := svc.CreatePurchaseOrder(context.Background(), &PurchaseOrderInput{
		UserID:     user.ID,
		SupplierID: supplier.ID,
		Items:      []PurchaseOrderLineInput{{ArticleID: article.ID, Quantity: 5}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := svc.ReceivePurchaseOrder(context.Background(), order.ID); err == nil {
		t.Fatal("expected error receiving a draft order")
	}
	if got := articleQuantity(t, db, article.ID); got != 3 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
}

func TestCancelledOrderCannotBeReceived(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newPurchaseOrderService(db)
	user := seedUser(t, db)
	supplier := seedSupplier(t, db)
	article := seedArticle(t, db, "Starter motor", 4, 55000)

	order, err := svc.CreatePurchaseOrder(context.Background(), &PurchaseOrderInput{
		UserID:     user.ID,
		SupplierID: supplier.ID,
		Items:      []PurchaseOrderLineInput{{ArticleID: article.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := svc.CancelPurchaseOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("cancel order: %v", err)
	}

	if _, err := svc.ReceivePurchaseOrder(context.Background(), order.ID); err == nil {
		t.Fatal("expected error receiving a cancelled order")
	}
}

func TestUpdateLockedOrderRejected(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newPurchaseOrderService(db)
	user := seedUser(t, db)
	supplier := seedSupplier(t, db)
	article := seedArticle(t, db, "Turbocharger", 2, 150000)

	order, err := svc.CreatePurchaseOrder(context.Background(), &PurchaseOrderInput{
		UserID:     user.ID,
		SupplierID: supplier.ID,
		Items:      []PurchaseOrderLineInput{{ArticleID: article.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := svc.ValidatePurchaseOrder(context.Background(), order.ID); err != nil {
		t.Fatalf("validate order: %v", err)
	}

	_, err = svc.UpdatePurchaseOrder(context.Background(), order.ID, &PurchaseOrderInput{
		UserID:     user.ID,
		SupplierID: supplier.ID,
		Items:      []PurchaseOrderLineInput{{ArticleID: article.ID, Quantity: 3}},
	})
	if err == nil {
		t.Fatal("expected error editing a validated order")
	}
}
