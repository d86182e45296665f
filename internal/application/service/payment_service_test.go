package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

func TestPartialThenFullPayment(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ticketSvc := newTicketService(db)
	paymentSvc := newPaymentService(db)
	user := seedUser(t, db)
	article := seedArticle(t, db, "Battery", 10, 1000)

	ticket, err := ticketSvc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID: user.ID,
		Items:  []LineItemInput{{ArticleID: article.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	_, err = paymentSvc.RecordPayment(context.Background(), &RecordPaymentInput{
		DocumentKind: enum.DocumentKindTicket,
		DocumentID:   ticket.ID,
		UserID:       user.ID,
		Method:       enum.PaymentMethodCash,
		Amount:       decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("record partial payment: %v", err)
	}

	reloaded, err := ticketSvc.GetTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if reloaded.Status != enum.TicketStatusPartial {
		t.Fatalf("expected partial status, got %v", reloaded.Status)
	}
	if !reloaded.Due.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected due 2000, got %s", reloaded.Due)
	}

	_, err = paymentSvc.RecordPayment(context.Background(), &RecordPaymentInput{
		DocumentKind: enum.DocumentKindTicket,
		DocumentID:   ticket.ID,
		UserID:       user.ID,
		Method:       enum.PaymentMethodCash,
		Amount:       decimal.NewFromInt(2000),
	})
	if err != nil {
		t.Fatalf("record final payment: %v", err)
	}

	reloaded, err = ticketSvc.GetTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if reloaded.Status != enum.TicketStatusPaid {
		t.Fatalf("expected paid status, got %v", reloaded.Status)
	}
	if !reloaded.Due.IsZero() {
		t.Fatalf("expected zero due, got %s", reloaded.Due)
	}

	// Every cash payment writes a register entry
	var entries int64
	if err := db.Model(&entity.CashEntry{}).Count(&entries).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if entries != 2 {
		t.Fatalf("expected 2 cash entries, got %d", entries)
	}

	// A settled document takes no further payments
	_, err = paymentSvc.RecordPayment(context.Background(), &RecordPaymentInput{
		DocumentKind: enum.DocumentKindTicket,
		DocumentID:   ticket.ID,
		UserID:       user.ID,
		Method:       enum.PaymentMethodCash,
		Amount:       decimal.NewFromInt(100),
	})
	if err == nil {
		t.Fatal("expected error paying a settled ticket")
	}
}

func TestOverpaymentRejected(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ticketSvc := newTicketService(db)
	paymentSvc := newPaymentService(db)
	user := seedUser(t, db)
	article := seedArticle(t, db, "Wiper blade", 10, 1500)

	ticket, err := ticketSvc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID: user.ID,
		Items:  []LineItemInput{{ArticleID: article.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	_, err = paymentSvc.RecordPayment(context.Background(), &RecordPaymentInput{
		DocumentKind: enum.DocumentKindTicket,
		DocumentID:   ticket.ID,
		UserID:       user.ID,
		Method:       enum.PaymentMethodCash,
		Amount:       decimal.NewFromInt(5000),
	})
	if err == nil {
		t.Fatal("expected overpayment to be rejected")
	}

	// Nothing may hit the ledger on a rejected payment
	var payments int64
	if err := db.Model(&entity.Payment{}).Count(&payments).Error; err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if payments != 0 {
		t.Fatalf("expected no payments, got %d", payments)
	}
}

func TestQuotePaymentsRejected(t *testing.T) {
	db := setupTestDB(t, t.Name())
	paymentSvc := newPaymentService(db)
	user := seedUser(t, db)

	_, err := paymentSvc.RecordPayment(context.Background(), &RecordPaymentInput{
		DocumentKind: enum.DocumentKindQuote,
		DocumentID:   uuid.New(),
		UserID:       user.ID,
		Method:       enum.PaymentMethodCash,
		Amount:       decimal.NewFromInt(100),
	})
	if err == nil {
		t.Fatal("expected quote payments to be rejected")
	}
}

func TestCheckPaymentRequiresBank(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ticketSvc := newTicketService(db)
	paymentSvc := newPaymentService(db)
	user := seedUser(t, db)
	article := seedArticle(t, db, "Headlight", 10, 20000)

	ticket, err := ticketSvc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID: user.ID,
		Items:  []LineItemInput{{ArticleID: article.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	_, err = paymentSvc.RecordPayment(context.Background(), &RecordPaymentInput{
		DocumentKind: enum.DocumentKindTicket,
		DocumentID:   ticket.ID,
		UserID:       user.ID,
		Method:       enum.PaymentMethodCheck,
		Amount:       decimal.NewFromInt(20000),
	})
	if err == nil {
		t.Fatal("expected error for check payment without bank")
	}

	bank := seedBank(t, db, 0)
	_, err = paymentSvc.RecordPayment(context.Background(), &RecordPaymentInput{
		DocumentKind: enum.DocumentKindTicket,
		DocumentID:   ticket.ID,
		UserID:       user.ID,
		Method:       enum.PaymentMethodCheck,
		Amount:       decimal.NewFromInt(20000),
		BankID:       &bank.ID,
	})
	if err != nil {
		t.Fatalf("record check payment: %v", err)
	}

	var reloaded entity.Bank
	if err := db.First(&reloaded, "id = ?", bank.ID).Error; err != nil {
		t.Fatalf("reload bank: %v", err)
	}
	if !reloaded.Balance.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("expected bank balance 20000, got %s", reloaded.Balance)
	}

	// Payment-linked bank entries carry type payment in both directions;
	// deposit and withdrawal are for manual entries only
	var txn entity.BankTransaction
	if err := db.First(&txn, "bank_id = ?", bank.ID).Error; err != nil {
		t.Fatalf("load bank transaction: %v", err)
	}
	if txn.Type != enum.BankTransactionPayment {
		t.Fatalf("expected payment transaction, got %v", txn.Type)
	}
	if txn.PaymentID == nil {
		t.Fatal("expected transaction to reference its payment")
	}
}

func TestPurchaseOrderPaymentFlowsOut(t *testing.T) {
	db := setupTestDB(t, t.Name())
	orderSvc := newPurchaseOrderService(db)
	paymentSvc := newPaymentService(db)
	user := seedUser(t, db)
	supplier := seedSupplier(t, db)
	article := seedArticle(t, db, "Fuel pump", 2, 40000)

	cost := decimal.NewFromInt(25000)
	order, err := orderSvc.CreatePurchaseOrder(context.Background(), &PurchaseOrderInput{
		UserID:     user.ID,
		SupplierID: supplier.ID,
		Items:      []PurchaseOrderLineInput{{ArticleID: article.ID, Quantity: 2, UnitCost: &cost}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = paymentSvc.RecordPayment(context.Background(), &RecordPaymentInput{
		DocumentKind: enum.DocumentKindPurchaseOrder,
		DocumentID:   order.ID,
		UserID:       user.ID,
		Method:       enum.PaymentMethodCash,
		Amount:       decimal.NewFromInt(10000),
	})
	if err != nil {
		t.Fatalf("record supplier payment: %v", err)
	}

	reloaded, err := orderSvc.GetPurchaseOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.PaymentProgress != enum.PaymentProgressPartial {
		t.Fatalf("expected partial progress, got %v", reloaded.PaymentProgress)
	}
	if !reloaded.Due.Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("expected due 40000, got %s", reloaded.Due)
	}

	// Supplier payments are cash register expenses
	var entry entity.CashEntry
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("load cash entry: %v", err)
	}
	if entry.Type != enum.CashEntryExpense {
		t.Fatalf("expected expense entry, got %v", entry.Type)
	}
}
