package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

func TestCreateTicketDecrementsStock(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newTicketService(db)
	user := seedUser(t, db)
	article := seedArticle(t, db, "Brake pad", 10, 1000)

	ticket, err := svc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID: user.ID,
		Items:  []LineItemInput{{ArticleID: article.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	if !strings.HasPrefix(ticket.Reference, "TKT-") {
		t.Fatalf("expected TKT- reference, got %q", ticket.Reference)
	}
	if ticket.Status != enum.TicketStatusPending {
		t.Fatalf("expected pending status, got %v", ticket.Status)
	}
	if !ticket.Total.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("expected total 3000, got %s", ticket.Total)
	}
	if !ticket.Due.Equal(ticket.Total) {
		t.Fatalf("expected due == total, got due %s total %s", ticket.Due, ticket.Total)
	}
	if got := articleQuantity(t, db, article.ID); got != 7 {
		t.Fatalf("expected stock 7, got %d", got)
	}
}

func TestCreateTicketInsufficientStock(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newTicketService(db)
	user := seedUser(t, db)
	article := seedArticle(t, db, "Oil filter", 2, 500)

	_, err := svc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID: user.ID,
		Items:  []LineItemInput{{ArticleID: article.ID, Quantity: 5}},
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	if got := articleQuantity(t, db, article.ID); got != 2 {
		t.Fatalf("stock must be untouched on failure, got %d", got)
	}
}

func TestCancelTicketRestoresStock(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newTicketService(db)
	user := seedUser(t, db)
	article := seedArticle(t, db, "Spark plug", 10, 800)

	ticket, err := svc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID: user.ID,
		Items:  []LineItemInput{{ArticleID: article.ID, Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	cancelled, err := svc.CancelTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("cancel ticket: %v", err)
	}
	if cancelled.Status != enum.TicketStatusCancelled {
		t.Fatalf("expected cancelled status, got %v", cancelled.Status)
	}
	if got := articleQuantity(t, db, article.ID); got != 10 {
		t.Fatalf("expected stock restored to 10, got %d", got)
	}

	// Cancelling twice is not a legal transition
	if _, err := svc.CancelTicket(context.Background(), ticket.ID); err == nil {
		t.Fatal("expected error on double cancel")
	}
}

func TestCreateTicketRejectsInactiveTax(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newTicketService(db)
	user := seedUser(t, db)
	article := seedArticle(t, db, "Wiper blade", 10, 1000)
	tax := seedTax(t, db, "TVA", enum.TaxTypePercentage, 18, false)

	_, err := svc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID: user.ID,
		Items:  []LineItemInput{{ArticleID: article.ID, Quantity: 1}},
		TaxIDs: []uuid.UUID{tax.ID},
	})
	if err == nil {
		t.Fatal("expected error pricing with an inactive tax")
	}
	if got := articleQuantity(t, db, article.ID); got != 10 {
		t.Fatalf("stock must be untouched on failure, got %d", got)
	}
}

func TestTicketTotalsSumAfterRounding(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newTicketService(db)
	user := seedUser(t, db)
	article := seedArticle(t, db, "Fuse", 10, 1)
	tax := seedTax(t, db, "Eco levy", enum.TaxTypeFixed, 0.4, true)

	unitPrice := decimal.NewFromFloat(10.4)
	ticket, err := svc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID: user.ID,
		Items:  []LineItemInput{{ArticleID: article.ID, Quantity: 1, UnitPrice: &unitPrice}},
		TaxIDs: []uuid.UUID{tax.ID},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	// 10.4 rounds to 10 and 0.4 rounds to 0; the stored total is the sum
	// of the stored components, never a separately rounded 10.8
	if !ticket.SubTotal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected subtotal 10, got %s", ticket.SubTotal)
	}
	if !ticket.TaxTotal.Equal(decimal.Zero) {
		t.Fatalf("expected tax total 0, got %s", ticket.TaxTotal)
	}
	if !ticket.Total.Equal(ticket.SubTotal.Add(ticket.TaxTotal)) {
		t.Fatalf("stored components must sum to total: %s + %s != %s",
			ticket.SubTotal, ticket.TaxTotal, ticket.Total)
	}
}

func TestTransferToInvoiceRequiresClient(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newTicketService(db)
	user := seedUser(t, db)
	article := seedArticle(t, db, "Air filter", 10, 1200)

	ticket, err := svc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID: user.ID,
		Items:  []LineItemInput{{ArticleID: article.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	if _, err := svc.TransferToInvoice(context.Background(), ticket.ID); err == nil {
		t.Fatal("expected error for anonymous ticket")
	}
}

func TestTransferToInvoice(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newTicketService(db)
	user := seedUser(t, db)
	client := seedClient(t, db)
	article := seedArticle(t, db, "Timing belt", 10, 5000)

	ticket, err := svc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID:   user.ID,
		ClientID: &client.ID,
		Items:    []LineItemInput{{ArticleID: article.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	invoice, err := svc.TransferToInvoice(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !strings.HasPrefix(invoice.Reference, "INV-") {
		t.Fatalf("expected INV- reference, got %q", invoice.Reference)
	}
	if !invoice.Total.Equal(ticket.Total) {
		t.Fatalf("expected invoice total %s, got %s", ticket.Total, invoice.Total)
	}
	// Stock already moved at ticket creation, the transfer must not move it
	if got := articleQuantity(t, db, article.ID); got != 8 {
		t.Fatalf("expected stock 8, got %d", got)
	}

	// A ticket transfers once
	if _, err := svc.TransferToInvoice(context.Background(), ticket.ID); err == nil {
		t.Fatal("expected error on second transfer")
	}

	transferred, err := svc.GetTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if transferred.InvoiceID == nil || *transferred.InvoiceID != invoice.ID {
		t.Fatal("expected ticket to point at its invoice")
	}
}
