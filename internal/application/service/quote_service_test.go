package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

func TestCreateQuoteDoesNotMoveStock(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newQuoteService(db)
	user := seedUser(t, db)
	client := seedClient(t, db)
	article := seedArticle(t, db, "Clutch kit", 5, 30000)

	quote, err := svc.CreateQuote(context.Background(), &QuoteInput{
		UserID:   user.ID,
		ClientID: client.ID,
		Items:    []LineItemInput{{ArticleID: article.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	if !strings.HasPrefix(quote.Reference, "QT-") {
		t.Fatalf("expected QT- reference, got %q", quote.Reference)
	}
	if quote.Status != enum.QuoteStatusDraft {
		t.Fatalf("expected draft status, got %v", quote.Status)
	}
	if got := articleQuantity(t, db, article.ID); got != 5 {
		t.Fatalf("quotes must not move stock, got %d", got)
	}
}

func TestDraftQuoteTransferConfirmsQuote(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newQuoteService(db)
	user := seedUser(t, db)
	client := seedClient(t, db)
	article := seedArticle(t, db, "Radiator", 5, 45000)

	quote, err := svc.CreateQuote(context.Background(), &QuoteInput{
		UserID:   user.ID,
		ClientID: client.ID,
		Items:    []LineItemInput{{ArticleID: article.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	// A draft quote transfers directly; the transfer confirms it
	invoice, err := svc.TransferToInvoice(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("transfer draft quote: %v", err)
	}
	if !invoice.Total.Equal(quote.Total) {
		t.Fatalf("expected invoice total %s, got %s", quote.Total, invoice.Total)
	}

	reloaded, err := svc.GetQuote(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if reloaded.Status != enum.QuoteStatusConfirmed {
		t.Fatalf("expected confirmed after transfer, got %v", reloaded.Status)
	}
	if reloaded.InvoiceID == nil || *reloaded.InvoiceID != invoice.ID {
		t.Fatal("expected quote to point at its invoice")
	}

	// An invoiced quote never transfers again
	if _, err := svc.TransferToInvoice(context.Background(), quote.ID); err == nil {
		t.Fatal("expected error on second transfer")
	}
}

func TestRejectedQuoteCannotTransfer(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newQuoteService(db)
	user := seedUser(t, db)
	client := seedClient(t, db)
	article := seedArticle(t, db, "Fuel pump", 5, 35000)

	quote, err := svc.CreateQuote(context.Background(), &QuoteInput{
		UserID:   user.ID,
		ClientID: client.ID,
		Items:    []LineItemInput{{ArticleID: article.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	if _, err := svc.UpdateQuoteStatus(context.Background(), quote.ID, enum.QuoteStatusRejected); err != nil {
		t.Fatalf("reject quote: %v", err)
	}

	if _, err := svc.TransferToTicket(context.Background(), quote.ID); err == nil {
		t.Fatal("expected error transferring a rejected quote")
	}
	if got := articleQuantity(t, db, article.ID); got != 5 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
}

func TestQuoteTransferToTicketMovesStock(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newQuoteService(db)
	user := seedUser(t, db)
	client := seedClient(t, db)
	article := seedArticle(t, db, "Alternator", 6, 60000)

	quote, err := svc.CreateQuote(context.Background(), &QuoteInput{
		UserID:   user.ID,
		ClientID: client.ID,
		Items:    []LineItemInput{{ArticleID: article.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	if _, err := svc.UpdateQuoteStatus(context.Background(), quote.ID, enum.QuoteStatusConfirmed); err != nil {
		t.Fatalf("confirm quote: %v", err)
	}

	ticket, err := svc.TransferToTicket(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !ticket.Total.Equal(quote.Total) {
		t.Fatalf("expected ticket total %s, got %s", quote.Total, ticket.Total)
	}
	if got := articleQuantity(t, db, article.ID); got != 4 {
		t.Fatalf("expected stock 4 after transfer, got %d", got)
	}

	// A quote transfers once
	if _, err := svc.TransferToTicket(context.Background(), quote.ID); err == nil {
		t.Fatal("expected error on second transfer")
	}

	reloaded, err := svc.GetQuote(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if reloaded.TicketID == nil || *reloaded.TicketID != ticket.ID {
		t.Fatal("expected quote to point at its ticket")
	}
}

func TestExpiredQuoteCannotTransfer(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newQuoteService(db)
	user := seedUser(t, db)
	client := seedClient(t, db)
	article := seedArticle(t, db, "Water pump", 5, 25000)

	yesterday := time.Now().AddDate(0, 0, -1)
	quote, err := svc.CreateQuote(context.Background(), &QuoteInput{
		UserID:     user.ID,
		ClientID:   client.ID,
		Items:      []LineItemInput{{ArticleID: article.ID, Quantity: 1}},
		ValidUntil: &yesterday,
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	if _, err := svc.UpdateQuoteStatus(context.Background(), quote.ID, enum.QuoteStatusConfirmed); err != nil {
		t.Fatalf("confirm quote: %v", err)
	}

	if _, err := svc.TransferToInvoice(context.Background(), quote.ID); err == nil {
		t.Fatal("expected error transferring an expired quote")
	}
	if got := articleQuantity(t, db, article.ID); got != 5 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
}

func TestConfirmedQuoteIsFrozen(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := newQuoteService(db)
	user := seedUser(t, db)
	client := seedClient(t, db)
	article := seedArticle(t, db, "Shock absorber", 8, 18000)

	quote, err := svc.CreateQuote(context.Background(), &QuoteInput{
		UserID:   user.ID,
		ClientID: client.ID,
		Items:    []LineItemInput{{ArticleID: article.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	if _, err := svc.UpdateQuoteStatus(context.Background(), quote.ID, enum.QuoteStatusConfirmed); err != nil {
		t.Fatalf("confirm quote: %v", err)
	}

	_, err = svc.UpdateQuote(context.Background(), quote.ID, &QuoteInput{
		UserID:   user.ID,
		ClientID: client.ID,
		Items:    []LineItemInput{{ArticleID: article.ID, Quantity: 5}},
	})
	if err == nil {
		t.Fatal("expected error editing a confirmed quote")
	}
}
