package enum

import "testing"

func TestTicketStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to TicketStatus
		want     bool
	}{
		{TicketStatusPending, TicketStatusPartial, true},
		{TicketStatusPending, TicketStatusPaid, true},
		{TicketStatusPending, TicketStatusCancelled, true},
		{TicketStatusPartial, TicketStatusPaid, true},
		{TicketStatusPartial, TicketStatusCancelled, false},
		{TicketStatusPaid, TicketStatusCancelled, false},
		{TicketStatusCancelled, TicketStatusPending, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%v -> %v: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
	if !TicketStatusPaid.IsTerminal() || !TicketStatusCancelled.IsTerminal() {
		t.Error("paid and cancelled must be terminal")
	}
}

func TestQuoteStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to QuoteStatus
		want     bool
	}{
		{QuoteStatusDraft, QuoteStatusSent, true},
		{QuoteStatusDraft, QuoteStatusConfirmed, true},
		{QuoteStatusSent, QuoteStatusRejected, true},
		{QuoteStatusConfirmed, QuoteStatusDraft, false},
		{QuoteStatusRejected, QuoteStatusSent, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%v -> %v: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
	if QuoteStatusConfirmed.IsEditable() {
		t.Error("confirmed quotes must not be editable")
	}
	if !QuoteStatusSent.IsEditable() {
		t.Error("sent quotes must stay editable")
	}
}

func TestPurchaseOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to PurchaseOrderStatus
		want     bool
	}{
		{PurchaseOrderStatusDraft, PurchaseOrderStatusValidated, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusReceived, false},
		{PurchaseOrderStatusValidated, PurchaseOrderStatusReceived, true},
		{PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusDraft, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%v -> %v: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestDocumentKindAcceptsPayments(t *testing.T) {
	if DocumentKindQuote.AcceptsPayments() {
		t.Error("quotes must not accept payments")
	}
	for _, kind := range []DocumentKind{DocumentKindTicket, DocumentKindInvoice, DocumentKindPurchaseOrder} {
		if !kind.AcceptsPayments() {
			t.Errorf("%s must accept payments", kind)
		}
	}
}
