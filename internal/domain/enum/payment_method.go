package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a payment was settled
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// IsValid reports whether the method is one of the known values.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodBankTransfer:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	}
	return nil
}

// DocumentKind identifies which document a payment settles
type DocumentKind string

const (
	DocumentKindTicket        DocumentKind = "ticket"
	DocumentKindQuote         DocumentKind = "quote"
	DocumentKindInvoice       DocumentKind = "invoice"
	DocumentKindPurchaseOrder DocumentKind = "purchase_order"
)

// IsValid reports whether the kind is one of the known values.
func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentKindTicket, DocumentKindQuote, DocumentKindInvoice, DocumentKindPurchaseOrder:
		return true
	}
	return false
}

// AcceptsPayments reports whether payments may be recorded against the
// kind. Quotes are never paid directly.
func (k DocumentKind) AcceptsPayments() bool {
	return k == DocumentKindTicket || k == DocumentKindInvoice || k == DocumentKindPurchaseOrder
}

func (k DocumentKind) String() string {
	return string(k)
}

func (k DocumentKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *DocumentKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*k = DocumentKind(v)
	case []byte:
		*k = DocumentKind(string(v))
	}
	return nil
}
