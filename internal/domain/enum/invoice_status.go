package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusUnpaid  InvoiceStatus = 0
	InvoiceStatusPartial InvoiceStatus = 1
	InvoiceStatusPaid    InvoiceStatus = 2
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusUnpaid:  {InvoiceStatusPartial, InvoiceStatusPaid},
	InvoiceStatusPartial: {InvoiceStatusPaid},
}

// CanTransitionTo reports whether moving to next is a legal transition.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s InvoiceStatus) IsTerminal() bool {
	return len(invoiceTransitions[s]) == 0
}

func (s InvoiceStatus) String() string {
	return [...]string{"Unpaid", "Partial", "Paid"}[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Unpaid":
		*s = InvoiceStatusUnpaid
	case "Partial":
		*s = InvoiceStatusPartial
	case "Paid":
		*s = InvoiceStatusPaid
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
