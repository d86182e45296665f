package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PurchaseOrderStatus represents the lifecycle state of a supplier order
type PurchaseOrderStatus int

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = 0
	PurchaseOrderStatusValidated PurchaseOrderStatus = 1
	PurchaseOrderStatusReceived  PurchaseOrderStatus = 2
	PurchaseOrderStatusCancelled PurchaseOrderStatus = 3
)

var purchaseOrderTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchaseOrderStatusDraft:     {PurchaseOrderStatusValidated, PurchaseOrderStatusCancelled},
	PurchaseOrderStatusValidated: {PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled},
}

// CanTransitionTo reports whether moving to next is a legal transition.
func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	for _, allowed := range purchaseOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s PurchaseOrderStatus) IsTerminal() bool {
	return len(purchaseOrderTransitions[s]) == 0
}

func (s PurchaseOrderStatus) String() string {
	return [...]string{"Draft", "Validated", "Received", "Cancelled"}[s]
}

func (s PurchaseOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PurchaseOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PurchaseOrderStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = PurchaseOrderStatusDraft
	case "Validated":
		*s = PurchaseOrderStatusValidated
	case "Received":
		*s = PurchaseOrderStatusReceived
	case "Cancelled":
		*s = PurchaseOrderStatusCancelled
	}
	return nil
}

func (s PurchaseOrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PurchaseOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PurchaseOrderStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PurchaseOrderStatus(v)
	case int:
		*s = PurchaseOrderStatus(v)
	}
	return nil
}

// PaymentProgress tracks how much of a purchase order has been paid,
// independently of the reception lifecycle.
type PaymentProgress int

const (
	PaymentProgressPending PaymentProgress = 0
	PaymentProgressPartial PaymentProgress = 1
	PaymentProgressPaid    PaymentProgress = 2
)

func (s PaymentProgress) String() string {
	return [...]string{"Pending", "Partial", "Paid"}[s]
}

func (s PaymentProgress) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentProgress) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentProgress(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = PaymentProgressPending
	case "Partial":
		*s = PaymentProgressPartial
	case "Paid":
		*s = PaymentProgressPaid
	}
	return nil
}

func (s PaymentProgress) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentProgress) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentProgressPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentProgress(v)
	case int:
		*s = PaymentProgress(v)
	}
	return nil
}
