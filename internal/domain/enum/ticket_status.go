package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TicketStatus represents the status of a point-of-sale ticket
type TicketStatus int

const (
	TicketStatusPending   TicketStatus = 0
	TicketStatusPartial   TicketStatus = 1
	TicketStatusPaid      TicketStatus = 2
	TicketStatusCancelled TicketStatus = 3
)

// ticketTransitions is the authoritative transition table. Status writes go
// through CanTransitionTo; nothing mutates ticket status ad hoc.
var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusPending: {TicketStatusPartial, TicketStatusPaid, TicketStatusCancelled},
	TicketStatusPartial: {TicketStatusPaid},
}

// CanTransitionTo reports whether moving to next is a legal transition.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s TicketStatus) IsTerminal() bool {
	return len(ticketTransitions[s]) == 0
}

func (s TicketStatus) String() string {
	return [...]string{"Pending", "Partial", "Paid", "Cancelled"}[s]
}

func (s TicketStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TicketStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TicketStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = TicketStatusPending
	case "Partial":
		*s = TicketStatusPartial
	case "Paid":
		*s = TicketStatusPaid
	case "Cancelled":
		*s = TicketStatusCancelled
	}
	return nil
}

func (s TicketStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TicketStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TicketStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TicketStatus(v)
	case int:
		*s = TicketStatus(v)
	}
	return nil
}
