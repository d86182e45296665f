package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QuoteStatus represents the status of a quote
type QuoteStatus int

const (
	QuoteStatusDraft     QuoteStatus = 0
	QuoteStatusSent      QuoteStatus = 1
	QuoteStatusConfirmed QuoteStatus = 2
	QuoteStatusRejected  QuoteStatus = 3
)

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft: {QuoteStatusSent, QuoteStatusConfirmed, QuoteStatusRejected},
	QuoteStatusSent:  {QuoteStatusConfirmed, QuoteStatusRejected},
}

// CanTransitionTo reports whether moving to next is a legal transition.
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s QuoteStatus) IsTerminal() bool {
	return len(quoteTransitions[s]) == 0
}

// IsEditable reports whether the quote contents may still be changed.
// Confirmed and rejected quotes are frozen.
func (s QuoteStatus) IsEditable() bool {
	return s == QuoteStatusDraft || s == QuoteStatusSent
}

func (s QuoteStatus) String() string {
	return [...]string{"Draft", "Sent", "Confirmed", "Rejected"}[s]
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = QuoteStatusDraft
	case "Sent":
		*s = QuoteStatusSent
	case "Confirmed":
		*s = QuoteStatusConfirmed
	case "Rejected":
		*s = QuoteStatusRejected
	}
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
