package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CashEntryType classifies a cash register entry
type CashEntryType string

const (
	CashEntryIncome  CashEntryType = "income"
	CashEntryExpense CashEntryType = "expense"
)

// IsValid reports whether the type is one of the known values.
func (t CashEntryType) IsValid() bool {
	return t == CashEntryIncome || t == CashEntryExpense
}

func (t CashEntryType) String() string {
	return string(t)
}

func (t CashEntryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *CashEntryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = CashEntryType(str)
	return nil
}

func (t CashEntryType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *CashEntryType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = CashEntryType(v)
	case []byte:
		*t = CashEntryType(string(v))
	}
	return nil
}

// BankTransactionType classifies a bank ledger entry
type BankTransactionType string

const (
	BankTransactionPayment    BankTransactionType = "payment"
	BankTransactionDeposit    BankTransactionType = "deposit"
	BankTransactionWithdrawal BankTransactionType = "withdrawal"
)

// IsValid reports whether the type is one of the known values.
func (t BankTransactionType) IsValid() bool {
	switch t {
	case BankTransactionPayment, BankTransactionDeposit, BankTransactionWithdrawal:
		return true
	}
	return false
}

func (t BankTransactionType) String() string {
	return string(t)
}

func (t BankTransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *BankTransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = BankTransactionType(str)
	return nil
}

func (t BankTransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *BankTransactionType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = BankTransactionType(v)
	case []byte:
		*t = BankTransactionType(string(v))
	}
	return nil
}
