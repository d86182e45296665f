package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaxType represents how a tax amount is derived from the subtotal
type TaxType string

const (
	TaxTypePercentage TaxType = "percentage"
	TaxTypeFixed      TaxType = "fixed"
)

// IsValid reports whether the type is one of the known values. Unknown tax
// types are a configuration error, never silently defaulted.
func (t TaxType) IsValid() bool {
	return t == TaxTypePercentage || t == TaxTypeFixed
}

func (t TaxType) String() string {
	return string(t)
}

func (t TaxType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *TaxType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = TaxType(str)
	return nil
}

func (t TaxType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *TaxType) Scan(value interface{}) error {
	if value == nil {
		*t = TaxTypePercentage
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = TaxType(v)
	case []byte:
		*t = TaxType(string(v))
	}
	return nil
}
