package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DiscountType represents how a line discount is expressed
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid reports whether the type is one of the known values.
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

func (t DiscountType) String() string {
	return string(t)
}

func (t DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = DiscountType(str)
	return nil
}

func (t DiscountType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*t = DiscountTypePercentage
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = DiscountType(v)
	case []byte:
		*t = DiscountType(string(v))
	}
	return nil
}
