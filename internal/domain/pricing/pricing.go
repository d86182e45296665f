package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

// Line is a single sellable row of a document before taxes.
type Line struct {
	UnitPrice     decimal.Decimal
	Quantity      int64
	DiscountType  enum.DiscountType
	DiscountValue decimal.Decimal
}

// TaxLine is one applied tax with its computed amount.
type TaxLine struct {
	TaxID  string
	Name   string
	Type   enum.TaxType
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// Tax is a configured tax to apply on a document subtotal.
type Tax struct {
	ID   string
	Name string
	Type enum.TaxType
	Rate decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Gross returns unit price times quantity before any discount.
func (l Line) Gross() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Discount returns the discount amount for the line. Percentage values are
// clamped to [0, 100] and fixed values to [0, gross], so a line total can
// never go negative.
func (l Line) Discount() decimal.Decimal {
	gross := l.Gross()
	switch l.DiscountType {
	case enum.DiscountTypePercentage:
		pct := l.DiscountValue
		if pct.IsNegative() {
			pct = decimal.Zero
		}
		if pct.GreaterThan(hundred) {
			pct = hundred
		}
		return gross.Mul(pct).Div(hundred)
	case enum.DiscountTypeFixed:
		fixed := l.DiscountValue
		if fixed.IsNegative() {
			fixed = decimal.Zero
		}
		if fixed.GreaterThan(gross) {
			fixed = gross
		}
		return fixed
	}
	return decimal.Zero
}

// Total returns the line amount after discount.
func (l Line) Total() decimal.Decimal {
	return l.Gross().Sub(l.Discount())
}

// Subtotal sums the discounted line totals.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// DiscountTotal sums the per-line discounts.
func DiscountTotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Discount())
	}
	return sum
}

// TaxLines computes every tax against the same subtotal. Taxes never
// compound on each other. An unknown tax type is a configuration error.
func TaxLines(subtotal decimal.Decimal, taxes []Tax) ([]TaxLine, error) {
	result := make([]TaxLine, 0, len(taxes))
	for _, t := range taxes {
		var amount decimal.Decimal
		switch t.Type {
		case enum.TaxTypePercentage:
			amount = subtotal.Mul(t.Rate).Div(hundred)
		case enum.TaxTypeFixed:
			amount = t.Rate
		default:
			return nil, fmt.Errorf("tax %q has unknown type %q", t.Name, t.Type)
		}
		result = append(result, TaxLine{
			TaxID:  t.ID,
			Name:   t.Name,
			Type:   t.Type,
			Rate:   t.Rate,
			Amount: amount,
		})
	}
	return result, nil
}

// TaxTotal sums the computed tax amounts.
func TaxTotal(taxLines []TaxLine) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range taxLines {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// Total returns subtotal plus all taxes.
func Total(subtotal decimal.Decimal, taxLines []TaxLine) decimal.Decimal {
	return subtotal.Add(TaxTotal(taxLines))
}

// Round rounds a monetary amount half-up to whole currency units. Amounts
// are rounded once, when the document is persisted.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}
