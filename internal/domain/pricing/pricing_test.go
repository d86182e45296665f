package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/enum"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestLineTotalWithPercentageDiscount(t *testing.T) {
	line := Line{
		UnitPrice:     d("1000"),
		Quantity:      2,
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: d("10"),
	}

	if got := line.Total(); !got.Equal(d("1800")) {
		t.Fatalf("expected line total 1800, got %s", got)
	}
	if got := line.Discount(); !got.Equal(d("200")) {
		t.Fatalf("expected discount 200, got %s", got)
	}
}

func TestLineTotalWithFixedDiscount(t *testing.T) {
	line := Line{
		UnitPrice:     d("500"),
		Quantity:      3,
		DiscountType:  enum.DiscountTypeFixed,
		DiscountValue: d("150"),
	}

	if got := line.Total(); !got.Equal(d("1350")) {
		t.Fatalf("expected line total 1350, got %s", got)
	}
}

func TestDiscountClamping(t *testing.T) {
	over := Line{
		UnitPrice:     d("100"),
		Quantity:      1,
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: d("150"),
	}
	if got := over.Total(); !got.Equal(decimal.Zero) {
		t.Fatalf("percentage above 100 should clamp to zero total, got %s", got)
	}

	negative := Line{
		UnitPrice:     d("100"),
		Quantity:      1,
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: d("-5"),
	}
	if got := negative.Total(); !got.Equal(d("100")) {
		t.Fatalf("negative percentage should clamp to no discount, got %s", got)
	}

	fixedOver := Line{
		UnitPrice:     d("100"),
		Quantity:      1,
		DiscountType:  enum.DiscountTypeFixed,
		DiscountValue: d("250"),
	}
	if got := fixedOver.Total(); !got.Equal(decimal.Zero) {
		t.Fatalf("fixed discount above gross should clamp to zero total, got %s", got)
	}
}

func TestDocumentTotalsWithPercentageTax(t *testing.T) {
	lines := []Line{
		{
			UnitPrice:     d("1000"),
			Quantity:      2,
			DiscountType:  enum.DiscountTypePercentage,
			DiscountValue: d("10"),
		},
	}

	subtotal := Subtotal(lines)
	if !subtotal.Equal(d("1800")) {
		t.Fatalf("expected subtotal 1800, got %s", subtotal)
	}

	taxLines, err := TaxLines(subtotal, []Tax{
		{Name: "VAT", Type: enum.TaxTypePercentage, Rate: d("18")},
	})
	if err != nil {
		t.Fatalf("failed to compute taxes: %v", err)
	}
	if !taxLines[0].Amount.Equal(d("324")) {
		t.Fatalf("expected tax 324, got %s", taxLines[0].Amount)
	}

	total := Total(subtotal, taxLines)
	if !total.Equal(d("2124")) {
		t.Fatalf("expected total 2124, got %s", total)
	}
}

func TestTaxesDoNotCompound(t *testing.T) {
	subtotal := d("1000")
	taxLines, err := TaxLines(subtotal, []Tax{
		{Name: "Stamp", Type: enum.TaxTypePercentage, Rate: d("1")},
		{Name: "VAT", Type: enum.TaxTypePercentage, Rate: d("18")},
	})
	if err != nil {
		t.Fatalf("failed to compute taxes: %v", err)
	}

	// Both taxes apply to the same base, so 1000 + 10 + 180, not
	// 18% of 1010.
	total := Total(subtotal, taxLines)
	if !total.Equal(d("1190")) {
		t.Fatalf("expected total 1190, got %s", total)
	}
}

func TestFixedTax(t *testing.T) {
	taxLines, err := TaxLines(d("5000"), []Tax{
		{Name: "Eco levy", Type: enum.TaxTypeFixed, Rate: d("250")},
	})
	if err != nil {
		t.Fatalf("failed to compute taxes: %v", err)
	}
	if !taxLines[0].Amount.Equal(d("250")) {
		t.Fatalf("expected fixed tax 250, got %s", taxLines[0].Amount)
	}
}

func TestUnknownTaxTypeIsAnError(t *testing.T) {
	_, err := TaxLines(d("1000"), []Tax{
		{Name: "Mystery", Type: enum.TaxType("compound"), Rate: d("5")},
	})
	if err == nil {
		t.Fatal("expected an error for an unknown tax type")
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1200.4", "1200"},
		{"1200.5", "1201"},
		{"1200.6", "1201"},
		{"0.5", "1"},
		{"2124", "2124"},
	}
	for _, tc := range cases {
		if got := Round(d(tc.in)); !got.Equal(d(tc.want)) {
			t.Fatalf("Round(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
