package pricing

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is one cart or order position priced at read time.
type Line struct {
	UnitPrice          float64
	DiscountPercentage float64
	Quantity           int
}

// Totals carries the pre- and post-discount sums for a set of lines.
type Totals struct {
	BeforeDiscount float64
	AfterDiscount  float64
}

// DiscountedUnitPrice applies the percentage discount to the unit price,
// rounded to cents for display. Discounts outside [0, 100] are clamped.
func DiscountedUnitPrice(unitPrice, discountPercentage float64) float64 {
	price := decimal.NewFromFloat(unitPrice)
	discounted := price.Sub(discountAmount(price, discountPercentage))
	return discounted.Round(2).InexactFloat64()
}

// CartTotals sums price×quantity per line and subtracts each line's
// percentage discount. Lines with non-positive quantities contribute
// nothing; a missing discount counts as zero.
func CartTotals(lines []Line) Totals {
	before := decimal.Zero
	discount := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		lineTotal := decimal.NewFromFloat(line.UnitPrice).Mul(decimal.NewFromInt(int64(line.Quantity)))
		before = before.Add(lineTotal)
		discount = discount.Add(discountAmount(lineTotal, line.DiscountPercentage))
	}
	return Totals{
		BeforeDiscount: before.InexactFloat64(),
		AfterDiscount:  before.Sub(discount).InexactFloat64(),
	}
}

// OrderTotal is the discounted total for a set of lines.
func OrderTotal(lines []Line) float64 {
	return CartTotals(lines).AfterDiscount
}

func discountAmount(amount decimal.Decimal, discountPercentage float64) decimal.Decimal {
	if discountPercentage <= 0 {
		return decimal.Zero
	}
	if discountPercentage >= 100 {
		return amount
	}
	return amount.Mul(decimal.NewFromFloat(discountPercentage)).Div(hundred)
}
