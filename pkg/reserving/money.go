package reserving

import "github.com/shopspring/decimal"

// DefaultVATRatePercent is the standard UK VAT rate applied when none is supplied.
var DefaultVATRatePercent = decimal.NewFromInt(20)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// LineTotals holds the three derived monetary fields of a damage item.
// They are only ever recomputed together; no field is settable on its own.
type LineTotals struct {
	TotalCost         decimal.Decimal
	VATAmount         decimal.Decimal
	TotalIncludingVAT decimal.Decimal
}

// DamageAggregate is the rollup over a set of damage items.
type DamageAggregate struct {
	Count             int
	TotalCost         decimal.Decimal
	TotalVAT          decimal.Decimal
	TotalIncludingVAT decimal.Decimal
}

// ComputeLineTotals derives cost, VAT, and gross for one line. A zero quantity
// is treated as one. The function is total over all numeric inputs; negative
// values pass through unvalidated, callers reject them where that matters.
func ComputeLineTotals(quantity decimal.Decimal, unitCost decimal.Decimal, vatRatePercent decimal.Decimal) LineTotals {
	effectiveQuantity := quantity
	if effectiveQuantity.IsZero() {
		effectiveQuantity = decimalOne
	}
	totalCost := round2(effectiveQuantity.Mul(unitCost))
	vatAmount := round2(totalCost.Mul(vatRatePercent).Div(decimalHundred))
	return LineTotals{
		TotalCost:         totalCost,
		VATAmount:         vatAmount,
		TotalIncludingVAT: totalCost.Add(vatAmount),
	}
}

// AggregateDamageItems sums the pre-computed line totals of the given items.
// Empty input yields a zero aggregate. Summation only, so order does not matter.
func AggregateDamageItems(items []DamageItem) DamageAggregate {
	aggregate := DamageAggregate{
		TotalCost:         decimal.Zero,
		TotalVAT:          decimal.Zero,
		TotalIncludingVAT: decimal.Zero,
	}
	for _, item := range items {
		aggregate.Count++
		aggregate.TotalCost = aggregate.TotalCost.Add(item.Totals.TotalCost)
		aggregate.TotalVAT = aggregate.TotalVAT.Add(item.Totals.VATAmount)
		aggregate.TotalIncludingVAT = aggregate.TotalIncludingVAT.Add(item.Totals.TotalIncludingVAT)
	}
	return aggregate
}

// SelectCurrentReserve picks the authoritative reserve from a newest-first
// list: the first approved record, else the first record, else nil.
func SelectCurrentReserve(reserves []ReserveRecord) *ReserveRecord {
	if len(reserves) == 0 {
		return nil
	}
	for index := range reserves {
		if reserves[index].Status == ReserveStatusApproved {
			return &reserves[index]
		}
	}
	return &reserves[0]
}

func round2(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}
