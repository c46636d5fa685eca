package reserving

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeLineTotalsStandardRate(test *testing.T) {
	test.Parallel()
	totals := ComputeLineTotals(decimal.NewFromInt(3), decimal.NewFromFloat(150.00), decimal.NewFromInt(20))

	if !totals.TotalCost.Equal(decimal.NewFromFloat(450.00)) {
		test.Fatalf("expected total cost 450.00, got %s", totals.TotalCost)
	}
	if !totals.VATAmount.Equal(decimal.NewFromFloat(90.00)) {
		test.Fatalf("expected vat 90.00, got %s", totals.VATAmount)
	}
	if !totals.TotalIncludingVAT.Equal(decimal.NewFromFloat(540.00)) {
		test.Fatalf("expected gross 540.00, got %s", totals.TotalIncludingVAT)
	}
}

func TestComputeLineTotalsGrossIdentity(test *testing.T) {
	test.Parallel()
	cases := []struct {
		name     string
		quantity decimal.Decimal
		unitCost decimal.Decimal
		vatRate  decimal.Decimal
	}{
		{"whole numbers", decimal.NewFromInt(4), decimal.NewFromInt(25), decimal.NewFromInt(20)},
		{"fractional cost", decimal.NewFromInt(3), decimal.NewFromFloat(33.335), decimal.NewFromInt(20)},
		{"zero vat", decimal.NewFromInt(2), decimal.NewFromFloat(19.99), decimal.Zero},
		{"reduced rate", decimal.NewFromInt(7), decimal.NewFromFloat(12.50), decimal.NewFromInt(5)},
		{"negative cost passes through", decimal.NewFromInt(1), decimal.NewFromFloat(-10.00), decimal.NewFromInt(20)},
	}
	for _, testCase := range cases {
		totals := ComputeLineTotals(testCase.quantity, testCase.unitCost, testCase.vatRate)
		if !totals.TotalIncludingVAT.Equal(totals.TotalCost.Add(totals.VATAmount)) {
			test.Fatalf("%s: gross %s != cost %s + vat %s", testCase.name, totals.TotalIncludingVAT, totals.TotalCost, totals.VATAmount)
		}
		expectedVAT := totals.TotalCost.Mul(testCase.vatRate).Div(decimal.NewFromInt(100)).Round(2)
		if !totals.VATAmount.Equal(expectedVAT) {
			test.Fatalf("%s: vat %s != round2(cost * rate / 100) %s", testCase.name, totals.VATAmount, expectedVAT)
		}
	}
}

func TestComputeLineTotalsZeroQuantityDefaultsToOne(test *testing.T) {
	test.Parallel()
	totals := ComputeLineTotals(decimal.Zero, decimal.NewFromFloat(80.00), decimal.NewFromInt(20))
	if !totals.TotalCost.Equal(decimal.NewFromFloat(80.00)) {
		test.Fatalf("expected zero quantity to price as one unit, got %s", totals.TotalCost)
	}
}

func TestAggregateDamageItemsSumsLineTotals(test *testing.T) {
	test.Parallel()
	items := []DamageItem{
		{Totals: LineTotals{TotalCost: decimal.NewFromFloat(450.00), VATAmount: decimal.NewFromFloat(90.00), TotalIncludingVAT: decimal.NewFromFloat(540.00)}},
		{Totals: LineTotals{TotalCost: decimal.NewFromFloat(100.42), VATAmount: decimal.NewFromFloat(20.08), TotalIncludingVAT: decimal.NewFromFloat(120.50)}},
	}

	aggregate := AggregateDamageItems(items)
	if aggregate.Count != 2 {
		test.Fatalf("expected count 2, got %d", aggregate.Count)
	}
	if !aggregate.TotalIncludingVAT.Equal(decimal.NewFromFloat(660.50)) {
		test.Fatalf("expected gross 660.50, got %s", aggregate.TotalIncludingVAT)
	}
	if !aggregate.TotalCost.Equal(decimal.NewFromFloat(550.42)) {
		test.Fatalf("expected cost 550.42, got %s", aggregate.TotalCost)
	}
	if !aggregate.TotalVAT.Equal(decimal.NewFromFloat(110.08)) {
		test.Fatalf("expected vat 110.08, got %s", aggregate.TotalVAT)
	}
}

func TestAggregateDamageItemsEmpty(test *testing.T) {
	test.Parallel()
	aggregate := AggregateDamageItems(nil)
	if aggregate.Count != 0 {
		test.Fatalf("expected count 0, got %d", aggregate.Count)
	}
	if !aggregate.TotalIncludingVAT.IsZero() || !aggregate.TotalCost.IsZero() || !aggregate.TotalVAT.IsZero() {
		test.Fatalf("expected zero aggregate, got %+v", aggregate)
	}
}

func TestSelectCurrentReservePrefersApproved(test *testing.T) {
	test.Parallel()
	reserves := []ReserveRecord{
		{Notes: "C", Status: ReserveStatusDraft},
		{Notes: "B", Status: ReserveStatusApproved},
		{Notes: "A", Status: ReserveStatusDraft},
	}

	current := SelectCurrentReserve(reserves)
	if current == nil || current.Notes != "B" {
		test.Fatalf("expected approved reserve B, got %+v", current)
	}
}

func TestSelectCurrentReserveFallsBackToNewest(test *testing.T) {
	test.Parallel()
	reserves := []ReserveRecord{
		{Notes: "newest", Status: ReserveStatusDraft},
		{Notes: "older", Status: ReserveStatusPendingApproval},
	}

	current := SelectCurrentReserve(reserves)
	if current == nil || current.Notes != "newest" {
		test.Fatalf("expected newest reserve, got %+v", current)
	}
}

func TestSelectCurrentReserveEmpty(test *testing.T) {
	test.Parallel()
	if current := SelectCurrentReserve(nil); current != nil {
		test.Fatalf("expected nil for empty input, got %+v", current)
	}
}
