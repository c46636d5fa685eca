package reserving

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDamageStatusAdvancesOneStepOnly(test *testing.T) {
	test.Parallel()
	cases := []struct {
		from    DamageStatus
		to      DamageStatus
		allowed bool
	}{
		{DamageStatusEstimated, DamageStatusQuoted, true},
		{DamageStatusQuoted, DamageStatusApproved, true},
		{DamageStatusApproved, DamageStatusWorksOrdered, true},
		{DamageStatusWorksOrdered, DamageStatusCompleted, true},
		{DamageStatusEstimated, DamageStatusApproved, false},
		{DamageStatusEstimated, DamageStatusCompleted, false},
		{DamageStatusQuoted, DamageStatusEstimated, false},
		{DamageStatusCompleted, DamageStatusEstimated, false},
	}
	for _, testCase := range cases {
		if got := CanAdvanceDamage(testCase.from, testCase.to); got != testCase.allowed {
			test.Fatalf("%s -> %s: expected %v, got %v", testCase.from, testCase.to, testCase.allowed, got)
		}
	}
}

func TestNextDamageStatusTerminal(test *testing.T) {
	test.Parallel()
	if _, ok := NextDamageStatus(DamageStatusCompleted); ok {
		test.Fatalf("expected completed to have no successor")
	}
}

func TestApplyDamageItemChangesRecomputesFromMergedRecord(test *testing.T) {
	test.Parallel()
	existing := DamageItem{
		Description:    "plaster ceiling",
		Quantity:       decimal.NewFromInt(2),
		UnitCost:       decimal.NewFromFloat(150.00),
		VATRatePercent: decimal.NewFromInt(20),
		Totals:         ComputeLineTotals(decimal.NewFromInt(2), decimal.NewFromFloat(150.00), decimal.NewFromInt(20)),
	}

	quantity := decimal.NewFromInt(3)
	updated, err := applyDamageItemChanges(existing, DamageItemChanges{Quantity: &quantity})
	if err != nil {
		test.Fatalf("apply changes: %v", err)
	}
	if !updated.Totals.TotalCost.Equal(decimal.NewFromFloat(450.00)) {
		test.Fatalf("expected recomputed cost 450.00 from existing unit cost, got %s", updated.Totals.TotalCost)
	}
	if !updated.Totals.VATAmount.Equal(decimal.NewFromFloat(90.00)) {
		test.Fatalf("expected recomputed vat 90.00, got %s", updated.Totals.VATAmount)
	}
	if !updated.Totals.TotalIncludingVAT.Equal(decimal.NewFromFloat(540.00)) {
		test.Fatalf("expected recomputed gross 540.00, got %s", updated.Totals.TotalIncludingVAT)
	}
}

func TestApplyDamageItemChangesLeavesTotalsWhenPricingUntouched(test *testing.T) {
	test.Parallel()
	existing := DamageItem{
		Description:    "carpet",
		Quantity:       decimal.NewFromInt(4),
		UnitCost:       decimal.NewFromFloat(22.00),
		VATRatePercent: decimal.NewFromInt(20),
		Totals:         ComputeLineTotals(decimal.NewFromInt(4), decimal.NewFromFloat(22.00), decimal.NewFromInt(20)),
	}

	location := "front bedroom"
	updated, err := applyDamageItemChanges(existing, DamageItemChanges{Location: &location})
	if err != nil {
		test.Fatalf("apply changes: %v", err)
	}
	if updated.Location != location {
		test.Fatalf("expected location update, got %q", updated.Location)
	}
	if !updated.Totals.TotalCost.Equal(existing.Totals.TotalCost) {
		test.Fatalf("expected totals untouched, got %s", updated.Totals.TotalCost)
	}
}

func TestApplyDamageItemChangesRejectsBlankDescription(test *testing.T) {
	test.Parallel()
	blank := "   "
	_, err := applyDamageItemChanges(DamageItem{Description: "roof"}, DamageItemChanges{Description: &blank})
	if !errors.Is(err, ErrValidation) {
		test.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestApplyDamageItemChangesRejectsNegativePricing(test *testing.T) {
	test.Parallel()
	negative := decimal.NewFromInt(-1)
	_, err := applyDamageItemChanges(DamageItem{Description: "roof"}, DamageItemChanges{UnitCost: &negative})
	if !errors.Is(err, ErrValidation) {
		test.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestValidateDamageItemInputRequiresCodeAndDescription(test *testing.T) {
	test.Parallel()
	hodCodeID := mustHODCodeID(test, "hod-05")
	if err := validateDamageItemInput(DamageItemInput{Description: "no code"}); !errors.Is(err, ErrValidation) {
		test.Fatalf("expected ErrValidation without hod code, got %v", err)
	}
	if err := validateDamageItemInput(DamageItemInput{HODCodeID: hodCodeID}); !errors.Is(err, ErrValidation) {
		test.Fatalf("expected ErrValidation without description, got %v", err)
	}
	if err := validateDamageItemInput(DamageItemInput{HODCodeID: hodCodeID, Description: "slates"}); err != nil {
		test.Fatalf("expected valid input, got %v", err)
	}
}
