package reserving

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateDamageItemComputesTotals(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	hodCodeID := seedHODCode(test, store, "hod-01")
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "surveyor-1")

	item, err := service.CreateDamageItem(context.Background(), projectID, actor, DamageItemInput{
		HODCodeID:   hodCodeID,
		Description: "replace ceiling joists",
		Location:    "rear bedroom",
		Quantity:    decimal.NewFromInt(3),
		UnitCost:    decimal.NewFromFloat(150.00),
	})
	if err != nil {
		test.Fatalf("create damage item: %v", err)
	}
	if item.Status != DamageStatusEstimated {
		test.Fatalf("expected estimated, got %s", item.Status)
	}
	if !item.VATRatePercent.Equal(DefaultVATRatePercent) {
		test.Fatalf("expected default vat rate, got %s", item.VATRatePercent)
	}
	if !item.Totals.TotalCost.Equal(decimal.NewFromFloat(450.00)) {
		test.Fatalf("expected cost 450.00, got %s", item.Totals.TotalCost)
	}
	if !item.Totals.VATAmount.Equal(decimal.NewFromFloat(90.00)) {
		test.Fatalf("expected vat 90.00, got %s", item.Totals.VATAmount)
	}
	if !item.Totals.TotalIncludingVAT.Equal(decimal.NewFromFloat(540.00)) {
		test.Fatalf("expected gross 540.00, got %s", item.Totals.TotalIncludingVAT)
	}
	if item.Urgency != UrgencyNormal || item.Extent != ExtentModerate {
		test.Fatalf("expected descriptive defaults, got %s/%s", item.Urgency, item.Extent)
	}
}

func TestCreateDamageItemRequiresKnownHODCode(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "surveyor-1")

	_, err := service.CreateDamageItem(context.Background(), projectID, actor, DamageItemInput{
		HODCodeID:   mustHODCodeID(test, "hod-missing"),
		Description: "unknown code",
	})
	if !errors.Is(err, ErrUnknownHODCode) {
		test.Fatalf("expected ErrUnknownHODCode, got %v", err)
	}
	if len(store.damageItems) != 0 {
		test.Fatalf("expected no persistence on rejected input")
	}
}

func TestCreateDamageItemRequiresDescription(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	hodCodeID := seedHODCode(test, store, "hod-01")
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "surveyor-1")

	_, err := service.CreateDamageItem(context.Background(), projectID, actor, DamageItemInput{HODCodeID: hodCodeID})
	if !errors.Is(err, ErrValidation) {
		test.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateDamageItemQuantityRecomputesAgainstExistingPricing(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	hodCodeID := seedHODCode(test, store, "hod-01")
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "surveyor-1")

	item, err := service.CreateDamageItem(context.Background(), projectID, actor, DamageItemInput{
		HODCodeID:   hodCodeID,
		Description: "retile bathroom",
		Quantity:    decimal.NewFromInt(2),
		UnitCost:    decimal.NewFromFloat(150.00),
	})
	if err != nil {
		test.Fatalf("create damage item: %v", err)
	}

	quantity := decimal.NewFromInt(3)
	updated, err := service.UpdateDamageItem(context.Background(), projectID, item.ItemID, actor, DamageItemChanges{Quantity: &quantity})
	if err != nil {
		test.Fatalf("update damage item: %v", err)
	}
	if !updated.Totals.TotalCost.Equal(decimal.NewFromFloat(450.00)) {
		test.Fatalf("expected 3 x existing 150.00 = 450.00, got %s", updated.Totals.TotalCost)
	}
	if !updated.Totals.TotalIncludingVAT.Equal(decimal.NewFromFloat(540.00)) {
		test.Fatalf("expected gross 540.00, got %s", updated.Totals.TotalIncludingVAT)
	}
	stored, err := store.GetDamageItem(context.Background(), projectID, item.ItemID)
	if err != nil {
		test.Fatalf("get damage item: %v", err)
	}
	if !stored.Totals.TotalCost.Equal(decimal.NewFromFloat(450.00)) {
		test.Fatalf("expected persisted recomputation, got %s", stored.Totals.TotalCost)
	}
}

func TestAdvanceDamageItemOneStep(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	hodCodeID := seedHODCode(test, store, "hod-01")
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "surveyor-1")

	item, err := service.CreateDamageItem(context.Background(), projectID, actor, DamageItemInput{
		HODCodeID:   hodCodeID,
		Description: "repoint chimney",
	})
	if err != nil {
		test.Fatalf("create damage item: %v", err)
	}

	if err := service.AdvanceDamageItem(context.Background(), projectID, item.ItemID, actor, DamageStatusQuoted); err != nil {
		test.Fatalf("advance to quoted: %v", err)
	}
	err = service.AdvanceDamageItem(context.Background(), projectID, item.ItemID, actor, DamageStatusWorksOrdered)
	if !errors.Is(err, ErrInvalidStateTransition) {
		test.Fatalf("expected skip to be rejected, got %v", err)
	}
	stored, err := store.GetDamageItem(context.Background(), projectID, item.ItemID)
	if err != nil {
		test.Fatalf("get damage item: %v", err)
	}
	if stored.Status != DamageStatusQuoted {
		test.Fatalf("expected quoted after rejected skip, got %s", stored.Status)
	}
}

func TestDamageSummaryAggregatesProjectItems(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	hodCodeID := seedHODCode(test, store, "hod-01")
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "surveyor-1")

	if _, err := service.CreateDamageItem(context.Background(), projectID, actor, DamageItemInput{
		HODCodeID:   hodCodeID,
		Description: "joinery",
		Quantity:    decimal.NewFromInt(3),
		UnitCost:    decimal.NewFromFloat(150.00),
	}); err != nil {
		test.Fatalf("create first: %v", err)
	}
	reducedRate := decimal.NewFromInt(0)
	if _, err := service.CreateDamageItem(context.Background(), projectID, actor, DamageItemInput{
		HODCodeID:      hodCodeID,
		Description:    "skip hire",
		Quantity:       decimal.NewFromInt(1),
		UnitCost:       decimal.NewFromFloat(120.50),
		VATRatePercent: &reducedRate,
	}); err != nil {
		test.Fatalf("create second: %v", err)
	}

	summary, err := service.ProjectDamageSummary(context.Background(), projectID)
	if err != nil {
		test.Fatalf("summary: %v", err)
	}
	if summary.Count != 2 {
		test.Fatalf("expected 2 items, got %d", summary.Count)
	}
	if !summary.TotalIncludingVAT.Equal(decimal.NewFromFloat(660.50)) {
		test.Fatalf("expected gross 660.50, got %s", summary.TotalIncludingVAT)
	}
}

func TestListDamageItemsToleratesMissingRelation(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	store.markMissing("damage_items")
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")

	items, err := service.ListDamageItems(context.Background(), projectID)
	if err != nil {
		test.Fatalf("expected missing relation to degrade, got %v", err)
	}
	if len(items) != 0 {
		test.Fatalf("expected empty list, got %d", len(items))
	}
}
