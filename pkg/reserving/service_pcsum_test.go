package reserving

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAllocatePCSumStartsUntouched(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "qs-1")

	sum, err := service.AllocatePCSum(context.Background(), projectID, actor, PCSumInput{
		Description:     "kitchen refit allowance",
		AllocatedAmount: decimal.NewFromInt(5000),
	})
	if err != nil {
		test.Fatalf("allocate: %v", err)
	}
	if sum.Status != PCSumStatusAllocated {
		test.Fatalf("expected allocated, got %s", sum.Status)
	}
	if !sum.SpentAmount.IsZero() {
		test.Fatalf("expected zero spend, got %s", sum.SpentAmount)
	}
	if !sum.RemainingAmount.Equal(decimal.NewFromInt(5000)) {
		test.Fatalf("expected full remaining, got %s", sum.RemainingAmount)
	}
}

func TestRecordPCSumSpendRecomputesRemaining(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "qs-1")

	sum, err := service.AllocatePCSum(context.Background(), projectID, actor, PCSumInput{
		Description:     "electrics allowance",
		AllocatedAmount: decimal.NewFromInt(2000),
	})
	if err != nil {
		test.Fatalf("allocate: %v", err)
	}

	updated, err := service.RecordPCSumSpend(context.Background(), projectID, sum.PCSumID, actor, decimal.NewFromFloat(750.25))
	if err != nil {
		test.Fatalf("spend: %v", err)
	}
	if updated.Status != PCSumStatusInProgress {
		test.Fatalf("expected in_progress after first spend, got %s", updated.Status)
	}
	if !updated.RemainingAmount.Equal(decimal.NewFromFloat(1249.75)) {
		test.Fatalf("expected remaining 1249.75, got %s", updated.RemainingAmount)
	}
}

func TestRecordPCSumSpendRejectsNonPositiveAmount(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "qs-1")

	sum, err := service.AllocatePCSum(context.Background(), projectID, actor, PCSumInput{
		Description:     "allowance",
		AllocatedAmount: decimal.NewFromInt(100),
	})
	if err != nil {
		test.Fatalf("allocate: %v", err)
	}
	_, err = service.RecordPCSumSpend(context.Background(), projectID, sum.PCSumID, actor, decimal.Zero)
	if !errors.Is(err, ErrInvalidAmount) {
		test.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestClosePCSumIsTerminal(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "qs-1")

	sum, err := service.AllocatePCSum(context.Background(), projectID, actor, PCSumInput{
		Description:     "allowance",
		AllocatedAmount: decimal.NewFromInt(100),
	})
	if err != nil {
		test.Fatalf("allocate: %v", err)
	}
	if err := service.ClosePCSum(context.Background(), projectID, sum.PCSumID, actor, PCSumStatusCancelled); err != nil {
		test.Fatalf("cancel: %v", err)
	}
	_, err = service.RecordPCSumSpend(context.Background(), projectID, sum.PCSumID, actor, decimal.NewFromInt(10))
	if !errors.Is(err, ErrInvalidStateTransition) {
		test.Fatalf("expected spend against cancelled sum to fail, got %v", err)
	}
	err = service.ClosePCSum(context.Background(), projectID, sum.PCSumID, actor, PCSumStatusCompleted)
	if !errors.Is(err, ErrInvalidStateTransition) {
		test.Fatalf("expected cancelled to be terminal, got %v", err)
	}
}

func TestClosePCSumRejectsNonTerminalTarget(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "qs-1")

	sum, err := service.AllocatePCSum(context.Background(), projectID, actor, PCSumInput{
		Description:     "allowance",
		AllocatedAmount: decimal.NewFromInt(100),
	})
	if err != nil {
		test.Fatalf("allocate: %v", err)
	}
	err = service.ClosePCSum(context.Background(), projectID, sum.PCSumID, actor, PCSumStatusInProgress)
	if !errors.Is(err, ErrValidation) {
		test.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRecordSurveyFormRequiresType(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "surveyor-1")

	_, err := service.RecordSurveyForm(context.Background(), projectID, actor, "", []byte(`{}`))
	if !errors.Is(err, ErrValidation) {
		test.Fatalf("expected ErrValidation, got %v", err)
	}
	form, err := service.RecordSurveyForm(context.Background(), projectID, actor, "initial_survey", []byte(`{"rooms":4}`))
	if err != nil {
		test.Fatalf("record form: %v", err)
	}
	if form.FormID == "" {
		test.Fatalf("expected generated form id")
	}
	forms, err := service.ListSurveyForms(context.Background(), projectID)
	if err != nil {
		test.Fatalf("list forms: %v", err)
	}
	if len(forms) != 1 {
		test.Fatalf("expected 1 form, got %d", len(forms))
	}
}

func TestListPCSumsToleratesMissingRelation(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	store.markMissing("pc_sums")
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")

	sums, err := service.ListPCSums(context.Background(), projectID)
	if err != nil {
		test.Fatalf("expected missing relation to degrade, got %v", err)
	}
	if len(sums) != 0 {
		test.Fatalf("expected empty list, got %d", len(sums))
	}
}
