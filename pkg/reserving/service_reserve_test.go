package reserving

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateReserveStartsAsDraftWithComputedVariances(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "handler-1")

	record, err := service.CreateReserve(context.Background(), projectID, actor, ReserveInput{
		ReserveType: ReserveTypeInitial,
		Breakdown: ReserveBreakdown{
			Building: CategoryAmounts{Estimated: decimal.NewFromInt(10000), Actual: decimal.NewFromInt(12500)},
			Contents: CategoryAmounts{Estimated: decimal.NewFromInt(3000)},
		},
	})
	if err != nil {
		test.Fatalf("create reserve: %v", err)
	}
	if record.Status != ReserveStatusDraft {
		test.Fatalf("expected draft, got %s", record.Status)
	}
	if !record.Breakdown.Building.Variance.Equal(decimal.NewFromInt(2500)) {
		test.Fatalf("expected building variance 2500, got %s", record.Breakdown.Building.Variance)
	}
	if record.Currency != DefaultCurrency {
		test.Fatalf("expected default currency, got %s", record.Currency)
	}
	if record.CreatedBy != actor {
		test.Fatalf("expected creator stamp, got %s", record.CreatedBy.String())
	}
	if len(store.reserves) != 1 {
		test.Fatalf("expected 1 stored reserve, got %d", len(store.reserves))
	}
}

func TestCreateReserveRejectsUnknownType(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "handler-1")

	_, err := service.CreateReserve(context.Background(), projectID, actor, ReserveInput{ReserveType: "interim"})
	if !errors.Is(err, ErrValidation) {
		test.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(store.reserves) != 0 {
		test.Fatalf("expected no persistence on rejected input")
	}
}

func TestReviseReserveInsertsNewRecordAndKeepsHistory(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "adjuster-1")

	original, err := service.CreateReserve(context.Background(), projectID, actor, ReserveInput{
		ReserveType: ReserveTypeInitial,
		Breakdown: ReserveBreakdown{
			Building: CategoryAmounts{Estimated: decimal.NewFromInt(10000)},
		},
		Notes: "desk estimate",
	})
	if err != nil {
		test.Fatalf("create reserve: %v", err)
	}

	buildingActual := decimal.NewFromInt(12500)
	revised, err := service.ReviseReserve(context.Background(), projectID, original.ReserveID, actor, ReserveChanges{
		Building: &CategoryChange{Actual: &buildingActual},
	})
	if err != nil {
		test.Fatalf("revise reserve: %v", err)
	}
	if revised.ReserveID == original.ReserveID {
		test.Fatalf("expected a new record, got same id %s", revised.ReserveID.String())
	}
	if !revised.Breakdown.Building.Variance.Equal(decimal.NewFromInt(2500)) {
		test.Fatalf("expected variance 2500 after revision, got %s", revised.Breakdown.Building.Variance)
	}
	if revised.ReserveType != ReserveTypeRevised {
		test.Fatalf("expected revised type, got %s", revised.ReserveType)
	}
	if revised.Notes != "desk estimate" {
		test.Fatalf("expected notes carried forward, got %q", revised.Notes)
	}
	if len(store.reserves) != 2 {
		test.Fatalf("expected history of 2 records, got %d", len(store.reserves))
	}
	prior, err := store.GetReserve(context.Background(), projectID, original.ReserveID)
	if err != nil {
		test.Fatalf("get prior: %v", err)
	}
	if prior.Status != ReserveStatusDraft {
		test.Fatalf("expected prior record untouched, got %s", prior.Status)
	}
}

func TestReviseReserveRejectsNegativeAmounts(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "adjuster-1")

	original, err := service.CreateReserve(context.Background(), projectID, actor, ReserveInput{
		ReserveType: ReserveTypeInitial,
		Breakdown: ReserveBreakdown{
			Building: CategoryAmounts{Estimated: decimal.NewFromInt(10000)},
		},
	})
	if err != nil {
		test.Fatalf("create reserve: %v", err)
	}

	negativeEstimate := decimal.NewFromInt(-5000)
	_, err = service.ReviseReserve(context.Background(), projectID, original.ReserveID, actor, ReserveChanges{
		Building: &CategoryChange{Estimated: &negativeEstimate},
	})
	if !errors.Is(err, ErrValidation) {
		test.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(store.reserves) != 1 {
		test.Fatalf("expected no revision persisted, got %d records", len(store.reserves))
	}
}

func TestApproveReserveRequiresPendingApproval(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "surveyor-1")

	draft, err := service.CreateReserve(context.Background(), projectID, actor, ReserveInput{ReserveType: ReserveTypeInitial})
	if err != nil {
		test.Fatalf("create reserve: %v", err)
	}

	err = service.ApproveReserve(context.Background(), projectID, draft.ReserveID, actor)
	if !errors.Is(err, ErrInvalidStateTransition) {
		test.Fatalf("expected ErrInvalidStateTransition, got %v", err)
	}
	stored, err := store.GetReserve(context.Background(), projectID, draft.ReserveID)
	if err != nil {
		test.Fatalf("get reserve: %v", err)
	}
	if stored.Status != ReserveStatusDraft {
		test.Fatalf("expected record unchanged, got %s", stored.Status)
	}
}

func TestApproveReserveStampsApproverAndSupersedesPrior(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	creator := mustActorID(test, "handler-1")
	approver := mustActorID(test, "manager-1")

	first, err := service.CreateReserve(context.Background(), projectID, creator, ReserveInput{ReserveType: ReserveTypeInitial})
	if err != nil {
		test.Fatalf("create first: %v", err)
	}
	if err := service.SubmitReserve(context.Background(), projectID, first.ReserveID, creator); err != nil {
		test.Fatalf("submit first: %v", err)
	}
	if err := service.ApproveReserve(context.Background(), projectID, first.ReserveID, approver); err != nil {
		test.Fatalf("approve first: %v", err)
	}

	second, err := service.CreateReserve(context.Background(), projectID, creator, ReserveInput{ReserveType: ReserveTypeRevised})
	if err != nil {
		test.Fatalf("create second: %v", err)
	}
	if err := service.SubmitReserve(context.Background(), projectID, second.ReserveID, creator); err != nil {
		test.Fatalf("submit second: %v", err)
	}
	if err := service.ApproveReserve(context.Background(), projectID, second.ReserveID, approver); err != nil {
		test.Fatalf("approve second: %v", err)
	}

	firstStored, err := store.GetReserve(context.Background(), projectID, first.ReserveID)
	if err != nil {
		test.Fatalf("get first: %v", err)
	}
	if firstStored.Status != ReserveStatusSuperseded {
		test.Fatalf("expected first reserve superseded, got %s", firstStored.Status)
	}
	secondStored, err := store.GetReserve(context.Background(), projectID, second.ReserveID)
	if err != nil {
		test.Fatalf("get second: %v", err)
	}
	if secondStored.Status != ReserveStatusApproved {
		test.Fatalf("expected second reserve approved, got %s", secondStored.Status)
	}
	if secondStored.ApprovedBy != approver.String() {
		test.Fatalf("expected approver stamp, got %q", secondStored.ApprovedBy)
	}
	if secondStored.ApprovedUnixUTC != 100 {
		test.Fatalf("expected approval timestamp, got %d", secondStored.ApprovedUnixUTC)
	}
}

func TestSupersededReserveIsTerminal(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "handler-1")

	record, err := service.CreateReserve(context.Background(), projectID, actor, ReserveInput{ReserveType: ReserveTypeInitial})
	if err != nil {
		test.Fatalf("create reserve: %v", err)
	}
	if err := service.SupersedeReserve(context.Background(), projectID, record.ReserveID, actor); err != nil {
		test.Fatalf("supersede: %v", err)
	}
	err = service.SubmitReserve(context.Background(), projectID, record.ReserveID, actor)
	if !errors.Is(err, ErrInvalidStateTransition) {
		test.Fatalf("expected terminal state to reject submit, got %v", err)
	}
}

func TestCurrentReservePrefersApprovedRecord(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")
	actor := mustActorID(test, "handler-1")

	first, err := service.CreateReserve(context.Background(), projectID, actor, ReserveInput{ReserveType: ReserveTypeInitial})
	if err != nil {
		test.Fatalf("create first: %v", err)
	}
	if err := service.SubmitReserve(context.Background(), projectID, first.ReserveID, actor); err != nil {
		test.Fatalf("submit: %v", err)
	}
	if err := service.ApproveReserve(context.Background(), projectID, first.ReserveID, actor); err != nil {
		test.Fatalf("approve: %v", err)
	}
	if _, err := service.CreateReserve(context.Background(), projectID, actor, ReserveInput{ReserveType: ReserveTypeRevised}); err != nil {
		test.Fatalf("create second: %v", err)
	}

	current, err := service.CurrentReserve(context.Background(), projectID)
	if err != nil {
		test.Fatalf("current reserve: %v", err)
	}
	if current == nil || current.ReserveID != first.ReserveID {
		test.Fatalf("expected approved reserve to stay current, got %+v", current)
	}
}

func TestListReservesToleratesMissingRelation(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	store.markMissing("reserves")
	service := mustNewService(test, store)
	projectID := mustProjectID(test, "proj-1")

	reserves, err := service.ListReserves(context.Background(), projectID)
	if err != nil {
		test.Fatalf("expected missing relation to degrade, got %v", err)
	}
	if len(reserves) != 0 {
		test.Fatalf("expected empty list, got %d", len(reserves))
	}
}

func TestNewServiceRequiresDependencies(test *testing.T) {
	test.Parallel()
	_, err := NewService(nil, func() int64 { return 0 })
	if !errors.Is(err, ErrInvalidServiceConfig) {
		test.Fatalf("expected invalid service config error, got %v", err)
	}
	_, err = NewService(newStubStore(), nil)
	if !errors.Is(err, ErrInvalidServiceConfig) {
		test.Fatalf("expected invalid service config error, got %v", err)
	}
}
