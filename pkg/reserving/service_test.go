package reserving

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

type stubStore struct {
	reserves        []ReserveRecord
	damageItems     []DamageItem
	hodCodes        map[string]HODCode
	pcSums          []PCSum
	surveyForms     []SurveyForm
	scopeVariations []ScopeVariation
	assessments     []ContractorAssessment
	missing         map[string]bool
}

func newStubStore() *stubStore {
	return &stubStore{
		hodCodes: make(map[string]HODCode),
		missing:  make(map[string]bool),
	}
}

func (store *stubStore) markMissing(relation string) {
	store.missing[relation] = true
}

func (store *stubStore) missingErr(relation string) error {
	if store.missing[relation] {
		return WrapError("store", relation, "list", ErrMissingSchema)
	}
	return nil
}

func (store *stubStore) WithTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error {
	return fn(ctx, store)
}

func (store *stubStore) ListReserves(ctx context.Context, projectID ProjectID) ([]ReserveRecord, error) {
	if err := store.missingErr("reserves"); err != nil {
		return nil, err
	}
	out := make([]ReserveRecord, 0, len(store.reserves))
	for _, record := range store.reserves {
		if record.ProjectID == projectID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (store *stubStore) GetReserve(ctx context.Context, projectID ProjectID, reserveID ReserveID) (ReserveRecord, error) {
	for _, record := range store.reserves {
		if record.ProjectID == projectID && record.ReserveID == reserveID {
			return record, nil
		}
	}
	return ReserveRecord{}, ErrUnknownReserve
}

func (store *stubStore) InsertReserve(ctx context.Context, record ReserveRecord) error {
	store.reserves = append([]ReserveRecord{record}, store.reserves...)
	return nil
}

func (store *stubStore) UpdateReserveStatus(ctx context.Context, projectID ProjectID, reserveID ReserveID, from ReserveStatus, to ReserveStatus, approval *ApprovalStamp) error {
	for index, record := range store.reserves {
		if record.ProjectID != projectID || record.ReserveID != reserveID {
			continue
		}
		if record.Status != from {
			return ErrInvalidStateTransition
		}
		record.Status = to
		if approval != nil {
			record.ApprovedBy = approval.ApprovedBy
			record.ApprovedUnixUTC = approval.ApprovedUnixUTC
		}
		store.reserves[index] = record
		return nil
	}
	return ErrUnknownReserve
}

func (store *stubStore) SupersedeApprovedReserves(ctx context.Context, projectID ProjectID, except ReserveID) error {
	for index, record := range store.reserves {
		if record.ProjectID == projectID && record.Status == ReserveStatusApproved && record.ReserveID != except {
			record.Status = ReserveStatusSuperseded
			store.reserves[index] = record
		}
	}
	return nil
}

func (store *stubStore) ListDamageItems(ctx context.Context, projectID ProjectID) ([]DamageItem, error) {
	if err := store.missingErr("damage_items"); err != nil {
		return nil, err
	}
	out := make([]DamageItem, 0, len(store.damageItems))
	for _, item := range store.damageItems {
		if item.ProjectID == projectID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (store *stubStore) GetDamageItem(ctx context.Context, projectID ProjectID, itemID DamageItemID) (DamageItem, error) {
	for _, item := range store.damageItems {
		if item.ProjectID == projectID && item.ItemID == itemID {
			return item, nil
		}
	}
	return DamageItem{}, ErrUnknownDamageItem
}

func (store *stubStore) InsertDamageItem(ctx context.Context, item DamageItem) error {
	store.damageItems = append(store.damageItems, item)
	return nil
}

func (store *stubStore) UpdateDamageItem(ctx context.Context, item DamageItem) error {
	for index, existing := range store.damageItems {
		if existing.ProjectID == item.ProjectID && existing.ItemID == item.ItemID {
			store.damageItems[index] = item
			return nil
		}
	}
	return ErrUnknownDamageItem
}

func (store *stubStore) UpdateDamageItemStatus(ctx context.Context, projectID ProjectID, itemID DamageItemID, from DamageStatus, to DamageStatus) error {
	for index, item := range store.damageItems {
		if item.ProjectID != projectID || item.ItemID != itemID {
			continue
		}
		if item.Status != from {
			return ErrInvalidStateTransition
		}
		item.Status = to
		store.damageItems[index] = item
		return nil
	}
	return ErrUnknownDamageItem
}

func (store *stubStore) GetHODCode(ctx context.Context, codeID HODCodeID) (HODCode, error) {
	code, ok := store.hodCodes[codeID.String()]
	if !ok {
		return HODCode{}, ErrUnknownHODCode
	}
	return code, nil
}

func (store *stubStore) ListHODCodes(ctx context.Context) ([]HODCode, error) {
	if err := store.missingErr("hod_codes"); err != nil {
		return nil, err
	}
	out := make([]HODCode, 0, len(store.hodCodes))
	for _, code := range store.hodCodes {
		out = append(out, code)
	}
	return out, nil
}

func (store *stubStore) ListPCSums(ctx context.Context, projectID ProjectID) ([]PCSum, error) {
	if err := store.missingErr("pc_sums"); err != nil {
		return nil, err
	}
	out := make([]PCSum, 0, len(store.pcSums))
	for _, sum := range store.pcSums {
		if sum.ProjectID == projectID {
			out = append(out, sum)
		}
	}
	return out, nil
}

func (store *stubStore) GetPCSum(ctx context.Context, projectID ProjectID, pcSumID PCSumID) (PCSum, error) {
	for _, sum := range store.pcSums {
		if sum.ProjectID == projectID && sum.PCSumID == pcSumID {
			return sum, nil
		}
	}
	return PCSum{}, ErrUnknownPCSum
}

func (store *stubStore) InsertPCSum(ctx context.Context, sum PCSum) error {
	store.pcSums = append(store.pcSums, sum)
	return nil
}

func (store *stubStore) UpdatePCSum(ctx context.Context, sum PCSum) error {
	for index, existing := range store.pcSums {
		if existing.ProjectID == sum.ProjectID && existing.PCSumID == sum.PCSumID {
			store.pcSums[index] = sum
			return nil
		}
	}
	return ErrUnknownPCSum
}

func (store *stubStore) UpdatePCSumStatus(ctx context.Context, projectID ProjectID, pcSumID PCSumID, from PCSumStatus, to PCSumStatus) error {
	for index, sum := range store.pcSums {
		if sum.ProjectID != projectID || sum.PCSumID != pcSumID {
			continue
		}
		if sum.Status != from {
			return ErrInvalidStateTransition
		}
		sum.Status = to
		store.pcSums[index] = sum
		return nil
	}
	return ErrUnknownPCSum
}

func (store *stubStore) ListSurveyForms(ctx context.Context, projectID ProjectID) ([]SurveyForm, error) {
	if err := store.missingErr("survey_forms"); err != nil {
		return nil, err
	}
	out := make([]SurveyForm, 0, len(store.surveyForms))
	for _, form := range store.surveyForms {
		if form.ProjectID == projectID {
			out = append(out, form)
		}
	}
	return out, nil
}

func (store *stubStore) InsertSurveyForm(ctx context.Context, form SurveyForm) error {
	store.surveyForms = append(store.surveyForms, form)
	return nil
}

func (store *stubStore) ListScopeVariations(ctx context.Context, projectID ProjectID) ([]ScopeVariation, error) {
	if err := store.missingErr("scope_variations"); err != nil {
		return nil, err
	}
	out := make([]ScopeVariation, 0, len(store.scopeVariations))
	for _, variation := range store.scopeVariations {
		if variation.ProjectID == projectID {
			out = append(out, variation)
		}
	}
	return out, nil
}

func (store *stubStore) InsertScopeVariation(ctx context.Context, variation ScopeVariation) error {
	store.scopeVariations = append(store.scopeVariations, variation)
	return nil
}

func (store *stubStore) ListContractorAssessments(ctx context.Context, projectID ProjectID) ([]ContractorAssessment, error) {
	if err := store.missingErr("contractor_assessments"); err != nil {
		return nil, err
	}
	out := make([]ContractorAssessment, 0, len(store.assessments))
	for _, assessment := range store.assessments {
		if assessment.ProjectID == projectID {
			out = append(out, assessment)
		}
	}
	return out, nil
}

func (store *stubStore) InsertContractorAssessment(ctx context.Context, assessment ContractorAssessment) error {
	store.assessments = append(store.assessments, assessment)
	return nil
}

func sequenceIDs(prefix string) func() string {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("%s-%d", prefix, counter)
	}
}

func mustNewService(test *testing.T, store Store) *Service {
	test.Helper()
	service, err := NewService(store, func() int64 { return 100 }, WithIDGenerator(sequenceIDs("id")))
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	return service
}

func mustProjectID(test *testing.T, raw string) ProjectID {
	test.Helper()
	value, err := NewProjectID(raw)
	if err != nil {
		test.Fatalf("project id: %v", err)
	}
	return value
}

func mustActorID(test *testing.T, raw string) ActorID {
	test.Helper()
	value, err := NewActorID(raw)
	if err != nil {
		test.Fatalf("actor id: %v", err)
	}
	return value
}

func mustReserveID(test *testing.T, raw string) ReserveID {
	test.Helper()
	value, err := NewReserveID(raw)
	if err != nil {
		test.Fatalf("reserve id: %v", err)
	}
	return value
}

func mustDamageItemID(test *testing.T, raw string) DamageItemID {
	test.Helper()
	value, err := NewDamageItemID(raw)
	if err != nil {
		test.Fatalf("damage item id: %v", err)
	}
	return value
}

func mustHODCodeID(test *testing.T, raw string) HODCodeID {
	test.Helper()
	value, err := NewHODCodeID(raw)
	if err != nil {
		test.Fatalf("hod code id: %v", err)
	}
	return value
}

func mustPCSumID(test *testing.T, raw string) PCSumID {
	test.Helper()
	value, err := NewPCSumID(raw)
	if err != nil {
		test.Fatalf("pc sum id: %v", err)
	}
	return value
}

func seedHODCode(test *testing.T, store *stubStore, raw string) HODCodeID {
	test.Helper()
	codeID := mustHODCodeID(test, raw)
	store.hodCodes[raw] = HODCode{
		CodeID:          codeID,
		Code:            raw,
		Description:     "test code",
		Category:        CategoryBuilding,
		Unit:            UnitPerItem,
		TypicalRateLow:  decimal.NewFromInt(10),
		TypicalRateHigh: decimal.NewFromInt(100),
	}
	return codeID
}
