package reserving

import "context"

// Store is the persistence contract used by Service.
//
// List reads against a relation that has not been provisioned yet return an
// error wrapping ErrMissingSchema; the service degrades those to an empty
// collection. Every other failure propagates wrapped, never swallowed.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error

	ListReserves(ctx context.Context, projectID ProjectID) ([]ReserveRecord, error)
	GetReserve(ctx context.Context, projectID ProjectID, reserveID ReserveID) (ReserveRecord, error)
	InsertReserve(ctx context.Context, record ReserveRecord) error
	UpdateReserveStatus(ctx context.Context, projectID ProjectID, reserveID ReserveID, from ReserveStatus, to ReserveStatus, approval *ApprovalStamp) error
	SupersedeApprovedReserves(ctx context.Context, projectID ProjectID, except ReserveID) error

	ListDamageItems(ctx context.Context, projectID ProjectID) ([]DamageItem, error)
	GetDamageItem(ctx context.Context, projectID ProjectID, itemID DamageItemID) (DamageItem, error)
	InsertDamageItem(ctx context.Context, item DamageItem) error
	UpdateDamageItem(ctx context.Context, item DamageItem) error
	UpdateDamageItemStatus(ctx context.Context, projectID ProjectID, itemID DamageItemID, from DamageStatus, to DamageStatus) error

	GetHODCode(ctx context.Context, codeID HODCodeID) (HODCode, error)
	ListHODCodes(ctx context.Context) ([]HODCode, error)

	ListPCSums(ctx context.Context, projectID ProjectID) ([]PCSum, error)
	GetPCSum(ctx context.Context, projectID ProjectID, pcSumID PCSumID) (PCSum, error)
	InsertPCSum(ctx context.Context, sum PCSum) error
	UpdatePCSum(ctx context.Context, sum PCSum) error
	UpdatePCSumStatus(ctx context.Context, projectID ProjectID, pcSumID PCSumID, from PCSumStatus, to PCSumStatus) error

	ListSurveyForms(ctx context.Context, projectID ProjectID) ([]SurveyForm, error)
	InsertSurveyForm(ctx context.Context, form SurveyForm) error
	ListScopeVariations(ctx context.Context, projectID ProjectID) ([]ScopeVariation, error)
	InsertScopeVariation(ctx context.Context, variation ScopeVariation) error
	ListContractorAssessments(ctx context.Context, projectID ProjectID) ([]ContractorAssessment, error)
	InsertContractorAssessment(ctx context.Context, assessment ContractorAssessment) error
}
