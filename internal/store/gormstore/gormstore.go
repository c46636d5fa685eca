package gormstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/claimworks/reserving/pkg/reserving"
)

const (
	pgUndefinedTableCode = "42P01"
	emptyPayloadJSON     = "{}"

	errorOperationStore = "store"

	errorSubjectReserve              = "reserve"
	errorSubjectDamageItem           = "damage_item"
	errorSubjectHODCode              = "hod_code"
	errorSubjectPCSum                = "pc_sum"
	errorSubjectSurveyForm           = "survey_form"
	errorSubjectScopeVariation       = "scope_variation"
	errorSubjectContractorAssessment = "contractor_assessment"

	errorCodeGet          = "get"
	errorCodeInsert       = "insert"
	errorCodeInvalid      = "invalid"
	errorCodeList         = "list"
	errorCodeSupersede    = "supersede"
	errorCodeUpdate       = "update"
	errorCodeUpdateStatus = "update_status"
)

// Store implements reserving.Store using GORM.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by gorm.DB.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate provisions every relation the store reads and writes.
func (store *Store) Migrate() error {
	return store.db.AutoMigrate(Models()...)
}

// SeedHODCodes inserts reference hod codes, leaving existing rows untouched.
func (store *Store) SeedHODCodes(ctx context.Context, codes []reserving.HODCode) error {
	now := time.Now().UTC()
	for _, code := range codes {
		model := toHODCodeModel(code, now)
		err := store.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "code"}},
				DoNothing: true,
			}).
			Create(&model).Error
		if err != nil {
			return wrapStoreError(errorSubjectHODCode, errorCodeInsert, err)
		}
	}
	return nil
}

// WithTx executes fn within a transaction.
func (store *Store) WithTx(ctx context.Context, fn func(ctx context.Context, txStore reserving.Store) error) error {
	return store.db.WithContext(ctx).Transaction(func(transaction *gorm.DB) error {
		return fn(ctx, &Store{db: transaction})
	})
}

func (store *Store) ListReserves(ctx context.Context, projectID reserving.ProjectID) ([]reserving.ReserveRecord, error) {
	var rows []Reserve
	err := store.db.WithContext(ctx).
		Where("project_id = ?", projectID.String()).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapReadError(errorSubjectReserve, errorCodeList, err)
	}
	records := make([]reserving.ReserveRecord, 0, len(rows))
	for _, row := range rows {
		record, err := mapReserveRow(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectReserve, errorCodeInvalid, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (store *Store) GetReserve(ctx context.Context, projectID reserving.ProjectID, reserveID reserving.ReserveID) (reserving.ReserveRecord, error) {
	var row Reserve
	err := store.db.WithContext(ctx).
		Where("project_id = ? AND reserve_id = ?", projectID.String(), reserveID.String()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reserving.ReserveRecord{}, wrapStoreError(errorSubjectReserve, errorCodeGet, reserving.ErrUnknownReserve)
		}
		return reserving.ReserveRecord{}, wrapReadError(errorSubjectReserve, errorCodeGet, err)
	}
	record, err := mapReserveRow(row)
	if err != nil {
		return reserving.ReserveRecord{}, wrapStoreError(errorSubjectReserve, errorCodeInvalid, err)
	}
	return record, nil
}

func (store *Store) InsertReserve(ctx context.Context, record reserving.ReserveRecord) error {
	model := toReserveModel(record)
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectReserve, errorCodeInsert, err)
	}
	return nil
}

func (store *Store) UpdateReserveStatus(ctx context.Context, projectID reserving.ProjectID, reserveID reserving.ReserveID, from reserving.ReserveStatus, to reserving.ReserveStatus, approval *reserving.ApprovalStamp) error {
	assignments := map[string]interface{}{"status": to.String()}
	if approval != nil {
		approvedAt := time.Unix(approval.ApprovedUnixUTC, 0).UTC()
		assignments["approved_by"] = approval.ApprovedBy
		assignments["approved_at"] = approvedAt
	}
	result := store.db.WithContext(ctx).
		Model(&Reserve{}).
		Where("project_id = ? AND reserve_id = ? AND status = ?", projectID.String(), reserveID.String(), from.String()).
		Updates(assignments)
	if result.Error != nil {
		return wrapStoreError(errorSubjectReserve, errorCodeUpdateStatus, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectReserve, errorCodeUpdateStatus, reserving.ErrInvalidStateTransition)
	}
	return nil
}

func (store *Store) SupersedeApprovedReserves(ctx context.Context, projectID reserving.ProjectID, except reserving.ReserveID) error {
	err := store.db.WithContext(ctx).
		Model(&Reserve{}).
		Where("project_id = ? AND status = ? AND reserve_id <> ?", projectID.String(), reserving.ReserveStatusApproved.String(), except.String()).
		Update("status", reserving.ReserveStatusSuperseded.String()).Error
	if err != nil {
		return wrapStoreError(errorSubjectReserve, errorCodeSupersede, err)
	}
	return nil
}

func (store *Store) ListDamageItems(ctx context.Context, projectID reserving.ProjectID) ([]reserving.DamageItem, error) {
	var rows []DamageItem
	err := store.db.WithContext(ctx).
		Where("project_id = ?", projectID.String()).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapReadError(errorSubjectDamageItem, errorCodeList, err)
	}
	items := make([]reserving.DamageItem, 0, len(rows))
	for _, row := range rows {
		item, err := mapDamageItemRow(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectDamageItem, errorCodeInvalid, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (store *Store) GetDamageItem(ctx context.Context, projectID reserving.ProjectID, itemID reserving.DamageItemID) (reserving.DamageItem, error) {
	var row DamageItem
	err := store.db.WithContext(ctx).
		Where("project_id = ? AND item_id = ?", projectID.String(), itemID.String()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reserving.DamageItem{}, wrapStoreError(errorSubjectDamageItem, errorCodeGet, reserving.ErrUnknownDamageItem)
		}
		return reserving.DamageItem{}, wrapReadError(errorSubjectDamageItem, errorCodeGet, err)
	}
	item, err := mapDamageItemRow(row)
	if err != nil {
		return reserving.DamageItem{}, wrapStoreError(errorSubjectDamageItem, errorCodeInvalid, err)
	}
	return item, nil
}

func (store *Store) InsertDamageItem(ctx context.Context, item reserving.DamageItem) error {
	model := toDamageItemModel(item)
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectDamageItem, errorCodeInsert, err)
	}
	return nil
}

func (store *Store) UpdateDamageItem(ctx context.Context, item reserving.DamageItem) error {
	model := toDamageItemModel(item)
	result := store.db.WithContext(ctx).
		Model(&DamageItem{}).
		Where("project_id = ? AND item_id = ?", item.ProjectID.String(), item.ItemID.String()).
		Select("*").
		Omit("item_id", "project_id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return wrapStoreError(errorSubjectDamageItem, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectDamageItem, errorCodeUpdate, reserving.ErrUnknownDamageItem)
	}
	return nil
}

func (store *Store) UpdateDamageItemStatus(ctx context.Context, projectID reserving.ProjectID, itemID reserving.DamageItemID, from reserving.DamageStatus, to reserving.DamageStatus) error {
	result := store.db.WithContext(ctx).
		Model(&DamageItem{}).
		Where("project_id = ? AND item_id = ? AND status = ?", projectID.String(), itemID.String(), from.String()).
		Update("status", to.String())
	if result.Error != nil {
		return wrapStoreError(errorSubjectDamageItem, errorCodeUpdateStatus, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectDamageItem, errorCodeUpdateStatus, reserving.ErrInvalidStateTransition)
	}
	return nil
}

func (store *Store) GetHODCode(ctx context.Context, codeID reserving.HODCodeID) (reserving.HODCode, error) {
	var row HODCode
	err := store.db.WithContext(ctx).
		Where("code_id = ?", codeID.String()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reserving.HODCode{}, wrapStoreError(errorSubjectHODCode, errorCodeGet, reserving.ErrUnknownHODCode)
		}
		return reserving.HODCode{}, wrapReadError(errorSubjectHODCode, errorCodeGet, err)
	}
	code, err := mapHODCodeRow(row)
	if err != nil {
		return reserving.HODCode{}, wrapStoreError(errorSubjectHODCode, errorCodeInvalid, err)
	}
	return code, nil
}

func (store *Store) ListHODCodes(ctx context.Context) ([]reserving.HODCode, error) {
	var rows []HODCode
	err := store.db.WithContext(ctx).
		Order("code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapReadError(errorSubjectHODCode, errorCodeList, err)
	}
	codes := make([]reserving.HODCode, 0, len(rows))
	for _, row := range rows {
		code, err := mapHODCodeRow(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectHODCode, errorCodeInvalid, err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func (store *Store) ListPCSums(ctx context.Context, projectID reserving.ProjectID) ([]reserving.PCSum, error) {
	var rows []PCSum
	err := store.db.WithContext(ctx).
		Where("project_id = ?", projectID.String()).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapReadError(errorSubjectPCSum, errorCodeList, err)
	}
	sums := make([]reserving.PCSum, 0, len(rows))
	for _, row := range rows {
		sum, err := mapPCSumRow(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectPCSum, errorCodeInvalid, err)
		}
		sums = append(sums, sum)
	}
	return sums, nil
}

func (store *Store) GetPCSum(ctx context.Context, projectID reserving.ProjectID, pcSumID reserving.PCSumID) (reserving.PCSum, error) {
	var row PCSum
	err := store.db.WithContext(ctx).
		Where("project_id = ? AND pc_sum_id = ?", projectID.String(), pcSumID.String()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reserving.PCSum{}, wrapStoreError(errorSubjectPCSum, errorCodeGet, reserving.ErrUnknownPCSum)
		}
		return reserving.PCSum{}, wrapReadError(errorSubjectPCSum, errorCodeGet, err)
	}
	sum, err := mapPCSumRow(row)
	if err != nil {
		return reserving.PCSum{}, wrapStoreError(errorSubjectPCSum, errorCodeInvalid, err)
	}
	return sum, nil
}

func (store *Store) InsertPCSum(ctx context.Context, sum reserving.PCSum) error {
	model := toPCSumModel(sum)
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectPCSum, errorCodeInsert, err)
	}
	return nil
}

func (store *Store) UpdatePCSum(ctx context.Context, sum reserving.PCSum) error {
	model := toPCSumModel(sum)
	result := store.db.WithContext(ctx).
		Model(&PCSum{}).
		Where("project_id = ? AND pc_sum_id = ?", sum.ProjectID.String(), sum.PCSumID.String()).
		Select("*").
		Omit("pc_sum_id", "project_id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return wrapStoreError(errorSubjectPCSum, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectPCSum, errorCodeUpdate, reserving.ErrUnknownPCSum)
	}
	return nil
}

func (store *Store) UpdatePCSumStatus(ctx context.Context, projectID reserving.ProjectID, pcSumID reserving.PCSumID, from reserving.PCSumStatus, to reserving.PCSumStatus) error {
	result := store.db.WithContext(ctx).
		Model(&PCSum{}).
		Where("project_id = ? AND pc_sum_id = ? AND status = ?", projectID.String(), pcSumID.String(), from.String()).
		Update("status", to.String())
	if result.Error != nil {
		return wrapStoreError(errorSubjectPCSum, errorCodeUpdateStatus, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectPCSum, errorCodeUpdateStatus, reserving.ErrInvalidStateTransition)
	}
	return nil
}

func (store *Store) ListSurveyForms(ctx context.Context, projectID reserving.ProjectID) ([]reserving.SurveyForm, error) {
	var rows []SurveyForm
	err := store.db.WithContext(ctx).
		Where("project_id = ?", projectID.String()).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapReadError(errorSubjectSurveyForm, errorCodeList, err)
	}
	forms := make([]reserving.SurveyForm, 0, len(rows))
	for _, row := range rows {
		form, err := mapSurveyFormRow(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectSurveyForm, errorCodeInvalid, err)
		}
		forms = append(forms, form)
	}
	return forms, nil
}

func (store *Store) InsertSurveyForm(ctx context.Context, form reserving.SurveyForm) error {
	model := SurveyForm{
		FormID:    form.FormID,
		ProjectID: form.ProjectID.String(),
		FormType:  form.FormType,
		Payload:   datatypesJSON(form.Payload),
		CreatedBy: form.CreatedBy.String(),
		CreatedAt: time.Unix(form.CreatedUnixUTC, 0).UTC(),
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectSurveyForm, errorCodeInsert, err)
	}
	return nil
}

func (store *Store) ListScopeVariations(ctx context.Context, projectID reserving.ProjectID) ([]reserving.ScopeVariation, error) {
	var rows []ScopeVariation
	err := store.db.WithContext(ctx).
		Where("project_id = ?", projectID.String()).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapReadError(errorSubjectScopeVariation, errorCodeList, err)
	}
	variations := make([]reserving.ScopeVariation, 0, len(rows))
	for _, row := range rows {
		variation, err := mapScopeVariationRow(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectScopeVariation, errorCodeInvalid, err)
		}
		variations = append(variations, variation)
	}
	return variations, nil
}

func (store *Store) InsertScopeVariation(ctx context.Context, variation reserving.ScopeVariation) error {
	model := ScopeVariation{
		VariationID: variation.VariationID,
		ProjectID:   variation.ProjectID.String(),
		Description: variation.Description,
		CostDelta:   variation.CostDelta,
		Payload:     datatypesJSON(variation.Payload),
		CreatedBy:   variation.CreatedBy.String(),
		CreatedAt:   time.Unix(variation.CreatedUnixUTC, 0).UTC(),
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectScopeVariation, errorCodeInsert, err)
	}
	return nil
}

func (store *Store) ListContractorAssessments(ctx context.Context, projectID reserving.ProjectID) ([]reserving.ContractorAssessment, error) {
	var rows []ContractorAssessment
	err := store.db.WithContext(ctx).
		Where("project_id = ?", projectID.String()).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapReadError(errorSubjectContractorAssessment, errorCodeList, err)
	}
	assessments := make([]reserving.ContractorAssessment, 0, len(rows))
	for _, row := range rows {
		assessment, err := mapContractorAssessmentRow(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectContractorAssessment, errorCodeInvalid, err)
		}
		assessments = append(assessments, assessment)
	}
	return assessments, nil
}

func (store *Store) InsertContractorAssessment(ctx context.Context, assessment reserving.ContractorAssessment) error {
	model := ContractorAssessment{
		AssessmentID: assessment.AssessmentID,
		ProjectID:    assessment.ProjectID.String(),
		Contractor:   assessment.Contractor,
		QuotedAmount: assessment.QuotedAmount,
		Payload:      datatypesJSON(assessment.Payload),
		CreatedBy:    assessment.CreatedBy.String(),
		CreatedAt:    time.Unix(assessment.CreatedUnixUTC, 0).UTC(),
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return wrapStoreError(errorSubjectContractorAssessment, errorCodeInsert, err)
	}
	return nil
}

func wrapStoreError(subject string, code string, err error) error {
	return reserving.WrapError(errorOperationStore, subject, code, err)
}

// wrapReadError downgrades a read against an unprovisioned relation to
// ErrMissingSchema so the service layer can treat it as an empty dataset.
func wrapReadError(subject string, code string, err error) error {
	if isMissingRelation(err) {
		return wrapStoreError(subject, code, reserving.ErrMissingSchema)
	}
	return wrapStoreError(subject, code, err)
}

func isMissingRelation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTableCode
	}
	return strings.Contains(err.Error(), "no such table")
}

func datatypesJSON(raw []byte) datatypes.JSON {
	if len(raw) == 0 {
		return datatypes.JSON([]byte(emptyPayloadJSON))
	}
	return datatypes.JSON(raw)
}
