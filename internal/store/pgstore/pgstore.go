package pgstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claimworks/reserving/pkg/reserving"
)

const (
	pgUndefinedTableCode = "42P01"

	errorOperationStore = "store"

	errorSubjectTransaction          = "transaction"
	errorSubjectReserve              = "reserve"
	errorSubjectDamageItem           = "damage_item"
	errorSubjectHODCode              = "hod_code"
	errorSubjectPCSum                = "pc_sum"
	errorSubjectSurveyForm           = "survey_form"
	errorSubjectScopeVariation       = "scope_variation"
	errorSubjectContractorAssessment = "contractor_assessment"

	errorCodeBegin        = "begin"
	errorCodeCommit       = "commit"
	errorCodeGet          = "get"
	errorCodeInsert       = "insert"
	errorCodeInvalid      = "invalid"
	errorCodeList         = "list"
	errorCodeMigrate      = "migrate"
	errorCodeSupersede    = "supersede"
	errorCodeUpdate       = "update"
	errorCodeUpdateStatus = "update_status"
)

const (
	sqlInsertReserve = `
		insert into reserves(
			reserve_id, project_id, reserve_type, status,
			building_estimated, building_actual, building_variance,
			contents_estimated, contents_actual, contents_variance,
			consequential_estimated, consequential_actual, consequential_variance,
			alt_accommodation_estimated, alt_accommodation_actual, alt_accommodation_variance,
			professional_fees_estimated, professional_fees_actual, professional_fees_variance,
			total_estimated, total_actual, total_variance,
			currency, notes, created_by, approved_by, approved_at, created_at, updated_at
		)
		values(
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10,
			$11, $12, $13,
			$14, $15, $16,
			$17, $18, $19,
			$20, $21, $22,
			$23, $24, $25,
			nullif($26,''),
			to_timestamp(nullif($27,0)),
			to_timestamp($28),
			to_timestamp($29)
		)
	`

	sqlReserveColumns = `
		reserve_id::text, project_id, reserve_type, status,
		building_estimated::text, building_actual::text, building_variance::text,
		contents_estimated::text, contents_actual::text, contents_variance::text,
		consequential_estimated::text, consequential_actual::text, consequential_variance::text,
		alt_accommodation_estimated::text, alt_accommodation_actual::text, alt_accommodation_variance::text,
		professional_fees_estimated::text, professional_fees_actual::text, professional_fees_variance::text,
		total_estimated::text, total_actual::text, total_variance::text,
		currency, notes, created_by,
		coalesce(approved_by,''),
		coalesce(extract(epoch from approved_at)::bigint,0),
		extract(epoch from created_at)::bigint,
		extract(epoch from updated_at)::bigint
	`

	sqlListReserves = `
		select ` + sqlReserveColumns + `
		from reserves
		where project_id = $1
		order by created_at desc
	`

	sqlSelectReserve = `
		select ` + sqlReserveColumns + `
		from reserves
		where project_id = $1 and reserve_id = $2
		for update
	`

	sqlUpdateReserveStatus = `
		update reserves
		set status = $4, updated_at = now()
		where project_id = $1 and reserve_id = $2 and status = $3
	`

	sqlApproveReserve = `
		update reserves
		set status = $4, approved_by = $5, approved_at = to_timestamp($6), updated_at = now()
		where project_id = $1 and reserve_id = $2 and status = $3
	`

	sqlSupersedeApprovedReserves = `
		update reserves
		set status = 'superseded', updated_at = now()
		where project_id = $1 and status = 'approved' and reserve_id <> $2
	`

	sqlInsertDamageItem = `
		insert into damage_items(
			item_id, project_id, hod_code_id, reserve_id, description, location,
			quantity, unit_cost, vat_rate_percent, total_cost, vat_amount, total_including_vat,
			urgency, extent, status, created_by, created_at, updated_at
		)
		values(
			$1, $2, $3, nullif($4,''), $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, to_timestamp($17), to_timestamp($18)
		)
	`

	sqlDamageItemColumns = `
		item_id::text, project_id, hod_code_id::text, coalesce(reserve_id::text,''),
		description, location,
		quantity::text, unit_cost::text, vat_rate_percent::text,
		total_cost::text, vat_amount::text, total_including_vat::text,
		urgency, extent, status, created_by,
		extract(epoch from created_at)::bigint,
		extract(epoch from updated_at)::bigint
	`

	sqlListDamageItems = `
		select ` + sqlDamageItemColumns + `
		from damage_items
		where project_id = $1
		order by created_at desc
	`

	sqlSelectDamageItem = `
		select ` + sqlDamageItemColumns + `
		from damage_items
		where project_id = $1 and item_id = $2
		for update
	`

	sqlUpdateDamageItem = `
		update damage_items
		set
			hod_code_id = $3, reserve_id = nullif($4,''), description = $5, location = $6,
			quantity = $7, unit_cost = $8, vat_rate_percent = $9,
			total_cost = $10, vat_amount = $11, total_including_vat = $12,
			urgency = $13, extent = $14, status = $15,
			updated_at = to_timestamp($16)
		where project_id = $1 and item_id = $2
	`

	sqlUpdateDamageItemStatus = `
		update damage_items
		set status = $4, updated_at = now()
		where project_id = $1 and item_id = $2 and status = $3
	`

	sqlHODCodeColumns = `
		code_id::text, code, description, category, unit,
		typical_rate_low::text, typical_rate_high::text
	`

	sqlSelectHODCode = `
		select ` + sqlHODCodeColumns + `
		from hod_codes
		where code_id = $1
	`

	sqlListHODCodes = `
		select ` + sqlHODCodeColumns + `
		from hod_codes
		order by code asc
	`

	sqlInsertPCSum = `
		insert into pc_sums(
			pc_sum_id, project_id, description,
			allocated_amount, spent_amount, remaining_amount,
			status, approval_required, created_by, created_at, updated_at
		)
		values($1, $2, $3, $4, $5, $6, $7, $8, $9, to_timestamp($10), to_timestamp($11))
	`

	sqlPCSumColumns = `
		pc_sum_id::text, project_id, description,
		allocated_amount::text, spent_amount::text, remaining_amount::text,
		status, approval_required, created_by,
		extract(epoch from created_at)::bigint,
		extract(epoch from updated_at)::bigint
	`

	sqlListPCSums = `
		select ` + sqlPCSumColumns + `
		from pc_sums
		where project_id = $1
		order by created_at desc
	`

	sqlSelectPCSum = `
		select ` + sqlPCSumColumns + `
		from pc_sums
		where project_id = $1 and pc_sum_id = $2
		for update
	`

	sqlUpdatePCSum = `
		update pc_sums
		set
			description = $3,
			allocated_amount = $4, spent_amount = $5, remaining_amount = $6,
			status = $7, approval_required = $8,
			updated_at = to_timestamp($9)
		where project_id = $1 and pc_sum_id = $2
	`

	sqlUpdatePCSumStatus = `
		update pc_sums
		set status = $4, updated_at = now()
		where project_id = $1 and pc_sum_id = $2 and status = $3
	`

	sqlInsertSurveyForm = `
		insert into survey_forms(form_id, project_id, form_type, payload, created_by, created_at)
		values($1, $2, $3, coalesce(nullif($4,''),'{}')::jsonb, $5, to_timestamp($6))
	`

	sqlListSurveyForms = `
		select form_id::text, project_id, form_type, payload::text, created_by,
			extract(epoch from created_at)::bigint
		from survey_forms
		where project_id = $1
		order by created_at desc
	`

	sqlInsertScopeVariation = `
		insert into scope_variations(variation_id, project_id, description, cost_delta, payload, created_by, created_at)
		values($1, $2, $3, $4, coalesce(nullif($5,''),'{}')::jsonb, $6, to_timestamp($7))
	`

	sqlListScopeVariations = `
		select variation_id::text, project_id, description, cost_delta::text, payload::text, created_by,
			extract(epoch from created_at)::bigint
		from scope_variations
		where project_id = $1
		order by created_at desc
	`

	sqlInsertContractorAssessment = `
		insert into contractor_assessments(assessment_id, project_id, contractor, quoted_amount, payload, created_by, created_at)
		values($1, $2, $3, $4, coalesce(nullif($5,''),'{}')::jsonb, $6, to_timestamp($7))
	`

	sqlListContractorAssessments = `
		select assessment_id::text, project_id, contractor, quoted_amount::text, payload::text, created_by,
			extract(epoch from created_at)::bigint
		from contractor_assessments
		where project_id = $1
		order by created_at desc
	`
)

// dbtx is the query surface shared by a pgx pool and an open transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements reserving.Store using a pgx connection pool (autocommit).
type Store struct {
	session
	pool *pgxpool.Pool
}

// TxStore implements reserving.Store for an active transaction.
type TxStore struct {
	session
}

// New returns a Store backed by a pgx pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{session: session{db: pool}, pool: pool}
}

func (store *Store) WithTx(ctx context.Context, fn func(ctx context.Context, txStore reserving.Store) error) error {
	tx, err := store.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeBegin, err)
	}
	transactionStore := &TxStore{session: session{db: tx}}
	if err := fn(ctx, transactionStore); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeCommit, err)
	}
	return nil
}

// WithTx on an open transaction reuses it; nesting does not start a new one.
func (store *TxStore) WithTx(ctx context.Context, fn func(ctx context.Context, txStore reserving.Store) error) error {
	return fn(ctx, store)
}

// session carries the data methods shared by pool-backed and tx-backed stores.
type session struct {
	db dbtx
}

func (store *session) ListReserves(ctx context.Context, projectID reserving.ProjectID) ([]reserving.ReserveRecord, error) {
	rows, err := store.db.Query(ctx, sqlListReserves, projectID.String())
	if err != nil {
		return nil, wrapReadError(errorSubjectReserve, errorCodeList, err)
	}
	defer rows.Close()
	records := make([]reserving.ReserveRecord, 0, 8)
	for rows.Next() {
		record, err := scanReserve(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectReserve, errorCodeInvalid, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadError(errorSubjectReserve, errorCodeList, err)
	}
	return records, nil
}

func (store *session) GetReserve(ctx context.Context, projectID reserving.ProjectID, reserveID reserving.ReserveID) (reserving.ReserveRecord, error) {
	record, err := scanReserve(store.db.QueryRow(ctx, sqlSelectReserve, projectID.String(), reserveID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reserving.ReserveRecord{}, wrapStoreError(errorSubjectReserve, errorCodeGet, reserving.ErrUnknownReserve)
		}
		return reserving.ReserveRecord{}, wrapReadError(errorSubjectReserve, errorCodeGet, err)
	}
	return record, nil
}

func (store *session) InsertReserve(ctx context.Context, record reserving.ReserveRecord) error {
	breakdown := record.Breakdown
	_, err := store.db.Exec(ctx, sqlInsertReserve,
		record.ReserveID.String(),
		record.ProjectID.String(),
		record.ReserveType.String(),
		record.Status.String(),
		breakdown.Building.Estimated.String(), breakdown.Building.Actual.String(), breakdown.Building.Variance.String(),
		breakdown.Contents.Estimated.String(), breakdown.Contents.Actual.String(), breakdown.Contents.Variance.String(),
		breakdown.Consequential.Estimated.String(), breakdown.Consequential.Actual.String(), breakdown.Consequential.Variance.String(),
		breakdown.AlternativeAccommodation.Estimated.String(), breakdown.AlternativeAccommodation.Actual.String(), breakdown.AlternativeAccommodation.Variance.String(),
		breakdown.ProfessionalFees.Estimated.String(), breakdown.ProfessionalFees.Actual.String(), breakdown.ProfessionalFees.Variance.String(),
		breakdown.Total.Estimated.String(), breakdown.Total.Actual.String(), breakdown.Total.Variance.String(),
		record.Currency,
		record.Notes,
		record.CreatedBy.String(),
		record.ApprovedBy,
		record.ApprovedUnixUTC,
		record.CreatedUnixUTC,
		record.UpdatedUnixUTC,
	)
	if err != nil {
		return wrapStoreError(errorSubjectReserve, errorCodeInsert, err)
	}
	return nil
}

func (store *session) UpdateReserveStatus(ctx context.Context, projectID reserving.ProjectID, reserveID reserving.ReserveID, from reserving.ReserveStatus, to reserving.ReserveStatus, approval *reserving.ApprovalStamp) error {
	var (
		tag pgconn.CommandTag
		err error
	)
	if approval != nil {
		tag, err = store.db.Exec(ctx, sqlApproveReserve,
			projectID.String(), reserveID.String(), from.String(), to.String(),
			approval.ApprovedBy, approval.ApprovedUnixUTC,
		)
	} else {
		tag, err = store.db.Exec(ctx, sqlUpdateReserveStatus,
			projectID.String(), reserveID.String(), from.String(), to.String(),
		)
	}
	if err != nil {
		return wrapStoreError(errorSubjectReserve, errorCodeUpdateStatus, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectReserve, errorCodeUpdateStatus, reserving.ErrInvalidStateTransition)
	}
	return nil
}

func (store *session) SupersedeApprovedReserves(ctx context.Context, projectID reserving.ProjectID, except reserving.ReserveID) error {
	_, err := store.db.Exec(ctx, sqlSupersedeApprovedReserves, projectID.String(), except.String())
	if err != nil {
		return wrapStoreError(errorSubjectReserve, errorCodeSupersede, err)
	}
	return nil
}

func (store *session) ListDamageItems(ctx context.Context, projectID reserving.ProjectID) ([]reserving.DamageItem, error) {
	rows, err := store.db.Query(ctx, sqlListDamageItems, projectID.String())
	if err != nil {
		return nil, wrapReadError(errorSubjectDamageItem, errorCodeList, err)
	}
	defer rows.Close()
	items := make([]reserving.DamageItem, 0, 16)
	for rows.Next() {
		item, err := scanDamageItem(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectDamageItem, errorCodeInvalid, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadError(errorSubjectDamageItem, errorCodeList, err)
	}
	return items, nil
}

func (store *session) GetDamageItem(ctx context.Context, projectID reserving.ProjectID, itemID reserving.DamageItemID) (reserving.DamageItem, error) {
	item, err := scanDamageItem(store.db.QueryRow(ctx, sqlSelectDamageItem, projectID.String(), itemID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reserving.DamageItem{}, wrapStoreError(errorSubjectDamageItem, errorCodeGet, reserving.ErrUnknownDamageItem)
		}
		return reserving.DamageItem{}, wrapReadError(errorSubjectDamageItem, errorCodeGet, err)
	}
	return item, nil
}

func (store *session) InsertDamageItem(ctx context.Context, item reserving.DamageItem) error {
	_, err := store.db.Exec(ctx, sqlInsertDamageItem,
		item.ItemID.String(),
		item.ProjectID.String(),
		item.HODCodeID.String(),
		item.ReserveID,
		item.Description,
		item.Location,
		item.Quantity.String(),
		item.UnitCost.String(),
		item.VATRatePercent.String(),
		item.Totals.TotalCost.String(),
		item.Totals.VATAmount.String(),
		item.Totals.TotalIncludingVAT.String(),
		item.Urgency.String(),
		item.Extent.String(),
		item.Status.String(),
		item.CreatedBy.String(),
		item.CreatedUnixUTC,
		item.UpdatedUnixUTC,
	)
	if err != nil {
		return wrapStoreError(errorSubjectDamageItem, errorCodeInsert, err)
	}
	return nil
}

func (store *session) UpdateDamageItem(ctx context.Context, item reserving.DamageItem) error {
	tag, err := store.db.Exec(ctx, sqlUpdateDamageItem,
		item.ProjectID.String(),
		item.ItemID.String(),
		item.HODCodeID.String(),
		item.ReserveID,
		item.Description,
		item.Location,
		item.Quantity.String(),
		item.UnitCost.String(),
		item.VATRatePercent.String(),
		item.Totals.TotalCost.String(),
		item.Totals.VATAmount.String(),
		item.Totals.TotalIncludingVAT.String(),
		item.Urgency.String(),
		item.Extent.String(),
		item.Status.String(),
		item.UpdatedUnixUTC,
	)
	if err != nil {
		return wrapStoreError(errorSubjectDamageItem, errorCodeUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectDamageItem, errorCodeUpdate, reserving.ErrUnknownDamageItem)
	}
	return nil
}

func (store *session) UpdateDamageItemStatus(ctx context.Context, projectID reserving.ProjectID, itemID reserving.DamageItemID, from reserving.DamageStatus, to reserving.DamageStatus) error {
	tag, err := store.db.Exec(ctx, sqlUpdateDamageItemStatus,
		projectID.String(), itemID.String(), from.String(), to.String(),
	)
	if err != nil {
		return wrapStoreError(errorSubjectDamageItem, errorCodeUpdateStatus, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectDamageItem, errorCodeUpdateStatus, reserving.ErrInvalidStateTransition)
	}
	return nil
}

func (store *session) GetHODCode(ctx context.Context, codeID reserving.HODCodeID) (reserving.HODCode, error) {
	code, err := scanHODCode(store.db.QueryRow(ctx, sqlSelectHODCode, codeID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reserving.HODCode{}, wrapStoreError(errorSubjectHODCode, errorCodeGet, reserving.ErrUnknownHODCode)
		}
		return reserving.HODCode{}, wrapReadError(errorSubjectHODCode, errorCodeGet, err)
	}
	return code, nil
}

func (store *session) ListHODCodes(ctx context.Context) ([]reserving.HODCode, error) {
	rows, err := store.db.Query(ctx, sqlListHODCodes)
	if err != nil {
		return nil, wrapReadError(errorSubjectHODCode, errorCodeList, err)
	}
	defer rows.Close()
	codes := make([]reserving.HODCode, 0, 32)
	for rows.Next() {
		code, err := scanHODCode(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectHODCode, errorCodeInvalid, err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadError(errorSubjectHODCode, errorCodeList, err)
	}
	return codes, nil
}

func (store *session) ListPCSums(ctx context.Context, projectID reserving.ProjectID) ([]reserving.PCSum, error) {
	rows, err := store.db.Query(ctx, sqlListPCSums, projectID.String())
	if err != nil {
		return nil, wrapReadError(errorSubjectPCSum, errorCodeList, err)
	}
	defer rows.Close()
	sums := make([]reserving.PCSum, 0, 8)
	for rows.Next() {
		sum, err := scanPCSum(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectPCSum, errorCodeInvalid, err)
		}
		sums = append(sums, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadError(errorSubjectPCSum, errorCodeList, err)
	}
	return sums, nil
}

func (store *session) GetPCSum(ctx context.Context, projectID reserving.ProjectID, pcSumID reserving.PCSumID) (reserving.PCSum, error) {
	sum, err := scanPCSum(store.db.QueryRow(ctx, sqlSelectPCSum, projectID.String(), pcSumID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reserving.PCSum{}, wrapStoreError(errorSubjectPCSum, errorCodeGet, reserving.ErrUnknownPCSum)
		}
		return reserving.PCSum{}, wrapReadError(errorSubjectPCSum, errorCodeGet, err)
	}
	return sum, nil
}

func (store *session) InsertPCSum(ctx context.Context, sum reserving.PCSum) error {
	_, err := store.db.Exec(ctx, sqlInsertPCSum,
		sum.PCSumID.String(),
		sum.ProjectID.String(),
		sum.Description,
		sum.AllocatedAmount.String(),
		sum.SpentAmount.String(),
		sum.RemainingAmount.String(),
		sum.Status.String(),
		sum.ApprovalRequired,
		sum.CreatedBy.String(),
		sum.CreatedUnixUTC,
		sum.UpdatedUnixUTC,
	)
	if err != nil {
		return wrapStoreError(errorSubjectPCSum, errorCodeInsert, err)
	}
	return nil
}

func (store *session) UpdatePCSum(ctx context.Context, sum reserving.PCSum) error {
	tag, err := store.db.Exec(ctx, sqlUpdatePCSum,
		sum.ProjectID.String(),
		sum.PCSumID.String(),
		sum.Description,
		sum.AllocatedAmount.String(),
		sum.SpentAmount.String(),
		sum.RemainingAmount.String(),
		sum.Status.String(),
		sum.ApprovalRequired,
		sum.UpdatedUnixUTC,
	)
	if err != nil {
		return wrapStoreError(errorSubjectPCSum, errorCodeUpdate, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectPCSum, errorCodeUpdate, reserving.ErrUnknownPCSum)
	}
	return nil
}

func (store *session) UpdatePCSumStatus(ctx context.Context, projectID reserving.ProjectID, pcSumID reserving.PCSumID, from reserving.PCSumStatus, to reserving.PCSumStatus) error {
	tag, err := store.db.Exec(ctx, sqlUpdatePCSumStatus,
		projectID.String(), pcSumID.String(), from.String(), to.String(),
	)
	if err != nil {
		return wrapStoreError(errorSubjectPCSum, errorCodeUpdateStatus, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectPCSum, errorCodeUpdateStatus, reserving.ErrInvalidStateTransition)
	}
	return nil
}

func (store *session) ListSurveyForms(ctx context.Context, projectID reserving.ProjectID) ([]reserving.SurveyForm, error) {
	rows, err := store.db.Query(ctx, sqlListSurveyForms, projectID.String())
	if err != nil {
		return nil, wrapReadError(errorSubjectSurveyForm, errorCodeList, err)
	}
	defer rows.Close()
	forms := make([]reserving.SurveyForm, 0, 8)
	for rows.Next() {
		form, err := scanSurveyForm(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectSurveyForm, errorCodeInvalid, err)
		}
		forms = append(forms, form)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadError(errorSubjectSurveyForm, errorCodeList, err)
	}
	return forms, nil
}

func (store *session) InsertSurveyForm(ctx context.Context, form reserving.SurveyForm) error {
	_, err := store.db.Exec(ctx, sqlInsertSurveyForm,
		form.FormID,
		form.ProjectID.String(),
		form.FormType,
		string(form.Payload),
		form.CreatedBy.String(),
		form.CreatedUnixUTC,
	)
	if err != nil {
		return wrapStoreError(errorSubjectSurveyForm, errorCodeInsert, err)
	}
	return nil
}

func (store *session) ListScopeVariations(ctx context.Context, projectID reserving.ProjectID) ([]reserving.ScopeVariation, error) {
	rows, err := store.db.Query(ctx, sqlListScopeVariations, projectID.String())
	if err != nil {
		return nil, wrapReadError(errorSubjectScopeVariation, errorCodeList, err)
	}
	defer rows.Close()
	variations := make([]reserving.ScopeVariation, 0, 8)
	for rows.Next() {
		variation, err := scanScopeVariation(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectScopeVariation, errorCodeInvalid, err)
		}
		variations = append(variations, variation)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadError(errorSubjectScopeVariation, errorCodeList, err)
	}
	return variations, nil
}

func (store *session) InsertScopeVariation(ctx context.Context, variation reserving.ScopeVariation) error {
	_, err := store.db.Exec(ctx, sqlInsertScopeVariation,
		variation.VariationID,
		variation.ProjectID.String(),
		variation.Description,
		variation.CostDelta.String(),
		string(variation.Payload),
		variation.CreatedBy.String(),
		variation.CreatedUnixUTC,
	)
	if err != nil {
		return wrapStoreError(errorSubjectScopeVariation, errorCodeInsert, err)
	}
	return nil
}

func (store *session) ListContractorAssessments(ctx context.Context, projectID reserving.ProjectID) ([]reserving.ContractorAssessment, error) {
	rows, err := store.db.Query(ctx, sqlListContractorAssessments, projectID.String())
	if err != nil {
		return nil, wrapReadError(errorSubjectContractorAssessment, errorCodeList, err)
	}
	defer rows.Close()
	assessments := make([]reserving.ContractorAssessment, 0, 8)
	for rows.Next() {
		assessment, err := scanContractorAssessment(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectContractorAssessment, errorCodeInvalid, err)
		}
		assessments = append(assessments, assessment)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadError(errorSubjectContractorAssessment, errorCodeList, err)
	}
	return assessments, nil
}

func (store *session) InsertContractorAssessment(ctx context.Context, assessment reserving.ContractorAssessment) error {
	_, err := store.db.Exec(ctx, sqlInsertContractorAssessment,
		assessment.AssessmentID,
		assessment.ProjectID.String(),
		assessment.Contractor,
		assessment.QuotedAmount.String(),
		string(assessment.Payload),
		assessment.CreatedBy.String(),
		assessment.CreatedUnixUTC,
	)
	if err != nil {
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
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTableCode
	}
	return false
}
