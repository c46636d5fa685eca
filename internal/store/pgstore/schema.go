package pgstore

import (
	"context"

	"github.com/claimworks/reserving/pkg/reserving"
)

var schemaStatements = []string{
	`create table if not exists hod_codes(
		code_id uuid primary key default gen_random_uuid(),
		code text not null unique,
		description text not null,
		category text not null,
		unit text not null,
		typical_rate_low numeric(12,2) not null,
		typical_rate_high numeric(12,2) not null,
		created_at timestamptz not null default now()
	)`,
	`create table if not exists reserves(
		reserve_id uuid primary key,
		project_id text not null,
		reserve_type text not null,
		status text not null,
		building_estimated numeric(14,2) not null,
		building_actual numeric(14,2) not null,
		building_variance numeric(14,2) not null,
		contents_estimated numeric(14,2) not null,
		contents_actual numeric(14,2) not null,
		contents_variance numeric(14,2) not null,
		consequential_estimated numeric(14,2) not null,
		consequential_actual numeric(14,2) not null,
		consequential_variance numeric(14,2) not null,
		alt_accommodation_estimated numeric(14,2) not null,
		alt_accommodation_actual numeric(14,2) not null,
		alt_accommodation_variance numeric(14,2) not null,
		professional_fees_estimated numeric(14,2) not null,
		professional_fees_actual numeric(14,2) not null,
		professional_fees_variance numeric(14,2) not null,
		total_estimated numeric(14,2) not null,
		total_actual numeric(14,2) not null,
		total_variance numeric(14,2) not null,
		currency text not null,
		notes text not null default '',
		created_by text not null,
		approved_by text,
		approved_at timestamptz,
		created_at timestamptz not null,
		updated_at timestamptz not null
	)`,
	`create index if not exists idx_reserves_project_created on reserves(project_id, created_at)`,
	`create table if not exists damage_items(
		item_id uuid primary key,
		project_id text not null,
		hod_code_id uuid not null references hod_codes(code_id),
		reserve_id uuid,
		description text not null,
		location text not null default '',
		quantity numeric(12,2) not null,
		unit_cost numeric(14,2) not null,
		vat_rate_percent numeric(6,2) not null,
		total_cost numeric(14,2) not null,
		vat_amount numeric(14,2) not null,
		total_including_vat numeric(14,2) not null,
		urgency text not null,
		extent text not null,
		status text not null,
		created_by text not null,
		created_at timestamptz not null,
		updated_at timestamptz not null
	)`,
	`create index if not exists idx_damage_items_project on damage_items(project_id, created_at)`,
	`create table if not exists pc_sums(
		pc_sum_id uuid primary key,
		project_id text not null,
		description text not null,
		allocated_amount numeric(14,2) not null,
		spent_amount numeric(14,2) not null,
		remaining_amount numeric(14,2) not null,
		status text not null,
		approval_required boolean not null,
		created_by text not null,
		created_at timestamptz not null,
		updated_at timestamptz not null
	)`,
	`create index if not exists idx_pc_sums_project on pc_sums(project_id)`,
	`create table if not exists survey_forms(
		form_id uuid primary key,
		project_id text not null,
		form_type text not null,
		payload jsonb not null,
		created_by text not null,
		created_at timestamptz not null
	)`,
	`create index if not exists idx_survey_forms_project on survey_forms(project_id)`,
	`create table if not exists scope_variations(
		variation_id uuid primary key,
		project_id text not null,
		description text not null,
		cost_delta numeric(14,2) not null,
		payload jsonb not null,
		created_by text not null,
		created_at timestamptz not null
	)`,
	`create index if not exists idx_scope_variations_project on scope_variations(project_id)`,
	`create table if not exists contractor_assessments(
		assessment_id uuid primary key,
		project_id text not null,
		contractor text not null,
		quoted_amount numeric(14,2) not null,
		payload jsonb not null,
		created_by text not null,
		created_at timestamptz not null
	)`,
	`create index if not exists idx_contractor_assessments_project on contractor_assessments(project_id)`,
}

const sqlSeedHODCode = `
	insert into hod_codes(code_id, code, description, category, unit, typical_rate_low, typical_rate_high)
	values($1, $2, $3, $4, $5, $6, $7)
	on conflict (code) do nothing
`

// EnsureSchema provisions every relation the store reads and writes.
func (store *Store) EnsureSchema(ctx context.Context) error {
	for _, statement := range schemaStatements {
		if _, err := store.pool.Exec(ctx, statement); err != nil {
			return wrapStoreError(errorSubjectTransaction, errorCodeMigrate, err)
		}
	}
	return nil
}

// SeedHODCodes inserts reference hod codes, leaving existing rows untouched.
func (store *Store) SeedHODCodes(ctx context.Context, codes []reserving.HODCode) error {
	for _, code := range codes {
		_, err := store.pool.Exec(ctx, sqlSeedHODCode,
			code.CodeID.String(),
			code.Code,
			code.Description,
			code.Category.String(),
			code.Unit.String(),
			code.TypicalRateLow.String(),
			code.TypicalRateHigh.String(),
		)
		if err != nil {
			return wrapStoreError(errorSubjectHODCode, errorCodeInsert, err)
		}
	}
	return nil
}
