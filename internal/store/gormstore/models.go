package gormstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reserve mirrors the reserves table. Category variances are stored
// denormalized alongside their inputs; the domain layer recomputes them on
// every write, so a stored variance is never staler than its inputs.
type Reserve struct {
	ReserveID   string `gorm:"type:uuid;primaryKey"`
	ProjectID   string `gorm:"not null;index:idx_reserves_project_created,priority:1"`
	ReserveType string `gorm:"not null"`
	Status      string `gorm:"not null"`

	BuildingEstimated decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	BuildingActual    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	BuildingVariance  decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	ContentsEstimated decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ContentsActual    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ContentsVariance  decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	ConsequentialEstimated decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ConsequentialActual    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ConsequentialVariance  decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	AltAccommodationEstimated decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AltAccommodationActual    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AltAccommodationVariance  decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	ProfessionalFeesEstimated decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ProfessionalFeesActual    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ProfessionalFeesVariance  decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	TotalEstimated decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalActual    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalVariance  decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	Currency   string     `gorm:"not null"`
	Notes      string     `gorm:""`
	CreatedBy  string     `gorm:"not null"`
	ApprovedBy *string    `gorm:""`
	ApprovedAt *time.Time `gorm:""`
	CreatedAt  time.Time  `gorm:"not null;index:idx_reserves_project_created,priority:2"`
	UpdatedAt  time.Time  `gorm:"not null"`
}

func (Reserve) TableName() string { return "reserves" }

func (reserve *Reserve) BeforeCreate(tx *gorm.DB) error {
	if reserve.ReserveID == "" {
		reserve.ReserveID = uuid.NewString()
	}
	return nil
}

// DamageItem mirrors the damage_items table.
type DamageItem struct {
	ItemID    string  `gorm:"type:uuid;primaryKey"`
	ProjectID string  `gorm:"not null;index:idx_damage_items_project,priority:1"`
	HODCodeID string  `gorm:"type:uuid;not null;index"`
	ReserveID *string `gorm:"type:uuid"`

	Description string `gorm:"not null"`
	Location    string `gorm:""`

	Quantity          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	UnitCost          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	VATRatePercent    decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	TotalCost         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	VATAmount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalIncludingVAT decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	Urgency   string    `gorm:"not null"`
	Extent    string    `gorm:"not null"`
	Status    string    `gorm:"not null"`
	CreatedBy string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_damage_items_project,priority:2"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (DamageItem) TableName() string { return "damage_items" }

func (item *DamageItem) BeforeCreate(tx *gorm.DB) error {
	if item.ItemID == "" {
		item.ItemID = uuid.NewString()
	}
	return nil
}

// HODCode mirrors the hod_codes reference table.
type HODCode struct {
	CodeID          string          `gorm:"type:uuid;primaryKey"`
	Code            string          `gorm:"not null;uniqueIndex"`
	Description     string          `gorm:"not null"`
	Category        string          `gorm:"not null"`
	Unit            string          `gorm:"not null"`
	TypicalRateLow  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TypicalRateHigh decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
}

func (HODCode) TableName() string { return "hod_codes" }

func (code *HODCode) BeforeCreate(tx *gorm.DB) error {
	if code.CodeID == "" {
		code.CodeID = uuid.NewString()
	}
	return nil
}

// PCSum mirrors the pc_sums table.
type PCSum struct {
	PCSumID          string          `gorm:"type:uuid;primaryKey"`
	ProjectID        string          `gorm:"not null;index"`
	Description      string          `gorm:"not null"`
	AllocatedAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	SpentAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RemainingAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status           string          `gorm:"not null"`
	ApprovalRequired bool            `gorm:"not null"`
	CreatedBy        string          `gorm:"not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

func (PCSum) TableName() string { return "pc_sums" }

func (sum *PCSum) BeforeCreate(tx *gorm.DB) error {
	if sum.PCSumID == "" {
		sum.PCSumID = uuid.NewString()
	}
	return nil
}

// SurveyForm mirrors the survey_forms table.
type SurveyForm struct {
	FormID    string         `gorm:"type:uuid;primaryKey"`
	ProjectID string         `gorm:"not null;index"`
	FormType  string         `gorm:"not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedBy string         `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

func (SurveyForm) TableName() string { return "survey_forms" }

func (form *SurveyForm) BeforeCreate(tx *gorm.DB) error {
	if form.FormID == "" {
		form.FormID = uuid.NewString()
	}
	return nil
}

// ScopeVariation mirrors the scope_variations table.
type ScopeVariation struct {
	VariationID string          `gorm:"type:uuid;primaryKey"`
	ProjectID   string          `gorm:"not null;index"`
	Description string          `gorm:"not null"`
	CostDelta   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Payload     datatypes.JSON  `gorm:"type:jsonb;not null"`
	CreatedBy   string          `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

func (ScopeVariation) TableName() string { return "scope_variations" }

func (variation *ScopeVariation) BeforeCreate(tx *gorm.DB) error {
	if variation.VariationID == "" {
		variation.VariationID = uuid.NewString()
	}
	return nil
}

// ContractorAssessment mirrors the contractor_assessments table.
type ContractorAssessment struct {
	AssessmentID string          `gorm:"type:uuid;primaryKey"`
	ProjectID    string          `gorm:"not null;index"`
	Contractor   string          `gorm:"not null"`
	QuotedAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Payload      datatypes.JSON  `gorm:"type:jsonb;not null"`
	CreatedBy    string          `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"not null"`
}

func (ContractorAssessment) TableName() string { return "contractor_assessments" }

func (assessment *ContractorAssessment) BeforeCreate(tx *gorm.DB) error {
	if assessment.AssessmentID == "" {
		assessment.AssessmentID = uuid.NewString()
	}
	return nil
}

// Models lists every table in migration order. Reference tables come first so
// foreign keys resolve during automatic migration.
func Models() []interface{} {
	return []interface{}{
		&HODCode{},
		&Reserve{},
		&DamageItem{},
		&PCSum{},
		&SurveyForm{},
		&ScopeVariation{},
		&ContractorAssessment{},
	}
}
