package reserving

import "github.com/shopspring/decimal"

// HODCode is a head-of-damage cost code: read-only reference data classifying
// a type of damage, its unit of measure, and its typical rate band.
type HODCode struct {
	CodeID          HODCodeID
	Code            string
	Description     string
	Category        CoverageCategory
	Unit            UnitType
	TypicalRateLow  decimal.Decimal
	TypicalRateHigh decimal.Decimal
}

// SurveyForm is a completed site survey captured as a typed JSON payload.
type SurveyForm struct {
	FormID         string
	ProjectID      ProjectID
	FormType       string
	Payload        []byte
	CreatedBy      ActorID
	CreatedUnixUTC int64
}

// ScopeVariation records an agreed change to the works scope and its cost delta.
type ScopeVariation struct {
	VariationID    string
	ProjectID      ProjectID
	Description    string
	CostDelta      decimal.Decimal
	Payload        []byte
	CreatedBy      ActorID
	CreatedUnixUTC int64
}

// ContractorAssessment records a contractor's pricing assessment for a project.
type ContractorAssessment struct {
	AssessmentID   string
	ProjectID      ProjectID
	Contractor     string
	QuotedAmount   decimal.Decimal
	Payload        []byte
	CreatedBy      ActorID
	CreatedUnixUTC int64
}
