package httpserver

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/claimworks/reserving/pkg/reserving"
)

type categoryAmountsPayload struct {
	Estimated decimal.Decimal `json:"estimated"`
	Actual    decimal.Decimal `json:"actual"`
	Variance  decimal.Decimal `json:"variance"`
}

type breakdownPayload struct {
	Building                 categoryAmountsPayload `json:"building"`
	Contents                 categoryAmountsPayload `json:"contents"`
	Consequential            categoryAmountsPayload `json:"consequential"`
	AlternativeAccommodation categoryAmountsPayload `json:"alternative_accommodation"`
	ProfessionalFees         categoryAmountsPayload `json:"professional_fees"`
	Total                    categoryAmountsPayload `json:"total"`
}

type reservePayload struct {
	ReserveID       string           `json:"reserve_id"`
	ProjectID       string           `json:"project_id"`
	ReserveType     string           `json:"reserve_type"`
	Status          string           `json:"status"`
	Breakdown       breakdownPayload `json:"breakdown"`
	Currency        string           `json:"currency"`
	Notes           string           `json:"notes,omitempty"`
	CreatedBy       string           `json:"created_by"`
	ApprovedBy      string           `json:"approved_by,omitempty"`
	ApprovedUnixUTC int64            `json:"approved_unix_utc,omitempty"`
	CreatedUnixUTC  int64            `json:"created_unix_utc"`
	UpdatedUnixUTC  int64            `json:"updated_unix_utc"`
}

func categoryPayloadFrom(amounts reserving.CategoryAmounts) categoryAmountsPayload {
	return categoryAmountsPayload{
		Estimated: amounts.Estimated,
		Actual:    amounts.Actual,
		Variance:  amounts.Variance,
	}
}

func reservePayloadFrom(record reserving.ReserveRecord) reservePayload {
	return reservePayload{
		ReserveID:   record.ReserveID.String(),
		ProjectID:   record.ProjectID.String(),
		ReserveType: record.ReserveType.String(),
		Status:      record.Status.String(),
		Breakdown: breakdownPayload{
			Building:                 categoryPayloadFrom(record.Breakdown.Building),
			Contents:                 categoryPayloadFrom(record.Breakdown.Contents),
			Consequential:            categoryPayloadFrom(record.Breakdown.Consequential),
			AlternativeAccommodation: categoryPayloadFrom(record.Breakdown.AlternativeAccommodation),
			ProfessionalFees:         categoryPayloadFrom(record.Breakdown.ProfessionalFees),
			Total:                    categoryPayloadFrom(record.Breakdown.Total),
		},
		Currency:        record.Currency,
		Notes:           record.Notes,
		CreatedBy:       record.CreatedBy.String(),
		ApprovedBy:      record.ApprovedBy,
		ApprovedUnixUTC: record.ApprovedUnixUTC,
		CreatedUnixUTC:  record.CreatedUnixUTC,
		UpdatedUnixUTC:  record.UpdatedUnixUTC,
	}
}

func reservePayloadsFrom(records []reserving.ReserveRecord) []reservePayload {
	payloads := make([]reservePayload, 0, len(records))
	for _, record := range records {
		payloads = append(payloads, reservePayloadFrom(record))
	}
	return payloads
}

type damageItemPayload struct {
	ItemID            string          `json:"item_id"`
	ProjectID         string          `json:"project_id"`
	HODCodeID         string          `json:"hod_code_id"`
	ReserveID         string          `json:"reserve_id,omitempty"`
	Description       string          `json:"description"`
	Location          string          `json:"location,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	VATRatePercent    decimal.Decimal `json:"vat_rate_percent"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	TotalIncludingVAT decimal.Decimal `json:"total_including_vat"`
	Urgency           string          `json:"urgency"`
	Extent            string          `json:"extent"`
	Status            string          `json:"status"`
	CreatedBy         string          `json:"created_by"`
	CreatedUnixUTC    int64           `json:"created_unix_utc"`
	UpdatedUnixUTC    int64           `json:"updated_unix_utc"`
}

func damageItemPayloadFrom(item reserving.DamageItem) damageItemPayload {
	return damageItemPayload{
		ItemID:            item.ItemID.String(),
		ProjectID:         item.ProjectID.String(),
		HODCodeID:         item.HODCodeID.String(),
		ReserveID:         item.ReserveID,
		Description:       item.Description,
		Location:          item.Location,
		Quantity:          item.Quantity,
		UnitCost:          item.UnitCost,
		VATRatePercent:    item.VATRatePercent,
		TotalCost:         item.Totals.TotalCost,
		VATAmount:         item.Totals.VATAmount,
		TotalIncludingVAT: item.Totals.TotalIncludingVAT,
		Urgency:           item.Urgency.String(),
		Extent:            item.Extent.String(),
		Status:            item.Status.String(),
		CreatedBy:         item.CreatedBy.String(),
		CreatedUnixUTC:    item.CreatedUnixUTC,
		UpdatedUnixUTC:    item.UpdatedUnixUTC,
	}
}

func damageItemPayloadsFrom(items []reserving.DamageItem) []damageItemPayload {
	payloads := make([]damageItemPayload, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, damageItemPayloadFrom(item))
	}
	return payloads
}

type hodCodePayload struct {
	CodeID          string          `json:"code_id"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	TypicalRateLow  decimal.Decimal `json:"typical_rate_low"`
	TypicalRateHigh decimal.Decimal `json:"typical_rate_high"`
}

func hodCodePayloadsFrom(codes []reserving.HODCode) []hodCodePayload {
	payloads := make([]hodCodePayload, 0, len(codes))
	for _, code := range codes {
		payloads = append(payloads, hodCodePayload{
			CodeID:          code.CodeID.String(),
			Code:            code.Code,
			Description:     code.Description,
			Category:        code.Category.String(),
			Unit:            code.Unit.String(),
			TypicalRateLow:  code.TypicalRateLow,
			TypicalRateHigh: code.TypicalRateHigh,
		})
	}
	return payloads
}

type pcSumPayload struct {
	PCSumID          string          `json:"pc_sum_id"`
	ProjectID        string          `json:"project_id"`
	Description      string          `json:"description"`
	AllocatedAmount  decimal.Decimal `json:"allocated_amount"`
	SpentAmount      decimal.Decimal `json:"spent_amount"`
	RemainingAmount  decimal.Decimal `json:"remaining_amount"`
	Status           string          `json:"status"`
	ApprovalRequired bool            `json:"approval_required"`
	CreatedBy        string          `json:"created_by"`
	CreatedUnixUTC   int64           `json:"created_unix_utc"`
	UpdatedUnixUTC   int64           `json:"updated_unix_utc"`
}

func pcSumPayloadFrom(sum reserving.PCSum) pcSumPayload {
	return pcSumPayload{
		PCSumID:          sum.PCSumID.String(),
		ProjectID:        sum.ProjectID.String(),
		Description:      sum.Description,
		AllocatedAmount:  sum.AllocatedAmount,
		SpentAmount:      sum.SpentAmount,
		RemainingAmount:  sum.RemainingAmount,
		Status:           sum.Status.String(),
		ApprovalRequired: sum.ApprovalRequired,
		CreatedBy:        sum.CreatedBy.String(),
		CreatedUnixUTC:   sum.CreatedUnixUTC,
		UpdatedUnixUTC:   sum.UpdatedUnixUTC,
	}
}

func pcSumPayloadsFrom(sums []reserving.PCSum) []pcSumPayload {
	payloads := make([]pcSumPayload, 0, len(sums))
	for _, sum := range sums {
		payloads = append(payloads, pcSumPayloadFrom(sum))
	}
	return payloads
}

type surveyFormPayload struct {
	FormID         string          `json:"form_id"`
	ProjectID      string          `json:"project_id"`
	FormType       string          `json:"form_type"`
	Payload        json.RawMessage `json:"payload"`
	CreatedBy      string          `json:"created_by"`
	CreatedUnixUTC int64           `json:"created_unix_utc"`
}

func surveyFormPayloadFrom(form reserving.SurveyForm) surveyFormPayload {
	return surveyFormPayload{
		FormID:         form.FormID,
		ProjectID:      form.ProjectID.String(),
		FormType:       form.FormType,
		Payload:        rawJSON(form.Payload),
		CreatedBy:      form.CreatedBy.String(),
		CreatedUnixUTC: form.CreatedUnixUTC,
	}
}

func surveyFormPayloadsFrom(forms []reserving.SurveyForm) []surveyFormPayload {
	payloads := make([]surveyFormPayload, 0, len(forms))
	for _, form := range forms {
		payloads = append(payloads, surveyFormPayloadFrom(form))
	}
	return payloads
}

type scopeVariationPayload struct {
	VariationID    string          `json:"variation_id"`
	ProjectID      string          `json:"project_id"`
	Description    string          `json:"description"`
	CostDelta      decimal.Decimal `json:"cost_delta"`
	Payload        json.RawMessage `json:"payload"`
	CreatedBy      string          `json:"created_by"`
	CreatedUnixUTC int64           `json:"created_unix_utc"`
}

func scopeVariationPayloadFrom(variation reserving.ScopeVariation) scopeVariationPayload {
	return scopeVariationPayload{
		VariationID:    variation.VariationID,
		ProjectID:      variation.ProjectID.String(),
		Description:    variation.Description,
		CostDelta:      variation.CostDelta,
		Payload:        rawJSON(variation.Payload),
		CreatedBy:      variation.CreatedBy.String(),
		CreatedUnixUTC: variation.CreatedUnixUTC,
	}
}

func scopeVariationPayloadsFrom(variations []reserving.ScopeVariation) []scopeVariationPayload {
	payloads := make([]scopeVariationPayload, 0, len(variations))
	for _, variation := range variations {
		payloads = append(payloads, scopeVariationPayloadFrom(variation))
	}
	return payloads
}

type contractorAssessmentPayload struct {
	AssessmentID   string          `json:"assessment_id"`
	ProjectID      string          `json:"project_id"`
	Contractor     string          `json:"contractor"`
	QuotedAmount   decimal.Decimal `json:"quoted_amount"`
	Payload        json.RawMessage `json:"payload"`
	CreatedBy      string          `json:"created_by"`
	CreatedUnixUTC int64           `json:"created_unix_utc"`
}

func contractorAssessmentPayloadFrom(assessment reserving.ContractorAssessment) contractorAssessmentPayload {
	return contractorAssessmentPayload{
		AssessmentID:   assessment.AssessmentID,
		ProjectID:      assessment.ProjectID.String(),
		Contractor:     assessment.Contractor,
		QuotedAmount:   assessment.QuotedAmount,
		Payload:        rawJSON(assessment.Payload),
		CreatedBy:      assessment.CreatedBy.String(),
		CreatedUnixUTC: assessment.CreatedUnixUTC,
	}
}

func contractorAssessmentPayloadsFrom(assessments []reserving.ContractorAssessment) []contractorAssessmentPayload {
	payloads := make([]contractorAssessmentPayload, 0, len(assessments))
	for _, assessment := range assessments {
		payloads = append(payloads, contractorAssessmentPayloadFrom(assessment))
	}
	return payloads
}

func rawJSON(payload []byte) json.RawMessage {
	if len(payload) == 0 {
		return json.RawMessage("{}")
	}
	return json.RawMessage(payload)
}
