package gormstore

import (
	"time"

	"github.com/claimworks/reserving/pkg/reserving"
)

func toReserveModel(record reserving.ReserveRecord) Reserve {
	model := Reserve{
		ReserveID:   record.ReserveID.String(),
		ProjectID:   record.ProjectID.String(),
		ReserveType: record.ReserveType.String(),
		Status:      record.Status.String(),

		BuildingEstimated: record.Breakdown.Building.Estimated,
		BuildingActual:    record.Breakdown.Building.Actual,
		BuildingVariance:  record.Breakdown.Building.Variance,

		ContentsEstimated: record.Breakdown.Contents.Estimated,
		ContentsActual:    record.Breakdown.Contents.Actual,
		ContentsVariance:  record.Breakdown.Contents.Variance,

		ConsequentialEstimated: record.Breakdown.Consequential.Estimated,
		ConsequentialActual:    record.Breakdown.Consequential.Actual,
		ConsequentialVariance:  record.Breakdown.Consequential.Variance,

		AltAccommodationEstimated: record.Breakdown.AlternativeAccommodation.Estimated,
		AltAccommodationActual:    record.Breakdown.AlternativeAccommodation.Actual,
		AltAccommodationVariance:  record.Breakdown.AlternativeAccommodation.Variance,

		ProfessionalFeesEstimated: record.Breakdown.ProfessionalFees.Estimated,
		ProfessionalFeesActual:    record.Breakdown.ProfessionalFees.Actual,
		ProfessionalFeesVariance:  record.Breakdown.ProfessionalFees.Variance,

		TotalEstimated: record.Breakdown.Total.Estimated,
		TotalActual:    record.Breakdown.Total.Actual,
		TotalVariance:  record.Breakdown.Total.Variance,

		Currency:  record.Currency,
		Notes:     record.Notes,
		CreatedBy: record.CreatedBy.String(),
		CreatedAt: time.Unix(record.CreatedUnixUTC, 0).UTC(),
		UpdatedAt: time.Unix(record.UpdatedUnixUTC, 0).UTC(),
	}
	if record.ApprovedBy != "" {
		approvedBy := record.ApprovedBy
		model.ApprovedBy = &approvedBy
	}
	if record.ApprovedUnixUTC != 0 {
		approvedAt := time.Unix(record.ApprovedUnixUTC, 0).UTC()
		model.ApprovedAt = &approvedAt
	}
	return model
}

func mapReserveRow(row Reserve) (reserving.ReserveRecord, error) {
	reserveID, err := reserving.NewReserveID(row.ReserveID)
	if err != nil {
		return reserving.ReserveRecord{}, err
	}
	projectID, err := reserving.NewProjectID(row.ProjectID)
	if err != nil {
		return reserving.ReserveRecord{}, err
	}
	reserveType, err := reserving.ParseReserveType(row.ReserveType)
	if err != nil {
		return reserving.ReserveRecord{}, err
	}
	status, err := reserving.ParseReserveStatus(row.Status)
	if err != nil {
		return reserving.ReserveRecord{}, err
	}
	createdBy, err := reserving.NewActorID(row.CreatedBy)
	if err != nil {
		return reserving.ReserveRecord{}, err
	}
	record := reserving.ReserveRecord{
		ReserveID:   reserveID,
		ProjectID:   projectID,
		ReserveType: reserveType,
		Status:      status,
		Breakdown: reserving.ReserveBreakdown{
			Building: reserving.CategoryAmounts{
				Estimated: row.BuildingEstimated,
				Actual:    row.BuildingActual,
				Variance:  row.BuildingVariance,
			},
			Contents: reserving.CategoryAmounts{
				Estimated: row.ContentsEstimated,
				Actual:    row.ContentsActual,
				Variance:  row.ContentsVariance,
			},
			Consequential: reserving.CategoryAmounts{
				Estimated: row.ConsequentialEstimated,
				Actual:    row.ConsequentialActual,
				Variance:  row.ConsequentialVariance,
			},
			AlternativeAccommodation: reserving.CategoryAmounts{
				Estimated: row.AltAccommodationEstimated,
				Actual:    row.AltAccommodationActual,
				Variance:  row.AltAccommodationVariance,
			},
			ProfessionalFees: reserving.CategoryAmounts{
				Estimated: row.ProfessionalFeesEstimated,
				Actual:    row.ProfessionalFeesActual,
				Variance:  row.ProfessionalFeesVariance,
			},
			Total: reserving.CategoryAmounts{
				Estimated: row.TotalEstimated,
				Actual:    row.TotalActual,
				Variance:  row.TotalVariance,
			},
		},
		Currency:       row.Currency,
		Notes:          row.Notes,
		CreatedBy:      createdBy,
		CreatedUnixUTC: row.CreatedAt.Unix(),
		UpdatedUnixUTC: row.UpdatedAt.Unix(),
	}
	if row.ApprovedBy != nil {
		record.ApprovedBy = *row.ApprovedBy
	}
	if row.ApprovedAt != nil {
		record.ApprovedUnixUTC = row.ApprovedAt.Unix()
	}
	return record, nil
}

func toDamageItemModel(item reserving.DamageItem) DamageItem {
	model := DamageItem{
		ItemID:    item.ItemID.String(),
		ProjectID: item.ProjectID.String(),
		HODCodeID: item.HODCodeID.String(),

		Description: item.Description,
		Location:    item.Location,

		Quantity:          item.Quantity,
		UnitCost:          item.UnitCost,
		VATRatePercent:    item.VATRatePercent,
		TotalCost:         item.Totals.TotalCost,
		VATAmount:         item.Totals.VATAmount,
		TotalIncludingVAT: item.Totals.TotalIncludingVAT,

		Urgency:   item.Urgency.String(),
		Extent:    item.Extent.String(),
		Status:    item.Status.String(),
		CreatedBy: item.CreatedBy.String(),
		CreatedAt: time.Unix(item.CreatedUnixUTC, 0).UTC(),
		UpdatedAt: time.Unix(item.UpdatedUnixUTC, 0).UTC(),
	}
	if item.ReserveID != "" {
		reserveID := item.ReserveID
		model.ReserveID = &reserveID
	}
	return model
}

func mapDamageItemRow(row DamageItem) (reserving.DamageItem, error) {
	itemID, err := reserving.NewDamageItemID(row.ItemID)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	projectID, err := reserving.NewProjectID(row.ProjectID)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	hodCodeID, err := reserving.NewHODCodeID(row.HODCodeID)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	urgency, err := reserving.ParseUrgency(row.Urgency)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	extent, err := reserving.ParseDamageExtent(row.Extent)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	status, err := reserving.ParseDamageStatus(row.Status)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	createdBy, err := reserving.NewActorID(row.CreatedBy)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	item := reserving.DamageItem{
		ItemID:         itemID,
		ProjectID:      projectID,
		HODCodeID:      hodCodeID,
		Description:    row.Description,
		Location:       row.Location,
		Quantity:       row.Quantity,
		UnitCost:       row.UnitCost,
		VATRatePercent: row.VATRatePercent,
		Totals: reserving.LineTotals{
			TotalCost:         row.TotalCost,
			VATAmount:         row.VATAmount,
			TotalIncludingVAT: row.TotalIncludingVAT,
		},
		Urgency:        urgency,
		Extent:         extent,
		Status:         status,
		CreatedBy:      createdBy,
		CreatedUnixUTC: row.CreatedAt.Unix(),
		UpdatedUnixUTC: row.UpdatedAt.Unix(),
	}
	if row.ReserveID != nil {
		item.ReserveID = *row.ReserveID
	}
	return item, nil
}

func mapHODCodeRow(row HODCode) (reserving.HODCode, error) {
	codeID, err := reserving.NewHODCodeID(row.CodeID)
	if err != nil {
		return reserving.HODCode{}, err
	}
	return reserving.HODCode{
		CodeID:          codeID,
		Code:            row.Code,
		Description:     row.Description,
		Category:        reserving.CoverageCategory(row.Category),
		Unit:            reserving.UnitType(row.Unit),
		TypicalRateLow:  row.TypicalRateLow,
		TypicalRateHigh: row.TypicalRateHigh,
	}, nil
}

func toHODCodeModel(code reserving.HODCode, createdAt time.Time) HODCode {
	return HODCode{
		CodeID:          code.CodeID.String(),
		Code:            code.Code,
		Description:     code.Description,
		Category:        code.Category.String(),
		Unit:            code.Unit.String(),
		TypicalRateLow:  code.TypicalRateLow,
		TypicalRateHigh: code.TypicalRateHigh,
		CreatedAt:       createdAt,
	}
}

func toPCSumModel(sum reserving.PCSum) PCSum {
	return PCSum{
		PCSumID:          sum.PCSumID.String(),
		ProjectID:        sum.ProjectID.String(),
		Description:      sum.Description,
		AllocatedAmount:  sum.AllocatedAmount,
		SpentAmount:      sum.SpentAmount,
		RemainingAmount:  sum.RemainingAmount,
		Status:           sum.Status.String(),
		ApprovalRequired: sum.ApprovalRequired,
		CreatedBy:        sum.CreatedBy.String(),
		CreatedAt:        time.Unix(sum.CreatedUnixUTC, 0).UTC(),
		UpdatedAt:        time.Unix(sum.UpdatedUnixUTC, 0).UTC(),
	}
}

func mapPCSumRow(row PCSum) (reserving.PCSum, error) {
	pcSumID, err := reserving.NewPCSumID(row.PCSumID)
	if err != nil {
		return reserving.PCSum{}, err
	}
	projectID, err := reserving.NewProjectID(row.ProjectID)
	if err != nil {
		return reserving.PCSum{}, err
	}
	status, err := reserving.ParsePCSumStatus(row.Status)
	if err != nil {
		return reserving.PCSum{}, err
	}
	createdBy, err := reserving.NewActorID(row.CreatedBy)
	if err != nil {
		return reserving.PCSum{}, err
	}
	return reserving.PCSum{
		PCSumID:          pcSumID,
		ProjectID:        projectID,
		Description:      row.Description,
		AllocatedAmount:  row.AllocatedAmount,
		SpentAmount:      row.SpentAmount,
		RemainingAmount:  row.RemainingAmount,
		Status:           status,
		ApprovalRequired: row.ApprovalRequired,
		CreatedBy:        createdBy,
		CreatedUnixUTC:   row.CreatedAt.Unix(),
		UpdatedUnixUTC:   row.UpdatedAt.Unix(),
	}, nil
}

func mapSurveyFormRow(row SurveyForm) (reserving.SurveyForm, error) {
	projectID, err := reserving.NewProjectID(row.ProjectID)
	if err != nil {
		return reserving.SurveyForm{}, err
	}
	createdBy, err := reserving.NewActorID(row.CreatedBy)
	if err != nil {
		return reserving.SurveyForm{}, err
	}
	return reserving.SurveyForm{
		FormID:         row.FormID,
		ProjectID:      projectID,
		FormType:       row.FormType,
		Payload:        []byte(row.Payload),
		CreatedBy:      createdBy,
		CreatedUnixUTC: row.CreatedAt.Unix(),
	}, nil
}

func mapScopeVariationRow(row ScopeVariation) (reserving.ScopeVariation, error) {
	projectID, err := reserving.NewProjectID(row.ProjectID)
	if err != nil {
		return reserving.ScopeVariation{}, err
	}
	createdBy, err := reserving.NewActorID(row.CreatedBy)
	if err != nil {
		return reserving.ScopeVariation{}, err
	}
	return reserving.ScopeVariation{
		VariationID:    row.VariationID,
		ProjectID:      projectID,
		Description:    row.Description,
		CostDelta:      row.CostDelta,
		Payload:        []byte(row.Payload),
		CreatedBy:      createdBy,
		CreatedUnixUTC: row.CreatedAt.Unix(),
	}, nil
}

func mapContractorAssessmentRow(row ContractorAssessment) (reserving.ContractorAssessment, error) {
	projectID, err := reserving.NewProjectID(row.ProjectID)
	if err != nil {
		return reserving.ContractorAssessment{}, err
	}
	createdBy, err := reserving.NewActorID(row.CreatedBy)
	if err != nil {
		return reserving.ContractorAssessment{}, err
	}
	return reserving.ContractorAssessment{
		AssessmentID:   row.AssessmentID,
		ProjectID:      projectID,
		Contractor:     row.Contractor,
		QuotedAmount:   row.QuotedAmount,
		Payload:        []byte(row.Payload),
		CreatedBy:      createdBy,
		CreatedUnixUTC: row.CreatedAt.Unix(),
	}, nil
}
