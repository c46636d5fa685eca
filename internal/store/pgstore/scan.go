package pgstore

import (
	"github.com/shopspring/decimal"

	"github.com/claimworks/reserving/pkg/reserving"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReserve(row rowScanner) (reserving.ReserveRecord, error) {
	var (
		reserveIDValue   string
		projectIDValue   string
		reserveTypeValue string
		statusValue      string
		amountValues     [18]string
		currencyValue    string
		notesValue       string
		createdByValue   string
		approvedByValue  string
		approvedUnixUTC  int64
		createdUnixUTC   int64
		updatedUnixUTC   int64
	)
	if err := row.Scan(
		&reserveIDValue,
		&projectIDValue,
		&reserveTypeValue,
		&statusValue,
		&amountValues[0], &amountValues[1], &amountValues[2],
		&amountValues[3], &amountValues[4], &amountValues[5],
		&amountValues[6], &amountValues[7], &amountValues[8],
		&amountValues[9], &amountValues[10], &amountValues[11],
		&amountValues[12], &amountValues[13], &amountValues[14],
		&amountValues[15], &amountValues[16], &amountValues[17],
		&currencyValue,
		&notesValue,
		&createdByValue,
		&approvedByValue,
		&approvedUnixUTC,
		&createdUnixUTC,
		&updatedUnixUTC,
	); err != nil {
		return reserving.ReserveRecord{}, err
	}
	reserveID, err := reserving.NewReserveID(reserveIDValue)
	if err != nil {
		return reserving.ReserveRecord{}, err
	}
	projectID, err := reserving.NewProjectID(projectIDValue)
	if err != nil {
		return reserving.ReserveRecord{}, err
	}
	reserveType, err := reserving.ParseReserveType(reserveTypeValue)
	if err != nil {
		return reserving.ReserveRecord{}, err
	}
	status, err := reserving.ParseReserveStatus(statusValue)
	if err != nil {
		return reserving.ReserveRecord{}, err
	}
	createdBy, err := reserving.NewActorID(createdByValue)
	if err != nil {
		return reserving.ReserveRecord{}, err
	}
	amounts := make([]decimal.Decimal, len(amountValues))
	for index, raw := range amountValues {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return reserving.ReserveRecord{}, err
		}
		amounts[index] = amount
	}
	return reserving.ReserveRecord{
		ReserveID:   reserveID,
		ProjectID:   projectID,
		ReserveType: reserveType,
		Status:      status,
		Breakdown: reserving.ReserveBreakdown{
			Building:                 reserving.CategoryAmounts{Estimated: amounts[0], Actual: amounts[1], Variance: amounts[2]},
			Contents:                 reserving.CategoryAmounts{Estimated: amounts[3], Actual: amounts[4], Variance: amounts[5]},
			Consequential:            reserving.CategoryAmounts{Estimated: amounts[6], Actual: amounts[7], Variance: amounts[8]},
			AlternativeAccommodation: reserving.CategoryAmounts{Estimated: amounts[9], Actual: amounts[10], Variance: amounts[11]},
			ProfessionalFees:         reserving.CategoryAmounts{Estimated: amounts[12], Actual: amounts[13], Variance: amounts[14]},
			Total:                    reserving.CategoryAmounts{Estimated: amounts[15], Actual: amounts[16], Variance: amounts[17]},
		},
		Currency:        currencyValue,
		Notes:           notesValue,
		CreatedBy:       createdBy,
		ApprovedBy:      approvedByValue,
		ApprovedUnixUTC: approvedUnixUTC,
		CreatedUnixUTC:  createdUnixUTC,
		UpdatedUnixUTC:  updatedUnixUTC,
	}, nil
}

func scanDamageItem(row rowScanner) (reserving.DamageItem, error) {
	var (
		itemIDValue      string
		projectIDValue   string
		hodCodeIDValue   string
		reserveIDValue   string
		descriptionValue string
		locationValue    string
		quantityValue    string
		unitCostValue    string
		vatRateValue     string
		totalCostValue   string
		vatAmountValue   string
		totalGrossValue  string
		urgencyValue     string
		extentValue      string
		statusValue      string
		createdByValue   string
		createdUnixUTC   int64
		updatedUnixUTC   int64
	)
	if err := row.Scan(
		&itemIDValue,
		&projectIDValue,
		&hodCodeIDValue,
		&reserveIDValue,
		&descriptionValue,
		&locationValue,
		&quantityValue,
		&unitCostValue,
		&vatRateValue,
		&totalCostValue,
		&vatAmountValue,
		&totalGrossValue,
		&urgencyValue,
		&extentValue,
		&statusValue,
		&createdByValue,
		&createdUnixUTC,
		&updatedUnixUTC,
	); err != nil {
		return reserving.DamageItem{}, err
	}
	itemID, err := reserving.NewDamageItemID(itemIDValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	projectID, err := reserving.NewProjectID(projectIDValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	hodCodeID, err := reserving.NewHODCodeID(hodCodeIDValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	urgency, err := reserving.ParseUrgency(urgencyValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	extent, err := reserving.ParseDamageExtent(extentValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	status, err := reserving.ParseDamageStatus(statusValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	createdBy, err := reserving.NewActorID(createdByValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	quantity, err := decimal.NewFromString(quantityValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	unitCost, err := decimal.NewFromString(unitCostValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	vatRate, err := decimal.NewFromString(vatRateValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	totalCost, err := decimal.NewFromString(totalCostValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	vatAmount, err := decimal.NewFromString(vatAmountValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	totalGross, err := decimal.NewFromString(totalGrossValue)
	if err != nil {
		return reserving.DamageItem{}, err
	}
	return reserving.DamageItem{
		ItemID:         itemID,
		ProjectID:      projectID,
		HODCodeID:      hodCodeID,
		ReserveID:      reserveIDValue,
		Description:    descriptionValue,
		Location:       locationValue,
		Quantity:       quantity,
		UnitCost:       unitCost,
		VATRatePercent: vatRate,
		Totals: reserving.LineTotals{
			TotalCost:         totalCost,
			VATAmount:         vatAmount,
			TotalIncludingVAT: totalGross,
		},
		Urgency:        urgency,
		Extent:         extent,
		Status:         status,
		CreatedBy:      createdBy,
		CreatedUnixUTC: createdUnixUTC,
		UpdatedUnixUTC: updatedUnixUTC,
	}, nil
}

func scanHODCode(row rowScanner) (reserving.HODCode, error) {
	var (
		codeIDValue      string
		codeValue        string
		descriptionValue string
		categoryValue    string
		unitValue        string
		rateLowValue     string
		rateHighValue    string
	)
	if err := row.Scan(
		&codeIDValue,
		&codeValue,
		&descriptionValue,
		&categoryValue,
		&unitValue,
		&rateLowValue,
		&rateHighValue,
	); err != nil {
		return reserving.HODCode{}, err
	}
	codeID, err := reserving.NewHODCodeID(codeIDValue)
	if err != nil {
		return reserving.HODCode{}, err
	}
	rateLow, err := decimal.NewFromString(rateLowValue)
	if err != nil {
		return reserving.HODCode{}, err
	}
	rateHigh, err := decimal.NewFromString(rateHighValue)
	if err != nil {
		return reserving.HODCode{}, err
	}
	return reserving.HODCode{
		CodeID:          codeID,
		Code:            codeValue,
		Description:     descriptionValue,
		Category:        reserving.CoverageCategory(categoryValue),
		Unit:            reserving.UnitType(unitValue),
		TypicalRateLow:  rateLow,
		TypicalRateHigh: rateHigh,
	}, nil
}

func scanPCSum(row rowScanner) (reserving.PCSum, error) {
	var (
		pcSumIDValue     string
		projectIDValue   string
		descriptionValue string
		allocatedValue   string
		spentValue       string
		remainingValue   string
		statusValue      string
		approvalRequired bool
		createdByValue   string
		createdUnixUTC   int64
		updatedUnixUTC   int64
	)
	if err := row.Scan(
		&pcSumIDValue,
		&projectIDValue,
		&descriptionValue,
		&allocatedValue,
		&spentValue,
		&remainingValue,
		&statusValue,
		&approvalRequired,
		&createdByValue,
		&createdUnixUTC,
		&updatedUnixUTC,
	); err != nil {
		return reserving.PCSum{}, err
	}
	pcSumID, err := reserving.NewPCSumID(pcSumIDValue)
	if err != nil {
		return reserving.PCSum{}, err
	}
	projectID, err := reserving.NewProjectID(projectIDValue)
	if err != nil {
		return reserving.PCSum{}, err
	}
	status, err := reserving.ParsePCSumStatus(statusValue)
	if err != nil {
		return reserving.PCSum{}, err
	}
	createdBy, err := reserving.NewActorID(createdByValue)
	if err != nil {
		return reserving.PCSum{}, err
	}
	allocated, err := decimal.NewFromString(allocatedValue)
	if err != nil {
		return reserving.PCSum{}, err
	}
	spent, err := decimal.NewFromString(spentValue)
	if err != nil {
		return reserving.PCSum{}, err
	}
	remaining, err := decimal.NewFromString(remainingValue)
	if err != nil {
		return reserving.PCSum{}, err
	}
	return reserving.PCSum{
		PCSumID:          pcSumID,
		ProjectID:        projectID,
		Description:      descriptionValue,
		AllocatedAmount:  allocated,
		SpentAmount:      spent,
		RemainingAmount:  remaining,
		Status:           status,
		ApprovalRequired: approvalRequired,
		CreatedBy:        createdBy,
		CreatedUnixUTC:   createdUnixUTC,
		UpdatedUnixUTC:   updatedUnixUTC,
	}, nil
}

func scanSurveyForm(row rowScanner) (reserving.SurveyForm, error) {
	var (
		formIDValue    string
		projectIDValue string
		formTypeValue  string
		payloadValue   string
		createdByValue string
		createdUnixUTC int64
	)
	if err := row.Scan(
		&formIDValue,
		&projectIDValue,
		&formTypeValue,
		&payloadValue,
		&createdByValue,
		&createdUnixUTC,
	); err != nil {
		return reserving.SurveyForm{}, err
	}
	projectID, err := reserving.NewProjectID(projectIDValue)
	if err != nil {
		return reserving.SurveyForm{}, err
	}
	createdBy, err := reserving.NewActorID(createdByValue)
	if err != nil {
		return reserving.SurveyForm{}, err
	}
	return reserving.SurveyForm{
		FormID:         formIDValue,
		ProjectID:      projectID,
		FormType:       formTypeValue,
		Payload:        []byte(payloadValue),
		CreatedBy:      createdBy,
		CreatedUnixUTC: createdUnixUTC,
	}, nil
}

func scanScopeVariation(row rowScanner) (reserving.ScopeVariation, error) {
	var (
		variationIDValue string
		projectIDValue   string
		descriptionValue string
		costDeltaValue   string
		payloadValue     string
		createdByValue   string
		createdUnixUTC   int64
	)
	if err := row.Scan(
		&variationIDValue,
		&projectIDValue,
		&descriptionValue,
		&costDeltaValue,
		&payloadValue,
		&createdByValue,
		&createdUnixUTC,
	); err != nil {
		return reserving.ScopeVariation{}, err
	}
	projectID, err := reserving.NewProjectID(projectIDValue)
	if err != nil {
		return reserving.ScopeVariation{}, err
	}
	createdBy, err := reserving.NewActorID(createdByValue)
	if err != nil {
		return reserving.ScopeVariation{}, err
	}
	costDelta, err := decimal.NewFromString(costDeltaValue)
	if err != nil {
		return reserving.ScopeVariation{}, err
	}
	return reserving.ScopeVariation{
		VariationID:    variationIDValue,
		ProjectID:      projectID,
		Description:    descriptionValue,
		CostDelta:      costDelta,
		Payload:        []byte(payloadValue),
		CreatedBy:      createdBy,
		CreatedUnixUTC: createdUnixUTC,
	}, nil
}

func scanContractorAssessment(row rowScanner) (reserving.ContractorAssessment, error) {
	var (
		assessmentIDValue string
		projectIDValue    string
		contractorValue   string
		quotedValue       string
		payloadValue      string
		createdByValue    string
		createdUnixUTC    int64
	)
	if err := row.Scan(
		&assessmentIDValue,
		&projectIDValue,
		&contractorValue,
		&quotedValue,
		&payloadValue,
		&createdByValue,
		&createdUnixUTC,
	); err != nil {
		return reserving.ContractorAssessment{}, err
	}
	projectID, err := reserving.NewProjectID(projectIDValue)
	if err != nil {
		return reserving.ContractorAssessment{}, err
	}
	createdBy, err := reserving.NewActorID(createdByValue)
	if err != nil {
		return reserving.ContractorAssessment{}, err
	}
	quoted, err := decimal.NewFromString(quotedValue)
	if err != nil {
		return reserving.ContractorAssessment{}, err
	}
	return reserving.ContractorAssessment{
		AssessmentID:   assessmentIDValue,
		ProjectID:      projectID,
		Contractor:     contractorValue,
		QuotedAmount:   quoted,
		Payload:        []byte(payloadValue),
		CreatedBy:      createdBy,
		CreatedUnixUTC: createdUnixUTC,
	}, nil
}
