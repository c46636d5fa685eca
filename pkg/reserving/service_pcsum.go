package reserving

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ListPCSums returns a project's provisional cost sums. An unprovisioned
// relation reads as empty.
func (service *Service) ListPCSums(ctx context.Context, projectID ProjectID) ([]PCSum, error) {
	sums, err := service.store.ListPCSums(ctx, projectID)
	if errors.Is(err, ErrMissingSchema) {
		return []PCSum{}, nil
	}
	if err != nil {
		return nil, err
	}
	return sums, nil
}

// AllocatePCSum persists a new provisional cost sum with nothing spent yet.
func (service *Service) AllocatePCSum(ctx context.Context, projectID ProjectID, actor ActorID, input PCSumInput) (PCSum, error) {
	var sum PCSum
	operationError := func() error {
		if err := validatePCSumInput(input); err != nil {
			return err
		}
		pcSumID, err := NewPCSumID(service.idFn())
		if err != nil {
			return err
		}
		nowUnixUTC := service.nowFn()
		sum = PCSum{
			PCSumID:          pcSumID,
			ProjectID:        projectID,
			Description:      input.Description,
			AllocatedAmount:  input.AllocatedAmount,
			SpentAmount:      decimal.Zero,
			RemainingAmount:  input.AllocatedAmount,
			Status:           PCSumStatusAllocated,
			ApprovalRequired: input.ApprovalRequired,
			CreatedBy:        actor,
			CreatedUnixUTC:   nowUnixUTC,
			UpdatedUnixUTC:   nowUnixUTC,
		}
		return service.store.InsertPCSum(ctx, sum)
	}()
	service.logOperation(ctx, OperationLog{
		Operation: operationAllocatePCSum,
		ProjectID: projectID,
		Actor:     actor,
		EntityID:  sum.PCSumID.String(),
		Error:     operationError,
	})
	if operationError != nil {
		return PCSum{}, operationError
	}
	return sum, nil
}

// RecordPCSumSpend books spend against a provisional cost sum, rederiving the
// remaining amount and moving an untouched allocation into in_progress.
func (service *Service) RecordPCSumSpend(ctx context.Context, projectID ProjectID, pcSumID PCSumID, actor ActorID, amount decimal.Decimal) (PCSum, error) {
	var updated PCSum
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		existing, err := transactionStore.GetPCSum(ctx, projectID, pcSumID)
		if err != nil {
			return err
		}
		updated, err = applySpend(existing, amount)
		if err != nil {
			return err
		}
		updated.UpdatedUnixUTC = service.nowFn()
		return transactionStore.UpdatePCSum(ctx, updated)
	})
	service.logOperation(ctx, OperationLog{
		Operation: operationRecordPCSumSpend,
		ProjectID: projectID,
		Actor:     actor,
		EntityID:  pcSumID.String(),
		Error:     operationError,
	})
	if operationError != nil {
		return PCSum{}, operationError
	}
	return updated, nil
}

// ClosePCSum moves a provisional cost sum into a terminal state: completed
// or cancelled.
func (service *Service) ClosePCSum(ctx context.Context, projectID ProjectID, pcSumID PCSumID, actor ActorID, to PCSumStatus) error {
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		if to != PCSumStatusCompleted && to != PCSumStatusCancelled {
			return fmt.Errorf("%w: close target must be terminal, got %s", ErrValidation, to)
		}
		existing, err := transactionStore.GetPCSum(ctx, projectID, pcSumID)
		if err != nil {
			return err
		}
		if !CanTransitionPCSum(existing.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, existing.Status, to)
		}
		return transactionStore.UpdatePCSumStatus(ctx, projectID, pcSumID, existing.Status, to)
	})
	service.logOperation(ctx, OperationLog{
		Operation: operationClosePCSum,
		ProjectID: projectID,
		Actor:     actor,
		EntityID:  pcSumID.String(),
		Error:     operationError,
	})
	return operationError
}

// ListSurveyForms returns a project's survey forms; missing relations read as empty.
func (service *Service) ListSurveyForms(ctx context.Context, projectID ProjectID) ([]SurveyForm, error) {
	forms, err := service.store.ListSurveyForms(ctx, projectID)
	if errors.Is(err, ErrMissingSchema) {
		return []SurveyForm{}, nil
	}
	if err != nil {
		return nil, err
	}
	return forms, nil
}

// RecordSurveyForm stores a completed survey form payload against a project.
func (service *Service) RecordSurveyForm(ctx context.Context, projectID ProjectID, actor ActorID, formType string, payload []byte) (SurveyForm, error) {
	if formType == "" {
		return SurveyForm{}, fmt.Errorf("%w: form type is required", ErrValidation)
	}
	form := SurveyForm{
		FormID:         service.idFn(),
		ProjectID:      projectID,
		FormType:       formType,
		Payload:        payload,
		CreatedBy:      actor,
		CreatedUnixUTC: service.nowFn(),
	}
	if err := service.store.InsertSurveyForm(ctx, form); err != nil {
		return SurveyForm{}, err
	}
	return form, nil
}

// ListScopeVariations returns a project's scope variations; missing relations read as empty.
func (service *Service) ListScopeVariations(ctx context.Context, projectID ProjectID) ([]ScopeVariation, error) {
	variations, err := service.store.ListScopeVariations(ctx, projectID)
	if errors.Is(err, ErrMissingSchema) {
		return []ScopeVariation{}, nil
	}
	if err != nil {
		return nil, err
	}
	return variations, nil
}

// RecordScopeVariation stores an agreed works-scope change and its cost delta.
func (service *Service) RecordScopeVariation(ctx context.Context, projectID ProjectID, actor ActorID, description string, costDelta decimal.Decimal, payload []byte) (ScopeVariation, error) {
	if description == "" {
		return ScopeVariation{}, fmt.Errorf("%w: description is required", ErrValidation)
	}
	variation := ScopeVariation{
		VariationID:    service.idFn(),
		ProjectID:      projectID,
		Description:    description,
		CostDelta:      costDelta,
		Payload:        payload,
		CreatedBy:      actor,
		CreatedUnixUTC: service.nowFn(),
	}
	if err := service.store.InsertScopeVariation(ctx, variation); err != nil {
		return ScopeVariation{}, err
	}
	return variation, nil
}

// ListContractorAssessments returns a project's contractor assessments;
// missing relations read as empty.
func (service *Service) ListContractorAssessments(ctx context.Context, projectID ProjectID) ([]ContractorAssessment, error) {
	assessments, err := service.store.ListContractorAssessments(ctx, projectID)
	if errors.Is(err, ErrMissingSchema) {
		return []ContractorAssessment{}, nil
	}
	if err != nil {
		return nil, err
	}
	return assessments, nil
}

// RecordContractorAssessment stores a contractor's pricing assessment.
func (service *Service) RecordContractorAssessment(ctx context.Context, projectID ProjectID, actor ActorID, contractor string, quotedAmount decimal.Decimal, payload []byte) (ContractorAssessment, error) {
	if contractor == "" {
		return ContractorAssessment{}, fmt.Errorf("%w: contractor is required", ErrValidation)
	}
	assessment := ContractorAssessment{
		AssessmentID:   service.idFn(),
		ProjectID:      projectID,
		Contractor:     contractor,
		QuotedAmount:   quotedAmount,
		Payload:        payload,
		CreatedBy:      actor,
		CreatedUnixUTC: service.nowFn(),
	}
	if err := service.store.InsertContractorAssessment(ctx, assessment); err != nil {
		return ContractorAssessment{}, err
	}
	return assessment, nil
}
