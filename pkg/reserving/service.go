package reserving

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Service contains the reserving domain logic over a Store.
type Service struct {
	store  Store
	nowFn  func() int64
	idFn   func() string
	logger OperationLogger
}

// NewService wires a Service.
func NewService(store Store, now func() int64, options ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store dependency is nil", ErrInvalidServiceConfig)
	}
	if now == nil {
		return nil, fmt.Errorf("%w: clock dependency is nil", ErrInvalidServiceConfig)
	}
	service := &Service{store: store, nowFn: now, idFn: uuid.NewString}
	for _, option := range options {
		if option != nil {
			option(service)
		}
	}
	return service, nil
}

// ListReserves returns a project's reserve history, newest first. A reserve
// relation that has not been provisioned yet reads as empty.
func (service *Service) ListReserves(ctx context.Context, projectID ProjectID) ([]ReserveRecord, error) {
	reserves, err := service.store.ListReserves(ctx, projectID)
	if errors.Is(err, ErrMissingSchema) {
		return []ReserveRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	return reserves, nil
}

// CurrentReserve returns the authoritative reserve for a project: the most
// recent approved record, else the most recently created one.
func (service *Service) CurrentReserve(ctx context.Context, projectID ProjectID) (*ReserveRecord, error) {
	reserves, err := service.ListReserves(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return SelectCurrentReserve(reserves), nil
}

// CreateReserve persists a new draft reserve with computed variances.
func (service *Service) CreateReserve(ctx context.Context, projectID ProjectID, actor ActorID, input ReserveInput) (ReserveRecord, error) {
	var record ReserveRecord
	operationError := func() error {
		if err := validateReserveInput(input); err != nil {
			return err
		}
		nowUnixUTC := service.nowFn()
		reserveID, err := NewReserveID(service.idFn())
		if err != nil {
			return err
		}
		record = ReserveRecord{
			ReserveID:      reserveID,
			ProjectID:      projectID,
			ReserveType:    input.ReserveType,
			Status:         ReserveStatusDraft,
			Breakdown:      input.Breakdown.Recomputed(),
			Currency:       normalizeCurrency(input.Currency),
			Notes:          input.Notes,
			CreatedBy:      actor,
			CreatedUnixUTC: nowUnixUTC,
			UpdatedUnixUTC: nowUnixUTC,
		}
		return service.store.InsertReserve(ctx, record)
	}()
	service.logOperation(ctx, OperationLog{
		Operation: operationCreateReserve,
		ProjectID: projectID,
		Actor:     actor,
		EntityID:  record.ReserveID.String(),
		Error:     operationError,
	})
	if operationError != nil {
		return ReserveRecord{}, operationError
	}
	return record, nil
}

// ReviseReserve produces a new draft record from an existing reserve, carrying
// forward unchanged fields and recomputing every variance from the merged
// amounts. History is never mutated; the prior record's status is untouched.
func (service *Service) ReviseReserve(ctx context.Context, projectID ProjectID, reserveID ReserveID, actor ActorID, changes ReserveChanges) (ReserveRecord, error) {
	var revised ReserveRecord
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		existing, err := transactionStore.GetReserve(ctx, projectID, reserveID)
		if err != nil {
			return err
		}
		if changes.ReserveType != nil {
			if _, err := ParseReserveType(changes.ReserveType.String()); err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
		}
		nowUnixUTC := service.nowFn()
		newReserveID, err := NewReserveID(service.idFn())
		if err != nil {
			return err
		}
		revised = applyReserveChanges(existing, changes)
		if err := validateBreakdown(revised.Breakdown); err != nil {
			return err
		}
		revised.ReserveID = newReserveID
		revised.Status = ReserveStatusDraft
		revised.CreatedBy = actor
		revised.ApprovedBy = ""
		revised.ApprovedUnixUTC = 0
		revised.CreatedUnixUTC = nowUnixUTC
		revised.UpdatedUnixUTC = nowUnixUTC
		if changes.ReserveType == nil && existing.ReserveType == ReserveTypeInitial {
			revised.ReserveType = ReserveTypeRevised
		}
		return transactionStore.InsertReserve(ctx, revised)
	})
	service.logOperation(ctx, OperationLog{
		Operation: operationReviseReserve,
		ProjectID: projectID,
		Actor:     actor,
		EntityID:  reserveID.String(),
		Error:     operationError,
	})
	if operationError != nil {
		return ReserveRecord{}, operationError
	}
	return revised, nil
}

// SubmitReserve moves a draft reserve into pending_approval.
func (service *Service) SubmitReserve(ctx context.Context, projectID ProjectID, reserveID ReserveID, actor ActorID) error {
	operationError := service.transitionReserve(ctx, projectID, reserveID, ReserveStatusDraft, ReserveStatusPendingApproval, nil)
	service.logOperation(ctx, OperationLog{
		Operation: operationSubmitReserve,
		ProjectID: projectID,
		Actor:     actor,
		EntityID:  reserveID.String(),
		Error:     operationError,
	})
	return operationError
}

// ApproveReserve moves a pending reserve into approved, stamps the approver,
// and supersedes any other approved reserve of the project in the same
// transaction so at most one record stays authoritative.
func (service *Service) ApproveReserve(ctx context.Context, projectID ProjectID, reserveID ReserveID, approver ActorID) error {
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		existing, err := transactionStore.GetReserve(ctx, projectID, reserveID)
		if err != nil {
			return err
		}
		if !CanTransitionReserve(existing.Status, ReserveStatusApproved) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, existing.Status, ReserveStatusApproved)
		}
		if err := transactionStore.SupersedeApprovedReserves(ctx, projectID, reserveID); err != nil {
			return err
		}
		approval := &ApprovalStamp{
			ApprovedBy:      approver.String(),
			ApprovedUnixUTC: service.nowFn(),
		}
		return transactionStore.UpdateReserveStatus(ctx, projectID, reserveID, ReserveStatusPendingApproval, ReserveStatusApproved, approval)
	})
	service.logOperation(ctx, OperationLog{
		Operation: operationApproveReserve,
		ProjectID: projectID,
		Actor:     approver,
		EntityID:  reserveID.String(),
		Error:     operationError,
	})
	return operationError
}

// SupersedeReserve retires a reserve regardless of its current non-terminal state.
func (service *Service) SupersedeReserve(ctx context.Context, projectID ProjectID, reserveID ReserveID, actor ActorID) error {
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		existing, err := transactionStore.GetReserve(ctx, projectID, reserveID)
		if err != nil {
			return err
		}
		if !CanTransitionReserve(existing.Status, ReserveStatusSuperseded) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, existing.Status, ReserveStatusSuperseded)
		}
		return transactionStore.UpdateReserveStatus(ctx, projectID, reserveID, existing.Status, ReserveStatusSuperseded, nil)
	})
	service.logOperation(ctx, OperationLog{
		Operation: operationSupersedeReserve,
		ProjectID: projectID,
		Actor:     actor,
		EntityID:  reserveID.String(),
		Error:     operationError,
	})
	return operationError
}

func (service *Service) transitionReserve(ctx context.Context, projectID ProjectID, reserveID ReserveID, from ReserveStatus, to ReserveStatus, approval *ApprovalStamp) error {
	return service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		existing, err := transactionStore.GetReserve(ctx, projectID, reserveID)
		if err != nil {
			return err
		}
		if existing.Status != from || !CanTransitionReserve(from, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, existing.Status, to)
		}
		return transactionStore.UpdateReserveStatus(ctx, projectID, reserveID, from, to, approval)
	})
}

func (service *Service) logOperation(ctx context.Context, entry OperationLog) {
	if service.logger == nil {
		return
	}
	if entry.Status == "" {
		if entry.Error != nil {
			entry.Status = operationStatusError
		} else {
			entry.Status = operationStatusOK
		}
	}
	service.logger.LogOperation(ctx, entry)
}
