package reserving

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PCSum is a provisional cost sum: budget allocated before detailed itemization.
type PCSum struct {
	PCSumID          PCSumID
	ProjectID        ProjectID
	Description      string
	AllocatedAmount  decimal.Decimal
	SpentAmount      decimal.Decimal
	RemainingAmount  decimal.Decimal
	Status           PCSumStatus
	ApprovalRequired bool
	CreatedBy        ActorID
	CreatedUnixUTC   int64
	UpdatedUnixUTC   int64
}

// PCSumInput carries the caller-settable fields of a new provisional cost sum.
type PCSumInput struct {
	Description      string
	AllocatedAmount  decimal.Decimal
	ApprovalRequired bool
}

var pcSumTransitions = map[PCSumStatus][]PCSumStatus{
	PCSumStatusAllocated:  {PCSumStatusInProgress, PCSumStatusCompleted, PCSumStatusCancelled},
	PCSumStatusInProgress: {PCSumStatusCompleted, PCSumStatusCancelled},
	PCSumStatusCompleted:  {},
	PCSumStatusCancelled:  {},
}

// CanTransitionPCSum reports whether the pc sum lifecycle permits moving
// from one status to another. Completed and cancelled are terminal.
func CanTransitionPCSum(from PCSumStatus, to PCSumStatus) bool {
	for _, allowed := range pcSumTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func validatePCSumInput(input PCSumInput) error {
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if input.AllocatedAmount.IsNegative() {
		return fmt.Errorf("%w: allocated amount must not be negative", ErrValidation)
	}
	return nil
}

// applySpend increments spent, rederives remaining, and moves an allocated
// sum into in_progress on its first spend.
func applySpend(sum PCSum, amount decimal.Decimal) (PCSum, error) {
	if !amount.IsPositive() {
		return PCSum{}, fmt.Errorf("%w: spend amount must be positive", ErrInvalidAmount)
	}
	if sum.Status != PCSumStatusAllocated && sum.Status != PCSumStatusInProgress {
		return PCSum{}, fmt.Errorf("%w: pc sum is %s", ErrInvalidStateTransition, sum.Status)
	}
	sum.SpentAmount = sum.SpentAmount.Add(amount)
	sum.RemainingAmount = sum.AllocatedAmount.Sub(sum.SpentAmount)
	if sum.Status == PCSumStatusAllocated {
		sum.Status = PCSumStatusInProgress
	}
	return sum, nil
}
