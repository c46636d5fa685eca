package reserving

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a reserve is created without an explicit currency.
const DefaultCurrency = "GBP"

// CategoryAmounts tracks one coverage category of a reserve.
// Variance is derived, never accepted as input.
type CategoryAmounts struct {
	Estimated decimal.Decimal
	Actual    decimal.Decimal
	Variance  decimal.Decimal
}

func (amounts CategoryAmounts) recomputed() CategoryAmounts {
	amounts.Variance = amounts.Actual.Sub(amounts.Estimated)
	return amounts
}

// ReserveBreakdown splits a reserve across the five coverage categories.
type ReserveBreakdown struct {
	Building                 CategoryAmounts
	Contents                 CategoryAmounts
	Consequential            CategoryAmounts
	AlternativeAccommodation CategoryAmounts
	ProfessionalFees         CategoryAmounts
	Total                    CategoryAmounts
}

// Recomputed returns a copy with every variance and the total triple rederived
// from the category estimated/actual amounts.
func (breakdown ReserveBreakdown) Recomputed() ReserveBreakdown {
	breakdown.Building = breakdown.Building.recomputed()
	breakdown.Contents = breakdown.Contents.recomputed()
	breakdown.Consequential = breakdown.Consequential.recomputed()
	breakdown.AlternativeAccommodation = breakdown.AlternativeAccommodation.recomputed()
	breakdown.ProfessionalFees = breakdown.ProfessionalFees.recomputed()
	total := CategoryAmounts{Estimated: decimal.Zero, Actual: decimal.Zero}
	for _, category := range []CategoryAmounts{
		breakdown.Building,
		breakdown.Contents,
		breakdown.Consequential,
		breakdown.AlternativeAccommodation,
		breakdown.ProfessionalFees,
	} {
		total.Estimated = total.Estimated.Add(category.Estimated)
		total.Actual = total.Actual.Add(category.Actual)
	}
	breakdown.Total = total.recomputed()
	return breakdown
}

// Category returns the amounts tracked for one coverage category.
func (breakdown ReserveBreakdown) Category(category CoverageCategory) CategoryAmounts {
	switch category {
	case CategoryBuilding:
		return breakdown.Building
	case CategoryContents:
		return breakdown.Contents
	case CategoryConsequential:
		return breakdown.Consequential
	case CategoryAlternativeAccommodation:
		return breakdown.AlternativeAccommodation
	case CategoryProfessionalFees:
		return breakdown.ProfessionalFees
	}
	return CategoryAmounts{}
}

// ReserveRecord is one snapshot of a project's insurance reserve.
type ReserveRecord struct {
	ReserveID       ReserveID
	ProjectID       ProjectID
	ReserveType     ReserveType
	Status          ReserveStatus
	Breakdown       ReserveBreakdown
	Currency        string
	Notes           string
	CreatedBy       ActorID
	ApprovedBy      string
	ApprovedUnixUTC int64
	CreatedUnixUTC  int64
	UpdatedUnixUTC  int64
}

// ReserveInput carries the caller-settable fields of a new reserve.
// Variance fields do not appear here: they are always computed.
type ReserveInput struct {
	ReserveType ReserveType
	Breakdown   ReserveBreakdown
	Currency    string
	Notes       string
}

// CategoryChange updates one coverage category of an existing reserve.
type CategoryChange struct {
	Estimated *decimal.Decimal
	Actual    *decimal.Decimal
}

// ReserveChanges carries a partial revision of an existing reserve.
type ReserveChanges struct {
	ReserveType              *ReserveType
	Building                 *CategoryChange
	Contents                 *CategoryChange
	Consequential            *CategoryChange
	AlternativeAccommodation *CategoryChange
	ProfessionalFees         *CategoryChange
	Notes                    *string
}

// ApprovalStamp records who approved a reserve and when.
type ApprovalStamp struct {
	ApprovedBy      string
	ApprovedUnixUTC int64
}

var reserveTransitions = map[ReserveStatus][]ReserveStatus{
	ReserveStatusDraft:           {ReserveStatusPendingApproval, ReserveStatusSuperseded},
	ReserveStatusPendingApproval: {ReserveStatusApproved, ReserveStatusSuperseded},
	ReserveStatusApproved:        {ReserveStatusSuperseded},
	ReserveStatusSuperseded:      {},
}

// CanTransitionReserve reports whether the reserve lifecycle permits moving
// from one status to another. Superseded is terminal.
func CanTransitionReserve(from ReserveStatus, to ReserveStatus) bool {
	for _, allowed := range reserveTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func validateReserveInput(input ReserveInput) error {
	if _, err := ParseReserveType(input.ReserveType.String()); err != nil {
		return fmt.Errorf("%w: reserve type is required", ErrValidation)
	}
	return validateBreakdown(input.Breakdown)
}

func validateBreakdown(breakdown ReserveBreakdown) error {
	for _, category := range []CategoryAmounts{
		breakdown.Building,
		breakdown.Contents,
		breakdown.Consequential,
		breakdown.AlternativeAccommodation,
		breakdown.ProfessionalFees,
	} {
		if category.Estimated.IsNegative() || category.Actual.IsNegative() {
			return fmt.Errorf("%w: category amounts must not be negative", ErrValidation)
		}
	}
	return nil
}

func normalizeCurrency(raw string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return DefaultCurrency
	}
	return trimmed
}

func applyReserveChanges(existing ReserveRecord, changes ReserveChanges) ReserveRecord {
	revised := existing
	if changes.ReserveType != nil {
		revised.ReserveType = *changes.ReserveType
	}
	if changes.Notes != nil {
		revised.Notes = *changes.Notes
	}
	revised.Breakdown.Building = applyCategoryChange(revised.Breakdown.Building, changes.Building)
	revised.Breakdown.Contents = applyCategoryChange(revised.Breakdown.Contents, changes.Contents)
	revised.Breakdown.Consequential = applyCategoryChange(revised.Breakdown.Consequential, changes.Consequential)
	revised.Breakdown.AlternativeAccommodation = applyCategoryChange(revised.Breakdown.AlternativeAccommodation, changes.AlternativeAccommodation)
	revised.Breakdown.ProfessionalFees = applyCategoryChange(revised.Breakdown.ProfessionalFees, changes.ProfessionalFees)
	revised.Breakdown = revised.Breakdown.Recomputed()
	return revised
}

func applyCategoryChange(current CategoryAmounts, change *CategoryChange) CategoryAmounts {
	if change == nil {
		return current
	}
	if change.Estimated != nil {
		current.Estimated = *change.Estimated
	}
	if change.Actual != nil {
		current.Actual = *change.Actual
	}
	return current
}
