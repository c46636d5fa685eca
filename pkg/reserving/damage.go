package reserving

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DamageItem is one assessed unit of damage requiring repair or replacement.
type DamageItem struct {
	ItemID         DamageItemID
	ProjectID      ProjectID
	HODCodeID      HODCodeID
	ReserveID      string
	Description    string
	Location       string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	VATRatePercent decimal.Decimal
	Totals         LineTotals
	Urgency        Urgency
	Extent         DamageExtent
	Status         DamageStatus
	CreatedBy      ActorID
	CreatedUnixUTC int64
	UpdatedUnixUTC int64
}

// DamageItemInput carries the caller-settable fields of a new damage item.
// The derived monetary fields do not appear here: they are always computed.
type DamageItemInput struct {
	HODCodeID      HODCodeID
	ReserveID      string
	Description    string
	Location       string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	VATRatePercent *decimal.Decimal
	Urgency        Urgency
	Extent         DamageExtent
}

// DamageItemChanges carries a partial update of an existing damage item.
// Touching any of Quantity, UnitCost, or VATRatePercent recomputes all three
// derived monetary fields from the merged record.
type DamageItemChanges struct {
	Description    *string
	Location       *string
	ReserveID      *string
	Quantity       *decimal.Decimal
	UnitCost       *decimal.Decimal
	VATRatePercent *decimal.Decimal
	Urgency        *Urgency
	Extent         *DamageExtent
}

var damageStatusOrder = []DamageStatus{
	DamageStatusEstimated,
	DamageStatusQuoted,
	DamageStatusApproved,
	DamageStatusWorksOrdered,
	DamageStatusCompleted,
}

// NextDamageStatus returns the single permitted successor status, if any.
func NextDamageStatus(from DamageStatus) (DamageStatus, bool) {
	for index, status := range damageStatusOrder {
		if status == from && index+1 < len(damageStatusOrder) {
			return damageStatusOrder[index+1], true
		}
	}
	return "", false
}

// CanAdvanceDamage reports whether the workflow permits moving from one
// status to another: strictly forward, one step at a time.
func CanAdvanceDamage(from DamageStatus, to DamageStatus) bool {
	next, ok := NextDamageStatus(from)
	return ok && next == to
}

func validateDamageItemInput(input DamageItemInput) error {
	if input.HODCodeID.String() == "" {
		return fmt.Errorf("%w: hod code is required", ErrValidation)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if input.Quantity.IsNegative() {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if input.UnitCost.IsNegative() {
		return fmt.Errorf("%w: unit cost must not be negative", ErrValidation)
	}
	if input.VATRatePercent != nil && input.VATRatePercent.IsNegative() {
		return fmt.Errorf("%w: vat rate must not be negative", ErrValidation)
	}
	return nil
}

func applyDamageItemChanges(existing DamageItem, changes DamageItemChanges) (DamageItem, error) {
	updated := existing
	if changes.Description != nil {
		if strings.TrimSpace(*changes.Description) == "" {
			return DamageItem{}, fmt.Errorf("%w: description is required", ErrValidation)
		}
		updated.Description = *changes.Description
	}
	if changes.Location != nil {
		updated.Location = *changes.Location
	}
	if changes.ReserveID != nil {
		updated.ReserveID = *changes.ReserveID
	}
	if changes.Urgency != nil {
		if _, err := ParseUrgency(changes.Urgency.String()); err != nil {
			return DamageItem{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		updated.Urgency = *changes.Urgency
	}
	if changes.Extent != nil {
		if _, err := ParseDamageExtent(changes.Extent.String()); err != nil {
			return DamageItem{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		updated.Extent = *changes.Extent
	}
	pricingTouched := false
	if changes.Quantity != nil {
		if changes.Quantity.IsNegative() {
			return DamageItem{}, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
		}
		updated.Quantity = *changes.Quantity
		pricingTouched = true
	}
	if changes.UnitCost != nil {
		if changes.UnitCost.IsNegative() {
			return DamageItem{}, fmt.Errorf("%w: unit cost must not be negative", ErrValidation)
		}
		updated.UnitCost = *changes.UnitCost
		pricingTouched = true
	}
	if changes.VATRatePercent != nil {
		if changes.VATRatePercent.IsNegative() {
			return DamageItem{}, fmt.Errorf("%w: vat rate must not be negative", ErrValidation)
		}
		updated.VATRatePercent = *changes.VATRatePercent
		pricingTouched = true
	}
	if pricingTouched {
		updated.Totals = ComputeLineTotals(updated.Quantity, updated.UnitCost, updated.VATRatePercent)
	}
	return updated, nil
}
