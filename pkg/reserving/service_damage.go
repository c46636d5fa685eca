package reserving

import (
	"context"
	"errors"
	"fmt"
)

// ListDamageItems returns a project's damage items with their cost code
// reference embedded. An unprovisioned relation reads as empty.
func (service *Service) ListDamageItems(ctx context.Context, projectID ProjectID) ([]DamageItem, error) {
	items, err := service.store.ListDamageItems(ctx, projectID)
	if errors.Is(err, ErrMissingSchema) {
		return []DamageItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ProjectDamageSummary aggregates the line totals across a project's damage items.
func (service *Service) ProjectDamageSummary(ctx context.Context, projectID ProjectID) (DamageAggregate, error) {
	items, err := service.ListDamageItems(ctx, projectID)
	if err != nil {
		return DamageAggregate{}, err
	}
	return AggregateDamageItems(items), nil
}

// CreateDamageItem persists a new estimated damage item with computed totals.
// The referenced hod code must exist.
func (service *Service) CreateDamageItem(ctx context.Context, projectID ProjectID, actor ActorID, input DamageItemInput) (DamageItem, error) {
	var item DamageItem
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		if err := validateDamageItemInput(input); err != nil {
			return err
		}
		if _, err := transactionStore.GetHODCode(ctx, input.HODCodeID); err != nil {
			return err
		}
		vatRate := DefaultVATRatePercent
		if input.VATRatePercent != nil {
			vatRate = *input.VATRatePercent
		}
		urgency := input.Urgency
		if urgency == "" {
			urgency = UrgencyNormal
		} else if _, err := ParseUrgency(urgency.String()); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		extent := input.Extent
		if extent == "" {
			extent = ExtentModerate
		} else if _, err := ParseDamageExtent(extent.String()); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		itemID, err := NewDamageItemID(service.idFn())
		if err != nil {
			return err
		}
		nowUnixUTC := service.nowFn()
		item = DamageItem{
			ItemID:         itemID,
			ProjectID:      projectID,
			HODCodeID:      input.HODCodeID,
			ReserveID:      input.ReserveID,
			Description:    input.Description,
			Location:       input.Location,
			Quantity:       input.Quantity,
			UnitCost:       input.UnitCost,
			VATRatePercent: vatRate,
			Totals:         ComputeLineTotals(input.Quantity, input.UnitCost, vatRate),
			Urgency:        urgency,
			Extent:         extent,
			Status:         DamageStatusEstimated,
			CreatedBy:      actor,
			CreatedUnixUTC: nowUnixUTC,
			UpdatedUnixUTC: nowUnixUTC,
		}
		return transactionStore.InsertDamageItem(ctx, item)
	})
	service.logOperation(ctx, OperationLog{
		Operation: operationCreateDamageItem,
		ProjectID: projectID,
		Actor:     actor,
		EntityID:  item.ItemID.String(),
		Error:     operationError,
	})
	if operationError != nil {
		return DamageItem{}, operationError
	}
	return item, nil
}

// UpdateDamageItem applies a partial update. If any pricing field is present
// in the changes, all three derived monetary fields are recomputed from the
// merged record, so partial updates never leave totals stale.
func (service *Service) UpdateDamageItem(ctx context.Context, projectID ProjectID, itemID DamageItemID, actor ActorID, changes DamageItemChanges) (DamageItem, error) {
	var updated DamageItem
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		existing, err := transactionStore.GetDamageItem(ctx, projectID, itemID)
		if err != nil {
			return err
		}
		updated, err = applyDamageItemChanges(existing, changes)
		if err != nil {
			return err
		}
		updated.UpdatedUnixUTC = service.nowFn()
		return transactionStore.UpdateDamageItem(ctx, updated)
	})
	service.logOperation(ctx, OperationLog{
		Operation: operationUpdateDamageItem,
		ProjectID: projectID,
		Actor:     actor,
		EntityID:  itemID.String(),
		Error:     operationError,
	})
	if operationError != nil {
		return DamageItem{}, operationError
	}
	return updated, nil
}

// AdvanceDamageItem moves an item one step forward in its workflow. Skipping
// steps or moving backwards is rejected before any persistence call.
func (service *Service) AdvanceDamageItem(ctx context.Context, projectID ProjectID, itemID DamageItemID, actor ActorID, to DamageStatus) error {
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		if _, err := ParseDamageStatus(to.String()); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		existing, err := transactionStore.GetDamageItem(ctx, projectID, itemID)
		if err != nil {
			return err
		}
		if !CanAdvanceDamage(existing.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, existing.Status, to)
		}
		return transactionStore.UpdateDamageItemStatus(ctx, projectID, itemID, existing.Status, to)
	})
	service.logOperation(ctx, OperationLog{
		Operation: operationAdvanceDamageItem,
		ProjectID: projectID,
		Actor:     actor,
		EntityID:  itemID.String(),
		Error:     operationError,
	})
	return operationError
}

// ListHODCodes returns the head-of-damage reference catalog.
func (service *Service) ListHODCodes(ctx context.Context) ([]HODCode, error) {
	codes, err := service.store.ListHODCodes(ctx)
	if errors.Is(err, ErrMissingSchema) {
		return []HODCode{}, nil
	}
	if err != nil {
		return nil, err
	}
	return codes, nil
}
