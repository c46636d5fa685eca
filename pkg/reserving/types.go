package reserving

import (
	"fmt"
	"strings"
)

// ProjectID identifies the claim project owning an entity.
type ProjectID struct {
	value string
}

// ActorID identifies the authenticated user performing an operation.
type ActorID struct {
	value string
}

// ReserveID identifies a reserve record.
type ReserveID struct {
	value string
}

// DamageItemID identifies a damage assessment line item.
type DamageItemID struct {
	value string
}

// HODCodeID identifies a head-of-damage cost code.
type HODCodeID struct {
	value string
}

// PCSumID identifies a provisional cost sum.
type PCSumID struct {
	value string
}

// NewProjectID validates and normalizes a project id.
func NewProjectID(raw string) (ProjectID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ProjectID{}, fmt.Errorf("%w: empty value", ErrInvalidProjectID)
	}
	return ProjectID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id ProjectID) String() string {
	return id.value
}

// NewActorID validates and normalizes an actor id.
func NewActorID(raw string) (ActorID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ActorID{}, fmt.Errorf("%w: empty value", ErrInvalidActorID)
	}
	return ActorID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id ActorID) String() string {
	return id.value
}

// NewReserveID validates and normalizes a reserve id.
func NewReserveID(raw string) (ReserveID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ReserveID{}, fmt.Errorf("%w: empty value", ErrInvalidReserveID)
	}
	return ReserveID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id ReserveID) String() string {
	return id.value
}

// NewDamageItemID validates and normalizes a damage item id.
func NewDamageItemID(raw string) (DamageItemID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DamageItemID{}, fmt.Errorf("%w: empty value", ErrInvalidDamageItemID)
	}
	return DamageItemID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id DamageItemID) String() string {
	return id.value
}

// NewHODCodeID validates and normalizes a hod code id.
func NewHODCodeID(raw string) (HODCodeID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return HODCodeID{}, fmt.Errorf("%w: empty value", ErrInvalidHODCodeID)
	}
	return HODCodeID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id HODCodeID) String() string {
	return id.value
}

// NewPCSumID validates and normalizes a pc sum id.
func NewPCSumID(raw string) (PCSumID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PCSumID{}, fmt.Errorf("%w: empty value", ErrInvalidPCSumID)
	}
	return PCSumID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id PCSumID) String() string {
	return id.value
}

// CoverageCategory splits a reserve across the standard heads of cover.
type CoverageCategory string

const (
	CategoryBuilding                 CoverageCategory = "building"
	CategoryContents                 CoverageCategory = "contents"
	CategoryConsequential            CoverageCategory = "consequential"
	CategoryAlternativeAccommodation CoverageCategory = "alternative_accommodation"
	CategoryProfessionalFees         CoverageCategory = "professional_fees"
)

// String returns the category label.
func (category CoverageCategory) String() string {
	return string(category)
}

// ReserveType distinguishes successive reserving passes on a claim.
type ReserveType string

const (
	ReserveTypeInitial ReserveType = "initial"
	ReserveTypeRevised ReserveType = "revised"
	ReserveTypeFinal   ReserveType = "final"
)

// String returns the reserve type label.
func (reserveType ReserveType) String() string {
	return string(reserveType)
}

// ParseReserveType validates a raw reserve type label.
func ParseReserveType(raw string) (ReserveType, error) {
	switch ReserveType(raw) {
	case ReserveTypeInitial, ReserveTypeRevised, ReserveTypeFinal:
		return ReserveType(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReserveType, raw)
}

// ReserveStatus defines the reserve approval lifecycle.
type ReserveStatus string

const (
	ReserveStatusDraft           ReserveStatus = "draft"
	ReserveStatusPendingApproval ReserveStatus = "pending_approval"
	ReserveStatusApproved        ReserveStatus = "approved"
	ReserveStatusSuperseded      ReserveStatus = "superseded"
)

// String returns the status label.
func (status ReserveStatus) String() string {
	return string(status)
}

// ParseReserveStatus validates a raw reserve status label.
func ParseReserveStatus(raw string) (ReserveStatus, error) {
	switch ReserveStatus(raw) {
	case ReserveStatusDraft, ReserveStatusPendingApproval, ReserveStatusApproved, ReserveStatusSuperseded:
		return ReserveStatus(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReserveStatus, raw)
}

// DamageStatus defines the damage item workflow lifecycle.
type DamageStatus string

const (
	DamageStatusEstimated    DamageStatus = "estimated"
	DamageStatusQuoted       DamageStatus = "quoted"
	DamageStatusApproved     DamageStatus = "approved"
	DamageStatusWorksOrdered DamageStatus = "works_ordered"
	DamageStatusCompleted    DamageStatus = "completed"
)

// String returns the status label.
func (status DamageStatus) String() string {
	return string(status)
}

// ParseDamageStatus validates a raw damage item status label.
func ParseDamageStatus(raw string) (DamageStatus, error) {
	switch DamageStatus(raw) {
	case DamageStatusEstimated, DamageStatusQuoted, DamageStatusApproved, DamageStatusWorksOrdered, DamageStatusCompleted:
		return DamageStatus(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDamageStatus, raw)
}

// Urgency classifies how quickly a damage item needs attention.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyNormal    Urgency = "normal"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// String returns the urgency label.
func (urgency Urgency) String() string {
	return string(urgency)
}

// ParseUrgency validates a raw urgency label.
func ParseUrgency(raw string) (Urgency, error) {
	switch Urgency(raw) {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyEmergency:
		return Urgency(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUrgency, raw)
}

// DamageExtent classifies how severe the assessed damage is.
type DamageExtent string

const (
	ExtentMinor     DamageExtent = "minor"
	ExtentModerate  DamageExtent = "moderate"
	ExtentMajor     DamageExtent = "major"
	ExtentTotalLoss DamageExtent = "total_loss"
)

// String returns the extent label.
func (extent DamageExtent) String() string {
	return string(extent)
}

// ParseDamageExtent validates a raw damage extent label.
func ParseDamageExtent(raw string) (DamageExtent, error) {
	switch DamageExtent(raw) {
	case ExtentMinor, ExtentModerate, ExtentMajor, ExtentTotalLoss:
		return DamageExtent(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDamageExtent, raw)
}

// PCSumStatus defines the provisional cost sum lifecycle.
type PCSumStatus string

const (
	PCSumStatusAllocated  PCSumStatus = "allocated"
	PCSumStatusInProgress PCSumStatus = "in_progress"
	PCSumStatusCompleted  PCSumStatus = "completed"
	PCSumStatusCancelled  PCSumStatus = "cancelled"
)

// String returns the status label.
func (status PCSumStatus) String() string {
	return string(status)
}

// ParsePCSumStatus validates a raw pc sum status label.
func ParsePCSumStatus(raw string) (PCSumStatus, error) {
	switch PCSumStatus(raw) {
	case PCSumStatusAllocated, PCSumStatusInProgress, PCSumStatusCompleted, PCSumStatusCancelled:
		return PCSumStatus(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPCSumStatus, raw)
}

// UnitType describes how a hod code rate is applied.
type UnitType string

const (
	UnitPerItem        UnitType = "per_item"
	UnitPerSquareMetre UnitType = "per_m2"
	UnitPerHour        UnitType = "per_hour"
	UnitPercentage     UnitType = "percentage"
)

// String returns the unit label.
func (unit UnitType) String() string {
	return string(unit)
}
