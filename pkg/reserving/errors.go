package reserving

import (
	"errors"
	"fmt"
)

// Domain-level error values returned by the reserving service.
var (
	ErrMissingSchema          = errors.New("relation not provisioned")
	ErrValidation             = errors.New("validation failed")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrUnknownReserve         = errors.New("unknown reserve")
	ErrUnknownDamageItem      = errors.New("unknown damage item")
	ErrUnknownHODCode         = errors.New("unknown hod code")
	ErrUnknownPCSum           = errors.New("unknown pc sum")
	ErrInvalidProjectID       = errors.New("invalid project id")
	ErrInvalidActorID         = errors.New("invalid actor id")
	ErrInvalidReserveID       = errors.New("invalid reserve id")
	ErrInvalidDamageItemID    = errors.New("invalid damage item id")
	ErrInvalidHODCodeID       = errors.New("invalid hod code id")
	ErrInvalidPCSumID         = errors.New("invalid pc sum id")
	ErrInvalidReserveType     = errors.New("invalid reserve type")
	ErrInvalidReserveStatus   = errors.New("invalid reserve status")
	ErrInvalidDamageStatus    = errors.New("invalid damage item status")
	ErrInvalidUrgency         = errors.New("invalid urgency")
	ErrInvalidDamageExtent    = errors.New("invalid damage extent")
	ErrInvalidPCSumStatus     = errors.New("invalid pc sum status")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidServiceConfig   = errors.New("invalid service config")
)

// OperationError wraps a failure with a stable operation code.
type OperationError struct {
	operation string
	subject   string
	code      string
	err       error
}

// Error returns the formatted error message.
func (operationError OperationError) Error() string {
	return fmt.Sprintf("%s.%s.%s: %v", operationError.operation, operationError.subject, operationError.code, operationError.err)
}

// Unwrap returns the underlying error.
func (operationError OperationError) Unwrap() error {
	return operationError.err
}

// Operation returns the operation segment.
func (operationError OperationError) Operation() string {
	return operationError.operation
}

// Subject returns the subject segment.
func (operationError OperationError) Subject() string {
	return operationError.subject
}

// Code returns the stable error code segment.
func (operationError OperationError) Code() string {
	return operationError.code
}

// WrapError wraps an error with operation, subject, and code metadata.
func WrapError(operation string, subject string, code string, err error) error {
	if err == nil {
		return nil
	}
	return OperationError{
		operation: operation,
		subject:   subject,
		code:      code,
		err:       err,
	}
}
