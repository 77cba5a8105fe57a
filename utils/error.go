package utils

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. All three are recoverable by the caller and are
// mapped at the HTTP boundary: NotFoundError -> 404, ValidationError -> 400,
// BusinessRuleError -> 422. Storage errors propagate unmodified.

// NotFoundError marks a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	Id     int
}

func (e *NotFoundError) Error() string {
	if e.Id > 0 {
		return fmt.Sprintf("%s with id %d not found", e.Entity, e.Id)
	}
	return e.Entity + " not found"
}

func NewNotFoundError(entity string, id int) error {
	return &NotFoundError{Entity: entity, Id: id}
}

// ValidationError marks malformed or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// BusinessRuleError marks structurally valid input that violates a ledger
// invariant, e.g. overpayment or paying a cancelled invoice.
type BusinessRuleError struct {
	Msg string
}

func (e *BusinessRuleError) Error() string {
	return e.Msg
}

func NewBusinessRuleError(msg string) error {
	return &BusinessRuleError{Msg: msg}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsBusinessRule(err error) bool {
	var target *BusinessRuleError
	return errors.As(err, &target)
}
