package entities

import (
	"errors"
	"fmt"
)

// ErrConstraintViolation indicates that an entity breaks a persistence rule,
// such as a child without an owning word or an undeclared enum literal.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrDataAccess indicates that the underlying store could not be reached or
// failed while executing a query.
var ErrDataAccess = errors.New("data access error")

// ErrUnknownEnumValue is returned when decoding a symbolic name that is not
// part of the enum's declared set. It is also a constraint violation.
var ErrUnknownEnumValue = fmt.Errorf("%w: unknown enum value", ErrConstraintViolation)

// ErrDetachedCollection is returned when loading a child collection that was
// never bound to a store.
var ErrDetachedCollection = errors.New("collection is not bound to a store")

// ConstraintError describes which rule was broken and on which field.
type ConstraintError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Reason)
}

func (e *ConstraintError) Unwrap() error {
	return ErrConstraintViolation
}

// UnknownEnumValueError carries the rejected literal.
type UnknownEnumValueError struct {
	Enum  string
	Value string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown %s value %q", e.Enum, e.Value)
}

func (e *UnknownEnumValueError) Unwrap() error {
	return ErrUnknownEnumValue
}

// DataAccessError wraps a store failure so callers can match ErrDataAccess
// while keeping the driver error for logs.
func DataAccessError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDataAccess, err)
}
