package object

import (
	"errors"
	"fmt"
)

// StoreErrorCode categorizes attribute store errors.
type StoreErrorCode string

const (
	// ErrCodeUnknownAttribute indicates a name with no value and no
	// descriptor on the instance.
	ErrCodeUnknownAttribute StoreErrorCode = "UNKNOWN_ATTRIBUTE"

	// ErrCodeTypeMismatch indicates a value whose kind does not match the
	// attribute's declared kind.
	ErrCodeTypeMismatch StoreErrorCode = "TYPE_MISMATCH"

	// ErrCodeReadOnlyViolation indicates an external write to a read-only
	// attribute.
	ErrCodeReadOnlyViolation StoreErrorCode = "READ_ONLY_VIOLATION"
)

// StoreError represents an error raised by attribute store access.
// These indicate programming errors in the caller, not transient
// conditions; retrying never helps.
type StoreError struct {
	// Code identifies the error category.
	Code StoreErrorCode

	// Type is the owning object's type tag.
	Type string

	// Attribute is the attribute name involved.
	Attribute string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s.%s: %s", e.Code, e.Type, e.Attribute, e.Message)
}

// IsUnknownAttribute reports whether err is an unknown-attribute error.
// Uses errors.As to handle wrapped errors.
func IsUnknownAttribute(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrCodeUnknownAttribute
}

// IsTypeMismatch reports whether err is a type-mismatch error.
func IsTypeMismatch(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrCodeTypeMismatch
}

// IsReadOnlyViolation reports whether err is a read-only violation.
func IsReadOnlyViolation(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrCodeReadOnlyViolation
}

func unknownAttribute(typeTag, name string) *StoreError {
	return &StoreError{
		Code:      ErrCodeUnknownAttribute,
		Type:      typeTag,
		Attribute: name,
		Message:   "no such attribute",
	}
}

func typeMismatch(typeTag, name, msg string) *StoreError {
	return &StoreError{
		Code:      ErrCodeTypeMismatch,
		Type:      typeTag,
		Attribute: name,
		Message:   msg,
	}
}

func readOnlyViolation(typeTag, name string) *StoreError {
	return &StoreError{
		Code:      ErrCodeReadOnlyViolation,
		Type:      typeTag,
		Attribute: name,
		Message:   "attribute is read-only",
	}
}
