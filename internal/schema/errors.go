package schema

import (
	"errors"
	"fmt"
)

// DeclarationErrorCode categorizes schema declaration errors.
type DeclarationErrorCode string

const (
	// ErrCodeDuplicateAttribute indicates an attribute name declared twice
	// for the same object type.
	ErrCodeDuplicateAttribute DeclarationErrorCode = "DUPLICATE_ATTRIBUTE"

	// ErrCodeUnknownType indicates an object type with no declarations.
	ErrCodeUnknownType DeclarationErrorCode = "UNKNOWN_TYPE"

	// ErrCodeInvalidDescriptor indicates a descriptor rejected by
	// validation (empty name, unknown kind, mismatched default).
	ErrCodeInvalidDescriptor DeclarationErrorCode = "INVALID_DESCRIPTOR"
)

// DeclarationError represents an error raised while declaring or
// instantiating object types. Declaration errors indicate schema bugs
// caught during development, never user data problems.
type DeclarationError struct {
	Code      DeclarationErrorCode
	Type      string
	Attribute string
	Message   string
}

// Error implements the error interface.
func (e *DeclarationError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("%s: %s.%s: %s", e.Code, e.Type, e.Attribute, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Type, e.Message)
}

// IsDuplicateAttribute reports whether err is a duplicate-attribute error.
// Uses errors.As to handle wrapped errors.
func IsDuplicateAttribute(err error) bool {
	var de *DeclarationError
	return errors.As(err, &de) && de.Code == ErrCodeDuplicateAttribute
}

// IsUnknownType reports whether err is an unknown-type error.
func IsUnknownType(err error) bool {
	var de *DeclarationError
	return errors.As(err, &de) && de.Code == ErrCodeUnknownType
}
