package migrate

import (
	"errors"
	"fmt"
)

// CorruptStateError indicates that a legacy-shape predicate matched but the
// expected sub-structure was absent or malformed. This is the one error in
// the engine expected to reach an end user, reported as "this project file
// appears corrupted".
//
// Absence of a legacy-shape match is the normal, silent case and never an
// error.
type CorruptStateError struct {
	// Rule names the rule whose predicate matched.
	Rule string

	// Type is the affected instance's type tag.
	Type string

	// Attribute is the attribute the rule was rewriting.
	Attribute string

	// Message describes the missing or malformed sub-structure.
	Message string
}

// Error implements the error interface.
func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("CORRUPT_MIGRATION_STATE: rule %s on %s.%s: %s",
		e.Rule, e.Type, e.Attribute, e.Message)
}

// IsCorruptState reports whether err is a corrupt-migration-state error.
// Uses errors.As to handle wrapped errors.
func IsCorruptState(err error) bool {
	var ce *CorruptStateError
	return errors.As(err, &ce)
}
