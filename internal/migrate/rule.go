package migrate

import "github.com/roach88/simattr/internal/object"

// Rule rewrites one legacy shape into the current schema.
//
// Matches is the rule's legacy-shape predicate: it must return false on a
// current-schema instance and on any instance the rule has already
// rewritten, which is what makes the engine idempotent. Apply is only
// called when Matches returned true, and must either complete the rewrite
// loss-free or fail with a CorruptStateError.
type Rule interface {
	// Name identifies the rule in reports and error messages.
	Name() string

	// Matches reports whether the instance carries this rule's legacy
	// shape.
	Matches(inst *object.Instance) bool

	// Apply rewrites the legacy shape into the current schema.
	Apply(inst *object.Instance) error
}
