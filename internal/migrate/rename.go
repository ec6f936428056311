package migrate

import (
	"fmt"

	"github.com/roach88/simattr/internal/object"
)

// RenameRule relocates the value of a legacy attribute into its current
// name, then removes the legacy key. Loss-free: no value is dropped, only
// relocated.
//
// The current name must be declared by the instance's schema; the restore
// path populates it with its default, which the legacy value overwrites
// through the privileged path (renamed attributes are typically read-only).
type RenameRule struct {
	// Old is the legacy attribute name.
	Old string

	// New is the current attribute name.
	New string
}

// Name implements Rule.
func (r RenameRule) Name() string {
	return fmt.Sprintf("rename(%s->%s)", r.Old, r.New)
}

// Matches reports whether the legacy name is still present. After Apply
// removes it the rule no longer matches, so re-running is a no-op.
func (r RenameRule) Matches(inst *object.Instance) bool {
	return inst.Has(r.Old)
}

// Apply copies the legacy value into the current name and removes the
// legacy key.
func (r RenameRule) Apply(inst *object.Instance) error {
	if _, ok := inst.Descriptor(r.New); !ok {
		return &CorruptStateError{
			Rule:      r.Name(),
			Type:      inst.Type(),
			Attribute: r.New,
			Message:   "current schema does not declare the rename target",
		}
	}
	v, err := inst.Get(r.Old)
	if err != nil {
		return &CorruptStateError{
			Rule:      r.Name(),
			Type:      inst.Type(),
			Attribute: r.Old,
			Message:   err.Error(),
		}
	}
	if err := inst.SetLocked(r.New, v); err != nil {
		// Legacy value of a kind the current schema cannot hold.
		return &CorruptStateError{
			Rule:      r.Name(),
			Type:      inst.Type(),
			Attribute: r.New,
			Message:   err.Error(),
		}
	}
	return inst.Remove(r.Old)
}
