package migrate

import (
	"fmt"

	"github.com/roach88/simattr/internal/attr"
	"github.com/roach88/simattr/internal/object"
)

// ListReductionRule reduces a list attribute from a superseded fixed length
// to the current one by dropping one slot per fixed-size group.
//
// The canonical case is the mechanical result Stats list: 13 result fields
// once carried {min, avg, max} triples (39 entries) and now carry
// {min, max} pairs (26 entries); the avg slot at offset 1 of each triple is
// dropped. Deletion iterates from the last group toward the front so index
// shifts from earlier deletions never invalidate not-yet-processed offsets.
type ListReductionRule struct {
	// Attribute is the list attribute to reduce.
	Attribute string

	// LegacyLen is the superseded total length. Matching on the exact
	// length is the rule's legacy-shape predicate.
	LegacyLen int

	// GroupSize is the legacy entries-per-group count.
	GroupSize int

	// DropOffset is the slot dropped within each group, 0-based.
	DropOffset int

	// RequireSibling optionally names an attribute that must be present
	// whenever the legacy length matches. A matching length without the
	// sibling means the store is corrupt, not legacy. Only a name outside
	// the current schema can discriminate here: declared attributes are
	// always populated on restore.
	RequireSibling string
}

// Name implements Rule.
func (r ListReductionRule) Name() string {
	return fmt.Sprintf("reduce(%s %d->%d)", r.Attribute, r.LegacyLen, r.currentLen())
}

func (r ListReductionRule) currentLen() int {
	return r.LegacyLen / r.GroupSize * (r.GroupSize - 1)
}

// Matches reports whether the attribute is a list of exactly the legacy
// length. A reduced list no longer matches, so re-running is a no-op, and
// a current-schema list can never be mistaken for a legacy one.
func (r ListReductionRule) Matches(inst *object.Instance) bool {
	v, err := inst.Get(r.Attribute)
	if err != nil {
		return false
	}
	list, ok := v.(attr.ScalarList)
	return ok && len(list) == r.LegacyLen
}

// Apply drops the redundant slot of each group, last group first.
func (r ListReductionRule) Apply(inst *object.Instance) error {
	if r.GroupSize < 2 || r.DropOffset < 0 || r.DropOffset >= r.GroupSize ||
		r.LegacyLen%r.GroupSize != 0 {
		return fmt.Errorf("misconfigured rule %s", r.Name())
	}
	if r.RequireSibling != "" && !inst.Has(r.RequireSibling) {
		return &CorruptStateError{
			Rule:      r.Name(),
			Type:      inst.Type(),
			Attribute: r.Attribute,
			Message:   fmt.Sprintf("expected sibling attribute %q is missing", r.RequireSibling),
		}
	}

	list, err := inst.ScalarList(r.Attribute)
	if err != nil {
		return &CorruptStateError{
			Rule:      r.Name(),
			Type:      inst.Type(),
			Attribute: r.Attribute,
			Message:   err.Error(),
		}
	}

	groups := r.LegacyLen / r.GroupSize
	for g := groups - 1; g >= 0; g-- {
		i := g*r.GroupSize + r.DropOffset
		list = append(list[:i], list[i+1:]...)
	}
	if len(list) != r.currentLen() {
		// Unreachable with a well-formed rule; guards the schema contract
		// that the output length matches the current declaration.
		return &CorruptStateError{
			Rule:      r.Name(),
			Type:      inst.Type(),
			Attribute: r.Attribute,
			Message:   fmt.Sprintf("reduced to %d entries, want %d", len(list), r.currentLen()),
		}
	}
	return inst.SetLocked(r.Attribute, list)
}
