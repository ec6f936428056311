package attr

import (
	"fmt"
	"strings"
)

// Descriptor declares one attribute of an object type: its name, semantic
// kind, organizational group, documentation, flags and default value.
//
// Name is unique within an object type. Kind is fixed for the lifetime of
// the descriptor; retyping an attribute in place is not supported and must
// be expressed as removal plus re-declaration (see the migrate package).
type Descriptor struct {
	// Name uniquely identifies the attribute within its object type.
	Name string

	// Kind is the attribute's semantic type.
	Kind Kind

	// Group is the UI/organizational grouping. Not load-bearing: grouping
	// never affects semantics, only display order.
	Group string

	// Doc is the human-readable documentation string shown in editors.
	Doc string

	// ReadOnly attributes may only be written through the privileged path
	// used during construction and migration.
	ReadOnly bool

	// Hidden attributes do not show up in property editors.
	Hidden bool

	// Default is the value populated at instantiation. When nil, the
	// kind's zero value is used.
	Default Value
}

// Validate checks the descriptor for declaration-time errors: empty or
// whitespace names, unknown kinds, defaults of the wrong kind, and defaults
// violating their kind's domain.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("attribute name must be non-empty")
	}
	if _, ok := kindNames[d.Kind]; !ok {
		return fmt.Errorf("attribute %q: unknown kind", d.Name)
	}
	if d.Default != nil {
		if d.Default.Kind() != d.Kind {
			return fmt.Errorf("attribute %q: default is %s, want %s",
				d.Name, d.Default.Kind(), d.Kind)
		}
		if err := Validate(d.Default); err != nil {
			return fmt.Errorf("attribute %q: invalid default: %w", d.Name, err)
		}
	}
	return nil
}

// DefaultValue returns the declared default, or the kind's zero value when
// no default was declared. The returned value is safe to store directly:
// list defaults are cloned.
func (d Descriptor) DefaultValue() Value {
	if d.Default != nil {
		return Clone(d.Default)
	}
	v, err := ZeroValue(d.Kind)
	if err != nil {
		// Unreachable for validated descriptors.
		panic(err)
	}
	return v
}
