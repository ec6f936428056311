package object

import (
	"fmt"
	"slices"

	"github.com/roach88/simattr/internal/attr"
)

// Instance is one live simulation object: an immutable type tag plus the
// typed attribute state owned exclusively by that object.
//
// Instances are not safe for concurrent use. The host document's
// single-writer model is relied upon for exclusive mutation access.
type Instance struct {
	typeTag string
	descs   []attr.Descriptor
	byName  map[string]int
	values  map[string]attr.Value
}

// New creates a fresh instance of the given type, populating every declared
// attribute with its default value in declaration order.
//
// Descriptor uniqueness and validity are the declaring registry's job; New
// trusts its input and only guards against programming errors.
func New(typeTag string, descs []attr.Descriptor) *Instance {
	inst := &Instance{
		typeTag: typeTag,
		descs:   descs,
		byName:  make(map[string]int, len(descs)),
		values:  make(map[string]attr.Value, len(descs)),
	}
	for i, d := range descs {
		inst.byName[d.Name] = i
		inst.values[d.Name] = d.DefaultValue()
	}
	return inst
}

// Restore creates an instance from persisted state. Declared attributes
// absent from the persisted map keep their defaults; persisted keys with no
// current descriptor are kept verbatim so the migration engine can inspect
// and rewrite them.
//
// A persisted value for a declared attribute must carry the declared kind.
// A mismatch means the file was written by something other than this
// schema, and accepting it would let a typed accessor blow up later in a
// consumer far from the load path; it fails restore with a type-mismatch
// error instead.
//
// The returned instance must pass through the migration engine before any
// other consumer observes it.
func Restore(typeTag string, descs []attr.Descriptor, persisted map[string]attr.Value) (*Instance, error) {
	inst := New(typeTag, descs)
	for name, v := range persisted {
		if d, ok := inst.Descriptor(name); ok {
			if err := inst.put(d, v); err != nil {
				return nil, err
			}
			continue
		}
		inst.values[name] = attr.Clone(v)
	}
	return inst, nil
}

// Type returns the instance's immutable type tag.
func (in *Instance) Type() string { return in.typeTag }

// Has reports whether a value is present under name, declared or legacy.
func (in *Instance) Has(name string) bool {
	_, ok := in.values[name]
	return ok
}

// Get returns the value stored under name. Legacy keys left behind by an
// older schema are visible until migration removes them.
func (in *Instance) Get(name string) (attr.Value, error) {
	v, ok := in.values[name]
	if !ok {
		return nil, unknownAttribute(in.typeTag, name)
	}
	return attr.Clone(v), nil
}

// Set writes a value through the ordinary external path: the attribute must
// be declared, the value's kind must match, and the attribute must not be
// read-only.
func (in *Instance) Set(name string, v attr.Value) error {
	d, ok := in.Descriptor(name)
	if !ok {
		return unknownAttribute(in.typeTag, name)
	}
	if d.ReadOnly {
		return readOnlyViolation(in.typeTag, name)
	}
	return in.put(d, v)
}

// SetLocked writes a value through the privileged path used during
// construction and migration. It bypasses the read-only flag but never the
// type check.
func (in *Instance) SetLocked(name string, v attr.Value) error {
	d, ok := in.Descriptor(name)
	if !ok {
		return unknownAttribute(in.typeTag, name)
	}
	return in.put(d, v)
}

func (in *Instance) put(d attr.Descriptor, v attr.Value) error {
	if v == nil {
		return typeMismatch(in.typeTag, d.Name, "nil value")
	}
	if v.Kind() != d.Kind {
		return typeMismatch(in.typeTag, d.Name,
			fmt.Sprintf("got %s, want %s", v.Kind(), d.Kind))
	}
	if err := attr.Validate(v); err != nil {
		return typeMismatch(in.typeTag, d.Name, err.Error())
	}
	in.values[d.Name] = attr.Clone(v)
	return nil
}

// Remove deletes a key entirely. Used only by migration to retire legacy
// attributes; ordinary consumers never call it.
func (in *Instance) Remove(name string) error {
	if _, ok := in.values[name]; !ok {
		return unknownAttribute(in.typeTag, name)
	}
	delete(in.values, name)
	return nil
}

// Descriptor returns the current-schema descriptor for name.
func (in *Instance) Descriptor(name string) (attr.Descriptor, bool) {
	i, ok := in.byName[name]
	if !ok {
		return attr.Descriptor{}, false
	}
	return in.descs[i], true
}

// Descriptors returns the instance's descriptors in declaration order.
func (in *Instance) Descriptors() []attr.Descriptor {
	return slices.Clone(in.descs)
}

// Groups returns the distinct attribute groups in declaration order.
func (in *Instance) Groups() []string {
	var groups []string
	seen := make(map[string]bool)
	for _, d := range in.descs {
		if !seen[d.Group] {
			seen[d.Group] = true
			groups = append(groups, d.Group)
		}
	}
	return groups
}

// KeysInGroup returns the declared attribute names in a group, in
// declaration order.
func (in *Instance) KeysInGroup(group string) []string {
	var names []string
	for _, d := range in.descs {
		if d.Group == group {
			names = append(names, d.Name)
		}
	}
	return names
}

// Names returns every present key: declared attributes in declaration
// order, then any legacy keys in sorted order for determinism.
func (in *Instance) Names() []string {
	names := make([]string, 0, len(in.values))
	for _, d := range in.descs {
		if _, ok := in.values[d.Name]; ok {
			names = append(names, d.Name)
		}
	}
	var legacy []string
	for name := range in.values {
		if _, ok := in.byName[name]; !ok {
			legacy = append(legacy, name)
		}
	}
	slices.Sort(legacy)
	return append(names, legacy...)
}

// LegacyNames returns the present keys that no current descriptor covers,
// in sorted order. Empty on a fully migrated instance.
func (in *Instance) LegacyNames() []string {
	var legacy []string
	for name := range in.values {
		if _, ok := in.byName[name]; !ok {
			legacy = append(legacy, name)
		}
	}
	slices.Sort(legacy)
	return legacy
}

// State returns a deep copy of the full attribute state, for persistence
// and snapshots.
func (in *Instance) State() map[string]attr.Value {
	state := make(map[string]attr.Value, len(in.values))
	for name, v := range in.values {
		state[name] = attr.Clone(v)
	}
	return state
}

// Equal reports attribute-by-attribute equality with another instance.
func (in *Instance) Equal(other *Instance) bool {
	if in.typeTag != other.typeTag || len(in.values) != len(other.values) {
		return false
	}
	for name, v := range in.values {
		ov, ok := other.values[name]
		if !ok || !attr.Equal(v, ov) {
			return false
		}
	}
	return true
}

// Typed accessors. Each fails with a type-mismatch error when the stored
// value has a different kind.

// Float returns a float attribute's value.
func (in *Instance) Float(name string) (float64, error) {
	v, err := in.Get(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(attr.Float)
	if !ok {
		return 0, typeMismatch(in.typeTag, name, fmt.Sprintf("got %s, want float", v.Kind()))
	}
	return float64(f), nil
}

// Int returns an int attribute's value.
func (in *Instance) Int(name string) (int64, error) {
	v, err := in.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(attr.Int)
	if !ok {
		return 0, typeMismatch(in.typeTag, name, fmt.Sprintf("got %s, want int", v.Kind()))
	}
	return int64(n), nil
}

// Bool returns a bool attribute's value.
func (in *Instance) Bool(name string) (bool, error) {
	v, err := in.Get(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(attr.Bool)
	if !ok {
		return false, typeMismatch(in.typeTag, name, fmt.Sprintf("got %s, want bool", v.Kind()))
	}
	return bool(b), nil
}

// String returns a string attribute's value.
func (in *Instance) String(name string) (string, error) {
	v, err := in.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(attr.String)
	if !ok {
		return "", typeMismatch(in.typeTag, name, fmt.Sprintf("got %s, want string", v.Kind()))
	}
	return string(s), nil
}

// ScalarList returns a scalar-list attribute's value.
func (in *Instance) ScalarList(name string) (attr.ScalarList, error) {
	v, err := in.Get(name)
	if err != nil {
		return nil, err
	}
	l, ok := v.(attr.ScalarList)
	if !ok {
		return nil, typeMismatch(in.typeTag, name, fmt.Sprintf("got %s, want scalarList", v.Kind()))
	}
	return l, nil
}

// Frequency returns a frequency attribute's value in hertz.
func (in *Instance) Frequency(name string) (float64, error) {
	v, err := in.Get(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(attr.Frequency)
	if !ok {
		return 0, typeMismatch(in.typeTag, name, fmt.Sprintf("got %s, want frequency", v.Kind()))
	}
	return float64(f), nil
}
