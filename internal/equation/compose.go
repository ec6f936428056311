package equation

import (
	"fmt"

	"github.com/roach88/simattr/internal/object"
	"github.com/roach88/simattr/internal/schema"
)

// Instance is a composed equation object: the base attribute set plus one
// variant attribute set, with the variant tag fixed for the instance's
// lifetime.
type Instance struct {
	*object.Instance
	variant Variant
}

// Variant returns the immutable variant tag.
func (in *Instance) Variant() Variant { return in.variant }

// Register declares every known variant's composed type into a registry.
// Called at document open so persisted equation instances can be restored.
func Register(reg *schema.Registry) error {
	for _, v := range Variants() {
		if err := declare(reg, v); err != nil {
			return err
		}
	}
	return nil
}

// declare lays the base attribute set down first, then the variant set.
// A variant table that redeclares a base name fails here with the
// registry's duplicate-attribute error.
func declare(reg *schema.Registry, v Variant) error {
	spec, ok := variants[v]
	if !ok {
		return fmt.Errorf("unknown equation variant %q", v)
	}
	tag := v.TypeTag()
	if reg.Has(tag) {
		return nil
	}
	if err := reg.DeclareAll(tag, baseDescriptors()); err != nil {
		return err
	}
	return reg.DeclareAll(tag, spec.attrs)
}

// Compose builds a concrete equation instance: declares the composed
// schema on first use, instantiates it, and applies the variant's
// table-driven instance defaults through the privileged path.
func Compose(reg *schema.Registry, v Variant) (*Instance, error) {
	if err := declare(reg, v); err != nil {
		return nil, err
	}
	obj, err := reg.Instantiate(v.TypeTag())
	if err != nil {
		return nil, err
	}
	for _, o := range variants[v].defaults {
		if err := obj.SetLocked(o.name, o.value); err != nil {
			return nil, fmt.Errorf("compose %s: %w", v, err)
		}
	}
	return &Instance{Instance: obj, variant: v}, nil
}

// Wrap attaches variant identity to a restored equation object. Fails for
// instances whose type tag is not a known equation variant.
func Wrap(obj *object.Instance) (*Instance, error) {
	v, ok := VariantFromTypeTag(obj.Type())
	if !ok {
		return nil, fmt.Errorf("not an equation type: %s", obj.Type())
	}
	return &Instance{Instance: obj, variant: v}, nil
}

// Priority returns the instance's solve priority.
func (in *Instance) Priority() int64 {
	p, err := in.Int(PriorityAttribute)
	if err != nil {
		// Priority is part of the base set; every composed or restored
		// equation instance has it.
		panic(err)
	}
	return p
}
