package schema

import (
	"slices"

	"github.com/roach88/simattr/internal/attr"
	"github.com/roach88/simattr/internal/object"
)

// Registry holds the attribute declarations for every object type known to
// one document session.
type Registry struct {
	types map[string]*typeDecl
	order []string
}

type typeDecl struct {
	descs  []attr.Descriptor
	byName map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*typeDecl)}
}

// Declare adds one attribute declaration to an object type, creating the
// type on first use. Fails with a duplicate-attribute error if the name is
// already declared for the type, and with an invalid-descriptor error if
// the descriptor does not validate.
func (r *Registry) Declare(typeTag string, d attr.Descriptor) error {
	if err := d.Validate(); err != nil {
		return &DeclarationError{
			Code:      ErrCodeInvalidDescriptor,
			Type:      typeTag,
			Attribute: d.Name,
			Message:   err.Error(),
		}
	}
	td, ok := r.types[typeTag]
	if !ok {
		td = &typeDecl{byName: make(map[string]int)}
		r.types[typeTag] = td
		r.order = append(r.order, typeTag)
	}
	if _, exists := td.byName[d.Name]; exists {
		return &DeclarationError{
			Code:      ErrCodeDuplicateAttribute,
			Type:      typeTag,
			Attribute: d.Name,
			Message:   "attribute already declared",
		}
	}
	td.byName[d.Name] = len(td.descs)
	td.descs = append(td.descs, d)
	return nil
}

// DeclareAll declares a sequence of attributes in order, stopping at the
// first error.
func (r *Registry) DeclareAll(typeTag string, descs []attr.Descriptor) error {
	for _, d := range descs {
		if err := r.Declare(typeTag, d); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether a type has any declarations.
func (r *Registry) Has(typeTag string) bool {
	_, ok := r.types[typeTag]
	return ok
}

// Types returns the declared type tags in declaration order.
func (r *Registry) Types() []string {
	return slices.Clone(r.order)
}

// Descriptors returns a type's declarations in declaration order.
func (r *Registry) Descriptors(typeTag string) ([]attr.Descriptor, error) {
	td, ok := r.types[typeTag]
	if !ok {
		return nil, unknownType(typeTag)
	}
	return slices.Clone(td.descs), nil
}

// Groups returns a type's distinct attribute groups in declaration order.
func (r *Registry) Groups(typeTag string) ([]string, error) {
	td, ok := r.types[typeTag]
	if !ok {
		return nil, unknownType(typeTag)
	}
	var groups []string
	seen := make(map[string]bool)
	for _, d := range td.descs {
		if !seen[d.Group] {
			seen[d.Group] = true
			groups = append(groups, d.Group)
		}
	}
	return groups, nil
}

// AttributesInGroup returns a type's attribute names within a group, in
// declaration order.
func (r *Registry) AttributesInGroup(typeTag, group string) ([]string, error) {
	td, ok := r.types[typeTag]
	if !ok {
		return nil, unknownType(typeTag)
	}
	var names []string
	for _, d := range td.descs {
		if d.Group == group {
			names = append(names, d.Name)
		}
	}
	return names, nil
}

// Instantiate creates a fresh instance of a type with every declared
// default populated in declaration order.
func (r *Registry) Instantiate(typeTag string) (*object.Instance, error) {
	td, ok := r.types[typeTag]
	if !ok {
		return nil, unknownType(typeTag)
	}
	return object.New(typeTag, slices.Clone(td.descs)), nil
}

// Restore reconstitutes an instance of a type from persisted state. The
// result may carry legacy keys and must pass through the migration engine
// before being handed to consumers.
func (r *Registry) Restore(typeTag string, persisted map[string]attr.Value) (*object.Instance, error) {
	td, ok := r.types[typeTag]
	if !ok {
		return nil, unknownType(typeTag)
	}
	return object.Restore(typeTag, slices.Clone(td.descs), persisted)
}

func unknownType(typeTag string) *DeclarationError {
	return &DeclarationError{
		Code:    ErrCodeUnknownType,
		Type:    typeTag,
		Message: "object type not declared",
	}
}
