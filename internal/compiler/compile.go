// Package compiler parses CUE object-type declaration files into attribute
// descriptors.
//
// Declaration files let a project ship object types without touching Go:
//
//	types: {
//		"constraint.planeRotation": {
//			attributes: [
//				{name: "Axis", kind: "vector", group: "Parameter", doc: "Rotation axis"},
//				{name: "Locked", kind: "bool", group: "Parameter", default: true},
//			]
//		}
//	}
//
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
package compiler

import (
	"fmt"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/simattr/internal/attr"
)

// TypeDecl is one compiled object-type declaration.
type TypeDecl struct {
	// Tag is the object type tag, e.g. "constraint.planeRotation".
	Tag string

	// Attributes are the declared descriptors in file order.
	Attributes []attr.Descriptor
}

// CompileTypes parses a CUE value holding a "types" struct into type
// declarations. Type tags are returned in sorted order for determinism;
// attribute order within a type follows the file.
func CompileTypes(v cue.Value) ([]TypeDecl, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	typesVal := v.LookupPath(cue.ParsePath("types"))
	if !typesVal.Exists() {
		return nil, &CompileError{
			Field:   "types",
			Message: "declaration file must define a types struct",
			Pos:     v.Pos(),
		}
	}

	iter, err := typesVal.Fields(cue.Optional(false))
	if err != nil {
		return nil, formatCUEError(err)
	}

	var decls []TypeDecl
	for iter.Next() {
		tag := iter.Selector().Unquoted()
		decl, err := compileType(tag, iter.Value())
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Tag < decls[j].Tag })
	return decls, nil
}

func compileType(tag string, v cue.Value) (TypeDecl, error) {
	attrsVal := v.LookupPath(cue.ParsePath("attributes"))
	if !attrsVal.Exists() {
		return TypeDecl{}, &CompileError{
			Field:   tag,
			Message: "type must declare an attributes list",
			Pos:     v.Pos(),
		}
	}

	iter, err := attrsVal.List()
	if err != nil {
		return TypeDecl{}, formatCUEError(err)
	}

	decl := TypeDecl{Tag: tag}
	for iter.Next() {
		d, err := compileAttribute(tag, iter.Value())
		if err != nil {
			return TypeDecl{}, err
		}
		decl.Attributes = append(decl.Attributes, d)
	}
	if len(decl.Attributes) == 0 {
		return TypeDecl{}, &CompileError{
			Field:   tag,
			Message: "at least one attribute is required",
			Pos:     attrsVal.Pos(),
		}
	}
	return decl, nil
}

func compileAttribute(tag string, v cue.Value) (attr.Descriptor, error) {
	name, err := requiredString(v, "name")
	if err != nil {
		return attr.Descriptor{}, err
	}

	kindName, err := requiredString(v, "kind")
	if err != nil {
		return attr.Descriptor{}, err
	}
	kind, ok := attr.KindFromString(kindName)
	if !ok {
		return attr.Descriptor{}, &CompileError{
			Field:   fmt.Sprintf("%s.%s.kind", tag, name),
			Message: fmt.Sprintf("unknown kind %q", kindName),
			Pos:     v.Pos(),
		}
	}

	d := attr.Descriptor{Name: name, Kind: kind}
	d.Group, _ = optionalString(v, "group")
	d.Doc, _ = optionalString(v, "doc")

	if roVal := v.LookupPath(cue.ParsePath("readOnly")); roVal.Exists() {
		if d.ReadOnly, err = roVal.Bool(); err != nil {
			return attr.Descriptor{}, formatCUEError(err)
		}
	}
	if hVal := v.LookupPath(cue.ParsePath("hidden")); hVal.Exists() {
		if d.Hidden, err = hVal.Bool(); err != nil {
			return attr.Descriptor{}, formatCUEError(err)
		}
	}

	if defVal := v.LookupPath(cue.ParsePath("default")); defVal.Exists() {
		d.Default, err = compileDefault(kind, defVal)
		if err != nil {
			return attr.Descriptor{}, &CompileError{
				Field:   fmt.Sprintf("%s.%s.default", tag, name),
				Message: err.Error(),
				Pos:     defVal.Pos(),
			}
		}
	}

	if err := d.Validate(); err != nil {
		return attr.Descriptor{}, &CompileError{
			Field:   fmt.Sprintf("%s.%s", tag, name),
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return d, nil
}

// compileDefault decodes a CUE default into the declared kind. The kind
// drives decoding, so an int literal fills a float attribute but a string
// never does.
func compileDefault(kind attr.Kind, v cue.Value) (attr.Value, error) {
	switch kind {
	case attr.KindFloat:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return attr.Float(f), nil
	case attr.KindInt:
		n, err := v.Int64()
		if err != nil {
			return nil, err
		}
		return attr.Int(n), nil
	case attr.KindBool:
		b, err := v.Bool()
		if err != nil {
			return nil, err
		}
		return attr.Bool(b), nil
	case attr.KindString:
		s, err := v.String()
		if err != nil {
			return nil, err
		}
		return attr.String(s), nil
	case attr.KindVector:
		return compileVector(v)
	case attr.KindVectorList:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		var out attr.VectorList
		for iter.Next() {
			vec, err := compileVector(iter.Value())
			if err != nil {
				return nil, err
			}
			out = append(out, vec)
		}
		return out, nil
	case attr.KindScalarList:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		out := attr.ScalarList{}
		for iter.Next() {
			f, err := iter.Value().Float64()
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, nil
	case attr.KindFrequency:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return attr.Frequency(f), nil
	default:
		return nil, fmt.Errorf("unsupported kind")
	}
}

func compileVector(v cue.Value) (attr.Vector, error) {
	iter, err := v.List()
	if err != nil {
		return attr.Vector{}, err
	}
	var comps []float64
	for iter.Next() {
		f, err := iter.Value().Float64()
		if err != nil {
			return attr.Vector{}, err
		}
		comps = append(comps, f)
	}
	if len(comps) != 3 {
		return attr.Vector{}, fmt.Errorf("vector needs 3 components, got %d", len(comps))
	}
	return attr.Vector{X: comps[0], Y: comps[1], Z: comps[2]}, nil
}

func requiredString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalString(v cue.Value, field string) (string, bool) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", false
	}
	s, err := fv.String()
	if err != nil {
		return "", false
	}
	return s, true
}

// CompileError is a declaration-file error with CUE position info.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
