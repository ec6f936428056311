package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/simattr/internal/schema"
)

// Validation error codes (E200-E299)
const (
	ErrTagEmpty       = "E201" // type tag must be non-empty
	ErrDuplicateName  = "E202" // duplicate attribute name within a type
	ErrReservedPrefix = "E203" // equation.* tags are composed in code, not declared in files
)

// ValidationError represents a declaration validation error.
type ValidationError struct {
	Type      string `json:"type"`
	Attribute string `json:"attribute,omitempty"`
	Message   string `json:"message"`
	Code      string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("[%s] %s.%s: %s", e.Code, e.Type, e.Attribute, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Type, e.Message)
}

// Validate checks compiled declarations for rules the per-attribute
// compile step cannot see. Returns all errors found (does not fail-fast).
func Validate(decls []TypeDecl) []ValidationError {
	var errs []ValidationError
	for _, decl := range decls {
		if strings.TrimSpace(decl.Tag) == "" {
			errs = append(errs, ValidationError{
				Type:    decl.Tag,
				Message: "type tag must be non-empty",
				Code:    ErrTagEmpty,
			})
			continue
		}
		// E203: equation schemas are composed from the base set plus a
		// variant table; declaring them flat in a file would bypass
		// composition entirely.
		if strings.HasPrefix(decl.Tag, "equation.") {
			errs = append(errs, ValidationError{
				Type:    decl.Tag,
				Message: "equation types are composed by variant, not declared in files",
				Code:    ErrReservedPrefix,
			})
		}
		seen := make(map[string]bool)
		for _, d := range decl.Attributes {
			if seen[d.Name] {
				errs = append(errs, ValidationError{
					Type:      decl.Tag,
					Attribute: d.Name,
					Message:   "duplicate attribute name",
					Code:      ErrDuplicateName,
				})
			}
			seen[d.Name] = true
		}
	}
	return errs
}

// Register declares compiled types into a registry, stopping at the first
// error. Callers should Validate first for full error reporting.
func Register(reg *schema.Registry, decls []TypeDecl) error {
	for _, decl := range decls {
		if err := reg.DeclareAll(decl.Tag, decl.Attributes); err != nil {
			return err
		}
	}
	return nil
}
