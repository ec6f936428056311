// Package schema implements the per-object-type attribute registry.
//
// A Registry is an explicit value owned by the enclosing document, created
// at document open and discarded at document close. There is no ambient
// process-wide registry: two open documents never share declarations.
//
// Declaration order is preserved and significant only for display and
// grouping, never for semantics.
package schema
