// Package equation implements polymorphic attribute composition for solver
// equation objects.
//
// Every equation instance is the union of one fixed base attribute set
// (solve priority, shared result-output toggles) and exactly one
// physics-specific attribute set selected by an immutable variant tag.
// Variants are data, not code: each one is a table of descriptors, default
// overrides and advisory constraints, and adding a variant never touches
// the composition algorithm.
package equation
