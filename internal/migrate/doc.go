// Package migrate implements the one-shot schema migration engine.
//
// When an instance persisted by an older program version is restored, its
// attribute store may hold legacy shapes: renamed attributes, lists of a
// superseded length. The engine runs an ordered, table-driven set of rules
// against the store and rewrites any recognized legacy shape into the
// current schema, loss-free.
//
// Every rule self-guards on its own legacy-shape predicate, so rule order
// never affects correctness and running the engine twice is a no-op.
// Unrecognized shapes are left untouched: a newer file reopened by this
// version must never be mistaken for a legacy one and corrupted. New legacy
// shapes discovered in the field are added as new independent rules, never
// by mutating existing rules.
package migrate
