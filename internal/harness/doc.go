// Package harness provides the YAML migration-scenario runner used by
// conformance tests.
//
// A scenario declares the persisted state of a legacy instance, runs it
// through restore plus the migration engine, and checks the result against
// expected attribute values and applied rules. Golden snapshots of the
// migrated store catch any drift the per-attribute expectations miss.
package harness
