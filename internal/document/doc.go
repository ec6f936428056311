// Package document implements the host document model: one SQLite-backed
// session owning a schema registry, a migration engine and the live object
// instances.
//
// The registry and engine are created at document open and discarded at
// close; nothing is process-global. On load, every persisted instance
// passes exactly once through the migration engine before the document
// exposes it - a corrupt legacy shape fails the open, so consumers never
// observe a half-migrated store.
package document
