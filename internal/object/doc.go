// Package object implements the live attribute store for one simulation
// object instance.
//
// An Instance owns a mapping from attribute name to typed value, backed by
// the descriptors of its object type. Ordinary consumers use Get/Set with
// full type and read-only checking; construction and migration use the
// privileged SetLocked/Remove path.
//
// Between restore-from-storage and the one-shot migration pass an instance
// may hold legacy keys that no current descriptor covers. Get and Has see
// those keys so migration rules can inspect them; Set does not, so ordinary
// consumers can never write through a legacy name.
package object
