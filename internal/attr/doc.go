// Package attr provides the foundational value and descriptor types for
// simattr.
//
// This package contains type definitions and canonical serialization only.
// All other internal packages import attr; attr imports nothing internal.
// This ensures attr remains the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Value is a sealed interface: exactly the eight kinds in Kind exist
//   - A value's Kind is fixed for the lifetime of its descriptor; retyping
//     an attribute requires removal plus re-declaration
//   - Frequency values are never negative
//   - Canonical JSON (sorted keys, NFC strings, no HTML escaping) is the
//     only serialization used for persisted state and snapshots
package attr
