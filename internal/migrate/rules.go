package migrate

import "github.com/roach88/simattr/internal/schema"

// Builtin returns an engine loaded with the legacy shapes known for the
// built-in object types.
//
// Current rules for result.mechanical:
//   - StressValues was renamed to vonMises
//   - Stats was reduced from 13 {min, avg, max} triples to {min, max}
//     pairs; the exact 39-entry length is the legacy predicate, since
//     every declared attribute is populated on restore and no declared
//     name can serve as a legacy-only marker
func Builtin() *Engine {
	e := NewEngine()
	e.Register(schema.TypeResultMechanical, RenameRule{
		Old: "StressValues",
		New: "vonMises",
	})
	e.Register(schema.TypeResultMechanical, ListReductionRule{
		Attribute:  "Stats",
		LegacyLen:  39,
		GroupSize:  3,
		DropOffset: 1,
	})
	return e
}
