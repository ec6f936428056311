package migrate

import (
	"fmt"

	"github.com/roach88/simattr/internal/object"
)

// Engine holds the per-object-type migration rule tables and runs them
// against restored instances.
//
// The engine runs on the host's single mutation thread with no suspension
// points; a restored instance is never exposed to consumers until its run
// completes.
type Engine struct {
	rules map[string][]Rule
}

// NewEngine creates an engine with no rules registered.
func NewEngine() *Engine {
	return &Engine{rules: make(map[string][]Rule)}
}

// Register appends a rule to an object type's table. Rules are additive:
// a new legacy shape discovered in the field gets a new rule, existing
// rules are never mutated.
func (e *Engine) Register(typeTag string, r Rule) {
	e.rules[typeTag] = append(e.rules[typeTag], r)
}

// Rules returns the names of the rules registered for a type, in
// registration order.
func (e *Engine) Rules(typeTag string) []string {
	names := make([]string, 0, len(e.rules[typeTag]))
	for _, r := range e.rules[typeTag] {
		names = append(names, r.Name())
	}
	return names
}

// Run executes every registered rule whose predicate matches, in
// registration order, and returns the names of the rules applied.
//
// Run is idempotent: on an already-migrated or current-schema instance no
// predicate matches and the store is untouched. A matching rule that finds
// its expected sub-structure absent fails with CorruptStateError; the
// partial rewrite of that rule is surfaced to the caller, which must
// discard the instance rather than expose it.
func (e *Engine) Run(inst *object.Instance) ([]string, error) {
	var applied []string
	for _, r := range e.rules[inst.Type()] {
		if !r.Matches(inst) {
			continue
		}
		if err := r.Apply(inst); err != nil {
			return applied, fmt.Errorf("migrate %s: %w", inst.Type(), err)
		}
		applied = append(applied, r.Name())
	}
	return applied, nil
}
