package harness

import (
	"fmt"

	"github.com/roach88/simattr/internal/equation"
	"github.com/roach88/simattr/internal/migrate"
	"github.com/roach88/simattr/internal/object"
	"github.com/roach88/simattr/internal/schema"
)

// Result captures one scenario execution.
type Result struct {
	// Instance is the migrated instance, nil when restore or migration
	// failed.
	Instance *object.Instance

	// Applied lists the migration rules applied, in order.
	Applied []string

	// Err is the migration error, set only for corrupt scenarios.
	Err error
}

// Run restores the scenario's persisted state against the built-in schemas
// and passes it once through the built-in migration engine.
//
// For ordinary scenarios a migration error fails the run. A scenario
// marked corrupt succeeds only if migration reports corrupt state.
func Run(s *Scenario) (*Result, error) {
	reg := schema.NewRegistry()
	if err := schema.RegisterBuiltins(reg); err != nil {
		return nil, err
	}
	if err := equation.Register(reg); err != nil {
		return nil, err
	}

	state, err := s.state()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	inst, err := reg.Restore(s.Type, state)
	if err != nil {
		// A declared attribute persisted with the wrong kind fails
		// restore before migration ever runs.
		if s.Corrupt && object.IsTypeMismatch(err) {
			return &Result{Err: err}, nil
		}
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	applied, err := migrate.Builtin().Run(inst)
	if err != nil {
		if s.Corrupt && migrate.IsCorruptState(err) {
			return &Result{Applied: applied, Err: err}, nil
		}
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	if s.Corrupt {
		return nil, fmt.Errorf("scenario %s: expected corrupt state, migration succeeded", s.Name)
	}
	return &Result{Instance: inst, Applied: applied}, nil
}
