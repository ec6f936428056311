package equation

// Violation reports one advisory constraint whose attributes are set in a
// combination the solver will not honor. Violations are warnings: both
// attributes coexist structurally and the store stays valid.
type Violation struct {
	Constraint Constraint
}

// Constraints returns the variant's advisory constraint table.
func (in *Instance) Constraints() []Constraint {
	return variants[in.variant].constraints
}

// CheckConstraints evaluates the variant's constraint table against the
// instance's current values.
func (in *Instance) CheckConstraints() []Violation {
	var out []Violation
	for _, c := range variants[in.variant].constraints {
		when, err := in.Bool(c.When)
		if err != nil || !when {
			continue
		}
		excluded, err := in.Bool(c.Excludes)
		if err == nil && excluded {
			out = append(out, Violation{Constraint: c})
		}
	}
	return out
}
