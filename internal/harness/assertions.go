package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/simattr/internal/attr"
)

// AssertionError is returned when a scenario expectation fails. It includes
// the migrated store so the failure can be debugged from the error alone.
type AssertionError struct {
	Scenario  string
	Attribute string
	Expected  string
	Actual    string
	Store     map[string]attr.Value
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s.%s\n", e.Scenario, e.Attribute)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if snapshot, err := attr.MarshalState(e.Store); err == nil {
		fmt.Fprintf(&buf, "\nMigrated store:\n  %s\n", snapshot)
	}
	return buf.String()
}

// Check validates a result against the scenario's expectations: expected
// attribute values, the applied-rule list, and that no legacy keys remain.
func Check(s *Scenario, res *Result) error {
	if err := checkApplied(s, res); err != nil {
		return err
	}
	if s.Corrupt {
		return nil
	}

	state := res.Instance.State()
	for name, vs := range s.Expect {
		want, err := vs.attrValue()
		if err != nil {
			return fmt.Errorf("scenario %s: expect %q: %w", s.Name, name, err)
		}
		got, ok := state[name]
		if !ok {
			return &AssertionError{
				Scenario:  s.Name,
				Attribute: name,
				Expected:  fmt.Sprintf("%v", want),
				Actual:    "absent",
				Store:     state,
			}
		}
		if !attr.Equal(want, got) {
			return &AssertionError{
				Scenario:  s.Name,
				Attribute: name,
				Expected:  fmt.Sprintf("%v", want),
				Actual:    fmt.Sprintf("%v", got),
				Store:     state,
			}
		}
	}

	if legacy := res.Instance.LegacyNames(); len(legacy) > 0 {
		return &AssertionError{
			Scenario:  s.Name,
			Attribute: legacy[0],
			Expected:  "no legacy keys after migration",
			Actual:    fmt.Sprintf("legacy keys remain: %v", legacy),
			Store:     state,
		}
	}
	return nil
}

func checkApplied(s *Scenario, res *Result) error {
	want := s.AppliedRules
	got := res.Applied
	if len(want) != len(got) {
		return fmt.Errorf("scenario %s: applied rules %v, want %v", s.Name, got, want)
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("scenario %s: applied rules %v, want %v", s.Name, got, want)
		}
	}
	return nil
}
