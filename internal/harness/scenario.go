package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/simattr/internal/attr"
)

// Scenario defines one migration conformance case: the persisted state of
// an instance as an older program version wrote it, and what the current
// version must turn it into.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Type is the object type tag of the persisted instance.
	Type string `yaml:"type"`

	// Persisted holds the stored attribute values, including any legacy
	// keys. Declared attributes absent here keep their defaults.
	Persisted map[string]ValueSpec `yaml:"persisted"`

	// Expect lists attribute values that must hold after migration.
	Expect map[string]ValueSpec `yaml:"expect,omitempty"`

	// AppliedRules lists the rule names the engine must report, in order.
	// Empty means the store must come through untouched.
	AppliedRules []string `yaml:"applied_rules,omitempty"`

	// Corrupt marks scenarios whose persisted state must be rejected as
	// corrupt rather than migrated.
	Corrupt bool `yaml:"corrupt,omitempty"`
}

// ValueSpec is a kind-tagged attribute value in YAML form.
type ValueSpec struct {
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`
}

// LoadScenario reads one scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if s.Name == "" || s.Type == "" {
		return nil, fmt.Errorf("load scenario %s: name and type are required", path)
	}
	return &s, nil
}

// attrValue converts a YAML value spec into a typed attribute value.
func (vs ValueSpec) attrValue() (attr.Value, error) {
	kind, ok := attr.KindFromString(vs.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", vs.Kind)
	}
	switch kind {
	case attr.KindFloat:
		f, err := toFloat(vs.Value)
		if err != nil {
			return nil, err
		}
		return attr.Float(f), nil
	case attr.KindInt:
		n, err := toInt(vs.Value)
		if err != nil {
			return nil, err
		}
		return attr.Int(n), nil
	case attr.KindBool:
		b, ok := vs.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("want bool, got %T", vs.Value)
		}
		return attr.Bool(b), nil
	case attr.KindString:
		s, ok := vs.Value.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", vs.Value)
		}
		return attr.String(s), nil
	case attr.KindVector:
		return toVector(vs.Value)
	case attr.KindVectorList:
		rows, ok := vs.Value.([]any)
		if !ok {
			return nil, fmt.Errorf("want list of vectors, got %T", vs.Value)
		}
		out := make(attr.VectorList, len(rows))
		for i, row := range rows {
			vec, err := toVector(row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			out[i] = vec
		}
		return out, nil
	case attr.KindScalarList:
		items, ok := vs.Value.([]any)
		if !ok {
			return nil, fmt.Errorf("want list of scalars, got %T", vs.Value)
		}
		out := make(attr.ScalarList, len(items))
		for i, item := range items {
			f, err := toFloat(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	case attr.KindFrequency:
		f, err := toFloat(vs.Value)
		if err != nil {
			return nil, err
		}
		return attr.Frequency(f), nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("want number, got %T", v)
	}
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("want integer, got %T", v)
	}
}

func toVector(v any) (attr.Vector, error) {
	comps, ok := v.([]any)
	if !ok || len(comps) != 3 {
		return attr.Vector{}, fmt.Errorf("want [x, y, z], got %v", v)
	}
	var out [3]float64
	for i, c := range comps {
		f, err := toFloat(c)
		if err != nil {
			return attr.Vector{}, err
		}
		out[i] = f
	}
	return attr.Vector{X: out[0], Y: out[1], Z: out[2]}, nil
}

// state converts the scenario's persisted section into an attribute map.
func (s *Scenario) state() (map[string]attr.Value, error) {
	state := make(map[string]attr.Value, len(s.Persisted))
	for name, vs := range s.Persisted {
		v, err := vs.attrValue()
		if err != nil {
			return nil, fmt.Errorf("persisted %q: %w", name, err)
		}
		state[name] = v
	}
	return state, nil
}
