package attr

import "fmt"

// Kind identifies the semantic type of an attribute value.
// A descriptor's Kind is fixed at declaration time and never changes.
type Kind uint8

// The full set of semantic types. There is no "any" kind: unknown kinds are
// rejected at the declaration boundary, never silently accepted.
const (
	KindInvalid Kind = iota
	KindFloat
	KindInt
	KindBool
	KindString
	KindVector
	KindVectorList
	KindScalarList
	KindFrequency
)

var kindNames = map[Kind]string{
	KindFloat:      "float",
	KindInt:        "int",
	KindBool:       "bool",
	KindString:     "string",
	KindVector:     "vector",
	KindVectorList: "vectorList",
	KindScalarList: "scalarList",
	KindFrequency:  "frequency",
}

// String returns the wire name of the kind, as used in declaration files
// and persisted state.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("invalid(%d)", uint8(k))
}

// KindFromString parses a wire kind name. Returns false for unknown names.
func KindFromString(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindInvalid, false
}

// Value is a sealed interface representing a typed attribute value.
// Only Float, Int, Bool, String, Vector, VectorList, ScalarList and
// Frequency implement it.
type Value interface {
	Kind() Kind
	attrValue() // sealed
}

// Float is a scalar floating-point value.
type Float float64

func (Float) Kind() Kind { return KindFloat }
func (Float) attrValue() {}

// Int is a scalar integer value. Always int64.
type Int int64

func (Int) Kind() Kind { return KindInt }
func (Int) attrValue() {}

// Bool is a scalar boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) attrValue() {}

// String is a scalar string value.
type String string

func (String) Kind() Kind { return KindString }
func (String) attrValue() {}

// Vector is a 3-component spatial vector.
type Vector struct {
	X, Y, Z float64
}

func (Vector) Kind() Kind { return KindVector }
func (Vector) attrValue() {}

// VectorList is an ordered list of vectors, one entry per node or element.
type VectorList []Vector

func (VectorList) Kind() Kind { return KindVectorList }
func (VectorList) attrValue() {}

// ScalarList is an ordered list of floating-point scalars.
type ScalarList []float64

func (ScalarList) Kind() Kind { return KindScalarList }
func (ScalarList) attrValue() {}

// Frequency is a frequency in hertz. Never negative.
type Frequency float64

func (Frequency) Kind() Kind { return KindFrequency }
func (Frequency) attrValue() {}

// ZeroValue returns the zero value for a kind. Used when a descriptor
// declares no explicit default.
func ZeroValue(k Kind) (Value, error) {
	switch k {
	case KindFloat:
		return Float(0), nil
	case KindInt:
		return Int(0), nil
	case KindBool:
		return Bool(false), nil
	case KindString:
		return String(""), nil
	case KindVector:
		return Vector{}, nil
	case KindVectorList:
		return VectorList{}, nil
	case KindScalarList:
		return ScalarList{}, nil
	case KindFrequency:
		return Frequency(0), nil
	default:
		return nil, fmt.Errorf("no zero value for %s", k)
	}
}

// Validate checks that a value satisfies its kind's domain constraints.
// Today the only constrained kind is Frequency, which must be >= 0.
func Validate(v Value) error {
	if v == nil {
		return fmt.Errorf("nil value")
	}
	if f, ok := v.(Frequency); ok && f < 0 {
		return fmt.Errorf("frequency must not be negative: %v", float64(f))
	}
	return nil
}

// Clone returns a deep copy of v. Scalar kinds are returned as-is; list
// kinds are copied so the caller cannot alias stored state.
func Clone(v Value) Value {
	switch val := v.(type) {
	case VectorList:
		out := make(VectorList, len(val))
		copy(out, val)
		return out
	case ScalarList:
		out := make(ScalarList, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}

// Equal reports attribute-value equality. Two values are equal only when
// both kind and content match exactly.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case VectorList:
		bv := b.(VectorList)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case ScalarList:
		bv := b.(ScalarList)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
