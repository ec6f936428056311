package attr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Canonical JSON for persisted attribute state and snapshots.
//
// Rules:
//  1. Object keys sorted by UTF-16 code units (RFC 8785 ordering, not UTF-8)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Floats use the shortest round-trip decimal form
//
// Every value is encoded kind-tagged as {"k":"<kind>","v":<payload>} so a
// ScalarList cannot be mistaken for a VectorList row and a Frequency cannot
// silently decay to a plain Float on reload.

// MarshalValue encodes one value in canonical kind-tagged form.
func MarshalValue(v Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("marshal nil value")
	}
	payload, err := marshalPayload(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"k":`)
	key, err := canonicalString(v.Kind().String())
	if err != nil {
		return nil, err
	}
	buf.Write(key)
	buf.WriteString(`,"v":`)
	buf.Write(payload)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalPayload(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Float:
		return canonicalFloat(float64(val)), nil
	case Int:
		return []byte(strconv.FormatInt(int64(val), 10)), nil
	case Bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case String:
		return canonicalString(string(val))
	case Vector:
		return canonicalVector(val), nil
	case VectorList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, vec := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(canonicalVector(vec))
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case ScalarList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, f := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(canonicalFloat(f))
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case Frequency:
		return canonicalFloat(float64(val)), nil
	default:
		return nil, fmt.Errorf("unknown value type: %T", v)
	}
}

func canonicalVector(v Vector) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.Write(canonicalFloat(v.X))
	buf.WriteByte(',')
	buf.Write(canonicalFloat(v.Y))
	buf.WriteByte(',')
	buf.Write(canonicalFloat(v.Z))
	buf.WriteByte(']')
	return buf.Bytes()
}

// canonicalFloat renders the shortest decimal form that round-trips the
// float64 exactly.
func canonicalFloat(f float64) []byte {
	return []byte(strconv.FormatFloat(f, 'g', -1, 64))
}

// canonicalString marshals an NFC-normalized string without HTML escaping.
func canonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, fmt.Errorf("marshal string: %w", err)
	}
	// Encoder adds a trailing newline, remove it.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalState encodes a full attribute state map in canonical form with
// RFC 8785 key ordering. This is the only serialization used for persisted
// instance state and golden snapshots.
func MarshalState(state map[string]Value) ([]byte, error) {
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := canonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := MarshalValue(state[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering as
// required by RFC 8785. Go's default string comparison uses UTF-8 which
// produces a DIFFERENT order for strings outside the BMP.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}

// UnmarshalValue decodes one kind-tagged value. Unknown kind names and
// payloads of the wrong shape are rejected; a frequency payload below zero
// is rejected at this boundary rather than surfacing later as corrupt
// state.
func UnmarshalValue(data []byte) (Value, error) {
	var raw struct {
		K string          `json:"k"`
		V json.RawMessage `json:"v"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal value: %w", err)
	}
	kind, ok := KindFromString(raw.K)
	if !ok {
		return nil, fmt.Errorf("unknown value kind %q", raw.K)
	}
	v, err := unmarshalPayload(kind, raw.V)
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", kind, err)
	}
	if err := Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

func unmarshalPayload(kind Kind, data json.RawMessage) (Value, error) {
	switch kind {
	case KindFloat:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return Float(f), nil
	case KindInt:
		var n int64
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return Int(n), nil
	case KindBool:
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case KindString:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return String(s), nil
	case KindVector:
		return unmarshalVector(data)
	case KindVectorList:
		var rows []json.RawMessage
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
		out := make(VectorList, len(rows))
		for i, row := range rows {
			vec, err := unmarshalVector(row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			out[i] = vec
		}
		return out, nil
	case KindScalarList:
		var fs []float64
		if err := json.Unmarshal(data, &fs); err != nil {
			return nil, err
		}
		if fs == nil {
			fs = []float64{}
		}
		return ScalarList(fs), nil
	case KindFrequency:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return Frequency(f), nil
	default:
		return nil, fmt.Errorf("unsupported kind")
	}
}

func unmarshalVector(data []byte) (Vector, error) {
	var comps []float64
	if err := json.Unmarshal(data, &comps); err != nil {
		return Vector{}, err
	}
	if len(comps) != 3 {
		return Vector{}, fmt.Errorf("vector needs 3 components, got %d", len(comps))
	}
	return Vector{X: comps[0], Y: comps[1], Z: comps[2]}, nil
}

// UnmarshalState decodes a full attribute state map produced by
// MarshalState.
func UnmarshalState(data []byte) (map[string]Value, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	state := make(map[string]Value, len(raw))
	for k, rawVal := range raw {
		v, err := UnmarshalValue(rawVal)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		state[k] = v
	}
	return state, nil
}
