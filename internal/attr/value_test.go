package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromString(t *testing.T) {
	for k, name := range kindNames {
		got, ok := KindFromString(name)
		require.True(t, ok, name)
		assert.Equal(t, k, got)
	}

	_, ok := KindFromString("quaternion")
	assert.False(t, ok)
}

func TestValidate_FrequencyDomain(t *testing.T) {
	assert.NoError(t, Validate(Frequency(0)))
	assert.NoError(t, Validate(Frequency(50)))
	assert.Error(t, Validate(Frequency(-1)))
}

func TestZeroValue(t *testing.T) {
	for k := range kindNames {
		v, err := ZeroValue(k)
		require.NoError(t, err)
		assert.Equal(t, k, v.Kind())
	}

	_, err := ZeroValue(KindInvalid)
	assert.Error(t, err)
}

func TestClone_ListsDoNotAlias(t *testing.T) {
	orig := ScalarList{1, 2, 3}
	cloned := Clone(orig).(ScalarList)
	cloned[0] = 99
	assert.Equal(t, float64(1), orig[0])

	vecs := VectorList{{X: 1}, {X: 2}}
	clonedVecs := Clone(vecs).(VectorList)
	clonedVecs[0].X = 99
	assert.Equal(t, float64(1), vecs[0].X)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same float", Float(1.5), Float(1.5), true},
		{"different float", Float(1.5), Float(2.5), false},
		{"kind mismatch", Float(0), Frequency(0), false},
		{"int vs float", Int(1), Float(1), false},
		{"same vector", Vector{X: 1, Y: 2, Z: 3}, Vector{X: 1, Y: 2, Z: 3}, true},
		{"same scalar list", ScalarList{1, 2}, ScalarList{1, 2}, true},
		{"scalar list length", ScalarList{1, 2}, ScalarList{1}, false},
		{"scalar list content", ScalarList{1, 2}, ScalarList{1, 3}, false},
		{"vector list", VectorList{{X: 1}}, VectorList{{X: 1}}, true},
		{"vector list differs", VectorList{{X: 1}}, VectorList{{X: 2}}, false},
		{"empty lists", ScalarList{}, ScalarList{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestDescriptor_Validate(t *testing.T) {
	valid := Descriptor{Name: "Priority", Kind: KindInt, Group: "Base"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		d    Descriptor
	}{
		{"empty name", Descriptor{Kind: KindInt}},
		{"whitespace name", Descriptor{Name: "  ", Kind: KindInt}},
		{"unknown kind", Descriptor{Name: "X", Kind: KindInvalid}},
		{"default kind mismatch", Descriptor{Name: "X", Kind: KindInt, Default: Float(1)}},
		{"negative frequency default", Descriptor{Name: "X", Kind: KindFrequency, Default: Frequency(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.d.Validate())
		})
	}
}

func TestDescriptor_DefaultValue(t *testing.T) {
	d := Descriptor{Name: "Stats", Kind: KindScalarList, Default: ScalarList{1, 2}}
	v := d.DefaultValue().(ScalarList)
	v[0] = 99
	// The declared default must not observe mutation of the instance copy.
	assert.Equal(t, float64(1), d.Default.(ScalarList)[0])

	zero := Descriptor{Name: "Eigenmode", Kind: KindInt}
	assert.Equal(t, Int(0), zero.DefaultValue())
}
