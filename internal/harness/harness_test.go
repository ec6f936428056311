package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/simattr/internal/attr"
	"github.com/roach88/simattr/internal/migrate"
	"github.com/roach88/simattr/internal/object"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		s, err := LoadScenario(path)
		require.NoError(t, err, path)
		t.Run(s.Name, func(t *testing.T) {
			RunWithGolden(t, s)
		})
	}
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "type: result.mechanical\npersisted: {}\n")
	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestRun_CorruptScenarioCarriesError(t *testing.T) {
	s := &Scenario{
		Name: "corrupt",
		Type: "result.mechanical",
		Persisted: map[string]ValueSpec{
			"StressValues": {Kind: "bool", Value: true},
		},
		Corrupt: true,
	}

	res, err := Run(s)
	require.NoError(t, err)
	assert.Nil(t, res.Instance)
	assert.True(t, migrate.IsCorruptState(res.Err))
	require.NoError(t, Check(s, res))
}

func TestRun_CorruptDeclaredKindFailsAtRestore(t *testing.T) {
	s := &Scenario{
		Name: "declared-kind",
		Type: "result.mechanical",
		Persisted: map[string]ValueSpec{
			"Eigenmode": {Kind: "string", Value: "oops"},
		},
		Corrupt: true,
	}

	res, err := Run(s)
	require.NoError(t, err)
	assert.Nil(t, res.Instance)
	assert.True(t, object.IsTypeMismatch(res.Err))
	require.NoError(t, Check(s, res))
}

func TestRun_CorruptFlagOnHealthyStateFails(t *testing.T) {
	s := &Scenario{
		Name:      "not-actually-corrupt",
		Type:      "result.mechanical",
		Persisted: map[string]ValueSpec{},
		Corrupt:   true,
	}
	_, err := Run(s)
	require.Error(t, err)
}

func TestCheck_ValueMismatch(t *testing.T) {
	s := &Scenario{
		Name: "mismatch",
		Type: "result.mechanical",
		Persisted: map[string]ValueSpec{
			"vonMises": {Kind: "scalarList", Value: []any{1.0}},
		},
		Expect: map[string]ValueSpec{
			"vonMises": {Kind: "scalarList", Value: []any{2.0}},
		},
	}

	res, err := Run(s)
	require.NoError(t, err)
	err = Check(s, res)
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "vonMises", ae.Attribute)
}

func TestCheck_AppliedRuleMismatch(t *testing.T) {
	s := &Scenario{
		Name:         "wrong-rules",
		Type:         "result.mechanical",
		Persisted:    map[string]ValueSpec{},
		AppliedRules: []string{"rename(StressValues->vonMises)"},
	}

	res, err := Run(s)
	require.NoError(t, err)
	require.Error(t, Check(s, res))
}

func TestValueSpec_AttrValue(t *testing.T) {
	cases := []struct {
		spec ValueSpec
		want attr.Value
	}{
		{ValueSpec{Kind: "float", Value: 2.5}, attr.Float(2.5)},
		{ValueSpec{Kind: "float", Value: 3}, attr.Float(3)},
		{ValueSpec{Kind: "int", Value: 7}, attr.Int(7)},
		{ValueSpec{Kind: "bool", Value: true}, attr.Bool(true)},
		{ValueSpec{Kind: "string", Value: "x"}, attr.String("x")},
		{ValueSpec{Kind: "frequency", Value: 50}, attr.Frequency(50)},
		{ValueSpec{Kind: "vector", Value: []any{1, 2, 3.5}},
			attr.Vector{X: 1, Y: 2, Z: 3.5}},
		{ValueSpec{Kind: "scalarList", Value: []any{1, 2.5}},
			attr.ScalarList{1, 2.5}},
		{ValueSpec{Kind: "vectorList", Value: []any{[]any{1, 2, 3}}},
			attr.VectorList{{X: 1, Y: 2, Z: 3}}},
	}
	for _, tc := range cases {
		got, err := tc.spec.attrValue()
		require.NoError(t, err, tc.spec.Kind)
		assert.True(t, attr.Equal(tc.want, got), tc.spec.Kind)
	}
}

func TestValueSpec_AttrValueErrors(t *testing.T) {
	bad := []ValueSpec{
		{Kind: "tensor", Value: 1},
		{Kind: "bool", Value: "yes"},
		{Kind: "vector", Value: []any{1, 2}},
		{Kind: "scalarList", Value: "not a list"},
	}
	for _, vs := range bad {
		_, err := vs.attrValue()
		assert.Error(t, err, vs.Kind)
	}
}
