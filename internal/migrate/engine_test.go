package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/simattr/internal/attr"
	"github.com/roach88/simattr/internal/object"
	"github.com/roach88/simattr/internal/schema"
)

func restoreResult(t *testing.T, persisted map[string]attr.Value) *object.Instance {
	t.Helper()
	r := schema.NewRegistry()
	require.NoError(t, schema.RegisterBuiltins(r))
	inst, err := r.Restore(schema.TypeResultMechanical, persisted)
	require.NoError(t, err)
	return inst
}

// legacyStats builds a 39-entry {min, avg, max} stats list whose values
// encode their triple index and slot, so reduction mistakes show up as
// concrete wrong numbers.
func legacyStats() attr.ScalarList {
	stats := make(attr.ScalarList, 0, 39)
	for i := 0; i < 13; i++ {
		base := float64(i * 10)
		stats = append(stats, base, base+1, base+2) // min, avg, max
	}
	return stats
}

func reducedStats() attr.ScalarList {
	stats := make(attr.ScalarList, 0, 26)
	for i := 0; i < 13; i++ {
		base := float64(i * 10)
		stats = append(stats, base, base+2) // min, max
	}
	return stats
}

func TestRenameRule_LossFree(t *testing.T) {
	legacy := attr.ScalarList{1, 2.5, 3}
	inst := restoreResult(t, map[string]attr.Value{
		"StressValues": legacy,
	})

	applied, err := Builtin().Run(inst)
	require.NoError(t, err)
	assert.Equal(t, []string{"rename(StressValues->vonMises)"}, applied)

	got, err := inst.ScalarList("vonMises")
	require.NoError(t, err)
	assert.Equal(t, legacy, got)
	assert.False(t, inst.Has("StressValues"))
	assert.Empty(t, inst.LegacyNames())
}

func TestListReductionRule_TriplesToPairs(t *testing.T) {
	inst := restoreResult(t, map[string]attr.Value{
		"Stats": legacyStats(),
	})

	applied, err := Builtin().Run(inst)
	require.NoError(t, err)
	assert.Equal(t, []string{"reduce(Stats 39->26)"}, applied)

	got, err := inst.ScalarList("Stats")
	require.NoError(t, err)
	assert.Equal(t, reducedStats(), got)
}

func TestRun_Idempotent(t *testing.T) {
	inst := restoreResult(t, map[string]attr.Value{
		"StressValues": attr.ScalarList{1, 2},
		"Stats":        legacyStats(),
	})

	eng := Builtin()
	applied, err := eng.Run(inst)
	require.NoError(t, err)
	assert.Len(t, applied, 2)

	snapshot := inst.State()

	// A second run must be a no-op, attribute by attribute.
	applied, err = eng.Run(inst)
	require.NoError(t, err)
	assert.Empty(t, applied)
	for name, v := range inst.State() {
		assert.True(t, attr.Equal(snapshot[name], v), name)
	}
	assert.Len(t, inst.State(), len(snapshot))
}

func TestRun_ForwardSafe(t *testing.T) {
	// A current-schema instance: 26-entry stats, no legacy names.
	inst := restoreResult(t, map[string]attr.Value{
		"Stats":    reducedStats(),
		"vonMises": attr.ScalarList{4, 5},
	})
	before := inst.State()

	applied, err := Builtin().Run(inst)
	require.NoError(t, err)
	assert.Empty(t, applied)
	after := inst.State()
	require.Len(t, after, len(before))
	for name, v := range after {
		assert.True(t, attr.Equal(before[name], v), name)
	}
}

func TestRenameRule_WrongKindIsCorrupt(t *testing.T) {
	// The legacy key exists but carries a kind vonMises cannot hold.
	inst := restoreResult(t, map[string]attr.Value{
		"StressValues": attr.Bool(true),
	})

	_, err := Builtin().Run(inst)
	require.Error(t, err)
	assert.True(t, IsCorruptState(err))
}

func TestRenameRule_UndeclaredTargetIsCorrupt(t *testing.T) {
	inst := restoreResult(t, map[string]attr.Value{
		"OldName": attr.Float(1),
	})

	eng := NewEngine()
	eng.Register(schema.TypeResultMechanical, RenameRule{Old: "OldName", New: "NeverDeclared"})
	_, err := eng.Run(inst)
	require.Error(t, err)
	assert.True(t, IsCorruptState(err))
}

func TestListReductionRule_MissingSiblingIsCorrupt(t *testing.T) {
	inst := restoreResult(t, map[string]attr.Value{
		"Stats": legacyStats(),
	})

	eng := NewEngine()
	eng.Register(schema.TypeResultMechanical, ListReductionRule{
		Attribute:      "Stats",
		LegacyLen:      39,
		GroupSize:      3,
		DropOffset:     1,
		RequireSibling: "LegacyMarker", // never persisted
	})
	_, err := eng.Run(inst)
	require.Error(t, err)
	assert.True(t, IsCorruptState(err))
}

func TestListReductionRule_OtherLengthsUntouched(t *testing.T) {
	// An unrecognized length is not a legacy shape; forward compatibility
	// demands it pass through untouched.
	odd := attr.ScalarList{1, 2, 3, 4}
	inst := restoreResult(t, map[string]attr.Value{
		"Stats": odd,
	})

	applied, err := Builtin().Run(inst)
	require.NoError(t, err)
	assert.Empty(t, applied)
	got, err := inst.ScalarList("Stats")
	require.NoError(t, err)
	assert.Equal(t, odd, got)
}

func TestEngine_RulesDoNotCrossTypes(t *testing.T) {
	r := schema.NewRegistry()
	require.NoError(t, schema.RegisterBuiltins(r))
	inst, err := r.Restore(schema.TypeConstraintInitialFlowVelocity, map[string]attr.Value{
		"StressValues": attr.ScalarList{1},
	})
	require.NoError(t, err)

	// The rename rule is registered for result.mechanical only.
	applied, err := Builtin().Run(inst)
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.True(t, inst.Has("StressValues"))
}

func TestEngine_Rules(t *testing.T) {
	eng := Builtin()
	assert.Equal(t,
		[]string{"rename(StressValues->vonMises)", "reduce(Stats 39->26)"},
		eng.Rules(schema.TypeResultMechanical))
	assert.Empty(t, eng.Rules("ghost"))
}
