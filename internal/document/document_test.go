package document

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/simattr/internal/attr"
	"github.com/roach88/simattr/internal/equation"
	"github.com/roach88/simattr/internal/object"
	"github.com/roach88/simattr/internal/schema"
)

func tempDocPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "doc.db")
}

func TestDocument_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := tempDocPath(t)

	doc, err := Open(ctx, path)
	require.NoError(t, err)

	id, inst, err := doc.Create(schema.TypeResultMechanical)
	require.NoError(t, err)
	require.NoError(t, inst.SetLocked("vonMises", attr.ScalarList{1, 2.5}))
	require.NoError(t, inst.SetLocked("Eigenmode", attr.Int(3)))

	require.NoError(t, doc.Save(ctx))
	require.NoError(t, doc.Close())

	doc, err = Open(ctx, path)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, []string{id}, doc.IDs())
	got, ok := doc.Get(id)
	require.True(t, ok)
	assert.Equal(t, schema.TypeResultMechanical, got.Type())

	vm, err := got.ScalarList("vonMises")
	require.NoError(t, err)
	assert.Equal(t, attr.ScalarList{1, 2.5}, vm)
	mode, err := got.Int("Eigenmode")
	require.NoError(t, err)
	assert.Equal(t, int64(3), mode)

	// A current-schema reload applies no migration rules.
	assert.Empty(t, doc.AppliedRules(id))
}

func TestDocument_MigratesLegacyRowsOnOpen(t *testing.T) {
	ctx := context.Background()
	path := tempDocPath(t)

	// Inject a legacy-shaped row directly, bypassing the document layer.
	store, err := OpenStore(path)
	require.NoError(t, err)
	state, err := attr.MarshalState(map[string]attr.Value{
		"ResultType":   attr.String("result.mechanical"),
		"StressValues": attr.ScalarList{7, 8, 9},
	})
	require.NoError(t, err)
	require.NoError(t, store.WriteObject(ctx, objectRow{
		ID:       "legacy-1",
		Type:     schema.TypeResultMechanical,
		Position: 0,
		State:    string(state),
	}))
	require.NoError(t, store.Close())

	doc, err := Open(ctx, path)
	require.NoError(t, err)
	defer doc.Close()

	inst, ok := doc.Get("legacy-1")
	require.True(t, ok)
	vm, err := inst.ScalarList("vonMises")
	require.NoError(t, err)
	assert.Equal(t, attr.ScalarList{7, 8, 9}, vm)
	assert.False(t, inst.Has("StressValues"))
	assert.Equal(t, []string{"rename(StressValues->vonMises)"}, doc.AppliedRules("legacy-1"))

	// Saving writes the migrated shape; reopening applies nothing.
	require.NoError(t, doc.Save(ctx))
	require.NoError(t, doc.Close())
	doc, err = Open(ctx, path)
	require.NoError(t, err)
	defer doc.Close()
	assert.Empty(t, doc.AppliedRules("legacy-1"))
}

func TestDocument_CorruptRowFailsOpen(t *testing.T) {
	ctx := context.Background()
	path := tempDocPath(t)

	store, err := OpenStore(path)
	require.NoError(t, err)
	state, err := attr.MarshalState(map[string]attr.Value{
		"StressValues": attr.Bool(true),
	})
	require.NoError(t, err)
	require.NoError(t, store.WriteObject(ctx, objectRow{
		ID:    "broken",
		Type:  schema.TypeResultMechanical,
		State: string(state),
	}))
	require.NoError(t, store.Close())

	_, err = Open(ctx, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestDocument_WrongKindDeclaredValueFailsOpen(t *testing.T) {
	ctx := context.Background()
	path := tempDocPath(t)

	// Priority persisted as a string: the row decodes, but restore must
	// reject the kind mismatch before the instance exists.
	store, err := OpenStore(path)
	require.NoError(t, err)
	state, err := attr.MarshalState(map[string]attr.Value{
		"Priority": attr.String("oops"),
	})
	require.NoError(t, err)
	require.NoError(t, store.WriteObject(ctx, objectRow{
		ID:    "bad-kind",
		Type:  equation.HeatTransfer.TypeTag(),
		State: string(state),
	}))
	require.NoError(t, store.Close())

	_, err = Open(ctx, path)
	require.Error(t, err)
	assert.True(t, object.IsTypeMismatch(err))
	assert.Contains(t, err.Error(), "bad-kind")
}

func TestDocument_Equations(t *testing.T) {
	ctx := context.Background()
	doc, err := Open(ctx, tempDocPath(t))
	require.NoError(t, err)
	defer doc.Close()

	_, heat, err := doc.ComposeEquation(equation.HeatTransfer) // priority 20
	require.NoError(t, err)
	_, mag, err := doc.ComposeEquation(equation.Magnetodynamic) // priority 10
	require.NoError(t, err)
	_, _, err = doc.Create(schema.TypeResultMechanical)
	require.NoError(t, err)

	eqs := doc.Equations()
	require.Len(t, eqs, 2)
	assert.Equal(t, equation.HeatTransfer, eqs[0].Variant())

	ordered := equation.SortByPriority(eqs)
	assert.Equal(t, mag.Variant(), ordered[0].Variant())
	assert.Equal(t, heat.Variant(), ordered[1].Variant())
}

func TestDocument_EquationsSurviveReload(t *testing.T) {
	ctx := context.Background()
	path := tempDocPath(t)

	doc, err := Open(ctx, path)
	require.NoError(t, err)
	id, eq, err := doc.ComposeEquation(equation.Electrostatic)
	require.NoError(t, err)
	require.NoError(t, eq.Set("CalculateCapacitanceMatrix", attr.Bool(true)))
	require.NoError(t, doc.Save(ctx))
	require.NoError(t, doc.Close())

	doc, err = Open(ctx, path)
	require.NoError(t, err)
	defer doc.Close()

	inst, ok := doc.Get(id)
	require.True(t, ok)
	restored, err := equation.Wrap(inst)
	require.NoError(t, err)
	assert.Equal(t, equation.Electrostatic, restored.Variant())
	assert.Equal(t, int64(10), restored.Priority())
	on, err := restored.Bool("CalculateCapacitanceMatrix")
	require.NoError(t, err)
	assert.True(t, on)
}

func TestDocument_UnknownTypeRowFailsOpen(t *testing.T) {
	ctx := context.Background()
	path := tempDocPath(t)

	store, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.WriteObject(ctx, objectRow{
		ID:    "x",
		Type:  "nobody.declared.this",
		State: "{}",
	}))
	require.NoError(t, store.Close())

	_, err = Open(ctx, path)
	require.Error(t, err)
	assert.True(t, schema.IsUnknownType(err))
}

func TestDocument_Delete(t *testing.T) {
	ctx := context.Background()
	path := tempDocPath(t)

	doc, err := Open(ctx, path)
	require.NoError(t, err)
	keep, _, err := doc.Create(schema.TypeResultMechanical)
	require.NoError(t, err)
	drop, _, err := doc.Create(schema.TypeConstraintInitialFlowVelocity)
	require.NoError(t, err)
	require.NoError(t, doc.Save(ctx))

	require.NoError(t, doc.Delete(ctx, drop))
	assert.Equal(t, []string{keep}, doc.IDs())
	_, ok := doc.Get(drop)
	assert.False(t, ok)

	err = doc.Delete(ctx, drop)
	require.Error(t, err)
	require.NoError(t, doc.Close())

	// The row is gone without a Save.
	doc, err = Open(ctx, path)
	require.NoError(t, err)
	defer doc.Close()
	assert.Equal(t, []string{keep}, doc.IDs())
}

func TestStore_OpenIsIdempotent(t *testing.T) {
	path := tempDocPath(t)
	for i := 0; i < 2; i++ {
		store, err := OpenStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Close())
	}
}
