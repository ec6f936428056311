package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/simattr/internal/attr"
	"github.com/roach88/simattr/internal/document"
	"github.com/roach88/simattr/internal/schema"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeDecls(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "types.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validDecls = `
types: "constraint.planeRotation": attributes: [
	{name: "Axis", kind: "vector", group: "Parameter"},
	{name: "Locked", kind: "bool", group: "Parameter", default: true},
]
`

func TestValidate_Text(t *testing.T) {
	path := writeDecls(t, validDecls)
	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 1 type(s) valid")
}

func TestValidate_JSON(t *testing.T) {
	path := writeDecls(t, validDecls)
	out, err := execute(t, "--format", "json", "validate", path)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidate_DuplicateAttribute(t *testing.T) {
	path := writeDecls(t, `
types: "a.b": attributes: [
	{name: "X", kind: "bool"},
	{name: "X", kind: "int"},
]
`)
	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E202")
}

func TestValidate_CompileError(t *testing.T) {
	path := writeDecls(t, `types: "a.b": attributes: [{name: "X", kind: "tensor"}]`)
	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E002")
}

func TestValidate_MissingFile(t *testing.T) {
	out, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E001")
}

func TestInvalidFormat(t *testing.T) {
	path := writeDecls(t, validDecls)
	_, err := execute(t, "--format", "xml", "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestVariants_Text(t *testing.T) {
	out, err := execute(t, "variants")
	require.NoError(t, err)
	assert.Contains(t, out, "equation.magnetodynamic (priority 10)")
	assert.Contains(t, out, "equation.heatTransfer (priority 20)")
	assert.Contains(t, out, "UseTreeGauge excludes UsePiolaTransform")
}

func TestVariants_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "variants")
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	infos, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, infos, 3)
}

// seedDocument writes one mechanical result instance and returns its ID.
func seedDocument(t *testing.T, path string) string {
	t.Helper()
	ctx := context.Background()
	doc, err := document.Open(ctx, path)
	require.NoError(t, err)
	id, inst, err := doc.Create(schema.TypeResultMechanical)
	require.NoError(t, err)
	require.NoError(t, inst.SetLocked("vonMises", attr.ScalarList{1, 2}))
	require.NoError(t, doc.Save(ctx))
	require.NoError(t, doc.Close())
	return id
}

func TestMigrate_CurrentDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.db")
	id := seedDocument(t, path)

	out, err := execute(t, "migrate", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "current")
}

func TestMigrate_MissingDB(t *testing.T) {
	out, err := execute(t, "migrate", "--db", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E001")
}

func TestInspect_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.db")
	id := seedDocument(t, path)

	out, err := execute(t, "inspect", "--db", path, "--id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "result.mechanical")
	assert.Contains(t, out, "[NodeData]")
	assert.Contains(t, out, "vonMises")
}

func TestInspect_UnknownID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.db")
	seedDocument(t, path)

	out, err := execute(t, "inspect", "--db", path, "--id", "ghost")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E001")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(&ExitError{Code: ExitCommandError}))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}
