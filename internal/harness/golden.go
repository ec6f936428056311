package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario, checks its expectations, and compares
// the canonical snapshot of the migrated store against a golden file under
// testdata/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) {
	t.Helper()

	res, err := Run(s)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if err := Check(s, res); err != nil {
		t.Fatal(err)
	}
	if s.Corrupt {
		// No store to snapshot; the corrupt error is the outcome.
		return
	}

	snapshot, err := Snapshot(res)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	g := goldie.New(t)
	g.Assert(t, s.Name, snapshot)
}
