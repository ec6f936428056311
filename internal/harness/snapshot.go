package harness

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/simattr/internal/attr"
)

// Snapshot renders a result's migrated store as indented canonical JSON
// for golden comparison: canonical ordering and value encoding, pretty
// printed so golden diffs stay readable.
func Snapshot(res *Result) ([]byte, error) {
	canonical, err := attr.MarshalState(res.Instance.State())
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, canonical, "", "  "); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
