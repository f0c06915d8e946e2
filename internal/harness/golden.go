package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/hagness/depwarn/internal/canon"
)

// Snapshot converts a suite result to the canonical-JSON-safe shape used
// for golden comparison and report output.
func Snapshot(r *SuiteResult) map[string]any {
	results := make([]any, len(r.Results))
	for i, cr := range r.Results {
		results[i] = map[string]any{
			"name":     cr.Name,
			"target":   cr.Target,
			"outcome":  string(cr.Outcome),
			"expected": cr.Expected,
			"actual":   cr.Actual,
			"seq":      cr.Seq,
		}
	}

	return map[string]any{
		"suite":   r.Suite,
		"run_id":  r.RunID,
		"results": results,
		"passed":  r.Passed,
		"failed":  r.Failed,
		"errored": r.Errored,
	}
}

// MarshalReport serializes a suite result to canonical JSON. Byte-stable
// across runs when the runner uses a fixed ID generator.
func MarshalReport(r *SuiteResult) ([]byte, error) {
	return canon.Marshal(Snapshot(r))
}

// AssertGolden compares a suite result against the golden file
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, r *SuiteResult) {
	t.Helper()

	data, err := MarshalReport(r)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
