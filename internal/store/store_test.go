package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagness/depwarn/internal/harness"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(runID string) *harness.SuiteResult {
	r := &harness.SuiteResult{
		Suite: "ecl_deprecations",
		RunID: runID,
		Results: []harness.CaseResult{
			{
				Name:     "file_open_by_name",
				Target:   "file.open_by_name",
				Outcome:  harness.Passed,
				Expected: "deprecation",
				Actual:   "simdata.Open is deprecated since 2.0: ...",
				Seq:      1,
			},
			{
				Name:     "quiet_case",
				Target:   "quiet.target",
				Outcome:  harness.FailedMissingSignal,
				Expected: "deprecation",
				Actual:   "no signal raised",
				Seq:      2,
			},
		},
		Passed: 1,
		Failed: 1,
	}
	return r
}

func TestSaveRun_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveRun(ctx, sampleResult("run-a"), started))

	runs, err := s.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "run-a", run.ID)
	assert.Equal(t, "ecl_deprecations", run.Suite)
	assert.Equal(t, started, run.StartedAt)
	assert.Equal(t, 2, run.Total)
	assert.Equal(t, 1, run.Passed)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, 0, run.Errored)

	cases, err := s.RunCases(ctx, "run-a")
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, harness.Passed, cases[0].Outcome)
	assert.Equal(t, harness.FailedMissingSignal, cases[1].Outcome)
	assert.Equal(t, int64(2), cases[1].Seq)
}

func TestSaveRun_DuplicateRunIDFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRun(ctx, sampleResult("run-a"), time.Now()))
	require.Error(t, s.SaveRun(ctx, sampleResult("run-a"), time.Now()))
}

func TestRecentRuns_OrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, s.SaveRun(ctx, sampleResult(id), base.Add(time.Duration(i)*time.Minute)))
	}

	runs, err := s.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
}

func TestRecentRuns_OrderWithinSameSecond(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// 500ms renders as ".5" under a trimming format and would sort after
	// ".52" as TEXT despite being earlier. The padded layout keeps the
	// column chronologically ordered.
	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveRun(ctx, sampleResult("run-early"), base.Add(500*time.Millisecond)))
	require.NoError(t, s.SaveRun(ctx, sampleResult("run-late"), base.Add(520*time.Millisecond)))

	runs, err := s.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-late", runs[0].ID)
	assert.Equal(t, "run-early", runs[1].ID)
	assert.True(t, runs[1].StartedAt.Before(runs[0].StartedAt))
}

func TestRunCases_UnknownRunIsEmpty(t *testing.T) {
	s := openTestStore(t)

	cases, err := s.RunCases(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestOpen_FileBackedPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveRun(ctx, sampleResult("run-a"), time.Now()))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	runs, err := reopened.RecentRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
