package harness

// Outcome is the terminal state of a case execution. A case moves
// Pending -> Running -> exactly one of the four terminal outcomes and
// never transitions back.
type Outcome string

const (
	// StatusPending marks a case that has not started.
	StatusPending Outcome = "pending"

	// StatusRunning marks a case whose single invocation is in flight.
	StatusRunning Outcome = "running"

	// Passed: the expected signal category and pattern were raised.
	Passed Outcome = "passed"

	// FailedMissingSignal: the call completed without raising. The
	// deprecated path was removed or silently un-flagged without the
	// suite being updated.
	FailedMissingSignal Outcome = "failed_missing_signal"

	// FailedUnexpectedError: a signal of the wrong category, a pattern
	// mismatch, or an unrelated error surfaced.
	FailedUnexpectedError Outcome = "failed_unexpected_error"

	// Errored: scratch-area setup or teardown failed. Infrastructure,
	// not an assertion failure.
	Errored Outcome = "errored"
)

// Terminal reports whether o is a terminal outcome.
func (o Outcome) Terminal() bool {
	switch o {
	case Passed, FailedMissingSignal, FailedUnexpectedError, Errored:
		return true
	}
	return false
}

// CaseResult is the outcome of a single case.
type CaseResult struct {
	Name    string  `json:"name"`
	Target  string  `json:"target"`
	Outcome Outcome `json:"outcome"`

	// Expected describes the declared signal contract.
	Expected string `json:"expected"`

	// Actual describes what the invocation produced: the raised signal,
	// the unrelated error, or "no signal raised".
	Actual string `json:"actual"`

	// Seq is the logical timestamp of case completion.
	Seq int64 `json:"seq"`
}

// SuiteResult aggregates one sequential run of a suite.
type SuiteResult struct {
	Suite   string       `json:"suite"`
	RunID   string       `json:"run_id"`
	Results []CaseResult `json:"results"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Errored int          `json:"errored"`
}

// Pass reports whether every case passed.
func (r *SuiteResult) Pass() bool {
	return r.Failed == 0 && r.Errored == 0
}

// Total returns the number of executed cases.
func (r *SuiteResult) Total() int {
	return len(r.Results)
}

func (r *SuiteResult) add(cr CaseResult) {
	r.Results = append(r.Results, cr)
	switch cr.Outcome {
	case Passed:
		r.Passed++
	case Errored:
		r.Errored++
	default:
		r.Failed++
	}
}
