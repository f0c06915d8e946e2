package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hagness/depwarn/internal/deprec"
	"github.com/hagness/depwarn/internal/scratch"
	"github.com/hagness/depwarn/internal/testutil"
)

// Runner executes suites sequentially: one case runs to completion,
// including scratch teardown, before the next begins.
type Runner struct {
	registry    *Registry
	clock       *testutil.SeqClock
	idGen       testutil.IDGenerator
	logger      *slog.Logger
	scratchRoot string
	strictCat   deprec.Category
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger installs a logger; tests pass a discard handler.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithIDGenerator replaces the run-ID generator; golden tests install a
// fixed one.
func WithIDGenerator(g testutil.IDGenerator) Option {
	return func(r *Runner) { r.idGen = g }
}

// WithScratchRoot places scratch areas under root instead of the system
// temp directory.
func WithScratchRoot(root string) Option {
	return func(r *Runner) { r.scratchRoot = root }
}

// WithStrictCategory selects which signal category the run escalates.
// The default is Deprecation; Removal restricts strict enforcement to
// removed paths, leaving deprecations on their installed action.
func WithStrictCategory(cat deprec.Category) Option {
	return func(r *Runner) { r.strictCat = cat }
}

// NewRunner creates a runner over the given registry.
func NewRunner(registry *Registry, opts ...Option) *Runner {
	r := &Runner{
		registry:  registry,
		clock:     testutil.NewSeqClock(),
		idGen:     testutil.UUIDGenerator{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		strictCat: deprec.Deprecation,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunSuite executes every case of the manifest under a strict policy:
// signals of the configured strict category escalate to errors for the
// duration of the run and the prior policy is restored on exit, so strict
// enforcement never leaks into an embedding test run.
//
// The returned error covers harness misconfiguration (an unknown target);
// case failures are reported through the SuiteResult.
func (r *Runner) RunSuite(m *Manifest) (*SuiteResult, error) {
	// Resolve every target before running anything: a typo in the
	// manifest is a setup-time fatal, not a case failure.
	targets := make([]TargetFunc, len(m.Cases))
	for i, c := range m.Cases {
		fn, err := r.registry.Lookup(c.Target)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
		targets[i] = fn
	}

	restore := deprec.EscalateScoped(r.strictCat)
	defer restore()

	r.clock.Reset()
	result := &SuiteResult{
		Suite: m.Suite,
		RunID: r.idGen.NewID(),
	}

	for i, c := range m.Cases {
		cr := r.runCase(c, targets[i])
		result.add(cr)
		r.logger.Info("case finished",
			"suite", m.Suite,
			"case", c.Name,
			"outcome", string(cr.Outcome),
		)
	}

	return result, nil
}

// runCase drives one case through its state machine. The invocation is
// authoritative: exactly one call, no retries.
func (r *Runner) runCase(c Case, target TargetFunc) CaseResult {
	cr := CaseResult{
		Name:     c.Name,
		Target:   c.Target,
		Outcome:  StatusPending,
		Expected: describeExpect(c.Expect),
	}

	// Scratch setup is part of the running case, so an environment
	// failure still walks the full Pending to Running to Errored path.
	cr.Outcome = StatusRunning

	ctx := &CaseContext{}
	if c.Scratch {
		area, err := scratch.New(c.Name, r.scratchRoot)
		if err != nil {
			cr.Outcome = Errored
			cr.Actual = err.Error()
			cr.Seq = r.clock.Next()
			return cr
		}
		ctx.Scratch = area
	}

	callErr := target(ctx)

	if ctx.Scratch != nil {
		if closeErr := ctx.Scratch.Close(); closeErr != nil {
			// Teardown failure is infrastructure trouble even when
			// the assertion itself would have passed.
			cr.Outcome = Errored
			cr.Actual = closeErr.Error()
			cr.Seq = r.clock.Next()
			return cr
		}
	}

	cr.Outcome, cr.Actual = classify(c.Expect, callErr)
	cr.Seq = r.clock.Next()
	return cr
}

// classify maps the invocation result to a terminal outcome. The expect
// clause was validated at load time, so category and pattern parse here.
func classify(expect Expect, callErr error) (Outcome, string) {
	if callErr == nil {
		return FailedMissingSignal, "no signal raised"
	}

	se, ok := deprec.AsSignal(callErr)
	if !ok {
		return FailedUnexpectedError, fmt.Sprintf("unrelated error: %v", callErr)
	}

	wantCat, err := expect.ParsedCategory()
	if err != nil {
		return FailedUnexpectedError, fmt.Sprintf("invalid expect clause: %v", err)
	}
	if se.Notice.Category != wantCat {
		return FailedUnexpectedError, fmt.Sprintf("signal of category %q: %v", se.Notice.Category, se)
	}

	pattern, err := expect.Pattern()
	if err != nil {
		return FailedUnexpectedError, fmt.Sprintf("invalid expect clause: %v", err)
	}
	if pattern != nil && !pattern.MatchString(se.Error()) {
		return FailedUnexpectedError, fmt.Sprintf("signal text %q does not match pattern %q", se.Error(), pattern)
	}

	return Passed, se.Error()
}

func describeExpect(e Expect) string {
	if e.MessagePattern == "" {
		return e.Category
	}
	return fmt.Sprintf("%s matching %q", e.Category, e.MessagePattern)
}
