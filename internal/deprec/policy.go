package deprec

import (
	"io"
	"log/slog"
	"sync"
)

// Action is the enforcement applied when a signal of some category is emitted.
type Action int

const (
	// LogOnce logs a warning the first time each API path emits, then
	// stays silent. This is the default for Deprecation.
	LogOnce Action = iota

	// Ignore drops the notice.
	Ignore

	// Record appends the notice to the recorder; Drain retrieves it.
	Record

	// Escalate aborts the emitting call with a *SignalError. This is the
	// default for Removal, and what a strict harness installs for
	// Deprecation.
	Escalate
)

// String returns the manifest spelling of the action.
func (a Action) String() string {
	switch a {
	case LogOnce:
		return "log-once"
	case Ignore:
		return "ignore"
	case Record:
		return "record"
	case Escalate:
		return "escalate"
	default:
		return "action(?)"
	}
}

// policyState holds the process-wide enforcement table.
// All access goes through the package mutex; Emit mutates the LogOnce
// dedup set and the recorder, so reads and writes share one lock.
type policyState struct {
	mu       sync.Mutex
	actions  map[Category]Action
	seen     map[string]struct{}
	recorded []Notice
	logger   *slog.Logger
}

func defaultActions() map[Category]Action {
	return map[Category]Action{
		Deprecation: LogOnce,
		Removal:     Escalate,
	}
}

var policy = &policyState{
	actions: defaultActions(),
	seen:    make(map[string]struct{}),
	logger:  slog.Default(),
}

// SetLogger replaces the logger used by the LogOnce action.
// Tests typically install a discard handler.
func SetLogger(l *slog.Logger) {
	policy.mu.Lock()
	defer policy.mu.Unlock()
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	policy.logger = l
}

// SetAction installs the enforcement action for a category and returns the
// action it replaced. The change is process-wide and persists until reset.
func SetAction(cat Category, act Action) Action {
	policy.mu.Lock()
	defer policy.mu.Unlock()
	prev := policy.actions[cat]
	policy.actions[cat] = act
	return prev
}

// ActionFor reports the currently installed action for a category.
func ActionFor(cat Category) Action {
	policy.mu.Lock()
	defer policy.mu.Unlock()
	return policy.actions[cat]
}

// EscalateScoped installs Escalate for the category and returns a restore
// function that reinstates the previous action. Callers embedding a strict
// suite inside a larger run must invoke restore on every exit path:
//
//	restore := deprec.EscalateScoped(deprec.Deprecation)
//	defer restore()
func EscalateScoped(cat Category) (restore func()) {
	prev := SetAction(cat, Escalate)
	return func() { SetAction(cat, prev) }
}

// Emit reports that a flagged API path was invoked. It returns a
// *SignalError when the installed action for the notice's category is
// Escalate; the emitting call must propagate that error and abort.
// Every other action returns nil and the call proceeds.
func Emit(n Notice) error {
	policy.mu.Lock()
	defer policy.mu.Unlock()

	switch policy.actions[n.Category] {
	case Ignore:
		return nil
	case Record:
		policy.recorded = append(policy.recorded, n)
		return nil
	case Escalate:
		return &SignalError{Notice: n}
	default:
		if _, ok := policy.seen[n.API]; !ok {
			policy.seen[n.API] = struct{}{}
			policy.logger.Warn("deprecated API used",
				"api", n.API,
				"category", n.Category.String(),
				"since", n.Since,
				"message", n.Message,
			)
		}
		return nil
	}
}

// Drain returns all notices accumulated under the Record action and clears
// the recorder.
func Drain() []Notice {
	policy.mu.Lock()
	defer policy.mu.Unlock()
	out := policy.recorded
	policy.recorded = nil
	return out
}

// Reset restores the default policy, clears the recorder and the LogOnce
// dedup set. Intended for test isolation.
func Reset() {
	policy.mu.Lock()
	defer policy.mu.Unlock()
	policy.actions = defaultActions()
	policy.seen = make(map[string]struct{})
	policy.recorded = nil
}
