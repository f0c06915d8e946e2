// Package deprec provides the process-wide deprecation-signal facility.
//
// Flagged API paths call Emit at their entry point. What happens next is
// decided by the installed policy: by default a deprecation is logged once
// per API path, but a harness can escalate a whole category so that every
// emission aborts the emitting call with a *SignalError.
//
// The policy is global process state with an explicit install/restore
// lifecycle. Use EscalateScoped to install strict enforcement for the
// duration of a suite without leaking it into an embedding test run.
package deprec

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies a signal emitted by a flagged API path.
type Category int

const (
	// Deprecation marks an API path that still works but is scheduled
	// for removal.
	Deprecation Category = iota

	// Removal marks an API path that has been removed outright.
	Removal
)

// String returns the manifest spelling of the category.
func (c Category) String() string {
	switch c {
	case Deprecation:
		return "deprecation"
	case Removal:
		return "removal"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory parses the manifest spelling of a category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "deprecation":
		return Deprecation, nil
	case "removal":
		return Removal, nil
	default:
		return 0, fmt.Errorf("unknown signal category %q (want \"deprecation\" or \"removal\")", s)
	}
}

// Notice describes a single emission from a flagged call site.
type Notice struct {
	// API is the dotted path of the flagged entry point,
	// e.g. "simdata.File.Open".
	API string

	// Message names the deprecated access pattern and its replacement.
	Message string

	// Since is the release that flagged the path, e.g. "2.0".
	Since string

	// Category is the signal class of this notice.
	Category Category
}

// SignalError is the escalated form of a Notice. Under an Escalate policy
// the emitting call returns it instead of completing.
type SignalError struct {
	Notice Notice
}

// Error implements the error interface.
func (e *SignalError) Error() string {
	n := e.Notice
	verb := "is deprecated"
	if n.Category == Removal {
		verb = "has been removed"
	}
	if n.Since != "" {
		return fmt.Sprintf("%s %s since %s: %s", n.API, verb, n.Since, n.Message)
	}
	return fmt.Sprintf("%s %s: %s", n.API, verb, n.Message)
}

// AsSignal unwraps err to a *SignalError if one is in its chain.
func AsSignal(err error) (*SignalError, bool) {
	var se *SignalError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
