package harness

import (
	"fmt"
	"sort"

	"github.com/hagness/depwarn/internal/scratch"
	"github.com/hagness/depwarn/internal/simdata"
)

// CaseContext is handed to a target invocation. Scratch is non-nil only
// for cases that requested an isolated directory.
type CaseContext struct {
	Scratch *scratch.Area
}

// TargetFunc is a single opaque call site. Its only contract is that it
// may or may not return a deprecation signal.
type TargetFunc func(*CaseContext) error

// Registry maps target identifiers from manifests to call sites.
type Registry struct {
	targets map[string]TargetFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]TargetFunc)}
}

// Register adds a target. Re-registering an identifier is a programming
// error and panics.
func (r *Registry) Register(name string, fn TargetFunc) {
	if _, dup := r.targets[name]; dup {
		panic(fmt.Sprintf("target %q registered twice", name))
	}
	r.targets[name] = fn
}

// Lookup resolves a target identifier.
func (r *Registry) Lookup(name string) (TargetFunc, error) {
	fn, ok := r.targets[name]
	if !ok {
		return nil, fmt.Errorf("unknown target %q", name)
	}
	return fn, nil
}

// Names returns all registered identifiers, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns the known-deprecated call sites of the simdata
// facade.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Construct a named integer keyword of length 3, write it, then
	// re-open the file through the deprecated bare-name path.
	r.Register("file.open_by_name", func(ctx *CaseContext) error {
		if err := writeTestKeyword("TEST"); err != nil {
			return err
		}
		_, err := simdata.Open("TEST")
		return err
	})

	// Same write, supported open, then the deprecated name accessor.
	r.Register("file.name_property", func(ctx *CaseContext) error {
		if err := writeTestKeyword("TEST"); err != nil {
			return err
		}
		f, err := simdata.OpenPath("TEST")
		if err != nil {
			return err
		}
		_, err = f.Name()
		return err
	})

	// Region over a fresh 10x10x10 unit-cell grid, then the deprecated
	// active-list property.
	r.Register("region.active_list", func(ctx *CaseContext) error {
		region, err := unitRegion()
		if err != nil {
			return err
		}
		_, err = region.ActiveList()
		return err
	})

	// The removed camel-case alias of the same property.
	r.Register("region.get_active_list", func(ctx *CaseContext) error {
		region, err := unitRegion()
		if err != nil {
			return err
		}
		_, err = region.GetActiveList()
		return err
	})

	// The legacy summary-mock constructor alias.
	r.Register("summary.create_summary", func(ctx *CaseContext) error {
		_, err := simdata.CreateSummary("CASE", []string{"FOPT"}, 10)
		return err
	})

	return r
}

// writeTestKeyword writes a 3-element INTE keyword to name in the current
// working directory, which for scratch cases is the scratch area.
func writeTestKeyword(name string) error {
	kw, err := simdata.NewKeyword(name, 3, simdata.Inte)
	if err != nil {
		return err
	}
	w, err := simdata.OpenWriter(name)
	if err != nil {
		return err
	}
	if err := kw.Fwrite(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func unitRegion() (*simdata.Region, error) {
	grid, err := simdata.NewRectangular([3]int{10, 10, 10}, [3]float64{1, 1, 1})
	if err != nil {
		return nil, err
	}
	return simdata.NewRegion(grid, false)
}
