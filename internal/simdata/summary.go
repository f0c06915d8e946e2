package simdata

import (
	"fmt"

	"github.com/hagness/depwarn/internal/deprec"
)

// Summary holds mock summary vectors: one synthetic time series per key.
type Summary struct {
	caseName string
	steps    int
	vectors  map[string][]float64
}

// NewSummaryMock builds a deterministic mock summary for a named case.
// Each key gets a linear ramp scaled by its position, steps samples long.
func NewSummaryMock(caseName string, keys []string, steps int) (*Summary, error) {
	if caseName == "" {
		return nil, fmt.Errorf("summary case name must be non-empty")
	}
	if steps <= 0 {
		return nil, fmt.Errorf("summary needs at least one step, got %d", steps)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("summary needs at least one vector key")
	}

	s := &Summary{
		caseName: caseName,
		steps:    steps,
		vectors:  make(map[string][]float64, len(keys)),
	}
	for ki, key := range keys {
		v := make([]float64, steps)
		for i := range v {
			v[i] = float64(ki+1) * float64(i)
		}
		s.vectors[key] = v
	}
	return s, nil
}

// CreateSummary is the legacy camel-case constructor alias.
//
// Flagged: deprecated since 2.0 in favour of NewSummaryMock.
func CreateSummary(caseName string, keys []string, steps int) (*Summary, error) {
	if err := deprec.Emit(deprec.Notice{
		API:      "simdata.CreateSummary",
		Message:  "createSummary is deprecated, use NewSummaryMock",
		Since:    "2.0",
		Category: deprec.Deprecation,
	}); err != nil {
		return nil, err
	}
	return NewSummaryMock(caseName, keys, steps)
}

// CaseName returns the summary case name.
func (s *Summary) CaseName() string { return s.caseName }

// Steps returns the number of samples per vector.
func (s *Summary) Steps() int { return s.steps }

// Vector returns the series for key.
func (s *Summary) Vector(key string) ([]float64, error) {
	v, ok := s.vectors[key]
	if !ok {
		return nil, fmt.Errorf("summary %s has no vector %q", s.caseName, key)
	}
	return v, nil
}

// Keys returns the number of vectors.
func (s *Summary) Keys() int { return len(s.vectors) }
