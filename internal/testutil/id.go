package testutil

import "github.com/google/uuid"

// IDGenerator produces run identifiers for suite executions.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the production generator: a fresh random UUID per run.
type UUIDGenerator struct{}

// NewID returns a random UUID string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// FixedIDGenerator always returns the same identifier.
//
// Golden-report tests use it so the serialized run is deterministic.
type FixedIDGenerator struct {
	ID string
}

// NewFixedIDGenerator creates a generator returning id; an empty id
// defaults to "test-run-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedIDGenerator{ID: id}
}

// NewID returns the fixed identifier.
func (g *FixedIDGenerator) NewID() string { return g.ID }
