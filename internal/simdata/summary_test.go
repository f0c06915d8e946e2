package simdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagness/depwarn/internal/deprec"
)

func TestNewSummaryMock(t *testing.T) {
	s, err := NewSummaryMock("CASE", []string{"FOPT", "FOPR"}, 4)
	require.NoError(t, err)
	assert.Equal(t, "CASE", s.CaseName())
	assert.Equal(t, 4, s.Steps())
	assert.Equal(t, 2, s.Keys())

	v, err := s.Vector("FOPR")
	require.NoError(t, err)
	require.Len(t, v, 4)
	// Deterministic ramp: scaled by key position.
	assert.Equal(t, 0.0, v[0])
	assert.Equal(t, v[1]*3, v[3])

	_, err = s.Vector("WOPR")
	require.Error(t, err)
}

func TestNewSummaryMock_Validation(t *testing.T) {
	_, err := NewSummaryMock("", []string{"FOPT"}, 4)
	require.Error(t, err)

	_, err = NewSummaryMock("CASE", nil, 4)
	require.Error(t, err)

	_, err = NewSummaryMock("CASE", []string{"FOPT"}, 0)
	require.Error(t, err)
}

func TestCreateSummary_Deprecated(t *testing.T) {
	deprec.Reset()
	t.Cleanup(deprec.Reset)

	s, err := CreateSummary("CASE", []string{"FOPT"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "CASE", s.CaseName())

	restore := deprec.EscalateScoped(deprec.Deprecation)
	defer restore()

	_, err = CreateSummary("CASE", []string{"FOPT"}, 2)
	require.Error(t, err)
	se, ok := deprec.AsSignal(err)
	require.True(t, ok)
	assert.Equal(t, "simdata.CreateSummary", se.Notice.API)
}
