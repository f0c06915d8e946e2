package harness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hagness/depwarn/internal/deprec"
	"github.com/hagness/depwarn/internal/testutil"
)

func TestSuiteReport_Golden(t *testing.T) {
	deprec.Reset()
	t.Cleanup(deprec.Reset)

	r := NewRunner(DefaultRegistry(),
		WithIDGenerator(testutil.NewFixedIDGenerator("golden-run")),
		WithScratchRoot(t.TempDir()),
	)

	result, err := r.RunSuite(loadSuite(t))
	require.NoError(t, err)
	require.True(t, result.Pass())

	AssertGolden(t, "ecl_deprecations", result)
}
