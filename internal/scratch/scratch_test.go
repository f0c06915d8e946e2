package scratch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesAndEntersDirectory(t *testing.T) {
	root := t.TempDir()
	before, err := os.Getwd()
	require.NoError(t, err)

	area, err := New("keyword-io", root)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	// macOS reports /private-prefixed paths for temp dirs.
	assert.Equal(t, mustEval(t, area.Dir()), mustEval(t, wd))
	assert.Equal(t, "keyword-io", area.Label())

	require.NoError(t, area.Close())

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, mustEval(t, before), mustEval(t, after))

	_, err = os.Stat(area.Dir())
	assert.True(t, os.IsNotExist(err))
}

func TestNew_SameLabelDoesNotCollide(t *testing.T) {
	root := t.TempDir()

	a, err := New("name", root)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile("TEST", []byte("a"), 0o644))
	require.NoError(t, a.Close())

	b, err := New("name", root)
	require.NoError(t, err)
	defer func() { require.NoError(t, b.Close()) }()

	assert.NotEqual(t, a.Dir(), b.Dir())
	_, err = os.Stat("TEST")
	assert.True(t, os.IsNotExist(err), "second area must start empty")
}

func TestClose_RemovesContents(t *testing.T) {
	area, err := New("residue", t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll("nested/deep", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("nested", "deep", "f.bin"), []byte{1, 2, 3}, 0o644))

	require.NoError(t, area.Close())
	_, err = os.Stat(area.Dir())
	assert.True(t, os.IsNotExist(err))
}

func TestClose_Idempotent(t *testing.T) {
	area, err := New("twice", t.TempDir())
	require.NoError(t, err)

	require.NoError(t, area.Close())
	require.NoError(t, area.Close())
}

func TestNew_CreateFailureIsEnvError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blocked")
	// A file where the root directory should be forces MkdirAll to fail.
	require.NoError(t, os.WriteFile(root, []byte("not a dir"), 0o644))

	_, err := New("case", root)
	require.Error(t, err)
	assert.True(t, IsEnvError(err))

	var ee *EnvError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "create", ee.Op)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{label: "plain", want: "plain"},
		{label: "with space", want: "with_space"},
		{label: "path/sep", want: "path_sep"},
		{label: "ok-label_9", want: "ok-label_9"},
		{label: "", want: "scratch"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize(tt.label))
		})
	}
}

func mustEval(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}
