package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_Primitives(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "string", input: "hello", want: `"hello"`},
		{name: "int", input: 42, want: `42`},
		{name: "int64", input: int64(-7), want: `-7`},
		{name: "bool_true", input: true, want: `true`},
		{name: "bool_false", input: false, want: `false`},
		{name: "array", input: []any{"a", 1, true}, want: `["a",1,true]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshal_ObjectKeysSorted(t *testing.T) {
	got, err := Marshal(map[string]any{
		"zeta":  1,
		"alpha": 2,
		"mid":   3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"mid":3,"zeta":1}`, string(got))
}

func TestMarshal_Deterministic(t *testing.T) {
	payload := map[string]any{
		"run_id": "abc",
		"cases": []any{
			map[string]any{"name": "a", "outcome": "passed", "seq": int64(1)},
			map[string]any{"name": "b", "outcome": "failed_missing_signal", "seq": int64(2)},
		},
		"passed": 1,
		"failed": 1,
	}

	first, err := Marshal(payload)
	require.NoError(t, err)
	second, err := Marshal(payload)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	got, err := Marshal("a < b && c > d")
	require.NoError(t, err)
	assert.Equal(t, `"a < b && c > d"`, string(got))
}

func TestMarshal_NFCNormalization(t *testing.T) {
	// "e" + combining acute accent normalizes to precomposed U+00E9.
	got, err := Marshal("café")
	require.NoError(t, err)
	assert.Equal(t, "\"café\"", string(got))
}

func TestMarshal_LineSeparatorNotEscaped(t *testing.T) {
	got, err := Marshal("a b")
	require.NoError(t, err)
	assert.Equal(t, "\"a b\"", string(got))
}

func TestMarshal_RejectsFloatsAndNull(t *testing.T) {
	_, err := Marshal(3.14)
	require.Error(t, err)

	_, err = Marshal(nil)
	require.Error(t, err)

	_, err = Marshal(map[string]any{"x": nil})
	require.Error(t, err)
}
