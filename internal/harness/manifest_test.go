package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest_ValidFile(t *testing.T) {
	m, err := LoadManifest("testdata/ecl_deprecations.yaml")
	require.NoError(t, err)

	assert.Equal(t, "ecl_deprecations", m.Suite)
	assert.NotEmpty(t, m.Description)
	require.Len(t, m.Cases, 5)

	first := m.Cases[0]
	assert.Equal(t, "file_open_by_name", first.Name)
	assert.Equal(t, "file.open_by_name", first.Target)
	assert.True(t, first.Scratch)
	assert.Equal(t, "deprecation", first.Expect.Category)
	assert.Equal(t, "open by bare keyword file name", first.Expect.MessagePattern)

	removal := m.Cases[3]
	assert.Equal(t, "removal", removal.Expect.Category)
	assert.Empty(t, removal.Expect.MessagePattern)
	assert.False(t, removal.Scratch)
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest("testdata/does_not_exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest file")
}

func TestParseManifest_UnknownFieldRejected(t *testing.T) {
	_, err := ParseManifest([]byte(`
suite: s
description: "d"
case:
  - name: typo
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseManifest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing_suite",
			yaml:    "description: \"d\"\ncases:\n  - name: a\n    target: x.y\n    expect: {category: deprecation}\n",
			wantErr: "suite is required",
		},
		{
			name:    "missing_description",
			yaml:    "suite: s\ncases:\n  - name: a\n    target: x.y\n    expect: {category: deprecation}\n",
			wantErr: "description is required",
		},
		{
			name:    "no_cases",
			yaml:    "suite: s\ndescription: \"d\"\n",
			wantErr: "cases list is required",
		},
		{
			name:    "missing_case_name",
			yaml:    "suite: s\ndescription: \"d\"\ncases:\n  - target: x.y\n    expect: {category: deprecation}\n",
			wantErr: "name is required",
		},
		{
			name:    "duplicate_case_name",
			yaml:    "suite: s\ndescription: \"d\"\ncases:\n  - name: a\n    target: x.y\n    expect: {category: deprecation}\n  - name: a\n    target: x.z\n    expect: {category: deprecation}\n",
			wantErr: "duplicate case name",
		},
		{
			name:    "missing_target",
			yaml:    "suite: s\ndescription: \"d\"\ncases:\n  - name: a\n    expect: {category: deprecation}\n",
			wantErr: "target is required",
		},
		{
			name:    "bad_category",
			yaml:    "suite: s\ndescription: \"d\"\ncases:\n  - name: a\n    target: x.y\n    expect: {category: warning}\n",
			wantErr: "unknown signal category",
		},
		{
			name:    "bad_pattern",
			yaml:    "suite: s\ndescription: \"d\"\ncases:\n  - name: a\n    target: x.y\n    expect: {category: deprecation, message_pattern: \"([\"}\n",
			wantErr: "invalid message_pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
