package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema_ValidManifest(t *testing.T) {
	errs := ValidateSchemaFile("testdata/ecl_deprecations.yaml")
	assert.Empty(t, errs)
}

func TestValidateSchema_Violations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "bad_category",
			yaml: `
suite: s
description: "d"
cases:
  - name: a
    target: x.y
    expect:
      category: warning
`,
		},
		{
			name: "bad_suite_name",
			yaml: `
suite: "Has Spaces"
description: "d"
cases:
  - name: a
    target: x.y
    expect:
      category: deprecation
`,
		},
		{
			name: "bad_target_shape",
			yaml: `
suite: s
description: "d"
cases:
  - name: a
    target: no_dot_here
    expect:
      category: deprecation
`,
		},
		{
			name: "empty_cases",
			yaml: `
suite: s
description: "d"
cases: []
`,
		},
		{
			name: "empty_pattern",
			yaml: `
suite: s
description: "d"
cases:
  - name: a
    target: x.y
    expect:
      category: deprecation
      message_pattern: ""
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSchema(tt.name+".yaml", []byte(tt.yaml))
			require.NotEmpty(t, errs)
		})
	}
}

func TestValidateSchema_MalformedYAML(t *testing.T) {
	errs := ValidateSchema("bad.yaml", []byte("suite: [unclosed"))
	require.NotEmpty(t, errs)
}

func TestValidateSchemaFile_MissingFile(t *testing.T) {
	errs := ValidateSchemaFile("testdata/missing.yaml")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "failed to read manifest file")
}
