package harness

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// SchemaError is a single schema violation with its source position.
type SchemaError struct {
	Message  string
	Filename string
	Line     int
	Column   int
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Filename != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
	}
	return e.Message
}

// ValidateSchemaFile checks a manifest file against the embedded CUE
// schema. It returns every violation, not just the first.
func ValidateSchemaFile(path string) []error {
	data, err := os.ReadFile(path)
	if err != nil {
		return []error{fmt.Errorf("failed to read manifest file: %w", err)}
	}
	return ValidateSchema(path, data)
}

// ValidateSchema unifies manifest YAML bytes with the embedded schema.
// A nil return means the manifest conforms.
func ValidateSchema(filename string, data []byte) []error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []error{fmt.Errorf("internal schema is invalid: %w", err)}
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return []error{fmt.Errorf("failed to parse YAML: %w", err)}
	}

	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return cueErrorList(err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueErrorList(err)
	}

	return nil
}

// cueErrorList expands a CUE error into per-violation SchemaErrors.
func cueErrorList(err error) []error {
	errs := cueerrors.Errors(err)
	out := make([]error, 0, len(errs))
	for _, e := range errs {
		pos := e.Position()
		format, args := e.Msg()
		se := &SchemaError{Message: fmt.Sprintf(format, args...)}
		if pos.IsValid() {
			se.Filename = pos.Filename()
			se.Line = pos.Line()
			se.Column = pos.Column()
		}
		out = append(out, se)
	}
	if len(out) == 0 {
		out = append(out, err)
	}
	return out
}
