package harness

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/hagness/depwarn/internal/deprec"
)

// Manifest is a declarative suite of deprecation cases.
type Manifest struct {
	// Suite uniquely identifies this suite.
	Suite string `yaml:"suite"`

	// Description explains what the suite covers.
	Description string `yaml:"description"`

	// Cases is the ordered case table. Cases run sequentially in
	// manifest order.
	Cases []Case `yaml:"cases"`
}

// Case is one deprecation assertion: invoke the target once, expect the
// declared signal.
type Case struct {
	// Name identifies the case within its suite.
	Name string `yaml:"name"`

	// Target is the registry identifier of the call site to exercise,
	// e.g. "region.active_list".
	Target string `yaml:"target"`

	// Expect declares the signal contract.
	Expect Expect `yaml:"expect"`

	// Scratch requests an isolated working directory for the invocation.
	// Cases that perform file I/O must set it.
	Scratch bool `yaml:"scratch,omitempty"`
}

// Expect declares the signal a case must raise.
type Expect struct {
	// Category is "deprecation" or "removal".
	Category string `yaml:"category"`

	// MessagePattern is an optional Go regexp matched against the full
	// rendered signal text.
	MessagePattern string `yaml:"message_pattern,omitempty"`
}

// ParsedCategory returns the parsed signal category.
func (e Expect) ParsedCategory() (deprec.Category, error) {
	return deprec.ParseCategory(e.Category)
}

// Pattern compiles the message pattern; nil when none was given.
func (e Expect) Pattern() (*regexp.Regexp, error) {
	if e.MessagePattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(e.MessagePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid message_pattern %q: %w", e.MessagePattern, err)
	}
	return re, nil
}

// LoadManifest reads and parses a manifest YAML file. Unknown fields are
// rejected so typos fail loudly at load time.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest YAML bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateManifest(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// validateManifest checks required fields, unique case names, and that
// every expect clause parses.
func validateManifest(m *Manifest) error {
	if m.Suite == "" {
		return fmt.Errorf("suite is required")
	}
	if m.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(m.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]struct{}, len(m.Cases))
	for i, c := range m.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = struct{}{}

		if c.Target == "" {
			return fmt.Errorf("cases[%d]: target is required", i)
		}
		if _, err := c.Expect.ParsedCategory(); err != nil {
			return fmt.Errorf("cases[%d].expect: %w", i, err)
		}
		if _, err := c.Expect.Pattern(); err != nil {
			return fmt.Errorf("cases[%d].expect: %w", i, err)
		}
	}
	return nil
}
