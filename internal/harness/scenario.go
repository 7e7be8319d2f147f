package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Requests are executed in order against a fresh engine.
	Requests []Request `yaml:"requests" json:"requests"`
}

// Request is one engine query plus its expectations.
type Request struct {
	Number int64 `yaml:"number" json:"number"`
	Count  int   `yaml:"count,omitempty" json:"count,omitempty"`

	// Properties is nil for a report, non-nil for a scan.
	Properties []string `yaml:"properties,omitempty" json:"properties,omitempty"`

	// Expect is optional; without it the request only contributes to the transcript.
	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expect lists assertions on a request's output. Every field is optional.
type Expect struct {
	// Error is the expected error code ("E203"). Empty means success is expected.
	Error string `yaml:"error,omitempty" json:"error,omitempty"`

	// Lines must equal the rendered output exactly.
	Lines []string `yaml:"lines,omitempty" json:"lines,omitempty"`

	// Contains lists lines that must appear somewhere in the output.
	Contains []string `yaml:"contains,omitempty" json:"contains,omitempty"`

	// Count is the expected number of output lines (nil = unchecked).
	Count *int `yaml:"count,omitempty" json:"count,omitempty"`
}

// String renders the request the way a user would type it.
func (r Request) String() string {
	parts := []string{fmt.Sprintf("%d", r.Number)}
	if r.Properties != nil || r.Count != 0 {
		parts = append(parts, fmt.Sprintf("%d", r.Count))
	}
	parts = append(parts, r.Properties...)
	return strings.Join(parts, " ")
}

// LoadScenario reads and parses a scenario file. The format is chosen by
// extension: .cue for CUE, anything else for YAML.
// Returns an error if the file doesn't exist, is malformed, contains unknown
// fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario *Scenario
	if filepath.Ext(path) == ".cue" {
		scenario, err = parseCUE(path, data)
	} else {
		scenario, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

func parseYAML(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// parseCUE compiles the file and decodes the top-level struct. CUE
// constraints in the file (e.g. number: >=0) are checked before decoding.
func parseCUE(path string, data []byte) (*Scenario, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %w", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("failed to validate CUE: %w", err)
	}

	var scenario Scenario
	if err := value.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode CUE: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(s.Name, `/\`) {
		return fmt.Errorf("name %q must not contain path separators", s.Name)
	}
	if len(s.Requests) == 0 {
		return fmt.Errorf("requests list is required and must be non-empty")
	}
	for i, req := range s.Requests {
		if req.Expect == nil {
			continue
		}
		if req.Expect.Count != nil && *req.Expect.Count < 0 {
			return fmt.Errorf("requests[%d].expect: count must be non-negative", i)
		}
		if req.Expect.Error != "" && (len(req.Expect.Lines) > 0 || len(req.Expect.Contains) > 0) {
			return fmt.Errorf("requests[%d].expect: error cannot be combined with lines or contains", i)
		}
	}
	return nil
}
