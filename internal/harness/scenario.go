package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted run of the calculator.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Keymap is an optional CUE keymap file, relative to the scenario
	// file. Empty means the default keymap.
	Keymap string `yaml:"keymap,omitempty"`

	// Flow is the sequence of key presses.
	Flow []FlowStep `yaml:"flow"`

	// Expect checks the engine after the last press.
	Expect *FinalExpect `yaml:"expect,omitempty"`

	// Assertions check the recorded trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// FlowStep is one key press.
type FlowStep struct {
	// Press is a key label resolved through the keymap ("7", "AC", "±").
	Press string `yaml:"press"`

	// Expect is the display expected after the press. Empty skips the check.
	Expect string `yaml:"expect,omitempty"`

	// ResultShown, when set, is the flag expected after the press.
	ResultShown *bool `yaml:"result_shown,omitempty"`
}

// FinalExpect describes the engine after the whole flow.
type FinalExpect struct {
	Display     string `yaml:"display,omitempty"`
	ResultShown *bool  `yaml:"result_shown,omitempty"`
}

// Assertion checks the trace.
type Assertion struct {
	// Type is one of trace_contains, trace_order, trace_count.
	Type string `yaml:"type"`

	// Command is a command string such as "percent" or "digit(7)"
	// (trace_contains, trace_count).
	Command string `yaml:"command,omitempty"`

	// Display, when set, must be the display of the matching step
	// (trace_contains).
	Display string `yaml:"display,omitempty"`

	// Count is the exact number of matching steps (trace_count).
	Count int `yaml:"count,omitempty"`

	// Commands must appear in this relative order (trace_order).
	Commands []string `yaml:"commands,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so that typos like "assertion:" fail loudly. A relative keymap
// path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Keymap != "" && !filepath.IsAbs(scenario.Keymap) {
		scenario.Keymap = filepath.Join(filepath.Dir(path), scenario.Keymap)
	}
	if scenario.Keymap != "" {
		if _, err := os.Stat(scenario.Keymap); err != nil {
			return nil, fmt.Errorf("invalid scenario: keymap file not found: %s", scenario.Keymap)
		}
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML without touching the filesystem.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		if step.Press == "" {
			return fmt.Errorf("flow[%d]: press is required", i)
		}
	}

	if s.Expect != nil && s.Expect.Display == "" && s.Expect.ResultShown == nil {
		return fmt.Errorf("expect: display or result_shown is required")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Command == "" {
			return fmt.Errorf("assertions[%d]: command is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Commands) == 0 {
			return fmt.Errorf("assertions[%d]: commands list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Command == "" {
			return fmt.Errorf("assertions[%d]: command is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
