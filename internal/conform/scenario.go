package conform

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Probe sources.
const (
	SourceNone           = "none"
	SourceUnitToObject   = "unit_to_object"
	SourceUnitIntoObject = "unit_into_object"
	SourceCUE            = "cue"
)

// Scenario is a named list of probes.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	Probes []Probe `yaml:"probes"`
}

// Probe produces one foreign object and checks it against None.
type Probe struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`

	// Value is the CUE literal for source "cue".
	Value string `yaml:"value,omitempty"`

	// Expect is optional; unset fields are not checked.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists the observations a probe must produce.
type Expect struct {
	TypeOf   *bool  `yaml:"type_of,omitempty"`
	Exact    *bool  `yaml:"exact,omitempty"`
	Downcast *bool  `yaml:"downcast,omitempty"`
	TypeName string `yaml:"type_name,omitempty"`
	Repr     string `yaml:"repr,omitempty"`
}

// LoadScenario parses and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Path: path, Message: err.Error()}
	}
	if err := s.Validate(); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Path: path, Message: err.Error()}
	}
	return &s, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: dir, Message: err.Error()}
	}
	if len(paths) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Path: dir, Message: "no scenario files found"}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Validate checks structural rules that YAML decoding cannot.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Probes) == 0 {
		return fmt.Errorf("scenario %q has no probes", s.Name)
	}
	seen := make(map[string]bool, len(s.Probes))
	for i, p := range s.Probes {
		if p.Name == "" {
			return fmt.Errorf("probes[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("probes[%d]: duplicate probe name %q", i, p.Name)
		}
		seen[p.Name] = true

		switch p.Source {
		case SourceNone, SourceUnitToObject, SourceUnitIntoObject:
			if p.Value != "" {
				return fmt.Errorf("probe %q: value is only valid for source %q", p.Name, SourceCUE)
			}
		case SourceCUE:
			if p.Value == "" {
				return fmt.Errorf("probe %q: source %q requires a value", p.Name, SourceCUE)
			}
		default:
			return fmt.Errorf("probe %q: unknown source %q", p.Name, p.Source)
		}
	}
	return nil
}
