package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/lexc/internal/ir"
)

// Scenario defines a lexicon test scenario.
// A scenario compiles a lexicon and asserts on the resulting table,
// lexicon view and diagnostics.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Specs is a directory of CUE lexicon sources to compile.
	// Relative paths are resolved against the scenario file location.
	Specs string `yaml:"specs,omitempty"`

	// Entries are inline definitions, compiled after the Specs definitions.
	Entries []EntryStep `yaml:"entries,omitempty"`

	// Options adjusts the compiler settings for this scenario.
	Options *ScenarioOptions `yaml:"options,omitempty"`

	// Assertions validate the compiled lexicon.
	Assertions []Assertion `yaml:"assertions"`
}

// EntryStep is an inline definition, written like a CUE entry.
type EntryStep struct {
	Key       string   `yaml:"key"`
	Form      string   `yaml:"form,omitempty"`
	Derive    string   `yaml:"derive,omitempty"`
	Source    string   `yaml:"source,omitempty"`
	Compound  []string `yaml:"compound,omitempty"`
	Idiom     []string `yaml:"idiom,omitempty"`
	Etymology string   `yaml:"etymology,omitempty"`
	Gloss     string   `yaml:"gloss,omitempty"`
	Class     string   `yaml:"class,omitempty"`
	Date      string   `yaml:"date,omitempty"`
}

// Def converts the step into a definition.
func (s EntryStep) Def() ir.EntryDef {
	def := ir.EntryDef{
		Key:       s.Key,
		Form:      s.Form,
		Derive:    s.Derive,
		Etymology: s.Etymology,
		Attributes: ir.Attributes{
			Gloss:  s.Gloss,
			Class:  s.Class,
			Date:   s.Date,
			Source: s.Source,
		},
	}
	if s.Compound != nil {
		def.Compound = ir.ParseRefs(s.Compound)
	}
	if s.Idiom != nil {
		def.Idiom = ir.ParseRefs(s.Idiom)
	}
	return def
}

// ScenarioOptions overrides compiler settings. Zero fields keep the defaults.
type ScenarioOptions struct {
	Clusters      string `yaml:"clusters,omitempty"`
	Epenthetic    string `yaml:"epenthetic,omitempty"`
	MaxRootLength *int   `yaml:"max_root_length,omitempty"`
}

// Assertion validates one property of the compiled lexicon.
type Assertion struct {
	// Type specifies the assertion type:
	// - "lookup": Key resolves (with fallback) to Form and, if given, Gloss
	// - "translate": Input translates to Output
	// - "diagnostic": a diagnostic with Code (and Key, if given) was reported
	// - "no_diagnostic": no diagnostic matches Code and/or Key
	// - "missing": Key is not in the compiled table
	// - "entry_count": the table holds exactly Count entries
	// - "collision": Keys share a form, optionally of the given Kind
	Type string `yaml:"type"`

	// Key is the entry key (used by lookup, diagnostic, no_diagnostic, missing).
	Key string `yaml:"key,omitempty"`

	// Form is the expected surface form (used by lookup).
	Form string `yaml:"form,omitempty"`

	// Gloss is the expected gloss (used by lookup).
	Gloss string `yaml:"gloss,omitempty"`

	// Input and Output are the code string and expected rendering (used by translate).
	Input  string `yaml:"input,omitempty"`
	Output string `yaml:"output,omitempty"`

	// Code is the diagnostic code (used by diagnostic, no_diagnostic).
	Code string `yaml:"code,omitempty"`

	// Count is the expected number of entries (used by entry_count).
	Count int `yaml:"count,omitempty"`

	// Keys are the two colliding entries (used by collision).
	Keys []string `yaml:"keys,omitempty"`

	// Kind is "homophone" or "duplicate" (used by collision).
	Kind string `yaml:"kind,omitempty"`
}

// Assertion type constants.
const (
	AssertLookup       = "lookup"
	AssertTranslate    = "translate"
	AssertDiagnostic   = "diagnostic"
	AssertNoDiagnostic = "no_diagnostic"
	AssertMissing      = "missing"
	AssertEntryCount   = "entry_count"
	AssertCollision    = "collision"
)

// LoadScenario reads and parses a scenario YAML file.
// A relative specs directory is resolved against the file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving a relative specs directory against basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	// Resolve the specs path before validation
	if scenario.Specs != "" && !filepath.IsAbs(scenario.Specs) && basePath != "" {
		scenario.Specs = filepath.Join(basePath, scenario.Specs)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// ParseScenario decodes scenario YAML without validating it.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Specs == "" && len(s.Entries) == 0 {
		return fmt.Errorf("specs or entries is required")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if s.Specs != "" {
		info, err := os.Stat(s.Specs)
		if os.IsNotExist(err) {
			return fmt.Errorf("specs directory not found: %s", s.Specs)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("specs must be a directory: %s", s.Specs)
		}
	}

	for i, e := range s.Entries {
		if e.Key == "" {
			return fmt.Errorf("entries[%d]: key is required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertLookup:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: key is required for lookup", index)
		}
		if a.Form == "" && a.Gloss == "" {
			return fmt.Errorf("assertions[%d]: form or gloss is required for lookup", index)
		}
	case AssertTranslate:
		if a.Input == "" {
			return fmt.Errorf("assertions[%d]: input is required for translate", index)
		}
	case AssertDiagnostic:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for diagnostic", index)
		}
	case AssertNoDiagnostic:
		if a.Code == "" && a.Key == "" {
			return fmt.Errorf("assertions[%d]: code or key is required for no_diagnostic", index)
		}
	case AssertMissing:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: key is required for missing", index)
		}
	case AssertEntryCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for entry_count", index)
		}
	case AssertCollision:
		if len(a.Keys) != 2 {
			return fmt.Errorf("assertions[%d]: keys must name two entries for collision", index)
		}
		if a.Kind != "" && a.Kind != "homophone" && a.Kind != "duplicate" {
			return fmt.Errorf("assertions[%d]: kind must be homophone or duplicate", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
