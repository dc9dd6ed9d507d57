package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tablediff/internal/locale"
	"github.com/roach88/tablediff/internal/report"
	"github.com/roach88/tablediff/internal/source"
)

// Scenario defines one table comparison and its expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description says what the comparison demonstrates.
	Description string `yaml:"description"`

	// Locale is a BCP 47 tag used to format item values. Empty means
	// invariant formatting.
	Locale string `yaml:"locale,omitempty"`

	// Style is the report style: aligned (default), raw or box.
	Style string `yaml:"style,omitempty"`

	// Table is the expected table.
	Table source.TableDoc `yaml:"table"`

	// Actual is the list of items compared against Table. Keys are matched
	// to headers with smart name matching.
	Actual []source.Item `yaml:"actual"`

	// Expect states the verdict and, optionally, the exact report.
	Expect *ExpectClause `yaml:"expect"`

	// Assertions add finer checks on the comparison result.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectClause specifies the expected comparison outcome.
type ExpectClause struct {
	// Pass is true when the table and the items are expected to match.
	Pass bool `yaml:"pass"`

	// Report is the expected rendered report. Empty skips the check.
	// Trailing newlines are ignored on both sides.
	Report string `yaml:"report,omitempty"`
}

// Assertion checks one property of the comparison result.
type Assertion struct {
	// Type is one of missing_rows, extra_count, report_contains.
	Type string `yaml:"type"`

	// Rows are the expected 0-based missing row indices (missing_rows).
	Rows []int `yaml:"rows,omitempty"`

	// Count is the expected number of extra items (extra_count).
	Count int `yaml:"count,omitempty"`

	// Text is the expected report substring (report_contains).
	Text string `yaml:"text,omitempty"`
}

// Assertion types.
const (
	AssertMissingRows    = "missing_rows"
	AssertExtraCount     = "extra_count"
	AssertReportContains = "report_contains"
)

// LoadScenario reads a scenario file. Unknown keys are rejected so a
// misspelled field fails loudly instead of being ignored.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario is LoadScenario over YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario rejects scenarios that cannot be run.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Table.Headers) == 0 {
		return fmt.Errorf("table.headers is required and must be non-empty")
	}

	if s.Expect == nil {
		return fmt.Errorf("expect is required")
	}

	if _, err := locale.Parse(s.Locale); err != nil {
		return fmt.Errorf("locale: %w", err)
	}

	if _, err := report.ParseStyle(s.Style); err != nil {
		return fmt.Errorf("style: %w", err)
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion checks the fields each assertion type needs.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertMissingRows:
		for _, r := range a.Rows {
			if r < 0 {
				return fmt.Errorf("assertions[%d]: rows must be non-negative for missing_rows", index)
			}
		}
	case AssertExtraCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for extra_count", index)
		}
	case AssertReportContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for report_contains", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
