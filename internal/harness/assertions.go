package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an expectation or assertion fails.
// It includes the rendered report to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Report   string // Rendered report for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Report != "" {
		fmt.Fprintf(&buf, "\nReport:\n")
		for _, line := range strings.Split(strings.TrimRight(e.Report, "\n"), "\n") {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
	}

	return buf.String()
}

// checkExpect compares the verdict and, when given, the exact report.
func checkExpect(result *Result, expect *ExpectClause) []error {
	var errs []error

	if result.Equal != expect.Pass {
		errs = append(errs, &AssertionError{
			Type:     "pass",
			Expected: fmt.Sprintf("pass: %t", expect.Pass),
			Actual:   fmt.Sprintf("pass: %t (%d missing, %d extra)", result.Equal, len(result.Missing), result.Extra),
			Report:   result.Report,
		})
	}

	if expect.Report != "" {
		want := strings.TrimRight(expect.Report, "\n")
		got := strings.TrimRight(result.Report, "\n")
		if want != got {
			errs = append(errs, &AssertionError{
				Type:     "report",
				Expected: fmt.Sprintf("%q", want),
				Actual:   fmt.Sprintf("%q", got),
				Report:   result.Report,
			})
		}
	}

	return errs
}

// assertMissingRows checks the set of unmatched row indices.
func assertMissingRows(result *Result, assertion Assertion) error {
	want := slices.Clone(assertion.Rows)
	slices.Sort(want)
	want = slices.Compact(want)

	if !slices.Equal(want, result.Missing) {
		return &AssertionError{
			Type:     AssertMissingRows,
			Expected: fmt.Sprintf("missing rows %v", want),
			Actual:   fmt.Sprintf("missing rows %v", result.Missing),
			Report:   result.Report,
		}
	}
	return nil
}

// assertExtraCount checks the number of unmatched items.
func assertExtraCount(result *Result, assertion Assertion) error {
	if result.Extra != assertion.Count {
		return &AssertionError{
			Type:     AssertExtraCount,
			Expected: fmt.Sprintf("%d extra items", assertion.Count),
			Actual:   fmt.Sprintf("%d extra items", result.Extra),
			Report:   result.Report,
		}
	}
	return nil
}

// assertReportContains checks for a substring of the rendered report.
func assertReportContains(result *Result, assertion Assertion) error {
	if !strings.Contains(result.Report, assertion.Text) {
		return &AssertionError{
			Type:     AssertReportContains,
			Expected: fmt.Sprintf("report containing %q", assertion.Text),
			Actual:   "not found in report",
			Report:   result.Report,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertMissingRows:
			err = assertMissingRows(result, assertion)
		case AssertExtraCount:
			err = assertExtraCount(result, assertion)
		case AssertReportContains:
			err = assertReportContains(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
