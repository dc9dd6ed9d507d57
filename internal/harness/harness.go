package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/tablediff/internal/diff"
	"github.com/roach88/tablediff/internal/locale"
	"github.com/roach88/tablediff/internal/report"
	"github.com/roach88/tablediff/internal/source"
)

// Harness executes scenarios. The zero value is not usable; use New.
type Harness struct {
	logger *slog.Logger
}

// New returns a harness that logs each comparison to logger at debug level.
// A nil logger discards output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a silent harness.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Build the expected table and resolve locale and style
//  2. Compare the table against the actual items
//  3. Render the report when anything differs
//  4. Check the expect clause and evaluate assertions
//
// An error is returned only when the scenario cannot be executed, for
// example a ragged table. Failed expectations are reported in Result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	tbl, err := scenario.Table.Table()
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}

	loc, err := locale.Parse(scenario.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve locale: %w", err)
	}

	style, err := report.ParseStyle(scenario.Style)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve style: %w", err)
	}

	// A scenario without an actual list compares against zero items.
	actual := scenario.Actual
	if actual == nil {
		actual = []source.Item{}
	}
	cmp := diff.Compute(tbl, actual, diff.WithLocale[source.Item](loc))

	result := NewResult()
	result.Equal = cmp.Empty()
	result.Missing = append(result.Missing, cmp.Missing()...)
	result.Extra = len(cmp.Extras())
	if !result.Equal {
		result.Report, _ = report.New[source.Item](style, loc).Render(cmp)
	}

	h.logger.Debug("scenario compared",
		"scenario", scenario.Name,
		"rows", tbl.RowCount(),
		"items", len(scenario.Actual),
		"matched", len(cmp.Matched()),
		"missing", len(result.Missing),
		"extra", result.Extra,
		"locale", loc.String(),
		"style", string(style))

	if scenario.Expect != nil {
		for _, err := range checkExpect(result, scenario.Expect) {
			result.AddError(err.Error())
		}
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}
