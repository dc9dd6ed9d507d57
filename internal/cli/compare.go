package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tablediff/internal/config"
	"github.com/roach88/tablediff/internal/diff"
	"github.com/roach88/tablediff/internal/report"
	"github.com/roach88/tablediff/internal/source"
	"github.com/roach88/tablediff/internal/table"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	Style  string
	Locale string
	Sheet  string
	Query  string
	Table  string
	Where  map[string]string
}

// CompareResult is the data payload of a compare response.
type CompareResult struct {
	Pass    bool   `json:"pass"`
	Rows    int    `json:"rows"`
	Items   int    `json:"items"`
	Missing []int  `json:"missing"`
	Extra   int    `json:"extra"`
	Report  string `json:"report,omitempty"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare <expected> <actual>",
		Short: "Compare an expected table with actual items",
		Long: `Compare an expected table with a set of actual items, in any order.

Expected tables are read from .yaml/.yml/.json, .csv, .xlsx or .cue files.
Actual items are read from .yaml/.yml/.json lists of objects, .csv or .xlsx
sheets (one item per row, keyed by header), or SQLite databases
(.db/.sqlite/.sqlite3) with --query or --table.

Headers are matched to item fields ignoring case, spaces and punctuation.

Exit codes:
  0 - Every row matched an item and no item was left over
  1 - Rows are missing or items are extra
  2 - Command error (unreadable input, bad flags, etc.)

Examples:
  tablediff compare expected.csv actual.json
  tablediff compare expected.xlsx --sheet Orders actual.yaml --style box
  tablediff compare expected.cue shop.db --query "SELECT name, qty FROM items"
  tablediff compare expected.csv shop.db --table items --where store=north
  tablediff compare expected.yaml actual.yaml --locale de-DE --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.load(cmd); err != nil {
				return err
			}
			return runCompare(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Style, "style", config.DefaultStyle, "report style (aligned|raw|box)")
	cmd.Flags().StringVar(&opts.Locale, "locale", "", "BCP 47 tag used to format actual values (default invariant)")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "worksheet of an .xlsx expected table (default first sheet)")
	cmd.Flags().StringVar(&opts.Query, "query", "", "SQL query selecting actual items from a SQLite database")
	cmd.Flags().StringVar(&opts.Table, "table", "", "SQLite table or view to read actual items from")
	cmd.Flags().StringToStringVar(&opts.Where, "where", nil, "column=value filters for --table")

	return cmd
}

func runCompare(opts *CompareOptions, expectedPath, actualPath string, cmd *cobra.Command) error {
	cfg := opts.Config
	logger := opts.Logger
	traceID := opts.traceID()

	tbl, err := loadExpected(expectedPath, cfg.Sheet)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load expected table", err)
	}

	items, err := loadActual(cmd, opts, actualPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load actual items", err)
	}

	loc := cfg.LocaleContext()
	result := diff.Compute(tbl, items, diff.WithLocale[source.Item](loc))

	out := CompareResult{
		Pass:    result.Empty(),
		Rows:    tbl.RowCount(),
		Items:   len(items),
		Missing: append([]int{}, result.Missing()...),
		Extra:   len(result.Extras()),
	}
	if !out.Pass {
		out.Report, _ = report.New[source.Item](cfg.ReportStyle(), loc).Render(result)
	}

	logger.Debug("tables compared",
		"expected", expectedPath,
		"actual", actualPath,
		"rows", out.Rows,
		"items", out.Items,
		"matched", len(result.Matched()),
		"missing", len(out.Missing),
		"extra", out.Extra,
		"trace_id", traceID)

	if opts.Format == "json" {
		return outputCompareJSON(cmd, out, traceID)
	}
	return outputCompareText(cmd, out)
}

// loadExpected honors the sheet setting for workbooks and defers to the
// extension-based loader otherwise.
func loadExpected(path, sheet string) (*table.Table, error) {
	if sheet != "" && strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return source.LoadTableXLSX(path, sheet)
	}
	return source.LoadTable(path)
}

// loadActual builds a parameterized query from --table and --where, or
// passes --query through.
func loadActual(cmd *cobra.Command, opts *CompareOptions, path string) ([]source.Item, error) {
	if opts.Table == "" {
		if len(opts.Where) > 0 {
			return nil, fmt.Errorf("--where requires --table")
		}
		return source.LoadItems(cmd.Context(), path, opts.Query)
	}
	if opts.Query != "" {
		return nil, fmt.Errorf("--query and --table are mutually exclusive")
	}

	q := source.TableQuery{Table: opts.Table, Where: make(map[string]any, len(opts.Where))}
	for k, v := range opts.Where {
		q.Where[k] = v
	}
	query, params, err := q.Compile()
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("compiled table query", "sql", query, "params", len(params))
	return source.QuerySQLite(cmd.Context(), path, query, params...)
}

// outputCompareJSON writes the result; a diff is reported as E_TABLES_DIFFER.
func outputCompareJSON(cmd *cobra.Command, out CompareResult, traceID string) error {
	var failure string
	if !out.Pass {
		failure = differMessage(out)
	}
	formatter := &OutputFormatter{Writer: cmd.OutOrStdout()}
	return formatter.Verdict(out, traceID, "E_TABLES_DIFFER", failure)
}

// outputCompareText prints the report followed by a summary line.
func outputCompareText(cmd *cobra.Command, out CompareResult) error {
	w := cmd.OutOrStdout()

	if out.Pass {
		fmt.Fprintf(w, "✓ Tables match (%d rows)\n", out.Rows)
		return nil
	}

	fmt.Fprint(w, out.Report)
	if !strings.HasSuffix(out.Report, "\n") {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "✗ %s\n", differMessage(out))
	return NewExitError(ExitFailure, differMessage(out))
}

func differMessage(out CompareResult) string {
	return fmt.Sprintf("tables differ: %d missing, %d extra", len(out.Missing), out.Extra)
}
