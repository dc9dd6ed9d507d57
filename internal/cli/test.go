package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tablediff/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run table comparison scenarios",
		Long: `Run every YAML scenario in a directory.

Each scenario declares an expected table, the actual items and the expected
verdict. When golden/<scenario>.golden exists next to a scenario file, the
result snapshot must also match it.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  tablediff test ./scenarios
  tablediff test ./scenarios --filter "orders-*"
  tablediff test ./scenarios --update
  tablediff test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.load(cmd); err != nil {
				return err
			}
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(scenariosDir); errors.Is(err, fs.ErrNotExist) {
		return NewExitError(ExitCommandError, "scenarios directory not found: "+scenariosDir)
	}

	files, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	traceID := opts.traceID()
	jsonOut := opts.Format == "json"
	if len(files) == 0 && !jsonOut {
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	r := &scenarioRunner{
		harness: harness.New(opts.Logger),
		update:  opts.Update,
	}
	if !jsonOut {
		r.out = cmd.OutOrStdout()
	}

	summary := TestResult{Scenarios: []ScenarioResult{}, Total: len(files)}
	for _, file := range files {
		res := r.run(file)
		summary.Scenarios = append(summary.Scenarios, res)
		if res.Pass {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	opts.Logger.Debug("scenarios finished",
		"dir", scenariosDir,
		"passed", summary.Passed,
		"failed", summary.Failed,
		"trace_id", traceID)

	var failure string
	if summary.Failed > 0 {
		failure = fmt.Sprintf("%d scenario(s) failed", summary.Failed)
	}
	if jsonOut {
		formatter := &OutputFormatter{Writer: cmd.OutOrStdout()}
		return formatter.Verdict(summary, traceID, "E_TEST_FAILED", failure)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\nTest Summary: %d passed, %d failed, %d total\n", summary.Passed, summary.Failed, summary.Total)
	if failure != "" {
		return NewExitError(ExitFailure, failure)
	}
	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}

// findScenarioFiles lists the .yaml and .yml files under dir whose base
// name, without extension, matches filter. golden/ directories are skipped.
func findScenarioFiles(dir, filter string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir():
			if path != dir && d.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			if ok, _ := filepath.Match(filter, strings.TrimSuffix(d.Name(), ext)); !ok {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// scenarioRunner runs scenario files one at a time. Progress lines go to out
// when it is non-nil.
type scenarioRunner struct {
	harness *harness.Harness
	update  bool
	out     io.Writer
}

func (r *scenarioRunner) run(file string) ScenarioResult {
	s, err := harness.LoadScenario(file)
	if err != nil {
		return r.fail(filepath.Base(file), "failed to load scenario: "+err.Error())
	}

	result, err := r.harness.Run(s)
	if err != nil {
		return r.fail(s.Name, "execution failed: "+err.Error())
	}

	snapshot := harness.Snapshot(s.Name, result)
	golden := goldenFilePath(file)

	if r.update {
		if err := writeGolden(golden, snapshot); err != nil {
			return r.fail(s.Name, err.Error())
		}
		if !result.Pass {
			return r.fail(s.Name, result.Errors...)
		}
		return r.pass(s.Name, " (golden updated)")
	}
	if !result.Pass {
		return r.fail(s.Name, result.Errors...)
	}

	want, err := os.ReadFile(golden)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return r.pass(s.Name, "")
	case err != nil:
		return r.fail(s.Name, "failed to read golden file: "+err.Error())
	case !bytes.Equal(want, snapshot):
		return r.fail(s.Name, "snapshot does not match golden file (run with --update to regenerate)")
	}
	return r.pass(s.Name, "")
}

func (r *scenarioRunner) pass(name, note string) ScenarioResult {
	if r.out != nil {
		fmt.Fprintf(r.out, "✓ %s%s\n", name, note)
	}
	return ScenarioResult{Name: name, Pass: true}
}

func (r *scenarioRunner) fail(name string, errs ...string) ScenarioResult {
	if r.out != nil {
		fmt.Fprintf(r.out, "✗ %s\n", name)
		for _, e := range errs {
			for _, line := range strings.Split(strings.TrimRight(e, "\n"), "\n") {
				fmt.Fprintf(r.out, "  %s\n", line)
			}
		}
	}
	return ScenarioResult{Name: name, Errors: errs}
}

// goldenFilePath maps dir/name.yaml to dir/golden/name.golden.
func goldenFilePath(scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

func writeGolden(path string, snapshot []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, snapshot, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}
