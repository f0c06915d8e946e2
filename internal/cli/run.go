package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hagness/depwarn/internal/deprec"
	"github.com/hagness/depwarn/internal/harness"
	"github.com/hagness/depwarn/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	DBPath         string
	Filter         string
	ScratchRoot    string
	StrictCategory string
}

// SuiteSummary is the per-suite slice of the run report.
type SuiteSummary struct {
	Suite   string               `json:"suite"`
	RunID   string               `json:"run_id"`
	Pass    bool                 `json:"pass"`
	Passed  int                  `json:"passed"`
	Failed  int                  `json:"failed"`
	Errored int                  `json:"errored"`
	Cases   []harness.CaseResult `json:"cases"`
}

// RunReport is the overall result of a run invocation.
type RunReport struct {
	Suites  []SuiteSummary `json:"suites"`
	Passed  int            `json:"passed"`
	Failed  int            `json:"failed"`
	Errored int            `json:"errored"`
	Total   int            `json:"total"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <manifests-dir>",
		Short: "Run deprecation suites",
		Long: `Run every suite manifest found under the given directory.

Deprecation signals are escalated to errors for the duration of the run;
a case whose target completes without raising is reported as
failed_missing_signal.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed or errored
  2 - Command error (invalid paths, database trouble, etc.)

Examples:
  depwarn run ./suites
  depwarn run ./suites --filter "ecl_*"
  depwarn run ./suites --db ./history.db
  depwarn run ./suites --strict-category removal
  depwarn run ./suites --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "persist run history to this SQLite database")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter manifests by glob pattern")
	cmd.Flags().StringVar(&opts.ScratchRoot, "scratch-root", "", "root directory for scratch areas (default: system temp)")
	cmd.Flags().StringVar(&opts.StrictCategory, "strict-category", "deprecation", "signal category to escalate during the run (deprecation|removal)")

	return cmd
}

func runSuites(opts *RunOptions, manifestsDir string, cmd *cobra.Command) error {
	if err := requireDir(manifestsDir, "manifests"); err != nil {
		return err
	}

	strictCat, err := deprec.ParseCategory(opts.StrictCategory)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --strict-category", err)
	}

	files, err := findManifestFiles(manifestsDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find manifests", err)
	}
	if len(files) == 0 {
		if opts.Format == "json" {
			return outputRunJSON(cmd, RunReport{Suites: []SuiteSummary{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No manifests found.")
		return nil
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	}

	var db *store.Store
	if opts.DBPath != "" {
		db, err = store.Open(opts.DBPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open run database", err)
		}
		defer db.Close()
	}

	runner := harness.NewRunner(harness.DefaultRegistry(),
		harness.WithLogger(logger),
		harness.WithScratchRoot(opts.ScratchRoot),
		harness.WithStrictCategory(strictCat),
	)

	report := RunReport{}
	for _, file := range files {
		summary, err := runManifest(runner, db, file, opts, cmd)
		if err != nil {
			return err
		}
		report.Suites = append(report.Suites, summary)
		report.Passed += summary.Passed
		report.Failed += summary.Failed
		report.Errored += summary.Errored
		report.Total += summary.Passed + summary.Failed + summary.Errored
	}

	if opts.Format == "json" {
		return outputRunJSON(cmd, report)
	}
	return outputRunText(cmd, report)
}

func runManifest(runner *harness.Runner, db *store.Store, file string, opts *RunOptions, cmd *cobra.Command) (SuiteSummary, error) {
	w := cmd.OutOrStdout()

	manifest, err := harness.LoadManifest(file)
	if err != nil {
		return SuiteSummary{}, WrapExitError(ExitCommandError,
			fmt.Sprintf("failed to load manifest %s", filepath.Base(file)), err)
	}

	started := time.Now()
	result, err := runner.RunSuite(manifest)
	if err != nil {
		// Unknown target or similar setup-time fatal.
		return SuiteSummary{}, WrapExitError(ExitCommandError,
			fmt.Sprintf("suite %s misconfigured", manifest.Suite), err)
	}

	if db != nil {
		if err := db.SaveRun(context.Background(), result, started); err != nil {
			return SuiteSummary{}, WrapExitError(ExitCommandError,
				fmt.Sprintf("failed to persist run for suite %s", manifest.Suite), err)
		}
	}

	if opts.Format != "json" {
		for _, cr := range result.Results {
			mark := "✓"
			if cr.Outcome != harness.Passed {
				mark = "✗"
			}
			fmt.Fprintf(w, "%s %s/%s\n", mark, result.Suite, cr.Name)
			if cr.Outcome != harness.Passed {
				fmt.Fprintf(w, "  %s: expected %s, got %s\n", cr.Outcome, cr.Expected, cr.Actual)
			}
		}
	}

	return SuiteSummary{
		Suite:   result.Suite,
		RunID:   result.RunID,
		Pass:    result.Pass(),
		Passed:  result.Passed,
		Failed:  result.Failed,
		Errored: result.Errored,
		Cases:   result.Results,
	}, nil
}

func outputRunJSON(cmd *cobra.Command, report RunReport) error {
	status := "ok"
	response := CLIResponse{Status: status, Data: report}

	if report.Failed > 0 || report.Errored > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_CASES_FAILED",
			Message: fmt.Sprintf("%d case(s) failed, %d errored", report.Failed, report.Errored),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if report.Failed > 0 || report.Errored > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", report.Failed+report.Errored))
	}
	return nil
}

func outputRunText(cmd *cobra.Command, report RunReport) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run Summary: %d passed, %d failed, %d errored, %d total\n",
		report.Passed, report.Failed, report.Errored, report.Total)

	if report.Failed > 0 || report.Errored > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) failed", report.Failed+report.Errored))
	}

	fmt.Fprintln(w, "✓ All cases passed")
	return nil
}
