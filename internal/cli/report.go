package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hagness/depwarn/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	DBPath string
	Limit  int
}

// RunHistoryEntry is one run in the report payload.
type RunHistoryEntry struct {
	ID        string `json:"id"`
	Suite     string `json:"suite"`
	StartedAt string `json:"started_at"`
	Total     int    `json:"total"`
	Passed    int    `json:"passed"`
	Failed    int    `json:"failed"`
	Errored   int    `json:"errored"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show recent suite runs from the history database",
		Long: `Read run history persisted by "depwarn run --db".

Exit codes:
  0 - History read successfully
  2 - Command error (missing or unreadable database)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite history database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to show")
	cmd.MarkFlagRequired("db")

	return cmd
}

func showReport(opts *ReportOptions, cmd *cobra.Command) error {
	db, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open run database", err)
	}
	defer db.Close()

	runs, err := db.RecentRuns(context.Background(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run history", err)
	}

	entries := make([]RunHistoryEntry, 0, len(runs))
	for _, r := range runs {
		entries = append(entries, RunHistoryEntry{
			ID:        r.ID,
			Suite:     r.Suite,
			StartedAt: r.StartedAt.UTC().Format(time.RFC3339),
			Total:     r.Total,
			Passed:    r.Passed,
			Failed:    r.Failed,
			Errored:   r.Errored,
		})
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: entries})
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	for _, e := range entries {
		status := "pass"
		if e.Failed > 0 || e.Errored > 0 {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s  %-20s %s  %d/%d passed, %d failed, %d errored\n",
			e.StartedAt, e.Suite, status, e.Passed, e.Total, e.Failed, e.Errored)
	}
	return nil
}
