package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hagness/depwarn/internal/harness"
)

// SuiteListing describes one manifest for the list command.
type SuiteListing struct {
	Suite       string   `json:"suite"`
	Description string   `json:"description"`
	File        string   `json:"file"`
	Cases       []string `json:"cases"`
}

// Listing is the full list command payload.
type Listing struct {
	Suites  []SuiteListing `json:"suites"`
	Targets []string       `json:"targets"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list <manifests-dir>",
		Short:         "List suites, cases and registered targets",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSuites(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func listSuites(opts *RootOptions, manifestsDir string, cmd *cobra.Command) error {
	if err := requireDir(manifestsDir, "manifests"); err != nil {
		return err
	}

	files, err := findManifestFiles(manifestsDir, "")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find manifests", err)
	}

	listing := Listing{Targets: harness.DefaultRegistry().Names()}
	for _, file := range files {
		m, err := harness.LoadManifest(file)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", file), err)
		}
		sl := SuiteListing{
			Suite:       m.Suite,
			Description: m.Description,
			File:        file,
		}
		for _, c := range m.Cases {
			sl.Cases = append(sl.Cases, c.Name)
		}
		listing.Suites = append(listing.Suites, sl)
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: listing})
	}

	for _, sl := range listing.Suites {
		fmt.Fprintf(w, "%s (%s)\n", sl.Suite, sl.File)
		fmt.Fprintf(w, "  %s\n", sl.Description)
		for _, name := range sl.Cases {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}
	fmt.Fprintln(w, "Registered targets:")
	for _, name := range listing.Targets {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}
