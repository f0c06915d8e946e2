package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hagness/depwarn/internal/harness"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Filter string
}

// FileValidation is the per-file result of validation.
type FileValidation struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <manifests-dir>",
		Short: "Validate suite manifests against the schema",
		Long: `Check every manifest under the directory against the CUE schema
and the semantic load rules, without running anything.

Exit codes:
  0 - All manifests valid
  1 - One or more manifests invalid
  2 - Command error (invalid paths, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateManifests(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter manifests by glob pattern")

	return cmd
}

func validateManifests(opts *ValidateOptions, manifestsDir string, cmd *cobra.Command) error {
	if err := requireDir(manifestsDir, "manifests"); err != nil {
		return err
	}

	files, err := findManifestFiles(manifestsDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find manifests", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no manifests found in %s", manifestsDir))
	}

	w := cmd.OutOrStdout()
	var results []FileValidation
	invalid := 0

	for _, file := range files {
		fv := FileValidation{File: file, Valid: true}

		// Schema first for positioned errors, then the semantic load
		// rules (unknown fields, duplicate names, regexp compilation).
		for _, verr := range harness.ValidateSchemaFile(file) {
			fv.Valid = false
			fv.Errors = append(fv.Errors, verr.Error())
		}
		if fv.Valid {
			if _, lerr := harness.LoadManifest(file); lerr != nil {
				fv.Valid = false
				fv.Errors = append(fv.Errors, lerr.Error())
			}
		}

		if !fv.Valid {
			invalid++
		}
		results = append(results, fv)

		if opts.Format != "json" {
			if fv.Valid {
				fmt.Fprintf(w, "✓ %s\n", filepath.Base(file))
			} else {
				fmt.Fprintf(w, "✗ %s\n", filepath.Base(file))
				for _, msg := range fv.Errors {
					fmt.Fprintf(w, "  %s\n", msg)
				}
			}
		}
	}

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: results}
		if invalid > 0 {
			response.Status = "error"
			response.Error = &CLIError{
				Code:    "E_INVALID_MANIFEST",
				Message: fmt.Sprintf("%d manifest(s) invalid", invalid),
			}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
	}

	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d manifest(s) invalid", invalid))
	}
	if opts.Format != "json" {
		fmt.Fprintf(w, "All %d manifest(s) valid\n", len(files))
	}
	return nil
}
