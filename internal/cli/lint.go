package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mjovanc/njord/internal/condition"
)

// LintWarning is one problem found in a query file condition.
type LintWarning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// LintResult is the JSON payload of the lint command.
type LintResult struct {
	OK       bool          `json:"ok"`
	Warnings []LintWarning `json:"warnings,omitempty"`
}

// NewLintCommand creates the lint command.
func NewLintCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <query-file>",
		Short: "Check query file conditions for SQL a backend will reject",
		Long: `Validate every where, having and join condition in a query file,
including those of nested sub-queries and set operands.

Reports empty column names, empty IN lists and combinators with a
missing operand. Exits with code 1 when any warning is found.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runLint(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := newPrinter(opts, cmd)

	qf, err := LoadQueryFile(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return out.Fail(loadErr.Code, loadErr.Message, loadErr.Path)
		}
		return out.Fail(ErrCodeGeneric, err.Error(), nil)
	}

	conds, err := qf.Conditions()
	if err != nil {
		return out.Fail(ErrCodeInvalidQuery, err.Error(), path)
	}

	// Map iteration order is random; sort for stable output.
	paths := make([]string, 0, len(conds))
	for p := range conds {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var warnings []LintWarning
	for _, p := range paths {
		out.Debugf("Checking %s", p)
		result := condition.Validate(conds[p])
		for _, w := range result.Warnings {
			warnings = append(warnings, LintWarning{Path: p, Message: w})
		}
	}

	if len(warnings) == 0 {
		if out.JSON {
			return out.Result(LintResult{OK: true})
		}
		return out.Result(fmt.Sprintf("✓ %d condition(s) clean", len(paths)))
	}

	if out.JSON {
		return out.Fail(ErrCodeLint, fmt.Sprintf("%d warning(s)", len(warnings)), LintResult{Warnings: warnings})
	}
	for _, w := range warnings {
		fmt.Fprintf(out.Out, "%s: %s\n", w.Path, w.Message)
	}
	return out.Fail(ErrCodeLint, fmt.Sprintf("%d warning(s)", len(warnings)), nil)
}
