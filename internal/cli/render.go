package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// RenderResult is the JSON payload of the render command.
type RenderResult struct {
	SQL string `json:"sql"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <query-file>",
		Short: "Print the SQL a query file renders to",
		Long: `Render a YAML or CUE query file to its SELECT statement.

No database connection is opened. The output is exactly the text that
exec would send to the backend.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRender(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := newPrinter(opts, cmd)

	q, err := loadSelect(path, out)
	if err != nil {
		return err
	}

	sql := q.BuildQuery()
	if out.JSON {
		return out.Result(RenderResult{SQL: sql})
	}
	return out.Result(sql)
}

// loadSelect reads path and converts it into a builder, reporting failures
// through out.
func loadSelect(path string, out *Printer) (*DynamicSelect, error) {
	qf, err := LoadQueryFile(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, out.Fail(loadErr.Code, loadErr.Message, loadErr.Path)
		}
		return nil, out.Fail(ErrCodeGeneric, err.Error(), nil)
	}
	out.Debugf("Loaded query file %s", path)

	q, err := qf.Build()
	if err != nil {
		return nil, out.Fail(ErrCodeInvalidQuery, err.Error(), path)
	}
	return q, nil
}
