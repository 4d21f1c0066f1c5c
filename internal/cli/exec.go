package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mjovanc/njord/internal/dberr"
	"github.com/mjovanc/njord/internal/query"
	"github.com/mjovanc/njord/internal/row"
	"github.com/mjovanc/njord/internal/store"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	SchemaPath string
}

// ExecResult is the JSON payload of the exec command.
type ExecResult struct {
	QueryID string              `json:"query_id"`
	SQL     string              `json:"sql"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec <query-file>",
		Short: "Run a query file against the configured database",
		Long: `Render a YAML or CUE query file and run it against the database
selected by --config, --driver and --dsn.

Rows are printed as tab-separated text, or as a JSON array of objects
with --format json. --schema applies a DDL file first, which is useful
with the default in-memory SQLite database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SchemaPath, "schema", "", "DDL file applied before the query runs")

	return cmd
}

func runExec(opts *ExecOptions, path string, cmd *cobra.Command) error {
	out := newPrinter(opts.RootOptions, cmd)

	cfg, err := resolveConfig(opts.RootOptions)
	if err != nil {
		return out.Fail(ErrCodeConfig, err.Error(), nil)
	}

	q, err := loadSelect(path, out)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := store.Open(ctx, cfg.Store())
	if err != nil {
		return out.Fail(ErrCodeConnection, err.Error(), cfg.Driver)
	}
	defer db.Close()

	if opts.SchemaPath != "" {
		ddl, err := os.ReadFile(opts.SchemaPath)
		if err != nil {
			return out.Fail(ErrCodeNotFound, err.Error(), opts.SchemaPath)
		}
		if err := db.ApplySchema(ctx, string(ddl)); err != nil {
			return out.Fail(ErrCodeQueryFailed, err.Error(), opts.SchemaPath)
		}
		out.Debugf("Applied schema %s", opts.SchemaPath)
	}

	queryID := query.UUIDv7Generator{}.Generate()
	execOpts := []query.Option{
		query.WithLogger(newLogger(opts.RootOptions, cfg, out.diag())),
		query.WithIDGenerator(query.NewSequenceGenerator(queryID)),
	}
	if cfg.StrictMapping {
		execOpts = append(execOpts, query.WithStrictMapping())
	}

	rows, err := q.Build(ctx, db, execOpts...)
	if err != nil {
		return outputExecError(out, err)
	}

	columns := resultColumns(rows)
	if out.JSON {
		objects := make([]map[string]string, len(rows))
		for i := range rows {
			objects[i] = rows[i].Map()
		}
		return out.Result(ExecResult{
			QueryID: queryID,
			SQL:     q.BuildQuery(),
			Columns: columns,
			Rows:    objects,
		})
	}

	table := make([][]string, len(rows))
	for i := range rows {
		line := make([]string, len(columns))
		for j, c := range columns {
			line[j], _ = rows[i].Get(c)
		}
		table[i] = line
	}
	out.Rows(columns, table)
	out.Debugf("%d row(s), query_id=%s", len(rows), queryID)
	return nil
}

// resultColumns returns every column seen across rows in first-seen order.
func resultColumns(rows []row.Dynamic) []string {
	columns := []string{}
	seen := make(map[string]bool)
	for i := range rows {
		for _, c := range rows[i].ColumnFields() {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}
	return columns
}

func outputExecError(out *Printer, err error) error {
	var dbErr *dberr.Error
	if !errors.As(err, &dbErr) {
		return out.Fail(ErrCodeGeneric, err.Error(), nil)
	}

	switch dbErr.Kind {
	case dberr.KindConnection:
		return out.Fail(ErrCodeConnection, dbErr.Error(), nil)
	default:
		return out.Fail(ErrCodeQueryFailed, dbErr.Error(), dbErr.SQL)
	}
}
