package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// Error codes reported by commands. The code alone decides the process exit
// status, see exitStatus.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeNotFound     = "E002" // Query, schema or config file not found or unreadable
	ErrCodeParseFailed  = "E003" // YAML/CUE parse or decode failed
	ErrCodeInvalidQuery = "E004" // Query file decoded but describes no valid statement
	ErrCodeConfig       = "E005" // Configuration file or flags invalid
	ErrCodeConnection   = "E006" // Database unreachable
	ErrCodeQueryFailed  = "E007" // Backend rejected the statement
	ErrCodeLint         = "E008" // Lint reported warnings
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the query ran and failed, or lint found problems
	ExitCommandError = 2 // the input must be fixed before retrying
)

var exitStatus = map[string]int{
	ErrCodeGeneric:      ExitFailure,
	ErrCodeNotFound:     ExitCommandError,
	ErrCodeParseFailed:  ExitCommandError,
	ErrCodeInvalidQuery: ExitCommandError,
	ErrCodeConfig:       ExitCommandError,
	ErrCodeConnection:   ExitCommandError,
	ErrCodeQueryFailed:  ExitFailure,
	ErrCodeLint:         ExitFailure,
}

// CommandError is what a command returns once its failure has been
// reported through a Printer. main only needs its exit status.
type CommandError struct {
	Code    string
	Message string
}

func (e *CommandError) Error() string {
	return e.Code + ": " + e.Message
}

// ExitStatus returns the exit code bound to e.Code. Unknown codes map to
// ExitFailure.
func (e *CommandError) ExitStatus() int {
	if s, ok := exitStatus[e.Code]; ok {
		return s
	}
	return ExitFailure
}

// ExitCode returns the process exit code for an error returned by a command.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitStatus()
	}
	return ExitFailure
}

// Response is the single JSON document a command writes with --format json.
type Response struct {
	Status string   `json:"status"` // "ok" or "error"
	Data   any      `json:"data,omitempty"`
	Error  *Problem `json:"error,omitempty"`
}

// Problem describes a failed command inside a Response.
type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Printer writes command results to Out and diagnostics to Diag. In JSON
// mode Out receives exactly one Response per command.
type Printer struct {
	JSON    bool
	Out     io.Writer
	Diag    io.Writer // defaults to Out
	Verbose bool
}

func newPrinter(opts *RootOptions, cmd *cobra.Command) *Printer {
	return &Printer{
		JSON:    opts.Format == "json",
		Out:     cmd.OutOrStdout(),
		Diag:    cmd.ErrOrStderr(),
		Verbose: opts.Verbose,
	}
}

// Result writes a successful payload. Text mode prints v on one line.
func (p *Printer) Result(v any) error {
	if p.JSON {
		return json.NewEncoder(p.Out).Encode(Response{Status: "ok", Data: v})
	}
	_, err := fmt.Fprintln(p.Out, v)
	return err
}

// Fail reports a failure and returns the CommandError the command should
// return. details are printed in text mode only when verbose.
func (p *Printer) Fail(code, message string, details any) error {
	if p.JSON {
		_ = json.NewEncoder(p.Out).Encode(Response{
			Status: "error",
			Error:  &Problem{Code: code, Message: message, Details: details},
		})
	} else {
		fmt.Fprintf(p.Out, "Error [%s]: %s\n", code, message)
		if p.Verbose && details != nil {
			fmt.Fprintf(p.Out, "Details: %v\n", details)
		}
	}
	return &CommandError{Code: code, Message: message}
}

// Rows writes a result set as tab-separated text under a header line.
func (p *Printer) Rows(columns []string, rows [][]string) {
	fmt.Fprintln(p.Out, strings.Join(columns, "\t"))
	for _, r := range rows {
		fmt.Fprintln(p.Out, strings.Join(r, "\t"))
	}
}

// Debugf writes a diagnostic line when verbose.
func (p *Printer) Debugf(format string, args ...any) {
	if !p.Verbose {
		return
	}
	fmt.Fprintf(p.diag(), format+"\n", args...)
}

// diag returns the diagnostic writer.
func (p *Printer) diag() io.Writer {
	if p.Diag != nil {
		return p.Diag
	}
	return p.Out
}
