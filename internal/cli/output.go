package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/pterm/pterm"

	"vendorly/internal/client"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the server refused the request
	ExitCommandError = 2 // bad flags, no session, server unreachable
)

const (
	ErrCodeGeneric     = "E001"
	ErrCodeValidation  = "E002" // rejected before sending
	ErrCodeAPI         = "E003" // non-2xx response
	ErrCodeUnreachable = "E004"
	ErrCodeSession     = "E005" // no usable login
)

type ExitError struct {
	Code    int
	Message string
	Err     error

	reported bool // already printed by an OutputFormatter
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// Reported reports whether err was already printed to the user.
func Reported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.reported
}

// GetExitCode returns ExitFailure for errors that carry no code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the envelope printed in json format.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"` // HTTP status, when there was one
}

// Success prints data in json format, or calls text to render it for a
// terminal.
func (f *OutputFormatter) Success(data any, text func(w io.Writer) error) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: data})
	}
	if text == nil {
		_, err := fmt.Fprintln(f.Writer, data)
		return err
	}
	return text(f.Writer)
}

// Fail prints err and returns the ExitError the command should exit with.
func (f *OutputFormatter) Fail(err error) error {
	cliErr, code := classify(err)

	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: cliErr})
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", cliErr.Code, cliErr.Message)
		if f.Verbose && cliErr.Status != 0 {
			fmt.Fprintf(f.Writer, "HTTP status: %d\n", cliErr.Status)
		}
	}
	exitErr := WrapExitError(code, cliErr.Code, err)
	exitErr.reported = true
	return exitErr
}

func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

func classify(err error) (*CLIError, int) {
	var apiErr *client.APIError
	var netErr net.Error
	var exitErr *ExitError

	switch {
	case errors.Is(err, errNotLoggedIn):
		return &CLIError{Code: ErrCodeSession, Message: err.Error()}, ExitCommandError
	case errors.As(err, &exitErr):
		return &CLIError{Code: ErrCodeGeneric, Message: exitErr.Error()}, exitErr.Code
	case errors.Is(err, client.ErrValidation):
		return &CLIError{Code: ErrCodeValidation, Message: err.Error()}, ExitFailure
	case errors.As(err, &apiErr):
		return &CLIError{Code: ErrCodeAPI, Message: apiErr.Error(), Status: apiErr.Status}, ExitFailure
	case errors.As(err, &netErr):
		return &CLIError{Code: ErrCodeUnreachable, Message: err.Error()}, ExitCommandError
	}
	return &CLIError{Code: ErrCodeGeneric, Message: err.Error()}, ExitCommandError
}

// renderTable writes rows under header as an aligned table.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(none)")
		return err
	}

	data := pterm.TableData{header}
	data = append(data, rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
