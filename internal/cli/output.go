package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"dlt-orchestrator/pkg/apperror"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The engine refused the request
	ExitCommandError = 2 // Bad flags, config or connectivity
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
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

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string      `json:"status"` // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError is the error structure for JSON output.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes data as JSON, or calls text for the text format.
func (f *OutputFormatter) Success(data interface{}, text func(w io.Writer)) error {
	if f.Format == "json" {
		return f.writeJSON(CLIResponse{Status: "ok", Data: data})
	}
	text(f.Writer)
	return nil
}

// Failure reports err in the configured format. Engine errors keep their code.
func (f *OutputFormatter) Failure(err error) error {
	if f.Format != "json" {
		return nil
	}
	code := apperror.CodeOf(err)
	if code == "" {
		code = "CLI_ERROR"
	}
	return f.writeJSON(CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: err.Error()}})
}

func (f *OutputFormatter) writeJSON(v interface{}) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
