package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Process exit codes.
const (
	ExitSuccess      = 0 // tables match, every scenario passed
	ExitFailure      = 1 // tables differ or a scenario failed
	ExitCommandError = 2 // unreadable input, bad flags or configuration
)

// ExitError carries the process exit code out of a command's RunE.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError returns an ExitError with no cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError wrapping err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps err to a process exit code. Errors that carry no
// ExitError count as failures.
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

// Reported reports whether err is a plain verdict failure (tables differ,
// scenarios failed) that the command already printed, so it needs no
// further message.
func Reported(err error) bool {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	return exitErr.Code == ExitFailure && exitErr.Err == nil
}

// CLIResponse is the envelope of every --format json response.
type CLIResponse struct {
	Status  string    `json:"status"` // "ok" or "error"
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
	TraceID string    `json:"trace_id,omitempty"`
}

// CLIError describes why a response has status "error".
type CLIError struct {
	Code    string `json:"code"` // E_TABLES_DIFFER, E_TEST_FAILED
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OutputFormatter writes JSON responses.
type OutputFormatter struct {
	Writer io.Writer
}

// Respond writes resp as indented JSON followed by a newline.
func (f *OutputFormatter) Respond(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}

// Verdict writes data as a response that is "ok" when failure is empty and
// an error with the given code otherwise. A non-empty failure is also
// returned as an ExitFailure error so the process exits 1.
func (f *OutputFormatter) Verdict(data any, traceID, code, failure string) error {
	resp := CLIResponse{Status: "ok", Data: data, TraceID: traceID}
	if failure != "" {
		resp.Status = "error"
		resp.Error = &CLIError{Code: code, Message: failure}
	}
	if err := f.Respond(resp); err != nil {
		return err
	}
	if failure != "" {
		return NewExitError(ExitFailure, failure)
	}
	return nil
}
