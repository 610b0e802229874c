// Package errs defines the error categories surfaced by the CLI and
// their process exit codes.
package errs

import (
	"errors"
	"fmt"
)

// UsageError indicates bad or missing user input. The message should
// tell the user how to correct the invocation.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// ExitCode for usage errors after the usage text has been printed.
func (e *UsageError) ExitCode() int { return 1 }

// EnvironmentError indicates an unmet precondition about the execution
// context, such as running outside a git repository.
type EnvironmentError struct {
	Msg string
}

func (e *EnvironmentError) Error() string { return e.Msg }

func (e *EnvironmentError) ExitCode() int { return 1 }

// NotFoundError indicates a referenced restore point does not exist.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("restore point not found: %s", e.Ref)
}

func (e *NotFoundError) ExitCode() int { return 1 }

// ToolError wraps a failed external command invocation. The underlying
// failure aborts the remaining steps; no rollback is attempted.
type ToolError struct {
	Op  string
	Err error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

func (e *ToolError) ExitCode() int { return 1 }

// Usage creates a UsageError.
func Usage(format string, args ...interface{}) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Environment creates an EnvironmentError.
func Environment(format string, args ...interface{}) *EnvironmentError {
	return &EnvironmentError{Msg: fmt.Sprintf(format, args...)}
}

// Tool wraps err as a ToolError for the named operation.
func Tool(op string, err error) *ToolError {
	return &ToolError{Op: op, Err: err}
}

type exitCoder interface {
	ExitCode() int
}

// ExitCode returns the process exit code for err. Errors outside the
// taxonomy (flag parsing, unknown commands) map to 2.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 2
}
