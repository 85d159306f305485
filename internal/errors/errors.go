package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for guestctl
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitRunError     = 2
	ExitConfigError  = 3
	ExitGuestError   = 4
	ExitPlanError    = 5
)

// GuestctlError is the base error type for guestctl
type GuestctlError struct {
	Code    int
	Message string
	Cause   error
}

func (e *GuestctlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GuestctlError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *GuestctlError) ExitCode() int {
	return e.Code
}

// New creates a new GuestctlError
func New(code int, message string) *GuestctlError {
	return &GuestctlError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a GuestctlError
func Wrap(code int, message string, cause error) *GuestctlError {
	return &GuestctlError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// GeneralError is a classification failure unrelated to any particular
// remote command: no package manager discovered on a guest, or an operation
// the active backend does not support. It is always raised before any
// script is built, so no partial remote state can result from it.
type GeneralError struct {
	Message string
	Cause   error
}

func (e *GeneralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GeneralError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *GeneralError) ExitCode() int {
	return ExitGeneralError
}

// GeneralErrorf creates a GeneralError with a formatted message
func GeneralErrorf(format string, args ...any) *GeneralError {
	return &GeneralError{Message: fmt.Sprintf(format, args...)}
}

// RunError reports a remote script that exited nonzero. It carries the
// exact command and the captured output, and is surfaced to the caller
// verbatim - the layer never swallows or retries it.
type RunError struct {
	Command    string
	ReturnCode int
	Stdout     string
	Stderr     string
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", e.Command, e.ReturnCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + firstLine(stderr)
	}
	return msg
}

// ExitCode returns the exit code for this error
func (e *RunError) ExitCode() int {
	return ExitRunError
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Common error constructors

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *GuestctlError {
	return Wrap(ExitConfigError, message, cause)
}

// GuestError returns an error for guest connection or execution setup failures
func GuestError(message string, cause error) *GuestctlError {
	return Wrap(ExitGuestError, message, cause)
}

// PlanError returns an error for preparation plan issues
func PlanError(message string, cause error) *GuestctlError {
	return Wrap(ExitPlanError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *GuestctlError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
