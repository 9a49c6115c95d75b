package errors

import (
	"errors"
	"fmt"
)

// Exit codes for parallax
const (
	ExitSuccess              = 0
	ExitGeneralError         = 1
	ExitNotFound             = 2
	ExitInvalidTaskName      = 3
	ExitOutsideWorkspaceRoot = 4
	ExitMissingProvenance    = 5
	ExitGitFailed            = 6
	ExitConfigError          = 7
	ExitWorkspaceFailed      = 8
)

// Sentinels for the error families callers branch on. Errors produced by
// other packages report membership through errors.Is.
var (
	ErrInvalidTaskName      = errors.New("invalid task name")
	ErrOutsideWorkspaceRoot = errors.New("path is outside the workspace root")
	ErrMissingProvenance    = errors.New("workspace is missing source repo path or branch name")
)

// ParallaxError is the base error type for parallax
type ParallaxError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ParallaxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParallaxError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ParallaxError) ExitCode() int {
	return e.Code
}

// New creates a new ParallaxError
func New(code int, message string) *ParallaxError {
	return &ParallaxError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ParallaxError
func Wrap(code int, message string, cause error) *ParallaxError {
	return &ParallaxError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// OutsideWorkspaceRoot returns an error for a path that resolves outside the
// workspace root. path should be the canonical form that failed the check.
func OutsideWorkspaceRoot(path string) *ParallaxError {
	return Wrap(ExitOutsideWorkspaceRoot, fmt.Sprintf("invalid workspace path %s", path), ErrOutsideWorkspaceRoot)
}

// MissingProvenance returns an error for a merge-back without a source repo or branch
func MissingProvenance(workspacePath string) *ParallaxError {
	return Wrap(ExitMissingProvenance, fmt.Sprintf("cannot merge back %s", workspacePath), ErrMissingProvenance)
}

// GitFailed returns an error for a failed git invocation
func GitFailed(op string, cause error) *ParallaxError {
	return Wrap(ExitGitFailed, fmt.Sprintf("git %s failed", op), cause)
}

// WorkspaceError returns an error for workspace filesystem operations
func WorkspaceError(op string, cause error) *ParallaxError {
	return Wrap(ExitWorkspaceFailed, fmt.Sprintf("workspace %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *ParallaxError {
	return Wrap(ExitConfigError, message, cause)
}

// NotFound returns an error for a repository or workspace that could not be resolved
func NotFound(kind, name string) *ParallaxError {
	return New(ExitNotFound, fmt.Sprintf("%s not found: %s", kind, name))
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *ParallaxError {
	return New(ExitGeneralError, message)
}

// familyCodes maps sentinel families to exit codes for errors that never
// passed through a ParallaxError constructor.
var familyCodes = []struct {
	target error
	code   int
}{
	{ErrInvalidTaskName, ExitInvalidTaskName},
	{ErrOutsideWorkspaceRoot, ExitOutsideWorkspaceRoot},
	{ErrMissingProvenance, ExitMissingProvenance},
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var parallaxErr *ParallaxError
	if errors.As(err, &parallaxErr) {
		return parallaxErr.ExitCode()
	}
	for _, f := range familyCodes {
		if err != nil && errors.Is(err, f.target) {
			return f.code
		}
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
