// Package system provides abstractions for OS operations to enable testing.
package system

import "context"

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Execute runs a command to completion and returns its combined output.
	// A non-zero exit is reported as *CommandError.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)

	// Start launches a command without waiting for it to finish.
	Start(name string, args ...string) error
}

var defaultExecutor CommandExecutor = &osExecutor{}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultExecutor sets the default CommandExecutor (useful for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultExecutor = &osExecutor{}
}
