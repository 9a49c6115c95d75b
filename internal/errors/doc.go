// Package errors provides typed errors with exit codes for parallax.
//
// # Error Types
//
// ParallaxError wraps an error with an exit code:
//
//	type ParallaxError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Families
//
// Three sentinels identify error families that callers branch on:
//
//	ErrInvalidTaskName      // task name failed slug validation
//	ErrOutsideWorkspaceRoot // a path escaped the workspace root
//	ErrMissingProvenance    // merge-back without source repo or branch
//
// Errors from other packages join a family by implementing Is, so
// errors.Is(err, errors.ErrInvalidTaskName) holds for every slug failure.
//
// # Exit Codes
//
//	ExitSuccess              = 0
//	ExitGeneralError         = 1
//	ExitNotFound             = 2
//	ExitInvalidTaskName      = 3
//	ExitOutsideWorkspaceRoot = 4
//	ExitMissingProvenance    = 5
//	ExitGitFailed            = 6
//	ExitConfigError          = 7
//	ExitWorkspaceFailed      = 8
//
// # Failure Policy
//
// Policy decides at each call site whether a failure is fatal or logged and
// swallowed:
//
//	errors.LogAndContinue.Handle(err, "metadata upsert failed", "path", p)
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
