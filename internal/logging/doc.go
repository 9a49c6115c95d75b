// Package logging provides logging utilities for parallax.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating workspace", "repo", repoName, "task", slug)
//	logging.Warn("metadata load failed", "path", path, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Scanning %d roots...", len(roots))
//	logging.UserSuccess("Created workspace %s", path)
//	logging.UserWarning("Workspace %s has no provenance", path)
//	logging.UserError("Failed to create workspace: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
