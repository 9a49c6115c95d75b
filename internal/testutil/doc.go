// Package testutil provides test fixtures and utilities.
//
// # Git Repositories
//
// Tests that need a real git binary skip cleanly when it is missing:
//
//	testutil.RequireGit(t)
//	repo := testutil.SetupGitRepo(t, filepath.Join(root, "api"))
//
// # Temp Directories
//
// CanonicalTempDir resolves t.TempDir through symlinks so that paths
// compare equal to their canonicalized form on systems where TMPDIR is
// itself a link.
//
// # Fixtures
//
// Settings and metadata fixtures are embedded using go:embed:
//
//	fixtures/valid_settings.toml
//	fixtures/invalid_settings.toml
//	fixtures/corrupt_settings.toml
//	fixtures/legacy_workspaces.json
//
// WriteFixture copies one into a test directory:
//
//	path := testutil.WriteFixture(t, "valid_settings.toml", dir, "settings.toml")
package testutil
