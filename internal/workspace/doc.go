// Package workspace creates, lists and removes workspaces: full copies of a
// repository, each checked out on its own agent/<task> branch under a
// single workspace root.
//
// # Naming
//
// A workspace folder is named <repo>__<task>. Parsing splits on the last
// separator, so "my__repo__feature" belongs to repository "my__repo":
//
//	ws, ok := workspace.ParseFolderName("my__repo__feature", root)
//
// # Components
//
//	FolderScanner  lists the root and parses folder names
//	Reconciler     merges folders, stored metadata and live git branches
//	Manager        creates, deletes and merges back workspaces
//
// Each component serializes its own operations. Different components may
// run concurrently; a workspace created during a reconcile pass shows up on
// the next pass.
//
// # Containment
//
// Every path the Manager writes or removes is checked with
// pathsafe.IsContained against the root at the moment of mutation:
//
//	mgr := workspace.NewManager(root, store, git.NewCLI(nil))
//	ws, err := mgr.Create(ctx, repository, "Fix login bug")
//	// ws.Path == root/<repo>__fix-login-bug, ws.BranchName == "agent/fix-login-bug"
package workspace
