// Package tui provides the interactive workspace picker.
//
// The picker lists workspaces grouped by repository and returns the action
// the user chose:
//
//	result, err := tui.RunPicker(snapshot)
//	switch result.Action {
//	case tui.ActionOpen:
//	    // Open result.Workspace in the editor
//	case tui.ActionNew:
//	    // Create result.Create.Repo / result.Create.Task
//	case tui.ActionDelete, tui.ActionMerge:
//	    // Act on result.Workspace
//	case tui.ActionQuit:
//	}
//
// Keys: enter (open), n (new workspace wizard), d (delete), m (merge back),
// / (filter), q or esc (quit). Group headers are skipped while navigating.
//
// Built on the Charm libraries bubbletea, bubbles and lipgloss.
package tui
