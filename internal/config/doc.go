// Package config provides settings and paths for parallax.
//
// # Settings File
//
// Settings live in settings.toml under the config directory:
//
//	root_paths     = ["~/Projects"]  # where repositories are discovered
//	editor         = "zed"           # command used to open workspaces
//	workspace_root = "~/Parallax"    # where workspaces are created
//
// LoadSettings never fails. A missing file yields the defaults; an
// unreadable or corrupt file yields the defaults plus an Issue, and a corrupt
// file is moved aside as settings.corrupt-<unix>.toml so the next save does
// not silently discard it.
//
// # Validation
//
// Validated trims every path and checks that at least one root is given and
// that every path is absolute or starts with "~". Save validates first.
//
// # Paths
//
// DefaultPaths resolves the config and state directories:
//
//	ConfigDir  $PARALLAX_CONFIG_DIR, else <user config dir>/parallax
//	StateDir   $PARALLAX_STATE_DIR, else $XDG_STATE_HOME/parallax,
//	           else ~/.local/state/parallax
//
// The state directory holds workspaces.json and history.jsonl.
package config
