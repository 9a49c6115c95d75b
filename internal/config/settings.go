package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"

	"github.com/parallax-dev/parallax/internal/logging"
)

const (
	DefaultRootPath      = "~/Projects"
	DefaultEditor        = "zed"
	DefaultWorkspaceRoot = "~/Parallax"
)

// Settings is the user configuration. Treat it as an immutable value: build
// a new App when it changes.
type Settings struct {
	RootPaths     []string `toml:"root_paths"`
	Editor        string   `toml:"editor"`
	WorkspaceRoot string   `toml:"workspace_root"`
}

// DefaultSettings returns the settings used when none are saved.
func DefaultSettings() Settings {
	return Settings{
		RootPaths:     []string{DefaultRootPath},
		Editor:        DefaultEditor,
		WorkspaceRoot: DefaultWorkspaceRoot,
	}
}

var (
	ErrNoRootPaths          = errors.New("at least one project root path is required")
	ErrInvalidWorkspaceRoot = errors.New("invalid workspace directory path")
)

// InvalidRootPathError names a root path that is neither absolute nor
// home-relative.
type InvalidRootPathError struct {
	Path string
}

func (e *InvalidRootPathError) Error() string {
	return fmt.Sprintf("invalid project root path: %s", e.Path)
}

// Validated returns a trimmed copy of s, or the first validation error.
func (s Settings) Validated() (Settings, error) {
	var roots []string
	for _, p := range s.RootPaths {
		if p = strings.TrimSpace(p); p != "" {
			roots = append(roots, p)
		}
	}
	if len(roots) == 0 {
		return Settings{}, ErrNoRootPaths
	}
	for _, p := range roots {
		if !isAbsoluteOrHome(p) {
			return Settings{}, &InvalidRootPathError{Path: p}
		}
	}

	wsRoot := strings.TrimSpace(s.WorkspaceRoot)
	if !isAbsoluteOrHome(wsRoot) {
		return Settings{}, ErrInvalidWorkspaceRoot
	}

	editor := strings.TrimSpace(s.Editor)
	if editor == "" {
		editor = DefaultEditor
	}

	return Settings{RootPaths: roots, Editor: editor, WorkspaceRoot: wsRoot}, nil
}

// ExpandedRootPaths returns the root paths with "~" expanded.
func (s Settings) ExpandedRootPaths() []string {
	out := make([]string, len(s.RootPaths))
	for i, p := range s.RootPaths {
		out[i] = ExpandPath(p)
	}
	return out
}

// ExpandedWorkspaceRoot returns the workspace root with "~" expanded.
func (s Settings) ExpandedWorkspaceRoot() string {
	return ExpandPath(s.WorkspaceRoot)
}

// ExpandPath replaces a leading "~" with the home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func isAbsoluteOrHome(path string) bool {
	if path == "" {
		return false
	}
	return filepath.IsAbs(ExpandPath(path))
}

// IssueKind classifies a settings load problem.
type IssueKind string

const (
	IssueReadFailed   IssueKind = "read-failed"
	IssueDecodeFailed IssueKind = "decode-failed"
)

// Issue describes why saved settings could not be used.
type Issue struct {
	Kind IssueKind
	Err  error

	// BackupPath is where a corrupt file was moved, if it was.
	BackupPath string
}

func (i *Issue) Error() string {
	return fmt.Sprintf("settings %s: %v", i.Kind, i.Err)
}

func (i *Issue) Unwrap() error {
	return i.Err
}

// LoadResult is the outcome of LoadSettings.
type LoadResult struct {
	Settings Settings
	Issue    *Issue
}

// LoadSettings reads settings from path. It always returns usable settings.
func LoadSettings(path string) LoadResult {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return LoadResult{Settings: DefaultSettings()}
	}
	if err != nil {
		return LoadResult{Settings: DefaultSettings(), Issue: &Issue{Kind: IssueReadFailed, Err: err}}
	}

	settings := DefaultSettings()
	md, err := toml.Decode(string(data), &settings)
	if err != nil {
		issue := &Issue{Kind: IssueDecodeFailed, Err: err}
		issue.BackupPath = backupCorrupt(path)
		return LoadResult{Settings: DefaultSettings(), Issue: issue}
	}
	for _, key := range md.Undecoded() {
		logging.Warn("ignoring unknown settings key", "key", key.String(), "path", path)
	}
	return LoadResult{Settings: settings}
}

// Exists reports whether a settings file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save validates s and atomically writes it to path.
func Save(path string, s Settings) (Settings, error) {
	validated, err := s.Validated()
	if err != nil {
		return Settings{}, err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(validated); err != nil {
		return Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Settings{}, fmt.Errorf("create settings directory: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return Settings{}, fmt.Errorf("write settings: %w", err)
	}
	return validated, nil
}

// backupCorrupt moves path aside and returns the new name, or "" on failure.
func backupCorrupt(path string) string {
	ext := filepath.Ext(path)
	backup := fmt.Sprintf("%s.corrupt-%d%s", strings.TrimSuffix(path, ext), time.Now().Unix(), ext)
	if err := os.Rename(path, backup); err != nil {
		logging.Warn("failed to back up corrupt settings", "path", path, "error", err)
		return ""
	}
	return backup
}
