// Package editor opens workspaces in the user's configured editor.
package editor

import (
	"errors"
	"fmt"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/parallax-dev/parallax/internal/logging"
	"github.com/parallax-dev/parallax/internal/system"
)

// Option is a supported editor.
type Option struct {
	Name    string
	Command string
}

// Known lists the editors offered during setup.
var Known = []Option{
	{Name: "Zed", Command: "zed"},
	{Name: "Cursor", Command: "cursor"},
	{Name: "VS Code", Command: "code"},
	{Name: "GoLand", Command: "goland"},
}

// Lookup returns the known editor whose name or command matches s,
// ignoring case.
func Lookup(s string) (Option, bool) {
	s = strings.TrimSpace(s)
	for _, o := range Known {
		if strings.EqualFold(o.Command, s) || strings.EqualFold(o.Name, s) {
			return o, true
		}
	}
	return Option{}, false
}

var errEmptyCommand = errors.New("editor command is empty")

// LaunchError reports that the editor process could not be started.
type LaunchError struct {
	Editor string
	Path   string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("could not launch %q for %q: %v", e.Editor, e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Launcher starts editor processes without waiting for them.
type Launcher struct {
	exec system.CommandExecutor
}

// NewLauncher returns a Launcher. A nil executor uses the default.
func NewLauncher(exec system.CommandExecutor) *Launcher {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &Launcher{exec: exec}
}

// Open launches editorCommand with path appended. The command may carry
// its own arguments, e.g. "code --new-window".
func (l *Launcher) Open(editorCommand, path string) error {
	words, err := shellquote.Split(editorCommand)
	if err != nil {
		return &LaunchError{Editor: editorCommand, Path: path, Err: err}
	}
	if len(words) == 0 {
		return &LaunchError{Editor: editorCommand, Path: path, Err: errEmptyCommand}
	}

	args := append(words[1:], path)
	logging.Debug("launching editor", "command", words[0], "args", args)
	if err := l.exec.Start(words[0], args...); err != nil {
		return &LaunchError{Editor: editorCommand, Path: path, Err: err}
	}
	return nil
}
