// Package watch notifies callers when workspace folders appear or vanish
// under the workspace root.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/parallax-dev/parallax/internal/logging"
)

const changeKey = "root"

// Watcher observes the direct children of a directory.
type Watcher struct {
	root      string
	debouncer *Debouncer
}

// New returns a Watcher for root. Bursts of events within debounce are
// reported once.
func New(root string, debounce time.Duration) *Watcher {
	return &Watcher{root: root, debouncer: NewDebouncer(debounce)}
}

// Run blocks until ctx is done, calling onChange after each settled burst
// of create, remove or rename events. onChange is never called
// concurrently with itself.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", w.root, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	logging.Debug("watching workspace root", "path", w.root)

	fire := make(chan struct{}, 1)
	defer w.debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			logging.Debug("workspace root changed", "path", ev.Name, "op", ev.Op.String())
			w.debouncer.Debounce(changeKey, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			onChange()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watcher error", "path", w.root, "error", err)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
