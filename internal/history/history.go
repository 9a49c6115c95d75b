// Package history records workspace lifecycle events as JSON Lines and
// derives per-repository usage counts from them.
package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parallax-dev/parallax/internal/logging"
)

// EventType classifies a lifecycle event.
type EventType string

const (
	EventCreate    EventType = "create"
	EventDelete    EventType = "delete"
	EventMergeBack EventType = "merge-back"
)

// Event is a single history entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Workspace string    `json:"workspace"`
	Repo      string    `json:"repo,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Log appends and reads events in a single JSONL file.
type Log struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewLog returns a log backed by path. The file is created on first write.
func NewLog(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// Path returns the backing file.
func (l *Log) Path() string {
	return l.path
}

// Append writes event to the log, stamping it if Timestamp is zero.
func (l *Log) Append(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}
	event.Timestamp = event.Timestamp.UTC()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// Record appends an event and logs, rather than returns, any failure.
func (l *Log) Record(eventType EventType, workspace, repo string) {
	err := l.Append(Event{Type: eventType, Workspace: workspace, Repo: repo})
	if err != nil {
		logging.Warn("failed to record history", "type", eventType, "workspace", workspace, "error", err)
	}
}

// Events returns every readable event in file order. Malformed lines are
// skipped.
func (l *Log) Events() ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			logging.Debug("skipping malformed history line", "path", l.path, "error", err)
			continue
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading history: %w", err)
	}
	return events, nil
}

// Frequencies counts create events per source repository path. Read
// failures yield an empty map.
func (l *Log) Frequencies() map[string]int {
	events, err := l.Events()
	if err != nil {
		logging.Warn("failed to read history", "path", l.path, "error", err)
	}

	counts := make(map[string]int)
	for _, e := range events {
		if e.Type == EventCreate && e.Repo != "" {
			counts[e.Repo]++
		}
	}
	return counts
}
