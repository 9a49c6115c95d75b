// Package metadata persists workspace provenance keyed by canonical path.
package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"github.com/parallax-dev/parallax/internal/pathsafe"
)

// Op identifies the stage at which a store operation failed.
type Op string

const (
	OpRead   Op = "read"
	OpDecode Op = "decode"
	OpEncode Op = "encode"
	OpWrite  Op = "write"
)

// StoreError reports a failed metadata read or write.
type StoreError struct {
	Op   Op
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("workspace metadata %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsDecode reports whether err is a metadata decode failure.
func IsDecode(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr) && storeErr.Op == OpDecode
}

// Record is the provenance of one workspace.
type Record struct {
	WorkspacePath  string    `json:"workspacePath"`
	SourceRepoPath string    `json:"sourceRepoPath"`
	BranchName     string    `json:"branchName"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Equal compares records field by field.
func (r Record) Equal(other Record) bool {
	return r.WorkspacePath == other.WorkspacePath &&
		r.SourceRepoPath == other.SourceRepoPath &&
		r.BranchName == other.BranchName &&
		r.CreatedAt.Equal(other.CreatedAt)
}

type file struct {
	Workspaces map[string]Record `json:"workspaces"`
}

// Store is a single-writer record store backed by one JSON file. All
// operations are serialized.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewStore creates a store over the file at path. The file and its
// directory are created on first write.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns all records keyed by canonical workspace path. A missing file
// yields an empty map.
func (s *Store) Load() (map[string]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Upsert records provenance for workspacePath. An existing record keeps its
// original CreatedAt. A zero createdAt means now.
func (s *Store) Upsert(workspacePath, sourceRepoPath, branchName string, createdAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}

	key := pathsafe.Canonicalize(workspacePath)
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	if existing, ok := all[key]; ok {
		createdAt = existing.CreatedAt
	}
	all[key] = Record{
		WorkspacePath:  key,
		SourceRepoPath: pathsafe.Canonicalize(sourceRepoPath),
		BranchName:     branchName,
		CreatedAt:      createdAt.UTC(),
	}
	return s.write(all)
}

// Delete removes the record for workspacePath. Deleting an absent record is
// not an error.
func (s *Store) Delete(workspacePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	key := pathsafe.Canonicalize(workspacePath)
	if _, ok := all[key]; !ok {
		return nil
	}
	delete(all, key)
	return s.write(all)
}

// Persist replaces the whole file with records.
func (s *Store) Persist(records map[string]Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := make(map[string]Record, len(records))
	for key, r := range records {
		if r.WorkspacePath == "" {
			r.WorkspacePath = key
		}
		r = canonical(r)
		normalized[r.WorkspacePath] = r
	}
	return s.write(normalized)
}

func (s *Store) read() (map[string]Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]Record), nil
	}
	if err != nil {
		return nil, &StoreError{Op: OpRead, Path: s.path, Err: err}
	}

	var decoded file
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, &StoreError{Op: OpDecode, Path: s.path, Err: err}
	}

	records := make(map[string]Record, len(decoded.Workspaces))
	for key, r := range decoded.Workspaces {
		if r.WorkspacePath == "" {
			r.WorkspacePath = key
		}
		r = canonical(r)
		records[r.WorkspacePath] = r
	}
	return records, nil
}

func (s *Store) write(records map[string]Record) error {
	data, err := json.MarshalIndent(file{Workspaces: records}, "", "  ")
	if err != nil {
		return &StoreError{Op: OpEncode, Path: s.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &StoreError{Op: OpWrite, Path: s.path, Err: err}
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return &StoreError{Op: OpWrite, Path: s.path, Err: err}
	}
	return nil
}

func canonical(r Record) Record {
	r.WorkspacePath = pathsafe.Canonicalize(r.WorkspacePath)
	if r.SourceRepoPath != "" {
		r.SourceRepoPath = pathsafe.Canonicalize(r.SourceRepoPath)
	}
	return r
}
