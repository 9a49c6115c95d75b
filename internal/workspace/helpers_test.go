package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// fakeGit implements git.Operations in memory.
type fakeGit struct {
	mu          sync.Mutex
	branches    map[string]string
	branchErr   error
	checkoutErr error
	fetchErr    error
	calls       []string
}

func newFakeGit() *fakeGit {
	return &fakeGit{branches: make(map[string]string)}
}

func (g *fakeGit) CreateAndCheckoutBranch(ctx context.Context, branch, dir string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "checkout "+branch+" "+dir)
	if g.checkoutErr != nil {
		return g.checkoutErr
	}
	g.branches[dir] = branch
	return nil
}

func (g *fakeGit) CurrentBranch(ctx context.Context, dir string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "current "+dir)
	if g.branchErr != nil {
		return "", g.branchErr
	}
	return g.branches[dir], nil
}

func (g *fakeGit) FetchBranchAndUpdateRef(ctx context.Context, branch, fromDir, intoDir string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "fetch "+branch+" "+fromDir+" "+intoDir)
	return g.fetchErr
}

func (g *fakeGit) recorded() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
