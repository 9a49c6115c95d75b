package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/parallax-dev/parallax/internal/errors"
	"github.com/parallax-dev/parallax/internal/system"
	"github.com/parallax-dev/parallax/internal/testutil"
)

func TestCLI_CommandLines(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.AddResponse("--show-current", []byte("agent/task\n"), nil)
	cli := NewCLI(mock)
	ctx := context.Background()

	if err := cli.CreateAndCheckoutBranch(ctx, "agent/task", "/ws/repo__task"); err != nil {
		t.Fatal(err)
	}
	branch, err := cli.CurrentBranch(ctx, "/ws/repo__task")
	if err != nil {
		t.Fatal(err)
	}
	if branch != "agent/task" {
		t.Errorf("CurrentBranch() = %q, want agent/task", branch)
	}
	if err := cli.FetchBranchAndUpdateRef(ctx, "agent/task", "/ws/repo__task", "/src/repo"); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"git -C /ws/repo__task checkout -b agent/task",
		"git -C /ws/repo__task branch --show-current",
		"git -C /src/repo fetch /ws/repo__task agent/task",
		"git -C /src/repo branch -f agent/task FETCH_HEAD",
	}
	if diff := cmp.Diff(want, mock.CommandLines()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestCLI_FetchFailureStopsBeforeRefUpdate(t *testing.T) {
	mock := system.NewMockExecutor()
	cmdErr := &system.CommandError{Name: "git", ExitCode: 128, Output: "fatal: couldn't find remote ref"}
	mock.AddResponse("fetch", nil, cmdErr)

	err := NewCLI(mock).FetchBranchAndUpdateRef(context.Background(), "agent/x", "/ws", "/src")
	if perrors.GetExitCode(err) != perrors.ExitGitFailed {
		t.Errorf("exit code = %d, want %d", perrors.GetExitCode(err), perrors.ExitGitFailed)
	}
	var got *system.CommandError
	if !errors.As(err, &got) || got.Output != cmdErr.Output {
		t.Errorf("error should carry command output, got %v", err)
	}
	if len(mock.Commands) != 1 {
		t.Errorf("ran %d commands, want 1", len(mock.Commands))
	}
}

func TestCLI_RealRepository(t *testing.T) {
	ctx := context.Background()
	source := testutil.SetupGitRepo(t, filepath.Join(t.TempDir(), "repo"))

	// Simulate a workspace as a full copy of the source.
	ws := filepath.Join(t.TempDir(), "repo__feature")
	if err := system.CopyTree(source, ws); err != nil {
		t.Fatal(err)
	}

	cli := NewCLI(nil)
	if err := cli.CreateAndCheckoutBranch(ctx, "agent/feature", ws); err != nil {
		t.Fatalf("CreateAndCheckoutBranch() error: %v", err)
	}
	branch, err := cli.CurrentBranch(ctx, ws)
	if err != nil || branch != "agent/feature" {
		t.Fatalf("CurrentBranch() = %q, %v", branch, err)
	}

	testutil.Git(t, ws, "commit", "--allow-empty", "-m", "work")

	if err := cli.FetchBranchAndUpdateRef(ctx, "agent/feature", ws, source); err != nil {
		t.Fatalf("FetchBranchAndUpdateRef() error: %v", err)
	}

	head := func(dir, ref string) string {
		return testutil.Git(t, dir, "rev-parse", ref)
	}
	if head(source, "agent/feature") != head(ws, "HEAD") {
		t.Error("source branch should point at the workspace commit")
	}
	if current, _ := cli.CurrentBranch(ctx, source); current != "main" {
		t.Errorf("source checkout changed to %q", current)
	}
}

func TestHasGitDir(t *testing.T) {
	dir := t.TempDir()
	if HasGitDir(dir) {
		t.Error("empty dir should not have .git")
	}
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if !HasGitDir(dir) {
		t.Error(".git directory should be detected")
	}

	wt := t.TempDir()
	if err := os.WriteFile(filepath.Join(wt, ".git"), []byte("gitdir: /x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !HasGitDir(wt) {
		t.Error(".git file should be detected")
	}
}
