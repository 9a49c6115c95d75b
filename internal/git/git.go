// Package git runs the handful of git commands workspaces need: creating a
// branch, reading the current branch, and pulling a branch from a workspace
// back into its source repository.
package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	perrors "github.com/parallax-dev/parallax/internal/errors"
	"github.com/parallax-dev/parallax/internal/system"
)

// Operations is the git surface used by workspace management.
type Operations interface {
	// CreateAndCheckoutBranch creates branch in dir and checks it out.
	CreateAndCheckoutBranch(ctx context.Context, branch, dir string) error

	// CurrentBranch returns the checked-out branch of dir, or "" when HEAD
	// is detached.
	CurrentBranch(ctx context.Context, dir string) (string, error)

	// FetchBranchAndUpdateRef fetches branch from the repository at fromDir
	// into intoDir and force-points intoDir's local branch at the result.
	// The working tree and checked-out branch of intoDir are left alone.
	FetchBranchAndUpdateRef(ctx context.Context, branch, fromDir, intoDir string) error
}

// CLI implements Operations by invoking the git binary.
type CLI struct {
	exec system.CommandExecutor
}

// NewCLI returns git operations backed by exec. A nil exec selects the
// default executor.
func NewCLI(exec system.CommandExecutor) *CLI {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &CLI{exec: exec}
}

func (c *CLI) run(ctx context.Context, op, dir string, args ...string) (string, error) {
	out, err := c.exec.Execute(ctx, "git", append([]string{"-C", dir}, args...)...)
	if err != nil {
		return "", perrors.GitFailed(op, err)
	}
	return string(out), nil
}

func (c *CLI) CreateAndCheckoutBranch(ctx context.Context, branch, dir string) error {
	_, err := c.run(ctx, "checkout", dir, "checkout", "-b", branch)
	return err
}

func (c *CLI) CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := c.run(ctx, "branch", dir, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *CLI) FetchBranchAndUpdateRef(ctx context.Context, branch, fromDir, intoDir string) error {
	if _, err := c.run(ctx, "fetch", intoDir, "fetch", fromDir, branch); err != nil {
		return err
	}
	_, err := c.run(ctx, "branch", intoDir, "branch", "-f", branch, "FETCH_HEAD")
	return err
}

// HasGitDir reports whether path carries a .git entry. A directory is a
// normal repository, a regular file a worktree or submodule.
func HasGitDir(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}
