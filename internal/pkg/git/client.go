// Package git provides read-only access to staged repository state.
package git

import (
	"context"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/gitaimsg/gitaimsg/internal/pkg/errors"
)

const (
	// CommandTimeout is the per-command timeout for git invocations.
	CommandTimeout = 10 * time.Second
)

// Client defines the git operations the pipeline needs. Everything is
// read-only; the hook never mutates repository state.
type Client interface {
	HasStagedChanges(ctx context.Context) (bool, error)
	StagedFiles(ctx context.Context) ([]string, error)
	StagedDiff(ctx context.Context) (string, error)
	Numstat(ctx context.Context) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
}

// DefaultClient implements Client using the git binary via exec.
type DefaultClient struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
}

// NewClient creates a new DefaultClient.
func NewClient() *DefaultClient {
	return &DefaultClient{}
}

// NewClientWithWorkDir creates a new DefaultClient rooted at workDir.
func NewClientWithWorkDir(workDir string) *DefaultClient {
	return &DefaultClient{workDir: workDir}
}

// output runs a git command and returns its stdout.
func (c *DefaultClient) output(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(ctx.Err())
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", apperrors.NewGitError(err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", apperrors.NewGitError(err, "")
	}
	return string(out), nil
}

// HasStagedChanges reports whether the index differs from HEAD.
func (c *DefaultClient) HasStagedChanges(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return false, apperrors.NewTimeoutError(ctx.Err())
		}
		// Exit code 1 means the index differs from HEAD.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return true, nil
		}
		return false, apperrors.NewGitError(err, "")
	}
	return false, nil
}

// StagedFiles returns the paths of all staged files in index order.
func (c *DefaultClient) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := c.output(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// StagedDiff returns the unified diff of the index against HEAD.
func (c *DefaultClient) StagedDiff(ctx context.Context) (string, error) {
	return c.output(ctx, "diff", "--cached", "--no-color")
}

// Numstat returns per-file addition/deletion counts for the staged changes.
func (c *DefaultClient) Numstat(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "diff", "--cached", "--numstat")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// CurrentBranch returns the checked-out branch name, or "HEAD" when detached.
func (c *DefaultClient) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err == nil {
		if branch := strings.TrimSpace(out); branch != "" {
			return branch, nil
		}
	}

	out, err = c.output(ctx, "symbolic-ref", "--short", "HEAD")
	if err == nil {
		if branch := strings.TrimSpace(out); branch != "" {
			return branch, nil
		}
	}

	return "HEAD", nil
}
