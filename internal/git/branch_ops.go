package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	glerrors "gitless.dev/gl/internal/errors"
)

// Checkout switches the working tree and HEAD to an existing branch.
// Local changes that don't collide are carried over by git; a refusal is
// reported as a CheckoutBlockedError naming the offending paths.
func (r *Repository) Checkout(ctx context.Context, branchName string) error {
	_, err := r.runner.Run(ctx, "checkout", "--quiet", branchName, "--")
	if err != nil {
		var gitErr *glerrors.GitCommandError
		var stderr string
		if errors.As(err, &gitErr) {
			stderr = gitErr.Stderr
		}
		return glerrors.NewCheckoutBlockedError(branchName, parseOverwrittenPaths(stderr), err)
	}
	return nil
}

// ResetHard moves the current branch to revision and makes the index and
// working tree match it.
func (r *Repository) ResetHard(ctx context.Context, revision string) error {
	if _, err := r.runner.Run(ctx, "reset", "--quiet", "--hard", revision); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", revision, err)
	}
	return nil
}

// CheckoutPaths restores paths in the index and working tree from revision.
func (r *Repository) CheckoutPaths(ctx context.Context, revision string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"--literal-pathspecs", "checkout", revision, "--"}, paths...)
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to check out paths from %s: %w", revision, err)
	}
	return nil
}

// UnstagePaths resets the index entries of paths to HEAD, dropping entries
// that don't exist there. The working tree is left alone.
func (r *Repository) UnstagePaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"--literal-pathspecs", "reset", "--quiet", "--"}, paths...)
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to unstage paths: %w", err)
	}
	return nil
}

// AddPaths starts tracking paths by adding their working content to the index.
func (r *Repository) AddPaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"--literal-pathspecs", "add", "--force", "--"}, paths...)
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to track paths: %w", err)
	}
	return nil
}

// UntrackPaths drops paths from the index and keeps their working files.
func (r *Repository) UntrackPaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"--literal-pathspecs", "rm", "--cached", "--quiet", "--ignore-unmatch", "--"}, paths...)
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to untrack paths: %w", err)
	}
	return nil
}

// parseOverwrittenPaths extracts the tab-indented path list git prints when
// a checkout would overwrite local files.
func parseOverwrittenPaths(stderr string) []string {
	var paths []string
	for _, line := range strings.Split(stderr, "\n") {
		if strings.HasPrefix(line, "\t") {
			if p := strings.TrimSpace(line); p != "" {
				paths = append(paths, p)
			}
		}
	}
	return paths
}
