package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	glerrors "gitless.dev/gl/internal/errors"
)

// Repository wraps a go-git repository together with the command runner
// used for the operations go-git does not cover safely (checkout, status,
// ref compare-and-swap).
type Repository struct {
	repo   *gogit.Repository
	runner *CommandRunner
	root   string
	gitDir string

	// go-git object access is not safe for concurrent use
	mu sync.Mutex
}

// Open discovers the repository enclosing path and validates that gl can
// operate on it.
func Open(ctx context.Context, path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, &glerrors.RepositoryNotFoundError{Path: absPath, Err: err}
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		// bare repositories have no working tree to manage
		return nil, &glerrors.RepositoryNotFoundError{Path: absPath, Err: err}
	}
	root := worktree.Filesystem.Root()

	runner := NewCommandRunner(root)
	gitDir, err := runner.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to locate git directory: %w", err)
	}

	r := &Repository{
		repo:   repo,
		runner: runner,
		root:   root,
		gitDir: gitDir,
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) validate() error {
	shallow, err := r.repo.Storer.Shallow()
	if err != nil {
		return fmt.Errorf("failed to read shallow info: %w", err)
	}
	if len(shallow) > 0 {
		return &glerrors.ShallowCloneError{Path: r.root}
	}

	if _, err := r.repo.Head(); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return &glerrors.EmptyRepositoryError{Path: r.root}
		}
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	return nil
}

// Root returns the root directory of the working tree
func (r *Repository) Root() string {
	return r.root
}

// GitDir returns the absolute path of the git directory
func (r *Repository) GitDir() string {
	return r.gitDir
}

// Runner returns the command runner bound to the repository root
func (r *Repository) Runner() *CommandRunner {
	return r.runner
}

// Cwd returns the current working directory relative to the repository
// root ("" when they are equal).
func (r *Repository) Cwd(wd string) string {
	rel, err := filepath.Rel(r.root, wd)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}
