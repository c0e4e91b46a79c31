package git

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"

	glerrors "gitless.dev/gl/internal/errors"
)

// Branch is a transient view of a local branch, read from git on every query.
type Branch struct {
	Name      string
	Head      string
	Upstream  string
	IsCurrent bool
}

// Remote is a configured remote repository.
type Remote struct {
	Name string
	URLs []string
}

// CurrentBranch returns the branch HEAD points to.
func (r *Repository) CurrentBranch() (*Branch, error) {
	name, err := r.currentBranchName()
	if err != nil {
		return nil, err
	}
	return r.loadBranch(name, name)
}

// LookupBranch returns the named local branch, or nil when it does not exist.
func (r *Repository) LookupBranch(name string) (*Branch, error) {
	current, err := r.currentBranchName()
	if err != nil && !errors.Is(err, glerrors.ErrNotOnBranch) {
		return nil, err
	}
	branch, err := r.loadBranch(name, current)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	return branch, err
}

// ListBranches returns all local branches sorted by name.
func (r *Repository) ListBranches() ([]*Branch, error) {
	current, err := r.currentBranchName()
	if err != nil && !errors.Is(err, glerrors.ErrNotOnBranch) {
		return nil, err
	}

	r.mu.Lock()
	iter, err := r.repo.Branches()
	if err != nil {
		r.mu.Unlock()
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	sort.Strings(names)
	branches := make([]*Branch, 0, len(names))
	for _, name := range names {
		b, err := r.loadBranch(name, current)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, nil
}

// BranchRevision returns the commit the named branch points to.
func (r *Repository) BranchRevision(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", glerrors.NewBranchNotFoundError(name)
		}
		return "", fmt.Errorf("failed to resolve branch %s: %w", name, err)
	}
	return ref.Hash().String(), nil
}

// HeadRevision returns the commit HEAD points to.
func (r *Repository) HeadRevision() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// ResolveRevision resolves any revision expression to a commit id.
func (r *Repository) ResolveRevision(rev string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("no commit found for %s: %w", rev, err)
	}
	return hash.String(), nil
}

// CreateBranch creates a branch pointing at the given revision.
func (r *Repository) CreateBranch(ctx context.Context, name, revision string) (*Branch, error) {
	existing, err := r.LookupBranch(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, glerrors.NewUserError("branch %s already exists", name)
	}
	commit, err := r.ResolveRevision(revision)
	if err != nil {
		return nil, glerrors.NewUserError("%v", err)
	}
	if _, err := r.runner.Run(ctx, "branch", "--", name, commit); err != nil {
		return nil, fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return r.LookupBranch(name)
}

// DeleteBranch deletes a local branch. The current branch can't be deleted.
func (r *Repository) DeleteBranch(ctx context.Context, name string) error {
	current, err := r.currentBranchName()
	if err != nil && !errors.Is(err, glerrors.ErrNotOnBranch) {
		return err
	}
	if current == name {
		return glerrors.NewUserError("can't delete the current branch %s", name)
	}
	if _, err := r.runner.Run(ctx, "branch", "-D", "--", name); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	return nil
}

// ListRemotes returns the configured remotes sorted by name.
func (r *Repository) ListRemotes() ([]Remote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, err := r.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	remotes := make([]Remote, 0, len(cfg.Remotes))
	for name, rc := range cfg.Remotes {
		remotes = append(remotes, Remote{Name: name, URLs: rc.URLs})
	}
	sort.Slice(remotes, func(i, j int) bool {
		return remotes[i].Name < remotes[j].Name
	})
	return remotes, nil
}

func (r *Repository) currentBranchName() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", glerrors.ErrNotOnBranch
	}
	return head.Name().Short(), nil
}

func (r *Repository) loadBranch(name, current string) (*Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return nil, err
	}
	branch := &Branch{
		Name:      name,
		Head:      ref.Hash().String(),
		IsCurrent: name == current,
	}

	cfg, err := r.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if bc, ok := cfg.Branches[name]; ok && bc.Merge != "" {
		upstream := bc.Merge.Short()
		if bc.Remote != "" && bc.Remote != "." {
			upstream = bc.Remote + "/" + upstream
		}
		branch.Upstream = upstream
	}
	return branch, nil
}
