package git

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	glerrors "gitless.dev/gl/internal/errors"
)

// Commit is a commit as shown in the history of a branch.
type Commit struct {
	Hash    string
	Author  string
	Email   string
	When    time.Time
	Subject string
	Message string
}

// Tag is a tag and the commit it labels.
type Tag struct {
	Name   string
	Commit string
}

// History returns the commits reachable from revision, newest first.
// A limit of zero or less returns every commit.
func (r *Repository) History(revision string, limit int) ([]Commit, error) {
	hash, err := r.ResolveRevision(revision)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	iter, err := r.repo.Log(&gogit.LogOptions{From: plumbing.NewHash(hash)})
	if err != nil {
		return nil, fmt.Errorf("failed to read history of %s: %w", revision, err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(commits) == limit {
			return storer.ErrStop
		}
		commits = append(commits, Commit{
			Hash:    c.Hash.String(),
			Author:  c.Author.Name,
			Email:   c.Author.Email,
			When:    c.Author.When,
			Subject: strings.TrimSpace(strings.SplitN(c.Message, "\n", 2)[0]),
			Message: strings.TrimRight(c.Message, "\n"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read history of %s: %w", revision, err)
	}
	return commits, nil
}

// ListTags returns every tag that labels a commit, sorted by name.
// Annotated tags are peeled to their commit.
func (r *Repository) ListTags() ([]Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer iter.Close()

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		commit := ref.Hash()
		annotated, err := r.repo.TagObject(ref.Hash())
		switch {
		case errors.Is(err, plumbing.ErrObjectNotFound):
		case err != nil:
			return err
		default:
			c, err := annotated.Commit()
			if errors.Is(err, object.ErrUnsupportedObject) {
				return nil
			}
			if err != nil {
				return err
			}
			commit = c.Hash
		}
		tags = append(tags, Tag{Name: ref.Name().Short(), Commit: commit.String()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})
	return tags, nil
}

// CreateTag creates a lightweight tag on the commit revision resolves to.
func (r *Repository) CreateTag(name, revision string) (*Tag, error) {
	hash, err := r.ResolveRevision(revision)
	if err != nil {
		return nil, glerrors.NewUserError("%v", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.repo.CreateTag(name, plumbing.NewHash(hash), nil); err != nil {
		if errors.Is(err, gogit.ErrTagExists) {
			return nil, glerrors.NewUserError("tag %s already exists", name)
		}
		return nil, fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return &Tag{Name: name, Commit: hash}, nil
}

// DeleteTag deletes a tag.
func (r *Repository) DeleteTag(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.repo.DeleteTag(name); err != nil {
		if errors.Is(err, gogit.ErrTagNotFound) {
			return glerrors.NewUserError("tag %s doesn't exist", name)
		}
		return fmt.Errorf("failed to delete tag %s: %w", name, err)
	}
	return nil
}
