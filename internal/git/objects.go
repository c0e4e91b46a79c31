package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TreeEntry is a blob placed in a flat tree written by WriteTree.
type TreeEntry struct {
	Name string
	Mode filemode.FileMode
	Hash string
}

// CommitSpec describes a commit written by WriteCommit.
type CommitSpec struct {
	Tree    string
	Parents []string
	Message string
	When    time.Time
}

// HashBlob returns the id content would have as a git blob, without writing it.
func HashBlob(content []byte) string {
	return plumbing.ComputeHash(plumbing.BlobObject, content).String()
}

// WriteBlob stores content in the object database and returns its id.
func (r *Repository) WriteBlob(content []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	if err != nil {
		return "", fmt.Errorf("failed to open blob writer: %w", err)
	}
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return "", fmt.Errorf("failed to store blob: %w", err)
	}
	return hash.String(), nil
}

// ReadBlob returns the content of a blob.
func (r *Repository) ReadBlob(id string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blob, err := r.repo.BlobObject(plumbing.NewHash(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", id, err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", id, err)
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// WriteTree stores a single-level tree of blobs and returns its id.
func (r *Repository) WriteTree(entries []TreeEntry) (string, error) {
	sorted := make([]object.TreeEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(e.Name, "/") {
			return "", fmt.Errorf("tree entry %q must not contain a slash", e.Name)
		}
		sorted = append(sorted, object.TreeEntry{
			Name: e.Name,
			Mode: e.Mode,
			Hash: plumbing.NewHash(e.Hash),
		})
	}
	// blobs only, so plain byte order is git's tree order
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	tree := &object.Tree{Entries: sorted}
	obj := r.repo.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return "", fmt.Errorf("failed to encode tree: %w", err)
	}
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return "", fmt.Errorf("failed to store tree: %w", err)
	}
	return hash.String(), nil
}

// WriteCommit stores a commit object and returns its id. No ref is updated.
func (r *Repository) WriteCommit(spec CommitSpec) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sig := r.signature(spec.When)
	parents := make([]plumbing.Hash, 0, len(spec.Parents))
	for _, p := range spec.Parents {
		parents = append(parents, plumbing.NewHash(p))
	}
	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      spec.Message,
		TreeHash:     plumbing.NewHash(spec.Tree),
		ParentHashes: parents,
	}
	obj := r.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return "", fmt.Errorf("failed to encode commit: %w", err)
	}
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return "", fmt.Errorf("failed to store commit: %w", err)
	}
	return hash.String(), nil
}

// CommitTreeFile returns the content of a named entry in the tree of a commit.
func (r *Repository) CommitTreeFile(commitID, name string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	commit, err := r.repo.CommitObject(plumbing.NewHash(commitID))
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", commitID, err)
	}
	file, err := commit.File(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s in %s: %w", name, commitID, err)
	}
	content, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s in %s: %w", name, commitID, err)
	}
	return []byte(content), nil
}

// FileAt describes a path as recorded in a commit.
type FileAt struct {
	Hash string
	Mode filemode.FileMode
}

// FileAtRevision looks up path in the tree of the given commit.
// It returns nil when the path does not exist there.
func (r *Repository) FileAtRevision(revision, path string) (*FileAt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	commit, err := r.repo.CommitObject(plumbing.NewHash(revision))
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", revision, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", revision, err)
	}
	entry, err := tree.FindEntry(path)
	if err != nil {
		if errors.Is(err, object.ErrEntryNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up %s in %s: %w", path, revision, err)
	}
	if entry.Mode == filemode.Dir || entry.Mode == filemode.Submodule {
		return nil, nil
	}
	return &FileAt{Hash: entry.Hash.String(), Mode: entry.Mode}, nil
}

// ReadRef returns the id a ref points to, or "" when the ref does not exist.
func (r *Repository) ReadRef(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, err := r.repo.Reference(plumbing.ReferenceName(name), false)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read ref %s: %w", name, err)
	}
	return ref.Hash().String(), nil
}

// ListRefs returns all refs under prefix mapped to the id they point to.
func (r *Repository) ListRefs(prefix string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	refs, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to get references: %w", err)
	}
	result := make(map[string]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if ref.Type() == plumbing.HashReference && strings.HasPrefix(name, prefix) {
			result[name] = ref.Hash().String()
		}
		return nil
	})
	return result, err
}

// UpdateRef points name at newID if it currently points at oldID.
// An empty oldID requires the ref not to exist yet.
func (r *Repository) UpdateRef(ctx context.Context, name, newID, oldID string) error {
	if _, err := r.runner.Run(ctx, "update-ref", "-m", "gl", name, newID, oldID); err != nil {
		return fmt.Errorf("failed to update ref %s: %w", name, err)
	}
	return nil
}

// SetRef points name at newID regardless of its current value.
func (r *Repository) SetRef(ctx context.Context, name, newID string) error {
	if _, err := r.runner.Run(ctx, "update-ref", "-m", "gl", name, newID); err != nil {
		return fmt.Errorf("failed to set ref %s: %w", name, err)
	}
	return nil
}

// DeleteRef removes name if it currently points at oldID (any value when
// oldID is empty).
func (r *Repository) DeleteRef(ctx context.Context, name, oldID string) error {
	args := []string{"update-ref", "-d", name}
	if oldID != "" {
		args = append(args, oldID)
	}
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to delete ref %s: %w", name, err)
	}
	return nil
}

func (r *Repository) signature(when time.Time) object.Signature {
	sig := object.Signature{Name: "gl", Email: "gl@localhost", When: when}
	cfg, err := r.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
