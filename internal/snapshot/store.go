package snapshot

import (
	"context"

	"gitless.dev/gl/internal/git"
)

// Store is the part of the repository the manager works with.
type Store interface {
	Root() string
	Status(ctx context.Context, opts git.StatusOptions) ([]git.FileStatus, error)
	BranchRevision(name string) (string, error)

	WriteBlob(content []byte) (string, error)
	ReadBlob(id string) ([]byte, error)
	WriteTree(entries []git.TreeEntry) (string, error)
	WriteCommit(spec git.CommitSpec) (string, error)
	CommitTreeFile(commitID, name string) ([]byte, error)
	FileAtRevision(revision, path string) (*git.FileAt, error)

	ReadRef(name string) (string, error)
	ListRefs(prefix string) (map[string]string, error)
	UpdateRef(ctx context.Context, name, newID, oldID string) error
	SetRef(ctx context.Context, name, newID string) error
	DeleteRef(ctx context.Context, name, oldID string) error

	CheckoutPaths(ctx context.Context, revision string, paths []string) error
	UnstagePaths(ctx context.Context, paths []string) error
	AddPaths(ctx context.Context, paths []string) error
	UntrackPaths(ctx context.Context, paths []string) error
}

var _ Store = (*git.Repository)(nil)

// Logger receives debug traces of snapshot work.
type Logger interface {
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
