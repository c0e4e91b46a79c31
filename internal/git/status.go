package git

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// FileType classifies a path from gl's point of view.
type FileType int

const (
	// FileTracked is a file whose changes are considered for commit
	FileTracked FileType = iota
	// FileUntracked is a file git does not know about
	FileUntracked
	// FileIgnored is a file matched by an ignore rule
	FileIgnored
)

// FileStatus describes a path that differs from HEAD.
// Ignored and tracked unmodified files are only reported on request.
type FileStatus struct {
	Path            string
	Type            FileType
	ExistsAtHead    bool
	ExistsInWorkdir bool
	InConflict      bool
}

// StatusOptions controls which paths Status reports.
type StatusOptions struct {
	IncludeUntracked bool
	IncludeIgnored   bool
}

// Status returns the status of every changed path relative to HEAD, sorted by path.
func (r *Repository) Status(ctx context.Context, opts StatusOptions) ([]FileStatus, error) {
	args := []string{"status", "--porcelain=v1", "-z", "--no-renames"}
	if opts.IncludeUntracked || opts.IncludeIgnored {
		args = append(args, "--untracked-files=all")
	} else {
		args = append(args, "--untracked-files=no")
	}
	if opts.IncludeIgnored {
		args = append(args, "--ignored=traditional")
	}

	out, err := r.runner.RunRaw(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read status: %w", err)
	}

	statuses, err := parsePorcelain(out)
	if err != nil {
		return nil, err
	}

	filtered := statuses[:0]
	for _, st := range statuses {
		if st.Type == FileUntracked && !opts.IncludeUntracked {
			continue
		}
		filtered = append(filtered, st)
	}
	return filtered, nil
}

// TrackedModifiedFiles returns the tracked paths whose content differs from HEAD.
func (r *Repository) TrackedModifiedFiles(ctx context.Context) ([]string, error) {
	statuses, err := r.Status(ctx, StatusOptions{})
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(statuses))
	for _, st := range statuses {
		if st.Type == FileTracked {
			paths = append(paths, st.Path)
		}
	}
	return paths, nil
}

// IsClean reports whether the working tree has no tracked modifications.
func (r *Repository) IsClean(ctx context.Context) (bool, error) {
	paths, err := r.TrackedModifiedFiles(ctx)
	if err != nil {
		return false, err
	}
	return len(paths) == 0, nil
}

// parsePorcelain parses `git status --porcelain=v1 -z --no-renames` output.
func parsePorcelain(out string) ([]FileStatus, error) {
	var statuses []FileStatus
	for _, record := range strings.Split(out, "\x00") {
		if record == "" {
			continue
		}
		if len(record) < 4 || record[2] != ' ' {
			return nil, fmt.Errorf("unexpected status entry %q", record)
		}
		x, y, path := record[0], record[1], record[3:]
		// directories are reported with a trailing slash when git collapses them
		path = strings.TrimSuffix(path, "/")
		statuses = append(statuses, classify(x, y, path))
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Path < statuses[j].Path
	})
	return statuses, nil
}

func classify(x, y byte, path string) FileStatus {
	switch {
	case x == '?' && y == '?':
		return FileStatus{Path: path, Type: FileUntracked, ExistsInWorkdir: true}
	case x == '!' && y == '!':
		return FileStatus{Path: path, Type: FileIgnored, ExistsInWorkdir: true}
	case isConflict(x, y):
		return FileStatus{
			Path:            path,
			Type:            FileTracked,
			ExistsAtHead:    x != 'A' || y != 'A',
			ExistsInWorkdir: true,
			InConflict:      true,
		}
	}
	return FileStatus{
		Path:            path,
		Type:            FileTracked,
		ExistsAtHead:    x != 'A',
		ExistsInWorkdir: x != 'D' && y != 'D',
	}
}

func isConflict(x, y byte) bool {
	switch string([]byte{x, y}) {
	case "DD", "AU", "UD", "UA", "DU", "AA", "UU":
		return true
	}
	return false
}

// IsTracked reports whether path has an entry in the index.
func (r *Repository) IsTracked(ctx context.Context, path string) (bool, error) {
	out, err := r.runner.RunRaw(ctx, "--literal-pathspecs", "ls-files", "-z", "--cached", "--", path)
	if err != nil {
		return false, fmt.Errorf("failed to read index entry of %s: %w", path, err)
	}
	for _, line := range strings.Split(out, "\x00") {
		if line == path {
			return true, nil
		}
	}
	return false, nil
}
