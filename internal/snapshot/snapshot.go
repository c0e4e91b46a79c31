// Package snapshot stores a branch's uncommitted working-tree state so the
// working tree can be handed to another branch and given back later.
//
// A snapshot is a commit in the repository's own object database whose
// parent is the revision the changes were made against. It is published by
// a ref under refs/gl/snapshots, which is updated with compare-and-swap so
// the object writes can never be observed half done.
package snapshot

import (
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/filemode"
)

const (
	// RefPrefix holds one ref per branch with saved changes.
	RefPrefix = "refs/gl/snapshots/"
	// RestoringPrefix marks a branch whose restore is in progress.
	RestoringPrefix = "refs/gl/restoring/"
	// DiscardedPrefix keeps the last discarded snapshot of each branch.
	DiscardedPrefix = "refs/gl/discarded/"

	manifestName    = "manifest.json"
	manifestVersion = 1
)

// Kind is how a saved path differed from the base revision.
type Kind string

const (
	KindModified  Kind = "modified"
	KindAdded     Kind = "added"
	KindDeleted   Kind = "deleted"
	KindUntracked Kind = "untracked"
	KindIgnored   Kind = "ignored"
	// KindUntrackedAtHead is a file head tracks that was dropped from the
	// index but kept in the working tree (git rm --cached).
	KindUntrackedAtHead Kind = "untracked-at-head"
)

// HasContent reports whether entries of this kind carry a blob.
func (k Kind) HasContent() bool {
	return k != KindDeleted
}

// Entry is one saved path.
type Entry struct {
	Path string            `json:"path"`
	Kind Kind              `json:"kind"`
	Mode filemode.FileMode `json:"mode,omitempty"`
	Blob string            `json:"blob,omitempty"`
}

// Snapshot is the saved uncommitted state of one branch.
type Snapshot struct {
	// ID is the id of the snapshot commit. It is not part of the manifest.
	ID string `json:"-"`

	Version   int       `json:"version"`
	Branch    string    `json:"branch"`
	Base      string    `json:"base"`
	Created   time.Time `json:"created"`
	Operation string    `json:"operation,omitempty"`
	Files     []Entry   `json:"files"`
	Ignored   []Entry   `json:"ignored,omitempty"`
}

// Entries returns tracked, untracked and ignored entries together.
func (s *Snapshot) Entries() []Entry {
	all := make([]Entry, 0, len(s.Files)+len(s.Ignored))
	all = append(all, s.Files...)
	return append(all, s.Ignored...)
}

// Paths returns the sorted paths of every entry.
func (s *Snapshot) Paths() []string {
	entries := s.Entries()
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of saved paths.
func (s *Snapshot) Len() int {
	return len(s.Files) + len(s.Ignored)
}

// Count returns the number of entries of the given kind.
func (s *Snapshot) Count(kind Kind) int {
	n := 0
	for _, e := range s.Entries() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Status is the lifecycle state of a branch's snapshot.
type Status int

const (
	StatusAbsent Status = iota
	StatusSaved
	StatusRestoring
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusRestoring:
		return "restoring"
	default:
		return "absent"
	}
}

// SaveOptions controls which paths Save records.
type SaveOptions struct {
	IncludeUntracked bool
	IncludeIgnored   bool
	// Operation names the command that saved the changes.
	Operation string
	// OnSave is called once the snapshot is published and before the
	// working tree is touched.
	OnSave func(*Snapshot)
}

// escapeBranch turns a branch name into a single ref component so that
// branches like "a" and "a/b" never collide under the gl prefixes.
func escapeBranch(branch string) string {
	return strings.ReplaceAll(strings.ReplaceAll(branch, "%", "%25"), "/", "%2F")
}

func unescapeBranch(component string) string {
	return strings.ReplaceAll(strings.ReplaceAll(component, "%2F", "/"), "%25", "%")
}

// RefName returns the ref holding the snapshot of branch.
func RefName(branch string) string {
	return RefPrefix + escapeBranch(branch)
}

func restoringRef(branch string) string {
	return RestoringPrefix + escapeBranch(branch)
}

// DiscardedRefName returns the ref keeping the last discarded snapshot of branch.
func DiscardedRefName(branch string) string {
	return DiscardedPrefix + escapeBranch(branch)
}
