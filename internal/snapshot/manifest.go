package snapshot

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5/plumbing/filemode"

	"gitless.dev/gl/internal/git"
)

// writeCommit stores the snapshot's blobs, tree and commit and returns the
// commit id. Entry blobs must already be written.
func (m *Manager) writeCommit(snap *Snapshot) (string, error) {
	sortEntries(snap.Files)
	sortEntries(snap.Ignored)

	// Entries get positional names; the manifest maps them back to paths.
	var tree []git.TreeEntry
	add := func(prefix string, entries []Entry) {
		for i, e := range entries {
			if !e.Kind.HasContent() {
				continue
			}
			tree = append(tree, git.TreeEntry{
				Name: fmt.Sprintf("%s%04d", prefix, i),
				Mode: e.Mode,
				Hash: e.Blob,
			})
		}
	}
	add("t", snap.Files)
	add("i", snap.Ignored)

	manifest, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot manifest: %w", err)
	}
	manifestID, err := m.store.WriteBlob(manifest)
	if err != nil {
		return "", err
	}
	tree = append(tree, git.TreeEntry{Name: manifestName, Mode: filemode.Regular, Hash: manifestID})

	treeID, err := m.store.WriteTree(tree)
	if err != nil {
		return "", err
	}
	return m.store.WriteCommit(git.CommitSpec{
		Tree:    treeID,
		Parents: []string{snap.Base},
		Message: fmt.Sprintf("gl: uncommitted changes of %s\n", snap.Branch),
		When:    snap.Created,
	})
}

// readCommit loads the snapshot stored in commit id.
func (m *Manager) readCommit(id string) (*Snapshot, error) {
	data, err := m.store.CommitTreeFile(id, manifestName)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot %s has a corrupt manifest: %w", id, err)
	}
	if snap.Version > manifestVersion {
		return nil, fmt.Errorf("snapshot %s was written by a newer gl (version %d)", id, snap.Version)
	}
	snap.ID = id
	return &snap, nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
}

func overlaps(a, b []Entry) bool {
	paths := make(map[string]bool, len(a))
	for _, e := range a {
		paths[e.Path] = true
	}
	for _, e := range b {
		if paths[e.Path] {
			return true
		}
	}
	return false
}

// merge overlays newer entries on older ones, path by path.
func merge(older, newer []Entry) []Entry {
	byPath := make(map[string]Entry, len(older)+len(newer))
	for _, e := range older {
		byPath[e.Path] = e
	}
	for _, e := range newer {
		byPath[e.Path] = e
	}
	merged := make([]Entry, 0, len(byPath))
	for _, e := range byPath {
		merged = append(merged, e)
	}
	sortEntries(merged)
	return merged
}
