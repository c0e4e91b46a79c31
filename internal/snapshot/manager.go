package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/git"
)

// Manager saves and restores the uncommitted state of branches.
// Save and Restore act on the working tree, so the branch they are given
// must be the one checked out.
type Manager struct {
	store Store
	log   Logger
	now   func() time.Time
}

// NewManager creates a Manager over store. log may be nil.
func NewManager(store Store, log Logger) *Manager {
	if log == nil {
		log = nopLogger{}
	}
	return &Manager{store: store, log: log, now: time.Now}
}

// Save records every path of the working tree that differs from the head of
// branch, then resets those paths to the head state. It returns nil when
// there was nothing to save.
//
// If branch already has a snapshot taken against the same head and the new
// changes touch none of its paths, they are added to it under a new commit.
// Otherwise the existing snapshot is left alone and SnapshotExistsError is
// returned.
func (m *Manager) Save(ctx context.Context, branch string, opts SaveOptions) (*Snapshot, error) {
	base, err := m.store.BranchRevision(branch)
	if err != nil {
		return nil, err
	}

	statuses, err := m.store.Status(ctx, git.StatusOptions{
		IncludeUntracked: opts.IncludeUntracked,
		IncludeIgnored:   opts.IncludeIgnored,
	})
	if err != nil {
		return nil, err
	}

	captured, err := m.capture(branch, statuses)
	if err != nil {
		return nil, err
	}
	if len(captured) == 0 {
		m.log.Debug("no uncommitted changes on %s, nothing to save", branch)
		return nil, nil
	}

	previousID, err := m.store.ReadRef(RefName(branch))
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Version:   manifestVersion,
		Branch:    branch,
		Base:      base,
		Created:   m.now().UTC().Truncate(time.Second),
		Operation: opts.Operation,
	}
	if previousID != "" {
		previous, err := m.readCommit(previousID)
		if err != nil {
			return nil, err
		}
		if previous.Base != base || overlaps(previous.Entries(), captured) {
			return nil, &glerrors.SnapshotExistsError{BranchName: branch, Base: previous.Base}
		}
		m.log.Debug("merging new changes of %s into snapshot %s", branch, previousID)
		snap.Files, snap.Ignored = splitIgnored(merge(previous.Entries(), captured))
	} else {
		snap.Files, snap.Ignored = splitIgnored(captured)
	}

	id, err := m.writeCommit(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to store changes of %s: %w", branch, err)
	}
	if err := m.store.UpdateRef(ctx, RefName(branch), id, previousID); err != nil {
		return nil, fmt.Errorf("failed to publish changes of %s: %w", branch, err)
	}
	snap.ID = id
	m.log.Debug("saved %d paths of %s as %s", snap.Len(), branch, id)
	if opts.OnSave != nil {
		opts.OnSave(snap)
	}

	// The changes are safe in the snapshot from here on.
	if err := m.clean(ctx, captured); err != nil {
		return snap, fmt.Errorf("changes of %s were saved but the working tree could not be cleaned: %w", branch, err)
	}
	return snap, nil
}

// capture reads the working content of every changed path. A path git
// reports twice, deleted from the index and present as untracked, becomes
// a single KindUntrackedAtHead entry.
func (m *Manager) capture(branch string, statuses []git.FileStatus) ([]Entry, error) {
	tracked := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		if st.Type == git.FileTracked {
			tracked[st.Path] = true
		}
	}

	var conflicted []string
	entries := make([]Entry, 0, len(statuses))
	for _, st := range statuses {
		if st.InConflict {
			conflicted = append(conflicted, st.Path)
			continue
		}
		if st.Type == git.FileUntracked && tracked[st.Path] {
			continue
		}

		kind, ok := entryKind(st)
		if !ok {
			m.log.Debug("skipping %s: staged and then removed", st.Path)
			continue
		}
		entry := Entry{Path: st.Path, Kind: kind}

		file, err := readWorkingFile(m.store.Root(), st.Path)
		if errors.Is(err, errNotAFile) {
			if kind == KindDeleted {
				entries = append(entries, entry)
			} else {
				m.log.Debug("skipping %s: %v", st.Path, err)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", st.Path, err)
		}
		if file == nil {
			if kind == KindDeleted {
				entries = append(entries, entry)
			}
			continue
		}
		if kind == KindDeleted {
			entry.Kind = KindUntrackedAtHead
		}

		blob, err := m.store.WriteBlob(file.content)
		if err != nil {
			return nil, err
		}
		entry.Blob = blob
		entry.Mode = file.mode
		entries = append(entries, entry)
	}
	if len(conflicted) > 0 {
		return nil, glerrors.NewUserError(
			"branch %s has unresolved conflicts in %s; resolve them before switching",
			branch, strings.Join(conflicted, ", "))
	}
	return entries, nil
}

func entryKind(st git.FileStatus) (Kind, bool) {
	switch st.Type {
	case git.FileUntracked:
		return KindUntracked, true
	case git.FileIgnored:
		return KindIgnored, true
	}
	switch {
	case st.ExistsAtHead && st.ExistsInWorkdir:
		return KindModified, true
	case st.ExistsAtHead:
		return KindDeleted, true
	case st.ExistsInWorkdir:
		return KindAdded, true
	}
	return "", false
}

func splitIgnored(entries []Entry) (files, ignored []Entry) {
	for _, e := range entries {
		if e.Kind == KindIgnored {
			ignored = append(ignored, e)
		} else {
			files = append(files, e)
		}
	}
	return files, ignored
}

// clean puts every recorded path back to its head state.
func (m *Manager) clean(ctx context.Context, entries []Entry) error {
	var fromHead, added, removed []string
	for _, e := range entries {
		switch e.Kind {
		case KindModified, KindDeleted, KindUntrackedAtHead:
			fromHead = append(fromHead, e.Path)
		case KindAdded:
			added = append(added, e.Path)
		default:
			removed = append(removed, e.Path)
		}
	}

	if err := m.store.CheckoutPaths(ctx, "HEAD", fromHead); err != nil {
		return err
	}
	if err := m.store.UnstagePaths(ctx, added); err != nil {
		return err
	}
	for _, p := range append(added, removed...) {
		if err := removeWorkingFile(m.store.Root(), p); err != nil {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// Restore applies the snapshot of branch to the working tree and deletes
// it. It returns nil when branch has nothing saved.
//
// A saved path conflicts when the working tree holds content for it that is
// neither the saved content nor its content at the base revision, or when
// the head of branch no longer has a path the base had. A checkout or reset
// that brought in another version of a saved path therefore conflicts. On
// any conflict nothing is written, the snapshot is kept, and a ConflictError
// names the paths. Restore is idempotent: a restore that was interrupted
// can simply be run again.
func (m *Manager) Restore(ctx context.Context, branch string) (*Snapshot, error) {
	return m.restore(ctx, branch, false)
}

// ForceRestore is Restore without the conflict check. Saved content
// replaces whatever the working tree holds for the saved paths.
func (m *Manager) ForceRestore(ctx context.Context, branch string) (*Snapshot, error) {
	return m.restore(ctx, branch, true)
}

func (m *Manager) restore(ctx context.Context, branch string, force bool) (*Snapshot, error) {
	id, err := m.store.ReadRef(RefName(branch))
	if err != nil {
		return nil, err
	}
	if id == "" {
		// a restore that stopped after dropping the snapshot only left the marker
		return nil, m.clearMarker(ctx, branch)
	}
	snap, err := m.readCommit(id)
	if err != nil {
		return nil, err
	}

	if !force {
		head, err := m.store.BranchRevision(branch)
		if err != nil {
			return nil, err
		}
		conflicts, err := m.conflicts(snap, head)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, glerrors.NewConflictError(branch, conflicts)
		}
	}

	if err := m.store.SetRef(ctx, restoringRef(branch), id); err != nil {
		return nil, err
	}
	if err := m.apply(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to restore changes of %s (still saved, run gl snapshot restore %s): %w",
			branch, branch, err)
	}
	if err := m.store.DeleteRef(ctx, RefName(branch), id); err != nil {
		return nil, err
	}
	if err := m.clearMarker(ctx, branch); err != nil {
		return nil, err
	}
	m.log.Debug("restored %d paths of %s from %s", snap.Len(), branch, id)
	return snap, nil
}

func (m *Manager) conflicts(snap *Snapshot, head string) ([]string, error) {
	var conflicts []string
	for _, e := range snap.Entries() {
		file, err := readWorkingFile(m.store.Root(), e.Path)
		if errors.Is(err, errNotAFile) {
			conflicts = append(conflicts, e.Path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Path, err)
		}

		atBase, err := m.store.FileAtRevision(snap.Base, e.Path)
		if err != nil {
			return nil, err
		}
		if file == nil {
			if e.Kind == KindDeleted || atBase == nil || head == snap.Base {
				continue
			}
			// the base had the path and the working tree lost it: only fine
			// when head still has it, i.e. the file was moved away by hand
			atHead, err := m.store.FileAtRevision(head, e.Path)
			if err != nil {
				return nil, err
			}
			if atHead == nil {
				conflicts = append(conflicts, e.Path)
			}
			continue
		}

		hash := git.HashBlob(file.content)
		if e.Kind.HasContent() && hash == e.Blob {
			continue
		}
		if atBase == nil || atBase.Hash != hash {
			conflicts = append(conflicts, e.Path)
		}
	}
	sort.Strings(conflicts)
	return conflicts, nil
}

func (m *Manager) apply(ctx context.Context, snap *Snapshot) error {
	var added, untracked []string
	for _, e := range snap.Entries() {
		if e.Kind == KindDeleted {
			if err := removeWorkingFile(m.store.Root(), e.Path); err != nil {
				return fmt.Errorf("failed to remove %s: %w", e.Path, err)
			}
			continue
		}
		content, err := m.store.ReadBlob(e.Blob)
		if err != nil {
			return err
		}
		if err := writeWorkingFile(m.store.Root(), e.Path, content, e.Mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.Path, err)
		}
		switch e.Kind {
		case KindAdded:
			added = append(added, e.Path)
		case KindUntrackedAtHead:
			untracked = append(untracked, e.Path)
		}
	}
	if err := m.store.AddPaths(ctx, added); err != nil {
		return err
	}
	return m.store.UntrackPaths(ctx, untracked)
}

func (m *Manager) clearMarker(ctx context.Context, branch string) error {
	marker, err := m.store.ReadRef(restoringRef(branch))
	if err != nil || marker == "" {
		return err
	}
	return m.store.DeleteRef(ctx, restoringRef(branch), marker)
}

// Discard drops the snapshot of branch without applying it. The dropped
// snapshot stays reachable under refs/gl/discarded until the next discard
// of the same branch.
func (m *Manager) Discard(ctx context.Context, branch string) (*Snapshot, error) {
	snap, err := m.Lookup(ctx, branch)
	if err != nil || snap == nil {
		return nil, err
	}
	if err := m.store.SetRef(ctx, DiscardedRefName(branch), snap.ID); err != nil {
		return nil, err
	}
	if err := m.store.DeleteRef(ctx, RefName(branch), snap.ID); err != nil {
		return nil, err
	}
	if err := m.clearMarker(ctx, branch); err != nil {
		return nil, err
	}
	m.log.Debug("discarded snapshot %s of %s", snap.ID, branch)
	return snap, nil
}

// Forget removes every snapshot ref of branch, the discarded one included.
// It is used when the branch itself is deleted.
func (m *Manager) Forget(ctx context.Context, branch string) error {
	for _, ref := range []string{RefName(branch), restoringRef(branch), DiscardedRefName(branch)} {
		id, err := m.store.ReadRef(ref)
		if err != nil {
			return err
		}
		if id == "" {
			continue
		}
		if err := m.store.DeleteRef(ctx, ref, id); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the snapshot of branch, or nil when it has none.
func (m *Manager) Lookup(_ context.Context, branch string) (*Snapshot, error) {
	id, err := m.store.ReadRef(RefName(branch))
	if err != nil || id == "" {
		return nil, err
	}
	return m.readCommit(id)
}

// Discarded returns the last discarded snapshot of branch, or nil.
func (m *Manager) Discarded(_ context.Context, branch string) (*Snapshot, error) {
	id, err := m.store.ReadRef(DiscardedRefName(branch))
	if err != nil || id == "" {
		return nil, err
	}
	return m.readCommit(id)
}

// Status returns the lifecycle state of the snapshot of branch.
func (m *Manager) Status(_ context.Context, branch string) (Status, error) {
	marker, err := m.store.ReadRef(restoringRef(branch))
	if err != nil {
		return StatusAbsent, err
	}
	if marker != "" {
		return StatusRestoring, nil
	}
	id, err := m.store.ReadRef(RefName(branch))
	if err != nil {
		return StatusAbsent, err
	}
	if id != "" {
		return StatusSaved, nil
	}
	return StatusAbsent, nil
}

// List returns every saved snapshot ordered by branch name.
func (m *Manager) List(_ context.Context) ([]*Snapshot, error) {
	refs, err := m.store.ListRefs(RefPrefix)
	if err != nil {
		return nil, err
	}
	snaps := make([]*Snapshot, 0, len(refs))
	for ref, id := range refs {
		snap, err := m.readCommit(id)
		if err != nil {
			return nil, err
		}
		if snap.Branch == "" {
			snap.Branch = unescapeBranch(strings.TrimPrefix(ref, RefPrefix))
		}
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Branch < snaps[j].Branch
	})
	return snaps, nil
}
