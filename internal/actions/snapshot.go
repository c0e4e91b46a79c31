package actions

import (
	"fmt"

	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/runtime"
	"gitless.dev/gl/internal/snapshot"
)

// ListSnapshotsAction prints the uncommitted changes saved on every branch.
func ListSnapshotsAction(ctx *runtime.Context) error {
	snaps, err := ctx.Snapshots.List(ctx.Context)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		ctx.Splog.Info("No branch has saved changes")
		return nil
	}
	output.PrintSnapshots(ctx.Splog.Writer(), snaps)
	return nil
}

// ShowSnapshotAction prints the paths saved on a branch.
func ShowSnapshotAction(ctx *runtime.Context, branch string) error {
	name, err := snapshotBranch(ctx, branch)
	if err != nil {
		return err
	}
	snap, err := ctx.Snapshots.Lookup(ctx.Context, name)
	if err != nil {
		return err
	}
	if snap == nil {
		ctx.Splog.Info("Branch %s has no saved changes", output.ColorBranchName(name, false))
		return nil
	}
	ctx.Splog.Info("Saved by %s against %s on %s", snap.Operation, output.ColorRevision(snap.Base),
		snap.Created.Local().Format("2006-01-02 15:04"))
	output.PrintSnapshotFiles(ctx.Splog.Writer(), snap)
	return nil
}

// RestoreSnapshotOptions specifies options for restoring saved changes by hand
type RestoreSnapshotOptions struct {
	// Force overwrites conflicting files with the saved content.
	Force bool
}

// RestoreSnapshotAction applies the changes saved on the current branch.
// It is the manual retry after a restore ran into conflicts.
func RestoreSnapshotAction(ctx *runtime.Context, opts RestoreSnapshotOptions) (err error) {
	l, err := ctx.AcquireLock("restore saved changes")
	if err != nil {
		return err
	}
	defer func() {
		if relErr := l.Release(); relErr != nil && err == nil {
			err = relErr
		}
	}()

	current, err := ctx.Repo.CurrentBranch()
	if err != nil {
		return err
	}
	restore := ctx.Snapshots.Restore
	if opts.Force {
		restore = ctx.Snapshots.ForceRestore
	}
	snap, err := restore(ctx.Context, current.Name)
	if err != nil {
		return err
	}
	if snap == nil {
		ctx.Splog.Info("Branch %s has no saved changes", output.ColorBranchName(current.Name, true))
		return nil
	}
	ctx.Splog.Info("Uncommitted changes of branch %s restored (%d files)",
		output.ColorBranchName(current.Name, true), snap.Len())
	return nil
}

// DropSnapshotAction throws away the changes saved on a branch. The last
// dropped snapshot of each branch stays reachable under refs/gl/discarded.
func DropSnapshotAction(ctx *runtime.Context, branch string) (err error) {
	name, err := snapshotBranch(ctx, branch)
	if err != nil {
		return err
	}

	l, err := ctx.AcquireLock(fmt.Sprintf("drop saved changes of %s", name))
	if err != nil {
		return err
	}
	defer func() {
		if relErr := l.Release(); relErr != nil && err == nil {
			err = relErr
		}
	}()

	snap, err := ctx.Snapshots.Discard(ctx.Context, name)
	if err != nil {
		return err
	}
	if snap == nil {
		ctx.Splog.Info("Branch %s has no saved changes", output.ColorBranchName(name, false))
		return nil
	}
	ctx.Splog.Info("Dropped %d saved %s of branch %s", snap.Len(), pluralize(snap.Len(), "file", "files"), output.ColorBranchName(name, false))
	ctx.Splog.Tip("They can still be recovered from %s", snapshot.DiscardedRefName(name))
	return nil
}

// snapshotBranch defaults to the current branch. Saved changes of deleted
// branches are forgotten with them, so the branch must exist.
func snapshotBranch(ctx *runtime.Context, branch string) (string, error) {
	if branch == "" {
		current, err := ctx.Repo.CurrentBranch()
		if err != nil {
			return "", err
		}
		return current.Name, nil
	}
	b, err := ctx.Repo.LookupBranch(branch)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", glerrors.NewBranchNotFoundError(branch)
	}
	return b.Name, nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
