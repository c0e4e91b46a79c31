package actions

import (
	"fmt"

	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/op"
	"gitless.dev/gl/internal/runtime"
	"gitless.dev/gl/internal/snapshot"
)

// SetHeadOptions specifies options for moving the head of the current branch
type SetHeadOptions struct {
	Revision string
}

// SetHeadAction points the current branch at another commit. Uncommitted
// changes are saved before the reset and applied again on the new head.
func SetHeadAction(ctx *runtime.Context, opts SetHeadOptions) (err error) {
	net := op.NewNet(op.KindSetHead, ctx.Handler, ctx.Splog)
	var res op.Result
	defer func() {
		net.Finish(res, err)
	}()

	l, err := ctx.AcquireLock(fmt.Sprintf("set head to %s", opts.Revision))
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
	res.Branch = current.Name
	res.Revision = current.Head

	if err := resumeRestore(ctx, current.Name); err != nil {
		return err
	}

	revision, err := ctx.Repo.ResolveRevision(opts.Revision)
	if err != nil {
		return glerrors.NewUserError("%v", err)
	}
	if revision == current.Head {
		res.Unchanged = true
		return nil
	}

	_, err = ctx.Snapshots.Save(ctx.Context, current.Name, snapshot.SaveOptions{
		IncludeUntracked: ctx.Config.Snapshot.SaveUntracked,
		IncludeIgnored:   ctx.Config.Snapshot.SaveIgnored,
		Operation:        string(op.KindSetHead),
		OnSave: func(snap *snapshot.Snapshot) {
			res.Pending = []string{current.Name}
			net.Saved(op.Event{Branch: current.Name, Snapshot: snap.ID, Paths: snap.Paths()})
		},
	})
	if err != nil {
		return err
	}

	if err := ctx.Repo.ResetHard(ctx.Context, revision); err != nil {
		return err
	}
	res.Revision = revision

	restored, err := ctx.Snapshots.Restore(ctx.Context, current.Name)
	if err != nil {
		return err
	}
	if restored != nil {
		net.RestoreSucceeded(op.Event{Branch: current.Name, Snapshot: restored.ID, Paths: restored.Paths()})
	}
	res.Pending = nil
	return nil
}
