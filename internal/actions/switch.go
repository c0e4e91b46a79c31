package actions

import (
	"errors"
	"fmt"

	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/git"
	"gitless.dev/gl/internal/op"
	"gitless.dev/gl/internal/runtime"
	"gitless.dev/gl/internal/snapshot"
)

// SwitchOptions specifies options for the switch command
type SwitchOptions struct {
	BranchName string
	// MoveOver carries the uncommitted changes of the current branch to the
	// destination instead of saving them. Changes saved on the destination
	// are discarded.
	MoveOver bool
	// MoveIgnored leaves ignored files in place so they follow the switch.
	// It has no effect together with MoveOver, which moves everything.
	MoveIgnored bool
}

// switchState is a step of a switch.
type switchState int

const (
	switchIdle switchState = iota
	switchResolving
	switchSaving
	switchCheckingOut
	switchRestoring
	switchDone
	switchFailed
)

func (s switchState) String() string {
	switch s {
	case switchIdle:
		return "idle"
	case switchResolving:
		return "resolving"
	case switchSaving:
		return "saving"
	case switchCheckingOut:
		return "checking out"
	case switchRestoring:
		return "restoring"
	case switchDone:
		return "done"
	case switchFailed:
		return "failed"
	}
	return fmt.Sprintf("switchState(%d)", int(s))
}

// switcher carries a single switch through its states.
type switcher struct {
	ctx   *runtime.Context
	opts  SwitchOptions
	net   *op.Net
	state switchState

	source string
	target *git.Branch
	result op.Result
}

// SwitchAction moves the working tree from the current branch to another
// one. Uncommitted changes of the current branch are saved and those
// previously saved on the destination are restored.
func SwitchAction(ctx *runtime.Context, opts SwitchOptions) error {
	s := &switcher{
		ctx:  ctx,
		opts: opts,
		net:  op.NewNet(op.KindSwitch, ctx.Handler, ctx.Splog),
	}
	return s.run()
}

func (s *switcher) enter(state switchState) {
	s.ctx.Splog.Debug("switch: %s -> %s", s.state, state)
	s.state = state
}

func (s *switcher) run() (err error) {
	s.enter(switchResolving)
	l, err := s.ctx.AcquireLock(fmt.Sprintf("switch to %s", s.opts.BranchName))
	if err != nil {
		return s.fail(err)
	}
	defer func() {
		if relErr := l.Release(); relErr != nil && err == nil {
			err = relErr
		}
	}()

	unchanged, err := s.resolve()
	if err != nil {
		return s.fail(err)
	}
	if unchanged {
		s.result.Unchanged = true
		return s.done()
	}

	s.enter(switchSaving)
	if err := s.save(); err != nil {
		return s.fail(err)
	}

	s.enter(switchCheckingOut)
	if err := s.ctx.Repo.Checkout(s.ctx.Context, s.target.Name); err != nil {
		return s.fail(err)
	}

	s.enter(switchRestoring)
	if err := s.restore(); err != nil {
		return s.fail(err)
	}
	return s.done()
}

// resolve reports whether the target is already the current branch.
func (s *switcher) resolve() (bool, error) {
	current, err := s.ctx.Repo.CurrentBranch()
	if err != nil {
		return false, err
	}
	s.source = current.Name
	s.result.Branch = current.Name
	s.result.Revision = current.Head

	if err := resumeRestore(s.ctx, current.Name); err != nil {
		return false, err
	}

	target, err := s.ctx.Repo.LookupBranch(s.opts.BranchName)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, glerrors.NewBranchNotFoundError(s.opts.BranchName)
	}
	s.target = target
	return target.Name == current.Name, nil
}

func (s *switcher) save() error {
	if s.opts.MoveOver {
		s.ctx.Splog.Debug("moving uncommitted changes of %s over to %s", s.source, s.target.Name)
		return nil
	}
	if s.opts.MoveIgnored && !s.ctx.Config.Snapshot.SaveIgnored {
		s.ctx.Splog.Warn("Ignored files always stay in the working tree unless snapshot.save_ignored is set, --move-ignored changes nothing")
	}
	_, err := s.ctx.Snapshots.Save(s.ctx.Context, s.source, snapshot.SaveOptions{
		IncludeUntracked: s.ctx.Config.Snapshot.SaveUntracked,
		IncludeIgnored:   s.ctx.Config.Snapshot.SaveIgnored && !s.opts.MoveIgnored,
		Operation:        string(op.KindSwitch),
		OnSave: func(snap *snapshot.Snapshot) {
			s.result.Pending = append(s.result.Pending, s.source)
			s.net.Saved(op.Event{Branch: s.source, Snapshot: snap.ID, Paths: snap.Paths()})
		},
	})
	return err
}

func (s *switcher) restore() error {
	name := s.target.Name
	s.result.Branch = name
	s.result.Revision = s.target.Head

	if s.opts.MoveOver {
		dropped, err := s.ctx.Snapshots.Discard(s.ctx.Context, name)
		if err != nil {
			return err
		}
		if dropped != nil {
			s.ctx.Splog.Warn("Uncommitted changes saved on branch %s were replaced by the ones moved over (kept in %s)",
				name, snapshot.DiscardedRefName(name))
		}
		return nil
	}

	snap, err := s.ctx.Snapshots.Restore(s.ctx.Context, name)
	if err != nil {
		if errors.Is(err, glerrors.ErrRestoreConflict) {
			s.result.Pending = append(s.result.Pending, name)
		}
		return err
	}
	if snap != nil {
		s.net.RestoreSucceeded(op.Event{Branch: name, Snapshot: snap.ID, Paths: snap.Paths()})
	}
	return nil
}

func (s *switcher) done() error {
	s.enter(switchDone)
	s.result.Pending = nil
	s.net.Finish(s.result, nil)
	return nil
}

func (s *switcher) fail(err error) error {
	s.enter(switchFailed)
	s.net.Finish(s.result, err)
	return err
}

// resumeRestore finishes a restore of branch that was interrupted before
// its snapshot could be dropped.
func resumeRestore(ctx *runtime.Context, branch string) error {
	status, err := ctx.Snapshots.Status(ctx.Context, branch)
	if err != nil || status != snapshot.StatusRestoring {
		return err
	}
	ctx.Splog.Warn("An earlier operation on branch %s stopped while restoring its uncommitted changes, finishing it", branch)
	snap, err := ctx.Snapshots.Restore(ctx.Context, branch)
	if err != nil {
		return err
	}
	if snap != nil {
		ctx.Splog.Info("Uncommitted changes of branch %s restored (%d files)", branch, snap.Len())
	}
	return nil
}
