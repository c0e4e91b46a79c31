package actions

import (
	"fmt"

	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/runtime"
	"gitless.dev/gl/internal/snapshot"
)

// ListBranchesAction prints every local branch together with the changes
// saved on it.
func ListBranchesAction(ctx *runtime.Context) error {
	branches, err := ctx.Repo.ListBranches()
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		ctx.Splog.Info("No branches")
		return nil
	}

	rows := make([]output.BranchRow, 0, len(branches))
	for _, b := range branches {
		row := output.BranchRow{
			Name:      b.Name,
			IsCurrent: b.IsCurrent,
			Upstream:  b.Upstream,
			Head:      b.Head,
		}
		row.Status, err = ctx.Snapshots.Status(ctx.Context, b.Name)
		if err != nil {
			return err
		}
		snap, err := ctx.Snapshots.Lookup(ctx.Context, b.Name)
		if err != nil {
			return err
		}
		if snap != nil {
			row.Saved = snap.Len()
		}
		rows = append(rows, row)
	}
	output.PrintBranches(ctx.Splog.Writer(), rows)
	return nil
}

// CreateBranchOptions specifies options for creating branches
type CreateBranchOptions struct {
	Names []string
	// DivergentPoint is the revision the new branches start from (HEAD by default).
	DivergentPoint string
}

// CreateBranchAction creates branches without switching to them.
func CreateBranchAction(ctx *runtime.Context, opts CreateBranchOptions) error {
	if len(opts.Names) == 0 {
		return glerrors.NewUserError("no branch name given")
	}
	from := opts.DivergentPoint
	if from == "" {
		from = "HEAD"
	}

	var failed int
	for _, name := range opts.Names {
		b, err := ctx.Repo.CreateBranch(ctx.Context, name, from)
		if err != nil {
			ctx.Splog.Error("%v", err)
			failed++
			continue
		}
		ctx.Splog.Info("Created new branch %s at %s", output.ColorBranchName(b.Name, false), output.ColorRevision(b.Head))
	}
	if failed > 0 {
		return glerrors.NewUserError("%d of %d branches could not be created", failed, len(opts.Names))
	}
	ctx.Splog.Tip("To switch to a new branch run 'gl switch <name>'")
	return nil
}

// DeleteBranchOptions specifies options for deleting branches
type DeleteBranchOptions struct {
	Names []string
	// Confirm is asked before each deletion; nil deletes without asking.
	Confirm func(branch string, saved *snapshot.Snapshot) (bool, error)
}

// DeleteBranchAction deletes branches and any uncommitted changes saved on them.
func DeleteBranchAction(ctx *runtime.Context, opts DeleteBranchOptions) (err error) {
	if len(opts.Names) == 0 {
		return glerrors.NewUserError("no branch name given")
	}

	l, err := ctx.AcquireLock("delete branches")
	if err != nil {
		return err
	}
	defer func() {
		if relErr := l.Release(); relErr != nil && err == nil {
			err = relErr
		}
	}()

	var failed int
	for _, name := range opts.Names {
		deleted, err := deleteBranch(ctx, name, opts.Confirm)
		if err != nil {
			ctx.Splog.Error("%v", err)
			failed++
			continue
		}
		if !deleted {
			ctx.Splog.Info("Kept branch %s", output.ColorBranchName(name, false))
		}
	}
	if failed > 0 {
		return glerrors.NewUserError("%d of %d branches could not be deleted", failed, len(opts.Names))
	}
	return nil
}

func deleteBranch(ctx *runtime.Context, name string, confirm func(string, *snapshot.Snapshot) (bool, error)) (bool, error) {
	b, err := ctx.Repo.LookupBranch(name)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, glerrors.NewBranchNotFoundError(name)
	}
	if b.IsCurrent {
		return false, glerrors.NewUserError("can't remove the current branch %s", name)
	}

	saved, err := ctx.Snapshots.Lookup(ctx.Context, name)
	if err != nil {
		return false, err
	}
	if confirm != nil {
		ok, err := confirm(name, saved)
		if err != nil {
			return false, fmt.Errorf("canceled: %w", err)
		}
		if !ok {
			return false, nil
		}
	}

	if err := ctx.Repo.DeleteBranch(ctx.Context, name); err != nil {
		return false, err
	}
	if err := ctx.Snapshots.Forget(ctx.Context, name); err != nil {
		return true, fmt.Errorf("branch %s was deleted but its saved changes could not be removed: %w", name, err)
	}
	ctx.Splog.Info("Branch %s removed", output.ColorBranchName(name, false))
	return true, nil
}
