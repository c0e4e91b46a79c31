package actions

import (
	"fmt"
	"os"
	"path/filepath"

	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/git"
	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/runtime"
)

// CheckoutFilesOptions specifies options for checking out files
type CheckoutFilesOptions struct {
	// Paths are relative to the repository root.
	Paths []string
	// CommitPoint is the commit the files are read from (HEAD by default).
	CommitPoint string
	// Confirm is asked before overwriting uncommitted changes to a path;
	// nil overwrites without asking.
	Confirm func(path string) (bool, error)
}

// CheckoutFilesAction replaces the working version of files with the one
// recorded in a commit.
func CheckoutFilesAction(ctx *runtime.Context, opts CheckoutFilesOptions) (err error) {
	if len(opts.Paths) == 0 {
		return glerrors.NewUserError("no file given")
	}
	at := opts.CommitPoint
	if at == "" {
		at = "HEAD"
	}
	commit, err := ctx.Repo.ResolveRevision(at)
	if err != nil {
		return glerrors.NewUserError("%v", err)
	}

	l, err := ctx.AcquireLock("check out files")
	if err != nil {
		return err
	}
	defer func() {
		if relErr := l.Release(); relErr != nil && err == nil {
			err = relErr
		}
	}()

	changed, err := changedPaths(ctx)
	if err != nil {
		return err
	}

	var failed int
	for _, path := range opts.Paths {
		done, err := checkoutFile(ctx, commit, path, changed[path], opts.Confirm)
		if err != nil {
			ctx.Splog.Error("%v", err)
			failed++
			continue
		}
		if done {
			ctx.Splog.Info("File %s checked out from %s", path, output.ColorRevision(commit))
		} else {
			ctx.Splog.Info("Kept %s", path)
		}
	}
	if failed > 0 {
		return glerrors.NewUserError("%d of %d files could not be checked out", failed, len(opts.Paths))
	}
	return nil
}

func checkoutFile(ctx *runtime.Context, commit, path string, changed bool, confirm func(string) (bool, error)) (bool, error) {
	file, err := ctx.Repo.FileAtRevision(commit, path)
	if err != nil {
		return false, err
	}
	if file == nil {
		return false, glerrors.NewUserError("file %s doesn't exist at %s", path, output.ShortRevision(commit))
	}
	if changed && confirm != nil {
		ok, err := confirm(path)
		if err != nil || !ok {
			return false, err
		}
	}
	if err := ctx.Repo.CheckoutPaths(ctx.Context, commit, []string{path}); err != nil {
		return false, err
	}
	return true, nil
}

// changedPaths returns the tracked paths with uncommitted changes.
func changedPaths(ctx *runtime.Context) (map[string]bool, error) {
	statuses, err := ctx.Repo.Status(ctx.Context, git.StatusOptions{})
	if err != nil {
		return nil, err
	}
	changed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		changed[s.Path] = true
	}
	return changed, nil
}

// TrackAction starts tracking untracked files.
func TrackAction(ctx *runtime.Context, paths []string) error {
	statuses, err := ctx.Repo.Status(ctx.Context, git.StatusOptions{IncludeIgnored: true})
	if err != nil {
		return err
	}
	ignored := make(map[string]bool)
	for _, s := range statuses {
		if s.Type == git.FileIgnored {
			ignored[s.Path] = true
		}
	}

	return eachFile(ctx, "track", paths, func(path string) error {
		tracked, err := ctx.Repo.IsTracked(ctx.Context, path)
		if err != nil {
			return err
		}
		if tracked {
			return glerrors.NewUserError("file %s is already tracked", path)
		}
		if ignored[path] {
			return glerrors.NewUserError("file %s is ignored, edit the .gitignore file to stop ignoring it", path)
		}
		info, err := os.Stat(filepath.Join(ctx.Repo.Root(), filepath.FromSlash(path)))
		if err != nil {
			if os.IsNotExist(err) {
				return glerrors.NewUserError("file %s doesn't exist", path)
			}
			return err
		}
		if info.IsDir() {
			return glerrors.NewUserError("%s is a directory", path)
		}
		if err := ctx.Repo.AddPaths(ctx.Context, []string{path}); err != nil {
			return err
		}
		ctx.Splog.Info("File %s is now a tracked file", path)
		return nil
	})
}

// UntrackAction stops tracking files, keeping them in the working tree.
func UntrackAction(ctx *runtime.Context, paths []string) error {
	head, err := ctx.Repo.ResolveRevision("HEAD")
	if err != nil {
		return err
	}
	return eachFile(ctx, "untrack", paths, func(path string) error {
		tracked, err := ctx.Repo.IsTracked(ctx.Context, path)
		if err != nil {
			return err
		}
		if !tracked {
			return glerrors.NewUserError("file %s is already untracked", path)
		}
		atHead, err := ctx.Repo.FileAtRevision(head, path)
		if err != nil {
			return err
		}
		if atHead != nil {
			err = ctx.Repo.UntrackPaths(ctx.Context, []string{path})
		} else {
			err = ctx.Repo.UnstagePaths(ctx.Context, []string{path})
		}
		if err != nil {
			return err
		}
		ctx.Splog.Info("File %s is now an untracked file", path)
		return nil
	})
}

func eachFile(ctx *runtime.Context, verb string, paths []string, fn func(path string) error) (err error) {
	if len(paths) == 0 {
		return glerrors.NewUserError("no file given")
	}

	l, err := ctx.AcquireLock(fmt.Sprintf("%s files", verb))
	if err != nil {
		return err
	}
	defer func() {
		if relErr := l.Release(); relErr != nil && err == nil {
			err = relErr
		}
	}()

	var failed int
	for _, path := range paths {
		if err := fn(path); err != nil {
			ctx.Splog.Error("%v", err)
			failed++
		}
	}
	if failed > 0 {
		return glerrors.NewUserError("%d of %d files could not be %sed", failed, len(paths), verb)
	}
	return nil
}
