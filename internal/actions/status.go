package actions

import (
	"fmt"
	"strings"

	"gitless.dev/gl/internal/git"
	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/runtime"
	"gitless.dev/gl/internal/snapshot"
)

// StatusAction prints the current branch, its pending changes and any
// changes saved on other branches.
func StatusAction(ctx *runtime.Context) error {
	current, err := ctx.Repo.CurrentBranch()
	if err != nil {
		return err
	}
	ctx.Splog.Info("On branch %s", output.ColorBranchName(current.Name, true))
	if current.Upstream != "" {
		ctx.Splog.Info("Upstream is %s", current.Upstream)
	}

	status, err := ctx.Snapshots.Status(ctx.Context, current.Name)
	if err != nil {
		return err
	}
	if status == snapshot.StatusRestoring {
		ctx.Splog.Warn("A restore of the uncommitted changes of this branch was interrupted")
		ctx.Splog.Tip("Run 'gl snapshot restore' to finish it")
	}

	statuses, err := ctx.Repo.Status(ctx.Context, git.StatusOptions{IncludeUntracked: true})
	if err != nil {
		return err
	}
	var tracked, untracked []git.FileStatus
	for _, st := range statuses {
		if st.Type == git.FileUntracked {
			untracked = append(untracked, st)
		} else {
			tracked = append(tracked, st)
		}
	}

	ctx.Splog.Newline()
	if len(tracked) == 0 {
		ctx.Splog.Info("No tracked files with modifications")
	} else {
		ctx.Splog.Info("%s", output.ColorHeader("Tracked files with modifications:"))
		for _, st := range tracked {
			ctx.Splog.Info("  %s", describeStatus(st))
		}
	}
	ctx.Splog.Newline()
	if len(untracked) == 0 {
		ctx.Splog.Info("No untracked files")
	} else {
		ctx.Splog.Info("%s", output.ColorHeader("Untracked files:"))
		for _, st := range untracked {
			ctx.Splog.Info("  %s", output.ColorAdded(st.Path))
		}
	}

	snaps, err := ctx.Snapshots.List(ctx.Context)
	if err != nil {
		return err
	}
	var others []string
	for _, s := range snaps {
		if s.Branch != current.Name {
			others = append(others, fmt.Sprintf("%s (%d)", s.Branch, s.Len()))
		}
	}
	if len(others) > 0 {
		ctx.Splog.Newline()
		ctx.Splog.Info("Uncommitted changes saved on %s", strings.Join(others, ", "))
	}
	return nil
}

func describeStatus(st git.FileStatus) string {
	switch {
	case st.InConflict:
		return output.ColorWarning(st.Path + " (with conflicts)")
	case !st.ExistsAtHead:
		return output.ColorAdded(st.Path + " (new file)")
	case !st.ExistsInWorkdir:
		return output.ColorRemoved(st.Path + " (deleted)")
	}
	return st.Path
}
