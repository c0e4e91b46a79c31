package actions

import (
	"fmt"
	"strings"

	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/runtime"
)

// HistoryOptions specifies options for the history command
type HistoryOptions struct {
	// Branch defaults to the current branch.
	Branch string
	// Limit caps the number of commits shown; zero shows all of them.
	Limit int
	// Compact prints one line per commit.
	Compact bool
}

// HistoryAction prints the commits of a branch, newest first.
func HistoryAction(ctx *runtime.Context, opts HistoryOptions) error {
	branch, err := snapshotBranch(ctx, opts.Branch)
	if err != nil {
		return err
	}

	commits, err := ctx.Repo.History(branch, opts.Limit)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, c := range commits {
		if opts.Compact {
			fmt.Fprintf(&sb, "%s %s\n", output.ColorRevision(c.Hash), c.Subject)
			continue
		}
		fmt.Fprintf(&sb, "%s\n", output.ColorHeader("Commit Id: "+c.Hash))
		fmt.Fprintf(&sb, "Author:    %s <%s>\n", c.Author, c.Email)
		fmt.Fprintf(&sb, "Date:      %s\n\n", c.When.Format("Mon Jan 2 15:04:05 2006 -0700"))
		for _, line := range strings.Split(c.Message, "\n") {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
		sb.WriteString("\n")
	}
	ctx.Splog.Page(strings.TrimRight(sb.String(), "\n"))
	return nil
}
