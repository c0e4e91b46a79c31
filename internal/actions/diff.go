package actions

import (
	"fmt"
	"strings"

	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/runtime"
)

// DiffOptions specifies options for the diff command
type DiffOptions struct {
	Paths []string
	// Stat prints a per-file summary instead of the patches.
	Stat bool
}

// DiffAction prints the changes of tracked files against the head of the
// current branch.
func DiffAction(ctx *runtime.Context, opts DiffOptions) error {
	patches, err := ctx.Repo.DiffFiles(ctx.Context, opts.Paths)
	if err != nil {
		return err
	}
	if len(patches) == 0 {
		ctx.Splog.Info("No changes to diff")
		return nil
	}

	var sb strings.Builder
	for _, p := range patches {
		if opts.Stat {
			fmt.Fprintf(&sb, "%s | %s %s %s\n", p.Path,
				output.ColorAdded(fmt.Sprintf("+%d", p.Additions)),
				output.ColorRemoved(fmt.Sprintf("-%d", p.Deletions)),
				output.ColorDim(fmt.Sprintf("(%d %s)", len(p.Hunks), pluralize(len(p.Hunks), "hunk", "hunks"))))
			continue
		}
		fmt.Fprintf(&sb, "%s\n", output.ColorHeader(fmt.Sprintf("Diff of file %s", p.Path)))
		sb.WriteString(colorPatch(p.Text))
		sb.WriteString("\n")
	}
	ctx.Splog.Page(sb.String())
	return nil
}

func colorPatch(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = output.ColorHeader(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = output.ColorDim(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = output.ColorAdded(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = output.ColorRemoved(line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
