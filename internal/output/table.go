package output

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"gitless.dev/gl/internal/snapshot"
)

var glTableStyle = table.Style{
	Name: "gl",
	Box: table.BoxStyle{
		PaddingLeft:  "",
		PaddingRight: "  ",
	},
	Options: table.Options{
		DrawBorder:      false,
		SeparateHeader:  false,
		SeparateRows:    false,
		SeparateColumns: false,
	},
}

// BranchRow is one line of the branch list.
type BranchRow struct {
	Name      string
	IsCurrent bool
	Upstream  string
	Head      string
	// Saved is the number of paths in the branch's snapshot.
	Saved  int
	Status snapshot.Status
}

// PrintBranches renders the branch list.
func PrintBranches(w io.Writer, rows []BranchRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"", "BRANCH", "HEAD", "UPSTREAM", "SAVED CHANGES"})

	for _, r := range rows {
		marker := " "
		if r.IsCurrent {
			marker = text.FgGreen.Sprint("*")
		}
		upstream := r.Upstream
		if upstream == "" {
			upstream = ColorDim("-")
		}
		saved := ""
		switch r.Status {
		case snapshot.StatusSaved:
			saved = ColorWarning(fmt.Sprintf("%d %s", r.Saved, plural(r.Saved, "file", "files")))
		case snapshot.StatusRestoring:
			saved = ColorWarning("restore interrupted")
		}
		tw.AppendRow(table.Row{marker, ColorBranchName(r.Name, r.IsCurrent), ColorRevision(r.Head), upstream, saved})
	}

	tw.SetStyle(glTableStyle)
	tw.Render()
}

// PrintSnapshots renders the list of saved changes.
func PrintSnapshots(w io.Writer, snaps []*snapshot.Snapshot) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"BRANCH", "BASE", "FILES", "SAVED BY", "CREATED"})

	for _, s := range snaps {
		tw.AppendRow(table.Row{
			ColorBranchName(s.Branch, false),
			ColorRevision(s.Base),
			s.Len(),
			s.Operation,
			s.Created.Local().Format("2006-01-02 15:04"),
		})
	}

	tw.SetStyle(glTableStyle)
	tw.Render()
}

// PrintSnapshotFiles renders the entries of one snapshot.
func PrintSnapshotFiles(w io.Writer, s *snapshot.Snapshot) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	for _, e := range s.Entries() {
		tw.AppendRow(table.Row{kindLabel(e.Kind), e.Path})
	}
	tw.SetStyle(glTableStyle)
	tw.Render()
}

func kindLabel(kind snapshot.Kind) string {
	switch kind {
	case snapshot.KindAdded, snapshot.KindUntracked, snapshot.KindUntrackedAtHead:
		return ColorAdded(string(kind))
	case snapshot.KindDeleted:
		return ColorRemoved(string(kind))
	case snapshot.KindIgnored:
		return ColorDim(string(kind))
	default:
		return ColorWarning(string(kind))
	}
}

// TagRow is one line of the tag list.
type TagRow struct {
	Name    string
	Commit  string
	Subject string
}

// PrintTags renders the tag list.
func PrintTags(w io.Writer, rows []TagRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"TAG", "COMMIT", "SUBJECT"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.Name, ColorRevision(r.Commit), r.Subject})
	}
	tw.SetStyle(glTableStyle)
	tw.Render()
}
