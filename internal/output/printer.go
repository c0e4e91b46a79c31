package output

import (
	"gitless.dev/gl/internal/op"
)

// Printer tells the user what the safety net did with their changes.
type Printer struct {
	splog *Splog
}

var _ op.Handler = (*Printer)(nil)

// NewPrinter creates a Printer writing through splog.
func NewPrinter(splog *Splog) *Printer {
	return &Printer{splog: splog}
}

func (p *Printer) Saved(ev op.Event) {
	p.splog.Info("Temporarily saving uncommitted changes of branch %s (%d %s)",
		ColorBranchName(ev.Branch, true), len(ev.Paths), plural(len(ev.Paths), "file", "files"))
	p.splog.Debug("snapshot %s", ev.Snapshot)
}

func (p *Printer) RestoreSucceeded(ev op.Event) {
	if ev.Operation == op.KindSwitch {
		p.splog.Info("Uncommitted changes of branch %s restored (%d %s)",
			ColorBranchName(ev.Branch, true), len(ev.Paths), plural(len(ev.Paths), "file", "files"))
		return
	}
	p.splog.Info("Uncommitted changes applied successfully to the new head of the branch")
}

func (p *Printer) ApplySucceeded(res op.Result) {
	if res.Unchanged {
		switch res.Operation {
		case op.KindSwitch:
			p.splog.Info("Already on branch %s", ColorBranchName(res.Branch, true))
		case op.KindSetHead:
			p.splog.Info("Head of branch %s is already %s", ColorBranchName(res.Branch, true), ColorRevision(res.Revision))
		}
		return
	}
	switch res.Operation {
	case op.KindSwitch:
		p.splog.Info("Switched to branch %s", ColorBranchName(res.Branch, true))
	case op.KindSetHead:
		p.splog.Info("Head of branch %s is now %s", ColorBranchName(res.Branch, true), ColorRevision(res.Revision))
	default:
		p.splog.Debug("%s finished at %s", res.Operation, res.Revision)
	}
}

func (p *Printer) ApplyFailed(res op.Result, _ error) {
	for _, branch := range res.Pending {
		p.splog.Warn("Uncommitted changes of branch %s are saved, no data was lost", ColorBranchName(branch, false))
		p.splog.Tip("They are restored when you switch to %s; run 'gl snapshot restore %s' there to retry by hand", branch, branch)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
