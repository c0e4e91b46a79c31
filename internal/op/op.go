// Package op defines the safety-net protocol risky operations follow around
// their core action.
//
// An operation that can clobber uncommitted work (switch, set-head, and
// later fuse, resolve, commit --amend) saves the working state first,
// applies its change, and restores the state afterwards. A Handler is told
// about each step so the user always knows where their changes are.
package op

//go:generate go tool moq -out handler_mock.go . Handler

// Kind names the operation running under the protocol.
type Kind string

const (
	KindSwitch      Kind = "switch"
	KindSetHead     Kind = "set-head"
	KindFuse        Kind = "fuse"
	KindResolve     Kind = "resolve"
	KindCommitAmend Kind = "commit-amend"
)

// Event describes a save or restore of uncommitted changes.
type Event struct {
	Operation Kind
	Branch    string
	// Snapshot is the id of the stored snapshot.
	Snapshot string
	Paths    []string
}

// Result describes the outcome of an operation's core action.
type Result struct {
	Operation Kind
	// Branch is the branch current after the operation.
	Branch string
	// Revision is the head of Branch after the operation.
	Revision string
	// Pending names the branches left with saved changes because the
	// operation failed after saving them.
	Pending []string
	// Unchanged is set when there was nothing to do.
	Unchanged bool
}

// Handler receives the protocol notifications. Calls are synchronous and
// happen on the goroutine running the operation.
type Handler interface {
	// Saved is called once uncommitted changes are stored, before they are
	// moved out of the working tree.
	Saved(ev Event)
	// ApplySucceeded is called once the operation completed.
	ApplySucceeded(res Result)
	// ApplyFailed is called when the operation stopped with err.
	ApplyFailed(res Result, err error)
	// RestoreSucceeded is called after stored changes were put back.
	RestoreSucceeded(ev Event)
}

// Nop ignores every notification.
type Nop struct{}

var _ Handler = Nop{}

func (Nop) Saved(Event)               {}
func (Nop) ApplySucceeded(Result)     {}
func (Nop) ApplyFailed(Result, error) {}
func (Nop) RestoreSucceeded(Event)    {}

// Handlers delivers every notification to each handler in turn.
type Handlers []Handler

var _ Handler = Handlers(nil)

func (hs Handlers) Saved(ev Event) {
	for _, h := range hs {
		h.Saved(ev)
	}
}

func (hs Handlers) ApplySucceeded(res Result) {
	for _, h := range hs {
		h.ApplySucceeded(res)
	}
}

func (hs Handlers) ApplyFailed(res Result, err error) {
	for _, h := range hs {
		h.ApplyFailed(res, err)
	}
}

func (hs Handlers) RestoreSucceeded(ev Event) {
	for _, h := range hs {
		h.RestoreSucceeded(ev)
	}
}
