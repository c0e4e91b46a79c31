package op

import (
	"fmt"
	"runtime/debug"
)

// Logger is the subset of the CLI logger the net reports handler bugs to.
type Logger interface {
	Debug(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Net guards one operation's use of a Handler.
//
// Saved and RestoreSucceeded are delivered at most once, and exactly one of
// ApplySucceeded or ApplyFailed is delivered, by Finish. A panicking handler
// is logged and otherwise ignored so it can't change the outcome of the
// operation.
type Net struct {
	kind     Kind
	handler  Handler
	log      Logger
	saved    bool
	restored bool
	finished bool
}

// NewNet binds handler to an operation of the given kind.
// A nil handler behaves like Nop; a nil log discards handler panics.
func NewNet(kind Kind, handler Handler, log Logger) *Net {
	if handler == nil {
		handler = Nop{}
	}
	return &Net{kind: kind, handler: handler, log: log}
}

// Kind returns the operation kind.
func (n *Net) Kind() Kind {
	return n.kind
}

// Saved reports that uncommitted changes were stored.
func (n *Net) Saved(ev Event) {
	if n.saved || n.finished {
		return
	}
	n.saved = true
	ev.Operation = n.kind
	n.call("Saved", func() { n.handler.Saved(ev) })
}

// RestoreSucceeded reports that stored changes were applied again.
func (n *Net) RestoreSucceeded(ev Event) {
	if n.restored || n.finished {
		return
	}
	n.restored = true
	ev.Operation = n.kind
	n.call("RestoreSucceeded", func() { n.handler.RestoreSucceeded(ev) })
}

// Finish delivers the operation outcome: ApplySucceeded when err is nil,
// ApplyFailed otherwise. Only the first call has an effect.
func (n *Net) Finish(res Result, err error) {
	if n.finished {
		return
	}
	n.finished = true
	res.Operation = n.kind
	if err != nil {
		n.call("ApplyFailed", func() { n.handler.ApplyFailed(res, err) })
		return
	}
	n.call("ApplySucceeded", func() { n.handler.ApplySucceeded(res) })
}

// Finished reports whether the outcome was delivered.
func (n *Net) Finished() bool {
	return n.finished
}

// HasSaved reports whether Saved was delivered.
func (n *Net) HasSaved() bool {
	return n.saved
}

func (n *Net) call(hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if n.log == nil {
				return
			}
			n.log.Error("internal error: %s handler for %s panicked: %v", hook, n.kind, r)
			n.log.Debug("%s", debug.Stack())
		}
	}()
	fn()
}

// String is used in debug logs.
func (n *Net) String() string {
	return fmt.Sprintf("%s(saved=%t restored=%t finished=%t)", n.kind, n.saved, n.restored, n.finished)
}
