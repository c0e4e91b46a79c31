package op

import "sync"

// Call is one notification captured by a Recorder.
type Call struct {
	Hook   string
	Event  Event
	Result Result
	Err    error
}

// Recorder is a Handler that keeps every notification in order.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

var _ Handler = (*Recorder)(nil)

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

func (r *Recorder) Saved(ev Event) {
	r.record(Call{Hook: "Saved", Event: ev})
}

func (r *Recorder) ApplySucceeded(res Result) {
	r.record(Call{Hook: "ApplySucceeded", Result: res})
}

func (r *Recorder) ApplyFailed(res Result, err error) {
	r.record(Call{Hook: "ApplyFailed", Result: res, Err: err})
}

func (r *Recorder) RestoreSucceeded(ev Event) {
	r.record(Call{Hook: "RestoreSucceeded", Event: ev})
}

// Calls returns the captured notifications.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Hooks returns the names of the captured notifications in order.
func (r *Recorder) Hooks() []string {
	calls := r.Calls()
	hooks := make([]string, len(calls))
	for i, c := range calls {
		hooks[i] = c.Hook
	}
	return hooks
}
