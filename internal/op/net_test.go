package op_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitless.dev/gl/internal/op"
)

type captureLog struct {
	errors []string
}

func (l *captureLog) Debug(string, ...interface{}) {}

func (l *captureLog) Error(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func TestNetProtocolOrder(t *testing.T) {
	rec := &op.Recorder{}
	net := op.NewNet(op.KindSwitch, rec, nil)

	net.Saved(op.Event{Branch: "main", Snapshot: "abc"})
	net.Saved(op.Event{Branch: "main"})
	net.RestoreSucceeded(op.Event{Branch: "feature"})
	net.RestoreSucceeded(op.Event{Branch: "feature"})
	net.Finish(op.Result{Branch: "feature"}, nil)
	net.Finish(op.Result{Branch: "feature"}, errors.New("late"))

	require.Equal(t, []string{"Saved", "RestoreSucceeded", "ApplySucceeded"}, rec.Hooks())
	calls := rec.Calls()
	assert.Equal(t, op.KindSwitch, calls[0].Event.Operation)
	assert.Equal(t, "abc", calls[0].Event.Snapshot)
	assert.Equal(t, op.KindSwitch, calls[2].Result.Operation)
	assert.True(t, net.Finished())
}

func TestNetFinishWithError(t *testing.T) {
	mock := &op.HandlerMock{
		ApplyFailedFunc:    func(op.Result, error) {},
		ApplySucceededFunc: func(op.Result) {},
	}
	net := op.NewNet(op.KindSetHead, mock, nil)

	cause := errors.New("boom")
	net.Finish(op.Result{Branch: "main"}, cause)

	require.Len(t, mock.ApplyFailedCalls(), 1)
	require.Empty(t, mock.ApplySucceededCalls())
	assert.ErrorIs(t, mock.ApplyFailedCalls()[0].Err, cause)
	assert.Equal(t, op.KindSetHead, mock.ApplyFailedCalls()[0].Res.Operation)
}

func TestNetRecoversHandlerPanics(t *testing.T) {
	log := &captureLog{}
	mock := &op.HandlerMock{
		SavedFunc: func(op.Event) {
			panic("handler bug")
		},
		ApplySucceededFunc: func(op.Result) {},
	}
	net := op.NewNet(op.KindSwitch, mock, log)

	require.NotPanics(t, func() {
		net.Saved(op.Event{Branch: "main"})
		net.Finish(op.Result{Branch: "main"}, nil)
	})

	require.Len(t, mock.SavedCalls(), 1)
	require.Len(t, mock.ApplySucceededCalls(), 1, "a panicking hook doesn't stop the protocol")
	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "handler bug")
}

func TestNetIgnoresHooksAfterFinish(t *testing.T) {
	rec := &op.Recorder{}
	net := op.NewNet(op.KindSwitch, rec, nil)

	net.Finish(op.Result{}, nil)
	net.Saved(op.Event{})
	net.RestoreSucceeded(op.Event{})

	require.Equal(t, []string{"ApplySucceeded"}, rec.Hooks())
}

func TestNilHandlerIsNop(t *testing.T) {
	net := op.NewNet(op.KindSwitch, nil, nil)
	require.NotPanics(t, func() {
		net.Saved(op.Event{})
		net.Finish(op.Result{}, nil)
	})
	assert.True(t, net.HasSaved())
}

func TestHandlersFanOut(t *testing.T) {
	first, second := &op.Recorder{}, &op.Recorder{}
	net := op.NewNet(op.KindSetHead, op.Handlers{first, second}, nil)

	net.Saved(op.Event{Branch: "main"})
	net.Finish(op.Result{Branch: "main"}, errors.New("boom"))

	require.Equal(t, []string{"Saved", "ApplyFailed"}, first.Hooks())
	require.Equal(t, first.Hooks(), second.Hooks())
	require.EqualError(t, second.Calls()[1].Err, "boom")
}
