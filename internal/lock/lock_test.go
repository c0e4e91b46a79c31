package lock_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/lock"
)

func TestAcquireRelease(t *testing.T) {
	path := lock.PathFor(t.TempDir())
	ctx := context.Background()

	l, err := lock.Acquire(ctx, path, lock.Options{Owner: "switch"})
	require.NoError(t, err)
	require.Equal(t, path, l.Path())
	require.NoError(t, l.Release())
	require.NoError(t, l.Release(), "release is idempotent")

	again, err := lock.Acquire(ctx, path, lock.Options{})
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestAcquireContention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gl", lock.FileName)
	ctx := context.Background()

	held, err := lock.Acquire(ctx, path, lock.Options{Owner: "switch"})
	require.NoError(t, err)
	defer held.Release()

	_, err = lock.Acquire(ctx, path, lock.Options{})
	require.ErrorIs(t, err, glerrors.ErrLockContention)
	var contention *glerrors.LockContentionError
	require.ErrorAs(t, err, &contention)
	require.Contains(t, contention.Holder, "switch")
	require.Equal(t, glerrors.ExitErrorsFound, glerrors.ExitCode(err))
}

func TestAcquireWaitsForRelease(t *testing.T) {
	path := lock.PathFor(t.TempDir())
	ctx := context.Background()

	held, err := lock.Acquire(ctx, path, lock.Options{})
	require.NoError(t, err)
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = held.Release()
	}()

	l, err := lock.Acquire(ctx, path, lock.Options{Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.NoError(t, l.Release())
}

func TestAcquireHonoursContext(t *testing.T) {
	path := lock.PathFor(t.TempDir())

	held, err := lock.Acquire(context.Background(), path, lock.Options{})
	require.NoError(t, err)
	defer held.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = lock.Acquire(ctx, path, lock.Options{Timeout: time.Minute})
	require.ErrorIs(t, err, context.Canceled)
}
