// Package lock provides the repository-wide lock that serialises gl
// operations across processes.
//
// The lock is an OS advisory lock on a file under the git directory. The
// kernel drops it when the holding process exits, so a crashed gl never
// leaves the repository locked.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	glerrors "gitless.dev/gl/internal/errors"
)

// FileName is the lock file name inside <gitdir>/gl.
const FileName = "lock"

// pollInterval is how often Acquire retries while waiting for the lock.
const pollInterval = 50 * time.Millisecond

// errWouldBlock is returned by the platform tryLock when another holder has the lock.
var errWouldBlock = errors.New("lock held elsewhere")

// Options controls Acquire.
type Options struct {
	// Timeout is how long to wait for the lock. Zero fails immediately.
	Timeout time.Duration
	// Owner describes the operation holding the lock, shown to contenders.
	Owner string
}

// Lock is a held repository lock.
type Lock struct {
	path string
	file *os.File
}

// PathFor returns the lock file path for a git directory.
func PathFor(gitDir string) string {
	return filepath.Join(gitDir, "gl", FileName)
}

// Acquire takes the lock at path, waiting up to opts.Timeout.
// It returns a LockContentionError when the lock stays held by someone else.
func Acquire(ctx context.Context, path string, opts Options) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	deadline := time.Now().Add(opts.Timeout)
	for {
		l, err := tryAcquire(path)
		if err == nil {
			l.writeHolder(opts.Owner)
			return l, nil
		}
		if !errors.Is(err, errWouldBlock) {
			return nil, err
		}
		if !time.Now().Before(deadline) {
			return nil, glerrors.NewLockContentionError(path, readHolder(path))
		}

		timer := time.NewTimer(pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func tryAcquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := tryLock(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Lock{path: path, file: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. Safe to call on nil receiver and idempotent.
// The file itself stays in place; removing it would let a waiter lock an
// unlinked inode.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = l.file.Truncate(0)
	unlockErr := unlock(l.file)
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return fmt.Errorf("failed to release lock: %w", unlockErr)
	}
	return closeErr
}

func (l *Lock) writeHolder(owner string) {
	holder := "pid " + strconv.Itoa(os.Getpid())
	if owner != "" {
		holder += " (" + owner + ")"
	}
	if err := l.file.Truncate(0); err != nil {
		return
	}
	_, _ = l.file.WriteAt([]byte(holder+"\n"), 0)
}

func readHolder(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
