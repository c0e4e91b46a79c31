// Package errors provides sentinel errors and custom error types for gl.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes reported by the gl binary.
const (
	ExitSuccess       = 0
	ExitErrorsFound   = 1
	ExitInternalError = 3
	ExitNotInRepo     = 4
)

// Sentinel errors for common conditions
var (
	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrRestoreConflict indicates that saved changes could not be reapplied
	ErrRestoreConflict = errors.New("restore conflict")

	// ErrCheckoutBlocked indicates that git refused to check out a branch
	ErrCheckoutBlocked = errors.New("checkout blocked")

	// ErrLockContention indicates that another gl process holds the repository lock
	ErrLockContention = errors.New("repository is locked")

	// ErrSnapshotExists indicates that a branch already owns saved changes
	ErrSnapshotExists = errors.New("snapshot already exists")

	// ErrNotInRepo indicates that the working directory is not inside a repository
	ErrNotInRepo = errors.New("not in a repository")

	// ErrShallowClone indicates that the repository is a shallow clone
	ErrShallowClone = errors.New("shallow clone")

	// ErrEmptyRepository indicates that the repository has no commits
	ErrEmptyRepository = errors.New("empty repository")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")
)

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s doesn't exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// ConflictError is returned when saved changes of a branch collide with
// content already present in the working tree. The snapshot is kept.
type ConflictError struct {
	BranchName string
	Paths      []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"uncommitted changes saved on branch %s conflict with the working tree (%s); "+
			"the changes are still saved, no data was lost",
		e.BranchName, strings.Join(e.Paths, ", "))
}

// Is returns true if the target error is ErrRestoreConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrRestoreConflict
}

// NewConflictError creates a new ConflictError
func NewConflictError(branchName string, paths []string) *ConflictError {
	return &ConflictError{BranchName: branchName, Paths: paths}
}

// CheckoutBlockedError is returned when git refuses to switch the working
// tree, typically because local files would be overwritten.
type CheckoutBlockedError struct {
	BranchName string
	Paths      []string
	Err        error
}

func (e *CheckoutBlockedError) Error() string {
	msg := fmt.Sprintf("can't switch to branch %s", e.BranchName)
	if len(e.Paths) > 0 {
		msg += fmt.Sprintf(": local files would be overwritten (%s)", strings.Join(e.Paths, ", "))
	}
	return msg + "; any saved changes were kept"
}

// Is returns true if the target error is ErrCheckoutBlocked
func (e *CheckoutBlockedError) Is(target error) bool {
	return target == ErrCheckoutBlocked
}

func (e *CheckoutBlockedError) Unwrap() error {
	return e.Err
}

// NewCheckoutBlockedError creates a new CheckoutBlockedError
func NewCheckoutBlockedError(branchName string, paths []string, err error) *CheckoutBlockedError {
	return &CheckoutBlockedError{BranchName: branchName, Paths: paths, Err: err}
}

// LockContentionError is returned when another process holds the repository lock
type LockContentionError struct {
	Path   string
	Holder string
}

func (e *LockContentionError) Error() string {
	if e.Holder != "" {
		return fmt.Sprintf("another gl operation is in progress (%s); retry once it finishes", e.Holder)
	}
	return fmt.Sprintf("another gl operation is in progress (lock %s); retry once it finishes", e.Path)
}

// Is returns true if the target error is ErrLockContention
func (e *LockContentionError) Is(target error) bool {
	return target == ErrLockContention
}

// NewLockContentionError creates a new LockContentionError
func NewLockContentionError(path, holder string) *LockContentionError {
	return &LockContentionError{Path: path, Holder: holder}
}

// SnapshotExistsError is returned when a branch already owns saved changes
// taken against a different base revision.
type SnapshotExistsError struct {
	BranchName string
	Base       string
}

func (e *SnapshotExistsError) Error() string {
	return fmt.Sprintf(
		"branch %s already has uncommitted changes saved against %s; restore or drop them first",
		e.BranchName, shortRevision(e.Base))
}

// Is returns true if the target error is ErrSnapshotExists
func (e *SnapshotExistsError) Is(target error) bool {
	return target == ErrSnapshotExists
}

// RepositoryNotFoundError is returned when no repository encloses the given path
type RepositoryNotFoundError struct {
	Path string
	Err  error
}

func (e *RepositoryNotFoundError) Error() string {
	return "you are not in a gl repository"
}

// Is returns true if the target error is ErrNotInRepo
func (e *RepositoryNotFoundError) Is(target error) bool {
	return target == ErrNotInRepo
}

func (e *RepositoryNotFoundError) Unwrap() error {
	return e.Err
}

// ShallowCloneError is returned when the repository is a shallow clone
type ShallowCloneError struct {
	Path string
}

func (e *ShallowCloneError) Error() string {
	return "shallow clones are not supported; run git fetch --unshallow first"
}

// Is returns true if the target error is ErrShallowClone
func (e *ShallowCloneError) Is(target error) bool {
	return target == ErrShallowClone
}

// EmptyRepositoryError is returned when the repository has no commits yet
type EmptyRepositoryError struct {
	Path string
}

func (e *EmptyRepositoryError) Error() string {
	return "the repository has no commits yet; create an initial commit first"
}

// Is returns true if the target error is ErrEmptyRepository
func (e *EmptyRepositoryError) Is(target error) bool {
	return target == ErrEmptyRepository
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// IsStartupError reports whether err prevents any operation from running.
func IsStartupError(err error) bool {
	return errors.Is(err, ErrNotInRepo) ||
		errors.Is(err, ErrShallowClone) ||
		errors.Is(err, ErrEmptyRepository)
}

// IsOperationError reports whether err is an expected, user-reportable
// operation failure (as opposed to an internal error).
func IsOperationError(err error) bool {
	var gitErr *GitCommandError
	return errors.Is(err, ErrBranchNotFound) ||
		errors.Is(err, ErrRestoreConflict) ||
		errors.Is(err, ErrCheckoutBlocked) ||
		errors.Is(err, ErrLockContention) ||
		errors.Is(err, ErrSnapshotExists) ||
		errors.Is(err, ErrNotOnBranch) ||
		errors.As(err, &gitErr) ||
		errors.As(err, new(*UserError))
}

// UserError is a plain user-facing operation failure, such as an invalid
// flag combination.
type UserError struct {
	Msg string
}

func (e *UserError) Error() string {
	return e.Msg
}

// NewUserError creates a new UserError
func NewUserError(format string, args ...any) *UserError {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsStartupError(err):
		return ExitNotInRepo
	case IsOperationError(err):
		return ExitErrorsFound
	default:
		return ExitInternalError
	}
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
