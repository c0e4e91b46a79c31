package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo is a real git repository on disk used as a test fixture.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	// Use git -c flags to avoid reading global config
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = gitEnv()
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %s: %w", out, err)
	}

	// Configure Git user (required for commits)
	if err := repo.runGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.runGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	return repo, nil
}

// gitEnv keeps the developer's global git config out of the fixtures.
func gitEnv() []string {
	return append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "LC_ALL=C")
}

func (r *GitRepo) runGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %s: %w", strings.Join(args, " "), out, err)
	}
	return nil
}

func (r *GitRepo) runGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	return r.runGitCommand(args...)
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	return r.runGitCommandAndGetOutput(args...)
}

// Path returns the absolute path of a repository-relative file.
func (r *GitRepo) Path(name string) string {
	return filepath.Join(r.Dir, filepath.FromSlash(name))
}

// WriteFile writes content to a repository-relative path, creating parent directories.
func (r *GitRepo) WriteFile(name, content string) error {
	path := r.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadFile returns the content of a repository-relative path.
func (r *GitRepo) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(r.Path(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FileExists reports whether a repository-relative path exists.
func (r *GitRepo) FileExists(name string) bool {
	_, err := os.Lstat(r.Path(name))
	return err == nil
}

// RemoveFile deletes a repository-relative path.
func (r *GitRepo) RemoveFile(name string) error {
	return os.Remove(r.Path(name))
}

// CreateChange writes a file and stages it unless unstaged is set.
func (r *GitRepo) CreateChange(name, content string, unstaged bool) error {
	if err := r.WriteFile(name, content); err != nil {
		return err
	}
	if unstaged {
		return nil
	}
	return r.runGitCommand("add", "--", name)
}

// CreateChangeAndCommit writes a file and commits it with the content as message.
func (r *GitRepo) CreateChangeAndCommit(name, content string) error {
	if err := r.CreateChange(name, content, false); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-q", "-m", content)
}

// CommitAll stages every change and commits it.
func (r *GitRepo) CommitAll(message string) error {
	if err := r.runGitCommand("add", "-A"); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-q", "-m", message)
}

// CreateBranch creates a new branch without checking it out.
func (r *GitRepo) CreateBranch(name string) error {
	return r.runGitCommand("branch", name)
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.runGitCommand("checkout", "-q", "-b", name)
}

// CheckoutBranch checks out a branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.runGitCommand("checkout", "-q", name)
}

// CurrentBranchName returns the name of the current branch.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.runGitCommandAndGetOutput("branch", "--show-current")
}

// GetRevision returns the SHA of a revision (branch, tag, or commit reference).
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.runGitCommandAndGetOutput("rev-parse", rev)
}

// Ignore appends patterns to .git/info/exclude.
func (r *GitRepo) Ignore(patterns ...string) error {
	path := filepath.Join(r.Dir, ".git", "info", "exclude")
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, p := range patterns {
		if _, err := fmt.Fprintln(f, p); err != nil {
			return err
		}
	}
	return nil
}

// StatusPorcelain returns `git status --porcelain` including untracked files.
func (r *GitRepo) StatusPorcelain() (string, error) {
	return r.runGitCommandAndGetOutput("status", "--porcelain", "--untracked-files=all")
}

// CreateBareRemote creates a bare git repository next to the repo and adds it as a remote.
// Returns the path to the bare repository.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bareDir := r.Dir + "-" + name + ".git"

	cmd := exec.Command("git", "init", "-q", "--bare", bareDir)
	cmd.Env = gitEnv()
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}
	if err := r.runGitCommand("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}
	return bareDir, nil
}

// PushBranch pushes a branch to a remote and sets it as upstream.
func (r *GitRepo) PushBranch(remote, branch string) error {
	return r.runGitCommand("push", "-q", "-u", remote, branch)
}
