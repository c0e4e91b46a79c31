// Package testhelpers provides testing utilities for gl: temporary git
// repositories, scenes, and assertions over their state.
package testhelpers

import (
	"os/exec"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must panics if err is not nil, otherwise returns the value.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectBranches asserts that the repository has exactly the expected branches.
func ExpectBranches(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	cmd := exec.Command("git", "-C", repo.Dir,
		"for-each-ref", "refs/heads/", "--format=%(refname:short)")
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list branches")

	branches := []string{}
	for _, b := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if b = strings.TrimSpace(b); b != "" {
			branches = append(branches, b)
		}
	}
	sort.Strings(branches)
	sort.Strings(expected)
	require.Equal(t, expected, branches, "Branches do not match")
}

// ExpectCurrentBranch asserts the branch HEAD points to.
func ExpectCurrentBranch(t *testing.T, repo *GitRepo, expected string) {
	t.Helper()
	current, err := repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, expected, current, "Current branch does not match")
}

// ExpectFile asserts a working-tree file exists with the given content.
func ExpectFile(t *testing.T, repo *GitRepo, name, content string) {
	t.Helper()
	actual, err := repo.ReadFile(name)
	require.NoError(t, err, "Expected %s to exist", name)
	require.Equal(t, content, actual, "Content of %s does not match", name)
}

// ExpectNoFile asserts a working-tree path does not exist.
func ExpectNoFile(t *testing.T, repo *GitRepo, name string) {
	t.Helper()
	require.False(t, repo.FileExists(name), "Expected %s not to exist", name)
}

// ExpectClean asserts the working tree has no changes, untracked files included.
func ExpectClean(t *testing.T, repo *GitRepo) {
	t.Helper()
	status, err := repo.StatusPorcelain()
	require.NoError(t, err)
	require.Empty(t, status, "Expected a clean working tree")
}

// ExpectRef asserts whether a ref exists.
func ExpectRef(t *testing.T, repo *GitRepo, ref string, exists bool) {
	t.Helper()
	err := repo.RunGitCommand("show-ref", "--verify", "--quiet", ref)
	if exists {
		require.NoError(t, err, "Expected ref %s to exist", ref)
	} else {
		require.Error(t, err, "Expected ref %s not to exist", ref)
	}
}
