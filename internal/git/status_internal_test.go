package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePorcelain(t *testing.T) {
	out := " M b.txt\x00A  new.txt\x00 D gone.txt\x00?? notes/todo.md\x00!! build/\x00UU both.txt\x00"

	statuses, err := parsePorcelain(out)
	require.NoError(t, err)
	require.Len(t, statuses, 6)

	byPath := map[string]FileStatus{}
	for _, st := range statuses {
		byPath[st.Path] = st
	}

	assert.Equal(t, FileStatus{Path: "b.txt", Type: FileTracked, ExistsAtHead: true, ExistsInWorkdir: true}, byPath["b.txt"])
	assert.Equal(t, FileStatus{Path: "new.txt", Type: FileTracked, ExistsInWorkdir: true}, byPath["new.txt"])
	assert.Equal(t, FileStatus{Path: "gone.txt", Type: FileTracked, ExistsAtHead: true}, byPath["gone.txt"])
	assert.Equal(t, FileUntracked, byPath["notes/todo.md"].Type)
	assert.Equal(t, FileIgnored, byPath["build"].Type)
	assert.True(t, byPath["both.txt"].InConflict)

	assert.Equal(t, "b.txt", statuses[0].Path, "entries are sorted by path")
}

func TestParsePorcelainRejectsGarbage(t *testing.T) {
	_, err := parsePorcelain("garbage\x00")
	require.Error(t, err)
}

func TestParseOverwrittenPaths(t *testing.T) {
	stderr := "error: Your local changes to the following files would be overwritten by checkout:\n" +
		"\ta.txt\n" +
		"\tdir/b.txt\n" +
		"Please commit your changes or stash them before you switch branches.\n" +
		"Aborting\n"
	assert.Equal(t, []string{"a.txt", "dir/b.txt"}, parseOverwrittenPaths(stderr))
	assert.Empty(t, parseOverwrittenPaths("fatal: something else"))
}

func TestParsePatchCountsHunkLines(t *testing.T) {
	text := "diff --git a/a.txt b/a.txt\n" +
		"--- a/a.txt\n" +
		"+++ b/a.txt\n" +
		"@@ -1,2 +1,2 @@\n" +
		"-one\n" +
		"+uno\n" +
		"+dos\n" +
		" three\n" +
		"@@ -9 +9 @@\n" +
		"-nine\n" +
		"+nueve\n"
	patch := parsePatch("a.txt", text)
	assert.Equal(t, 3, patch.Additions)
	assert.Equal(t, 2, patch.Deletions)
	assert.False(t, patch.IsEmpty())

	require.Len(t, patch.Hunks, 2)
	assert.Equal(t, Hunk{OldStart: 1, OldCount: 2, NewStart: 1, NewCount: 2,
		Content: "@@ -1,2 +1,2 @@\n-one\n+uno\n+dos\n three"}, patch.Hunks[0])
	assert.Equal(t, 9, patch.Hunks[1].OldStart)
	assert.Equal(t, 1, patch.Hunks[1].OldCount)
	assert.Equal(t, 1, patch.Hunks[1].NewCount)
}
