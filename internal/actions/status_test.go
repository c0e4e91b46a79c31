package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitless.dev/gl/internal/actions"
	"gitless.dev/gl/internal/snapshot"
	"gitless.dev/gl/testhelpers"
	"gitless.dev/gl/testhelpers/scenario"
)

func TestStatusAction(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)
	require.NoError(t, switchTo(s, "feature"))
	s.WithChange("f.txt", "f")
	require.NoError(t, switchTo(s, "main"))
	s.WithChange("a.txt", "v2").WithStagedChange("new.txt", "new").WithChange("notes.txt", "n")
	s.Out.Reset()

	require.NoError(t, actions.StatusAction(s.Context))

	out := s.Out.String()
	require.Contains(t, out, "On branch main")
	require.Contains(t, out, "a.txt")
	require.Contains(t, out, "new.txt (new file)")
	require.Contains(t, out, "Untracked files:")
	require.Contains(t, out, "notes.txt")
	require.Contains(t, out, "Uncommitted changes saved on feature (1)")
}

func TestDiffAction(t *testing.T) {
	t.Run("prints patches of modified files", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).WithChange("a.txt", "v2\n")

		require.NoError(t, actions.DiffAction(s.Context, actions.DiffOptions{}))

		out := s.Out.String()
		require.Contains(t, out, "Diff of file a.txt")
		require.Contains(t, out, "-v1")
		require.Contains(t, out, "+v2")
	})

	t.Run("stat summary", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).WithChange("a.txt", "v2\n")

		require.NoError(t, actions.DiffAction(s.Context, actions.DiffOptions{Stat: true}))
		require.Contains(t, s.Out.String(), "a.txt | +1 -1 (1 hunk)")
	})

	t.Run("nothing to diff", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)

		require.NoError(t, actions.DiffAction(s.Context, actions.DiffOptions{}))
		require.Contains(t, s.Out.String(), "No changes to diff")
	})
}

func TestListRemotesAction(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)
	require.NoError(t, actions.ListRemotesAction(s.Context))
	require.Contains(t, s.Out.String(), "There are no remotes to list")

	url, err := s.Scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	s.Reopen()

	require.NoError(t, actions.ListRemotesAction(s.Context))
	require.Contains(t, s.Out.String(), "origin (maps to "+url+")")
}

func TestSnapshotActions(t *testing.T) {
	t.Run("list and show", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).WithChange("a.txt", "v2")
		require.NoError(t, switchTo(s, "feature"))
		s.Out.Reset()

		require.NoError(t, actions.ListSnapshotsAction(s.Context))
		require.Contains(t, s.Out.String(), "main")
		require.Contains(t, s.Out.String(), "switch")

		require.NoError(t, actions.ShowSnapshotAction(s.Context, "main"))
		require.Contains(t, s.Out.String(), "modified")
		require.Contains(t, s.Out.String(), "a.txt")
	})

	t.Run("drop keeps a recoverable copy", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).WithChange("a.txt", "v2")
		require.NoError(t, switchTo(s, "feature"))

		require.NoError(t, actions.DropSnapshotAction(s.Context, "main"))

		s.ExpectSnapshot("main", false)
		testhelpers.ExpectRef(t, s.Scene.Repo, snapshot.DiscardedRefName("main"), true)
		require.Contains(t, s.Out.String(), snapshot.DiscardedRefName("main"))

		require.NoError(t, switchTo(s, "main"))
		s.ExpectFile("a.txt", "v1")
	})

	t.Run("restore without saved changes", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)

		require.NoError(t, actions.RestoreSnapshotAction(s.Context, actions.RestoreSnapshotOptions{}))
		require.Contains(t, s.Out.String(), "has no saved changes")
	})
}
