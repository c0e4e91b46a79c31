package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitless.dev/gl/internal/actions"
	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/testhelpers"
	"gitless.dev/gl/testhelpers/scenario"
)

func TestSetHeadAction(t *testing.T) {
	t.Run("moves the head and keeps uncommitted changes", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).
			CommitChange("b.txt", "b").
			WithChange("a.txt", "v2")
		previous := testhelpers.Must(s.Scene.Repo.GetRevision("HEAD~1"))

		err := actions.SetHeadAction(s.Context, actions.SetHeadOptions{Revision: "HEAD~1"})
		require.NoError(t, err)

		require.Equal(t, previous, testhelpers.Must(s.Scene.Repo.GetRevision("main")))
		s.ExpectBranch("main").ExpectNoFile("b.txt").ExpectFile("a.txt", "v2").ExpectSnapshot("main", false)
		require.Equal(t, []string{"Saved", "RestoreSucceeded", "ApplySucceeded"}, s.Hooks())
		require.Contains(t, s.Out.String(), "applied successfully to the new head")

		last := s.Recorder.Calls()[2].Result
		require.Equal(t, previous, last.Revision)
		require.Empty(t, last.Pending)
	})

	t.Run("changes to a path the new head changed conflict", func(t *testing.T) {
		s := scenario.NewScenario(t, divergedSetup).WithChange("a.txt", "mine")
		target := testhelpers.Must(s.Scene.Repo.GetRevision("feature"))

		err := actions.SetHeadAction(s.Context, actions.SetHeadOptions{Revision: "feature"})
		require.ErrorIs(t, err, glerrors.ErrRestoreConflict)
		require.Equal(t, glerrors.ExitErrorsFound, glerrors.ExitCode(err))

		require.Equal(t, target, testhelpers.Must(s.Scene.Repo.GetRevision("main")))
		s.ExpectBranch("main").ExpectFile("a.txt", "feature").ExpectSnapshot("main", true)
		require.Equal(t, []string{"Saved", "ApplyFailed"}, s.Hooks())
		require.Equal(t, []string{"main"}, s.Recorder.Calls()[1].Result.Pending)
		require.Contains(t, s.Err.String(), "no data was lost")

		require.NoError(t, s.Scene.Repo.RemoveFile("a.txt"))
		require.NoError(t, actions.RestoreSnapshotAction(s.Context, actions.RestoreSnapshotOptions{}))
		s.ExpectFile("a.txt", "mine").ExpectSnapshot("main", false)
	})

	t.Run("same revision is a no-op", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).WithChange("a.txt", "v2")

		require.NoError(t, actions.SetHeadAction(s.Context, actions.SetHeadOptions{Revision: "feature"}))

		s.ExpectFile("a.txt", "v2").ExpectSnapshot("main", false)
		calls := s.Recorder.Calls()
		require.Len(t, calls, 1)
		require.True(t, calls[0].Result.Unchanged)
	})

	t.Run("unknown revision is an operation error", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).WithChange("a.txt", "v2")

		err := actions.SetHeadAction(s.Context, actions.SetHeadOptions{Revision: "no-such-rev"})
		require.Error(t, err)
		require.Equal(t, glerrors.ExitErrorsFound, glerrors.ExitCode(err))
		s.ExpectFile("a.txt", "v2")
		require.Equal(t, []string{"ApplyFailed"}, s.Hooks())
	})
}
