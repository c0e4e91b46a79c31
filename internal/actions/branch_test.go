package actions_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gitless.dev/gl/internal/actions"
	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/snapshot"
	"gitless.dev/gl/testhelpers"
	"gitless.dev/gl/testhelpers/scenario"
)

func TestCreateBranchAction(t *testing.T) {
	t.Run("creates branches at the divergent point", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).CommitChange("b.txt", "b")
		first := testhelpers.Must(s.Scene.Repo.GetRevision("HEAD~1"))

		err := actions.CreateBranchAction(s.Context, actions.CreateBranchOptions{
			Names:          []string{"one", "two"},
			DivergentPoint: "HEAD~1",
		})
		require.NoError(t, err)

		testhelpers.ExpectBranches(t, s.Scene.Repo, []string{"feature", "main", "one", "two"})
		require.Equal(t, first, testhelpers.Must(s.Scene.Repo.GetRevision("one")))
		s.ExpectBranch("main")
	})

	t.Run("reports existing branches", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)

		err := actions.CreateBranchAction(s.Context, actions.CreateBranchOptions{Names: []string{"feature", "new"}})
		require.Error(t, err)
		require.Equal(t, glerrors.ExitErrorsFound, glerrors.ExitCode(err))
		testhelpers.ExpectBranches(t, s.Scene.Repo, []string{"feature", "main", "new"})
		require.Contains(t, s.Err.String(), "branch feature already exists")
	})
}

func TestDeleteBranchAction(t *testing.T) {
	t.Run("deletes the branch and its saved changes", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)
		require.NoError(t, switchTo(s, "feature"))
		s.WithChange("a.txt", "v2")
		require.NoError(t, switchTo(s, "main"))
		s.ExpectSnapshot("feature", true)

		var asked *snapshot.Snapshot
		err := actions.DeleteBranchAction(s.Context, actions.DeleteBranchOptions{
			Names: []string{"feature"},
			Confirm: func(branch string, saved *snapshot.Snapshot) (bool, error) {
				asked = saved
				return true, nil
			},
		})
		require.NoError(t, err)

		require.NotNil(t, asked)
		testhelpers.ExpectBranches(t, s.Scene.Repo, []string{"main"})
		testhelpers.ExpectRef(t, s.Scene.Repo, snapshot.RefName("feature"), false)
	})

	t.Run("keeps the branch when not confirmed", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)

		err := actions.DeleteBranchAction(s.Context, actions.DeleteBranchOptions{
			Names:   []string{"feature"},
			Confirm: func(string, *snapshot.Snapshot) (bool, error) { return false, nil },
		})
		require.NoError(t, err)
		testhelpers.ExpectBranches(t, s.Scene.Repo, []string{"feature", "main"})
	})

	t.Run("canceled prompt fails", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)

		err := actions.DeleteBranchAction(s.Context, actions.DeleteBranchOptions{
			Names:   []string{"feature"},
			Confirm: func(string, *snapshot.Snapshot) (bool, error) { return false, errors.New("interrupt") },
		})
		require.Error(t, err)
		testhelpers.ExpectBranches(t, s.Scene.Repo, []string{"feature", "main"})
	})

	t.Run("refuses the current and unknown branches", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)

		err := actions.DeleteBranchAction(s.Context, actions.DeleteBranchOptions{Names: []string{"main", "ghost"}})
		require.Error(t, err)
		testhelpers.ExpectBranches(t, s.Scene.Repo, []string{"feature", "main"})
		require.Contains(t, s.Err.String(), "current branch main")
		require.Contains(t, s.Err.String(), "branch ghost doesn't exist")
	})
}

func TestListBranchesAction(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)
	require.NoError(t, switchTo(s, "feature"))
	s.WithChange("a.txt", "v2")
	require.NoError(t, switchTo(s, "main"))
	s.Out.Reset()

	require.NoError(t, actions.ListBranchesAction(s.Context))

	out := s.Out.String()
	require.Contains(t, out, "BRANCH")
	require.Contains(t, out, "feature")
	require.Contains(t, out, "main")
	require.Contains(t, out, "1 file")
}
