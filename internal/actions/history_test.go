package actions_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitless.dev/gl/internal/actions"
	"gitless.dev/gl/testhelpers"
	"gitless.dev/gl/testhelpers/scenario"
)

func TestHistoryAction(t *testing.T) {
	t.Run("current branch newest first", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).CommitChange("a.txt", "v2")
		head := testhelpers.Must(s.Scene.Repo.GetRevision("HEAD"))

		require.NoError(t, actions.HistoryAction(s.Context, actions.HistoryOptions{}))
		out := s.Out.String()
		require.Contains(t, out, "Commit Id: "+head)
		require.Contains(t, out, "Author:")
		require.Less(t, strings.Index(out, "    v2"), strings.Index(out, "    v1"))
	})

	t.Run("limit and other branch", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).CommitChange("a.txt", "v2")

		require.NoError(t, actions.HistoryAction(s.Context, actions.HistoryOptions{Branch: "main", Limit: 1, Compact: true}))
		require.Contains(t, s.Out.String(), " v2")
		require.NotContains(t, s.Out.String(), " v1")
		s.Out.Reset()

		require.NoError(t, actions.HistoryAction(s.Context, actions.HistoryOptions{Branch: "feature", Compact: true}))
		require.Contains(t, s.Out.String(), " v1")
		require.NotContains(t, s.Out.String(), " v2")
	})

	t.Run("unknown branch", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)
		require.ErrorContains(t, actions.HistoryAction(s.Context, actions.HistoryOptions{Branch: "nope"}), "branch nope doesn't exist")
	})
}

func TestTagActions(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).CommitChange("a.txt", "v2")
	first := testhelpers.Must(s.Scene.Repo.GetRevision("HEAD~1"))

	require.NoError(t, actions.ListTagsAction(s.Context))
	require.Contains(t, s.Out.String(), "No tags")

	require.NoError(t, actions.CreateTagAction(s.Context, actions.CreateTagOptions{Names: []string{"v1.0"}, CommitPoint: "HEAD~1"}))
	s.RunGit("tag", "-a", "-m", "release", "v2.0")
	require.Equal(t, first, testhelpers.Must(s.Scene.Repo.GetRevision("v1.0")))

	err := actions.CreateTagAction(s.Context, actions.CreateTagOptions{Names: []string{"v1.0"}})
	require.ErrorContains(t, err, "1 of 1 tags could not be created")
	require.Contains(t, s.Err.String(), "tag v1.0 already exists")

	s.Out.Reset()
	require.NoError(t, actions.ListTagsAction(s.Context))
	out := s.Out.String()
	require.Contains(t, out, "v1.0")
	require.Contains(t, out, "v2.0")
	require.Contains(t, out, first[:7])

	require.NoError(t, actions.DeleteTagAction(s.Context, []string{"v1.0"}))
	require.ErrorContains(t, actions.DeleteTagAction(s.Context, []string{"v1.0"}), "1 of 1 tags could not be deleted")
	testhelpers.ExpectRef(t, s.Scene.Repo, "refs/tags/v1.0", false)
	testhelpers.ExpectRef(t, s.Scene.Repo, "refs/tags/v2.0", true)
}
