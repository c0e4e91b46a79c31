package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitless.dev/gl/internal/actions"
	"gitless.dev/gl/internal/config"
	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/lock"
	"gitless.dev/gl/internal/op"
	"gitless.dev/gl/internal/snapshot"
	"gitless.dev/gl/testhelpers"
	"gitless.dev/gl/testhelpers/scenario"
)

// divergedSetup gives feature its own version of a.txt.
func divergedSetup(scene *testhelpers.Scene) error {
	if err := testhelpers.FeatureSceneSetup(scene); err != nil {
		return err
	}
	if err := scene.Repo.CheckoutBranch("feature"); err != nil {
		return err
	}
	if err := scene.Repo.CreateChangeAndCommit("a.txt", "feature"); err != nil {
		return err
	}
	return scene.Repo.CheckoutBranch("main")
}

func switchTo(s *scenario.Scenario, branch string) error {
	return actions.SwitchAction(s.Context, actions.SwitchOptions{BranchName: branch})
}

func TestSwitchAction(t *testing.T) {
	t.Run("clean branch creates no snapshot", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)

		require.NoError(t, switchTo(s, "feature"))

		s.ExpectBranch("feature").ExpectSnapshot("main", false)
		require.Equal(t, []string{"ApplySucceeded"}, s.Hooks())
		require.Contains(t, s.Out.String(), "Switched to branch feature")
	})

	t.Run("saves and restores uncommitted changes", func(t *testing.T) {
		s := scenario.NewScenario(t, divergedSetup).WithChange("a.txt", "v2")

		require.NoError(t, switchTo(s, "feature"))
		s.ExpectBranch("feature").ExpectFile("a.txt", "feature").ExpectSnapshot("main", true)
		require.Equal(t, []string{"Saved", "ApplySucceeded"}, s.Hooks())

		saved, err := s.Context.Snapshots.Lookup(context.Background(), "main")
		require.NoError(t, err)
		require.Equal(t, []string{"a.txt"}, saved.Paths())
		blob, err := s.Context.Repo.ReadBlob(saved.Files[0].Blob)
		require.NoError(t, err)
		require.Equal(t, "v2", string(blob))

		require.NoError(t, switchTo(s, "main"))
		s.ExpectBranch("main").ExpectFile("a.txt", "v2").ExpectSnapshot("main", false)
		require.Equal(t, []string{"Saved", "ApplySucceeded", "RestoreSucceeded", "ApplySucceeded"}, s.Hooks())
		require.Contains(t, s.Out.String(), "Uncommitted changes of branch main restored (1 file)")
	})

	t.Run("round trip keeps added deleted and untracked files", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).
			WithStagedChange("added.txt", "added").
			WithChange("notes.txt", "notes")
		require.NoError(t, s.Scene.Repo.RemoveFile("a.txt"))

		require.NoError(t, switchTo(s, "feature"))
		s.ExpectFile("a.txt", "v1").ExpectNoFile("added.txt").ExpectNoFile("notes.txt")
		testhelpers.ExpectClean(t, s.Scene.Repo)

		require.NoError(t, switchTo(s, "main"))
		s.ExpectNoFile("a.txt").ExpectFile("added.txt", "added").ExpectFile("notes.txt", "notes")

		status, err := s.Scene.Repo.StatusPorcelain()
		require.NoError(t, err)
		require.Contains(t, status, "A  added.txt")
		require.Contains(t, status, "?? notes.txt")
	})

	t.Run("switching to the current branch does nothing", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).WithChange("a.txt", "v2")

		require.NoError(t, switchTo(s, "main"))

		s.ExpectBranch("main").ExpectFile("a.txt", "v2").ExpectSnapshot("main", false)
		calls := s.Recorder.Calls()
		require.Len(t, calls, 1)
		require.True(t, calls[0].Result.Unchanged)
		require.Contains(t, s.Out.String(), "Already on branch main")
	})

	t.Run("nonexistent branch leaves the working tree untouched", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).
			WithChange("a.txt", "v2").
			WithChange("notes.txt", "notes")
		before, err := s.Scene.Repo.StatusPorcelain()
		require.NoError(t, err)

		err = switchTo(s, "nonexistent-branch")
		require.ErrorIs(t, err, glerrors.ErrBranchNotFound)
		require.Equal(t, glerrors.ExitErrorsFound, glerrors.ExitCode(err))

		after, err := s.Scene.Repo.StatusPorcelain()
		require.NoError(t, err)
		require.Equal(t, before, after)
		s.ExpectBranch("main").ExpectFile("a.txt", "v2").ExpectFile("notes.txt", "notes").ExpectSnapshot("main", false)
		require.Equal(t, []string{"ApplyFailed"}, s.Hooks())
	})

	t.Run("move over carries changes and supersedes saved ones", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)
		require.NoError(t, switchTo(s, "feature"))
		s.WithChange("old.txt", "old")
		require.NoError(t, switchTo(s, "main"))
		s.ExpectSnapshot("feature", true).WithChange("a.txt", "v2")

		err := actions.SwitchAction(s.Context, actions.SwitchOptions{BranchName: "feature", MoveOver: true})
		require.NoError(t, err)

		s.ExpectBranch("feature").
			ExpectFile("a.txt", "v2").
			ExpectNoFile("old.txt").
			ExpectSnapshot("main", false).
			ExpectSnapshot("feature", false)
		testhelpers.ExpectRef(t, s.Scene.Repo, snapshot.DiscardedRefName("feature"), true)
		require.Contains(t, s.Err.String(), "replaced by the ones moved over")
	})

	t.Run("move ignored leaves ignored files in place", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).
			WithConfig(func(cfg *config.Config) { cfg.Snapshot.SaveIgnored = true })
		require.NoError(t, s.Scene.Repo.Ignore("*.log"))
		s.WithChange("build.log", "log").WithChange("a.txt", "v2")

		err := actions.SwitchAction(s.Context, actions.SwitchOptions{BranchName: "feature", MoveIgnored: true})
		require.NoError(t, err)

		s.ExpectFile("build.log", "log").ExpectFile("a.txt", "v1")
		saved, err := s.Context.Snapshots.Lookup(context.Background(), "main")
		require.NoError(t, err)
		require.Equal(t, []string{"a.txt"}, saved.Paths())
	})

	t.Run("restore conflict keeps the snapshot for a retry", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)
		require.NoError(t, switchTo(s, "feature"))
		s.WithChange("x.txt", "mine")
		require.NoError(t, switchTo(s, "main"))

		s.WithConfig(func(cfg *config.Config) { cfg.Snapshot.SaveUntracked = false }).
			WithChange("x.txt", "other")
		err := switchTo(s, "feature")
		require.ErrorIs(t, err, glerrors.ErrRestoreConflict)
		require.Equal(t, glerrors.ExitErrorsFound, glerrors.ExitCode(err))

		s.ExpectBranch("feature").ExpectFile("x.txt", "other").ExpectSnapshot("feature", true)
		calls := s.Recorder.Calls()
		last := calls[len(calls)-1]
		require.Equal(t, "ApplyFailed", last.Hook)
		require.Equal(t, []string{"feature"}, last.Result.Pending)
		require.Contains(t, s.Err.String(), "no data was lost")

		require.NoError(t, s.Scene.Repo.RemoveFile("x.txt"))
		require.NoError(t, actions.RestoreSnapshotAction(s.Context, actions.RestoreSnapshotOptions{}))
		s.ExpectFile("x.txt", "mine").ExpectSnapshot("feature", false)
	})

	t.Run("restore conflicts with a version the branch head brought in", func(t *testing.T) {
		s := scenario.NewScenario(t, divergedSetup).WithChange("a.txt", "v2")
		require.NoError(t, switchTo(s, "feature"))
		s.RunGit("branch", "--force", "main", "feature")

		err := switchTo(s, "main")
		require.ErrorIs(t, err, glerrors.ErrRestoreConflict)
		var conflict *glerrors.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, []string{"a.txt"}, conflict.Paths)

		s.ExpectBranch("main").ExpectFile("a.txt", "feature").ExpectSnapshot("main", true)
		calls := s.Recorder.Calls()
		last := calls[len(calls)-1]
		require.Equal(t, "ApplyFailed", last.Hook)
		require.Equal(t, []string{"main"}, last.Result.Pending)

		require.ErrorIs(t, actions.RestoreSnapshotAction(s.Context, actions.RestoreSnapshotOptions{}), glerrors.ErrRestoreConflict)
		require.NoError(t, actions.RestoreSnapshotAction(s.Context, actions.RestoreSnapshotOptions{Force: true}))
		s.ExpectFile("a.txt", "v2").ExpectSnapshot("main", false)
	})

	t.Run("round trip keeps a file dropped from the index", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).
			RunGit("rm", "--cached", "--quiet", "a.txt").
			WithChange("a.txt", "local")
		before, err := s.Scene.Repo.StatusPorcelain()
		require.NoError(t, err)

		require.NoError(t, switchTo(s, "feature"))
		s.ExpectFile("a.txt", "v1")
		testhelpers.ExpectClean(t, s.Scene.Repo)
		saved, err := s.Context.Snapshots.Lookup(context.Background(), "main")
		require.NoError(t, err)
		require.Len(t, saved.Files, 1)
		require.Equal(t, snapshot.KindUntrackedAtHead, saved.Files[0].Kind)

		require.NoError(t, switchTo(s, "main"))
		s.ExpectFile("a.txt", "local")
		after, err := s.Scene.Repo.StatusPorcelain()
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("saved is reported while the changes are still in the working tree", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).WithChange("a.txt", "v2")
		var seen string
		handler := &op.HandlerMock{
			SavedFunc: func(op.Event) {
				seen = testhelpers.Must(s.Scene.Repo.ReadFile("a.txt"))
			},
			ApplySucceededFunc:   func(op.Result) {},
			ApplyFailedFunc:      func(op.Result, error) {},
			RestoreSucceededFunc: func(op.Event) {},
		}
		s.Context.Handler = handler

		require.NoError(t, switchTo(s, "feature"))

		require.Len(t, handler.SavedCalls(), 1)
		require.Equal(t, "v2", seen)
		s.ExpectFile("a.txt", "v1")
	})

	t.Run("move ignored without saving ignored files warns", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)

		err := actions.SwitchAction(s.Context, actions.SwitchOptions{BranchName: "feature", MoveIgnored: true})
		require.NoError(t, err)
		require.Contains(t, s.Err.String(), "--move-ignored changes nothing")
	})

	t.Run("blocked checkout keeps the source snapshot", func(t *testing.T) {
		s := scenario.NewScenario(t, func(scene *testhelpers.Scene) error {
			if err := testhelpers.FeatureSceneSetup(scene); err != nil {
				return err
			}
			if err := scene.Repo.CheckoutBranch("feature"); err != nil {
				return err
			}
			if err := scene.Repo.CreateChangeAndCommit("y.txt", "feature"); err != nil {
				return err
			}
			return scene.Repo.CheckoutBranch("main")
		})
		s.WithConfig(func(cfg *config.Config) { cfg.Snapshot.SaveUntracked = false }).
			WithChange("a.txt", "v2").
			WithChange("y.txt", "local")

		err := switchTo(s, "feature")
		require.ErrorIs(t, err, glerrors.ErrCheckoutBlocked)
		var blocked *glerrors.CheckoutBlockedError
		require.ErrorAs(t, err, &blocked)
		require.Equal(t, []string{"y.txt"}, blocked.Paths)

		s.ExpectBranch("main").ExpectFile("a.txt", "v1").ExpectFile("y.txt", "local").ExpectSnapshot("main", true)
		calls := s.Recorder.Calls()
		require.Equal(t, []string{"Saved", "ApplyFailed"}, s.Hooks())
		require.Equal(t, []string{"main"}, calls[1].Result.Pending)

		require.NoError(t, s.Scene.Repo.RemoveFile("y.txt"))
		require.NoError(t, switchTo(s, "feature"))
		s.ExpectBranch("feature").ExpectFile("y.txt", "feature")
		require.NoError(t, switchTo(s, "main"))
		s.ExpectFile("a.txt", "v2").ExpectSnapshot("main", false)
	})

	t.Run("fails fast while another operation holds the lock", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).WithChange("a.txt", "v2")
		held, err := lock.Acquire(context.Background(), s.Context.LockPath(), lock.Options{Owner: "switch to other"})
		require.NoError(t, err)
		defer held.Release()

		err = switchTo(s, "feature")
		require.ErrorIs(t, err, glerrors.ErrLockContention)
		require.Contains(t, err.Error(), "switch to other")

		s.ExpectBranch("main").ExpectFile("a.txt", "v2").ExpectSnapshot("main", false)
		require.Equal(t, []string{"ApplyFailed"}, s.Hooks())
	})

	t.Run("releases the lock when done", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)
		require.NoError(t, switchTo(s, "feature"))

		l, err := lock.Acquire(context.Background(), s.Context.LockPath(), lock.Options{})
		require.NoError(t, err)
		require.NoError(t, l.Release())
	})

	t.Run("finishes an interrupted restore", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup).WithChange("a.txt", "v2")
		snap, err := s.Context.Snapshots.Save(context.Background(), "main", snapshot.SaveOptions{})
		require.NoError(t, err)
		s.RunGit("update-ref", snapshot.RestoringPrefix+"main", snap.ID)
		s.ExpectFile("a.txt", "v1")

		require.NoError(t, switchTo(s, "main"))

		s.ExpectFile("a.txt", "v2").ExpectSnapshot("main", false)
		testhelpers.ExpectRef(t, s.Scene.Repo, snapshot.RestoringPrefix+"main", false)
		require.Contains(t, s.Err.String(), "stopped while restoring")
	})
}
