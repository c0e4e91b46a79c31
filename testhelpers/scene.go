package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene is a temporary directory holding a fresh Git repository.
// Everything is removed when the test finishes unless DEBUG is set.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene and runs setup on it.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gl-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	// macOS hands out /var paths that resolve to /private/var
	if resolved, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = resolved
	}
	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			_ = os.RemoveAll(tmpDir)
		}
	})

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}
	scene := &Scene{Dir: tmpDir, Repo: repo}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// BasicSceneSetup creates a single commit on main.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("README.md", "initial")
}

// FeatureSceneSetup commits a.txt="v1" on main and creates a feature branch
// from it without switching.
func FeatureSceneSetup(scene *Scene) error {
	if err := scene.Repo.CreateChangeAndCommit("a.txt", "v1"); err != nil {
		return err
	}
	return scene.Repo.CreateBranch("feature")
}
