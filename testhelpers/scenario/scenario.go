// Package scenario provides a high-level test scenario that combines a Scene
// with an open runtime Context, giving integration tests a terse API.
package scenario

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitless.dev/gl/internal/config"
	"gitless.dev/gl/internal/git"
	"gitless.dev/gl/internal/op"
	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/runtime"
	"gitless.dev/gl/testhelpers"
)

// Scenario represents a high-level test scenario. Console output of the
// context is captured in Out and Err, and every safety-net notification is
// kept by Recorder.
type Scenario struct {
	T        *testing.T
	Scene    *testhelpers.Scene
	Context  *runtime.Context
	Recorder *op.Recorder
	Out      *bytes.Buffer
	Err      *bytes.Buffer
}

// NewScenario creates a new Scenario with an optional setup function.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	scene := testhelpers.NewScene(t, setup)
	s := &Scenario{
		T:     t,
		Scene: scene,
		Out:   &bytes.Buffer{},
		Err:   &bytes.Buffer{},
	}
	s.Reopen()
	return s
}

// Reopen builds a fresh context over the scene, as a new gl invocation would.
func (s *Scenario) Reopen() *Scenario {
	s.T.Helper()

	repo, err := git.Open(context.Background(), s.Scene.Dir)
	require.NoError(s.T, err)
	cfg, err := config.Load(config.Path(repo.GitDir()))
	require.NoError(s.T, err)
	splog, err := output.NewSplogWithOptions(output.SplogOptions{Writer: s.Out, ErrWriter: s.Err})
	require.NoError(s.T, err)

	s.Context = runtime.NewContext(context.Background(), repo, cfg, splog)
	s.Recorder = &op.Recorder{}
	s.Context.Handler = op.Handlers{s.Context.Handler, s.Recorder}
	return s
}

// WithConfig applies changes to the configuration of the context.
func (s *Scenario) WithConfig(fn func(*config.Config)) *Scenario {
	fn(s.Context.Config)
	return s
}

// WithChange writes a file without staging it.
func (s *Scenario) WithChange(name, content string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateChange(name, content, true))
	return s
}

// WithStagedChange writes a file and adds it to the index.
func (s *Scenario) WithStagedChange(name, content string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateChange(name, content, false))
	return s
}

// CommitChange writes a file and commits it.
func (s *Scenario) CommitChange(name, content string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateChangeAndCommit(name, content))
	return s
}

// RunGit runs a git command in the scenario's repository.
func (s *Scenario) RunGit(args ...string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.RunGitCommand(args...))
	return s
}

// Checkout checks out a branch with plain git, bypassing gl.
func (s *Scenario) Checkout(branch string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CheckoutBranch(branch))
	return s
}

// CreateBranch creates a branch at HEAD without switching to it.
func (s *Scenario) CreateBranch(name string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateBranch(name))
	return s
}

// Hooks returns the safety-net notifications delivered so far.
func (s *Scenario) Hooks() []string {
	return s.Recorder.Hooks()
}

// ExpectFile asserts a working-tree file exists with the given content.
func (s *Scenario) ExpectFile(name, content string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectFile(s.T, s.Scene.Repo, name, content)
	return s
}

// ExpectNoFile asserts a working-tree path does not exist.
func (s *Scenario) ExpectNoFile(name string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectNoFile(s.T, s.Scene.Repo, name)
	return s
}

// ExpectBranch asserts the branch HEAD points to.
func (s *Scenario) ExpectBranch(name string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectCurrentBranch(s.T, s.Scene.Repo, name)
	return s
}

// ExpectSnapshot asserts whether branch has saved changes.
func (s *Scenario) ExpectSnapshot(branch string, exists bool) *Scenario {
	s.T.Helper()
	snap, err := s.Context.Snapshots.Lookup(context.Background(), branch)
	require.NoError(s.T, err)
	if exists {
		require.NotNil(s.T, snap, "Expected saved changes on %s", branch)
	} else {
		require.Nil(s.T, snap, "Expected no saved changes on %s", branch)
	}
	return s
}
