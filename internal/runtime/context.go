package runtime

import (
	"context"

	"gitless.dev/gl/internal/config"
	"gitless.dev/gl/internal/git"
	"gitless.dev/gl/internal/lock"
	"gitless.dev/gl/internal/op"
	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/snapshot"
)

// Context provides access to the repository and output for commands
type Context struct {
	Context   context.Context
	Repo      *git.Repository
	Snapshots *snapshot.Manager
	Config    *config.Config
	Splog     *output.Splog
	// Handler receives safety-net notifications of risky operations.
	Handler op.Handler
}

// NewContext wires a context around an open repository.
// A nil cfg means defaults; a nil splog logs to the console.
func NewContext(ctx context.Context, repo *git.Repository, cfg *config.Config, splog *output.Splog) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	if splog == nil {
		splog = output.NewSplog()
	}
	return &Context{
		Context:   ctx,
		Repo:      repo,
		Snapshots: snapshot.NewManager(repo, splog),
		Config:    cfg,
		Splog:     splog,
		Handler:   output.NewPrinter(splog),
	}
}

// Open discovers the repository enclosing dir, loads its configuration and
// sets up logging: the log file comes from log.file unless opts names one.
func Open(ctx context.Context, dir string, opts output.SplogOptions) (*Context, error) {
	repo, err := git.Open(ctx, dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.Path(repo.GitDir()))
	if err != nil {
		return nil, err
	}
	if opts.LogFile == "" {
		opts.LogFile = cfg.Log.File
	}
	splog, err := output.NewSplogWithOptions(opts)
	if err != nil {
		return nil, err
	}
	return NewContext(ctx, repo, cfg, splog), nil
}

// Close flushes the log file.
func (c *Context) Close() error {
	return c.Splog.Close()
}

// LockPath returns the repository lock file.
func (c *Context) LockPath() string {
	return lock.PathFor(c.Repo.GitDir())
}

// AcquireLock takes the repository lock for the named operation, waiting
// as long as the configuration allows.
func (c *Context) AcquireLock(owner string) (*lock.Lock, error) {
	l, err := lock.Acquire(c.Context, c.LockPath(), lock.Options{
		Timeout: c.Config.Lock.Timeout,
		Owner:   owner,
	})
	if err != nil {
		return nil, err
	}
	c.Splog.Debug("acquired %s for %s", l.Path(), owner)
	return l, nil
}
