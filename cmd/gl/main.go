package main

import (
	"context"
	"os"
	"os/signal"

	"gitless.dev/gl/internal/cli"
	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCmd(version, commit, date)
	rootCmd.SetArgs(cli.NormalizeArgs(args))
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return glerrors.ExitSuccess
	}

	splog := output.NewSplog()
	code := glerrors.ExitCode(err)
	if code == glerrors.ExitInternalError {
		splog.Error("internal error: %v", err)
		splog.Tip("Run again with --verbose for details")
	} else {
		splog.Error("%v", err)
	}
	return code
}
