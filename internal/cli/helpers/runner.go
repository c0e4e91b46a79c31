// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"gitless.dev/gl/internal/output"
	"gitless.dev/gl/internal/runtime"
)

// Run opens the repository enclosing the working directory and passes the
// runtime context to a command's execution function.
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	ctx, err := runtime.Open(Context(cmd), ".", output.SplogOptions{
		Debug: verbose || os.Getenv("DEBUG") != "",
	})
	if err != nil {
		return err
	}
	defer ctx.Close()

	output.ConfigureColor(ctx.Config.Color, os.Stdout, ctx.Repo.ColorDisabled())
	return fn(ctx)
}

// Context returns the context the command was executed with.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
