package cli

import (
	"github.com/spf13/cobra"

	"gitless.dev/gl/internal/actions"
	"gitless.dev/gl/internal/cli/helpers"
	"gitless.dev/gl/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"st"},
		Short:   "Show the status of the repository",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.StatusAction)
		},
	}
}

// newDiffCmd creates the diff command
func newDiffCmd() *cobra.Command {
	var stat bool

	cmd := &cobra.Command{
		Use:   "diff [paths...]",
		Short: "Show changes to tracked files",
		Long: `Show changes to tracked files.

Without paths every tracked file with modifications is diffed against the
head of the current branch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.DiffAction(ctx, actions.DiffOptions{Paths: args, Stat: stat})
			})
		},
	}
	cmd.Flags().BoolVar(&stat, "stat", false, "Only show the number of added and removed lines per file")

	return cmd
}

// newRemoteCmd creates the remote command
func newRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remote",
		Short: "List remote repositories",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.ListRemotesAction)
		},
	}
}
