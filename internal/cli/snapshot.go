package cli

import (
	"github.com/spf13/cobra"

	"gitless.dev/gl/internal/actions"
	"gitless.dev/gl/internal/cli/helpers"
	"gitless.dev/gl/internal/runtime"
)

// newSnapshotCmd creates the snapshot command and its subcommands
func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect the uncommitted changes saved on branches",
		Long: `Inspect the uncommitted changes saved on branches.

Changes are saved when you switch away from a branch and restored when you
switch back. These commands show what is saved and help when a restore ran
into conflicts.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.ListSnapshotsAction)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List branches with saved changes",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return helpers.Run(cmd, actions.ListSnapshotsAction)
			},
		},
		&cobra.Command{
			Use:               "show [branch]",
			Short:             "Show the files saved on a branch (the current one by default)",
			Args:              maxArgs(1),
			ValidArgsFunction: helpers.CompleteBranches,
			RunE: func(cmd *cobra.Command, args []string) error {
				return helpers.Run(cmd, func(ctx *runtime.Context) error {
					return actions.ShowSnapshotAction(ctx, firstArg(args))
				})
			},
		},
		newSnapshotRestoreCmd(),
		&cobra.Command{
			Use:               "drop [branch]",
			Short:             "Throw away the changes saved on a branch (the current one by default)",
			Args:              maxArgs(1),
			ValidArgsFunction: helpers.CompleteBranches,
			RunE: func(cmd *cobra.Command, args []string) error {
				return helpers.Run(cmd, func(ctx *runtime.Context) error {
					return actions.DropSnapshotAction(ctx, firstArg(args))
				})
			},
		},
	)

	return cmd
}

func newSnapshotRestoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Apply the changes saved on the current branch",
		Long: `Apply the changes saved on the current branch.

Use it to retry after a switch reported conflicting files: move the
conflicting files away and run this command, or pass --force to replace
them with the saved content.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.RestoreSnapshotAction(ctx, actions.RestoreSnapshotOptions{Force: force})
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite conflicting files with the saved content")

	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
