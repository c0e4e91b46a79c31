package cli

import (
	"github.com/spf13/cobra"

	"gitless.dev/gl/internal/actions"
	"gitless.dev/gl/internal/cli/helpers"
	"gitless.dev/gl/internal/runtime"
)

// newSwitchCmd creates the switch command
func newSwitchCmd() *cobra.Command {
	var (
		moveOver    bool
		moveIgnored bool
	)

	cmd := &cobra.Command{
		Use:     "switch <branch>",
		Aliases: []string{"sw"},
		Short:   "Switch branches",
		Long: `Switch branches.

Uncommitted changes of the current branch are saved and the ones saved on
the destination branch are restored. With --move-over the uncommitted
changes are carried over to the destination branch instead.`,
		Args:              exactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.SwitchAction(ctx, actions.SwitchOptions{
					BranchName:  args[0],
					MoveOver:    moveOver,
					MoveIgnored: moveIgnored,
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&moveOver, "move-over", "o", false,
		"Move uncommitted changes made to the current branch over to the destination branch (-mo)")
	cmd.Flags().BoolVarP(&moveIgnored, "move-ignored", "i", false,
		"Leave ignored files in place for the destination branch; only matters when snapshot.save_ignored is set (-mi)")

	return cmd
}
