package cli

import (
	"github.com/spf13/cobra"

	"gitless.dev/gl/internal/actions"
	"gitless.dev/gl/internal/cli/helpers"
	"gitless.dev/gl/internal/runtime"
)

// newTrackCmd creates the track command
func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track <paths...>",
		Short: "Start tracking changes to files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.TrackAction(ctx, args)
			})
		},
	}
}

// newUntrackCmd creates the untrack command
func newUntrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untrack <paths...>",
		Short: "Stop tracking changes to files",
		Long: `Stop tracking changes to files.

The files stay in the working tree as untracked files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.UntrackAction(ctx, args)
			})
		},
	}
}

// newCheckoutCmd creates the checkout command
func newCheckoutCmd() *cobra.Command {
	var (
		commitPoint string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:     "checkout <paths...>",
		Aliases: []string{"co"},
		Short:   "Check out committed versions of files",
		Long: `Check out committed versions of files.

The working version of each file is replaced with the one recorded in the
given commit. Uncommitted changes to a file are only overwritten after
confirmation.`,
		Example: `  gl checkout README.md
  gl checkout src/main.go --commit-point HEAD~2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				opts := actions.CheckoutFilesOptions{Paths: args, CommitPoint: commitPoint}
				if !yes {
					opts.Confirm = confirmOverwrite
				}
				return actions.CheckoutFilesAction(ctx, opts)
			})
		},
	}
	cmd.Flags().StringVar(&commitPoint, "commit-point", "", "The commit to check out the files from (-cp; defaults to HEAD)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Overwrite uncommitted changes without asking")

	return cmd
}
