package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	glerrors "gitless.dev/gl/internal/errors"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gl",
		Short: "gl is a version control front end where every branch keeps its own working state",
		Long: `gl is a version control front end where every branch keeps its own working state.

Uncommitted changes stay with the branch they were made on: switching
branches saves them and switching back brings them back.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return glerrors.NewUserError("unknown command %q for gl", args[0])
			}
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return glerrors.NewUserError("%v", err)
	})

	rootCmd.AddCommand(
		newSwitchCmd(),
		newBranchCmd(),
		newStatusCmd(),
		newDiffCmd(),
		newRemoteCmd(),
		newSnapshotCmd(),
		newHistoryCmd(),
		newTagCmd(),
		newCheckoutCmd(),
		newTrackCmd(),
		newUntrackCmd(),
	)
	return rootCmd
}

// exactArgs is cobra.ExactArgs reporting a user error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return glerrors.NewUserError("%s accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

// maxArgs is cobra.MaximumNArgs reporting a user error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return glerrors.NewUserError("%s accepts at most %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}
