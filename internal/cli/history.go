package cli

import (
	"github.com/spf13/cobra"

	"gitless.dev/gl/internal/actions"
	"gitless.dev/gl/internal/cli/helpers"
	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/runtime"
)

// newHistoryCmd creates the history command
func newHistoryCmd() *cobra.Command {
	var (
		limit   int
		compact bool
	)

	cmd := &cobra.Command{
		Use:               "history [branch]",
		Aliases:           []string{"hi"},
		Short:             "Show the commit history of a branch",
		Args:              maxArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return glerrors.NewUserError("--limit can't be negative")
			}
			opts := actions.HistoryOptions{Limit: limit, Compact: compact}
			if len(args) == 1 {
				opts.Branch = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.HistoryAction(ctx, opts)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Show at most this many commits")
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "One line per commit")

	return cmd
}

// newTagCmd creates the tag command
func newTagCmd() *cobra.Command {
	var (
		create      bool
		remove      bool
		commitPoint string
	)

	cmd := &cobra.Command{
		Use:   "tag [names...]",
		Short: "List, create, or delete tags",
		Example: `  gl tag
  gl tag -c v1.0 --commit-point HEAD~1
  gl tag -d v1.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if create && remove {
				return glerrors.NewUserError("only one of --create and --delete can be used at a time")
			}
			if commitPoint != "" && !create {
				return glerrors.NewUserError("--commit-point only applies to --create")
			}

			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				switch {
				case create:
					return actions.CreateTagAction(ctx, actions.CreateTagOptions{Names: args, CommitPoint: commitPoint})
				case remove:
					return actions.DeleteTagAction(ctx, args)
				}
				if len(args) > 0 {
					return glerrors.NewUserError("to create a tag run 'gl tag -c %s'", args[0])
				}
				return actions.ListTagsAction(ctx)
			})
		},
	}
	cmd.Flags().BoolVarP(&create, "create", "c", false, "Create the named tags")
	cmd.Flags().BoolVarP(&remove, "delete", "d", false, "Delete the named tags")
	cmd.Flags().StringVar(&commitPoint, "commit-point", "", "The commit to tag (-cp; only relevant with --create, defaults to HEAD)")

	return cmd
}
