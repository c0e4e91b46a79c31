package cli

import (
	"github.com/spf13/cobra"

	"gitless.dev/gl/internal/actions"
	"gitless.dev/gl/internal/cli/helpers"
	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/runtime"
)

// newBranchCmd creates the branch command
func newBranchCmd() *cobra.Command {
	var (
		create         bool
		remove         bool
		yes            bool
		divergentPoint string
		setHead        string
	)

	cmd := &cobra.Command{
		Use:     "branch [names...]",
		Aliases: []string{"br"},
		Short:   "List, create, delete, or edit branches",
		Long: `List, create, delete, or edit branches.

Without flags the local branches are listed together with the number of
uncommitted changes saved on each of them.`,
		Example: `  gl branch
  gl branch -c feature --divergent-point main~2
  gl branch -d feature
  gl branch --set-head HEAD~1`,
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := 0
			for _, set := range []bool{create, remove, setHead != ""} {
				if set {
					modes++
				}
			}
			if modes > 1 {
				return glerrors.NewUserError("only one of --create, --delete and --set-head can be used at a time")
			}
			if divergentPoint != "" && !create {
				return glerrors.NewUserError("--divergent-point only applies to --create")
			}

			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				switch {
				case create:
					return actions.CreateBranchAction(ctx, actions.CreateBranchOptions{
						Names:          args,
						DivergentPoint: divergentPoint,
					})
				case remove:
					opts := actions.DeleteBranchOptions{Names: args}
					if !yes {
						opts.Confirm = confirmDelete
					}
					return actions.DeleteBranchAction(ctx, opts)
				case setHead != "":
					if len(args) > 0 {
						return glerrors.NewUserError("--set-head applies to the current branch, switch to %s first", args[0])
					}
					return actions.SetHeadAction(ctx, actions.SetHeadOptions{Revision: setHead})
				}
				if len(args) > 0 {
					return glerrors.NewUserError("to create a branch run 'gl branch -c %s'", args[0])
				}
				return actions.ListBranchesAction(ctx)
			})
		},
	}

	cmd.Flags().BoolVarP(&create, "create", "c", false, "Create the named branches")
	cmd.Flags().StringVar(&divergentPoint, "divergent-point", "",
		"The commit from where to 'branch out' (-dp; only relevant with --create, defaults to HEAD)")
	cmd.Flags().BoolVarP(&remove, "delete", "d", false, "Delete the named branches and the changes saved on them")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Don't ask for confirmation when deleting")
	cmd.Flags().StringVar(&setHead, "set-head", "",
		"Set the head of the current branch to the given commit (-sh); uncommitted changes are kept")

	return cmd
}
