package helpers

import (
	"github.com/spf13/cobra"

	"gitless.dev/gl/internal/git"
)

// CompleteBranches is a helper for cobra.ValidArgsFunction that returns all
// branch names in the repository.
func CompleteBranches(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	repo, err := git.Open(Context(cmd), ".")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	branches, err := repo.ListBranches()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
