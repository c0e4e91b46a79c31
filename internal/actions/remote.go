package actions

import (
	"strings"

	"gitless.dev/gl/internal/runtime"
)

// ListRemotesAction prints the configured remotes and their URLs.
func ListRemotesAction(ctx *runtime.Context) error {
	remotes, err := ctx.Repo.ListRemotes()
	if err != nil {
		return err
	}
	if len(remotes) == 0 {
		ctx.Splog.Info("There are no remotes to list")
		return nil
	}
	for _, r := range remotes {
		ctx.Splog.Info("%s (maps to %s)", r.Name, strings.Join(r.URLs, ", "))
	}
	return nil
}
