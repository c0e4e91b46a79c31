package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	glerrors "gitless.dev/gl/internal/errors"
	"gitless.dev/gl/internal/snapshot"
)

// isInteractive reports whether the user can answer a prompt.
func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirmDelete asks before a branch is removed, mentioning any uncommitted
// changes saved on it since they go with the branch.
func confirmDelete(branch string, saved *snapshot.Snapshot) (bool, error) {
	if !isInteractive() {
		return false, glerrors.NewUserError("not removing %s without confirmation, pass --yes to skip the prompt", branch)
	}

	message := fmt.Sprintf("Remove branch %s?", branch)
	if saved != nil {
		message = fmt.Sprintf("Branch %s has uncommitted changes saved on it (%d files), remove it anyway?", branch, saved.Len())
	}
	var ok bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// confirmOverwrite asks before uncommitted changes to a file are replaced.
func confirmOverwrite(path string) (bool, error) {
	if !isInteractive() {
		return false, glerrors.NewUserError("not overwriting the changes to %s without confirmation, pass --yes to skip the prompt", path)
	}

	var ok bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("You have uncommitted changes in %s that would be overwritten, continue?", path),
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
