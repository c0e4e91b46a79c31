package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/config"
)

// ColorUI returns the value of git's color.ui setting ("" when unset).
// Repository, global and system scopes are merged, most specific first.
func (r *Repository) ColorUI() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, err := r.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return strings.ToLower(cfg.Raw.Section("color").Option("ui")), nil
}

// ColorDisabled reports whether the user turned colours off in git.
func (r *Repository) ColorDisabled() bool {
	ui, err := r.ColorUI()
	if err != nil {
		return false
	}
	switch ui {
	case "false", "never", "no", "off":
		return true
	}
	return false
}
