package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color mode values accepted by ConfigureColor.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled decides whether output is styled. "always" and "never" win
// over everything; in auto mode colour needs a terminal, no NO_COLOR, and
// git's color.ui not turned off.
func ColorEnabled(mode string, tty, noColorEnv, gitDisabled bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return tty && !noColorEnv && !gitDisabled
}

// ConfigureColor applies the colour decision for out to every renderer
// gl uses and returns it.
func ConfigureColor(mode string, out *os.File, gitDisabled bool) bool {
	tty := out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()))
	_, noColor := os.LookupEnv("NO_COLOR")
	enabled := ColorEnabled(mode, tty, noColor, gitDisabled)
	SetColor(enabled)
	return enabled
}

// SetColor turns styling on or off.
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.ANSI)
		text.EnableColors()
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	text.DisableColors()
}
