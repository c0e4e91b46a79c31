package output

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	currentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	branchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	revisionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// ColorBranchName colors a branch name based on whether it's current
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return currentStyle.Render(branchName)
	}
	return branchStyle.Render(branchName)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return dimStyle.Render(text)
}

// ColorWarning colors text yellow
func ColorWarning(text string) string {
	return warningStyle.Render(text)
}

// ColorAdded colors text green
func ColorAdded(text string) string {
	return addedStyle.Render(text)
}

// ColorRemoved colors text red
func ColorRemoved(text string) string {
	return removedStyle.Render(text)
}

// ColorHeader renders a section header
func ColorHeader(text string) string {
	return headerStyle.Render(text)
}

// ColorRevision renders an abbreviated revision
func ColorRevision(rev string) string {
	return revisionStyle.Render(ShortRevision(rev))
}

// ShortRevision abbreviates a commit id
func ShortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
