package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Link state names as rendered by the status command
const (
	StateLinked   = "linked"
	StateUnlinked = "unlinked"
	StateBroken   = "broken"
	StateMissing  = "missing"
)

// StateStyle returns the lipgloss style for a link state name
func StateStyle(state string) lipgloss.Style {
	switch state {
	case StateLinked:
		return LinkedStyle
	case StateUnlinked:
		return UnlinkedStyle
	case StateBroken:
		return BrokenStyle
	case StateMissing:
		return MissingStyle
	default:
		return NormalStyle
	}
}

// StateTableStyle returns the pterm style used for a state cell in the
// status table
func StateTableStyle(state string) *pterm.Style {
	switch state {
	case StateLinked:
		return pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	case StateUnlinked:
		return pterm.NewStyle(pterm.FgGray)
	case StateBroken:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case StateMissing:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}
