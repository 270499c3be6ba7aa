// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/nulink/pkg/style"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/arthur-debert/nulink/pkg/ui/text"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Output renders colored messages with lipgloss and tables with pterm
type Output struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a terminal output
func New(out, errOut io.Writer) *Output {
	return &Output{out: out, errOut: errOut}
}

func (o *Output) Info(msg func() string, hints ...style.Color) {
	fmt.Fprintln(o.out, paint(style.NormalStyle, msg(), hints))
}

func (o *Output) Error(msg func() string, hints ...style.Color) {
	fmt.Fprintln(o.errOut, paint(style.ErrorStyle, msg(), hints))
}

func (o *Output) Success(msg func() string, hints ...style.Color) {
	fmt.Fprintln(o.out, paint(style.SuccessStyle, msg(), hints))
}

// paint applies hints, or the severity's style when there are none
func paint(base lipgloss.Style, text string, hints []style.Color) string {
	if len(hints) == 0 {
		return base.Render(text)
	}
	return style.ApplyHints(text, hints...)
}

// RenderStatus prints the report as a table with colored states
func (o *Output) RenderStatus(report *types.StatusReport) error {
	if len(report.Packages) == 0 {
		_, err := fmt.Fprintln(o.out, style.MutedStyle.Render("No package references found"))
		return err
	}

	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(text.StatusTable(report, func(state string) string {
			return style.StateTableStyle(state).Sprint(state)
		})).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(o.out, table)
	return err
}
