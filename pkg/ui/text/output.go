// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/nulink/pkg/style"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/pterm/pterm"
)

// Output writes plain lines. Errors go to errOut.
type Output struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a text output
func New(out, errOut io.Writer) *Output {
	return &Output{out: out, errOut: errOut}
}

// Info, Error and Success ignore color hints
func (o *Output) Info(msg func() string, _ ...style.Color) {
	fmt.Fprintln(o.out, msg())
}

func (o *Output) Error(msg func() string, _ ...style.Color) {
	fmt.Fprintln(o.errOut, msg())
}

func (o *Output) Success(msg func() string, _ ...style.Color) {
	fmt.Fprintln(o.out, msg())
}

// RenderStatus prints the report as an unstyled table
func (o *Output) RenderStatus(report *types.StatusReport) error {
	if len(report.Packages) == 0 {
		_, err := fmt.Fprintln(o.out, "No package references found")
		return err
	}

	plain := pterm.NewStyle()
	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithStyle(plain).
		WithHeaderStyle(plain).
		WithSeparatorStyle(plain).
		WithData(StatusTable(report, func(state string) string { return state })).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(o.out, table)
	return err
}

// StatusTable lays out a report as table rows with a header. paint renders
// the state cell.
func StatusTable(report *types.StatusReport, paint func(state string) string) pterm.TableData {
	data := pterm.TableData{{"Package", "Version", "State", "Lib folder", "Details"}}
	for _, p := range report.Packages {
		data = append(data, []string{
			p.PackageID,
			p.Version,
			paint(p.State),
			p.LibFolderPath,
			details(p),
		})
	}
	return data
}

func details(p types.PackageStatus) string {
	switch {
	case p.Reason != "":
		return p.Reason
	case p.LinkTarget != "":
		return "-> " + p.LinkTarget
	case p.LocalSourcePath != "":
		return "local: " + p.LocalSourcePath
	default:
		return ""
	}
}
