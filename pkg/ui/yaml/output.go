// Package yaml provides machine-readable YAML output
package yaml

import (
	"fmt"
	"io"

	"github.com/arthur-debert/nulink/pkg/style"
	"github.com/arthur-debert/nulink/pkg/types"
	"gopkg.in/yaml.v3"
)

// Output renders results as YAML documents on out. Messages go to errOut
// as plain lines so out stays a valid YAML stream.
type Output struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a YAML output
func New(out, errOut io.Writer) *Output {
	return &Output{out: out, errOut: errOut}
}

// Messages go to errOut so stdout stays a valid document. Color hints are
// dropped.
func (o *Output) Info(msg func() string, _ ...style.Color)    { fmt.Fprintln(o.errOut, msg()) }
func (o *Output) Error(msg func() string, _ ...style.Color)   { fmt.Fprintln(o.errOut, msg()) }
func (o *Output) Success(msg func() string, _ ...style.Color) { fmt.Fprintln(o.errOut, msg()) }

// RenderStatus renders the report as a YAML document
func (o *Output) RenderStatus(report *types.StatusReport) error {
	enc := yaml.NewEncoder(o.out)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
