// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/nulink/pkg/style"
	"github.com/arthur-debert/nulink/pkg/types"
)

type message struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Output writes one JSON object per message and an indented document per
// result
type Output struct {
	output io.Writer
}

// New creates a JSON output
func New(output io.Writer) *Output {
	return &Output{output: output}
}

func (o *Output) emit(level string, msg func() string) {
	_ = json.NewEncoder(o.output).Encode(message{Level: level, Message: msg()})
}

// Color hints are dropped
func (o *Output) Info(msg func() string, _ ...style.Color)    { o.emit("info", msg) }
func (o *Output) Error(msg func() string, _ ...style.Color)   { o.emit("error", msg) }
func (o *Output) Success(msg func() string, _ ...style.Color) { o.emit("success", msg) }

// RenderStatus renders the report as JSON
func (o *Output) RenderStatus(report *types.StatusReport) error {
	encoder := json.NewEncoder(o.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
