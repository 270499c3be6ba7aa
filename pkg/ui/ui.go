// Package ui reports progress and results to the user.
//
// A Reporter receives messages as functions so nothing is formatted for a
// message that is filtered out. Messages carry a severity (Info, Error,
// Success) and optional color hints that terminal output applies to the
// message's fields and every other format ignores.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/nulink/pkg/style"
	"github.com/arthur-debert/nulink/pkg/types"
	"github.com/arthur-debert/nulink/pkg/ui/json"
	"github.com/arthur-debert/nulink/pkg/ui/terminal"
	"github.com/arthur-debert/nulink/pkg/ui/text"
	"github.com/arthur-debert/nulink/pkg/ui/yaml"
)

// Reporter is the sink for user facing messages
type Reporter interface {
	// Each severity takes optional hints that color the message's
	// whitespace separated fields in order, see style.ApplyHints.
	Info(msg func() string, hints ...style.Color)
	Error(msg func() string, hints ...style.Color)
	Success(msg func() string, hints ...style.Color)
}

// Output is a Reporter that can also render command results
type Output interface {
	Reporter
	RenderStatus(report *types.StatusReport) error
}

// Options configures an Output
type Options struct {
	Out     io.Writer
	ErrOut  io.Writer
	NoColor bool
}

// New creates an Output for format. FormatAuto inspects Out when it is a
// file and otherwise falls back to the terminal format.
func New(format Format, opts Options) (Output, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}

	switch format {
	case FormatAuto:
		if file, ok := opts.Out.(*os.File); ok {
			return New(DetectFormat(file), opts)
		}
		return New(FormatTerminal, opts)
	case FormatTerminal:
		if opts.NoColor {
			return text.New(opts.Out, opts.ErrOut), nil
		}
		return terminal.New(opts.Out, opts.ErrOut), nil
	case FormatText:
		return text.New(opts.Out, opts.ErrOut), nil
	case FormatJSON:
		return json.New(opts.Out), nil
	case FormatYAML:
		return yaml.New(opts.Out, opts.ErrOut), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
