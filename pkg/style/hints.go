package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color is a rendering hint attached to a reported message. Reporters that
// cannot render colors ignore it.
type Color int

const (
	ColorDefault Color = iota
	ColorGreen
	ColorRed
	ColorDarkYellow
	ColorCyan
	ColorGray
)

func (c Color) style() lipgloss.Style {
	switch c {
	case ColorGreen:
		return lipgloss.NewStyle().Foreground(SuccessColor)
	case ColorRed:
		return lipgloss.NewStyle().Foreground(ErrorColor)
	case ColorDarkYellow:
		return lipgloss.NewStyle().Foreground(WarningColor)
	case ColorCyan:
		return lipgloss.NewStyle().Foreground(InfoColor)
	case ColorGray:
		return lipgloss.NewStyle().Foreground(MutedColor)
	default:
		return lipgloss.NewStyle()
	}
}

// Render paints s with c
func (c Color) Render(s string) string {
	if c == ColorDefault {
		return s
	}
	return c.style().Render(s)
}

// ApplyHints colors the whitespace separated fields of msg with hints, in
// order. The last hint covers every remaining field, so a trailing path
// containing spaces is painted as one piece. Leading whitespace is kept.
func ApplyHints(msg string, hints ...Color) string {
	if len(hints) == 0 {
		return msg
	}

	trimmed := strings.TrimLeft(msg, " \t")
	var b strings.Builder
	b.WriteString(msg[:len(msg)-len(trimmed)])

	rest := trimmed
	for i, hint := range hints {
		if rest == "" {
			break
		}
		if i == len(hints)-1 {
			b.WriteString(hint.Render(rest))
			return b.String()
		}
		field, tail, found := strings.Cut(rest, " ")
		b.WriteString(hint.Render(field))
		if !found {
			return b.String()
		}
		b.WriteString(" ")
		rest = tail
	}
	b.WriteString(rest)
	return b.String()
}
