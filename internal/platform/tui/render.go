package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

// Painter turns Screen buffers into styled strings for one output.
// SSH sessions get their own renderer so color detection follows the
// client's terminal, not the server's.
type Painter struct {
	base   lipgloss.Style
	styles map[core.Color]lipgloss.Style
}

// NewPainter creates a painter for r. A nil renderer uses the default one.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Painter{
		base:   r.NewStyle(),
		styles: make(map[core.Color]lipgloss.Style),
	}
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if code := c.ANSI(); code != "" {
			p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
		}
	}
	return p
}

// Paint converts a Screen buffer to a styled string.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Painter) Paint(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(p.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

func (p *Painter) style(c core.Color) lipgloss.Style {
	if st, ok := p.styles[c]; ok {
		return st
	}
	return p.base
}

// RenderScreen paints s with the default renderer.
func RenderScreen(s *core.Screen) string {
	return NewPainter(nil).Paint(s)
}
