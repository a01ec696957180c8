package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// colorRenderer emits ANSI colours whatever stdout is; Palette.Color decides
// whether it is used at all.
var colorRenderer = newColorRenderer()

func newColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(termenv.ANSI)
	return r
}

var (
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	strongStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// ShouldUseColor returns true when ANSI colors should be used on stdout.
// It respects NO_COLOR, CLICOLOR_FORCE, CLICOLOR, and TTY detection.
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Palette styles text when Color is set and passes it through otherwise.
type Palette struct {
	Color bool
}

// DetectPalette returns a Palette for stdout.
func DetectPalette() Palette {
	return Palette{Color: ShouldUseColor()}
}

func (p Palette) render(s lipgloss.Style, text string) string {
	if !p.Color {
		return text
	}
	return s.Renderer(colorRenderer).Render(text)
}

// Warn styles a warning.
func (p Palette) Warn(text string) string { return p.render(warnStyle, text) }

// Error styles an error.
func (p Palette) Error(text string) string { return p.render(errorStyle, text) }

// Strong emphasises names.
func (p Palette) Strong(text string) string { return p.render(strongStyle, text) }

// Dim de-emphasises secondary text.
func (p Palette) Dim(text string) string { return p.render(dimStyle, text) }

// OK styles success messages.
func (p Palette) OK(text string) string { return p.render(okStyle, text) }
