package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired palette shared by tables, the chart and the wizard.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorShade  = lipgloss.Color("#3c3836")
)

// StyleShade backs construction-restricted months in the chart header.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleShade  = lipgloss.NewStyle().Foreground(ColorDim).Background(ColorShade)
)

// PhaseStyle colors text with the phase's display color.
func PhaseStyle(id domain.PhaseID) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(domain.PhaseColor(id)))
}

// PhaseBarStyle paints a bar cell in the phase's display color.
func PhaseBarStyle(id domain.PhaseID) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(domain.PhaseColor(id))).
		Bold(true)
}

// PhaseSwatch renders a colored square followed by the phase name.
func PhaseSwatch(id domain.PhaseID) string {
	return PhaseStyle(id).Render("■") + " " + domain.PhaseName(id)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// YesNo renders a boolean flag.
func YesNo(b bool) string {
	if b {
		return StyleGreen.Render("yes")
	}
	return Dim("no")
}
