package formatter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DateLayout is the date format used across CLI output and input.
const DateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatDate renders a calendar date, or "--" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format(DateLayout)
}

// FormatMonthLabel is the short month label drawn next to timeline bars.
func FormatMonthLabel(t time.Time) string {
	return t.Format("Jan 06")
}

// FormatCapacity renders a capacity such as "500 kWc" or "99.5 kWc".
func FormatCapacity(kwc float64) string {
	return strconv.FormatFloat(kwc, 'f', -1, 64) + " kWc"
}

// FormatMonths renders a duration in months with one decimal.
func FormatMonths(m float64) string {
	return strconv.FormatFloat(math.Round(m*10)/10, 'f', 1, 64) + " mo"
}

// DurationLabel is the compact label drawn inside a timeline bar: "20D"
// for phases shorter than 0.8 month, otherwise whole months like "6M".
func DurationLabel(months float64) string {
	if months < 0.8 {
		return "20D"
	}
	return strconv.Itoa(int(math.Round(months))) + "M"
}

// Truncate shortens s to max visible runes, ending with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}

// PadRight pads s with spaces to width visible columns.
func PadRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
