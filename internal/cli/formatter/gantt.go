package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/solplan/internal/calendar"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultCellsPerMonth = 2
	defaultLabelWidth    = 28
)

// GanttOptions controls the timeline rendering.
type GanttOptions struct {
	Window timeline.Window
	// Width is the number of chart columns; zero uses two per month.
	Width int
	// LabelWidth is the width of the left label column; zero uses 28.
	LabelWidth int
	// Expanded holds the ids of projects drawn one row per phase.
	Expanded map[string]bool
	// Cursor highlights the project at that index; negative for none.
	Cursor int
}

// GanttLayout is a rendered timeline. ProjectLines[i] is the index in
// Lines of project i's first row.
type GanttLayout struct {
	Lines        []string
	ProjectLines []int
}

// String joins the rendered lines.
func (l GanttLayout) String() string {
	return strings.Join(l.Lines, "\n")
}

// RenderGantt renders the static timeline with every project collapsed
// unless listed in opts.Expanded.
func RenderGantt(projects []*domain.Project, opts GanttOptions) string {
	return LayoutGantt(projects, opts).String()
}

// LayoutGantt renders the month header and one block per project.
// Collapsed projects show a single stacked bar; expanded projects list
// each phase with its duration label, month labels and milestone marker.
func LayoutGantt(projects []*domain.Project, opts GanttOptions) GanttLayout {
	g := newGantt(opts)

	var out GanttLayout
	out.Lines = append(out.Lines, g.headerLines()...)
	for i, p := range projects {
		out.ProjectLines = append(out.ProjectLines, len(out.Lines))
		out.Lines = append(out.Lines, g.projectLines(i, p)...)
	}
	if len(projects) == 0 {
		out.Lines = append(out.Lines, Dim("No sites to display."))
	}
	return out
}

type gantt struct {
	window     timeline.Window
	width      int
	labelWidth int
	expanded   map[string]bool
	cursor     int
}

func newGantt(opts GanttOptions) *gantt {
	g := &gantt{
		window:     opts.Window,
		width:      opts.Width,
		labelWidth: opts.LabelWidth,
		expanded:   opts.Expanded,
		cursor:     opts.Cursor,
	}
	if g.window.Months <= 0 {
		g.window.Months = timeline.DefaultWindowMonths
	}
	if g.width <= 0 {
		g.width = g.window.Months * defaultCellsPerMonth
	}
	if g.labelWidth <= 0 {
		g.labelWidth = defaultLabelWidth
	}
	return g
}

func (g *gantt) col(frac float64) int {
	return int(math.Round(frac * float64(g.width)))
}

func (g *gantt) monthCol(i int) int {
	return g.col(float64(i) / float64(g.window.Months))
}

func (g *gantt) label(text string, style lipgloss.Style) string {
	return style.Render(PadRight(Truncate(text, g.labelWidth-1), g.labelWidth))
}

// headerLines draws year markers above month initials. Restricted
// construction months are shaded.
func (g *gantt) headerLines() []string {
	years := newCanvas(g.width)
	months := newCanvas(g.width)
	shade := months.addStyle(StyleShade)
	dim := months.addStyle(StyleDim)
	yearStyle := years.addStyle(StyleHeader)

	for i, m := range g.window.MonthStarts() {
		from, to := g.monthCol(i), g.monthCol(i+1)
		if i == 0 || m.Month() == 1 {
			years.write(from, strconv.Itoa(m.Year()), yearStyle)
		}
		style := dim
		if calendar.IsRestricted(m.Month()) {
			style = shade
			months.fill(from, to, ' ', shade)
		}
		months.write(from, m.Format("Jan")[:1], style)
	}

	return []string{
		g.label("TIMELINE", StyleHeader) + years.String(),
		g.label(fmt.Sprintf("%d months", g.window.Months), StyleDim) + months.String(),
	}
}

func (g *gantt) projectLines(i int, p *domain.Project) []string {
	expanded := g.expanded[p.ID]
	marker := "▸"
	if expanded {
		marker = "▾"
	}
	labelStyle := StyleBold
	if i == g.cursor {
		labelStyle = StyleHeader
	}
	title := g.label(fmt.Sprintf("%s %d %s", marker, i+1, p.Name), labelStyle)
	capacity := " " + Dim(FormatCapacity(p.Config.CapacityKWc))

	if !expanded {
		return []string{title + g.collapsedBar(p).String() + capacity}
	}

	lines := []string{title + strings.Repeat(" ", g.width) + capacity}
	for _, ph := range p.Phases {
		lines = append(lines, g.label("    "+ph.Name, PhaseStyle(ph.ID))+g.phaseRow(ph).String())
	}
	return lines
}

// span returns the chart columns covered by ph, at least one wide.
func (g *gantt) span(ph domain.Phase) (from, to int, ok bool) {
	pl := g.window.Place(ph)
	if pl.Left >= 1 || pl.Left+pl.Width < 0 {
		return 0, 0, false
	}
	c := pl.Clamp()
	from = g.col(c.Left)
	to = g.col(c.Left + c.Width)
	if from >= g.width {
		from = g.width - 1
	}
	if to <= from {
		to = from + 1
	}
	return from, to, true
}

func (g *gantt) collapsedBar(p *domain.Project) *canvas {
	c := newCanvas(g.width)
	c.grid(g)

	for _, ph := range p.Phases {
		from, to, ok := g.span(ph)
		if !ok {
			continue
		}
		if ph.ID == domain.PhaseOperation {
			c.write(from, "┃", c.addStyle(PhaseStyle(ph.ID).Bold(true)))
			continue
		}
		style := c.addStyle(PhaseBarStyle(ph.ID))
		c.fill(from, to, ' ', style)
		if text := DurationLabel(ph.DurationMonths); to-from > len(text) {
			c.write(from+(to-from-len(text))/2, text, style)
		}
	}
	return c
}

func (g *gantt) phaseRow(ph domain.Phase) *canvas {
	c := newCanvas(g.width)
	c.grid(g)
	dim := c.addStyle(StyleDim)
	green := c.addStyle(StyleGreen.Bold(true))

	from, to, ok := g.span(ph)
	if !ok {
		return c
	}

	if ph.ID == domain.PhaseOperation {
		c.write(from, "◆ "+domain.MilestoneLabel(ph.ID)+" "+FormatMonthLabel(ph.StartDate), green)
		return c
	}

	bar := c.addStyle(PhaseBarStyle(ph.ID))
	c.fill(from, to, ' ', bar)
	text := DurationLabel(ph.DurationMonths)
	if to-from >= len(text) {
		c.write(from+(to-from-len(text))/2, text, bar)
	}

	at := to
	if ph.Milestone {
		marker := "◆ " + domain.MilestoneLabel(ph.ID)
		c.write(at, marker, green)
		at += len([]rune(marker))
	}
	c.write(at+1, FormatMonthLabel(ph.StartDate)+"–"+FormatMonthLabel(ph.EndDate), dim)
	return c
}

// RenderLegend lists every phase color and the restricted-month shading.
func RenderLegend() string {
	parts := make([]string, 0, len(domain.LegendOrder)+1)
	for _, id := range domain.LegendOrder {
		parts = append(parts, PhaseSwatch(id))
	}
	parts = append(parts, StyleShade.Render(" ")+" Restricted month")
	return strings.Join(parts, "   ")
}

// canvas is a fixed-width row of runes, each tagged with a style index.
// Index 0 is unstyled.
type canvas struct {
	runes   []rune
	styles  []int
	palette []lipgloss.Style
}

func newCanvas(width int) *canvas {
	c := &canvas{
		runes:   make([]rune, width),
		styles:  make([]int, width),
		palette: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c *canvas) addStyle(s lipgloss.Style) int {
	c.palette = append(c.palette, s)
	return len(c.palette) - 1
}

// grid dots each month boundary.
func (c *canvas) grid(g *gantt) {
	dim := c.addStyle(StyleDim)
	for i := 0; i < g.window.Months; i++ {
		c.write(g.monthCol(i), "·", dim)
	}
}

func (c *canvas) fill(from, to int, r rune, style int) {
	for i := max(from, 0); i < to && i < len(c.runes); i++ {
		c.runes[i] = r
		c.styles[i] = style
	}
}

// write places text from column at, clipped to the canvas.
func (c *canvas) write(at int, text string, style int) {
	for _, r := range text {
		if at >= len(c.runes) {
			return
		}
		if at >= 0 {
			c.runes[at] = r
			c.styles[at] = style
		}
		at++
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for i := 0; i < len(c.runes); {
		j := i
		for j < len(c.runes) && c.styles[j] == c.styles[i] {
			j++
		}
		run := string(c.runes[i:j])
		if c.styles[i] == 0 {
			b.WriteString(run)
		} else {
			b.WriteString(c.palette[c.styles[i]].Render(run))
		}
		i = j
	}
	return b.String()
}
