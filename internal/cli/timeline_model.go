package cli

import (
	"strings"

	"github.com/alexanderramin/solplan/internal/cli/formatter"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	timelineLabelWidth = 28
	// capacity suffix drawn after each chart row
	timelineSuffixWidth = 12
	// month header above the viewport, legend and help below it
	timelineChromeHeight = 5
)

type timelineKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Quit        key.Binding
}

func defaultTimelineKeyMap() timelineKeyMap {
	return timelineKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand/collapse")),
		ExpandAll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
		Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timelineKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.ExpandAll, k.CollapseAll, k.Quit}
}

// timelineViewportKeyMap leaves letter keys to the timeline bindings and
// scrolls only on page keys.
func timelineViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
}

// timelineModel is the interactive Gantt chart: a fixed month header over
// a scrolling list of sites, each of which can be expanded to its phases.
type timelineModel struct {
	sites    []*domain.Project
	window   timeline.Window
	expanded map[string]bool
	cursor   int
	keys     timelineKeyMap

	width    int
	height   int
	ready    bool
	header   string
	layout   formatter.GanttLayout
	vp       viewport.Model
	quitting bool
}

func newTimelineModel(sites []*domain.Project, window timeline.Window, expanded map[string]bool) timelineModel {
	if expanded == nil {
		expanded = make(map[string]bool)
	}
	vp := viewport.New(0, 0)
	vp.KeyMap = timelineViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := timelineModel{
		sites:    sites,
		window:   window,
		expanded: expanded,
		keys:     defaultTimelineKeyMap(),
		vp:       vp,
	}
	m.render()
	return m
}

func (m timelineModel) Init() tea.Cmd {
	return nil
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-timelineChromeHeight, 1)
		m.render()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.sites)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if s := m.selected(); s != nil {
				m.expanded[s.ID] = !m.expanded[s.ID]
			}
		case key.Matches(msg, m.keys.ExpandAll):
			for _, s := range m.sites {
				m.expanded[s.ID] = true
			}
		case key.Matches(msg, m.keys.CollapseAll):
			clear(m.expanded)
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		m.render()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *timelineModel) selected() *domain.Project {
	if m.cursor < 0 || m.cursor >= len(m.sites) {
		return nil
	}
	return m.sites[m.cursor]
}

func (m *timelineModel) chartWidth() int {
	if !m.ready {
		return 0
	}
	return max(m.width-timelineLabelWidth-timelineSuffixWidth, m.window.Months)
}

// render lays the chart out again and scrolls the cursor row into view.
func (m *timelineModel) render() {
	m.layout = formatter.LayoutGantt(m.sites, formatter.GanttOptions{
		Window:     m.window,
		Width:      m.chartWidth(),
		LabelWidth: timelineLabelWidth,
		Expanded:   m.expanded,
		Cursor:     m.cursor,
	})

	const headerLines = 2
	lines := m.layout.Lines
	if len(lines) < headerLines {
		return
	}
	m.header = strings.Join(lines[:headerLines], "\n")
	m.vp.SetContent(strings.Join(lines[headerLines:], "\n"))

	if m.cursor >= len(m.layout.ProjectLines) || m.vp.Height <= 0 {
		return
	}
	row := m.layout.ProjectLines[m.cursor] - headerLines
	switch {
	case row < m.vp.YOffset:
		m.vp.SetYOffset(row)
	case row >= m.vp.YOffset+m.vp.Height:
		m.vp.SetYOffset(row - m.vp.Height + 1)
	}
}

func (m timelineModel) helpLine() string {
	parts := make([]string, 0, len(m.keys.bindings()))
	for _, b := range m.keys.bindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " • "))
}

func (m timelineModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.layout.String()
	}
	return strings.Join([]string{
		m.header,
		m.vp.View(),
		"",
		formatter.RenderLegend(),
		m.helpLine(),
	}, "\n")
}
