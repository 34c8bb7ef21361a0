// Package timeline positions computed phases on a shared month window.
package timeline

import (
	"time"

	"github.com/alexanderramin/solplan/internal/calendar"
	"github.com/alexanderramin/solplan/internal/domain"
)

// DefaultWindowMonths is the standard display window length.
const DefaultWindowMonths = 36

// Window is a month-aligned display range shared by every project row.
type Window struct {
	Start  time.Time
	Months int
}

// fallbackStart anchors an empty project list.
var fallbackStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewWindow starts at the earliest phase start across all projects,
// excluding negotiation, floored to the first of its month. A non-positive
// months value uses DefaultWindowMonths.
func NewWindow(projects []*domain.Project, months int) Window {
	if months <= 0 {
		months = DefaultWindowMonths
	}
	var earliest time.Time
	for _, p := range projects {
		for _, ph := range p.Phases {
			if ph.ID == domain.PhaseNegotiation {
				continue
			}
			if earliest.IsZero() || ph.StartDate.Before(earliest) {
				earliest = ph.StartDate
			}
		}
	}
	if earliest.IsZero() {
		return Window{Start: fallbackStart, Months: months}
	}
	return Window{Start: calendar.StartOfMonth(earliest), Months: months}
}

// MonthStarts returns the first day of every month in the window.
func (w Window) MonthStarts() []time.Time {
	out := make([]time.Time, w.Months)
	for i := range out {
		out[i] = w.Start.AddDate(0, i, 0)
	}
	return out
}

// End is the first instant after the window.
func (w Window) End() time.Time {
	return w.Start.AddDate(0, w.Months, 0)
}

// Placement is a phase's horizontal position as fractions of the window.
type Placement struct {
	Left  float64
	Width float64
}

// Place positions ph: left is whole months from the window start, width is
// the phase duration, both divided by the window length.
func (w Window) Place(ph domain.Phase) Placement {
	months := float64(w.Months)
	return Placement{
		Left:  float64(calendar.DiffMonths(w.Start, ph.StartDate)) / months,
		Width: ph.DurationMonths / months,
	}
}

// Visible reports whether any part of the placement falls inside the window.
func (p Placement) Visible() bool {
	return p.Left < 1 && p.Left+p.Width > 0
}

// Clamp restricts the placement to the [0, 1] window range.
func (p Placement) Clamp() Placement {
	left := p.Left
	right := p.Left + p.Width
	if left < 0 {
		left = 0
	}
	if right > 1 {
		right = 1
	}
	if right < left {
		right = left
	}
	return Placement{Left: left, Width: right - left}
}
