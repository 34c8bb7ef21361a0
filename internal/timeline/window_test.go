package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewWindow_EmptyUsesFallback(t *testing.T) {
	w := NewWindow(nil, 0)
	assert.Equal(t, date(2025, 1, 1), w.Start)
	assert.Equal(t, DefaultWindowMonths, w.Months)
}

func TestNewWindow_ExcludesNegotiationAndFloorsToMonth(t *testing.T) {
	projects := []*domain.Project{
		{Phases: []domain.Phase{
			{ID: domain.PhaseNegotiation, StartDate: date(2024, 12, 30)},
			{ID: domain.PhaseUrbanism, StartDate: date(2025, 1, 15)},
		}},
		{Phases: []domain.Phase{
			{ID: domain.PhaseUrbanism, StartDate: date(2025, 3, 20)},
		}},
	}
	w := NewWindow(projects, 24)
	assert.Equal(t, date(2025, 1, 1), w.Start)
	assert.Equal(t, 24, w.Months)
	assert.Equal(t, date(2027, 1, 1), w.End())
}

func TestWindow_MonthStarts(t *testing.T) {
	w := Window{Start: date(2025, 11, 1), Months: 3}
	assert.Equal(t, []time.Time{date(2025, 11, 1), date(2025, 12, 1), date(2026, 1, 1)}, w.MonthStarts())
}

func TestWindow_Place(t *testing.T) {
	w := Window{Start: date(2025, 1, 1), Months: 36}
	p := w.Place(domain.Phase{StartDate: date(2025, 7, 15), DurationMonths: 4})
	assert.InDelta(t, 6.0/36, p.Left, 1e-9)
	assert.InDelta(t, 4.0/36, p.Width, 1e-9)
	assert.True(t, p.Visible())
}

func TestPlacement_Clamp(t *testing.T) {
	p := Placement{Left: -0.1, Width: 0.3}.Clamp()
	assert.InDelta(t, 0, p.Left, 1e-9)
	assert.InDelta(t, 0.2, p.Width, 1e-9)

	p = Placement{Left: 0.9, Width: 0.5}.Clamp()
	assert.InDelta(t, 0.1, p.Width, 1e-9)

	assert.False(t, Placement{Left: 1.2, Width: 0.1}.Visible())
	assert.False(t, Placement{Left: -0.5, Width: 0.2}.Visible())
}
