package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/solplan/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45%.
// Early progress is dim, mid-way yellow and near completion green.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.33:
		style = StyleDim
	case pct < 0.66:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// ScheduleProgress is the elapsed share of the span from the first phase
// start to the commercial operation date, as of now.
func ScheduleProgress(p *domain.Project, now time.Time) float64 {
	if len(p.Phases) == 0 {
		return 0
	}
	start := p.Phases[0].StartDate
	end, ok := p.CommercialOperationDate()
	if !ok {
		end = p.Phases[len(p.Phases)-1].EndDate
	}
	total := end.Sub(start)
	if total <= 0 {
		return 1
	}
	pct := float64(now.Sub(start)) / float64(total)
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}
