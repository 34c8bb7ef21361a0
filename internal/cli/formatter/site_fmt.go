package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

// FormatSiteList renders the portfolio table with a total-capacity footer.
func FormatSiteList(projects []*domain.Project, now time.Time) string {
	headers := []string{"#", "ID", "NAME", "CAPACITY", "TECHNOLOGY", "MODEL", "COD", "PROGRESS"}
	align := []Alignment{AlignRight, AlignLeft, AlignLeft, AlignRight}
	rows := make([][]string, 0, len(projects))

	var total float64
	for i, p := range projects {
		total += p.Config.CapacityKWc

		cod := Dim("--")
		if d, ok := p.CommercialOperationDate(); ok {
			cod = FormatDate(d)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			Dim(p.DisplayID()),
			Bold(p.Name),
			FormatCapacity(p.Config.CapacityKWc),
			string(p.Config.Technology),
			string(p.Config.Model),
			cod,
			RenderProgress(ScheduleProgress(p, now), 10),
		})
	}

	footer := fmt.Sprintf("%s %s across %d site(s)",
		Dim("Total capacity:"),
		StyleGreen.Render(FormatCapacity(total)),
		len(projects))

	return RenderBox("Sites", RenderAlignedTable(headers, align, rows)+"\n"+footer)
}

// FormatPhaseTable lists phases with their dates, duration and milestone.
func FormatPhaseTable(phases []domain.Phase) string {
	headers := []string{"PHASE", "START", "END", "DURATION", "MILESTONE"}
	align := []Alignment{AlignLeft, AlignLeft, AlignLeft, AlignRight}
	rows := make([][]string, 0, len(phases))
	for _, ph := range phases {
		milestone := Dim("--")
		if ph.Milestone {
			milestone = StyleGreen.Render("◆ " + domain.MilestoneLabel(ph.ID))
		}
		rows = append(rows, []string{
			PhaseSwatch(ph.ID),
			FormatDate(ph.StartDate),
			FormatDate(ph.EndDate),
			FormatMonths(ph.DurationMonths),
			milestone,
		})
	}
	return RenderAlignedTable(headers, align, rows)
}

// FormatConfig renders a configuration as aligned key/value lines,
// followed by any phase overrides.
func FormatConfig(cfg domain.ProjectConfig) string {
	var b strings.Builder
	field := func(k, v string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(PadRight(k, 13)), v))
	}
	field("SIGNATURE", FormatDate(cfg.SignatureDate))
	field("CAPACITY", FormatCapacity(cfg.CapacityKWc))
	field("TECHNOLOGY", string(cfg.Technology))
	field("MODEL", string(cfg.Model))
	field("CONNECTION", string(cfg.Connection))
	field("SUBCONTRACT", YesNo(cfg.Subcontracted))

	for _, id := range domain.OverridablePhases {
		ov, ok := cfg.Overrides[id]
		if !ok {
			continue
		}
		field("OVERRIDE", fmt.Sprintf("%s %s", domain.PhaseName(id), FormatOverride(ov)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatOverride describes an override as "off", "on", "6 mo" or "on, 6 mo".
func FormatOverride(ov domain.PhaseOverride) string {
	var parts []string
	if ov.Enabled != nil {
		if *ov.Enabled {
			parts = append(parts, "on")
		} else {
			parts = append(parts, "off")
		}
	}
	if ov.ManualDuration != nil && *ov.ManualDuration > 0 {
		parts = append(parts, strconv.FormatFloat(*ov.ManualDuration, 'f', -1, 64)+" mo")
	}
	if len(parts) == 0 {
		return Dim("default")
	}
	return strings.Join(parts, ", ")
}

// FormatSiteInspect renders a site card: configuration beside its phases.
func FormatSiteInspect(p *domain.Project) string {
	var left strings.Builder
	left.WriteString(StyleBold.Render(p.Name) + "\n")
	left.WriteString(Dim(p.ID) + "\n\n")
	left.WriteString(FormatConfig(p.Config))

	combined := lipgloss.JoinVertical(lipgloss.Left,
		left.String(),
		"",
		FormatPhaseTable(p.Phases),
	)
	return RenderBox("", combined)
}

// FormatPlan renders a schedule preview with its key intermediate dates.
func FormatPlan(s scheduler.Schedule) string {
	m := s.Milestones
	var keys strings.Builder
	key := func(k string, t time.Time) {
		keys.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(PadRight(k, 17)), FormatDate(t)))
	}
	key("SIGNATURE (T0)", m.SignatureDate)
	key("URBANISM END", m.UrbanismEnd)
	key("TENDER END", m.TenderEnd)
	key("LEASE END", m.LeaseEnd)
	key("SECURITY LOCK", m.SecurityLock)
	key("CONNECTION START", m.ConnectionStart)
	key("CONNECTION END", m.ConnectionEnd)

	body := lipgloss.JoinVertical(lipgloss.Left,
		FormatConfig(s.Config),
		"",
		FormatPhaseTable(s.Phases),
		Header("Key dates"),
		strings.TrimRight(keys.String(), "\n"),
	)
	return RenderBox("Plan preview", body)
}
