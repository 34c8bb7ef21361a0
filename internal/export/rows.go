// Package export flattens project schedules into spreadsheet-friendly tables.
package export

import (
	"math"
	"time"

	"github.com/alexanderramin/solplan/internal/domain"
)

// Headers are the column titles shared by every export format.
var Headers = []string{
	"Project #",
	"Site Name",
	"Capacity (kWc)",
	"Phase",
	"Start Date",
	"End Date",
	"Duration (Months)",
	"Milestone",
}

// DateLayout is the day-first layout used for exported dates.
const DateLayout = "02/01/2006"

// Row is one phase of one project.
type Row struct {
	ProjectIndex   int
	SiteName       string
	CapacityKWc    float64
	PhaseID        domain.PhaseID
	PhaseName      string
	Color          string
	StartDate      time.Time
	EndDate        time.Time
	DurationMonths float64
	Milestone      bool
}

// Flatten returns one row per phase, projects numbered from 1.
func Flatten(projects []*domain.Project) []Row {
	var rows []Row
	for i, p := range projects {
		for _, ph := range p.Phases {
			rows = append(rows, Row{
				ProjectIndex:   i + 1,
				SiteName:       p.Name,
				CapacityKWc:    p.Config.CapacityKWc,
				PhaseID:        ph.ID,
				PhaseName:      ph.Name,
				Color:          ph.Color,
				StartDate:      ph.StartDate,
				EndDate:        ph.EndDate,
				DurationMonths: RoundDuration(ph.DurationMonths),
				Milestone:      ph.Milestone,
			})
		}
	}
	return rows
}

// RoundDuration rounds to one decimal place.
func RoundDuration(months float64) float64 {
	return math.Round(months*10) / 10
}

// FileName returns the default export file name for the given day.
func FileName(day time.Time, ext string) string {
	return "solplan_gantt_export_" + day.Format("2006-01-02") + "." + ext
}

func milestoneText(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
