package snapshot

import (
	"fmt"
	"time"

	"github.com/alexanderramin/solplan/internal/domain"
)

// FromProjects converts domain projects into their persisted form.
func FromProjects(projects []*domain.Project) Envelope {
	env := Envelope{Key: StorageKey, Projects: make([]ProjectRecord, 0, len(projects))}
	for _, p := range projects {
		rec := ProjectRecord{
			ID:   p.ID,
			Name: p.Name,
			Config: ConfigRecord{
				SignatureDate: p.Config.SignatureDate.Format(dateLayout),
				CapacityKWc:   p.Config.CapacityKWc,
				Technology:    string(p.Config.Technology),
				Model:         string(p.Config.Model),
				Connection:    string(p.Config.Connection),
				Subcontracted: p.Config.Subcontracted,
			},
			Phases:    make([]PhaseRecord, 0, len(p.Phases)),
			CreatedAt: formatTimestamp(p.CreatedAt),
			UpdatedAt: formatTimestamp(p.UpdatedAt),
		}
		if len(p.Config.Overrides) > 0 {
			rec.Config.Overrides = make(map[string]OverrideRecord, len(p.Config.Overrides))
			for id, ov := range p.Config.Overrides {
				rec.Config.Overrides[string(id)] = OverrideRecord{Enabled: ov.Enabled, ManualDuration: ov.ManualDuration}
			}
		}
		for _, ph := range p.Phases {
			rec.Phases = append(rec.Phases, PhaseRecord{
				ID:             string(ph.ID),
				Name:           ph.Name,
				StartDate:      ph.StartDate.Format(dateLayout),
				EndDate:        ph.EndDate.Format(dateLayout),
				DurationMonths: ph.DurationMonths,
				Color:          ph.Color,
				Milestone:      ph.Milestone,
			})
		}
		env.Projects = append(env.Projects, rec)
	}
	return env
}

// ToProjects transforms a validated envelope into domain projects. Call
// ValidateEnvelope first; ToProjects assumes the envelope is valid.
func ToProjects(env *Envelope) ([]*domain.Project, error) {
	projects := make([]*domain.Project, 0, len(env.Projects))
	for _, rec := range env.Projects {
		sig, err := time.Parse(dateLayout, rec.Config.SignatureDate)
		if err != nil {
			return nil, fmt.Errorf("parsing signature_date of %s: %w", rec.ID, err)
		}
		cfg := domain.ProjectConfig{
			SignatureDate: sig,
			CapacityKWc:   rec.Config.CapacityKWc,
			Technology:    domain.TechnologyType(rec.Config.Technology),
			Model:         domain.BusinessModel(rec.Config.Model),
			Connection:    domain.ConnectionType(rec.Config.Connection),
			Subcontracted: rec.Config.Subcontracted,
			Overrides:     make(map[domain.PhaseID]domain.PhaseOverride, len(rec.Config.Overrides)),
		}
		for id, ov := range rec.Config.Overrides {
			cfg.Overrides[domain.PhaseID(id)] = domain.PhaseOverride{Enabled: ov.Enabled, ManualDuration: ov.ManualDuration}
		}
		if cfg, err = cfg.Normalize(); err != nil {
			return nil, fmt.Errorf("config of %s: %w", rec.ID, err)
		}

		phases := make([]domain.Phase, 0, len(rec.Phases))
		for _, ph := range rec.Phases {
			start, err := time.Parse(dateLayout, ph.StartDate)
			if err != nil {
				return nil, fmt.Errorf("parsing start_date of %s/%s: %w", rec.ID, ph.ID, err)
			}
			end, err := time.Parse(dateLayout, ph.EndDate)
			if err != nil {
				return nil, fmt.Errorf("parsing end_date of %s/%s: %w", rec.ID, ph.ID, err)
			}
			id, err := domain.ParseRecordedPhaseID(ph.ID)
			if err != nil {
				return nil, fmt.Errorf("phase of %s: %w", rec.ID, err)
			}
			phases = append(phases, domain.Phase{
				ID:             id,
				Name:           ph.Name,
				StartDate:      start,
				EndDate:        end,
				DurationMonths: ph.DurationMonths,
				Color:          ph.Color,
				Milestone:      ph.Milestone,
			})
		}

		projects = append(projects, &domain.Project{
			ID:        rec.ID,
			Name:      rec.Name,
			Config:    cfg,
			Phases:    phases,
			CreatedAt: parseTimestamp(rec.CreatedAt),
			UpdatedAt: parseTimestamp(rec.UpdatedAt),
		})
	}
	return projects, nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
