package domain

import (
	"errors"
	"fmt"
	"time"
)

// DefaultCapacityKWc is used when a configuration leaves capacity unset.
const DefaultCapacityKWc = 500

// PhaseOverride substitutes enablement and/or duration for one phase.
// A nil Enabled falls back to the phase's default rule; a nil or
// non-positive ManualDuration falls back to the computed default.
type PhaseOverride struct {
	Enabled        *bool
	ManualDuration *float64
}

// ProjectConfig is the input of the phase scheduler.
type ProjectConfig struct {
	SignatureDate time.Time
	CapacityKWc   float64
	Technology    TechnologyType
	Model         BusinessModel
	Connection    ConnectionType
	Subcontracted bool
	Overrides     map[PhaseID]PhaseOverride
}

// WithDefaults returns a copy with every omitted field filled in. today is
// used only when SignatureDate is zero.
func (c ProjectConfig) WithDefaults(today time.Time) ProjectConfig {
	out := c
	if out.SignatureDate.IsZero() {
		out.SignatureDate = today
	}
	y, m, d := out.SignatureDate.Date()
	out.SignatureDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if out.CapacityKWc == 0 {
		out.CapacityKWc = DefaultCapacityKWc
	}
	if out.Technology == "" {
		out.Technology = TechNewRoof
	}
	if out.Model == "" {
		out.Model = ModelDirectEPC
	}
	if out.Connection == "" {
		out.Connection = ConnectionGridInjection
	}
	out.Overrides = make(map[PhaseID]PhaseOverride, len(c.Overrides))
	for id, ov := range c.Overrides {
		out.Overrides[id] = ov
	}
	return out
}

var (
	ErrInvalidCapacity   = errors.New("invalid capacity")
	ErrInvalidDuration   = errors.New("invalid manual duration")
	ErrDuplicateOverride = errors.New("duplicate override key")
)

// Normalize checks enumerations, override keys and numbers at the
// configuration boundary and returns a copy holding the canonical
// spelling of every enum and key. Empty enums are kept and resolved by
// WithDefaults. NaN and infinite numbers are rejected; a non-positive
// manual duration is kept and falls back to the default at compute time.
func (c ProjectConfig) Normalize() (ProjectConfig, error) {
	out := c
	if !IsFinite(c.CapacityKWc) {
		return ProjectConfig{}, fmt.Errorf("%w: %v", ErrInvalidCapacity, c.CapacityKWc)
	}
	if c.Technology != "" {
		t, err := ParseTechnologyType(string(c.Technology))
		if err != nil {
			return ProjectConfig{}, err
		}
		out.Technology = t
	}
	if c.Model != "" {
		m, err := ParseBusinessModel(string(c.Model))
		if err != nil {
			return ProjectConfig{}, err
		}
		out.Model = m
	}
	if c.Connection != "" {
		conn, err := ParseConnectionType(string(c.Connection))
		if err != nil {
			return ProjectConfig{}, err
		}
		out.Connection = conn
	}

	if c.Overrides != nil {
		out.Overrides = make(map[PhaseID]PhaseOverride, len(c.Overrides))
	}
	for raw, ov := range c.Overrides {
		id, err := ParsePhaseID(string(raw))
		if err != nil {
			return ProjectConfig{}, fmt.Errorf("override key: %w", err)
		}
		if _, dup := out.Overrides[id]; dup {
			return ProjectConfig{}, fmt.Errorf("%w: %q", ErrDuplicateOverride, id)
		}
		if ov.ManualDuration != nil && !IsFinite(*ov.ManualDuration) {
			return ProjectConfig{}, fmt.Errorf("%w: %s: %v", ErrInvalidDuration, id, *ov.ManualDuration)
		}
		out.Overrides[id] = ov
	}
	return out, nil
}

// Validate reports the first error Normalize would return.
func (c ProjectConfig) Validate() error {
	_, err := c.Normalize()
	return err
}

// Phase is one dated entry of a computed schedule.
type Phase struct {
	ID             PhaseID
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	DurationMonths float64
	Color          string
	Milestone      bool
}

// Project owns its configuration and the phase list computed from it.
type Project struct {
	ID        string
	Name      string
	Config    ProjectConfig
	Phases    []Phase
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayID returns the first 8 characters of the project ID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// Phase returns the phase with the given id, if the project has one.
func (p *Project) Phase(id PhaseID) (Phase, bool) {
	for _, ph := range p.Phases {
		if ph.ID == id {
			return ph, true
		}
	}
	return Phase{}, false
}

// CommercialOperationDate is the start of the operation phase.
func (p *Project) CommercialOperationDate() (time.Time, bool) {
	ph, ok := p.Phase(PhaseOperation)
	if !ok {
		return time.Time{}, false
	}
	return ph.StartDate, true
}
