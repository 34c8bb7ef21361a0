package testutil

import (
	"time"

	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/scheduler"
	"github.com/google/uuid"
)

// ReferenceSignature is the signature date used by fixtures unless
// overridden.
var ReferenceSignature = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

type ProjectOption func(*domain.Project)

func WithCapacity(kwc float64) ProjectOption {
	return func(p *domain.Project) {
		p.Config.CapacityKWc = kwc
	}
}

func WithSignature(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Config.SignatureDate = d
	}
}

func WithTechnology(tech domain.TechnologyType) ProjectOption {
	return func(p *domain.Project) {
		p.Config.Technology = tech
	}
}

func WithModel(m domain.BusinessModel) ProjectOption {
	return func(p *domain.Project) {
		p.Config.Model = m
	}
}

func WithConnection(c domain.ConnectionType) ProjectOption {
	return func(p *domain.Project) {
		p.Config.Connection = c
	}
}

func WithSubcontracted() ProjectOption {
	return func(p *domain.Project) {
		p.Config.Subcontracted = true
	}
}

func WithOverride(id domain.PhaseID, ov domain.PhaseOverride) ProjectOption {
	return func(p *domain.Project) {
		p.Config.Overrides[id] = ov
	}
}

func WithCreatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = t
		p.UpdatedAt = t
	}
}

// NewTestProject builds a project with a 500 kWc new-roof configuration
// signed on ReferenceSignature, applies opts, then computes its phases.
// It panics if the schedule cannot be computed.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:   uuid.New().String(),
		Name: name,
		Config: domain.ProjectConfig{
			SignatureDate: ReferenceSignature,
			CapacityKWc:   domain.DefaultCapacityKWc,
			Technology:    domain.TechNewRoof,
			Model:         domain.ModelDirectEPC,
			Connection:    domain.ConnectionGridInjection,
			Overrides:     map[domain.PhaseID]domain.PhaseOverride{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}

	s, err := scheduler.Compute(p.Config, scheduler.WithToday(ReferenceSignature))
	if err != nil {
		panic(err)
	}
	p.Config = s.Config
	p.Phases = s.Phases
	return p
}
