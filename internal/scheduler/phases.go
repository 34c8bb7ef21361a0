// Package scheduler turns a site configuration into a dated,
// dependency-resolved sequence of project phases.
package scheduler

import (
	"time"

	"github.com/alexanderramin/solplan/internal/calendar"
	"github.com/alexanderramin/solplan/internal/domain"
)

// Options tunes a computation. The zero value is not used directly; see
// defaultOptions.
type Options struct {
	// Today anchors the signature date when the configuration omits it.
	Today time.Time
	// IsRestricted reports construction-restricted months.
	IsRestricted func(time.Month) bool
}

type Option func(*Options)

// WithToday fixes the date used for an omitted signature date.
func WithToday(t time.Time) Option {
	return func(o *Options) { o.Today = t }
}

// WithRestriction replaces the calendar restriction table.
func WithRestriction(fn func(time.Month) bool) Option {
	return func(o *Options) { o.IsRestricted = fn }
}

func defaultOptions() Options {
	return Options{
		Today:        time.Now().UTC(),
		IsRestricted: calendar.IsRestricted,
	}
}

// Milestones are the named intermediate dates each phase depends on.
type Milestones struct {
	SignatureDate   time.Time
	UrbanismEnd     time.Time
	TenderEnd       time.Time
	LeaseEnd        time.Time
	SecurityLock    time.Time
	ConnectionStart time.Time
	ConnectionEnd   time.Time
}

// Schedule is the full result of a computation.
type Schedule struct {
	Config     domain.ProjectConfig
	Phases     []domain.Phase
	Milestones Milestones
}

// ComputePhases returns the ordered phase list for cfg.
func ComputePhases(cfg domain.ProjectConfig, opts ...Option) ([]domain.Phase, error) {
	s, err := Compute(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return s.Phases, nil
}

// Compute resolves defaults and computes every phase in dependency order:
// negotiation, urbanism (or its verification substitute), tender and lease
// in parallel, grid connection, construction (backward from connection),
// then commercial operation.
func Compute(cfg domain.ProjectConfig, opts ...Option) (Schedule, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	cfg = cfg.WithDefaults(o.Today)

	var phases []domain.Phase
	appendPhase := func(p *domain.Phase) {
		if p != nil {
			phases = append(phases, *p)
		}
	}

	var m Milestones
	m.SignatureDate = cfg.SignatureDate

	appendPhase(negotiationPhase(resolve(cfg, domain.PhaseNegotiation, true, negotiationMonths), m.SignatureDate))

	urb, urbanismEnd := urbanismPhase(resolve(cfg, domain.PhaseUrbanism, true, defaultUrbanismMonths(cfg)), m.SignatureDate)
	m.UrbanismEnd = urbanismEnd
	appendPhase(&urb)

	tender, tenderEnd := forwardPhase(domain.PhaseTender, resolve(cfg, domain.PhaseTender, tenderEnabledByDefault(cfg), tenderMonths), m.UrbanismEnd, true)
	m.TenderEnd = tenderEnd
	appendPhase(tender)

	lease, leaseEnd := forwardPhase(domain.PhaseLease, resolve(cfg, domain.PhaseLease, leaseEnabledByDefault(cfg), leaseMonths), m.UrbanismEnd, true)
	m.LeaseEnd = leaseEnd
	appendPhase(lease)

	m.SecurityLock = calendar.MaxTime(m.TenderEnd, m.LeaseEnd)

	m.ConnectionStart = calendar.MaxTime(m.UrbanismEnd, m.TenderEnd)
	conn, connectionEnd := forwardPhase(domain.PhaseGridConnection, resolve(cfg, domain.PhaseGridConnection, true, defaultConnectionMonths(cfg)), m.ConnectionStart, false)
	m.ConnectionEnd = connectionEnd
	appendPhase(conn)

	cons, err := constructionPhase(
		resolve(cfg, domain.PhaseConstruction, true, defaultConstructionMonths(cfg)),
		m.SecurityLock,
		m.ConnectionEnd,
		productiveMonth(cfg.Subcontracted, o.IsRestricted),
	)
	if err != nil {
		return Schedule{}, err
	}
	appendPhase(cons)

	op, _ := forwardPhase(domain.PhaseOperation, resolve(cfg, domain.PhaseOperation, true, operationMonths), calendar.AddMonths(m.ConnectionEnd, codBufferMonths), true)
	appendPhase(op)

	return Schedule{Config: cfg, Phases: phases, Milestones: m}, nil
}

func newPhase(id domain.PhaseID, start, end time.Time, months float64, milestone bool) *domain.Phase {
	return &domain.Phase{
		ID:             id,
		Name:           domain.PhaseName(id),
		StartDate:      start,
		EndDate:        end,
		DurationMonths: months,
		Color:          domain.PhaseColor(id),
		Milestone:      milestone,
	}
}

// negotiationPhase runs before T0 and ends exactly on it.
func negotiationPhase(s phaseSetting, t0 time.Time) *domain.Phase {
	if !s.enabled {
		return nil
	}
	return newPhase(domain.PhaseNegotiation, calendar.AddMonths(t0, -s.months), t0, s.months, false)
}

// urbanismPhase always emits a record: the full permitting phase when
// enabled, otherwise a short verification audit.
func urbanismPhase(s phaseSetting, t0 time.Time) (domain.Phase, time.Time) {
	if s.enabled {
		end := calendar.AddMonths(t0, s.months)
		return *newPhase(domain.PhaseUrbanism, t0, end, s.months, false), end
	}
	end := calendar.AddMonths(t0, urbanismAuditMonths)
	return *newPhase(domain.PhaseUrbanismAudit, t0, end, urbanismAuditMonths, true), end
}

// forwardPhase starts at start and lasts s.months. A disabled phase emits
// nothing and completes instantly at start.
func forwardPhase(id domain.PhaseID, s phaseSetting, start time.Time, milestone bool) (*domain.Phase, time.Time) {
	if !s.enabled {
		return nil, start
	}
	end := calendar.AddMonths(start, s.months)
	return newPhase(id, start, end, s.months, milestone), end
}
