package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/solplan/internal/db"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/repository"
	"github.com/alexanderramin/solplan/internal/scheduler"
	"github.com/google/uuid"
)

type siteService struct {
	projects repository.ProjectRepo
	phases   repository.PhaseRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewSiteService(
	projects repository.ProjectRepo,
	phases repository.PhaseRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) SiteService {
	return &siteService{
		projects: projects,
		phases:   phases,
		uow:      uow,
		observer: fanOut(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *siteService) Plan(ctx context.Context, cfg domain.ProjectConfig) (scheduler.Schedule, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return scheduler.Schedule{}, err
	}
	return scheduler.Compute(cfg, scheduler.WithToday(s.now()))
}

func (s *siteService) Create(ctx context.Context, p *domain.Project) (err error) {
	fields := map[string]any{"name": p.Name}
	done := s.observe(ctx, "create-site", fields)
	defer func() { done(err) }()

	if err = s.prepare(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = p.UpdatedAt
	fields["name"] = p.Name
	fields["site_id"] = p.ID
	fields["phase_count"] = len(p.Phases)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, p); err != nil {
			return err
		}
		return repository.NewSQLitePhaseRepo(tx).ReplaceForProject(ctx, p.ID, p.Phases)
	})
}

func (s *siteService) Update(ctx context.Context, p *domain.Project) (err error) {
	done := s.observe(ctx, "update-site", map[string]any{"site_id": p.ID})
	defer func() { done(err) }()

	if err = s.prepare(p); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Update(ctx, p); err != nil {
			return err
		}
		return repository.NewSQLitePhaseRepo(tx).ReplaceForProject(ctx, p.ID, p.Phases)
	})
}

// prepare normalises the name, recomputes phases from scratch and stamps
// UpdatedAt. The stored configuration is the defaulted one.
func (s *siteService) prepare(p *domain.Project) error {
	p.Name = strings.ToUpper(strings.TrimSpace(p.Name))
	if p.Name == "" {
		return ErrNameRequired
	}
	cfg, err := p.Config.Normalize()
	if err != nil {
		return err
	}

	now := s.now()
	sched, err := scheduler.Compute(cfg, scheduler.WithToday(now))
	if err != nil {
		return fmt.Errorf("computing phases for %s: %w", p.Name, err)
	}
	p.Config = sched.Config
	p.Phases = sched.Phases
	p.UpdatedAt = now.Truncate(time.Second)
	return nil
}

func (s *siteService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Phases, err = s.phases.ListByProject(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *siteService) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Phases, err = s.phases.ListByProject(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (s *siteService) Delete(ctx context.Context, id string, confirmed bool) (err error) {
	done := s.observe(ctx, "delete-site", map[string]any{"site_id": id})
	defer func() { done(err) }()

	if !confirmed {
		return fmt.Errorf("deleting site %s: %w", id, ErrConfirmationRequired)
	}
	return s.projects.Delete(ctx, id)
}

func (s *siteService) observe(ctx context.Context, name string, fields map[string]any) func(error) {
	return observeUseCase(ctx, s.observer, name, fields)
}
