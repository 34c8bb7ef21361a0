package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/solplan/internal/domain"
)

// ErrProjectNotFound is returned when no project matches the lookup.
var ErrProjectNotFound = errors.New("project not found")

// ProjectRepo persists a project's identity and configuration, including
// its phase overrides. Phases are stored through PhaseRepo.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// PhaseRepo stores the computed phase list of each project.
type PhaseRepo interface {
	// ReplaceForProject discards the stored phases and writes phases in order.
	ReplaceForProject(ctx context.Context, projectID string, phases []domain.Phase) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error)
}
