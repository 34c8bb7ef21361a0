package service

import (
	"context"
	"errors"
	"io"

	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/scheduler"
)

var (
	// ErrConfirmationRequired guards destructive operations.
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrNameRequired is returned when a site is saved without a name.
	ErrNameRequired = errors.New("site name is required")
)

// SiteService manages persisted sites and keeps their phase lists in step
// with their configuration.
type SiteService interface {
	// Plan computes a schedule without persisting anything.
	Plan(ctx context.Context, cfg domain.ProjectConfig) (scheduler.Schedule, error)
	// Create assigns a fresh id, computes phases and stores the site.
	Create(ctx context.Context, p *domain.Project) error
	// Update recomputes phases from p.Config and replaces the stored ones.
	Update(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string, confirmed bool) error
}

// ExportService renders the stored portfolio into files.
type ExportService interface {
	WriteCSV(ctx context.Context, w io.Writer) error
	WriteXLSX(ctx context.Context, w io.Writer) error
	WriteSnapshot(ctx context.Context, w io.Writer) error
}

// ImportService loads a snapshot into the store.
type ImportService interface {
	// ImportSnapshot upserts every site of the payload, keeping its stored
	// phases, and returns how many were written. An unreadable payload
	// imports nothing.
	ImportSnapshot(ctx context.Context, r io.Reader) (*ImportResult, error)
}

// ImportResult summarises an import.
type ImportResult struct {
	Created int
	Updated int
}
