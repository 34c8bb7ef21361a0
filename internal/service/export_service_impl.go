package service

import (
	"context"
	"io"

	"github.com/alexanderramin/solplan/internal/export"
	"github.com/alexanderramin/solplan/internal/snapshot"
)

type exportService struct {
	sites SiteService
}

func NewExportService(sites SiteService) ExportService {
	return &exportService{sites: sites}
}

func (s *exportService) WriteCSV(ctx context.Context, w io.Writer) error {
	projects, err := s.sites.List(ctx)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, projects)
}

func (s *exportService) WriteXLSX(ctx context.Context, w io.Writer) error {
	projects, err := s.sites.List(ctx)
	if err != nil {
		return err
	}
	return export.WriteXLSX(w, projects)
}

func (s *exportService) WriteSnapshot(ctx context.Context, w io.Writer) error {
	projects, err := s.sites.List(ctx)
	if err != nil {
		return err
	}
	return snapshot.Encode(w, snapshot.FromProjects(projects))
}
