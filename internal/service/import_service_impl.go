package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/solplan/internal/db"
	"github.com/alexanderramin/solplan/internal/repository"
	"github.com/alexanderramin/solplan/internal/snapshot"
)

type importService struct {
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewImportService builds an ImportService. logger receives a warning when
// a payload is discarded; it may be nil.
func NewImportService(uow db.UnitOfWork, logger *slog.Logger, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		logger:   logger,
		observer: fanOut(observers),
	}
}

func (s *importService) ImportSnapshot(ctx context.Context, r io.Reader) (result *ImportResult, err error) {
	fields := map[string]any{}
	done := observeUseCase(ctx, s.observer, "import-snapshot", fields)
	defer func() { done(err) }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	env := snapshot.Decode(data, s.logger)
	projects, err := snapshot.ToProjects(&env)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	for _, p := range projects {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
	}

	result = &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)

		for _, p := range projects {
			_, getErr := txProjects.GetByID(ctx, p.ID)
			switch {
			case getErr == nil:
				if err := txProjects.Update(ctx, p); err != nil {
					return err
				}
				result.Updated++
			case errors.Is(getErr, repository.ErrProjectNotFound):
				if err := txProjects.Create(ctx, p); err != nil {
					return err
				}
				result.Created++
			default:
				return getErr
			}
			if err := txPhases.ReplaceForProject(ctx, p.ID, p.Phases); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["created"] = result.Created
	fields["updated"] = result.Updated
	return result, nil
}
