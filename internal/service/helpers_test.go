package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/solplan/internal/db"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/repository"
	"github.com/alexanderramin/solplan/internal/testutil"
)

var fixedNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.Name)
	}
	return out
}

func newSiteService(database *sql.DB, uow db.UnitOfWork, observers ...UseCaseObserver) *siteService {
	svc := NewSiteService(
		repository.NewSQLiteProjectRepo(database),
		repository.NewSQLitePhaseRepo(database),
		uow,
		observers...,
	).(*siteService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func setupSites(t *testing.T, observers ...UseCaseObserver) (*siteService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newSiteService(database, testutil.NewTestUoW(database), observers...), database
}

func referenceConfig() domain.ProjectConfig {
	return domain.ProjectConfig{
		SignatureDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		CapacityKWc:   500,
		Technology:    domain.TechNewRoof,
		Model:         domain.ModelDirectEPC,
		Connection:    domain.ConnectionGridInjection,
	}
}

func phaseIDs(phases []domain.Phase) []domain.PhaseID {
	ids := make([]domain.PhaseID, 0, len(phases))
	for _, p := range phases {
		ids = append(ids, p.ID)
	}
	return ids
}
