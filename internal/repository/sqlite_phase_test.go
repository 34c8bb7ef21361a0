package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/solplan/internal/db"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseRepo_ReplaceAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("SITE", testutil.WithModel(domain.ModelThirdPartyEPC))
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, proj))

	repo := NewSQLitePhaseRepo(database)
	require.NoError(t, repo.ReplaceForProject(ctx, proj.ID, proj.Phases))

	got, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.Phases, got)
}

func TestPhaseRepo_ReplaceDropsPreviousPhases(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("SITE")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, proj))
	repo := NewSQLitePhaseRepo(database)
	require.NoError(t, repo.ReplaceForProject(ctx, proj.ID, proj.Phases))

	shorter := proj.Phases[:2]
	require.NoError(t, repo.ReplaceForProject(ctx, proj.ID, shorter))

	got, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, shorter, got)
}

func TestPhaseRepo_ReplaceRollsBackAsAUnit(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("SITE")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, proj))
	require.NoError(t, NewSQLitePhaseRepo(database).ReplaceForProject(ctx, proj.ID, proj.Phases))

	boom := errors.New("disk full")
	uow := testutil.NewFailingWriteUoW(database, 3, boom)
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLitePhaseRepo(tx).ReplaceForProject(ctx, proj.ID, proj.Phases[1:])
	})
	require.ErrorIs(t, err, boom)

	got, err := NewSQLitePhaseRepo(database).ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.Phases, got, "a failed replacement must leave the stored list untouched")
}

func TestPhaseRepo_UnknownProjectRejected(t *testing.T) {
	repo := NewSQLitePhaseRepo(testutil.NewTestDB(t))
	proj := testutil.NewTestProject("ORPHAN")

	err := repo.ReplaceForProject(context.Background(), proj.ID, proj.Phases)
	assert.Error(t, err, "foreign key must reject phases without a project")
}
