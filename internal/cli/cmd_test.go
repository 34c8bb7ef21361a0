package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/solplan/internal/config"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/repository"
	"github.com/alexanderramin/solplan/internal/service"
	"github.com/alexanderramin/solplan/internal/testutil"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	sites := service.NewSiteService(
		repository.NewSQLiteProjectRepo(database),
		repository.NewSQLitePhaseRepo(database),
		uow,
	)

	return &App{
		Sites:   sites,
		Exports: service.NewExportService(sites),
		Import:  service.NewImportService(uow, slog.New(slog.NewTextHandler(io.Discard, nil))),
		Config:  config.DefaultConfig(t.TempDir()),
		Now:     func() time.Time { return testNow },
	}
}

// seedSite stores a site built from the reference fixture configuration.
func seedSite(t *testing.T, app *App, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, opts...)
	p.ID = ""
	require.NoError(t, app.Sites.Create(context.Background(), p))
	return p
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// stubForms makes the App interactive and answers every form with answer.
func stubForms(t *testing.T, app *App, answer func(*huh.Form) error) {
	t.Helper()
	app.IsInteractive = func() bool { return true }
	prev := runForm
	runForm = answer
	t.Cleanup(func() { runForm = prev })
}
