package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/service"
	"github.com/alexanderramin/solplan/internal/testutil"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteAdd_FromFlags(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "site", "add",
		"--name", " roof north ",
		"--capacity", "1200",
		"--signature", "2025-01-15",
		"--technology", "canopy",
		"--model", "third-party-epc",
		"--phase", "tender=off",
		"--phase", "construction=8",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Created site ROOF NORTH")
	assert.Contains(t, out, "Commercial operation:")

	sites, err := app.Sites.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 1)

	p := sites[0]
	assert.Equal(t, "ROOF NORTH", p.Name)
	assert.Equal(t, 1200.0, p.Config.CapacityKWc)
	assert.Equal(t, domain.TechCanopy, p.Config.Technology)
	assert.Equal(t, domain.ModelThirdPartyEPC, p.Config.Model)
	assert.Equal(t, testutil.ReferenceSignature, p.Config.SignatureDate)

	_, hasTender := p.Phase(domain.PhaseTender)
	assert.False(t, hasTender)
	_, hasLease := p.Phase(domain.PhaseLease)
	assert.True(t, hasLease, "third-party EPC enables lease management")
	cons, ok := p.Phase(domain.PhaseConstruction)
	require.True(t, ok)
	assert.Greater(t, cons.DurationMonths, 0.0)
}

func TestSiteAdd_UsesConfiguredDefaultCapacity(t *testing.T) {
	app := testApp(t)
	app.Config.DefaultCapacity = 250

	_, err := executeCmd(t, app, "site", "add", "--name", "Canopy", "--signature", "2025-03-01")
	require.NoError(t, err)

	sites, err := app.Sites.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, 250.0, sites[0].Config.CapacityKWc)
}

func TestSiteAdd_RequiresNameWithoutTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "site", "add", "--capacity", "100")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNameRequired)
}

func TestSiteAdd_RejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown phase", []string{"--phase", "permits=off"}, "unknown phase"},
		{"malformed phase", []string{"--phase", "tender"}, "expected id="},
		{"negative duration", []string{"--phase", "tender=-2"}, "positive number"},
		{"bad technology", []string{"--technology", "floating"}, "invalid technology"},
		{"bad date", []string{"--signature", "15/01/2025"}, "invalid signature date"},
		{"zero capacity", []string{"--capacity", "0"}, "invalid capacity"},
		{"nan capacity", []string{"--capacity", "nan"}, "invalid capacity"},
		{"infinite capacity", []string{"--capacity", "inf"}, "invalid capacity"},
		{"nan duration", []string{"--phase", "tender=nan"}, "positive number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			args := append([]string{"site", "add", "--name", "X"}, tt.args...)
			_, err := executeCmd(t, app, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSiteAdd_FormAbortedIsQuiet(t *testing.T) {
	app := testApp(t)
	stubForms(t, app, func(*huh.Form) error { return huh.ErrUserAborted })

	out, err := executeCmd(t, app, "site", "add")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	sites, err := app.Sites.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestSiteAdd_FormPrefilledFromFlags(t *testing.T) {
	app := testApp(t)
	forms := 0
	stubForms(t, app, func(*huh.Form) error {
		forms++
		return nil
	})

	_, err := executeCmd(t, app, "site", "add", "--form", "--name", "Ground", "--capacity", "4000", "--technology", "ground-mounted")
	require.NoError(t, err)
	assert.Equal(t, 1, forms)

	sites, err := app.Sites.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "GROUND", sites[0].Name)
	assert.Equal(t, 4000.0, sites[0].Config.CapacityKWc)
	assert.Equal(t, domain.TechGround, sites[0].Config.Technology)
}

func TestSiteList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "site", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sites found.")

	seedSite(t, app, "ROOF NORTH")
	seedSite(t, app, "CANOPY EAST", testutil.WithCapacity(300))

	out, err = executeCmd(t, app, "site", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ROOF NORTH")
	assert.Contains(t, out, "CANOPY EAST")
	assert.Contains(t, out, "800 kWc")
	assert.Contains(t, out, "across 2 site(s)")
}

func TestSiteInspect_ResolvesNameAndPrefix(t *testing.T) {
	app := testApp(t)
	p := seedSite(t, app, "ROOF NORTH")

	for _, ref := range []string{p.ID, p.ID[:8], "roof north"} {
		out, err := executeCmd(t, app, "site", "inspect", ref)
		require.NoError(t, err, ref)
		assert.Contains(t, out, "ROOF NORTH")
		assert.Contains(t, out, "Construction")
	}

	_, err := executeCmd(t, app, "site", "inspect", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site not found")
}

func TestSiteUpdate_RecomputesPhases(t *testing.T) {
	app := testApp(t)
	p := seedSite(t, app, "ROOF NORTH")
	before, ok := p.CommercialOperationDate()
	require.True(t, ok)

	out, err := executeCmd(t, app, "site", "update", p.ID[:8], "--phase", "grid-connection=24")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated site ROOF NORTH")

	got, err := app.Sites.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	after, ok := got.CommercialOperationDate()
	require.True(t, ok)
	assert.True(t, after.After(before), "longer connection delays commercial operation")
	assert.Equal(t, 24.0, *got.Config.Overrides[domain.PhaseGridConnection].ManualDuration)
}

func TestSiteUpdate_ResetOverride(t *testing.T) {
	app := testApp(t)
	p := seedSite(t, app, "ROOF NORTH",
		testutil.WithOverride(domain.PhaseTender, domain.PhaseOverride{Enabled: domain.BoolPtr(false)}))

	_, err := executeCmd(t, app, "site", "update", p.ID, "--phase", "tender=default")
	require.NoError(t, err)

	got, err := app.Sites.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.Config.Overrides, domain.PhaseTender)
	_, hasTender := got.Phase(domain.PhaseTender)
	assert.True(t, hasTender)
}

func TestSiteRemove_RequiresConfirmation(t *testing.T) {
	app := testApp(t)
	p := seedSite(t, app, "ROOF NORTH")

	_, err := executeCmd(t, app, "site", "remove", p.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrConfirmationRequired)

	out, err := executeCmd(t, app, "site", "remove", p.ID, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed site ROOF NORTH")

	sites, err := app.Sites.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestSiteRemove_DeclinedPromptKeepsSite(t *testing.T) {
	app := testApp(t)
	p := seedSite(t, app, "ROOF NORTH")
	stubForms(t, app, func(*huh.Form) error { return nil })

	out, err := executeCmd(t, app, "site", "remove", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	_, err = app.Sites.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
}

func TestResolveSiteID_AmbiguousPrefix(t *testing.T) {
	app := testApp(t)
	for _, id := range []string{"abc-1", "abc-2"} {
		p := testutil.NewTestProject("SITE " + id)
		p.ID = id
		require.NoError(t, app.Sites.Create(context.Background(), p))
	}

	_, err := resolveSiteID(context.Background(), app, "")
	require.Error(t, err)

	_, err = resolveSiteID(context.Background(), app, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	id, err := resolveSiteID(context.Background(), app, "abc-2")
	require.NoError(t, err)
	assert.Equal(t, "abc-2", id)
}

func TestResolveSiteID_DuplicateNames(t *testing.T) {
	app := testApp(t)
	seedSite(t, app, "TWIN")
	seedSite(t, app, "TWIN")

	_, err := resolveSiteID(context.Background(), app, "twin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}
