package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	assert.NoError(t, validatePositiveNumber("12.5"))
	assert.Error(t, validatePositiveNumber("0"))
	assert.Error(t, validatePositiveNumber("abc"))
	assert.Error(t, validatePositiveNumber("NaN"))
	assert.Error(t, validatePositiveNumber("inf"))
	assert.Error(t, validateOptionalPositiveNumber("+Inf"))
	assert.NoError(t, validateOptionalPositiveNumber(""))
	assert.Error(t, validateOptionalPositiveNumber("-3"))
	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("2025-01-15"))
	assert.Error(t, validateOptionalDate("15/01/2025"))
	assert.Error(t, validateRequired("Site name")("   "))
	assert.NoError(t, validateRequired("Site name")("A"))
}

func TestSiteFormValues_PrefillAndApply(t *testing.T) {
	p := &domain.Project{
		Name: "ROOF NORTH",
		Config: domain.ProjectConfig{
			SignatureDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			CapacityKWc:   800,
			Technology:    domain.TechCanopy,
			Model:         domain.ModelThirdPartyEPC,
			Connection:    domain.ConnectionSelfConsumption,
			Subcontracted: true,
			Overrides: map[domain.PhaseID]domain.PhaseOverride{
				domain.PhaseTender:       {Enabled: domain.BoolPtr(false)},
				domain.PhaseConstruction: {ManualDuration: domain.Float64Ptr(7)},
				domain.PhaseNegotiation:  {ManualDuration: domain.Float64Ptr(2)},
			},
		},
	}

	v := newSiteFormValues(p, 500)
	assert.Equal(t, "800", v.capacity)
	assert.Equal(t, "2025-01-15", v.signature)
	assert.Equal(t, phaseOff, *v.phaseState[domain.PhaseTender])
	assert.Equal(t, "7", *v.phaseMonths[domain.PhaseConstruction])
	assert.Equal(t, phaseDefault, *v.phaseState[domain.PhaseLease])
	assert.NotNil(t, v.form("Edit site"))

	*v.phaseState[domain.PhaseTender] = phaseDefault
	*v.phaseState[domain.PhaseLease] = phaseOn
	*v.phaseMonths[domain.PhaseUrbanism] = "5"

	got := &domain.Project{Config: p.Config.WithDefaults(time.Time{})}
	require.NoError(t, v.apply(got))

	assert.Equal(t, "ROOF NORTH", got.Name)
	assert.Equal(t, 800.0, got.Config.CapacityKWc)
	assert.Equal(t, domain.TechCanopy, got.Config.Technology)
	assert.True(t, got.Config.Subcontracted)
	assert.NotContains(t, got.Config.Overrides, domain.PhaseTender)
	assert.Equal(t, domain.BoolPtr(true), got.Config.Overrides[domain.PhaseLease].Enabled)
	assert.Equal(t, domain.Float64Ptr(5), got.Config.Overrides[domain.PhaseUrbanism].ManualDuration)
	assert.Equal(t, domain.Float64Ptr(7), got.Config.Overrides[domain.PhaseConstruction].ManualDuration)
	assert.Equal(t, domain.Float64Ptr(2), got.Config.Overrides[domain.PhaseNegotiation].ManualDuration,
		"phases outside the form keep their overrides")
}

func TestSiteFormValues_NewSiteDefaults(t *testing.T) {
	v := newSiteFormValues(&domain.Project{}, 250)
	assert.Equal(t, "250", v.capacity)
	assert.Empty(t, v.signature)
	assert.Equal(t, domain.TechNewRoof, v.technology)
	assert.Equal(t, domain.ModelDirectEPC, v.model)
	assert.Equal(t, domain.ConnectionGridInjection, v.connection)

	p := &domain.Project{}
	require.NoError(t, v.apply(p))
	assert.True(t, p.Config.SignatureDate.IsZero(), "blank signature defers to today")
	assert.Empty(t, p.Config.Overrides)
}

func TestSiteFormValues_ApplyRejectsBadCapacity(t *testing.T) {
	for _, capacity := range []string{"lots", "nan", "Inf"} {
		v := newSiteFormValues(&domain.Project{}, 500)
		v.capacity = capacity
		assert.Error(t, v.apply(&domain.Project{}), capacity)
	}
}

func TestSiteFormValues_ApplyRejectsNonFiniteDuration(t *testing.T) {
	v := newSiteFormValues(&domain.Project{}, 500)
	*v.phaseMonths[domain.PhaseTender] = "nan"

	p := &domain.Project{}
	err := v.apply(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration")
	assert.NotContains(t, p.Config.Overrides, domain.PhaseTender)
}
