package cli

import (
	"testing"

	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseOverrideFlag_Set(t *testing.T) {
	tests := []struct {
		input   string
		id      domain.PhaseID
		enabled *bool
		months  *float64
		reset   bool
	}{
		{"tender=off", domain.PhaseTender, domain.BoolPtr(false), nil, false},
		{"LEASE=On", domain.PhaseLease, domain.BoolPtr(true), nil, false},
		{"construction=6.5", domain.PhaseConstruction, nil, domain.Float64Ptr(6.5), false},
		{" urbanism = default ", domain.PhaseUrbanism, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var f phaseOverrideFlag
			require.NoError(t, f.Set(tt.input))
			require.Len(t, f.settings, 1)
			s := f.settings[0]
			assert.Equal(t, tt.id, s.id)
			assert.Equal(t, tt.enabled, s.enabled)
			assert.Equal(t, tt.months, s.months)
			assert.Equal(t, tt.reset, s.reset)
		})
	}
}

func TestPhaseOverrideFlag_Rejects(t *testing.T) {
	for _, input := range []string{
		"tender",
		"urbanism-audit=off",
		"permits=on",
		"tender=maybe",
		"tender=0",
		"tender=-1",
		"tender=nan",
		"tender=NaN",
		"tender=inf",
		"tender=-Inf",
		"construction=infinity",
	} {
		t.Run(input, func(t *testing.T) {
			var f phaseOverrideFlag
			assert.Error(t, f.Set(input))
			assert.Empty(t, f.settings)
		})
	}
}

func TestPhaseOverrideFlag_ApplyMerges(t *testing.T) {
	var f phaseOverrideFlag
	require.NoError(t, f.Set("tender=off"))
	require.NoError(t, f.Set("construction=8"))
	require.NoError(t, f.Set("lease=default"))
	require.NoError(t, f.Set("tender=3"))

	overrides := map[domain.PhaseID]domain.PhaseOverride{
		domain.PhaseConstruction: {Enabled: domain.BoolPtr(true)},
		domain.PhaseLease:        {Enabled: domain.BoolPtr(true)},
	}
	f.applyTo(overrides)

	assert.Equal(t, domain.PhaseOverride{Enabled: domain.BoolPtr(false), ManualDuration: domain.Float64Ptr(3)}, overrides[domain.PhaseTender])
	assert.Equal(t, domain.PhaseOverride{Enabled: domain.BoolPtr(true), ManualDuration: domain.Float64Ptr(8)}, overrides[domain.PhaseConstruction])
	assert.NotContains(t, overrides, domain.PhaseLease)
	assert.Equal(t, "tender=off,construction=8,lease=default,tender=3", f.String())
}
