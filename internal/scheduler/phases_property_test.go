package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/solplan/internal/calendar"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var computationOrder = map[domain.PhaseID]int{
	domain.PhaseNegotiation:    0,
	domain.PhaseUrbanism:       1,
	domain.PhaseUrbanismAudit:  1,
	domain.PhaseTender:         2,
	domain.PhaseLease:          3,
	domain.PhaseGridConnection: 4,
	domain.PhaseConstruction:   5,
	domain.PhaseOperation:      6,
}

func randomConfig(rng *rand.Rand) domain.ProjectConfig {
	cfg := domain.ProjectConfig{
		SignatureDate: time.Date(2024+rng.Intn(4), time.Month(rng.Intn(12)+1), rng.Intn(28)+1, 0, 0, 0, 0, time.UTC),
		CapacityKWc:   float64(rng.Intn(5000) + 1),
		Technology:    domain.TechnologyTypes[rng.Intn(len(domain.TechnologyTypes))],
		Model:         domain.BusinessModels[rng.Intn(len(domain.BusinessModels))],
		Connection:    domain.ConnectionTypes[rng.Intn(len(domain.ConnectionTypes))],
		Subcontracted: rng.Intn(2) == 1,
		Overrides:     map[domain.PhaseID]domain.PhaseOverride{},
	}
	for _, id := range domain.OverridablePhases {
		if rng.Intn(3) != 0 {
			continue
		}
		var ov domain.PhaseOverride
		if rng.Intn(2) == 1 {
			ov.Enabled = domain.BoolPtr(rng.Intn(2) == 1)
		}
		if rng.Intn(2) == 1 {
			ov.ManualDuration = domain.Float64Ptr(float64(rng.Intn(40)-5) / 2)
		}
		cfg.Overrides[id] = ov
	}
	return cfg
}

// TestCompute_Invariants property-tests ordering, forward date arithmetic,
// the negotiation anchor and the construction security lock.
func TestCompute_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 300; trial++ {
		cfg := randomConfig(rng)
		s, err := Compute(cfg)
		require.NoError(t, err, "trial %d", trial)

		prev := -1
		for _, p := range s.Phases {
			rank := computationOrder[p.ID]
			assert.Greater(t, rank, prev, "trial %d: %s out of order", trial, p.ID)
			prev = rank

			switch p.ID {
			case domain.PhaseNegotiation:
				assert.Equal(t, cfg.SignatureDate, p.EndDate, "trial %d", trial)
			case domain.PhaseConstruction:
				assert.False(t, p.StartDate.Before(s.Milestones.SecurityLock),
					"trial %d: construction starts before security lock", trial)
				assert.Equal(t, calendar.AddMonths(s.Milestones.ConnectionEnd, -0.5), p.EndDate, "trial %d", trial)
				assert.InDelta(t, calendar.ElapsedMonths(p.StartDate, p.EndDate), p.DurationMonths, 1e-9)
			default:
				assert.Equal(t, calendar.AddMonths(p.StartDate, p.DurationMonths), p.EndDate,
					"trial %d: %s end must equal start + duration", trial, p.ID)
				assert.Greater(t, p.DurationMonths, 0.0)
			}
		}

		hasUrbanism := false
		for _, p := range s.Phases {
			if p.ID == domain.PhaseUrbanism || p.ID == domain.PhaseUrbanismAudit {
				hasUrbanism = true
			}
		}
		assert.True(t, hasUrbanism, "trial %d: urbanism or its verification is always emitted", trial)
		assert.Equal(t, calendar.MaxTime(s.Milestones.TenderEnd, s.Milestones.LeaseEnd), s.Milestones.SecurityLock)
	}
}

// TestCompute_SubcontractedWalksExactWholeMonths checks that without
// restrictions the backward walk takes ceil(duration) calendar steps.
func TestCompute_SubcontractedWalksExactWholeMonths(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		months := rng.Intn(18) + 1
		cfg := domain.ProjectConfig{
			SignatureDate: time.Date(2025, time.Month(rng.Intn(12)+1), 10, 0, 0, 0, 0, time.UTC),
			CapacityKWc:   float64(rng.Intn(900) + 1),
			Subcontracted: true,
			Overrides: map[domain.PhaseID]domain.PhaseOverride{
				domain.PhaseConstruction:   {ManualDuration: domain.Float64Ptr(float64(months))},
				domain.PhaseGridConnection: {ManualDuration: domain.Float64Ptr(36)},
			},
		}
		s, err := Compute(cfg)
		require.NoError(t, err)

		var cons domain.Phase
		for _, p := range s.Phases {
			if p.ID == domain.PhaseConstruction {
				cons = p
			}
		}
		want := cons.EndDate
		for i := 0; i < months; i++ {
			want = calendar.AddMonths(want, -1)
		}
		if want.Before(s.Milestones.SecurityLock) {
			want = s.Milestones.SecurityLock
		}
		assert.Equal(t, want, cons.StartDate, "trial %d", trial)
	}
}
