package scheduler

import "github.com/alexanderramin/solplan/internal/domain"

const (
	negotiationMonths      = 0.5
	urbanismAuditMonths    = 0.66
	tenderMonths           = 4
	leaseMonths            = 4
	selfConsumptionMonths  = 5
	operationMonths        = 12
	constructionTestMonths = 0.5
	codBufferMonths        = 1
)

// tenderThresholdKWc is the capacity above which grid-injection projects
// go through a tariff tender by default.
const tenderThresholdKWc = 100

func defaultUrbanismMonths(cfg domain.ProjectConfig) float64 {
	if cfg.Technology == domain.TechNewRoof || cfg.CapacityKWc > 3000 {
		return 6
	}
	return 4
}

func tenderEnabledByDefault(cfg domain.ProjectConfig) bool {
	return cfg.CapacityKWc > tenderThresholdKWc && cfg.Connection == domain.ConnectionGridInjection
}

func leaseEnabledByDefault(cfg domain.ProjectConfig) bool {
	return cfg.Model == domain.ModelThirdPartyEPC
}

// defaultConnectionMonths is a step function of capacity for grid
// injection and flat for self-consumption.
func defaultConnectionMonths(cfg domain.ProjectConfig) float64 {
	if cfg.Connection != domain.ConnectionGridInjection {
		return selfConsumptionMonths
	}
	switch {
	case cfg.CapacityKWc <= 36:
		return 6
	case cfg.CapacityKWc <= 250:
		return 9
	case cfg.CapacityKWc <= 1000:
		return 12
	default:
		return 18
	}
}

func defaultConstructionMonths(cfg domain.ProjectConfig) float64 {
	switch {
	case cfg.CapacityKWc > 1000:
		return 12
	case cfg.CapacityKWc >= 600:
		return 6
	default:
		return 4
	}
}

// phaseSetting is the effective enablement and duration of one phase.
type phaseSetting struct {
	enabled bool
	months  float64
}

func resolve(cfg domain.ProjectConfig, id domain.PhaseID, defaultEnabled bool, defaultMonths float64) phaseSetting {
	ov := cfg.Overrides[id]
	return phaseSetting{
		enabled: domain.OrDefault(ov.Enabled, defaultEnabled),
		months:  domain.PositiveOrDefault(ov.ManualDuration, defaultMonths),
	}
}
