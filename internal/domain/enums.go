package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTechnology    = errors.New("invalid technology type")
	ErrInvalidBusinessModel = errors.New("invalid business model")
	ErrInvalidConnection    = errors.New("invalid connection type")
	ErrUnknownPhase         = errors.New("unknown phase")
)

type TechnologyType string

const (
	TechNewRoof    TechnologyType = "new-roof"
	TechRenovation TechnologyType = "renovation"
	TechCanopy     TechnologyType = "canopy"
	TechGround     TechnologyType = "ground-mounted"
)

// TechnologyTypes lists the accepted technology types in display order.
var TechnologyTypes = []TechnologyType{TechNewRoof, TechRenovation, TechCanopy, TechGround}

type BusinessModel string

const (
	ModelDirectEPC     BusinessModel = "direct-epc"
	ModelThirdPartyEPC BusinessModel = "third-party-epc"
)

var BusinessModels = []BusinessModel{ModelDirectEPC, ModelThirdPartyEPC}

type ConnectionType string

const (
	ConnectionGridInjection   ConnectionType = "grid-injection"
	ConnectionSelfConsumption ConnectionType = "self-consumption"
)

var ConnectionTypes = []ConnectionType{ConnectionGridInjection, ConnectionSelfConsumption}

type PhaseID string

const (
	PhaseNegotiation    PhaseID = "negotiation"
	PhaseUrbanism       PhaseID = "urbanism"
	PhaseUrbanismAudit  PhaseID = "urbanism-audit"
	PhaseTender         PhaseID = "tender"
	PhaseLease          PhaseID = "lease"
	PhaseGridConnection PhaseID = "grid-connection"
	PhaseConstruction   PhaseID = "construction"
	PhaseOperation      PhaseID = "operation"
)

// OverridablePhases is the set of phase ids accepted as override keys, in
// computation order. The urbanism verification record is not overridable.
var OverridablePhases = []PhaseID{
	PhaseNegotiation,
	PhaseUrbanism,
	PhaseTender,
	PhaseLease,
	PhaseGridConnection,
	PhaseConstruction,
	PhaseOperation,
}

// FormPhases are the phases offered in the advanced section of the site form.
var FormPhases = []PhaseID{
	PhaseUrbanism,
	PhaseTender,
	PhaseLease,
	PhaseGridConnection,
	PhaseConstruction,
}

func ParseTechnologyType(s string) (TechnologyType, error) {
	for _, t := range TechnologyTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTechnology, s)
}

func ParseBusinessModel(s string) (BusinessModel, error) {
	for _, m := range BusinessModels {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBusinessModel, s)
}

func ParseConnectionType(s string) (ConnectionType, error) {
	for _, c := range ConnectionTypes {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidConnection, s)
}

// ParsePhaseID accepts only overridable phase ids.
func ParsePhaseID(s string) (PhaseID, error) {
	for _, id := range OverridablePhases {
		if strings.EqualFold(s, string(id)) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}

// ParseRecordedPhaseID accepts every id a schedule can emit, including the
// urbanism verification record.
func ParseRecordedPhaseID(s string) (PhaseID, error) {
	for id := range PhaseTable {
		if strings.EqualFold(s, string(id)) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}
