package domain

// PhaseInfo holds the static display attributes of a phase.
type PhaseInfo struct {
	Name           string
	Color          string
	MilestoneLabel string
}

// PhaseTable is read-only after package initialization.
var PhaseTable = map[PhaseID]PhaseInfo{
	PhaseNegotiation:    {Name: "Negotiation", Color: "#f59e0b", MilestoneLabel: "LOI"},
	PhaseUrbanism:       {Name: "Urbanism", Color: "#d1dce5", MilestoneLabel: "APPROVAL"},
	PhaseUrbanismAudit:  {Name: "Urbanism Verification", Color: "#94a3b8", MilestoneLabel: "OK"},
	PhaseTender:         {Name: "Grid Tender", Color: "#e11d48", MilestoneLabel: "AWARD"},
	PhaseLease:          {Name: "Lease Management", Color: "#8b5cf6", MilestoneLabel: "LEASE"},
	PhaseGridConnection: {Name: "Grid Connection", Color: "#608ba1"},
	PhaseConstruction:   {Name: "Construction", Color: "#328e77", MilestoneLabel: "COMPLETION"},
	PhaseOperation:      {Name: "Commercial Operation", Color: "#0a4a69", MilestoneLabel: "COD"},
}

// LegendOrder is the order phases appear in timeline legends.
var LegendOrder = []PhaseID{
	PhaseNegotiation,
	PhaseUrbanism,
	PhaseTender,
	PhaseLease,
	PhaseGridConnection,
	PhaseConstruction,
	PhaseOperation,
}

// PhaseName returns the display name of id, or id itself when unknown.
func PhaseName(id PhaseID) string {
	if info, ok := PhaseTable[id]; ok {
		return info.Name
	}
	return string(id)
}

// PhaseColor returns the display color of id.
func PhaseColor(id PhaseID) string {
	return PhaseTable[id].Color
}

// MilestoneLabel returns the marker label drawn at the end of a milestone phase.
func MilestoneLabel(id PhaseID) string {
	return PhaseTable[id].MilestoneLabel
}
