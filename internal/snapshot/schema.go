// Package snapshot stores the project list as a single versioned JSON
// payload.
package snapshot

// StorageKey tags a payload written by this version of the format.
const StorageKey = "solplan_projects_v2"

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05Z07:00"
)

// Envelope is the top-level JSON structure of a snapshot.
type Envelope struct {
	Key      string          `json:"key"`
	Projects []ProjectRecord `json:"projects"`
}

// ProjectRecord is one persisted site.
type ProjectRecord struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Config    ConfigRecord  `json:"config"`
	Phases    []PhaseRecord `json:"phases"`
	CreatedAt string        `json:"created_at,omitempty"`
	UpdatedAt string        `json:"updated_at,omitempty"`
}

// ConfigRecord mirrors domain.ProjectConfig with string enums and dates.
type ConfigRecord struct {
	SignatureDate string                    `json:"signature_date"`
	CapacityKWc   float64                   `json:"capacity_kwc"`
	Technology    string                    `json:"technology"`
	Model         string                    `json:"model"`
	Connection    string                    `json:"connection"`
	Subcontracted bool                      `json:"subcontracted"`
	Overrides     map[string]OverrideRecord `json:"overrides,omitempty"`
}

// OverrideRecord is a per-phase override.
type OverrideRecord struct {
	Enabled        *bool    `json:"enabled,omitempty"`
	ManualDuration *float64 `json:"manual_duration,omitempty"`
}

// PhaseRecord is one computed phase.
type PhaseRecord struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	DurationMonths float64 `json:"duration_months"`
	Color          string  `json:"color"`
	Milestone      bool    `json:"milestone"`
}
