package snapshot

import (
	"fmt"
	"time"

	"github.com/alexanderramin/solplan/internal/domain"
)

// ValidateEnvelope checks a decoded envelope before conversion.
// Returns a slice of all validation errors found.
func ValidateEnvelope(env *Envelope) []error {
	var errs []error

	if env.Key != StorageKey {
		errs = append(errs, fmt.Errorf("key: got %q, want %q", env.Key, StorageKey))
	}

	ids := make(map[string]bool)
	for i, p := range env.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)

		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[p.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, p.ID))
		} else {
			ids[p.ID] = true
		}
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}

		errs = append(errs, validateConfig(prefix+".config", &p.Config)...)
		for j, ph := range p.Phases {
			errs = append(errs, validatePhase(fmt.Sprintf("%s.phases[%d]", prefix, j), &ph)...)
		}
		errs = append(errs, validateOptionalTimestamp(prefix+".created_at", p.CreatedAt)...)
		errs = append(errs, validateOptionalTimestamp(prefix+".updated_at", p.UpdatedAt)...)
	}

	return errs
}

func validateConfig(prefix string, c *ConfigRecord) []error {
	var errs []error

	errs = append(errs, validateDate(prefix+".signature_date", c.SignatureDate)...)
	if _, err := domain.ParseTechnologyType(c.Technology); err != nil {
		errs = append(errs, fmt.Errorf("%s.technology: %w", prefix, err))
	}
	if _, err := domain.ParseBusinessModel(c.Model); err != nil {
		errs = append(errs, fmt.Errorf("%s.model: %w", prefix, err))
	}
	if _, err := domain.ParseConnectionType(c.Connection); err != nil {
		errs = append(errs, fmt.Errorf("%s.connection: %w", prefix, err))
	}
	seen := make(map[domain.PhaseID]bool, len(c.Overrides))
	for key := range c.Overrides {
		id, err := domain.ParsePhaseID(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.overrides: %w", prefix, err))
			continue
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("%s.overrides: %w: %q", prefix, domain.ErrDuplicateOverride, id))
		}
		seen[id] = true
	}

	return errs
}

func validatePhase(prefix string, ph *PhaseRecord) []error {
	var errs []error

	if _, err := domain.ParseRecordedPhaseID(ph.ID); err != nil {
		errs = append(errs, fmt.Errorf("%s.id: %w", prefix, err))
	}
	errs = append(errs, validateDate(prefix+".start_date", ph.StartDate)...)
	errs = append(errs, validateDate(prefix+".end_date", ph.EndDate)...)

	return errs
}

func validateDate(field, s string) []error {
	if s == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)}
	}
	return nil
}

func validateOptionalTimestamp(field, s string) []error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(timestampLayout, s); err != nil {
		return []error{fmt.Errorf("%s: invalid timestamp %q", field, s)}
	}
	return nil
}
