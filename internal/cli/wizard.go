package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/solplan/internal/cli/formatter"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// solplanHuhTheme returns a custom huh theme using the formatter palette.
func solplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runForm runs a huh form on the terminal. Tests replace it.
var runForm = func(f *huh.Form) error {
	return f.Run()
}

// validateRequired rejects blank input.
func validateRequired(title string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", title)
		}
		return nil
	}
}

// parsePositive parses a finite decimal number greater than zero.
// strconv accepts "nan" and "inf", so those are rejected explicitly.
func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !domain.IsFinite(v) || v <= 0 {
		return 0, false
	}
	return v, true
}

// validatePositiveNumber accepts a positive decimal number.
func validatePositiveNumber(s string) error {
	if _, ok := parsePositive(s); !ok {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateOptionalPositiveNumber accepts empty or a positive decimal number.
func validateOptionalPositiveNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validatePositiveNumber(s)
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(formatter.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(solplanHuhTheme()).WithShowHelp(false)
}

const (
	phaseDefault = "default"
	phaseOn      = "on"
	phaseOff     = "off"
)

// siteFormValues backs the site form. Every field is a string or enum so
// huh can bind to it directly.
type siteFormValues struct {
	name          string
	capacity      string
	signature     string
	technology    domain.TechnologyType
	model         domain.BusinessModel
	connection    domain.ConnectionType
	subcontracted bool
	phaseState    map[domain.PhaseID]*string
	phaseMonths   map[domain.PhaseID]*string
}

// newSiteFormValues pre-fills the form from p. A zero capacity shows
// defaultCapacity.
func newSiteFormValues(p *domain.Project, defaultCapacity float64) *siteFormValues {
	cfg := p.Config
	capacity := cfg.CapacityKWc
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	v := &siteFormValues{
		name:          p.Name,
		capacity:      strconv.FormatFloat(capacity, 'f', -1, 64),
		technology:    cfg.Technology,
		model:         cfg.Model,
		connection:    cfg.Connection,
		subcontracted: cfg.Subcontracted,
		phaseState:    make(map[domain.PhaseID]*string, len(domain.FormPhases)),
		phaseMonths:   make(map[domain.PhaseID]*string, len(domain.FormPhases)),
	}
	if !cfg.SignatureDate.IsZero() {
		v.signature = cfg.SignatureDate.Format(formatter.DateLayout)
	}
	if v.technology == "" {
		v.technology = domain.TechNewRoof
	}
	if v.model == "" {
		v.model = domain.ModelDirectEPC
	}
	if v.connection == "" {
		v.connection = domain.ConnectionGridInjection
	}

	for _, id := range domain.FormPhases {
		state, months := phaseDefault, ""
		if ov, ok := cfg.Overrides[id]; ok {
			if ov.Enabled != nil {
				state = phaseOff
				if *ov.Enabled {
					state = phaseOn
				}
			}
			if ov.ManualDuration != nil && *ov.ManualDuration > 0 {
				months = strconv.FormatFloat(*ov.ManualDuration, 'f', -1, 64)
			}
		}
		v.phaseState[id] = &state
		v.phaseMonths[id] = &months
	}
	return v
}

// form builds the three-page site form: identity, project type and the
// advanced per-phase overrides.
func (v *siteFormValues) form(title string) *huh.Form {
	techOptions := make([]huh.Option[domain.TechnologyType], 0, len(domain.TechnologyTypes))
	for _, t := range domain.TechnologyTypes {
		techOptions = append(techOptions, huh.NewOption(string(t), t))
	}
	modelOptions := make([]huh.Option[domain.BusinessModel], 0, len(domain.BusinessModels))
	for _, m := range domain.BusinessModels {
		modelOptions = append(modelOptions, huh.NewOption(string(m), m))
	}
	connOptions := make([]huh.Option[domain.ConnectionType], 0, len(domain.ConnectionTypes))
	for _, c := range domain.ConnectionTypes {
		connOptions = append(connOptions, huh.NewOption(string(c), c))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Site Name").
				Value(&v.name).
				Validate(validateRequired("Site name")),
			huh.NewInput().
				Title("Capacity (kWc)").
				Value(&v.capacity).
				Validate(validatePositiveNumber),
			huh.NewInput().
				Title("Signature Date T0 (YYYY-MM-DD, blank for today)").
				Placeholder(formatter.DateLayout).
				Value(&v.signature).
				Validate(validateOptionalDate),
		).Title(title),
		huh.NewGroup(
			huh.NewSelect[domain.TechnologyType]().Title("Technology").Options(techOptions...).Value(&v.technology),
			huh.NewSelect[domain.BusinessModel]().Title("Business Model").Options(modelOptions...).Value(&v.model),
			huh.NewSelect[domain.ConnectionType]().Title("Connection").Options(connOptions...).Value(&v.connection),
			huh.NewConfirm().
				Title("Construction subcontracted?").
				Description("Subcontracted work continues through restricted months").
				Value(&v.subcontracted),
		),
	}

	var advanced []huh.Field
	for _, id := range domain.FormPhases {
		advanced = append(advanced,
			huh.NewSelect[string]().
				Title(domain.PhaseName(id)).
				Options(
					huh.NewOption("Default rule", phaseDefault),
					huh.NewOption("Force on", phaseOn),
					huh.NewOption("Force off", phaseOff),
				).
				Inline(true).
				Value(v.phaseState[id]),
			huh.NewInput().
				Title(domain.PhaseName(id)+" duration (months, blank for default)").
				Value(v.phaseMonths[id]).
				Validate(validateOptionalPositiveNumber),
		)
	}
	groups = append(groups, huh.NewGroup(advanced...).Title("Advanced phase settings"))

	return huh.NewForm(groups...).WithTheme(solplanHuhTheme()).WithShowHelp(false)
}

// apply writes the form values onto p. Phases outside the form keep their
// existing overrides.
func (v *siteFormValues) apply(p *domain.Project) error {
	p.Name = v.name

	capacity, ok := parsePositive(v.capacity)
	if !ok {
		return fmt.Errorf("invalid capacity %q", v.capacity)
	}
	p.Config.CapacityKWc = capacity

	p.Config.SignatureDate = time.Time{}
	if s := strings.TrimSpace(v.signature); s != "" {
		d, err := time.Parse(formatter.DateLayout, s)
		if err != nil {
			return fmt.Errorf("invalid signature date %q: %w", s, err)
		}
		p.Config.SignatureDate = d
	}

	p.Config.Technology = v.technology
	p.Config.Model = v.model
	p.Config.Connection = v.connection
	p.Config.Subcontracted = v.subcontracted

	if p.Config.Overrides == nil {
		p.Config.Overrides = map[domain.PhaseID]domain.PhaseOverride{}
	}
	for _, id := range domain.FormPhases {
		var ov domain.PhaseOverride
		switch *v.phaseState[id] {
		case phaseOn:
			ov.Enabled = domain.BoolPtr(true)
		case phaseOff:
			ov.Enabled = domain.BoolPtr(false)
		}
		if s := strings.TrimSpace(*v.phaseMonths[id]); s != "" {
			months, ok := parsePositive(s)
			if !ok {
				return fmt.Errorf("invalid %s duration %q", domain.PhaseName(id), s)
			}
			ov.ManualDuration = domain.Float64Ptr(months)
		}
		if ov.Enabled == nil && ov.ManualDuration == nil {
			delete(p.Config.Overrides, id)
			continue
		}
		p.Config.Overrides[id] = ov
	}
	return nil
}

// runSiteForm shows the site form for p and applies the answers. An
// aborted form leaves p untouched and returns huh.ErrUserAborted.
func runSiteForm(app *App, title string, p *domain.Project) error {
	values := newSiteFormValues(p, app.Config.DefaultCapacity)
	if err := runForm(values.form(title)); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		return fmt.Errorf("site form: %w", err)
	}
	return values.apply(p)
}
