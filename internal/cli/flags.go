package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/solplan/internal/cli/formatter"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// phaseSetting is one parsed --phase value.
type phaseSetting struct {
	id      domain.PhaseID
	enabled *bool
	months  *float64
	reset   bool
}

// phaseOverrideFlag collects repeatable --phase id=off|on|default|<months>
// values. Later values for the same phase win.
type phaseOverrideFlag struct {
	settings []phaseSetting
}

var _ pflag.Value = (*phaseOverrideFlag)(nil)

func (f *phaseOverrideFlag) String() string {
	parts := make([]string, 0, len(f.settings))
	for _, s := range f.settings {
		parts = append(parts, string(s.id)+"="+s.value())
	}
	return strings.Join(parts, ",")
}

func (f *phaseOverrideFlag) Type() string { return "phase=setting" }

func (f *phaseOverrideFlag) Set(v string) error {
	s, err := parsePhaseSetting(v)
	if err != nil {
		return err
	}
	f.settings = append(f.settings, s)
	return nil
}

func (s phaseSetting) value() string {
	switch {
	case s.reset:
		return "default"
	case s.enabled != nil && !*s.enabled:
		return "off"
	case s.enabled != nil:
		return "on"
	case s.months != nil:
		return strconv.FormatFloat(*s.months, 'f', -1, 64)
	}
	return ""
}

func parsePhaseSetting(v string) (phaseSetting, error) {
	name, value, ok := strings.Cut(v, "=")
	if !ok {
		return phaseSetting{}, fmt.Errorf("invalid --phase %q, expected id=off|on|default|<months>", v)
	}
	id, err := domain.ParsePhaseID(strings.TrimSpace(name))
	if err != nil {
		return phaseSetting{}, err
	}

	s := phaseSetting{id: id}
	switch value = strings.ToLower(strings.TrimSpace(value)); value {
	case "off":
		s.enabled = domain.BoolPtr(false)
	case "on":
		s.enabled = domain.BoolPtr(true)
	case "default":
		s.reset = true
	default:
		months, ok := parsePositive(value)
		if !ok {
			return phaseSetting{}, fmt.Errorf("invalid --phase %q: duration must be a positive number of months", v)
		}
		s.months = domain.Float64Ptr(months)
	}
	return s, nil
}

// applyTo merges the collected settings into overrides. A duration keeps
// the phase's enablement and an on/off keeps its duration.
func (f *phaseOverrideFlag) applyTo(overrides map[domain.PhaseID]domain.PhaseOverride) {
	for _, s := range f.settings {
		if s.reset {
			delete(overrides, s.id)
			continue
		}
		ov := overrides[s.id]
		if s.enabled != nil {
			ov.Enabled = s.enabled
		}
		if s.months != nil {
			ov.ManualDuration = s.months
		}
		overrides[s.id] = ov
	}
}

// siteFlags are the configuration flags shared by site add, site update
// and plan.
type siteFlags struct {
	name          string
	capacity      float64
	signature     string
	technology    string
	model         string
	connection    string
	subcontracted bool
	phases        phaseOverrideFlag
}

func (f *siteFlags) register(cmd *cobra.Command, withName bool) {
	if withName {
		cmd.Flags().StringVar(&f.name, "name", "", "Site name")
	}
	cmd.Flags().Float64Var(&f.capacity, "capacity", 0, "Installed capacity in kWc")
	cmd.Flags().StringVar(&f.signature, "signature", "", "Signature date T0 (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.technology, "technology", "", "Technology (new-roof|renovation|canopy|ground-mounted)")
	cmd.Flags().StringVar(&f.model, "model", "", "Business model (direct-epc|third-party-epc)")
	cmd.Flags().StringVar(&f.connection, "connection", "", "Connection (grid-injection|self-consumption)")
	cmd.Flags().BoolVar(&f.subcontracted, "subcontracted", false, "Construction is subcontracted and ignores restricted months")
	cmd.Flags().Var(&f.phases, "phase", "Phase override id=off|on|default|<months> (repeatable)")
}

// apply copies every flag the user set onto p.
func (f *siteFlags) apply(flags *pflag.FlagSet, p *domain.Project) error {
	if flags.Lookup("name") != nil && flags.Changed("name") {
		p.Name = f.name
	}
	if flags.Changed("capacity") {
		if !domain.IsFinite(f.capacity) || f.capacity <= 0 {
			return fmt.Errorf("invalid capacity %v: must be positive", f.capacity)
		}
		p.Config.CapacityKWc = f.capacity
	}
	if flags.Changed("signature") {
		d, err := time.Parse(formatter.DateLayout, f.signature)
		if err != nil {
			return fmt.Errorf("invalid signature date %q: %w", f.signature, err)
		}
		p.Config.SignatureDate = d
	}
	if flags.Changed("technology") {
		t, err := domain.ParseTechnologyType(f.technology)
		if err != nil {
			return err
		}
		p.Config.Technology = t
	}
	if flags.Changed("model") {
		m, err := domain.ParseBusinessModel(f.model)
		if err != nil {
			return err
		}
		p.Config.Model = m
	}
	if flags.Changed("connection") {
		c, err := domain.ParseConnectionType(f.connection)
		if err != nil {
			return err
		}
		p.Config.Connection = c
	}
	if flags.Changed("subcontracted") {
		p.Config.Subcontracted = f.subcontracted
	}
	if p.Config.Overrides == nil {
		p.Config.Overrides = map[domain.PhaseID]domain.PhaseOverride{}
	}
	f.phases.applyTo(p.Config.Overrides)
	return nil
}
