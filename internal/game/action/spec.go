package action

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/charter/internal/game/minister"
)

// Venue constrains where an action may be attempted.
type Venue string

const (
	// VenueAny places no location constraint on the actor.
	VenueAny Venue = "any"
	// VenueEurope requires the actor to be stationed in Europe.
	VenueEurope Venue = "europe"
	// VenueVillage requires the actor to be in a village, which becomes
	// the action's target.
	VenueVillage Venue = "village"
)

// Requirements is the declarative capability/context gate for one
// action type, checked by the engine's precondition chain and by
// CanShow button gating.
type Requirements struct {
	// Capability the actor must carry; empty means any unit qualifies.
	Capability string `yaml:"capability"`
	// Venue constrains the actor's location.
	Venue Venue `yaml:"venue"`
	// VillagePopulation requires the target village to have population > 0.
	VillagePopulation bool `yaml:"village_population"`
	// ConsumerGoods requires the colony stock to be > 0.
	ConsumerGoods bool `yaml:"consumer_goods"`
	// SlaveTradeActive blocks the action once abolition has fired.
	SlaveTradeActive bool `yaml:"slave_trade_active"`
}

// Copy is the notification text for one action type.
type Copy struct {
	Confirm     string `yaml:"confirm"`
	PreRoll     string `yaml:"preroll"`
	Rolling     string `yaml:"rolling"`
	Success     string `yaml:"success"`
	Failure     string `yaml:"failure"`
	CritSuccess string `yaml:"crit_success"`
	CritFail    string `yaml:"crit_fail"`
}

// ForOutcome returns the copy line for an outcome, falling back to the
// plain success/failure line when no critical variant is configured.
func (c Copy) ForOutcome(o Outcome) string {
	switch o {
	case CritSuccess:
		if c.CritSuccess != "" {
			return c.CritSuccess
		}
		return c.Success
	case Success:
		return c.Success
	case CritFailure:
		if c.CritFail != "" {
			return c.CritFail
		}
		return c.Failure
	default:
		return c.Failure
	}
}

// Spec is the declarative configuration for one action type. Specs are
// pure data loaded from YAML content files; the engine supplies all
// control flow.
type Spec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Position names the cabinet seat whose minister performs the roll.
	Position string `yaml:"position"`
	// Cost is the base price charged at roll time, doubled per attempt
	// within a turn.
	Cost int `yaml:"cost"`
	// DieSize overrides the game's default die size when > 0.
	DieSize    int          `yaml:"die_size"`
	Thresholds Thresholds   `yaml:"thresholds"`
	Requires   Requirements `yaml:"requires"`
	// SuppressWhenCorrupt gates secondary effects (aggressiveness and
	// opinion side-draws) off when the minister corrupted the roll.
	SuppressWhenCorrupt bool   `yaml:"suppress_when_corrupt"`
	Copy                Copy   `yaml:"copy"`
	Keybind             string `yaml:"keybind"`
}

// Validate checks the spec invariants against the given die size.
//
// Postcondition: Returns nil iff the spec is safe to register.
func (s *Spec) Validate(defaultDieSize int) error {
	var errs []string

	if s.ID == "" {
		errs = append(errs, "id must be non-empty")
	}
	if s.Name == "" {
		errs = append(errs, "name must be non-empty")
	}
	if !minister.ValidPosition(minister.Position(s.Position)) {
		errs = append(errs, fmt.Sprintf("position %q is not a cabinet seat", s.Position))
	}
	if s.Cost < 0 {
		errs = append(errs, fmt.Sprintf("cost must be >= 0, got %d", s.Cost))
	}

	die := s.EffectiveDieSize(defaultDieSize)
	if die < 2 {
		errs = append(errs, fmt.Sprintf("die size must be >= 2, got %d", die))
	}
	t := s.Thresholds
	if t.MinSuccess < 1 || t.MinSuccess > die {
		errs = append(errs, fmt.Sprintf("min_success must be in [1, %d], got %d", die, t.MinSuccess))
	}
	if t.MinCritSuccess < t.MinSuccess {
		errs = append(errs, fmt.Sprintf("min_crit_success %d must be >= min_success %d", t.MinCritSuccess, t.MinSuccess))
	}
	if t.MaxCritFail >= t.MinSuccess {
		errs = append(errs, fmt.Sprintf("max_crit_fail %d must be below min_success %d", t.MaxCritFail, t.MinSuccess))
	}

	switch s.Requires.Venue {
	case VenueAny, VenueEurope, VenueVillage:
	case "":
		errs = append(errs, "requires.venue must be set (any, europe, or village)")
	default:
		errs = append(errs, fmt.Sprintf("requires.venue %q is not one of [any, europe, village]", s.Requires.Venue))
	}
	if s.Requires.VillagePopulation && s.Requires.Venue != VenueVillage {
		errs = append(errs, "requires.village_population needs requires.venue: village")
	}

	if s.Copy.Confirm == "" || s.Copy.Success == "" || s.Copy.Failure == "" {
		errs = append(errs, "copy.confirm, copy.success, and copy.failure must be non-empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("action spec %q: %s", s.ID, strings.Join(errs, "; "))
	}
	return nil
}

// EffectiveDieSize returns the spec's die size, or the default when unset.
func (s *Spec) EffectiveDieSize(defaultDieSize int) int {
	if s.DieSize > 0 {
		return s.DieSize
	}
	return defaultDieSize
}

// LoadSpecs reads all .yaml files in dir and parses each as a Spec.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed specs (may be empty) or a non-nil error.
func LoadSpecs(dir string) ([]*Spec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading action spec dir %s: %w", dir, err)
	}

	var specs []*Spec
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext := filepath.Ext(name); ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var s Spec
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing action spec file %s: %w", path, err)
		}
		specs = append(specs, &s)
	}
	return specs, nil
}

// Registry provides lookup of action specs by ID.
type Registry struct {
	specs map[string]*Spec
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]*Spec)}
}

// Register adds a Spec to the registry.
//
// Precondition: spec must be non-nil with a non-empty ID.
// Postcondition: spec is retrievable via Get using spec.ID; registering
// the same ID twice replaces the earlier entry.
func (r *Registry) Register(spec *Spec) {
	if spec == nil {
		panic("action: Registry.Register precondition violated: spec must be non-nil")
	}
	if spec.ID == "" {
		panic("action: Registry.Register precondition violated: spec ID must be non-empty")
	}
	r.specs[spec.ID] = spec
}

// Get returns the Spec for the given ID, if registered.
func (r *Registry) Get(id string) (*Spec, bool) {
	s, ok := r.specs[id]
	return s, ok
}

// All returns every registered spec sorted by ID.
func (r *Registry) All() []*Spec {
	out := make([]*Spec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
