package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/charter/internal/game/minister"
	"github.com/cory-johannsen/charter/internal/game/unit"
)

// ScenarioVillage is the YAML shape of one village.
type ScenarioVillage struct {
	Name           string   `yaml:"name"`
	Population     int      `yaml:"population"`
	Aggressiveness int      `yaml:"aggressiveness"`
	RumorSites     []string `yaml:"rumor_sites"`
}

// ScenarioUnit is the YAML shape of one starting unit.
type ScenarioUnit struct {
	Name         string   `yaml:"name"`
	Kind         string   `yaml:"kind"` // "officer" or "group"
	Location     string   `yaml:"location"`
	Movement     int      `yaml:"movement"`
	Capabilities []string `yaml:"capabilities"`
	Veteran      bool     `yaml:"veteran"`
}

// ScenarioMinister is the YAML shape of one cabinet appointment.
type ScenarioMinister struct {
	Name       string `yaml:"name"`
	Position   string `yaml:"position"`
	Corruption int    `yaml:"corruption"`
}

// Scenario is a complete campaign setup loaded from a YAML file.
//
// Precondition: Name must be non-empty after loading; at least one unit
// must be declared.
type Scenario struct {
	Name                string             `yaml:"name"`
	Description         string             `yaml:"description"`
	StartingMoney       int                `yaml:"starting_money"`
	StartingOpinion     int                `yaml:"starting_opinion"`
	SlaveTraderStrength int                `yaml:"slave_trader_strength"`
	ConsumerGoods       int                `yaml:"consumer_goods"`
	ScriptDir           string             `yaml:"script_dir"`
	Villages            []ScenarioVillage  `yaml:"villages"`
	Units               []ScenarioUnit     `yaml:"units"`
	Ministers           []ScenarioMinister `yaml:"ministers"`
}

// LoadScenario reads and parses a scenario YAML file.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a validated Scenario or a non-nil error.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks the scenario invariants.
//
// Postcondition: Returns nil iff Build will succeed.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name must be non-empty")
	}
	if len(s.Units) == 0 {
		return fmt.Errorf("scenario must declare at least one unit")
	}
	for _, u := range s.Units {
		if u.Kind != "officer" && u.Kind != "group" {
			return fmt.Errorf("unit %q: kind must be officer or group, got %q", u.Name, u.Kind)
		}
		if u.Movement < 1 {
			return fmt.Errorf("unit %q: movement must be >= 1, got %d", u.Name, u.Movement)
		}
	}
	for _, m := range s.Ministers {
		if !minister.ValidPosition(minister.Position(m.Position)) {
			return fmt.Errorf("minister %q: unknown position %q", m.Name, m.Position)
		}
	}
	return nil
}

// Build constructs a fresh World from the scenario.
//
// Precondition: Validate() returns nil.
// Postcondition: every declared village, unit, and minister is present.
func (s *Scenario) Build() (*World, error) {
	w := New(s.StartingMoney, s.StartingOpinion, s.SlaveTraderStrength)
	w.ConsumerGoods = s.ConsumerGoods

	for _, sv := range s.Villages {
		v := NewVillage(sv.Name, sv.Population, sv.Aggressiveness, sv.RumorSites...)
		if err := w.AddVillage(v); err != nil {
			return nil, err
		}
	}

	for _, su := range s.Units {
		kind := unit.KindOfficer
		if su.Kind == "group" {
			kind = unit.KindGroup
		}
		u := unit.New(su.Name, kind, su.Location, su.Movement, su.Capabilities...)
		u.Veteran = su.Veteran
		w.Units.Add(u)
	}

	for _, sm := range s.Ministers {
		m := &minister.Minister{
			Name:       sm.Name,
			Position:   minister.Position(sm.Position),
			Corruption: sm.Corruption,
		}
		if err := w.Cabinet.Appoint(m); err != nil {
			return nil, err
		}
	}

	return w, nil
}
