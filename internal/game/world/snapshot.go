package world

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/charter/internal/game/minister"
	"github.com/cory-johannsen/charter/internal/game/unit"
)

// Snapshot is the serializable form of a World, taken at a turn
// boundary for campaign persistence. The ledger's transaction log is
// not carried; the roll audit table is the durable history.
type Snapshot struct {
	Turn              int            `json:"turn"`
	Money             int            `json:"money"`
	Opinion           int            `json:"opinion"`
	TraderStrength    int            `json:"trader_strength"`
	Abolished         bool           `json:"abolished"`
	ConsumerGoods     int            `json:"consumer_goods"`
	LaborPool         int            `json:"labor_pool"`
	DiscoveredRegions []string       `json:"discovered_regions,omitempty"`
	BasePrices        map[string]int `json:"base_prices,omitempty"`
	CurrentPrices     map[string]int `json:"current_prices,omitempty"`

	Villages  []VillageSnapshot  `json:"villages,omitempty"`
	Units     []UnitSnapshot     `json:"units,omitempty"`
	Ministers []MinisterSnapshot `json:"ministers,omitempty"`
}

// VillageSnapshot is the serializable form of a Village.
type VillageSnapshot struct {
	Name           string   `json:"name"`
	Population     int      `json:"population"`
	Aggressiveness int      `json:"aggressiveness"`
	RumorSites     []string `json:"rumor_sites,omitempty"`
	Revealed       []string `json:"revealed,omitempty"`
	TradeUnlocked  int      `json:"trade_unlocked,omitempty"`
}

// UnitSnapshot is the serializable form of a live Unit. Dead units are
// not persisted.
type UnitSnapshot struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Capabilities   []string `json:"capabilities,omitempty"`
	Veteran        bool     `json:"veteran,omitempty"`
	MovementPoints int      `json:"movement_points"`
	MaxMovement    int      `json:"max_movement"`
	Sentry         bool     `json:"sentry,omitempty"`
	Location       string   `json:"location"`
}

// MinisterSnapshot is the serializable form of an appointed Minister.
// Corruption and Stolen are persisted but never shown to the player.
type MinisterSnapshot struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Corruption int    `json:"corruption"`
	Stolen     int    `json:"stolen"`
}

// Snapshot captures the world's full persistent state.
//
// Precondition: must be taken at a turn boundary with no action ongoing
// (enforced by the caller, which owns the ongoing-action tracker).
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Turn:              w.Turn,
		Money:             w.Ledger.Get(),
		Opinion:           w.Opinion.Get(),
		TraderStrength:    w.Traders.Strength(),
		Abolished:         w.Traders.Abolished(),
		ConsumerGoods:     w.ConsumerGoods,
		LaborPool:         w.LaborPool,
		DiscoveredRegions: append([]string(nil), w.DiscoveredRegions...),
		BasePrices:        make(map[string]int, len(w.Prices.base)),
		CurrentPrices:     make(map[string]int, len(w.Prices.current)),
	}
	for k, v := range w.Prices.base {
		s.BasePrices[k] = v
	}
	for k, v := range w.Prices.current {
		s.CurrentPrices[k] = v
	}

	for _, v := range w.Villages() {
		s.Villages = append(s.Villages, VillageSnapshot{
			Name:           v.Name,
			Population:     v.Population,
			Aggressiveness: v.Aggressiveness,
			RumorSites:     append([]string(nil), v.RumorSites...),
			Revealed:       v.RevealedRumors(),
			TradeUnlocked:  v.TradeUnlocked,
		})
	}

	for _, u := range w.Units.Living() {
		caps := make([]string, 0, len(u.Capabilities))
		for c := range u.Capabilities {
			caps = append(caps, c)
		}
		sort.Strings(caps)
		s.Units = append(s.Units, UnitSnapshot{
			ID:             u.ID,
			Name:           u.Name,
			Kind:           u.Kind.String(),
			Capabilities:   caps,
			Veteran:        u.Veteran,
			MovementPoints: u.MovementPoints,
			MaxMovement:    u.MaxMovement,
			Sentry:         u.Sentry,
			Location:       u.Location,
		})
	}

	for _, p := range minister.AllPositions {
		m, ok := w.Cabinet.For(p)
		if !ok {
			continue
		}
		s.Ministers = append(s.Ministers, MinisterSnapshot{
			Name:       m.Name,
			Position:   string(m.Position),
			Corruption: m.Corruption,
			Stolen:     m.Stolen,
		})
	}

	return s
}

// FromSnapshot rebuilds a World from its persisted form.
//
// Postcondition: on nil error the world is playable; Events is a
// NopSink until the caller attaches its sink.
func FromSnapshot(s Snapshot) (*World, error) {
	w := New(s.Money, s.Opinion, s.TraderStrength)
	w.Turn = s.Turn
	if s.Abolished {
		w.Traders.abolished = true
		w.Traders.strength = 0
	}
	w.ConsumerGoods = s.ConsumerGoods
	w.LaborPool = s.LaborPool
	w.DiscoveredRegions = append([]string(nil), s.DiscoveredRegions...)

	for k, v := range s.BasePrices {
		w.Prices.SetBase(k, v)
	}
	for k, v := range s.CurrentPrices {
		w.Prices.current[k] = v
	}

	for _, vs := range s.Villages {
		v := NewVillage(vs.Name, vs.Population, vs.Aggressiveness, vs.RumorSites...)
		v.TradeUnlocked = vs.TradeUnlocked
		for _, site := range vs.Revealed {
			v.revealed[site] = true
		}
		if len(vs.RumorSites) > 0 && len(v.revealed) == len(vs.RumorSites) {
			v.FoundAllRumors = true
		}
		if err := w.AddVillage(v); err != nil {
			return nil, err
		}
	}

	for _, us := range s.Units {
		var kind unit.Kind
		switch us.Kind {
		case unit.KindOfficer.String():
			kind = unit.KindOfficer
		case unit.KindGroup.String():
			kind = unit.KindGroup
		default:
			return nil, fmt.Errorf("world: unknown unit kind %q", us.Kind)
		}
		caps := make(map[string]bool, len(us.Capabilities))
		for _, c := range us.Capabilities {
			caps[c] = true
		}
		w.Units.Add(&unit.Unit{
			ID:             us.ID,
			Name:           us.Name,
			Kind:           kind,
			Capabilities:   caps,
			Veteran:        us.Veteran,
			MovementPoints: us.MovementPoints,
			MaxMovement:    us.MaxMovement,
			Sentry:         us.Sentry,
			Location:       us.Location,
		})
	}

	for _, ms := range s.Ministers {
		if err := w.Cabinet.Appoint(&minister.Minister{
			Name:       ms.Name,
			Position:   minister.Position(ms.Position),
			Corruption: ms.Corruption,
			Stolen:     ms.Stolen,
		}); err != nil {
			return nil, err
		}
	}

	return w, nil
}
