// Package world holds the mutable campaign state the action engine and
// effect appliers operate on: the money ledger, public opinion, the
// slave-trade lobby, villages, per-turn escalating prices, the unit
// roster, and the appointed cabinet. The world is owned by the
// enclosing game session; turn-boundary resets happen in EndTurn.
package world

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/charter/internal/game/minister"
	"github.com/cory-johannsen/charter/internal/game/unit"
)

// EventSink receives named world events with integer detail fields.
// The scripting layer implements it to run scenario hooks; NopSink is
// the default.
type EventSink interface {
	WorldEvent(name string, detail map[string]int)
}

// NopSink discards all events.
type NopSink struct{}

// WorldEvent implements EventSink as a no-op.
func (NopSink) WorldEvent(string, map[string]int) {}

// World aggregates all campaign state. It is confined to the session
// that owns it; the single-threaded event model makes unsynchronized
// access safe.
type World struct {
	Ledger  *Ledger
	Opinion *PublicOpinion
	Traders *SlaveTraders
	Prices  *PriceTable
	Cabinet *minister.Roster
	Units   *unit.Roster

	// ConsumerGoods is the stock of trade goods; trading requires at
	// least one.
	ConsumerGoods int
	// LaborPool counts unassigned workers (swelled by abolition).
	LaborPool int
	// DiscoveredRegions lists regions revealed by exploration, in
	// discovery order.
	DiscoveredRegions []string
	// Turn is the current turn number, starting at 1.
	Turn int

	// Events receives world events; never nil.
	Events EventSink

	villages map[string]*Village
}

// New creates a World with the given starting resources and an empty map.
//
// Postcondition: Turn == 1; Events is a NopSink until replaced.
func New(startingMoney, startingOpinion, traderStrength int) *World {
	return &World{
		Ledger:   NewLedger(startingMoney),
		Opinion:  NewPublicOpinion(startingOpinion),
		Traders:  NewSlaveTraders(traderStrength),
		Prices:   NewPriceTable(),
		Cabinet:  minister.NewRoster(),
		Units:    unit.NewRoster(),
		Turn:     1,
		Events:   NopSink{},
		villages: make(map[string]*Village),
	}
}

// AddVillage registers a village on the map.
//
// Precondition: v must be non-nil; a village with the same name must
// not already exist.
func (w *World) AddVillage(v *Village) error {
	if v == nil {
		panic("world: AddVillage precondition violated: village must be non-nil")
	}
	if _, exists := w.villages[v.Name]; exists {
		return fmt.Errorf("world: village %q already exists", v.Name)
	}
	w.villages[v.Name] = v
	return nil
}

// Village returns the named village, if present.
func (w *World) Village(name string) (*Village, bool) {
	v, ok := w.villages[name]
	return v, ok
}

// Villages returns all villages sorted by name.
func (w *World) Villages() []*Village {
	out := make([]*Village, 0, len(w.villages))
	for _, v := range w.villages {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Discover appends a region to the discovered list if not already known.
// Returns true on first discovery.
func (w *World) Discover(region string) bool {
	for _, r := range w.DiscoveredRegions {
		if r == region {
			return false
		}
	}
	w.DiscoveredRegions = append(w.DiscoveredRegions, region)
	return true
}

// EndTurn advances to the next turn: prices reset to base, every living
// unit's movement is restored, and the turn-start event fires.
//
// Precondition: no action may be ongoing (enforced by the caller, which
// owns the ongoing-action tracker).
// Postcondition: Turn incremented; Prices.Current == base for all types.
func (w *World) EndTurn() {
	w.Turn++
	w.Prices.ResetTurn()
	w.Units.RestoreAll()
	w.Events.WorldEvent("turn_start", map[string]int{"turn": w.Turn})
}
