// Package minister models the colonial cabinet through which every
// action roll is performed. Each dice-resolved action names the
// position whose minister supplies the roll; a corrupt minister may
// silently substitute a failing result and pocket the action's cost.
// The action engine consumes this package as an opaque RollSource and
// never inspects how a face was produced.
package minister

import "fmt"

// Position identifies a cabinet seat. Every position must be filled
// before any dice-resolved action may run.
type Position string

const (
	PositionTrade       Position = "trade"
	PositionReligion    Position = "religion"
	PositionMilitary    Position = "military"
	PositionInterior    Position = "interior"
	PositionExploration Position = "exploration"
)

// AllPositions lists every cabinet seat in display order.
var AllPositions = []Position{
	PositionTrade,
	PositionReligion,
	PositionMilitary,
	PositionInterior,
	PositionExploration,
}

// ValidPosition reports whether p names a recognised cabinet seat.
func ValidPosition(p Position) bool {
	for _, pos := range AllPositions {
		if p == pos {
			return true
		}
	}
	return false
}

// Minister is an appointed cabinet member.
type Minister struct {
	// Name is the minister's display name.
	Name string
	// Position is the seat this minister holds.
	Position Position
	// Corruption is the 0..6 threshold for the corruption check: a
	// hidden d6 at or under this value corrupts the roll. Zero means
	// the minister never steals.
	Corruption int
	// Stolen accumulates money secretly pocketed from corrupted rolls.
	// Nothing in the player-facing surface reveals this total.
	Stolen int
}

// Roster holds the appointed cabinet.
type Roster struct {
	seats map[Position]*Minister
}

// NewRoster returns a Roster with every seat vacant.
func NewRoster() *Roster {
	return &Roster{seats: make(map[Position]*Minister)}
}

// Appoint seats m at m.Position, replacing any previous holder.
//
// Precondition: m must be non-nil with a valid Position and a name.
func (r *Roster) Appoint(m *Minister) error {
	if m == nil {
		panic("minister: Roster.Appoint precondition violated: minister must be non-nil")
	}
	if !ValidPosition(m.Position) {
		return fmt.Errorf("minister: unknown position %q", m.Position)
	}
	if m.Name == "" {
		return fmt.Errorf("minister: minister name must be non-empty")
	}
	if m.Corruption < 0 || m.Corruption > 6 {
		return fmt.Errorf("minister: corruption %d out of range 0..6", m.Corruption)
	}
	r.seats[m.Position] = m
	return nil
}

// For returns the minister holding the given seat, if appointed.
func (r *Roster) For(p Position) (*Minister, bool) {
	m, ok := r.seats[p]
	return m, ok
}

// AllAppointed reports whether every cabinet seat is filled. Actions
// are rejected while any seat is vacant, since rolls are performed
// through a minister.
func (r *Roster) AllAppointed() bool {
	for _, p := range AllPositions {
		if _, ok := r.seats[p]; !ok {
			return false
		}
	}
	return true
}

// Vacant returns the unfilled seats in display order.
func (r *Roster) Vacant() []Position {
	var out []Position
	for _, p := range AllPositions {
		if _, ok := r.seats[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}
