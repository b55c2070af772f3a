// Package unit defines the acting entities of Charter: officers and the
// groups they lead (expeditions, caravans, missionaries, battalions).
// Units are the actors of dice-resolved actions; their veteran status
// and movement points gate what the action engine will let them attempt.
package unit

import "github.com/google/uuid"

// Kind distinguishes lone officers from officer-led groups.
type Kind int

const (
	KindOfficer Kind = iota
	KindGroup
)

// String returns the human-readable name of the Kind.
func (k Kind) String() string {
	switch k {
	case KindOfficer:
		return "officer"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Capability names gate which actions a unit may attempt. Content files
// reference these strings in their requirements block.
const (
	CapEvangelist  = "evangelist"
	CapTrade       = "can_trade"
	CapConvert     = "can_convert"
	CapCapture     = "can_capture_slaves"
	CapExplore     = "can_explore"
	CapSearchRumor = "can_search_rumors"
)

// LocationEurope is the reserved location name for units stationed in Europe.
const LocationEurope = "europe"

// Unit is a live acting entity. A Unit is owned by the campaign roster;
// the action engine borrows it for the duration of a single action.
type Unit struct {
	// ID uniquely identifies this unit instance.
	ID string
	// Name is the unit's display name.
	Name string
	// Kind is officer or group.
	Kind Kind
	// Capabilities is the set of action capabilities this unit carries.
	Capabilities map[string]bool
	// Veteran grants a second, max-kept die on every future action.
	// The transition is one-way; there is no downgrade path.
	Veteran bool
	// MovementPoints remaining this turn. Any dice-resolved action
	// consumes all remaining points (minimum one to act at all).
	MovementPoints int
	// MaxMovement is restored at each turn boundary.
	MaxMovement int
	// Sentry marks a unit as standing down; starting any action clears it.
	Sentry bool
	// Location is either LocationEurope or a village name.
	Location string
	// Dead is set when a critical failure removes the unit from play.
	Dead bool
}

// New creates a Unit with a fresh ID and full movement.
//
// Precondition: name must be non-empty; maxMovement >= 1.
// Postcondition: MovementPoints == maxMovement; Veteran, Sentry, and Dead are false.
func New(name string, kind Kind, location string, maxMovement int, capabilities ...string) *Unit {
	if name == "" {
		panic("unit: New precondition violated: name must be non-empty")
	}
	if maxMovement < 1 {
		panic("unit: New precondition violated: maxMovement must be >= 1")
	}
	caps := make(map[string]bool, len(capabilities))
	for _, c := range capabilities {
		caps[c] = true
	}
	return &Unit{
		ID:             uuid.NewString(),
		Name:           name,
		Kind:           kind,
		Capabilities:   caps,
		MovementPoints: maxMovement,
		MaxMovement:    maxMovement,
		Location:       location,
	}
}

// Can reports whether the unit carries the named capability.
func (u *Unit) Can(capability string) bool {
	return u.Capabilities[capability]
}

// NumDice returns the number of action dice this unit rolls:
// two for veterans (keep the higher), one otherwise.
func (u *Unit) NumDice() int {
	if u.Veteran {
		return 2
	}
	return 1
}

// Promote upgrades the unit to veteran status.
//
// Postcondition: Veteran is true. Calling Promote on an already-veteran
// unit is a no-op and returns false; the first promotion returns true.
func (u *Unit) Promote() bool {
	if u.Veteran {
		return false
	}
	u.Veteran = true
	return true
}

// SpendMovement zeroes remaining movement points. Dice-resolved actions
// consume the unit's whole turn.
//
// Precondition: MovementPoints >= 1 (enforced by the action engine's
// precondition chain before any roll).
func (u *Unit) SpendMovement() {
	u.MovementPoints = 0
}

// RestoreMovement refills movement points to MaxMovement. Called by the
// turn-management layer at each turn boundary.
func (u *Unit) RestoreMovement() {
	u.MovementPoints = u.MaxMovement
}
