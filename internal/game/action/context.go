package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/game/minister"
	"github.com/cory-johannsen/charter/internal/game/notification"
	"github.com/cory-johannsen/charter/internal/game/unit"
	"github.com/cory-johannsen/charter/internal/game/world"
)

// Context is the transient state of one action instance. It is created
// when the machine starts, populated through the roll phase, consumed
// by the effect applier, and discarded on completion. It is never
// persisted; the actor is borrowed, not owned.
type Context struct {
	// Actor is the unit performing the action.
	Actor *unit.Unit
	// Spec is the action type's declarative configuration.
	Spec *Spec
	// World is the campaign state mutated by effect appliers.
	World *world.World
	// Target is the village acted against; nil outside village venues.
	Target *world.Village

	// Thresholds are the effective, modifier-adjusted, clamped values
	// used for classification.
	Thresholds Thresholds
	// Modifier is the net situational roll modifier applied.
	Modifier int
	// Risk is the narrative tier shown at confirmation.
	Risk Risk
	// Cost is the money charged at roll time, success or not.
	Cost int
	// DieSize is the number of faces rolled.
	DieSize int
	// NumDice is 1, or 2 for veteran actors (keep the higher).
	NumDice int

	// Results holds the raw faces produced, in roll order.
	//
	// Invariant: len(Results) == NumDice once the roll phase completes.
	Results []int
	// Outcomes classifies each face in Results.
	Outcomes []Outcome
	// FinalResult is the maximum of Results.
	FinalResult int
	// FinalOutcome classifies FinalResult.
	FinalOutcome Outcome
	// Corrupt is true when the minister substituted the roll. Appliers
	// consult it only where the spec gates secondary effects.
	Corrupt bool

	// Rolls provides secondary draws to effect appliers.
	Rolls minister.RollSource
	// Notifier lets appliers narrate follow-up messages.
	Notifier *notification.Sequencer
	// Logger is the session logger.
	Logger *zap.Logger
}

// Suppressed reports whether the spec suppresses secondary effects for
// this (possibly corrupted) roll.
func (c *Context) Suppressed() bool {
	return c.Spec.SuppressWhenCorrupt && c.Corrupt
}
