package action

import "errors"

// Precondition rejections. All are recoverable, user-visible, and leave
// world state untouched; the frontend maps them to plain text messages.
var (
	// ErrActionOngoing: another action holds the ongoing-action lock.
	ErrActionOngoing = errors.New("another action is already ongoing")
	// ErrNoMovement: the actor has no movement points left this turn.
	ErrNoMovement = errors.New("unit has no movement points remaining")
	// ErrInsufficientFunds: the ledger cannot cover the action's price.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrMinistersUnappointed: a cabinet seat is vacant; rolls are
	// performed through ministers, so no dice-based action can run.
	ErrMinistersUnappointed = errors.New("all minister positions must be filled")
	// ErrWrongVenue: the actor is not where the action requires.
	ErrWrongVenue = errors.New("action cannot be attempted here")
	// ErrMissingCapability: the actor lacks the required capability.
	ErrMissingCapability = errors.New("unit lacks the required capability")
	// ErrEmptyVillage: the target village has no population.
	ErrEmptyVillage = errors.New("village has no population")
	// ErrNoConsumerGoods: the colony has no consumer goods to trade.
	ErrNoConsumerGoods = errors.New("no consumer goods available")
	// ErrSlaveTradeEnded: the action requires the slave trade, which
	// has been abolished.
	ErrSlaveTradeEnded = errors.New("the slave trade has ended")
	// ErrImpossibleRoll: modifiers pushed the success threshold past
	// the die size; the action is refused before any cost is charged.
	ErrImpossibleRoll = errors.New("action cannot possibly succeed")
	// ErrUnknownAction: no spec is registered under the requested ID.
	ErrUnknownAction = errors.New("unknown action type")
	// ErrUnknownUnit: the actor ID does not resolve to a living unit.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrBadState: a lifecycle call arrived in the wrong machine state.
	ErrBadState = errors.New("action is not in a state that allows this")
)
