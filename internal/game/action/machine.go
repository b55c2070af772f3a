package action

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/game/minister"
	"github.com/cory-johannsen/charter/internal/game/notification"
	"github.com/cory-johannsen/charter/internal/game/unit"
	"github.com/cory-johannsen/charter/internal/game/world"
)

// State is the lifecycle position of a single action instance.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateAwaitingConfirmation
	StateRolling
	StateAwaitingDismissal
	StateApplyingEffects
	StateCancelled
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAwaitingConfirmation:
		return "awaiting confirmation"
	case StateRolling:
		return "rolling"
	case StateAwaitingDismissal:
		return "awaiting dismissal"
	case StateApplyingEffects:
		return "applying effects"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Applier translates a resolved roll into world-state mutations. One
// applier is registered per action type; it receives a well-formed,
// already-validated Context and does not re-check preconditions.
type Applier func(*Context)

// ModifierFunc computes the situational roll modifier (terrain,
// aggressiveness, building presence) for an action attempt. Nil or
// unregistered means no modifier.
type ModifierFunc func(w *world.World, actor *unit.Unit, target *world.Village) int

// Engine owns the shared services and the per-type applier and
// modifier tables, and drives one Machine at a time under the global
// ongoing-action tracker.
type Engine struct {
	world    *world.World
	notifier *notification.Sequencer
	rolls    minister.RollSource
	specs    *Registry
	tracker  *Tracker
	logger   *zap.Logger
	dieSize  int

	appliers  map[string]Applier
	modifiers map[string]ModifierFunc
	current   *Machine
}

// NewEngine creates an Engine and seeds the world's price table with
// each registered spec's base cost.
//
// Precondition: all arguments must be non-nil; dieSize >= 2.
func NewEngine(w *world.World, notifier *notification.Sequencer, rolls minister.RollSource, specs *Registry, logger *zap.Logger, dieSize int) *Engine {
	if dieSize < 2 {
		panic("action: NewEngine precondition violated: dieSize must be >= 2")
	}
	e := &Engine{
		world:     w,
		notifier:  notifier,
		rolls:     rolls,
		specs:     specs,
		tracker:   NewTracker(),
		logger:    logger,
		dieSize:   dieSize,
		appliers:  make(map[string]Applier),
		modifiers: make(map[string]ModifierFunc),
	}
	for _, s := range specs.All() {
		w.Prices.EnsureBase(s.ID, s.Cost)
	}
	return e
}

// RegisterApplier binds the effect applier for an action type.
//
// Precondition: id must name a registered spec; fn must be non-nil.
func (e *Engine) RegisterApplier(id string, fn Applier) {
	if fn == nil {
		panic("action: RegisterApplier precondition violated: applier must be non-nil")
	}
	if _, ok := e.specs.Get(id); !ok {
		panic("action: RegisterApplier precondition violated: no spec registered for " + id)
	}
	e.appliers[id] = fn
}

// RegisterModifier binds the situational modifier source for an action type.
func (e *Engine) RegisterModifier(id string, fn ModifierFunc) {
	if fn == nil {
		panic("action: RegisterModifier precondition violated: modifier must be non-nil")
	}
	e.modifiers[id] = fn
}

// Tracker exposes the ongoing-action lock, e.g. so the save layer can
// refuse to persist mid-action.
func (e *Engine) Tracker() *Tracker { return e.tracker }

// Specs exposes the registry of action types the engine resolves.
func (e *Engine) Specs() *Registry { return e.specs }

// Current returns the in-flight machine, if any.
func (e *Engine) Current() (*Machine, bool) {
	return e.current, e.current != nil
}

// CanShow reports whether the action's button should render for the
// actor: capability and context gating only, ignoring money and
// movement (those reject with a message on click instead).
func (e *Engine) CanShow(specID string, actor *unit.Unit) bool {
	spec, ok := e.specs.Get(specID)
	if !ok || actor == nil || actor.Dead {
		return false
	}
	_, err := e.checkContext(spec, actor)
	return err == nil
}

// Tooltip returns the descriptive lines for the action's button:
// name, current price, and the risk tier the attempt would carry.
func (e *Engine) Tooltip(specID string, actor *unit.Unit) []string {
	spec, ok := e.specs.Get(specID)
	if !ok {
		return nil
	}
	lines := []string{spec.Name}
	lines = append(lines, fmt.Sprintf("Costs %d this turn, attempt or not.", e.world.Prices.Current(spec.ID)))
	if actor != nil {
		target, _ := e.resolveTarget(spec, actor)
		mod := e.modifierFor(spec, actor, target)
		lines = append(lines, fmt.Sprintf("Current risk: %s.", RiskFor(mod, actor.Veteran)))
		if actor.Veteran {
			lines = append(lines, "Veteran: rolls two dice and keeps the higher.")
		}
	}
	return lines
}

// OnClick is the entry point bound to an action button. It runs the
// precondition chain in order, with no state mutation on rejection,
// then starts the machine. On success the confirmation notification is
// queued and the ongoing-action lock is held.
//
// Postcondition: on error, world state is untouched and no lock is
// held by this invocation; on nil error the returned machine is in
// StateAwaitingConfirmation.
func (e *Engine) OnClick(specID, actorID string) (*Machine, error) {
	spec, ok := e.specs.Get(specID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, specID)
	}
	actor, ok := e.world.Units.Get(actorID)
	if !ok || actor.Dead {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUnit, actorID)
	}

	if ongoing, held := e.tracker.Ongoing(); held {
		return nil, fmt.Errorf("%w (%s)", ErrActionOngoing, ongoing)
	}
	if actor.MovementPoints < 1 {
		return nil, fmt.Errorf("%w: %s", ErrNoMovement, actor.Name)
	}
	cost := e.world.Prices.Current(spec.ID)
	if e.world.Ledger.Get() < cost {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, cost, e.world.Ledger.Get())
	}
	if !e.world.Cabinet.AllAppointed() {
		return nil, fmt.Errorf("%w (vacant: %v)", ErrMinistersUnappointed, e.world.Cabinet.Vacant())
	}
	target, err := e.checkContext(spec, actor)
	if err != nil {
		return nil, err
	}

	m := &Machine{engine: e, state: StateValidating}
	if err := m.start(spec, actor, target, cost); err != nil {
		return nil, err
	}

	// An action always wakes a sentried unit, but only once it has
	// actually started. A refused attempt leaves the unit on watch.
	actor.Sentry = false
	return m, nil
}

// checkContext runs the action-type-specific location and capability
// checks and resolves the target village for village venues.
func (e *Engine) checkContext(spec *Spec, actor *unit.Unit) (*world.Village, error) {
	if spec.Requires.Capability != "" && !actor.Can(spec.Requires.Capability) {
		return nil, fmt.Errorf("%w: %s needs %s", ErrMissingCapability, spec.ID, spec.Requires.Capability)
	}

	target, err := e.resolveTarget(spec, actor)
	if err != nil {
		return nil, err
	}

	if spec.Requires.VillagePopulation && target != nil && target.Population <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyVillage, target.Name)
	}
	if spec.Requires.ConsumerGoods && e.world.ConsumerGoods <= 0 {
		return nil, ErrNoConsumerGoods
	}
	if spec.Requires.SlaveTradeActive && e.world.Traders.Abolished() {
		return nil, ErrSlaveTradeEnded
	}
	return target, nil
}

// resolveTarget maps the actor's location to the spec's venue.
func (e *Engine) resolveTarget(spec *Spec, actor *unit.Unit) (*world.Village, error) {
	switch spec.Requires.Venue {
	case VenueEurope:
		if actor.Location != unit.LocationEurope {
			return nil, fmt.Errorf("%w: %s requires Europe", ErrWrongVenue, spec.ID)
		}
		return nil, nil
	case VenueVillage:
		v, ok := e.world.Village(actor.Location)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires a village", ErrWrongVenue, spec.ID)
		}
		return v, nil
	default:
		return nil, nil
	}
}

func (e *Engine) modifierFor(spec *Spec, actor *unit.Unit, target *world.Village) int {
	if fn, ok := e.modifiers[spec.ID]; ok {
		return fn(e.world, actor, target)
	}
	return 0
}

// Machine drives one action instance through its lifecycle. A Machine
// is created by Engine.OnClick and abandoned after complete or Cancel.
type Machine struct {
	engine *Engine
	state  State
	ctx    *Context
}

// State returns the machine's current lifecycle state.
func (m *Machine) State() State { return m.state }

// Context returns the action context; nil before start.
func (m *Machine) Context() *Context { return m.ctx }

// start computes effective thresholds and risk, guards against
// impossible rolls, claims the ongoing-action lock, and queues the
// confirmation choice.
//
// Postcondition: on nil error the lock is held and state is
// StateAwaitingConfirmation; on error nothing is charged or locked.
func (m *Machine) start(spec *Spec, actor *unit.Unit, target *world.Village, cost int) error {
	e := m.engine

	mod := e.modifierFor(spec, actor, target)
	eff := spec.Thresholds.WithModifier(mod).Clamped()
	dieSize := spec.EffectiveDieSize(e.dieSize)
	risk := RiskFor(mod, actor.Veteran)

	if eff.Impossible(dieSize) {
		e.notifier.Display(notification.Entry{
			Text: fmt.Sprintf("%s cannot possibly succeed under these conditions. The attempt is refused.", spec.Name),
		})
		m.state = StateIdle
		return fmt.Errorf("%w: needs %d on a d%d", ErrImpossibleRoll, eff.MinSuccess, dieSize)
	}

	if !e.tracker.Begin(spec.ID) {
		m.state = StateIdle
		return ErrActionOngoing
	}

	m.ctx = &Context{
		Actor:      actor,
		Spec:       spec,
		World:      e.world,
		Target:     target,
		Thresholds: eff,
		Modifier:   mod,
		Risk:       risk,
		Cost:       cost,
		DieSize:    dieSize,
		NumDice:    actor.NumDice(),
		Rolls:      e.rolls,
		Notifier:   e.notifier,
		Logger:     e.logger,
	}

	e.notifier.Display(notification.Entry{
		Text: fmt.Sprintf("%s It will cost %d and the risk is %s. Proceed? (yes/no)", spec.Copy.Confirm, cost, risk),
	})
	m.state = StateAwaitingConfirmation
	e.current = m

	e.logger.Debug("action awaiting confirmation",
		zap.String("action", spec.ID),
		zap.String("actor", actor.Name),
		zap.Int("modifier", mod),
		zap.String("risk", risk.String()),
		zap.Int("cost", cost),
	)
	return nil
}

// Confirm enters the roll phase: movement is spent, the cost is sunk,
// the per-turn price doubles, and the minister produces the faces. The
// notification lock brackets the roll so any corruption narration lands
// after the dice visually finish.
//
// Precondition: state must be StateAwaitingConfirmation.
// Postcondition: state is StateAwaitingDismissal; the final queued
// entry's dismissal drives effect application.
func (m *Machine) Confirm() error {
	if m.state != StateAwaitingConfirmation {
		return fmt.Errorf("%w: state %s", ErrBadState, m.state)
	}
	m.state = StateRolling

	e := m.engine
	ctx := m.ctx
	spec := ctx.Spec

	ctx.Actor.SpendMovement()
	e.world.Ledger.Change(-ctx.Cost, "action cost: "+spec.ID)
	e.world.Prices.Double(spec.ID)

	e.notifier.Display(notification.Entry{Text: spec.Copy.PreRoll})
	rolling := spec.Copy.Rolling
	if rolling == "" {
		rolling = "Rolling..."
	}
	e.notifier.Display(notification.Entry{Text: rolling, DiceCount: ctx.NumDice})
	resultAt := e.notifier.Len()
	e.notifier.Display(notification.Entry{
		Text:     "Click to continue.",
		OnRemove: m.complete,
	})

	// Anything the roll service narrates mid-roll (a corruption
	// reveal) must land after the dice finish, never before.
	e.notifier.SetLock(true)
	series := e.rolls.RollSeries(minister.SeriesRequest{
		Position:    minister.Position(spec.Position),
		ActionType:  spec.ID,
		DieSize:     ctx.DieSize,
		MinSuccess:  ctx.Thresholds.MinSuccess,
		MaxCritFail: ctx.Thresholds.MaxCritFail,
		Price:       ctx.Cost,
		Count:       ctx.NumDice,
	})

	ctx.Results = series.Faces
	ctx.Corrupt = series.Corrupt
	ctx.Outcomes = make([]Outcome, len(series.Faces))
	ctx.FinalResult = 0
	for i, face := range series.Faces {
		ctx.Outcomes[i] = Classify(face, ctx.Thresholds)
		if face > ctx.FinalResult {
			ctx.FinalResult = face
		}
	}
	ctx.FinalOutcome = Classify(ctx.FinalResult, ctx.Thresholds)
	e.notifier.SetLock(false)

	// The result narration always precedes the continue entry, even if
	// the roll bracket released deferred narration behind it.
	e.notifier.DisplayAt(notification.Entry{Text: m.narrateRolls()}, resultAt)
	m.state = StateAwaitingDismissal

	e.logger.Info("action rolled",
		zap.String("action", spec.ID),
		zap.String("actor", ctx.Actor.Name),
		zap.Ints("faces", ctx.Results),
		zap.Int("final", ctx.FinalResult),
		zap.String("outcome", ctx.FinalOutcome.String()),
		zap.Int("cost", ctx.Cost),
	)
	return nil
}

// narrateRolls builds the result text: each face with its outcome, an
// explicit statement of which result was used when two dice were
// rolled, and the spec's outcome copy.
func (m *Machine) narrateRolls() string {
	ctx := m.ctx
	var b strings.Builder
	for i, face := range ctx.Results {
		fmt.Fprintf(&b, "Die %d reads %d: %s.\n", i+1, face, ctx.Outcomes[i])
	}
	if len(ctx.Results) > 1 {
		fmt.Fprintf(&b, "The higher result, %d, was used: %s.\n", ctx.FinalResult, ctx.FinalOutcome)
	}
	b.WriteString(ctx.Spec.Copy.ForOutcome(ctx.FinalOutcome))
	return b.String()
}

// complete applies the outcome's effects and releases the ongoing-
// action lock. The lock release is unconditional and last, so the game
// cannot wedge even if an applier queues further notifications.
func (m *Machine) complete() {
	if m.state != StateAwaitingDismissal {
		m.engine.logger.Error("complete called out of order",
			zap.String("state", m.state.String()),
		)
		return
	}
	m.state = StateApplyingEffects

	e := m.engine
	defer func() {
		e.tracker.Clear()
		e.current = nil
		m.state = StateIdle
	}()

	ctx := m.ctx
	if len(ctx.Results) != ctx.NumDice {
		// Invariant violation: clamp defensively rather than crash.
		e.logger.Error("results length mismatched with dice count",
			zap.String("action", ctx.Spec.ID),
			zap.Int("num_dice", ctx.NumDice),
			zap.Int("results", len(ctx.Results)),
		)
	}

	if applier, ok := e.appliers[ctx.Spec.ID]; ok {
		applier(ctx)
	} else {
		e.logger.Warn("no effect applier registered",
			zap.String("action", ctx.Spec.ID),
		)
	}
	m.ctx = nil
}

// Cancel abandons the action before any cost is charged. Reachable only
// from the validating and awaiting-confirmation states; once the roll
// phase begins the cost is sunk and the action must run to completion.
//
// Postcondition: the lock is released and no world state was mutated.
func (m *Machine) Cancel() error {
	switch m.state {
	case StateValidating, StateAwaitingConfirmation:
	default:
		return fmt.Errorf("%w: state %s", ErrBadState, m.state)
	}
	e := m.engine
	e.tracker.Clear()
	e.current = nil
	m.state = StateCancelled
	m.ctx = nil
	e.logger.Debug("action cancelled")
	m.state = StateIdle
	return nil
}
