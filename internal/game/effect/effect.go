// Package effect holds the per-action-type outcome appliers: the
// functions that turn a classified roll into world-state mutations
// (opinion and money swings, promotions, deaths, spawned units, world
// events). Appliers run after the player dismisses the result
// notification and never re-check action preconditions.
package effect

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/game/action"
	"github.com/cory-johannsen/charter/internal/game/dice"
	"github.com/cory-johannsen/charter/internal/game/notification"
	"github.com/cory-johannsen/charter/internal/game/unit"
	"github.com/cory-johannsen/charter/internal/game/world"
)

// Action type identifiers, matching the content file spec ids.
const (
	ActionReligiousCampaign  = "religious_campaign"
	ActionPublicRelations    = "public_relations_campaign"
	ActionTrade              = "trade"
	ActionCaptureSlaves      = "capture_slaves"
	ActionSuppressSlaveTrade = "suppress_slave_trade"
	ActionRumorSearch        = "rumor_search"
	ActionConvert            = "convert"
	ActionExplore            = "explore"
)

// World event names emitted by appliers.
const (
	EventWarriorAttack = "warrior_attack"
	EventAbolition     = "abolition"
)

// Appliers bundles the outcome appliers with their side-draw dice
// source. Side draws (opinion swings, trader strength loss, freed
// workers) are honest rolls and never pass through the minister.
type Appliers struct {
	src    dice.Source
	logger *zap.Logger
}

// NewAppliers creates the applier set.
//
// Precondition: src and logger must be non-nil.
func NewAppliers(src dice.Source, logger *zap.Logger) *Appliers {
	if src == nil {
		panic("effect: NewAppliers precondition violated: source must be non-nil")
	}
	if logger == nil {
		panic("effect: NewAppliers precondition violated: logger must be non-nil")
	}
	return &Appliers{src: src, logger: logger}
}

// RegisterAll binds every applier and situational modifier to the
// engine. The two campaign variants share one applier; village actions
// share the aggressiveness modifier.
func (a *Appliers) RegisterAll(e *action.Engine) {
	// Content files decide which action types exist; bind only those.
	register := func(id string, fn action.Applier) {
		if _, ok := e.Specs().Get(id); ok {
			e.RegisterApplier(id, fn)
		}
	}
	register(ActionReligiousCampaign, a.Campaign)
	register(ActionPublicRelations, a.Campaign)
	register(ActionTrade, a.Trade)
	register(ActionCaptureSlaves, a.CaptureSlaves)
	register(ActionSuppressSlaveTrade, a.SuppressSlaveTrade)
	register(ActionRumorSearch, a.RumorSearch)
	register(ActionConvert, a.Convert)
	register(ActionExplore, a.Explore)

	for _, id := range []string{ActionTrade, ActionCaptureSlaves, ActionRumorSearch, ActionConvert} {
		if _, ok := e.Specs().Get(id); ok {
			e.RegisterModifier(id, AggressivenessModifier)
		}
	}
}

// AggressivenessModifier maps the target village's hostility onto a
// roll modifier: placid villages ease the roll, hostile ones penalize it.
func AggressivenessModifier(_ *world.World, _ *unit.Unit, target *world.Village) int {
	if target == nil {
		return 0
	}
	switch {
	case target.Aggressiveness <= 3:
		return 1
	case target.Aggressiveness <= 6:
		return 0
	default:
		return -1
	}
}

// uniform draws an honest integer in [1, n].
func (a *Appliers) uniform(n int) int {
	return a.src.Intn(n) + 1
}

// promoteOnCrit applies the one-way veteran promotion a critical
// success earns. Returns true only on the promoting transition.
func (a *Appliers) promoteOnCrit(ctx *action.Context) bool {
	if ctx.FinalOutcome != action.CritSuccess {
		return false
	}
	if !ctx.Actor.Promote() {
		return false
	}
	ctx.Notifier.Display(notification.Entry{
		Text: fmt.Sprintf("%s has proven themselves and is now a veteran. They will roll two dice and keep the higher.", ctx.Actor.Name),
	})
	a.logger.Info("unit promoted to veteran",
		zap.String("unit", ctx.Actor.Name),
		zap.String("action", ctx.Spec.ID),
	)
	return true
}

// kill marks the actor dead and narrates the loss.
func (a *Appliers) kill(ctx *action.Context, text string) {
	ctx.Actor.Dead = true
	ctx.Notifier.Display(notification.Entry{Text: text})
	a.logger.Info("unit lost",
		zap.String("unit", ctx.Actor.Name),
		zap.String("action", ctx.Spec.ID),
	)
}

// warriorAttack raises the hostile-response event a critical failure in
// a village provokes. Hostile warriors belong to the combat layer, so
// the applier emits the event and narration rather than a roster unit.
func (a *Appliers) warriorAttack(ctx *action.Context) {
	target := ctx.Target
	if target == nil {
		return
	}
	ctx.World.Events.WorldEvent(EventWarriorAttack, map[string]int{
		"aggressiveness": target.Aggressiveness,
	})
	ctx.Notifier.Display(notification.Entry{
		Text: fmt.Sprintf("A warrior of %s takes violent offence and attacks %s!", target.Name, ctx.Actor.Name),
	})
}
