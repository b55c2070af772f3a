package effect

import (
	"fmt"

	"github.com/cory-johannsen/charter/internal/game/action"
	"github.com/cory-johannsen/charter/internal/game/notification"
	"github.com/cory-johannsen/charter/internal/game/unit"
)

// CaptureSlaves applies the slave-capture outcome. On success one
// villager becomes a captive worker unit. Whatever the outcome, an
// uncorrupted raid risks hardening the village and staining the
// colony's name at home; a corrupted minister hides those side effects
// along with his theft.
func (a *Appliers) CaptureSlaves(ctx *action.Context) {
	target := ctx.Target

	if ctx.FinalOutcome.Succeeded() && target.TakePopulation(1) {
		captive := unit.New("captive workers", unit.KindGroup, target.Name, 1)
		ctx.World.Units.Add(captive)
		ctx.Notifier.Display(notification.Entry{
			Text: fmt.Sprintf("A villager of %s is taken in chains.", target.Name),
		})
	}

	if !ctx.Suppressed() {
		if a.src.Intn(6) == 0 {
			target.RaiseAggressiveness(1)
			ctx.Notifier.Display(notification.Entry{
				Text: fmt.Sprintf("The raid hardens %s against the colony.", target.Name),
			})
		}
		if drop := a.src.Intn(3); drop > 0 {
			ctx.World.Opinion.Change(-drop)
		}
	}

	if ctx.FinalOutcome == action.CritFailure {
		a.warriorAttack(ctx)
		return
	}
	a.promoteOnCrit(ctx)
}

// SuppressSlaveTrade applies the suppression outcome: success bleeds
// the trader lobby's strength and buys goodwill; draining the lobby to
// nothing fires the one-time abolition event, freeing workers into the
// labor pool with a larger opinion surge.
func (a *Appliers) SuppressSlaveTrade(ctx *action.Context) {
	if !ctx.FinalOutcome.Succeeded() {
		return
	}
	w := ctx.World

	boost := a.uniform(3)
	w.Opinion.Change(boost)
	drop := a.uniform(3)
	abolished := w.Traders.Weaken(drop)
	ctx.Notifier.Display(notification.Entry{
		Text: fmt.Sprintf("The slave traders' grip weakens by %d. Public opinion improves by %d.", drop, boost),
	})

	if abolished {
		freed := a.uniform(6) + a.uniform(6)
		w.LaborPool += freed
		surge := a.uniform(6) + a.uniform(6)
		w.Opinion.Change(surge)
		w.Events.WorldEvent(EventAbolition, map[string]int{"freed": freed})
		ctx.Notifier.Display(notification.Entry{
			Text: fmt.Sprintf("The slave trade is abolished! %d freed workers join the labor pool, and public opinion surges by %d.", freed, surge),
		})
	}

	a.promoteOnCrit(ctx)
}
