package effect

import (
	"fmt"

	"github.com/cory-johannsen/charter/internal/game/action"
	"github.com/cory-johannsen/charter/internal/game/notification"
)

// Trade applies the trade-willingness outcome: success unlocks one
// trade transaction per three villagers (rounded up), a critical
// failure provokes an attack.
func (a *Appliers) Trade(ctx *action.Context) {
	target := ctx.Target
	switch ctx.FinalOutcome {
	case action.CritSuccess, action.Success:
		target.TradeUnlocked = (target.Population + 2) / 3
		ctx.Notifier.Display(notification.Entry{
			Text: fmt.Sprintf("The elders of %s agree to trade. %d transactions are open to you.", target.Name, target.TradeUnlocked),
		})
		a.promoteOnCrit(ctx)
	case action.CritFailure:
		a.warriorAttack(ctx)
	}
}
