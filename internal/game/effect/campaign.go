package effect

import (
	"fmt"

	"github.com/cory-johannsen/charter/internal/game/action"
	"github.com/cory-johannsen/charter/internal/game/notification"
)

// Campaign is the shared applier for the public-relations and religious
// campaign actions: success sways public opinion at home, a critical
// failure costs the campaigner their resolve.
//
// Postcondition: on success, opinion rose by a value in [1, 6]; on
// critical failure, the actor is dead and opinion is unchanged.
func (a *Appliers) Campaign(ctx *action.Context) {
	switch ctx.FinalOutcome {
	case action.CritSuccess, action.Success:
		boost := a.uniform(6)
		ctx.World.Opinion.Change(boost)
		ctx.Notifier.Display(notification.Entry{
			Text: fmt.Sprintf("Word of the campaign spreads. Public opinion improves by %d.", boost),
		})
		a.promoteOnCrit(ctx)
	case action.CritFailure:
		a.kill(ctx, fmt.Sprintf("Humiliated, %s abandons the cause and quits the colony's service.", ctx.Actor.Name))
	}
}
