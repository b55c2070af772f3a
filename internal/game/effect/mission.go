package effect

import (
	"fmt"

	"github.com/cory-johannsen/charter/internal/game/action"
	"github.com/cory-johannsen/charter/internal/game/notification"
	"github.com/cory-johannsen/charter/internal/game/unit"
)

// Convert applies the conversion outcome: a persuaded villager leaves
// the village and joins the colony as a convert group. A critical
// failure turns the village against the mission.
func (a *Appliers) Convert(ctx *action.Context) {
	target := ctx.Target
	switch {
	case ctx.FinalOutcome.Succeeded():
		if !target.TakePopulation(1) {
			return
		}
		converts := unit.New("village converts", unit.KindGroup, target.Name, 1)
		ctx.World.Units.Add(converts)
		ctx.Notifier.Display(notification.Entry{
			Text: fmt.Sprintf("A villager of %s takes the faith and joins the mission.", target.Name),
		})
		a.promoteOnCrit(ctx)
	case ctx.FinalOutcome == action.CritFailure:
		target.RaiseAggressiveness(1)
		ctx.Notifier.Display(notification.Entry{
			Text: fmt.Sprintf("The sermon is taken as an insult. %s turns against the mission.", target.Name),
		})
	}
}

// RumorSearch applies the artifact-rumor search outcome: each success
// reveals one more rumoured site near the village, until none remain.
func (a *Appliers) RumorSearch(ctx *action.Context) {
	if !ctx.FinalOutcome.Succeeded() {
		return
	}
	target := ctx.Target
	site, ok := target.RevealNextRumor()
	if !ok {
		ctx.Notifier.Display(notification.Entry{
			Text: fmt.Sprintf("Nothing new: every rumour around %s has already been run down.", target.Name),
		})
		return
	}
	ctx.Notifier.Display(notification.Entry{
		Text: fmt.Sprintf("The villagers speak of %s.", site),
	})
	if target.FoundAllRumors {
		ctx.Notifier.Display(notification.Entry{
			Text: fmt.Sprintf("You have heard every rumour %s has to tell.", target.Name),
		})
	}
	a.promoteOnCrit(ctx)
}

// Explore applies the expedition outcome: success charts the country
// around the actor's position, a critical failure loses the expedition.
func (a *Appliers) Explore(ctx *action.Context) {
	switch {
	case ctx.FinalOutcome.Succeeded():
		region := "the interior"
		if ctx.Target != nil {
			region = fmt.Sprintf("the country beyond %s", ctx.Target.Name)
		} else if ctx.Actor.Location != unit.LocationEurope {
			region = fmt.Sprintf("the country beyond %s", ctx.Actor.Location)
		}
		if ctx.World.Discover(region) {
			ctx.Notifier.Display(notification.Entry{
				Text: fmt.Sprintf("%s charts %s.", ctx.Actor.Name, region),
			})
		}
		a.promoteOnCrit(ctx)
	case ctx.FinalOutcome == action.CritFailure:
		a.kill(ctx, fmt.Sprintf("The expedition of %s is never heard from again.", ctx.Actor.Name))
	}
}
