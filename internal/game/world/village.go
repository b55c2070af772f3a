package world

import "sort"

// Aggressiveness bounds for villages.
const (
	MinAggressiveness = 1
	MaxAggressiveness = 9
)

// Village is a native settlement units can act against: trade with,
// proselytise in, raid for captives, or comb for rumoured artifacts.
type Village struct {
	// Name identifies the village; also used as a unit location.
	Name string
	// Population is the current head count. Capture and conversion
	// actions draw it down.
	Population int
	// Aggressiveness is the 1..9 hostility score. Higher values worsen
	// roll modifiers for actions taken here.
	Aggressiveness int
	// RumorSites are the candidate artifact locations rumoured to be
	// near this village, in fixed narrative order.
	RumorSites []string
	// TradeUnlocked is the number of trade transactions unlocked by the
	// last successful trade-willingness action, consumed as trades run.
	TradeUnlocked int
	// FoundAllRumors is set once every rumour site has been revealed.
	FoundAllRumors bool

	revealed map[string]bool
}

// NewVillage creates a village with clamped aggressiveness.
//
// Precondition: name must be non-empty; population >= 0.
func NewVillage(name string, population, aggressiveness int, rumorSites ...string) *Village {
	if name == "" {
		panic("world: NewVillage precondition violated: name must be non-empty")
	}
	if population < 0 {
		panic("world: NewVillage precondition violated: population must be >= 0")
	}
	return &Village{
		Name:           name,
		Population:     population,
		Aggressiveness: clampAggressiveness(aggressiveness),
		RumorSites:     rumorSites,
		FoundAllRumors: len(rumorSites) == 0,
		revealed:       make(map[string]bool),
	}
}

// RaiseAggressiveness increases hostility by delta, capped at MaxAggressiveness.
//
// Precondition: delta >= 0.
func (v *Village) RaiseAggressiveness(delta int) {
	if delta < 0 {
		panic("world: Village.RaiseAggressiveness precondition violated: delta must be >= 0")
	}
	v.Aggressiveness = clampAggressiveness(v.Aggressiveness + delta)
}

// LowerAggressiveness decreases hostility by delta, floored at MinAggressiveness.
//
// Precondition: delta >= 0.
func (v *Village) LowerAggressiveness(delta int) {
	if delta < 0 {
		panic("world: Village.LowerAggressiveness precondition violated: delta must be >= 0")
	}
	v.Aggressiveness = clampAggressiveness(v.Aggressiveness - delta)
}

// TakePopulation removes n villagers, reporting whether enough remained.
//
// Precondition: n >= 1.
// Postcondition: on true, Population decreased by n; on false, unchanged.
func (v *Village) TakePopulation(n int) bool {
	if n < 1 {
		panic("world: Village.TakePopulation precondition violated: n must be >= 1")
	}
	if v.Population < n {
		return false
	}
	v.Population -= n
	return true
}

// RevealNextRumor reveals the first unrevealed rumour site. The second
// return is false when every site had already been revealed. Revealing
// the final site sets FoundAllRumors.
func (v *Village) RevealNextRumor() (string, bool) {
	for _, site := range v.RumorSites {
		if !v.revealed[site] {
			v.revealed[site] = true
			if len(v.revealed) == len(v.RumorSites) {
				v.FoundAllRumors = true
			}
			return site, true
		}
	}
	v.FoundAllRumors = true
	return "", false
}

// RevealedRumors returns the revealed site names, sorted.
func (v *Village) RevealedRumors() []string {
	out := make([]string, 0, len(v.revealed))
	for site := range v.revealed {
		out = append(out, site)
	}
	sort.Strings(out)
	return out
}

func clampAggressiveness(v int) int {
	if v < MinAggressiveness {
		return MinAggressiveness
	}
	if v > MaxAggressiveness {
		return MaxAggressiveness
	}
	return v
}
