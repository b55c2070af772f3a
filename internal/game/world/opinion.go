package world

// opinion bounds. Opinion is a 0..100 approval score back home;
// campaigns raise it, atrocities lower it.
const (
	MinOpinion = 0
	MaxOpinion = 100
)

// PublicOpinion tracks metropolitan approval of the colonial venture.
type PublicOpinion struct {
	value int
}

// NewPublicOpinion returns a tracker clamped to the valid range.
func NewPublicOpinion(starting int) *PublicOpinion {
	p := &PublicOpinion{}
	p.value = clampOpinion(starting)
	return p
}

// Change applies a signed delta, clamping to [MinOpinion, MaxOpinion].
//
// Postcondition: MinOpinion <= Get() <= MaxOpinion.
func (p *PublicOpinion) Change(delta int) {
	p.value = clampOpinion(p.value + delta)
}

// Get returns the current opinion value.
func (p *PublicOpinion) Get() int { return p.value }

func clampOpinion(v int) int {
	if v < MinOpinion {
		return MinOpinion
	}
	if v > MaxOpinion {
		return MaxOpinion
	}
	return v
}
