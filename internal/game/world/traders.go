package world

// SlaveTraders tracks the global strength of the slave-trade lobby.
// Suppression actions wear it down; when strength reaches zero a
// one-time abolition event fires and slave purchases are disabled for
// the rest of the campaign.
type SlaveTraders struct {
	strength  int
	abolished bool
}

// NewSlaveTraders returns a tracker at the given starting strength.
//
// Precondition: starting >= 0.
func NewSlaveTraders(starting int) *SlaveTraders {
	if starting < 0 {
		panic("world: NewSlaveTraders precondition violated: starting must be >= 0")
	}
	return &SlaveTraders{strength: starting, abolished: starting == 0}
}

// Weaken lowers strength by amount, flooring at zero. It returns true
// exactly once: on the call that first drives strength to zero, which
// is the abolition trigger.
//
// Precondition: amount >= 0.
// Postcondition: Strength() >= 0; the true return occurs at most once
// over the tracker's lifetime.
func (s *SlaveTraders) Weaken(amount int) bool {
	if amount < 0 {
		panic("world: SlaveTraders.Weaken precondition violated: amount must be >= 0")
	}
	if s.abolished {
		return false
	}
	s.strength -= amount
	if s.strength <= 0 {
		s.strength = 0
		s.abolished = true
		return true
	}
	return false
}

// Strength returns the remaining lobby strength.
func (s *SlaveTraders) Strength() int { return s.strength }

// Abolished reports whether the abolition event has fired. Suppression
// actions and slave purchases are blocked once true.
func (s *SlaveTraders) Abolished() bool { return s.abolished }
