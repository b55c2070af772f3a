package unit

import "sort"

// Roster tracks every live unit in a campaign, keyed by unit ID.
// Effect appliers add spawned units (warriors, freed labourers, church
// volunteers) and remove units that die or quit.
type Roster struct {
	units map[string]*Unit
}

// NewRoster returns an empty Roster.
//
// Postcondition: Returns a non-nil *Roster ready to accept units.
func NewRoster() *Roster {
	return &Roster{units: make(map[string]*Unit)}
}

// Add registers a unit.
//
// Precondition: u must be non-nil with a non-empty ID.
// Postcondition: u is retrievable via Get using u.ID; registering the
// same ID twice replaces the earlier entry.
func (r *Roster) Add(u *Unit) {
	if u == nil {
		panic("unit: Roster.Add precondition violated: unit must be non-nil")
	}
	if u.ID == "" {
		panic("unit: Roster.Add precondition violated: unit ID must be non-empty")
	}
	r.units[u.ID] = u
}

// Get returns the unit for the given ID, if present.
func (r *Roster) Get(id string) (*Unit, bool) {
	u, ok := r.units[id]
	return u, ok
}

// Remove deletes the unit with the given ID. Removing an unknown ID is a no-op.
func (r *Roster) Remove(id string) {
	delete(r.units, id)
}

// Living returns all units not marked Dead, sorted by name for stable display.
func (r *Roster) Living() []*Unit {
	out := make([]*Unit, 0, len(r.units))
	for _, u := range r.units {
		if !u.Dead {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByName returns the first living unit whose name matches, if any.
func (r *Roster) ByName(name string) (*Unit, bool) {
	for _, u := range r.units {
		if !u.Dead && u.Name == name {
			return u, true
		}
	}
	return nil, false
}

// RestoreAll refills movement for every living unit. Called at turn boundaries.
func (r *Roster) RestoreAll() {
	for _, u := range r.units {
		if !u.Dead {
			u.RestoreMovement()
		}
	}
}

// Len returns the number of units on the roster, dead or alive.
func (r *Roster) Len() int { return len(r.units) }
