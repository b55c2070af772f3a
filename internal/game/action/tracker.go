package action

import "sync"

// Tracker is the global ongoing-action lock: at most one action may be
// between start and completion at any time. All other action-initiating
// input is rejected while it is held. The single-threaded session model
// makes the mutex strictly precautionary; a server-authoritative
// multiplayer port would rely on it.
type Tracker struct {
	mu         sync.Mutex
	ongoing    bool
	actionType string
}

// NewTracker returns a cleared Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin claims the lock for actionType. Returns false without mutation
// if another action is already ongoing.
//
// Postcondition: on true, Ongoing reports (actionType, true) until Clear.
func (t *Tracker) Begin(actionType string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ongoing {
		return false
	}
	t.ongoing = true
	t.actionType = actionType
	return true
}

// Clear releases the lock. Clearing an idle tracker is a no-op.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ongoing = false
	t.actionType = ""
}

// Ongoing reports the in-flight action type, if any.
func (t *Tracker) Ongoing() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.actionType, t.ongoing
}
