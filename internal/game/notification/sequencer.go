// Package notification implements the staged message queue the action
// engine narrates through. Entries advance on player input; a lock
// defers entries queued mid-roll (a corruption-theft reveal) until the
// dice have visibly finished rolling. Rendering is left entirely to the
// frontend; this package owns only the queue and lock contract.
package notification

// Entry is one staged message.
type Entry struct {
	// Text is the display copy.
	Text string
	// DiceCount asks the frontend to display this many dice alongside
	// the text; zero means a plain message.
	DiceCount int
	// OnRemove, if non-nil, is invoked synchronously when the entry is
	// advanced past, before the next entry is considered.
	OnRemove func()
}

// Sequencer is a FIFO queue of entries with click-to-advance semantics.
// It is confined to the session goroutine that owns it.
type Sequencer struct {
	queue    []Entry
	deferred []Entry
	locked   bool
}

// NewSequencer returns an empty Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Display appends an entry. While the lock is engaged the entry is
// parked instead and only joins the queue when the lock releases;
// entries already queued are unaffected.
func (s *Sequencer) Display(e Entry) {
	if s.locked {
		s.deferred = append(s.deferred, e)
		return
	}
	s.queue = append(s.queue, e)
}

// DisplayAt inserts an entry at the given queue index, clamped to the
// queue bounds. Used to place a just-computed roll-result entry before
// an already-queued "click to continue". DisplayAt is the engine's own
// sequencing tool and is not subject to the lock.
//
// Precondition: index >= 0.
func (s *Sequencer) DisplayAt(e Entry, index int) {
	if index < 0 {
		panic("notification: DisplayAt precondition violated: index must be >= 0")
	}
	if index > len(s.queue) {
		index = len(s.queue)
	}
	s.queue = append(s.queue, Entry{})
	copy(s.queue[index+1:], s.queue[index:])
	s.queue[index] = e
}

// SetLock engages or releases the deferral lock. Releasing the lock
// appends every parked entry to the queue in the order it arrived.
func (s *Sequencer) SetLock(locked bool) {
	if s.locked == locked {
		return
	}
	s.locked = locked
	if !locked && len(s.deferred) > 0 {
		s.queue = append(s.queue, s.deferred...)
		s.deferred = nil
	}
}

// Locked reports whether the deferral lock is engaged.
func (s *Sequencer) Locked() bool { return s.locked }

// Advance pops the front entry and invokes its OnRemove callback
// synchronously before returning. The second return value is false if
// the queue was empty.
//
// Postcondition: on true, the returned entry's OnRemove (if any) has
// already run.
func (s *Sequencer) Advance() (Entry, bool) {
	if len(s.queue) == 0 {
		return Entry{}, false
	}
	e := s.queue[0]
	s.queue = s.queue[1:]
	if e.OnRemove != nil {
		e.OnRemove()
	}
	return e, true
}

// Front returns the entry currently displayed, if any.
func (s *Sequencer) Front() (Entry, bool) {
	if len(s.queue) == 0 {
		return Entry{}, false
	}
	return s.queue[0], true
}

// Len returns the number of queued entries, excluding parked ones.
func (s *Sequencer) Len() int { return len(s.queue) }

// Pending returns the number of entries parked behind the lock.
func (s *Sequencer) Pending() int { return len(s.deferred) }
