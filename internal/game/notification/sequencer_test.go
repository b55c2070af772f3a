package notification_test

import (
	"testing"

	"github.com/cory-johannsen/charter/internal/game/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencer_FIFO(t *testing.T) {
	s := notification.NewSequencer()
	s.Display(notification.Entry{Text: "first"})
	s.Display(notification.Entry{Text: "second"})

	front, ok := s.Front()
	require.True(t, ok)
	assert.Equal(t, "first", front.Text)

	e, ok := s.Advance()
	require.True(t, ok)
	assert.Equal(t, "first", e.Text)

	e, ok = s.Advance()
	require.True(t, ok)
	assert.Equal(t, "second", e.Text)

	_, ok = s.Advance()
	assert.False(t, ok, "empty queue must report no entry")
}

// TestSequencer_OnRemoveRunsSynchronously: the callback fires during
// Advance, before the caller sees the next entry.
func TestSequencer_OnRemoveRunsSynchronously(t *testing.T) {
	s := notification.NewSequencer()
	var order []string
	s.Display(notification.Entry{
		Text:     "roll result",
		OnRemove: func() { order = append(order, "callback") },
	})

	_, ok := s.Advance()
	require.True(t, ok)
	order = append(order, "returned")
	assert.Equal(t, []string{"callback", "returned"}, order)
}

// TestSequencer_DisplayAt inserts ahead of an already-queued entry.
func TestSequencer_DisplayAt(t *testing.T) {
	s := notification.NewSequencer()
	s.Display(notification.Entry{Text: "click to continue"})
	s.DisplayAt(notification.Entry{Text: "the higher result was used"}, 0)

	e, _ := s.Advance()
	assert.Equal(t, "the higher result was used", e.Text)
	e, _ = s.Advance()
	assert.Equal(t, "click to continue", e.Text)
}

func TestSequencer_DisplayAt_ClampsIndex(t *testing.T) {
	s := notification.NewSequencer()
	s.DisplayAt(notification.Entry{Text: "only"}, 99)
	assert.Equal(t, 1, s.Len())
	assert.Panics(t, func() { s.DisplayAt(notification.Entry{}, -1) })
}

// TestSequencer_LockDefersNewEntries: entries displayed while locked
// join the queue only on release, after anything queued before them.
func TestSequencer_LockDefersNewEntries(t *testing.T) {
	s := notification.NewSequencer()
	s.Display(notification.Entry{Text: "rolling..."})

	s.SetLock(true)
	s.Display(notification.Entry{Text: "your minister stole the funds"})
	assert.Equal(t, 1, s.Len(), "locked entries must not join the queue")
	assert.Equal(t, 1, s.Pending())

	// Existing entries still advance while locked.
	e, ok := s.Advance()
	require.True(t, ok)
	assert.Equal(t, "rolling...", e.Text)

	s.Display(notification.Entry{Text: "dice read 2 and 3"})
	assert.Zero(t, s.Len())

	s.SetLock(false)
	assert.Zero(t, s.Pending())
	require.Equal(t, 2, s.Len())

	e, _ = s.Advance()
	assert.Equal(t, "your minister stole the funds", e.Text, "parked entries flush in arrival order")
	e, _ = s.Advance()
	assert.Equal(t, "dice read 2 and 3", e.Text)
}

func TestSequencer_SetLock_Idempotent(t *testing.T) {
	s := notification.NewSequencer()
	s.SetLock(true)
	s.SetLock(true)
	s.Display(notification.Entry{Text: "parked"})
	s.SetLock(false)
	s.SetLock(false)
	assert.Equal(t, 1, s.Len())
	assert.True(t, !s.Locked())
}
