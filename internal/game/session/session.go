// Package session tracks live campaign sessions. A campaign may be
// open on at most one connection at a time; the Manager enforces that
// and hands the connection the wired game objects.
package session

import (
	"fmt"
	"sync"

	"github.com/cory-johannsen/charter/internal/game/action"
	"github.com/cory-johannsen/charter/internal/game/notification"
	"github.com/cory-johannsen/charter/internal/game/world"
	"github.com/cory-johannsen/charter/internal/scripting"
)

// Session is one open campaign: the live world and the action engine
// driving it. All contained objects are confined to the connection
// goroutine that opened the session.
type Session struct {
	// CampaignID is the database ID of the campaign.
	CampaignID int64
	// AccountID is the owning account.
	AccountID int64
	// Username is the account username (for logging).
	Username string
	// CampaignName is the player-chosen campaign name.
	CampaignName string
	// ScenarioFile is the scenario the campaign was created from.
	ScenarioFile string

	// World is the mutable campaign state.
	World *world.World
	// Engine resolves actions against the world.
	Engine *action.Engine
	// Notifier is the staged message queue the engine narrates through.
	Notifier *notification.Sequencer
	// Scripts holds the scenario's Lua hooks; nil when the scenario
	// declares no script directory.
	Scripts *scripting.Manager
}

// Manager tracks open campaign sessions. All methods are safe for
// concurrent use.
type Manager struct {
	mu   sync.RWMutex
	open map[int64]*Session
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{open: make(map[int64]*Session)}
}

// Open registers a campaign session.
//
// Precondition: sess must be non-nil with a positive CampaignID.
// Postcondition: Returns an error if the campaign is already open on
// another connection.
func (m *Manager) Open(sess *Session) error {
	if sess == nil || sess.CampaignID <= 0 {
		panic("session: Open precondition violated: session must be non-nil with a positive CampaignID")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if cur, exists := m.open[sess.CampaignID]; exists {
		return fmt.Errorf("campaign %q is already open (account %d)", cur.CampaignName, cur.AccountID)
	}
	m.open[sess.CampaignID] = sess
	return nil
}

// Close removes a campaign session.
//
// Postcondition: The campaign may be opened again. Returns an error if
// the campaign was not open.
func (m *Manager) Close(campaignID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.open[campaignID]; !exists {
		return fmt.Errorf("campaign %d is not open", campaignID)
	}
	delete(m.open, campaignID)
	return nil
}

// Get returns the open session for the given campaign.
//
// Postcondition: Returns (session, true) if open, or (nil, false) otherwise.
func (m *Manager) Get(campaignID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.open[campaignID]
	return sess, ok
}

// Count returns the number of open campaign sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.open)
}
