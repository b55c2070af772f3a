package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/charter/internal/frontend/telnet"
)

// enter advances past count staged notifications.
func (tc *testClient) enter(count int) {
	tc.t.Helper()
	for i := 0; i < count; i++ {
		tc.readUntil("(enter) ", 2*time.Second)
		tc.send("")
	}
}

func TestCampaignMenu_NewAndQuit(t *testing.T) {
	store := newMockAccountStore()
	addr, campaigns, _ := newAuthServer(t, store)
	c := newTestClient(t, addr)

	c.login("gov", "secret123")
	c.send("new first voyage")
	output := c.readUntil("Charter founded", 3*time.Second)
	assert.Contains(t, telnet.StripANSI(output), "first voyage")
	c.readUntil("[turn 1]", 2*time.Second)

	c.send("quit")
	c.readUntil("The campaign is saved", 2*time.Second)

	// Back at the menu; the campaign is listed.
	c.send("list")
	output = c.readUntil("turn 1", 2*time.Second)
	assert.Contains(t, telnet.StripANSI(output), "first voyage")
	assert.Len(t, campaigns.camps, 1)

	c.send("quit")
	c.readUntil("Goodbye!", 2*time.Second)
}

func TestCampaignMenu_DuplicateName(t *testing.T) {
	store := newMockAccountStore()
	addr, _, _ := newAuthServer(t, store)
	c := newTestClient(t, addr)

	c.login("gov", "secret123")
	c.send("new first voyage")
	c.readUntil("[turn 1]", 3*time.Second)
	c.send("quit")
	c.readUntil("The campaign is saved", 2*time.Second)

	c.send("new first voyage")
	c.readUntil("already have a campaign", 2*time.Second)
}

func TestCampaignMenu_LoadUnknown(t *testing.T) {
	store := newMockAccountStore()
	addr, _, _ := newAuthServer(t, store)
	c := newTestClient(t, addr)

	c.login("gov", "secret123")
	c.send("load ghost fleet")
	c.readUntil("No campaign named", 2*time.Second)
}

func TestCampaignMenu_Delete(t *testing.T) {
	store := newMockAccountStore()
	addr, campaigns, _ := newAuthServer(t, store)
	c := newTestClient(t, addr)

	c.login("gov", "secret123")
	c.send("new doomed venture")
	c.readUntil("[turn 1]", 3*time.Second)
	c.send("quit")
	c.readUntil("The campaign is saved", 2*time.Second)

	c.send("delete doomed venture")
	c.readUntil("abandoned", 2*time.Second)
	assert.Len(t, campaigns.camps, 0)
}

func TestGameLoop_StatusUnitsVillages(t *testing.T) {
	store := newMockAccountStore()
	addr, _, _ := newAuthServer(t, store)
	c := newTestClient(t, addr)

	c.login("gov", "secret123")
	c.send("new first voyage")
	c.readUntil("[turn 1]", 3*time.Second)

	c.send("status")
	output := telnet.StripANSI(c.readUntil("Labor pool", 2*time.Second))
	assert.Contains(t, output, "Treasury:       200")
	assert.Contains(t, output, "Public opinion: 50")
	assert.Contains(t, output, "Slave lobby:    strength 10")

	c.send("units")
	output = telnet.StripANSI(c.readUntil("movement 1/1", 2*time.Second))
	assert.Contains(t, output, "da cunha")
	assert.Contains(t, output, "at mbanza")

	c.send("villages")
	output = telnet.StripANSI(c.readUntil("hostility 4", 2*time.Second))
	assert.Contains(t, output, "mbanza")
	assert.Contains(t, output, "population 9")
}

func TestGameLoop_ActionsListing(t *testing.T) {
	store := newMockAccountStore()
	addr, _, _ := newAuthServer(t, store)
	c := newTestClient(t, addr)

	c.login("gov", "secret123")
	c.send("new first voyage")
	c.readUntil("[turn 1]", 3*time.Second)

	c.send("actions da cunha")
	output := telnet.StripANSI(c.readUntil("risk", 2*time.Second))
	assert.Contains(t, output, "trade")
	assert.Contains(t, output, "Costs 10 this turn")
}

func TestGameLoop_TradeSuccess(t *testing.T) {
	store := newMockAccountStore()
	// One honest draw: Intn(6) == 4 rolls a 5, a plain success.
	addr, campaigns, audit := newAuthServer(t, store, 4)
	c := newTestClient(t, addr)

	c.login("gov", "secret123")
	c.send("new first voyage")
	c.readUntil("[turn 1]", 3*time.Second)

	c.send("do trade da cunha")
	output := telnet.StripANSI(c.readUntil("(yes/no)", 2*time.Second))
	assert.Contains(t, output, "Send the mission to the village market?")
	c.send("yes")

	// Pre-roll, rolling, result narration, continue, then the trade
	// willingness report queued by the effect applier.
	c.enter(5)
	c.readUntil("[turn 1]", 2*time.Second)

	// The attempt charged the treasury and resolved as a success.
	c.send("status")
	output = telnet.StripANSI(c.readUntil("Labor pool", 2*time.Second))
	assert.Contains(t, output, "Treasury:       190")

	require.Len(t, audit.records, 1)
	rec := audit.records[0]
	assert.Equal(t, "trade", rec.ActionType)
	assert.Equal(t, "da cunha", rec.ActorName)
	assert.Equal(t, []int32{5}, rec.Faces)
	assert.Equal(t, 5, rec.FinalFace)
	assert.Equal(t, "success", rec.Outcome)
	assert.False(t, rec.Corrupt)
	assert.Equal(t, 10, rec.Cost)

	// Ending the turn saves at the new turn number.
	c.send("end")
	c.readUntil("Turn 2 begins", 2*time.Second)
	assert.Equal(t, 1, campaigns.saves)

	c.send("quit")
	c.readUntil("The campaign is saved", 2*time.Second)
}

func TestGameLoop_TradeDeclined(t *testing.T) {
	store := newMockAccountStore()
	addr, _, audit := newAuthServer(t, store, 4)
	c := newTestClient(t, addr)

	c.login("gov", "secret123")
	c.send("new first voyage")
	c.readUntil("[turn 1]", 3*time.Second)

	c.send("do trade da cunha")
	c.readUntil("(yes/no)", 2*time.Second)
	c.send("no")
	c.readUntil("nothing is spent", 2*time.Second)

	// Declining costs nothing and rolls nothing.
	c.send("status")
	output := telnet.StripANSI(c.readUntil("Labor pool", 2*time.Second))
	assert.Contains(t, output, "Treasury:       200")
	assert.Empty(t, audit.records)

	// The unit may act again immediately.
	c.send("do trade da cunha")
	c.readUntil("(yes/no)", 2*time.Second)
	c.send("no")
	c.readUntil("nothing is spent", 2*time.Second)
}

func TestGameLoop_ActionRejections(t *testing.T) {
	store := newMockAccountStore()
	addr, _, _ := newAuthServer(t, store, 4)
	c := newTestClient(t, addr)

	c.login("gov", "secret123")
	c.send("new first voyage")
	c.readUntil("[turn 1]", 3*time.Second)

	c.send("do smuggle da cunha")
	c.readUntil("No such action", 2*time.Second)

	c.send("do trade nobody")
	c.readUntil(`No unit named "nobody"`, 2*time.Second)

	// Spend the unit's movement, then try again.
	c.send("do trade da cunha")
	c.readUntil("(yes/no)", 2*time.Second)
	c.send("yes")
	c.enter(5)
	c.readUntil("[turn 1]", 2*time.Second)

	c.send("do trade da cunha")
	c.readUntil("already acted this turn", 2*time.Second)

	// A new turn restores movement.
	c.send("end")
	c.readUntil("Turn 2 begins", 2*time.Second)
	c.send("do trade da cunha")
	c.readUntil("(yes/no)", 2*time.Second)
	c.send("no")
	c.readUntil("nothing is spent", 2*time.Second)
}

func TestGameLoop_ReloadPersistsState(t *testing.T) {
	store := newMockAccountStore()
	addr, _, _ := newAuthServer(t, store, 4)
	c := newTestClient(t, addr)

	c.login("gov", "secret123")
	c.send("new first voyage")
	c.readUntil("[turn 1]", 3*time.Second)

	c.send("do trade da cunha")
	c.readUntil("(yes/no)", 2*time.Second)
	c.send("yes")
	c.enter(5)
	c.readUntil("[turn 1]", 2*time.Second)
	c.send("end")
	c.readUntil("Turn 2 begins", 2*time.Second)
	c.send("quit")
	c.readUntil("The campaign is saved", 2*time.Second)

	c.send("load first voyage")
	c.readUntil("[turn 2]", 3*time.Second)
	c.send("status")
	output := telnet.StripANSI(c.readUntil("Labor pool", 2*time.Second))
	assert.Contains(t, output, "Treasury:       190")
	assert.Contains(t, output, "Turn:           2")
}

func TestGameLoop_DoubleOpenRejected(t *testing.T) {
	store := newMockAccountStore()
	addr, _, _ := newAuthServer(t, store)
	a := newTestClient(t, addr)

	a.login("gov", "secret123")
	a.send("new first voyage")
	a.readUntil("[turn 1]", 3*time.Second)

	b := newTestClient(t, addr)
	b.waitForPrompt()
	b.send("login gov secret123")
	b.readUntil("Your campaigns", 3*time.Second)
	b.send("load first voyage")
	b.readUntil("already open on another connection", 3*time.Second)
}
