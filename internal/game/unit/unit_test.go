package unit_test

import (
	"testing"

	"github.com/cory-johannsen/charter/internal/game/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	u := unit.New("Missionaries", unit.KindGroup, "mombili", 4, unit.CapConvert)
	require.NotEmpty(t, u.ID)
	assert.Equal(t, 4, u.MovementPoints)
	assert.False(t, u.Veteran)
	assert.False(t, u.Sentry)
	assert.False(t, u.Dead)
	assert.True(t, u.Can(unit.CapConvert))
	assert.False(t, u.Can(unit.CapTrade))
}

func TestNew_PreconditionPanics(t *testing.T) {
	assert.Panics(t, func() { unit.New("", unit.KindOfficer, unit.LocationEurope, 4) })
	assert.Panics(t, func() { unit.New("Evangelist", unit.KindOfficer, unit.LocationEurope, 0) })
}

// TestPromote_OneWay verifies the veteran transition happens exactly once
// and flips NumDice from 1 to 2.
func TestPromote_OneWay(t *testing.T) {
	u := unit.New("Merchants", unit.KindGroup, "village", 4, unit.CapTrade)
	assert.Equal(t, 1, u.NumDice())

	assert.True(t, u.Promote(), "first promotion must report the transition")
	assert.True(t, u.Veteran)
	assert.Equal(t, 2, u.NumDice())

	assert.False(t, u.Promote(), "second promotion must be a no-op")
	assert.True(t, u.Veteran)
}

func TestSpendAndRestoreMovement(t *testing.T) {
	u := unit.New("Expedition", unit.KindGroup, "village", 3, unit.CapExplore)
	u.SpendMovement()
	assert.Equal(t, 0, u.MovementPoints)
	u.RestoreMovement()
	assert.Equal(t, 3, u.MovementPoints)
}

func TestRoster_AddGetRemove(t *testing.T) {
	r := unit.NewRoster()
	u := unit.New("Evangelist", unit.KindOfficer, unit.LocationEurope, 4, unit.CapEvangelist)
	r.Add(u)

	got, ok := r.Get(u.ID)
	require.True(t, ok)
	assert.Same(t, u, got)

	byName, ok := r.ByName("Evangelist")
	require.True(t, ok)
	assert.Same(t, u, byName)

	r.Remove(u.ID)
	_, ok = r.Get(u.ID)
	assert.False(t, ok)
}

func TestRoster_LivingExcludesDead(t *testing.T) {
	r := unit.NewRoster()
	alive := unit.New("Caravan", unit.KindGroup, "village", 4, unit.CapTrade)
	dead := unit.New("Battalion", unit.KindGroup, "village", 4)
	dead.Dead = true
	r.Add(alive)
	r.Add(dead)

	living := r.Living()
	require.Len(t, living, 1)
	assert.Equal(t, "Caravan", living[0].Name)

	_, ok := r.ByName("Battalion")
	assert.False(t, ok, "dead units must not resolve by name")
}

func TestRoster_RestoreAll(t *testing.T) {
	r := unit.NewRoster()
	u := unit.New("Expedition", unit.KindGroup, "village", 3, unit.CapExplore)
	r.Add(u)
	u.SpendMovement()

	r.RestoreAll()
	assert.Equal(t, 3, u.MovementPoints)
}

func TestRoster_AddPanics(t *testing.T) {
	r := unit.NewRoster()
	assert.Panics(t, func() { r.Add(nil) })
	assert.Panics(t, func() { r.Add(&unit.Unit{}) })
}
