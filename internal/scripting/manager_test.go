package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	lua "github.com/yuin/gopher-lua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/game/dice"
	"github.com/cory-johannsen/charter/internal/scripting"
)

// maxSource always returns the highest face.
type maxSource struct{}

func (maxSource) Intn(n int) int { return n - 1 }

func newManager() *scripting.Manager {
	roller := dice.NewLoggedRoller(maxSource{}, zap.NewNop())
	return scripting.NewManager(roller, zap.NewNop())
}

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestManager_LoadScenarioAndCallHook(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "hooks.lua", `
		function on_turn_start(detail)
			return detail.turn * 10
		end
	`)

	m := newManager()
	require.NoError(t, m.LoadScenario("kongo_coast", dir, 0))

	L := lua.NewState()
	defer L.Close()
	tbl := L.NewTable()
	L.SetField(tbl, "turn", lua.LNumber(3))

	ret, err := m.CallHook("kongo_coast", "on_turn_start", tbl)
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(30), ret)
}

func TestManager_UndefinedHookReturnsNil(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "empty.lua", `-- nothing here`)

	m := newManager()
	require.NoError(t, m.LoadScenario("kongo_coast", dir, 0))

	ret, err := m.CallHook("kongo_coast", "on_abolition")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_SharedFallback(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "shared.lua", `
		function on_abolition(detail)
			return "the bells ring"
		end
	`)

	m := newManager()
	require.NoError(t, m.LoadShared(dir, 0))

	ret, err := m.CallHook("unknown_scenario", "on_abolition", lua.LNil)
	require.NoError(t, err)
	assert.Equal(t, lua.LString("the bells ring"), ret)
}

func TestManager_RuntimeErrorIsSwallowed(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "bad.lua", `
		function on_turn_start()
			error("script bug")
		end
	`)

	m := newManager()
	require.NoError(t, m.LoadScenario("kongo_coast", dir, 0))

	ret, err := m.CallHook("kongo_coast", "on_turn_start")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_LoadMissingDir(t *testing.T) {
	m := newManager()
	assert.Error(t, m.LoadScenario("kongo_coast", "/nonexistent/scripts", 0))
}

func TestModules_Roll(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "roll.lua", `
		function freed_workers()
			return engine.roll("2d6")
		end
	`)

	m := newManager()
	require.NoError(t, m.LoadScenario("kongo_coast", dir, 0))

	ret, err := m.CallHook("kongo_coast", "freed_workers")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(12), ret, "max-face source rolls all sixes")
}

func TestModules_Callbacks(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "hooks.lua", `
		function on_abolition(detail)
			engine.change_money(100, "abolition grant")
			engine.change_opinion(5)
			engine.raise_aggressiveness("mbanza", 1)
			engine.notify("The grant arrives.")
			engine.log("abolition handled")
		end
	`)

	m := newManager()
	var (
		money   int
		reason  string
		opinion int
		village string
		agg     int
		notices []string
	)
	m.ChangeMoney = func(amount int, r string) { money = amount; reason = r }
	m.ChangeOpinion = func(delta int) { opinion = delta }
	m.RaiseAggressiveness = func(v string, d int) { village = v; agg = d }
	m.Notify = func(text string) { notices = append(notices, text) }

	require.NoError(t, m.LoadScenario("kongo_coast", dir, 0))
	_, err := m.CallHook("kongo_coast", "on_abolition", lua.LNil)
	require.NoError(t, err)

	assert.Equal(t, 100, money)
	assert.Equal(t, "abolition grant", reason)
	assert.Equal(t, 5, opinion)
	assert.Equal(t, "mbanza", village)
	assert.Equal(t, 1, agg)
	assert.Equal(t, []string{"The grant arrives."}, notices)
}

func TestModules_NilCallbacksAreNoOps(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "hooks.lua", `
		function on_turn_start(detail)
			engine.change_money(10, "tick")
			engine.notify("tick")
			return true
		end
	`)

	m := newManager()
	require.NoError(t, m.LoadScenario("kongo_coast", dir, 0))

	ret, err := m.CallHook("kongo_coast", "on_turn_start", lua.LNil)
	require.NoError(t, err)
	assert.Equal(t, lua.LTrue, ret)
}

func TestHookSink_DispatchesWorldEvents(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "hooks.lua", `
		last_freed = 0
		function on_abolition(detail)
			last_freed = detail.freed
			engine.notify("freed " .. tostring(detail.freed))
		end
	`)

	m := newManager()
	var notices []string
	m.Notify = func(text string) { notices = append(notices, text) }
	require.NoError(t, m.LoadScenario("kongo_coast", dir, 0))

	sink := scripting.NewHookSink(m, "kongo_coast")
	sink.WorldEvent("abolition", map[string]int{"freed": 7})

	assert.Equal(t, []string{"freed 7"}, notices)

	// Unknown events dispatch to no hook and are harmless.
	sink.WorldEvent("eclipse", nil)
}
