package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/game/dice"
)

// globalKey is the reserved key for shared scripts loaded via LoadShared.
// CallHook falls back to this VM when no scenario VM is found.
const globalKey = "__global__"

// Manager owns one sandboxed LState per scenario and exposes hook dispatch.
//
// Manager is safe for concurrent CallHook after all LoadScenario calls
// complete. Each scenario's LState is single-threaded; the read lock
// serializes concurrent calls to the same scenario while allowing
// different scenarios to run concurrently.
type Manager struct {
	mu     sync.RWMutex
	states map[string]*lua.LState
	roller *dice.Roller
	logger *zap.Logger

	// Injected after construction. nil = no-op in engine.* modules.
	ChangeMoney         func(amount int, reason string)
	ChangeOpinion       func(delta int)
	RaiseAggressiveness func(village string, delta int)
	Notify              func(text string)
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with an empty scenario map.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	return &Manager{
		states: make(map[string]*lua.LState),
		roller: roller,
		logger: logger,
	}
}

// LoadScenario creates a sandboxed VM for scenarioID, registers all
// engine.* modules, then executes every *.lua file in scriptDir in
// lexicographic order.
//
// Precondition: scenarioID must be non-empty; scriptDir must be a readable directory.
// Postcondition: Scenario VM is registered; returns error on Lua load failure.
func (m *Manager) LoadScenario(scenarioID, scriptDir string, instLimit int) error {
	return m.loadInto(scenarioID, scriptDir, instLimit)
}

// LoadShared creates the "__global__" VM for scripts accessible as a
// CallHook fallback from any scenario.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Shared VM is registered; returns error on Lua load failure.
func (m *Manager) LoadShared(scriptDir string, instLimit int) error {
	return m.loadInto(globalKey, scriptDir, instLimit)
}

func (m *Manager) loadInto(key, scriptDir string, instLimit int) error {
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.states[key]; ok {
		old.Close()
	}
	m.states[key] = L
	m.mu.Unlock()
	return nil
}

// CallHook calls the named Lua global function in scenarioID's VM. If
// the scenario has no VM, the __global__ VM is tried as a fallback.
// Returns (LNil, nil) if the hook is not defined or no VM exists. Lua
// runtime errors are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(scenarioID, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	L, ok := m.states[scenarioID]
	if !ok {
		L = m.states[globalKey]
	}
	m.mu.RUnlock()

	if L == nil {
		m.logger.Info("scripting: no VM for scenario",
			zap.String("scenario", scenarioID),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("scenario", scenarioID),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}
