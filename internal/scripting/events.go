package scripting

import (
	lua "github.com/yuin/gopher-lua"
)

// HookSink adapts a Manager to the world's event sink: each world event
// "name" dispatches to the Lua global "on_name" with a table of the
// event's integer details. Hook errors never propagate into game flow.
type HookSink struct {
	manager  *Manager
	scenario string
}

// NewHookSink creates a sink dispatching into scenario's VM.
//
// Precondition: manager must be non-nil; scenario must be non-empty.
func NewHookSink(manager *Manager, scenario string) *HookSink {
	if manager == nil {
		panic("scripting: NewHookSink precondition violated: manager must be non-nil")
	}
	if scenario == "" {
		panic("scripting: NewHookSink precondition violated: scenario must be non-empty")
	}
	return &HookSink{manager: manager, scenario: scenario}
}

// WorldEvent implements world.EventSink.
func (s *HookSink) WorldEvent(name string, detail map[string]int) {
	m := s.manager

	m.mu.RLock()
	L, ok := m.states[s.scenario]
	if !ok {
		L = m.states[globalKey]
	}
	m.mu.RUnlock()
	if L == nil {
		return
	}

	tbl := L.NewTable()
	for k, v := range detail {
		L.SetField(tbl, k, lua.LNumber(v))
	}
	_, _ = m.CallHook(s.scenario, "on_"+name, tbl)
}
