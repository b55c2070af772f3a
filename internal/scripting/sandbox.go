// Package scripting provides a sandboxed GopherLua execution environment
// for scenario scripts: world events (turn starts, abolition, warrior
// attacks) dispatch to Lua hook functions that can nudge money, opinion,
// and village hostility. All game interactions are injected via Manager
// callback fields; the package has no dependency on game domain packages.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// script execution when no scenario-specific override is configured.
const DefaultInstructionLimit = 100_000

// strippedGlobals are removed after OpenBase: they reach the filesystem,
// the module loader, or the GC and have no place in scenario scripts.
var strippedGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// opcodeBudget is a context.Context whose Done() cancels itself once it has
// been called a fixed number of times. GopherLua's mainLoopWithContext calls
// Done() once per opcode, which turns the budget into an exact, deterministic
// instruction-count limit.
type opcodeBudget struct {
	context.Context
	cancel    context.CancelFunc
	remaining atomic.Int64
}

func newOpcodeBudget(limit int) *opcodeBudget {
	base, cancel := context.WithCancel(context.Background())
	b := &opcodeBudget{Context: base, cancel: cancel}
	b.remaining.Store(int64(limit))
	return b
}

// Done decrements the budget and fires the cancellation once it is spent.
// The Lua VM terminates on the next opcode boundary after that.
func (b *opcodeBudget) Done() <-chan struct{} {
	if b.remaining.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// NewSandboxedState creates a GopherLua LState with:
//   - Only safe stdlib loaded: base, table, string, math
//   - Dangerous globals removed: dofile, loadfile, load, collectgarbage, require
//   - Execution limited to at most instLimit Lua opcodes (deterministic)
//
// instLimit <= 0 uses DefaultInstructionLimit. The caller owns the LState
// and must call L.Close() when done; the state is ready for RegisterModules
// and DoFile.
func NewSandboxedState(instLimit int) *lua.LState {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range strippedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	// The budget cancels itself when spent; no explicit cancel call needed.
	L.SetContext(newOpcodeBudget(instLimit))

	return L
}
