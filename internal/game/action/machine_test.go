package action

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/game/minister"
	"github.com/cory-johannsen/charter/internal/game/notification"
	"github.com/cory-johannsen/charter/internal/game/unit"
	"github.com/cory-johannsen/charter/internal/game/world"
)

func tradeSpec() *Spec {
	return &Spec{
		ID:       "trade",
		Name:     "Trade",
		Position: string(minister.PositionTrade),
		Cost:     10,
		Thresholds: Thresholds{
			MinSuccess:     4,
			MinCritSuccess: 6,
			MaxCritFail:    1,
		},
		Requires: Requirements{
			Capability: unit.CapTrade,
			Venue:      VenueVillage,
		},
		Copy: Copy{
			Confirm: "Open trade with the village?",
			PreRoll: "The goods are laid out.",
			Rolling: "The village elders deliberate...",
			Success: "A trade route is established.",
			Failure: "The elders are not interested.",
		},
	}
}

func campaignSpec() *Spec {
	return &Spec{
		ID:       "public_relations_campaign",
		Name:     "Public Relations Campaign",
		Position: string(minister.PositionInterior),
		Cost:     20,
		Thresholds: Thresholds{
			MinSuccess:     4,
			MinCritSuccess: 6,
			MaxCritFail:    1,
		},
		Requires: Requirements{Venue: VenueEurope},
		Copy: Copy{
			Confirm: "Launch the campaign?",
			Success: "The papers print favourable columns.",
			Failure: "The campaign falls flat.",
		},
	}
}

func fullCabinet(t *testing.T, w *world.World) {
	t.Helper()
	for _, p := range minister.AllPositions {
		require.NoError(t, w.Cabinet.Appoint(&minister.Minister{
			Name:     "minister of " + string(p),
			Position: p,
		}))
	}
}

type fixture struct {
	engine   *Engine
	world    *world.World
	notifier *notification.Sequencer
	rolls    *minister.Scripted
	actor    *unit.Unit
}

// newFixture builds an engine with a funded world, a full cabinet, one
// village, and a trade-capable officer standing in that village.
func newFixture(t *testing.T, faces []int, corrupt bool) *fixture {
	t.Helper()

	w := world.New(100, 50, 10)
	fullCabinet(t, w)
	require.NoError(t, w.AddVillage(world.NewVillage("mbanza", 12, 4)))

	actor := unit.New("da cunha", unit.KindOfficer, "mbanza", 1, unit.CapTrade)
	w.Units.Add(actor)

	notifier := notification.NewSequencer()
	rolls := &minister.Scripted{Faces: faces, Corrupt: corrupt}
	specs := NewRegistry()
	specs.Register(tradeSpec())
	specs.Register(campaignSpec())

	engine := NewEngine(w, notifier, rolls, specs, zap.NewNop(), 6)
	return &fixture{engine: engine, world: w, notifier: notifier, rolls: rolls, actor: actor}
}

func runToCompletion(t *testing.T, f *fixture, m *Machine) {
	t.Helper()
	require.NoError(t, m.Confirm())
	for f.notifier.Len() > 0 {
		f.notifier.Advance()
	}
}

func TestEngine_OnClickUnknowns(t *testing.T) {
	f := newFixture(t, nil, false)

	_, err := f.engine.OnClick("sell_muskets", f.actor.ID)
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = f.engine.OnClick("trade", "no-such-unit")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestEngine_PreconditionOrder(t *testing.T) {
	f := newFixture(t, nil, false)
	id := f.actor.ID

	// The ongoing-action check fires before everything else.
	f.actor.MovementPoints = 0
	require.True(t, f.engine.Tracker().Begin("explore"))
	_, err := f.engine.OnClick("trade", id)
	assert.ErrorIs(t, err, ErrActionOngoing)
	f.engine.Tracker().Clear()

	// Then movement.
	_, err = f.engine.OnClick("trade", id)
	assert.ErrorIs(t, err, ErrNoMovement)
	f.actor.RestoreMovement()

	// Then money.
	f.world.Ledger.Change(-f.world.Ledger.Get(), "drain for test")
	_, err = f.engine.OnClick("trade", id)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	f.world.Ledger.Change(100, "refund for test")

	// Then the cabinet.
	empty := world.New(100, 50, 10)
	empty.Units.Add(f.actor)
	require.NoError(t, empty.AddVillage(world.NewVillage("mbanza", 12, 4)))
	specs := NewRegistry()
	specs.Register(tradeSpec())
	bare := NewEngine(empty, notification.NewSequencer(), f.rolls, specs, zap.NewNop(), 6)
	_, err = bare.OnClick("trade", id)
	assert.ErrorIs(t, err, ErrMinistersUnappointed)
}

func TestEngine_VenueAndCapabilityChecks(t *testing.T) {
	f := newFixture(t, nil, false)
	id := f.actor.ID

	// A Europe-only action refuses an actor in a village.
	_, err := f.engine.OnClick("public_relations_campaign", id)
	assert.ErrorIs(t, err, ErrWrongVenue)

	// A village action refuses an actor in Europe.
	f.actor.Location = unit.LocationEurope
	_, err = f.engine.OnClick("trade", id)
	assert.ErrorIs(t, err, ErrWrongVenue)
	f.actor.Location = "mbanza"

	// Capability gating.
	f.actor.Capabilities = map[string]bool{}
	_, err = f.engine.OnClick("trade", id)
	assert.ErrorIs(t, err, ErrMissingCapability)
}

func TestEngine_RejectionMutatesNothing(t *testing.T) {
	f := newFixture(t, nil, false)
	f.actor.Sentry = true
	f.actor.Location = unit.LocationEurope

	balance := f.world.Ledger.Get()
	_, err := f.engine.OnClick("trade", f.actor.ID)
	require.ErrorIs(t, err, ErrWrongVenue)

	assert.Equal(t, balance, f.world.Ledger.Get())
	assert.Equal(t, 1, f.actor.MovementPoints)
	assert.True(t, f.actor.Sentry, "sentry clears only when the action starts")
	_, held := f.engine.Tracker().Ongoing()
	assert.False(t, held)
}

func TestMachine_SuccessFlow(t *testing.T) {
	f := newFixture(t, []int{5}, false)

	var applied *Context
	f.engine.RegisterApplier("trade", func(ctx *Context) { applied = ctx })

	m, err := f.engine.OnClick("trade", f.actor.ID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingConfirmation, m.State())
	assert.False(t, f.actor.Sentry)

	front, ok := f.notifier.Front()
	require.True(t, ok)
	assert.Contains(t, front.Text, "Open trade with the village?")
	assert.Contains(t, front.Text, "risk is MODERATE")
	f.notifier.Advance()

	require.NoError(t, m.Confirm())
	assert.Equal(t, StateAwaitingDismissal, m.State())

	// Roll-time charges: movement, money, and the per-turn price.
	assert.Equal(t, 0, f.actor.MovementPoints)
	assert.Equal(t, 90, f.world.Ledger.Get())
	assert.Equal(t, 20, f.world.Prices.Current("trade"), "price doubles for the next attempt")

	// Queue order: preroll, rolling, result narration, continue.
	e, _ := f.notifier.Advance()
	assert.Equal(t, "The goods are laid out.", e.Text)
	e, _ = f.notifier.Advance()
	assert.Equal(t, "The village elders deliberate...", e.Text)
	assert.Equal(t, 1, e.DiceCount)
	e, _ = f.notifier.Advance()
	assert.Contains(t, e.Text, "Die 1 reads 5: success")
	assert.Contains(t, e.Text, "A trade route is established.")

	// Effects apply only when the final entry is dismissed.
	assert.Nil(t, applied)
	_, held := f.engine.Tracker().Ongoing()
	assert.True(t, held, "lock persists until dismissal")

	_, ok = f.notifier.Advance()
	require.True(t, ok)
	require.NotNil(t, applied)
	assert.Equal(t, Success, applied.FinalOutcome)
	assert.Equal(t, 5, applied.FinalResult)
	assert.Equal(t, 10, applied.Cost, "applier sees the price actually paid")

	_, held = f.engine.Tracker().Ongoing()
	assert.False(t, held, "lock releases after effects")
	_, inFlight := f.engine.Current()
	assert.False(t, inFlight)
	assert.Equal(t, StateIdle, m.State())
}

func TestMachine_VeteranKeepsHigherOfTwo(t *testing.T) {
	f := newFixture(t, []int{2, 5}, false)
	f.actor.Promote()

	var applied *Context
	f.engine.RegisterApplier("trade", func(ctx *Context) { applied = ctx })

	m, err := f.engine.OnClick("trade", f.actor.ID)
	require.NoError(t, err)
	runToCompletion(t, f, m)

	require.NotNil(t, applied)
	assert.Equal(t, []int{2, 5}, applied.Results)
	assert.Equal(t, 5, applied.FinalResult)
	assert.Equal(t, Success, applied.FinalOutcome)
	assert.Equal(t, []Outcome{Failure, Success}, applied.Outcomes)
}

func TestMachine_CostEscalationWithinTurn(t *testing.T) {
	f := newFixture(t, []int{3, 3, 3}, false)
	f.engine.RegisterApplier("trade", func(*Context) {})
	id := f.actor.ID

	for attempt, wantCost := range []int{10, 20, 40} {
		f.actor.RestoreMovement()
		m, err := f.engine.OnClick("trade", id)
		require.NoError(t, err, "attempt %d", attempt+1)
		assert.Equal(t, wantCost, m.Context().Cost)
		runToCompletion(t, f, m)
	}
	assert.Equal(t, 100-10-20-40, f.world.Ledger.Get())

	// Prices reset at the turn boundary.
	f.world.EndTurn()
	assert.Equal(t, 10, f.world.Prices.Current("trade"))
}

// TestEngine_CostEscalationSurvivesReload: building an engine on a
// world restored mid-turn must not reset escalated prices to base.
func TestEngine_CostEscalationSurvivesReload(t *testing.T) {
	f := newFixture(t, nil, false)
	f.world.Prices.Double("trade")
	require.Equal(t, 20, f.world.Prices.Current("trade"))

	restored, err := world.FromSnapshot(f.world.Snapshot())
	require.NoError(t, err)

	specs := NewRegistry()
	specs.Register(tradeSpec())
	specs.Register(campaignSpec())
	NewEngine(restored, notification.NewSequencer(), &minister.Scripted{}, specs, zap.NewNop(), 6)

	assert.Equal(t, 20, restored.Prices.Current("trade"), "escalated price survives save and reload")
	assert.Equal(t, 20, restored.Prices.Current("public_relations_campaign"), "unescalated price stays at base")
}

// narratingSource queues a narration while the dice are rolling, the
// way a script hook firing mid-roll would.
type narratingSource struct {
	*minister.Scripted
	notifier *notification.Sequencer
}

func (n *narratingSource) RollSeries(req minister.SeriesRequest) minister.Series {
	n.notifier.Display(notification.Entry{Text: "A ledger discrepancy is whispered about."})
	return n.Scripted.RollSeries(req)
}

func indexContaining(entries []string, substr string) int {
	for i, e := range entries {
		if strings.Contains(e, substr) {
			return i
		}
	}
	return -1
}

// TestMachine_ResultNarrationPrecedesContinue: narration queued during
// the roll bracket is deferred, and the roll result still lands before
// the continue entry whose dismissal applies effects.
func TestMachine_ResultNarrationPrecedesContinue(t *testing.T) {
	w := world.New(100, 50, 10)
	fullCabinet(t, w)
	require.NoError(t, w.AddVillage(world.NewVillage("mbanza", 12, 4)))
	actor := unit.New("da cunha", unit.KindOfficer, "mbanza", 1, unit.CapTrade)
	w.Units.Add(actor)

	notifier := notification.NewSequencer()
	rolls := &narratingSource{Scripted: &minister.Scripted{Faces: []int{5}}, notifier: notifier}
	specs := NewRegistry()
	specs.Register(tradeSpec())
	engine := NewEngine(w, notifier, rolls, specs, zap.NewNop(), 6)
	engine.RegisterApplier("trade", func(*Context) {})

	m, err := engine.OnClick("trade", actor.ID)
	require.NoError(t, err)
	require.NoError(t, m.Confirm())

	var texts []string
	for {
		e, ok := notifier.Advance()
		if !ok {
			break
		}
		texts = append(texts, e.Text)
	}

	resultAt := indexContaining(texts, "Die 1 reads")
	continueAt := indexContaining(texts, "Click to continue")
	whisperAt := indexContaining(texts, "whispered")
	require.GreaterOrEqual(t, resultAt, 0)
	require.GreaterOrEqual(t, whisperAt, 0)
	assert.Less(t, resultAt, continueAt, "result narration precedes the continue entry")
	assert.Greater(t, whisperAt, resultAt, "mid-roll narration lands after the dice finish")
}

func TestMachine_FailureStillCharges(t *testing.T) {
	f := newFixture(t, []int{2}, false)
	f.engine.RegisterApplier("trade", func(*Context) {})

	m, err := f.engine.OnClick("trade", f.actor.ID)
	require.NoError(t, err)
	runToCompletion(t, f, m)

	assert.Equal(t, 90, f.world.Ledger.Get(), "the cost is sunk at roll time")
	assert.Equal(t, 20, f.world.Prices.Current("trade"))
}

func TestMachine_ImpossibleRollBlocksBeforeCharges(t *testing.T) {
	f := newFixture(t, nil, false)
	f.actor.Sentry = true
	f.engine.RegisterModifier("trade", func(*world.World, *unit.Unit, *world.Village) int {
		return -3 // MinSuccess 4 -> 7, above a d6
	})

	_, err := f.engine.OnClick("trade", f.actor.ID)
	assert.ErrorIs(t, err, ErrImpossibleRoll)

	assert.Equal(t, 100, f.world.Ledger.Get())
	assert.Equal(t, 1, f.actor.MovementPoints)
	assert.Equal(t, 10, f.world.Prices.Current("trade"))
	assert.True(t, f.actor.Sentry, "a refused attempt leaves the unit on watch")
	_, held := f.engine.Tracker().Ongoing()
	assert.False(t, held)

	// The player is told why.
	e, ok := f.notifier.Front()
	require.True(t, ok)
	assert.Contains(t, e.Text, "cannot possibly succeed")
}

func TestMachine_ModifierEasesThresholds(t *testing.T) {
	f := newFixture(t, []int{3}, false)
	f.engine.RegisterModifier("trade", func(*world.World, *unit.Unit, *world.Village) int {
		return 1
	})

	var applied *Context
	f.engine.RegisterApplier("trade", func(ctx *Context) { applied = ctx })

	m, err := f.engine.OnClick("trade", f.actor.ID)
	require.NoError(t, err)
	runToCompletion(t, f, m)

	require.NotNil(t, applied)
	assert.Equal(t, Success, applied.FinalOutcome, "a 3 succeeds at MinSuccess 3")
	assert.Equal(t, 3, applied.Thresholds.MinSuccess)
	assert.Equal(t, 0, applied.Thresholds.MaxCritFail)
}

func TestMachine_LockExcludesSecondAction(t *testing.T) {
	f := newFixture(t, []int{5}, false)
	f.engine.RegisterApplier("trade", func(*Context) {})
	id := f.actor.ID

	second := unit.New("pires", unit.KindOfficer, "mbanza", 1, unit.CapTrade)
	f.world.Units.Add(second)

	m, err := f.engine.OnClick("trade", id)
	require.NoError(t, err)

	_, err = f.engine.OnClick("trade", second.ID)
	assert.ErrorIs(t, err, ErrActionOngoing)

	runToCompletion(t, f, m)

	// Once the first resolves, the second can go.
	f.rolls.Faces = append(f.rolls.Faces, 4)
	_, err = f.engine.OnClick("trade", second.ID)
	assert.NoError(t, err)
}

func TestMachine_CancelBeforeRollIsFree(t *testing.T) {
	f := newFixture(t, nil, false)

	m, err := f.engine.OnClick("trade", f.actor.ID)
	require.NoError(t, err)

	require.NoError(t, m.Cancel())
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 100, f.world.Ledger.Get())
	assert.Equal(t, 1, f.actor.MovementPoints)
	assert.Equal(t, 10, f.world.Prices.Current("trade"))
	_, held := f.engine.Tracker().Ongoing()
	assert.False(t, held)

	// The roll phase is past the point of no return.
	f.rolls.Faces = []int{5}
	f.engine.RegisterApplier("trade", func(*Context) {})
	m, err = f.engine.OnClick("trade", f.actor.ID)
	require.NoError(t, err)
	require.NoError(t, m.Confirm())
	assert.ErrorIs(t, m.Cancel(), ErrBadState)
}

func TestMachine_ConfirmRequiresAwaitingConfirmation(t *testing.T) {
	f := newFixture(t, []int{5}, false)
	f.engine.RegisterApplier("trade", func(*Context) {})

	m, err := f.engine.OnClick("trade", f.actor.ID)
	require.NoError(t, err)
	require.NoError(t, m.Confirm())
	assert.ErrorIs(t, m.Confirm(), ErrBadState)
}

func TestMachine_CorruptRollSurfacesInContext(t *testing.T) {
	f := newFixture(t, []int{2}, true)

	spec, _ := f.engine.specs.Get("trade")
	spec.SuppressWhenCorrupt = true

	var applied *Context
	var suppressed bool
	f.engine.RegisterApplier("trade", func(ctx *Context) {
		applied = ctx
		suppressed = ctx.Suppressed()
	})

	m, err := f.engine.OnClick("trade", f.actor.ID)
	require.NoError(t, err)
	runToCompletion(t, f, m)

	require.NotNil(t, applied)
	assert.True(t, applied.Corrupt)
	assert.True(t, suppressed)
	assert.Equal(t, Failure, applied.FinalOutcome)
}

func TestEngine_CanShow(t *testing.T) {
	f := newFixture(t, nil, false)

	assert.True(t, f.engine.CanShow("trade", f.actor))
	assert.False(t, f.engine.CanShow("public_relations_campaign", f.actor))

	f.actor.Location = unit.LocationEurope
	assert.False(t, f.engine.CanShow("trade", f.actor))
	assert.True(t, f.engine.CanShow("public_relations_campaign", f.actor))

	// Money and movement do not gate visibility.
	f.actor.MovementPoints = 0
	f.world.Ledger.Change(-f.world.Ledger.Get(), "drain for test")
	assert.True(t, f.engine.CanShow("public_relations_campaign", f.actor))

	assert.False(t, f.engine.CanShow("trade", nil))
	assert.False(t, f.engine.CanShow("missing", f.actor))
}

func TestEngine_Tooltip(t *testing.T) {
	f := newFixture(t, nil, false)
	f.actor.Promote()

	lines := f.engine.Tooltip("trade", f.actor)
	require.NotEmpty(t, lines)
	assert.Equal(t, "Trade", lines[0])
	assert.Contains(t, lines[1], "Costs 10 this turn")
	assert.Contains(t, lines[2], "LOW", "a veteran with no modifier is LOW risk")
	assert.Contains(t, lines[3], "two dice")

	assert.Nil(t, f.engine.Tooltip("missing", f.actor))
}
