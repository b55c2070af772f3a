package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/config"
	"github.com/cory-johannsen/charter/internal/frontend/telnet"
	"github.com/cory-johannsen/charter/internal/game/action"
	"github.com/cory-johannsen/charter/internal/game/dice"
	"github.com/cory-johannsen/charter/internal/game/effect"
	"github.com/cory-johannsen/charter/internal/game/minister"
	"github.com/cory-johannsen/charter/internal/game/notification"
	"github.com/cory-johannsen/charter/internal/game/session"
	"github.com/cory-johannsen/charter/internal/game/world"
	"github.com/cory-johannsen/charter/internal/narrative"
	"github.com/cory-johannsen/charter/internal/scripting"
	"github.com/cory-johannsen/charter/internal/storage/postgres"
)

// CampaignStore defines the campaign persistence operations required by GameHandler.
type CampaignStore interface {
	Create(ctx context.Context, accountID int64, name, scenario string, snap world.Snapshot) (*postgres.Campaign, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*postgres.Campaign, error)
	Load(ctx context.Context, id int64) (*postgres.Campaign, world.Snapshot, error)
	SaveSnapshot(ctx context.Context, id int64, snap world.Snapshot) error
	Delete(ctx context.Context, id int64) error
}

// AuditStore defines the roll history operations required by GameHandler.
type AuditStore interface {
	Record(ctx context.Context, rec postgres.RollRecord) (int64, error)
	CorruptionTotal(ctx context.Context, campaignID int64) (int, error)
}

// Lua scripts abort after this many VM instructions.
const scriptInstructionLimit = 250_000

// GameHandler owns the campaign menu and the in-game command loop for
// one Telnet server. Sessions share its stores; each connection gets
// its own world, engine, and notification queue.
type GameHandler struct {
	campaigns CampaignStore
	audit     AuditStore
	sessions  *session.Manager
	specs     *action.Registry
	src       dice.Source
	narrator  *narrative.Writer
	cfg       config.GameConfig
	logger    *zap.Logger
}

// NewGameHandler creates a GameHandler.
//
// Precondition: all arguments must be non-nil; cfg must be validated.
func NewGameHandler(
	campaigns CampaignStore,
	audit AuditStore,
	sessions *session.Manager,
	specs *action.Registry,
	src dice.Source,
	narrator *narrative.Writer,
	cfg config.GameConfig,
	logger *zap.Logger,
) *GameHandler {
	if campaigns == nil || audit == nil || sessions == nil || specs == nil || src == nil || narrator == nil || logger == nil {
		panic("handlers: NewGameHandler precondition violated: all arguments must be non-nil")
	}
	return &GameHandler{
		campaigns: campaigns,
		audit:     audit,
		sessions:  sessions,
		specs:     specs,
		src:       src,
		narrator:  narrator,
		cfg:       cfg,
		logger:    logger,
	}
}

// CampaignMenu runs the post-login campaign selection loop.
//
// Postcondition: Returns nil on clean logout or quit, or an error if
// the connection failed.
func (h *GameHandler) CampaignMenu(ctx context.Context, conn *telnet.Conn, acct postgres.Account) error {
	_ = conn.WriteLine("")
	_ = conn.WriteLine(telnet.Colorize(telnet.BrightWhite, "Your campaigns:"))
	if err := h.listCampaigns(ctx, conn, acct); err != nil {
		return err
	}
	h.showMenuHelp(conn)

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
			return ctx.Err()
		default:
		}

		if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, "charter> ")); err != nil {
			return err
		}
		line, err := conn.ReadLine()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "quit", "exit", "logout":
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "Goodbye!"))
			return nil

		case "list":
			if err := h.listCampaigns(ctx, conn, acct); err != nil {
				return err
			}

		case "new":
			if len(args) == 0 {
				_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: new <name> [scenario-file]"))
				continue
			}
			scenario := h.cfg.DefaultScenario
			name := strings.Join(args, " ")
			if len(args) > 1 && strings.HasSuffix(args[len(args)-1], ".yaml") {
				scenario = args[len(args)-1]
				name = strings.Join(args[:len(args)-1], " ")
			}
			if err := h.newCampaign(ctx, conn, acct, name, scenario); err != nil {
				return err
			}

		case "load":
			if len(args) == 0 {
				_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: load <name>"))
				continue
			}
			if err := h.loadCampaign(ctx, conn, acct, strings.Join(args, " ")); err != nil {
				return err
			}

		case "delete":
			if len(args) == 0 {
				_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: delete <name>"))
				continue
			}
			h.deleteCampaign(ctx, conn, acct, strings.Join(args, " "))

		case "help":
			h.showMenuHelp(conn)

		default:
			_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Unknown command: %s. Type 'help' for available commands.", cmd))
		}
	}
}

func (h *GameHandler) showMenuHelp(conn *telnet.Conn) {
	help := telnet.Colorize(telnet.BrightWhite, "Campaign commands:") + "\r\n" +
		telnet.Colorize(telnet.Green, "  list") + "                     — List your campaigns\r\n" +
		telnet.Colorize(telnet.Green, "  new <name> [scenario]") + "    — Found a new charter\r\n" +
		telnet.Colorize(telnet.Green, "  load <name>") + "              — Resume a campaign\r\n" +
		telnet.Colorize(telnet.Green, "  delete <name>") + "            — Abandon a campaign\r\n" +
		telnet.Colorize(telnet.Green, "  quit") + "                     — Disconnect\r\n"
	_ = conn.Write([]byte(help))
}

func (h *GameHandler) listCampaigns(ctx context.Context, conn *telnet.Conn, acct postgres.Account) error {
	camps, err := h.campaigns.ListByAccount(ctx, acct.ID)
	if err != nil {
		h.logger.Error("listing campaigns", zap.Error(err), zap.Int64("account_id", acct.ID))
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Could not list campaigns."))
	}
	if len(camps) == 0 {
		return conn.WriteLine(telnet.Colorize(telnet.Yellow, "  (none yet; use 'new <name>' to found one)"))
	}
	for _, c := range camps {
		if err := conn.WriteLine(telnet.Colorf(telnet.Cyan,
			"  %s — turn %d (%s)", c.Name, c.Turn, c.Scenario)); err != nil {
			return err
		}
	}
	return nil
}

func (h *GameHandler) findCampaign(ctx context.Context, acct postgres.Account, name string) (*postgres.Campaign, error) {
	camps, err := h.campaigns.ListByAccount(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range camps {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, postgres.ErrCampaignNotFound
}

func (h *GameHandler) newCampaign(ctx context.Context, conn *telnet.Conn, acct postgres.Account, name, scenarioFile string) error {
	scn, err := world.LoadScenario(filepath.Join(h.cfg.ScenarioDir, scenarioFile))
	if err != nil {
		h.logger.Error("loading scenario", zap.String("file", scenarioFile), zap.Error(err))
		return conn.WriteLine(telnet.Colorf(telnet.Red, "Could not load scenario %q.", scenarioFile))
	}
	w, err := scn.Build()
	if err != nil {
		h.logger.Error("building scenario world", zap.String("file", scenarioFile), zap.Error(err))
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Scenario is invalid."))
	}

	camp, err := h.campaigns.Create(ctx, acct.ID, name, scenarioFile, w.Snapshot())
	if err != nil {
		if errors.Is(err, postgres.ErrCampaignNameTaken) {
			return conn.WriteLine(telnet.Colorize(telnet.Red, "You already have a campaign by that name."))
		}
		h.logger.Error("creating campaign", zap.Error(err))
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Could not create the campaign."))
	}

	_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen, "Charter founded: %s (%s).", camp.Name, scn.Name))
	if scn.Description != "" {
		_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, scn.Description))
	}
	return h.runCampaign(ctx, conn, acct, camp, w.Snapshot())
}

func (h *GameHandler) loadCampaign(ctx context.Context, conn *telnet.Conn, acct postgres.Account, name string) error {
	camp, err := h.findCampaign(ctx, acct, name)
	if err != nil {
		if errors.Is(err, postgres.ErrCampaignNotFound) {
			return conn.WriteLine(telnet.Colorf(telnet.Red, "No campaign named %q.", name))
		}
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Could not load the campaign."))
	}
	camp, snap, err := h.campaigns.Load(ctx, camp.ID)
	if err != nil {
		h.logger.Error("loading campaign", zap.Error(err), zap.Int64("campaign_id", camp.ID))
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Could not load the campaign."))
	}
	return h.runCampaign(ctx, conn, acct, camp, snap)
}

func (h *GameHandler) deleteCampaign(ctx context.Context, conn *telnet.Conn, acct postgres.Account, name string) {
	camp, err := h.findCampaign(ctx, acct, name)
	if err != nil {
		_ = conn.WriteLine(telnet.Colorf(telnet.Red, "No campaign named %q.", name))
		return
	}
	if _, open := h.sessions.Get(camp.ID); open {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "That campaign is currently open."))
		return
	}
	if err := h.campaigns.Delete(ctx, camp.ID); err != nil {
		h.logger.Error("deleting campaign", zap.Error(err), zap.Int64("campaign_id", camp.ID))
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Could not delete the campaign."))
		return
	}
	_ = conn.WriteLine(telnet.Colorf(telnet.Yellow, "Campaign %q abandoned.", camp.Name))
}

// buildSession wires a live game from a campaign snapshot.
func (h *GameHandler) buildSession(acct postgres.Account, camp *postgres.Campaign, snap world.Snapshot) (*session.Session, error) {
	w, err := world.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("restoring campaign %d: %w", camp.ID, err)
	}

	notifier := notification.NewSequencer()
	svc := minister.NewService(w.Cabinet, h.src, h.logger)
	engine := action.NewEngine(w, notifier, svc, h.specs, h.logger, h.cfg.DieSize)
	effect.NewAppliers(h.src, h.logger).RegisterAll(engine)

	sess := &session.Session{
		CampaignID:   camp.ID,
		AccountID:    acct.ID,
		Username:     acct.Username,
		CampaignName: camp.Name,
		ScenarioFile: camp.Scenario,
		World:        w,
		Engine:       engine,
		Notifier:     notifier,
	}
	h.attachScripts(sess)
	return sess, nil
}

// attachScripts loads the scenario's Lua hooks, if it declares any.
// Script failures never block play; the hooks simply stay unwired.
func (h *GameHandler) attachScripts(sess *session.Session) {
	scn, err := world.LoadScenario(filepath.Join(h.cfg.ScenarioDir, sess.ScenarioFile))
	if err != nil {
		h.logger.Warn("scenario file unavailable, hooks disabled",
			zap.String("file", sess.ScenarioFile), zap.Error(err))
		return
	}
	if scn.ScriptDir == "" {
		return
	}

	key := strings.TrimSuffix(sess.ScenarioFile, filepath.Ext(sess.ScenarioFile))
	mgr := scripting.NewManager(dice.NewLoggedRoller(h.src, h.logger), h.logger)
	w, notifier := sess.World, sess.Notifier
	mgr.ChangeMoney = func(amount int, reason string) { w.Ledger.Change(amount, reason) }
	mgr.ChangeOpinion = func(delta int) { w.Opinion.Change(delta) }
	mgr.RaiseAggressiveness = func(village string, delta int) {
		if v, ok := w.Village(village); ok {
			v.RaiseAggressiveness(delta)
		}
	}
	mgr.Notify = func(text string) { notifier.Display(notification.Entry{Text: text}) }

	if err := mgr.LoadScenario(key, filepath.Join(h.cfg.ScenarioDir, scn.ScriptDir), scriptInstructionLimit); err != nil {
		h.logger.Warn("loading scenario scripts failed, hooks disabled",
			zap.String("scenario", key), zap.Error(err))
		return
	}
	sess.Scripts = mgr
	w.Events = scripting.NewHookSink(mgr, key)
}

// runCampaign opens the session and runs the in-game command loop.
func (h *GameHandler) runCampaign(ctx context.Context, conn *telnet.Conn, acct postgres.Account, camp *postgres.Campaign, snap world.Snapshot) error {
	sess, err := h.buildSession(acct, camp, snap)
	if err != nil {
		h.logger.Error("building session", zap.Error(err))
		return conn.WriteLine(telnet.Colorize(telnet.Red, "The campaign state could not be restored."))
	}
	if err := h.sessions.Open(sess); err != nil {
		return conn.WriteLine(telnet.Colorize(telnet.Red, "That campaign is already open on another connection."))
	}
	defer func() {
		if err := h.sessions.Close(sess.CampaignID); err != nil {
			h.logger.Error("closing session", zap.Error(err))
		}
	}()

	h.logger.Info("campaign opened",
		zap.String("username", acct.Username),
		zap.Int64("campaign_id", sess.CampaignID),
		zap.String("campaign", sess.CampaignName),
		zap.Int("turn", sess.World.Turn),
	)

	_ = conn.WriteLine("")
	_ = conn.Write([]byte(renderStatus(sess.World)))
	_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Type 'help' for the list of commands."))

	for {
		select {
		case <-ctx.Done():
			h.save(ctx, conn, sess, true)
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Campaign saved."))
			return ctx.Err()
		default:
		}

		prompt := telnet.Colorf(telnet.BrightWhite, "[turn %d] ", sess.World.Turn)
		if err := conn.WritePrompt(prompt); err != nil {
			return err
		}
		line, err := conn.ReadLine()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "quit", "exit":
			h.save(ctx, conn, sess, true)
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "The campaign is saved. Goodbye!"))
			return nil

		case "status":
			_ = conn.Write([]byte(renderStatus(sess.World)))

		case "units":
			_ = conn.Write([]byte(renderUnits(sess.World)))

		case "villages":
			_ = conn.Write([]byte(renderVillages(sess.World)))

		case "actions":
			if err := h.showActions(conn, sess, strings.Join(args, " ")); err != nil {
				return err
			}

		case "do":
			if len(args) < 2 {
				_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: do <action-id> <unit name>"))
				continue
			}
			if err := h.doAction(ctx, conn, sess, args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}

		case "end":
			if err := h.endTurn(ctx, conn, sess); err != nil {
				return err
			}

		case "save":
			h.save(ctx, conn, sess, false)

		case "help":
			h.showGameHelp(conn)

		default:
			_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Unknown command: %s. Type 'help' for available commands.", cmd))
		}
	}
}

func (h *GameHandler) showGameHelp(conn *telnet.Conn) {
	help := telnet.Colorize(telnet.BrightWhite, "Game commands:") + "\r\n" +
		telnet.Colorize(telnet.Green, "  status") + "                   — Colony overview\r\n" +
		telnet.Colorize(telnet.Green, "  units") + "                    — Your officers and work groups\r\n" +
		telnet.Colorize(telnet.Green, "  villages") + "                 — Known villages\r\n" +
		telnet.Colorize(telnet.Green, "  actions <unit>") + "           — Actions the unit can attempt\r\n" +
		telnet.Colorize(telnet.Green, "  do <action> <unit>") + "       — Attempt an action\r\n" +
		telnet.Colorize(telnet.Green, "  end") + "                      — End the turn\r\n" +
		telnet.Colorize(telnet.Green, "  save") + "                     — Save the campaign\r\n" +
		telnet.Colorize(telnet.Green, "  quit") + "                     — Save and return to the menu\r\n"
	_ = conn.Write([]byte(help))
}

func (h *GameHandler) showActions(conn *telnet.Conn, sess *session.Session, unitName string) error {
	if unitName == "" {
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: actions <unit name>"))
	}
	u, ok := sess.World.Units.ByName(unitName)
	if !ok {
		return conn.WriteLine(telnet.Colorf(telnet.Red, "No unit named %q.", unitName))
	}

	shown := 0
	for _, spec := range h.specs.All() {
		if !sess.Engine.CanShow(spec.ID, u) {
			continue
		}
		shown++
		if err := conn.WriteLine(telnet.Colorf(telnet.Cyan, "  %s", spec.ID)); err != nil {
			return err
		}
		for _, line := range sess.Engine.Tooltip(spec.ID, u) {
			if err := conn.WriteLine("      " + line); err != nil {
				return err
			}
		}
	}
	if shown == 0 {
		return conn.WriteLine(telnet.Colorf(telnet.Yellow, "%s has no actions available here.", u.Name))
	}
	return nil
}

// doAction runs one action from click through effect application.
func (h *GameHandler) doAction(ctx context.Context, conn *telnet.Conn, sess *session.Session, actionID, unitName string) error {
	u, ok := sess.World.Units.ByName(unitName)
	if !ok {
		return conn.WriteLine(telnet.Colorf(telnet.Red, "No unit named %q.", unitName))
	}

	m, err := sess.Engine.OnClick(actionID, u.ID)
	if err != nil {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, describeActionError(err)))
		return h.flushQueue(conn, sess.Notifier)
	}

	// The confirmation entry is at the front of the queue.
	if entry, ok := sess.Notifier.Front(); ok {
		if err := conn.WriteLine(telnet.Colorize(telnet.BrightWhite, entry.Text)); err != nil {
			return err
		}
	}
	if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, "(yes/no) ")); err != nil {
		return err
	}
	answer, err := conn.ReadLine()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	sess.Notifier.Advance()

	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "yes" && answer != "y" {
		if err := m.Cancel(); err != nil {
			h.logger.Error("cancelling action", zap.Error(err))
		}
		return conn.WriteLine(telnet.Colorize(telnet.Yellow, "The attempt is called off; nothing is spent."))
	}

	if err := m.Confirm(); err != nil {
		h.logger.Error("confirming action", zap.Error(err))
		return conn.WriteLine(telnet.Colorize(telnet.Red, "The attempt could not proceed."))
	}

	// Capture the roll before dismissal discards it.
	cctx := m.Context()
	h.recordRoll(ctx, sess, cctx)

	if err := h.drainQueue(conn, sess.Notifier); err != nil {
		return err
	}

	if h.narrator.Enabled() {
		report := h.narrator.Generate(ctx, narrative.Dispatch{
			Turn:       sess.World.Turn,
			ActorName:  cctx.Actor.Name,
			ActionName: cctx.Spec.Name,
			Location:   cctx.Actor.Location,
			Outcome:    cctx.FinalOutcome,
			FinalFace:  cctx.FinalResult,
		})
		if err := conn.WriteLine(telnet.Colorize(telnet.Magenta, report)); err != nil {
			return err
		}
	}
	return nil
}

// recordRoll persists the resolved roll to the audit log. Failures are
// logged and swallowed; the game must not stall on history writes.
func (h *GameHandler) recordRoll(ctx context.Context, sess *session.Session, cctx *action.Context) {
	faces := make([]int32, len(cctx.Results))
	for i, f := range cctx.Results {
		faces[i] = int32(f)
	}
	_, err := h.audit.Record(ctx, postgres.RollRecord{
		CampaignID: sess.CampaignID,
		Turn:       sess.World.Turn,
		ActionType: cctx.Spec.ID,
		ActorName:  cctx.Actor.Name,
		Faces:      faces,
		FinalFace:  cctx.FinalResult,
		Outcome:    cctx.FinalOutcome.String(),
		Corrupt:    cctx.Corrupt,
		Cost:       cctx.Cost,
	})
	if err != nil {
		h.logger.Error("recording roll",
			zap.Error(err),
			zap.Int64("campaign_id", sess.CampaignID),
			zap.String("action", cctx.Spec.ID),
		)
	}
}

// drainQueue walks the player through every queued notification,
// advancing on enter. Advancing the final entry fires the effect
// applier, so new entries may appear while draining.
func (h *GameHandler) drainQueue(conn *telnet.Conn, notifier *notification.Sequencer) error {
	for {
		entry, ok := notifier.Front()
		if !ok {
			return nil
		}
		text := entry.Text
		if entry.DiceCount > 0 {
			text = fmt.Sprintf("%s  %s", text,
				telnet.Colorf(telnet.BrightYellow, "[rolling %d]", entry.DiceCount))
		}
		if err := conn.WriteLine(text); err != nil {
			return err
		}
		if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, "(enter) ")); err != nil {
			return err
		}
		if _, err := conn.ReadLine(); err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		notifier.Advance()
	}
}

// flushQueue prints and discards all queued notifications without
// waiting for input.
func (h *GameHandler) flushQueue(conn *telnet.Conn, notifier *notification.Sequencer) error {
	for {
		entry, ok := notifier.Advance()
		if !ok {
			return nil
		}
		if err := conn.WriteLine(entry.Text); err != nil {
			return err
		}
	}
}

func (h *GameHandler) endTurn(ctx context.Context, conn *telnet.Conn, sess *session.Session) error {
	if id, ongoing := sess.Engine.Tracker().Ongoing(); ongoing {
		return conn.WriteLine(telnet.Colorf(telnet.Red, "Cannot end the turn: %s is still being resolved.", id))
	}

	sess.World.EndTurn()
	if err := h.flushQueue(conn, sess.Notifier); err != nil {
		return err
	}

	h.save(ctx, conn, sess, true)
	return conn.WriteLine(telnet.Colorf(telnet.BrightGreen,
		"Turn %d begins. Movement restored, prices reset.", sess.World.Turn))
}

// save persists the campaign snapshot. When quiet is true, only
// failures are reported to the player.
func (h *GameHandler) save(ctx context.Context, conn *telnet.Conn, sess *session.Session, quiet bool) {
	if id, ongoing := sess.Engine.Tracker().Ongoing(); ongoing {
		_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Cannot save: %s is still being resolved.", id))
		return
	}
	if err := h.campaigns.SaveSnapshot(ctx, sess.CampaignID, sess.World.Snapshot()); err != nil {
		h.logger.Error("saving campaign",
			zap.Error(err),
			zap.Int64("campaign_id", sess.CampaignID),
		)
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "The campaign could not be saved."))
		return
	}
	if !quiet {
		_ = conn.WriteLine(telnet.Colorize(telnet.BrightGreen, "Campaign saved."))
	}
}

// describeActionError maps engine sentinels to player-facing copy.
func describeActionError(err error) string {
	switch {
	case errors.Is(err, action.ErrUnknownAction):
		return "No such action."
	case errors.Is(err, action.ErrUnknownUnit):
		return "That unit is not in your service."
	case errors.Is(err, action.ErrActionOngoing):
		return "Another action is still being resolved."
	case errors.Is(err, action.ErrNoMovement):
		return "That unit has already acted this turn."
	case errors.Is(err, action.ErrInsufficientFunds):
		return "The treasury cannot cover the cost."
	case errors.Is(err, action.ErrMinistersUnappointed):
		return "Every cabinet seat must be filled before actions can be attempted."
	case errors.Is(err, action.ErrMissingCapability):
		return "That unit is not suited to this work."
	case errors.Is(err, action.ErrWrongVenue):
		return "That action cannot be attempted from here."
	case errors.Is(err, action.ErrEmptyVillage):
		return "The village is deserted."
	case errors.Is(err, action.ErrNoConsumerGoods):
		return "There are no trade goods in the warehouse."
	case errors.Is(err, action.ErrSlaveTradeEnded):
		return "The slave trade has ended; that work is finished."
	case errors.Is(err, action.ErrImpossibleRoll):
		return "The odds are impossible; the attempt is refused."
	default:
		return "The action could not be started."
	}
}
