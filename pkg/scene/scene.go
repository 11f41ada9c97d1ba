// Package scene wires the grid movement controller, trigger detector,
// dialogue gate, and choice menu into one reusable state machine,
// parameterized by map data and a trigger-handler table. Every map in
// the game runs on the same Scene; per-map behavior lives entirely in
// the world file.
package scene

import (
	"log/slog"
	"time"

	"github.com/jwebster45206/tilequest/internal/storage"
	"github.com/jwebster45206/tilequest/pkg/actor"
	"github.com/jwebster45206/tilequest/pkg/dialogue"
	"github.com/jwebster45206/tilequest/pkg/grid"
	"github.com/jwebster45206/tilequest/pkg/state"
	"github.com/jwebster45206/tilequest/pkg/world"
)

// TriggerHandler reacts to a fired trigger. Handlers run strictly
// after the move that fired them is committed, so they may open modal
// sessions or request transitions freely.
type TriggerHandler func(s *Scene, t *world.Trigger)

type menuKind int

const (
	menuNone menuKind = iota
	menuSaveSlots
	menuConfirmOverwrite
)

// Scene is the live state of one map: the player's mover, the trigger
// detector, and at most one active modal session. All methods run on
// the single frame-driven goroutine; no locking.
type Scene struct {
	World   *world.World
	Terrain *grid.Terrain
	State   *state.GameState

	store  storage.Storage
	logger *slog.Logger

	mover    *grid.Mover
	detector *world.Detector
	handlers map[world.TriggerType]TriggerHandler

	session *dialogue.Session
	menu    *dialogue.Menu
	menuUse menuKind

	levelUps []actor.LevelUp

	pendingBattle *world.Trigger
	transition    *state.Transition

	// save-menu bookkeeping
	pendingSaveSlot int
}

// New builds a scene for w, consuming the incoming game state bundle.
// Scripted unlocks whose flags are already set are applied to the
// terrain before play starts. Pending level-ups in the bundle are
// queued as overlays and cleared from the state.
func New(store storage.Storage, w *world.World, gs *state.GameState, logger *slog.Logger) *Scene {
	if gs == nil {
		gs = state.NewGameState("")
	}
	terrain := w.NewTerrain()
	for _, u := range w.Unlocks {
		if gs.Flag(u.Flag) {
			terrain.SetTile(u.Tile.X, u.Tile.Y, u.To)
		}
	}

	start := gs.Position
	if gs.Map != w.Name || !terrain.Walkable(start.X, start.Y) || w.NPCAt(start) != nil {
		start = w.HeroStart
	}
	gs.Map = w.Name
	gs.Position = start

	s := &Scene{
		World:   w,
		Terrain: terrain,
		State:   gs,
		store:   store,
		logger:  logger,
	}
	s.mover = grid.NewMover(terrain, start,
		func(p grid.Position) bool { return w.NPCAt(p) != nil },
		s.onArrive)
	s.detector = world.NewDetector(w.Triggers, gs.Flag)
	s.handlers = map[world.TriggerType]TriggerHandler{
		world.TriggerBattle:    handleBattle,
		world.TriggerExit:      handleExit,
		world.TriggerBlocked:   handleBlocked,
		world.TriggerNarrative: handleNarrative,
	}

	// Level-ups earned in the previous scene (a won battle) are shown
	// on entry, one overlay per gained level.
	s.levelUps = gs.LevelUps
	gs.LevelUps = nil

	return s
}

// SetHandler overrides the handler for one trigger type.
func (s *Scene) SetHandler(tt world.TriggerType, h TriggerHandler) {
	s.handlers[tt] = h
}

// Mover exposes the movement controller for rendering.
func (s *Scene) Mover() *grid.Mover { return s.mover }

// Session returns the active dialogue session, or nil.
func (s *Scene) Session() *dialogue.Session {
	if s.session != nil && !s.session.Active() {
		return nil
	}
	return s.session
}

// Menu returns the open choice menu, or nil.
func (s *Scene) Menu() *dialogue.Menu {
	if s.menu != nil && !s.menu.Open() {
		return nil
	}
	return s.menu
}

// CurrentLevelUp returns the level-up overlay awaiting confirmation,
// or nil.
func (s *Scene) CurrentLevelUp() *actor.LevelUp {
	// Overlays queue behind any dialogue opened on entry.
	if len(s.levelUps) == 0 || s.Session() != nil || s.Menu() != nil {
		return nil
	}
	return &s.levelUps[0]
}

// PendingBattle returns the battle trigger awaiting handoff and clears
// it. The battle subsystem itself is outside this layer; the caller
// sets the trigger's completion flag when the encounter is won.
func (s *Scene) PendingBattle() *world.Trigger {
	b := s.pendingBattle
	s.pendingBattle = nil
	return b
}

// QueueLevelUp appends a level-up overlay to the pending queue.
func (s *Scene) QueueLevelUp(lu actor.LevelUp) {
	s.levelUps = append(s.levelUps, lu)
}

// Transition returns the packaged bundle and destination map filename
// when an exit trigger has fired, or nil. Consuming the transition
// clears it.
func (s *Scene) Transition() (*state.GameState, string) {
	if s.transition == nil {
		return nil, ""
	}
	dest := *s.transition
	s.transition = nil
	s.State.Position = s.mover.Position()
	return state.Forward(s.State, dest), dest.Map + ".json"
}

// InputSuspended reports whether a modal session owns input routing.
// Movement input is ignored while true; confirm input is re-routed to
// the active modal.
func (s *Scene) InputSuspended() bool {
	return s.Session() != nil || s.Menu() != nil || len(s.levelUps) > 0
}

// Tick advances play time and the move tween. Called once per frame.
func (s *Scene) Tick(dt time.Duration) {
	s.State.PlayTime += dt
	s.mover.Tick(dt)
}

// HandleMove routes directional input: menu navigation while a menu is
// open, otherwise a grid move attempt. Dialogue and level-up overlays
// swallow directional input.
func (s *Scene) HandleMove(dx, dy int) {
	if m := s.Menu(); m != nil {
		switch {
		case dy < 0:
			m.MoveUp()
		case dy > 0:
			m.MoveDown()
		}
		return
	}
	if s.InputSuspended() {
		return
	}
	s.mover.AttemptMove(dx, dy)
}

// HandleConfirm routes the confirm key: select in a menu, advance
// dialogue, dismiss a level-up overlay, or interact with the NPC the
// player is facing.
func (s *Scene) HandleConfirm() {
	if m := s.Menu(); m != nil {
		m.Confirm()
		return
	}
	if sess := s.Session(); sess != nil {
		sess.Shown()
		sess.Advance()
		return
	}
	if len(s.levelUps) > 0 {
		s.levelUps = s.levelUps[1:]
		return
	}
	if s.mover.IsMoving() {
		return
	}
	s.interact()
}

// HandleCancel closes an open menu without selecting. Dialogue cannot
// be cancelled; it runs to its natural completion.
func (s *Scene) HandleCancel() {
	if m := s.Menu(); m != nil {
		m.Cancel()
		s.menuUse = menuNone
	}
}

// interact starts scripted dialogue with the NPC on the tile the
// player is facing, if any.
func (s *Scene) interact() {
	var dx, dy int
	switch s.mover.Facing() {
	case grid.FaceFront:
		dy = 1
	case grid.FaceBack:
		dy = -1
	case grid.FaceLeft:
		dx = -1
	case grid.FaceRight:
		dx = 1
	}
	npc := s.World.NPCAt(s.mover.Position().Add(dx, dy))
	if npc == nil {
		return
	}
	s.startDialogue(npc.Lines, npc.Name, nil, npc.Portrait)
}

// startDialogue opens a dialogue session, taking input ownership.
func (s *Scene) startDialogue(lines []string, speaker string, onComplete func(), portrait string) {
	s.session = dialogue.NewSession(lines, speaker, onComplete, portrait)
}

// onArrive runs after every committed move: the position is final and
// the moving flag already cleared, so trigger handlers may open modal
// sessions or request a transition.
func (s *Scene) onArrive(pos grid.Position) {
	s.State.Position = pos

	t := s.detector.Evaluate(pos)
	if t == nil {
		return
	}
	h, ok := s.handlers[t.Type]
	if !ok {
		s.logger.Warn("No handler for trigger type", "trigger", t.ID, "type", t.Type)
		return
	}
	s.logger.Debug("Trigger fired", "trigger", t.ID, "type", t.Type, "pos", pos)
	h(s, t)
}

// applyUnlocks patches terrain for every unlock gated on flag.
func (s *Scene) applyUnlocks(flag string) {
	for _, u := range s.World.Unlocks {
		if u.Flag == flag {
			s.Terrain.SetTile(u.Tile.X, u.Tile.Y, u.To)
		}
	}
}

// Default trigger handlers. Per-map variation is data, not code.

func handleBattle(s *Scene, t *world.Trigger) {
	s.pendingBattle = t
	if len(t.Lines) > 0 {
		s.startDialogue(t.Lines, t.Speaker, nil, "")
	}
}

func handleExit(s *Scene, t *world.Trigger) {
	s.transition = &state.Transition{
		Map:      t.Exit.Map,
		Position: t.Exit.Position,
	}
}

func handleBlocked(s *Scene, t *world.Trigger) {
	s.startDialogue(t.Lines, t.Speaker, nil, "")
}

func handleNarrative(s *Scene, t *world.Trigger) {
	flag := t.Flag
	s.startDialogue(t.Lines, t.Speaker, func() {
		if flag != "" {
			s.State.SetFlag(flag)
			s.applyUnlocks(flag)
		}
	}, "")
}
