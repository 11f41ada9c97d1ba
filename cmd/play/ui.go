package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/tilequest/internal/config"
	"github.com/jwebster45206/tilequest/internal/storage"
	"github.com/jwebster45206/tilequest/pkg/actor"
	"github.com/jwebster45206/tilequest/pkg/dialogue"
	"github.com/jwebster45206/tilequest/pkg/grid"
	"github.com/jwebster45206/tilequest/pkg/scene"
	"github.com/jwebster45206/tilequest/pkg/state"
)

const frameInterval = time.Second / 30

// GameUI is the BubbleTea model that runs the game.
// https://github.com/charmbracelet/bubbletea
type GameUI struct {
	cfg    *config.Config
	store  storage.Storage
	logger *slog.Logger

	scene        *scene.Scene
	metaViewport viewport.Model
	ready        bool
	width        int
	height       int
	err          error
	lastFrame    time.Time

	// Title screen state
	showTitleModal bool
	titleMenu      *dialogue.Menu
	loadingTitle   bool

	// Quit confirmation state
	showQuitModal bool
}

type frameMsg time.Time

type titleDataMsg struct {
	previews []storage.SlotPreview
	err      error
}

type sceneReadyMsg struct {
	scene *scene.Scene
	err   error
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	tileOpenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")) // faint grid dots

	tileRoughStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("64")) // grass green

	tileBlockedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("242")) // stone grey

	npcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dialogueBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func NewGameUI(cfg *config.Config, store storage.Storage, logger *slog.Logger) GameUI {
	metaVp := viewport.New(24, 20)
	return GameUI{
		cfg:            cfg,
		store:          store,
		logger:         logger,
		metaViewport:   metaVp,
		showTitleModal: true,
		loadingTitle:   true,
	}
}

func (m GameUI) Init() tea.Cmd {
	return m.loadTitleData()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m GameUI) loadTitleData() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		previews, err := m.store.SlotPreviews(ctx)
		return titleDataMsg{previews, err}
	}
}

func (m GameUI) startNewGame() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		hero, err := m.store.GetHeroState(ctx, m.cfg.StartHero)
		if err != nil {
			return sceneReadyMsg{nil, fmt.Errorf("failed to create hero: %w", err)}
		}
		w, err := m.store.GetWorld(ctx, m.cfg.StartMap+".json")
		if err != nil {
			return sceneReadyMsg{nil, fmt.Errorf("failed to load starting map: %w", err)}
		}

		gs := state.NewGameState(hero.ID)
		gs.Party = append(gs.Party, hero)
		gs.DevMode = m.cfg.DevMode
		gs.Position = w.HeroStart

		return sceneReadyMsg{scene.New(m.store, w, gs, m.logger), nil}
	}
}

func (m GameUI) loadGame(slot int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		gs, err := m.store.LoadSlot(ctx, slot)
		if err != nil {
			return sceneReadyMsg{nil, fmt.Errorf("failed to load save: %w", err)}
		}
		if gs == nil {
			return sceneReadyMsg{nil, fmt.Errorf("slot %d is empty", slot)}
		}

		// Loading restores every hero to full resources.
		for _, hero := range gs.Party {
			hero.RestoreAll()
		}

		w, err := m.store.GetWorld(ctx, gs.Map+".json")
		if err != nil {
			return sceneReadyMsg{nil, fmt.Errorf("failed to load map %q: %w", gs.Map, err)}
		}

		return sceneReadyMsg{scene.New(m.store, w, gs, m.logger), nil}
	}
}

func (m GameUI) changeScene(gs *state.GameState, mapFile string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		w, err := m.store.GetWorld(ctx, mapFile)
		if err != nil {
			return sceneReadyMsg{nil, fmt.Errorf("failed to load map %q: %w", mapFile, err)}
		}
		return sceneReadyMsg{scene.New(m.store, w, gs, m.logger), nil}
	}
}

func (m GameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showTitleModal {
		return m.updateTitleModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		metaWidth := m.width - m.mapPanelWidth() - 2
		m.metaViewport.Width = metaWidth
		m.metaViewport.Height = m.height - 2
		m.ready = true

	case frameMsg:
		now := time.Time(msg)
		if m.lastFrame.IsZero() {
			m.lastFrame = now
		}
		dt := now.Sub(m.lastFrame)
		m.lastFrame = now

		m.scene.Tick(dt)
		m.metaViewport.SetContent(m.writeMetadata())

		// TODO: hand off to the battle scene when it lands. Until
		// then a fired encounter auto-resolves as a win.
		if t := m.scene.PendingBattle(); t != nil {
			m.logger.Info("Battle encounter", "battle", t.Battle, "flag", t.Flag)
			if t.Flag != "" {
				m.scene.State.SetFlag(t.Flag)
			}
			if hero := m.scene.State.Hero(m.scene.State.HeroID); hero != nil {
				m.scene.QueueLevelUp(hero.ApplyLevelUp())
			}
		}

		if next, mapFile := m.scene.Transition(); next != nil {
			return m, m.changeScene(next, mapFile)
		}
		return m, frameTick()

	case sceneReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.scene = msg.scene
		m.lastFrame = time.Time{}
		return m, frameTick()

	case tea.KeyMsg:
		return m.handleGameKey(msg)
	}

	return m, nil
}

func (m GameUI) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.Type {
	case tea.KeyCtrlC:
		m.showQuitModal = true
		return m, nil
	case tea.KeyEsc:
		if m.scene.Menu() != nil {
			m.scene.HandleCancel()
		} else {
			m.showQuitModal = true
		}
		return m, nil
	case tea.KeyUp:
		m.scene.HandleMove(0, -1)
	case tea.KeyDown:
		m.scene.HandleMove(0, 1)
	case tea.KeyLeft:
		m.scene.HandleMove(-1, 0)
	case tea.KeyRight:
		m.scene.HandleMove(1, 0)
	case tea.KeyEnter, tea.KeySpace:
		m.scene.HandleConfirm()
	case tea.KeyBackspace, tea.KeyDelete:
		m.scene.DeleteHighlightedSlot(ctx)
	default:
		switch msg.String() {
		case "w":
			m.scene.HandleMove(0, -1)
		case "s":
			m.scene.HandleMove(0, 1)
		case "a":
			m.scene.HandleMove(-1, 0)
		case "d":
			m.scene.HandleMove(1, 0)
		case "v":
			m.scene.OpenSaveMenu(ctx)
		}
	}
	return m, nil
}

func (m GameUI) updateTitleModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case titleDataMsg:
		m.loadingTitle = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		choices := []dialogue.Choice{{Label: "New Game", Value: "new"}}
		for _, p := range msg.previews {
			if p.Empty {
				continue
			}
			choices = append(choices, dialogue.Choice{
				Label: fmt.Sprintf("Continue — Slot %d: %s, %s (%s)", p.Slot, p.HeroName, p.Map, p.PlayTime),
				Value: strconv.Itoa(p.Slot),
			})
		}
		m.titleMenu = dialogue.NewMenu(choices, nil)

	case sceneReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.scene = msg.scene
		m.showTitleModal = false
		m.lastFrame = time.Time{}
		metaWidth := m.width - m.mapPanelWidth() - 2
		m.metaViewport.Width = metaWidth
		m.metaViewport.Height = m.height - 2
		return m, frameTick()

	case tea.KeyMsg:
		if m.loadingTitle || m.titleMenu == nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			m.titleMenu.MoveUp()
		case tea.KeyDown:
			m.titleMenu.MoveDown()
		case tea.KeyEnter:
			choice := m.titleMenu.Selected()
			if choice.Value == "new" {
				return m, m.startNewGame()
			}
			if slot, err := strconv.Atoi(choice.Value); err == nil {
				return m, m.loadGame(slot)
			}
		}
	}

	return m, nil
}

func (m GameUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				return m, frameTick()
			}
		}
	}

	return m, nil
}

func (m GameUI) mapPanelWidth() int {
	return int(float64(m.width) * 0.75)
}

func (m GameUI) View() string {
	if m.showTitleModal {
		return m.renderTitleModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready || m.scene == nil {
		return "\n  Initializing..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\nPress Ctrl+C to exit."
	}

	if menu := m.scene.Menu(); menu != nil {
		return m.renderChoiceModal(menu)
	}
	if lu := m.scene.CurrentLevelUp(); lu != nil {
		return m.renderLevelUpModal(lu)
	}

	mapPanel := m.renderMap()
	metaPanel := metaPanelStyle.Width(m.width - m.mapPanelWidth() - 2).Render(m.metaViewport.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, mapPanel, metaPanel)
}

// renderMap draws the visible tile window with the camera centered on
// the player, plus the dialogue strip when a session is active. Each
// tile is two terminal columns wide.
func (m GameUI) renderMap() string {
	const dialogueRows = 5

	viewCols := m.mapPanelWidth() / 2
	viewRows := m.height - 2 - dialogueRows
	if viewCols < 1 || viewRows < 1 {
		return ""
	}

	terrain := m.scene.Terrain
	px, py := m.scene.Mover().VisualPosition()

	// Camera centered on the player, clamped to map bounds.
	ox := clamp(int(px+0.5)-viewCols/2, 0, max(0, terrain.Width()-viewCols))
	oy := clamp(int(py+0.5)-viewRows/2, 0, max(0, terrain.Height()-viewRows))

	playerCol := int(px+0.5) - ox
	playerRow := int(py+0.5) - oy

	var b strings.Builder
	for row := 0; row < viewRows; row++ {
		for col := 0; col < viewCols; col++ {
			wx, wy := ox+col, oy+row
			b.WriteString(m.renderCell(wx, wy, col == playerCol && row == playerRow))
		}
		b.WriteString("\n")
	}
	mapView := b.String()

	// The dialogue strip sits opposite the player's half of the view,
	// recomputed every frame so a new session near the bottom edge
	// never covers the speaker.
	box := m.renderDialogueBox(viewCols * 2)
	if playerRow > viewRows/2 {
		return lipgloss.JoinVertical(lipgloss.Left, box, mapView)
	}
	return lipgloss.JoinVertical(lipgloss.Left, mapView, box)
}

func (m GameUI) renderCell(wx, wy int, isPlayer bool) string {
	if isPlayer {
		return playerStyle.Render(facingGlyph(m.scene.Mover().Facing()))
	}
	if npc := m.scene.World.NPCAt(grid.Position{X: wx, Y: wy}); npc != nil {
		return npcStyle.Render("☻ ")
	}
	if !m.scene.Terrain.InBounds(wx, wy) {
		return "  "
	}
	switch m.scene.Terrain.At(wx, wy) {
	case grid.TileBlocked:
		return tileBlockedStyle.Render("▓▓")
	case grid.TileRough:
		return tileRoughStyle.Render("''")
	default:
		return tileOpenStyle.Render("· ")
	}
}

func facingGlyph(f grid.Facing) string {
	switch f {
	case grid.FaceBack:
		return "▲ "
	case grid.FaceLeft:
		return "◀ "
	case grid.FaceRight:
		return "▶ "
	default:
		return "▼ "
	}
}

func (m GameUI) renderDialogueBox(width int) string {
	sess := m.scene.Session()
	if sess == nil {
		return strings.Repeat("\n", 4)
	}

	var content strings.Builder
	if sess.Speaker() != "" {
		label := sess.Speaker()
		if sess.Portrait() != "" {
			label = "[" + sess.Portrait() + "] " + label
		}
		content.WriteString(speakerStyle.Render(label) + "\n")
	}
	content.WriteString(wordwrap.String(sess.Line(), width-6))
	sess.Shown()

	box := dialogueBoxStyle.Width(width - 2).Render(content.String())
	return box + "\n" + promptStyle.Render("  Enter: continue")
}

func (m GameUI) renderChoiceModal(menu *dialogue.Menu) string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Choose"))
	content.WriteString("\n\n")

	for i, c := range menu.Choices() {
		if i == menu.Index() {
			content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", c.Label)))
		} else {
			content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", c.Label)))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("↑/↓ to navigate, Enter to select, Esc to cancel, Del to delete a save"))

	modal := modalStyle.Width(64).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) renderLevelUpModal(lu *actor.LevelUp) string {
	name := lu.HeroID
	if hero := m.scene.State.Hero(lu.HeroID); hero != nil {
		name = hero.Name
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("LEVEL UP!"))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("%s reached level %d.\n", name, lu.NewLevel))
	content.WriteString(fmt.Sprintf("Max HP +%d", lu.HPGain))
	if lu.MPGain > 0 {
		content.WriteString(fmt.Sprintf("   Max MP +%d", lu.MPGain))
	}
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Enter to continue"))

	modal := modalStyle.Width(44).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) renderTitleModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("TILEQUEST"))
	content.WriteString("\n\n")

	if m.loadingTitle {
		content.WriteString("Reading the save book...")
	} else if m.err != nil {
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to start: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else {
		for i, c := range m.titleMenu.Choices() {
			if i == m.titleMenu.Index() {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", c.Label)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", c.Label)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("↑/↓ to navigate, Enter to select, Esc to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Unsaved progress will be lost.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep playing"))

	modal := modalStyle.Width(44).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) writeMetadata() string {
	gs := m.scene.State

	var content strings.Builder
	content.WriteString(titleStyle.Render(m.scene.World.MapDisplayName()) + "\n\n")

	content.WriteString("Play time:\n")
	content.WriteString(state.FormatPlayTime(gs.PlayTime) + "\n\n")

	content.WriteString("Party:\n")
	for _, h := range gs.Party {
		content.WriteString(fmt.Sprintf("• %s  Lv %d  %d/%d HP\n", h.Name, h.Level, h.HP, h.MaxHP))
	}
	if len(gs.Party) == 0 {
		content.WriteString("None\n")
	}
	content.WriteString("\n")

	if len(gs.Inventory) > 0 {
		content.WriteString("Inventory:\n")
		for _, item := range gs.Inventory {
			content.WriteString("• " + item + "\n")
		}
		content.WriteString("\n")
	}

	content.WriteString(separatorStyle.Render("────────────────") + "\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Arrows/WASD: Move\n")
	content.WriteString("• Enter: Talk / Confirm\n")
	content.WriteString("• V: Save\n")
	content.WriteString("• Esc: Menu / Quit\n")

	if gs.DevMode {
		content.WriteString("\n" + errorStyle.Render("DEV MODE") + "\n")
		content.WriteString(fmt.Sprintf("pos %s flags %d\n", gs.Position, len(gs.Flags)))
	}

	return content.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
