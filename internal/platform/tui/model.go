package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// Rows reserved around the board: HUD, footer and help.
const (
	hudHeight    = 2
	footerHeight = 5
	helpHeight   = 1
)

// inbox collects session output between updates. Models are copied by
// value, so observers write through this pointer.
type inbox struct {
	effects []sokoban.Effect
	notices []sokoban.Notice
}

func (b *inbox) OnEffect(e sokoban.Effect) { b.effects = append(b.effects, e) }
func (b *inbox) OnNotice(n sokoban.Notice) { b.notices = append(b.notices, n) }

// GameModel is the Bubble Tea model for playing a level pack.
type GameModel struct {
	game        *game.Game
	screen      *core.Screen
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	help        help.Model
	inbox       *inbox
	unsubscribe func()

	notice     sokoban.Notice
	hasNotice  bool
	noticeGen  int
	restartGen int

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a play model over g. Call Close when the model is
// discarded so the session stops feeding it.
func NewGameModel(g *game.Game, cfg core.RuntimeConfig) GameModel {
	box := &inbox{}
	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:        g,
		screen:      core.NewScreen(cfg.ScreenW, boardRows(cfg.ScreenH)),
		config:      cfg,
		keyMapper:   NewKeyMapper(),
		help:        h,
		inbox:       box,
		unsubscribe: g.Session().Subscribe(box),
	}
}

func boardRows(screenH int) int {
	return core.Max(1, screenH-hudHeight-footerHeight-helpHeight)
}

// Init implements tea.Model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, boardRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case restartMsg:
		if msg.gen == m.restartGen && m.game.Session().Stuck() {
			m.game.Reset()
			return m.drain()
		}
		return m, nil

	case noticeExpiredMsg:
		if msg.gen == m.noticeGen {
			m.hasNotice = false
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if d, ok := action.Dir(); ok {
		m.game.Move(d)
		return m.drain()
	}

	switch action {
	case core.ActionReset:
		m.game.Reset()
	case core.ActionNext:
		m.report(m.game.Next())
	case core.ActionPrevious:
		m.report(m.game.Previous())
	case core.ActionSave:
		p, err := m.game.Save("")
		if err != nil {
			m.report(err)
		} else {
			m.push(sokoban.Notice{Kind: sokoban.NoticeInfo, Text: "Saved to " + p})
		}
	case core.ActionLoad:
		m.report(m.loadLatest())
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case core.ActionBack:
		m.backToMenu = true
		return m, nil
	default:
		return m, nil
	}
	return m.drain()
}

// loadLatest restores the newest save of the pack being played.
func (m *GameModel) loadLatest() error {
	saves, err := m.game.Saves()
	if err != nil {
		return err
	}
	for _, e := range saves {
		if e.Pack == m.game.PackID() {
			if err := m.game.Load(e.Name); err != nil {
				return err
			}
			m.push(sokoban.Notice{Kind: sokoban.NoticeInfo, Text: "Loaded " + e.Name})
			return nil
		}
	}
	return fmt.Errorf("no saves for pack %s", m.game.PackID())
}

// report turns an error into a notice. Boundary errors already produced
// their own notice through the session.
func (m *GameModel) report(err error) {
	if err == nil || errors.Is(err, sokoban.ErrAtBoundary) {
		return
	}
	m.push(sokoban.Notice{Kind: sokoban.NoticeWarn, Text: err.Error()})
}

func (m *GameModel) push(n sokoban.Notice) {
	m.inbox.notices = append(m.inbox.notices, n)
}

// drain applies everything the session reported since the last update.
func (m GameModel) drain() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	for _, e := range m.inbox.effects {
		switch e {
		case sokoban.EffectStuck:
			m.restartGen++
			if gp := m.game.Gameplay(); gp.AutoRestartOnStuck {
				cmds = append(cmds, restartAfter(m.restartGen, gp.RestartDelay))
			}
		case sokoban.EffectReset, sokoban.EffectLevel:
			m.restartGen++
			m.hasNotice = false
		}
	}
	for _, n := range m.inbox.notices {
		m.notice = n
		m.hasNotice = true
		m.noticeGen++
		// The stuck notice stays until the level restarts.
		if n.Text != sokoban.MsgStuck {
			cmds = append(cmds, expireNotice(m.noticeGen, noticeTTL))
		}
	}
	m.inbox.effects = m.inbox.effects[:0]
	m.inbox.notices = m.inbox.notices[:0]

	return m, tea.Batch(cmds...)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHUD())
	b.WriteString("\n")
	m.renderBoard()
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	b.WriteString(theme.HUDControls.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

func (m GameModel) renderHUD() string {
	l := m.game.Session().Active()
	sep := theme.HUDSeparator.Render("  |  ")

	stats := []string{
		theme.HUDValue.Render(fmt.Sprintf("Moves %d", l.Moves())),
		theme.HUDValue.Render(fmt.Sprintf("Pushes %d", l.Pushes())),
		theme.HUDValue.Render(fmt.Sprintf("Boxes %d/%d", l.BoxesOnGoal(), len(l.Boxes()))),
	}
	if best := m.game.Best(); best != nil {
		stats = append(stats, theme.HUDValue.Render(fmt.Sprintf("Best %d/%d", best.Moves, best.Pushes)))
	}

	title := centerText(theme.HUDTitle.Render(m.game.Title()), m.config.ScreenW)
	return title + "\n" + centerText(strings.Join(stats, sep), m.config.ScreenW)
}

// renderBoard draws the active level centered into the screen buffer.
func (m GameModel) renderBoard() {
	m.screen.Clear()
	l := m.game.Session().Active()
	w, h := BoardSize(l)
	if w > m.screen.Width() || h > m.screen.Height() {
		m.screen.DrawTextCentered(m.screen.Height()/2, "Terminal too small for this level", core.ColorRed)
		return
	}
	r := m.screen.Bounds().CenterIn(w, h)
	DrawBoard(m.screen, l, r.X, r.Y)
}

func (m GameModel) renderFooter() string {
	var parts []string
	if m.game.Session().Won() {
		body := theme.OverlayTitle.Render(sokoban.MsgWon) + "\n" +
			theme.OverlayText.Render("r: replay   n: next level   p: previous level")
		parts = append(parts, centerBlock(theme.OverlayBorder.Render(body), m.config.ScreenW))
	}
	if m.hasNotice && m.notice.Text != sokoban.MsgWon {
		style := theme.NoticeInfo
		if m.notice.Kind == sokoban.NoticeWarn {
			style = theme.NoticeWarn
		}
		for _, line := range strings.Split(m.notice.Text, "\n") {
			parts = append(parts, centerText(style.Render(line), m.config.ScreenW))
		}
	}
	return strings.Join(parts, "\n")
}

// Close detaches the model from the session.
func (m GameModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Game returns the game being played.
func (m GameModel) Game() *game.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level picker.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// centerText centers a single styled line within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers a multi-line block within width.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
