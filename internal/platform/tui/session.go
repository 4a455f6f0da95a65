package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeGame
	modeScores
)

// SessionModel manages the full flow of one player: level picker, play
// and records. It is the top-level model for local and SSH sessions.
type SessionModel struct {
	game       *game.Game
	store      *storage.Store
	config     core.RuntimeConfig
	difficulty config.DifficultyPreset
	mode       sessionMode
	menu       MenuModel
	play       GameModel
	scores     ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session model. With startInGame the player
// lands on the active level instead of the picker.
func NewSessionModel(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, d config.DifficultyPreset, startInGame bool) SessionModel {
	m := SessionModel{
		game:       g,
		store:      store,
		config:     cfg,
		difficulty: d,
	}
	if startInGame {
		m.mode = modeGame
		m.play = NewGameModel(g, cfg)
	} else {
		m.menu = NewMenuModel(g, store, d, cfg)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menuModel, ok := next.(MenuModel); ok {
		m.menu = menuModel
	}
	m.difficulty = m.menu.Difficulty()

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scores = NewScoreboardModel(m.store, m.game.PackID(), m.game.Levels(), m.game.Session().Index(), m.config.ScreenW, m.config.ScreenH)
		m.mode = modeScores
		return m, nil
	}

	if selected := m.menu.Selected(); selected != nil {
		play := NewGameModel(m.game, m.config)
		play.report(m.game.ChangeLevel(selected.Index))
		drained, drainCmd := play.drain()
		m.play = drained.(GameModel)
		m.mode = modeGame
		return m, drainCmd
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if gameModel, ok := next.(GameModel); ok {
		m.play = gameModel
	}

	if m.play.IsQuitting() {
		m.play.Close()
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.play.Close()
		m.menu = NewMenuModel(m.game, m.store, m.difficulty, m.config)
		m.mode = modeMenu
		return m, nil
	}

	return m, cmd
}

// updateScores handles updates when showing records.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.menu = NewMenuModel(m.game, m.store, m.difficulty, m.config)
		m.mode = modeMenu
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeGame:
		return m.play.View()
	case modeScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// RunSession runs a local session until the player quits.
func RunSession(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, d config.DifficultyPreset, startInGame bool) error {
	model := NewSessionModel(g, store, cfg, d, startInGame)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok && sm.mode == modeGame {
		sm.play.Close()
	}
	return err
}
