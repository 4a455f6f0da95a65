package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var difficultyCycle = []config.DifficultyPreset{
	config.DifficultyAny,
	config.DifficultyEasy,
	config.DifficultyMedium,
	config.DifficultyHard,
}

// MenuItem represents a selectable level in the picker.
type MenuItem struct {
	Index      int // position in the pack
	Name       string
	Difficulty string
	Best       *storage.LevelStats
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	game           *game.Game
	difficulty     config.DifficultyPreset
	stats          map[string]*storage.LevelStats
	items          []MenuItem
	cursor         int
	scrollOffset   int
	width          int
	height         int
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a level picker for the pack g plays. The cursor
// starts on the active level when the filter shows it.
func NewMenuModel(g *game.Game, store *storage.Store, d config.DifficultyPreset, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		game:       g,
		difficulty: d,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		keyMapper:  NewKeyMapper(),
	}
	if store != nil {
		//nolint:errcheck // The picker works without records
		m.stats, _ = store.PackStats(g.PackID())
	}
	m.loadItems()
	for i, it := range m.items {
		if it.Index == g.Session().Index() {
			m.cursor = i
		}
	}
	m.updateScroll()
	return m
}

// loadItems builds the list for the current difficulty filter.
func (m *MenuModel) loadItems() {
	all := m.game.Levels()
	m.items = nil
	for _, i := range m.game.Filter(m.difficulty) {
		l := all[i]
		name := l.Name
		if name == "" {
			name = l.ID
		}
		m.items = append(m.items, MenuItem{
			Index:      i,
			Name:       name,
			Difficulty: l.Metadata["difficulty"],
			Best:       m.stats[l.ID],
		})
	}
	m.cursor = 0
	m.scrollOffset = 0
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionLeft:
		m.cycleDifficulty(-1)

	case MenuActionRight:
		m.cycleDifficulty(1)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

func (m *MenuModel) cycleDifficulty(step int) {
	cur := 0
	for i, d := range difficultyCycle {
		if d == m.difficulty {
			cur = i
		}
	}
	n := len(difficultyCycle)
	m.difficulty = difficultyCycle[((cur+step)%n+n)%n]
	m.loadItems()
}

// visibleItems is the number of list rows that fit the terminal.
func (m MenuModel) visibleItems() int {
	return core.Max(3, m.height-10) // Account for header and footer
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("S O K O B A N"), m.width))
	b.WriteString("\n\n")

	subtitle := fmt.Sprintf("Pack %s  |  Difficulty: < %s >", m.game.PackID(), m.difficulty)
	b.WriteString(centerText(theme.MenuDescription.Render(subtitle), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(theme.MenuDescription.Render("No levels match this difficulty"), m.width))
		b.WriteString("\n")
	}

	end := core.Min(m.scrollOffset+m.visibleItems(), len(m.items))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(centerText(m.renderItem(i), m.width))
		b.WriteString("\n")
	}
	if end < len(m.items) {
		b.WriteString(centerText(theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Play  |  Tab: Records  |  Q: Quit"
	b.WriteString(centerText(theme.HUDControls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(i int) string {
	it := m.items[i]
	cursor := "  "
	style := theme.MenuItemNormal
	if i == m.cursor {
		cursor = "> "
		style = theme.MenuItemActive
	}

	line := fmt.Sprintf("%s%2d. %-20s", cursor, it.Index+1, it.Name)
	if it.Difficulty != "" {
		line += fmt.Sprintf(" %-6s", it.Difficulty)
	}
	out := style.Render(line)
	if it.Best != nil {
		out += theme.MenuItemSolved.Render(fmt.Sprintf("  ✓ %d moves", it.Best.BestMoves))
	}
	return out
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Difficulty returns the filter the player left the menu with.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return m.difficulty
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
