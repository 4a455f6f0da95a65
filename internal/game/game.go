// Package game drives one player's Sokoban session for the frontends. It
// ties the engine to level metadata, solve records and save files so the
// TUI and console behave the same way.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/savegame"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// ErrNoSaves is returned by Save and Load when no save manager is set.
var ErrNoSaves = errors.New("game: saving is not configured")

// Options configures a Game. Store and Saves are optional.
type Options struct {
	PackID   string
	Player   string
	Store    *storage.Store
	Saves    *savegame.Manager
	Gameplay config.GameplayConfig
	Logger   *log.Logger
}

// Game is a session plus everything around it that is not engine logic.
// Like the session it wraps, a Game belongs to a single player.
type Game struct {
	session *sokoban.Session
	levels  []levels.Level
	opts    Options
	logger  *log.Logger
}

// New wraps session. list must hold the level definitions the session was
// built from, in the same order.
func New(session *sokoban.Session, list []levels.Level, opts Options) (*Game, error) {
	if session.Count() != len(list) {
		return nil, fmt.Errorf("game: session has %d levels, got %d definitions", session.Count(), len(list))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Player == "" {
		opts.Player = "player"
	}
	return &Game{session: session, levels: list, opts: opts, logger: logger}, nil
}

// Session returns the underlying engine session.
func (g *Game) Session() *sokoban.Session { return g.session }

// PackID returns the pack being played.
func (g *Game) PackID() string { return g.opts.PackID }

// Player returns the name solves are recorded under.
func (g *Game) Player() string { return g.opts.Player }

// Gameplay returns the gameplay settings.
func (g *Game) Gameplay() config.GameplayConfig { return g.opts.Gameplay }

// Levels returns the level definitions of the pack.
func (g *Game) Levels() []levels.Level { return g.levels }

// Current returns the definition of the active level.
func (g *Game) Current() levels.Level { return g.levels[g.session.Index()] }

// Move moves the player. A solved level accepts no further moves until the
// player resets or changes level; ok is false in that case.
func (g *Game) Move(d sokoban.Dir) (res sokoban.MoveResult, ok bool) {
	if g.session.Won() {
		return res, false
	}
	res = g.session.Move(d)
	if g.session.Won() {
		g.recordSolve()
	}
	return res, true
}

func (g *Game) recordSolve() {
	l := g.session.Active()
	g.logger.Info("level solved", "pack", g.opts.PackID, "level", g.Current().ID, "moves", l.Moves(), "pushes", l.Pushes())
	if g.opts.Store == nil || !g.opts.Gameplay.RecordSolves {
		return
	}
	_, err := g.opts.Store.RecordSolve(storage.SolveEntry{
		PackID:  g.opts.PackID,
		LevelID: g.Current().ID,
		Player:  g.opts.Player,
		Moves:   l.Moves(),
		Pushes:  l.Pushes(),
	})
	if err != nil {
		g.logger.Warn("could not record solve", "error", err)
	}
}

// Reset restarts the active level.
func (g *Game) Reset() { g.session.Reset() }

// ChangeLevel activates level i.
func (g *Game) ChangeLevel(i int) error { return g.session.ChangeLevel(i) }

// Next activates the following level.
func (g *Game) Next() error { return g.session.Next() }

// Previous activates the preceding level.
func (g *Game) Previous() error { return g.session.Previous() }

// Save writes the active level under name; an empty name picks one.
// It returns the written path.
func (g *Game) Save(name string) (string, error) {
	if g.opts.Saves == nil {
		return "", ErrNoSaves
	}
	f := savegame.New(g.opts.PackID, g.Current().ID, g.session.Snapshot())
	p, err := g.opts.Saves.Save(name, f)
	if err != nil {
		return "", err
	}
	g.logger.Debug("game saved", "path", p, "level", f.LevelID)
	return p, nil
}

// Load restores a save by name or path.
func (g *Game) Load(name string) error {
	if g.opts.Saves == nil {
		return ErrNoSaves
	}
	f, err := g.opts.Saves.Load(name)
	if err != nil {
		return err
	}
	if err := savegame.Apply(g.session, g.opts.PackID, f); err != nil {
		return err
	}
	g.logger.Debug("game loaded", "name", name, "level", f.LevelID)
	return nil
}

// Saves lists the known saves, newest first.
func (g *Game) Saves() ([]savegame.Entry, error) {
	if g.opts.Saves == nil {
		return nil, ErrNoSaves
	}
	return g.opts.Saves.List()
}

// Best returns the best recorded solve of the active level, if any.
func (g *Game) Best() *storage.SolveEntry {
	if g.opts.Store == nil {
		return nil
	}
	best, err := g.opts.Store.LevelBest(g.opts.PackID, g.Current().ID)
	if err != nil {
		g.logger.Warn("could not read best solve", "error", err)
		return nil
	}
	return best
}

// Title names the active level for headers, e.g. "Level 3/7: Corner".
func (g *Game) Title() string {
	cur := g.Current()
	title := fmt.Sprintf("Level %d/%d", g.session.Index()+1, g.session.Count())
	if cur.Name != "" {
		title += ": " + cur.Name
	}
	return title
}

// Info describes the active level and its progress.
func (g *Game) Info() string {
	l := g.session.Active()
	cur := g.Current()

	var b strings.Builder
	fmt.Fprintf(&b, "%s (pack %s, id %s)\n", g.Title(), g.opts.PackID, cur.ID)
	if d := cur.Metadata["difficulty"]; d != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", d)
	}
	fmt.Fprintf(&b, "Moves: %d  Pushes: %d  Boxes: %d/%d\n", l.Moves(), l.Pushes(), l.BoxesOnGoal(), len(l.Boxes()))
	if best := g.Best(); best != nil {
		fmt.Fprintf(&b, "Best: %d moves, %d pushes by %s\n", best.Moves, best.Pushes, best.Player)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Filter returns the indices of levels that pass the difficulty preset.
func (g *Game) Filter(d config.DifficultyPreset) []int {
	var out []int
	for i, l := range g.levels {
		if d.Matches(l.Metadata) {
			out = append(out, i)
		}
	}
	return out
}
