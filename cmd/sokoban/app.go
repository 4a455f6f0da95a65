package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/savegame"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// app holds what every command needs: configuration, a logger and the
// optional score store.
type app struct {
	cfg    config.Config
	logger *log.Logger
	store  *storage.Store
}

// newApp loads configuration, applies the global flags and registers the
// levels directory. The store is opened by openStore on demand.
func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	if flagPack != "" {
		cfg.Levels.Pack = flagPack
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban",
	})
	if lvl, lerr := log.ParseLevel(cfg.Log.Level); lerr == nil {
		logger.SetLevel(lvl)
	}
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	if cfg.Levels.Dir != "" {
		dir, derr := storage.ExpandHome(cfg.Levels.Dir)
		if derr != nil {
			return nil, derr
		}
		p := levels.NewDirPack(dir)
		if aerr := registry.Add(p); aerr != nil {
			return nil, aerr
		}
		logger.Debug("registered levels directory", "pack", p.ID(), "dir", dir)
		// A directory given without a pack plays that directory.
		if flagPack == "" && (flagLevelsDir != "" || cfg.Levels.Pack == "") {
			cfg.Levels.Pack = p.ID()
		}
	}

	return &app{cfg: cfg, logger: logger}, nil
}

// openStore opens the score database. Failure is logged and leaves the
// store nil; every frontend works without it.
func (a *app) openStore() {
	store, err := storage.Open(a.cfg.Storage.DBPath)
	if err != nil {
		a.logger.Warn("could not open database, solves will not be recorded", "error", err)
		return
	}
	a.store = store
}

func (a *app) close() {
	if a.store != nil {
		//nolint:errcheck // Closing on exit
		a.store.Close()
	}
}

// difficulty returns the configured level filter.
func (a *app) difficulty() config.DifficultyPreset {
	d, err := config.ParseDifficulty(a.cfg.Levels.Difficulty)
	if err != nil {
		return config.DifficultyAny
	}
	return d
}

// newGame opens the configured pack and positions it on level, which is a
// 1-based number or a level ID. An empty level uses levels.start.
func (a *app) newGame(level string) (*game.Game, error) {
	packID := a.cfg.Levels.Pack
	session, list, err := registry.Open(packID)
	if err != nil {
		return nil, err
	}

	start := a.cfg.Levels.Start
	if level != "" {
		if start, err = resolveLevel(list, level); err != nil {
			return nil, err
		}
	}
	if start >= len(list) {
		return nil, fmt.Errorf("level %d out of range, pack %s has %d levels", start+1, packID, len(list))
	}
	if start > 0 {
		if err := session.ChangeLevel(start); err != nil {
			return nil, err
		}
	}

	g, err := game.New(session, list, game.Options{
		PackID:   packID,
		Player:   playerName(),
		Store:    a.store,
		Saves:    &savegame.Manager{Dir: a.cfg.Storage.SaveDir, Store: a.store},
		Gameplay: a.cfg.Gameplay,
		Logger:   a.logger,
	})
	if err != nil {
		return nil, err
	}
	session.Subscribe(game.LogObserver{Logger: a.logger})
	return g, nil
}

// resolveLevel turns a level argument into a 0-based index.
func resolveLevel(list []levels.Level, arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(list) {
			return 0, fmt.Errorf("level %d out of range 1-%d", n, len(list))
		}
		return n - 1, nil
	}
	for i, l := range list {
		if strings.EqualFold(l.ID, arg) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no level %q in pack", arg)
}

func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// runtimeConfig sizes the views to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Player:  playerName(),
	}
}

// fail reports a fatal error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
