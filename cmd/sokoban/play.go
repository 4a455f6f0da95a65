package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	flagLevel string
	flagLoad  string
	flagMono  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the configured level pack",
	Long: `Start playing directly on a level of the pack.

Controls:
  Arrows/WASD/HJKL  - Move and push
  R                 - Restart level
  N/P               - Next/previous level
  Ctrl+S/Ctrl+L     - Save/load last save
  Esc/B             - Level picker
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Examples:
  sokoban play
  sokoban play --level 5
  sokoban play --level warehouse-2
  sokoban play --load my-save
  sokoban play --mono`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the level picker",
	Long: `Start in the level picker. Left/Right cycles the difficulty
filter, Tab opens the best-solve records, Enter plays.

Examples:
  sokoban menu
  sokoban menu --pack classic`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level number (1-based) or level ID")
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Resume a saved game by name or path")
	playCmd.Flags().BoolVar(&flagMono, "mono", false, "Monochrome colors")
	menuCmd.Flags().BoolVar(&flagMono, "mono", false, "Monochrome colors")
}

func runPlay(_ *cobra.Command, _ []string) {
	runTUI(true)
}

func runMenu(_ *cobra.Command, _ []string) {
	runTUI(false)
}

func runTUI(startInGame bool) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	a.openStore()

	g, err := a.newGame(flagLevel)
	if err != nil {
		a.close()
		fail("%v", err)
	}
	if flagLoad != "" {
		if err := g.Load(flagLoad); err != nil {
			a.close()
			fail("cannot load %s: %v", flagLoad, err)
		}
	}
	g.Session().Subscribe(game.BellObserver{W: os.Stdout, Cfg: a.cfg.Effects})

	if flagMono {
		tui.SetTheme(tui.MonochromeTheme())
	}

	runErr := tui.RunSession(g, a.store, runtimeConfig(), a.difficulty(), startInGame)

	// Close store before potential exit
	a.close()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
