package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/game"
	"github.com/vovakirdan/tui-sokoban/internal/platform/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play with typed commands",
	Long: `Play in line mode: the board is printed as text and every move is
a command followed by Enter. Type "help" for the command list.

Examples:
  sokoban console
  sokoban console --level 2
  sokoban console < solution.txt`,
	Args: cobra.NoArgs,
	Run:  runConsole,
}

func init() {
	consoleCmd.Flags().StringVar(&flagLevel, "level", "", "Level number (1-based) or level ID")
}

func runConsole(_ *cobra.Command, _ []string) {
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
	g.Session().Subscribe(game.BellObserver{W: os.Stdout, Cfg: a.cfg.Effects})

	runErr := console.New(g, os.Stdin, os.Stdout).Run()
	a.close()
	if runErr != nil {
		fail("reading input: %v", runErr)
	}
}
