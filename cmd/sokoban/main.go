// sokoban is a terminal Sokoban game with a TUI, a line console and an
// SSH server.
//
// Usage:
//
//	sokoban play               - Play the configured pack
//	sokoban menu               - Pick a level interactively
//	sokoban console            - Play with typed commands
//	sokoban list [pack]        - List packs or the levels of a pack
//	sokoban validate <dir>     - Check a directory of level files
//	sokoban scores [pack]      - Show best solves
//	sokoban serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>      - Config file (default: search ~/.sokoban/configs and ./configs)
//	--db <path>          - Database path (default: ~/.sokoban/sokoban.db)
//	--pack <id>          - Level pack to play
//	--levels-dir <dir>   - Register a directory of level files as a pack
//	--debug              - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the embedded pack
	_ "github.com/vovakirdan/tui-sokoban/internal/levels/builtin"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagPack      string
	flagLevelsDir string
	flagDebug     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push boxes in your terminal",
	Long: `Sokoban is the warehouse puzzle: push every box onto a goal.
Boxes can be pushed but never pulled, one at a time.

Available commands:
  play      - Play the configured pack
  menu      - Interactive level picker
  console   - Line based play, one command per line
  list      - Show packs and levels
  validate  - Check level files
  scores    - View best solves
  serve     - Start SSH server for remote play

Examples:
  sokoban play
  sokoban play --level 3
  sokoban menu --pack classic
  sokoban console --levels-dir ./my-levels
  sokoban serve`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides storage.db_path)")
	rootCmd.PersistentFlags().StringVar(&flagPack, "pack", "", "Level pack ID (overrides levels.pack)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of level files to register as a pack")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
