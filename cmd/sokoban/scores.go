package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var (
	flagScoresTUI   bool
	flagScoresLevel string
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [pack]",
	Short: "Show best solves",
	Long: `Display solve records for a pack: one line per solved level, or the
ranking of one level with --level.

Examples:
  sokoban scores
  sokoban scores classic --level 3
  sokoban scores --tui
  sokoban scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse records interactively")
	scoresCmd.Flags().StringVar(&flagScoresLevel, "level", "", "Rank the solves of one level (number or ID)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every record of the pack")
}

func runScores(_ *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	packID := a.cfg.Levels.Pack
	if len(args) == 1 {
		packID = args[0]
	}
	p, err := registry.Get(packID)
	if err != nil {
		fail("%v\nRun 'sokoban list' to see available packs.", err)
	}
	list, err := p.Levels()
	if err != nil {
		fail("%v", err)
	}

	a.openStore()
	if a.store == nil {
		fail("no database at %s", a.cfg.Storage.DBPath)
	}
	defer a.close()

	switch {
	case flagScoresClear:
		if err := a.store.ClearSolves(packID); err != nil {
			a.close()
			fail("%v", err)
		}
		fmt.Printf("Cleared records of pack %s.\n", packID)

	case flagScoresTUI:
		cfg := runtimeConfig()
		if _, err := tui.RunScoreboard(a.store, packID, list, cfg.ScreenW, cfg.ScreenH); err != nil {
			a.close()
			fail("%v", err)
		}

	case flagScoresLevel != "":
		i, err := resolveLevel(list, flagScoresLevel)
		if err != nil {
			a.close()
			fail("%v", err)
		}
		l := list[i]
		solves, err := a.store.BestSolves(packID, l.ID, 10)
		if err != nil {
			a.close()
			fail("retrieving solves: %v", err)
		}

		fmt.Printf("Best solves - %s level %d (%s)\n\n", packID, i+1, l.ID)
		if len(solves) == 0 {
			fmt.Println("No solves recorded yet.")
			return
		}
		fmt.Printf("  %-4s  %-6s  %-6s  %-12s  %s\n", "Rank", "Moves", "Pushes", "Player", "Date")
		fmt.Printf("  %-4s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "------", "------", "----")
		for rank, e := range solves {
			fmt.Printf("  %-4d  %-6d  %-6d  %-12s  %s\n",
				rank+1, e.Moves, e.Pushes, e.Player, e.CreatedAt.Format("2006-01-02 15:04"))
		}

	default:
		stats, err := a.store.PackStats(packID)
		if err != nil {
			a.close()
			fail("retrieving records: %v", err)
		}

		fmt.Printf("Records - %s (%d/%d solved)\n\n", p.Title(), len(stats), len(list))
		if len(stats) == 0 {
			fmt.Println("No solves recorded yet.")
			fmt.Println()
			fmt.Printf("Play 'sokoban play --pack %s' to set the first record!\n", packID)
			return
		}
		fmt.Printf("  %-4s  %-20s  %-6s  %-6s  %-6s  %s\n", "#", "Level", "Solves", "Moves", "Pushes", "Last")
		fmt.Printf("  %-4s  %-20s  %-6s  %-6s  %-6s  %s\n", "-", "-----", "------", "-----", "------", "----")
		for i, l := range list {
			s, ok := stats[l.ID]
			if !ok {
				continue
			}
			fmt.Printf("  %-4d  %-20s  %-6d  %-6d  %-6d  %s\n",
				i+1, l.ID, s.Solves, s.BestMoves, s.BestPushes, s.LastSolved.Format("2006-01-02"))
		}
	}
}
