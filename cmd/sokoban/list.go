package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var flagListDifficulty string

var listCmd = &cobra.Command{
	Use:   "list [pack]",
	Short: "List packs, or the levels of a pack",
	Long: `Without arguments, shows every registered pack. With a pack ID,
shows its levels in play order.

Examples:
  sokoban list
  sokoban list classic
  sokoban list classic --difficulty easy
  sokoban list --levels-dir ./my-levels my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListDifficulty, "difficulty", "any", "Only levels of this difficulty: any, easy, medium, hard")
}

func runList(_ *cobra.Command, args []string) {
	if _, err := newApp(); err != nil {
		fail("%v", err)
	}
	if len(args) == 0 {
		listPacks()
		return
	}
	listLevels(args[0])
}

func listPacks() {
	packs := registry.List()
	if len(packs) == 0 {
		fmt.Println("No packs available.")
		return
	}

	fmt.Println("Available packs:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, p := range packs {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'sokoban list <id>' to see its levels.")
}

func listLevels(packID string) {
	d, err := config.ParseDifficulty(flagListDifficulty)
	if err != nil {
		fail("%v", err)
	}
	p, err := registry.Get(packID)
	if err != nil {
		fail("%v\nRun 'sokoban list' to see available packs.", err)
	}
	list, err := p.Levels()
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Pack %s - %s\n\n", p.ID(), p.Title())
	fmt.Printf("  %-4s  %-20s  %-20s  %-8s  %s\n", "#", "ID", "Name", "Level", "Size")
	fmt.Printf("  %-4s  %-20s  %-20s  %-8s  %s\n", "-", "--", "----", "-----", "----")

	shown := 0
	for i, l := range list {
		if !d.Matches(l.Metadata) {
			continue
		}
		shown++
		fmt.Printf("  %-4d  %-20s  %-20s  %-8s  %dx%d\n",
			i+1, l.ID, l.Name, l.Metadata["difficulty"], l.Static.Width(), l.Static.Height())
	}
	if shown == 0 {
		fmt.Printf("  No %s levels.\n", d)
	}
}
