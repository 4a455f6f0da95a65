package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Check a directory of level files",
	Long: `Parse every level file under dir and report all broken ones.
Exits with status 1 when any file fails.

Supported formats: .yaml/.yml level files (an XSB layout or token
grids) and token pairs (<id>_map.txt with <id>_interactive.txt).

Examples:
  sokoban validate ./my-levels`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	list, problems, err := levels.NewLoader(args[0]).Validate()
	if err != nil {
		fail("%v", err)
	}

	for _, l := range list {
		fmt.Printf("  ok    %-20s  %dx%d  %s\n", l.ID, l.Static.Width(), l.Static.Height(), l.FilePath)
	}
	for _, p := range problems {
		fmt.Printf("  FAIL  %v\n", p)
	}
	fmt.Printf("\n%d levels ok, %d broken\n", len(list), len(problems))

	if len(problems) > 0 {
		os.Exit(1)
	}
}
