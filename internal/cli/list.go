package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all tracked prompts",
	Args:  cobra.NoArgs,
	Run:   runLs,
}

func runLs(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	prompts, err := c.Store.ListProjects()
	if err != nil {
		exitError("failed to list prompts: %v", err)
	}

	if len(prompts) == 0 {
		dim.Println("  No prompts tracked yet. Use 'pvc commit' to start.")
		return
	}

	bold := color.New(color.Bold)
	yellow := color.New(color.FgYellow)

	bold.Println("Tracked prompts:")
	fmt.Println()

	nameWidth := 0
	for _, name := range prompts {
		if len(name) > nameWidth {
			nameWidth = len(name)
		}
	}
	nameWidth += 2

	for _, name := range prompts {
		n, err := c.Store.CountVersions(name)
		if err != nil {
			exitError("failed to count versions: %v", err)
		}

		latest, err := c.Store.Latest(name)
		if err != nil {
			exitError("failed to get latest version: %v", err)
		}
		short := ""
		if latest != nil {
			short = latest.ShortID()
		}

		unit := "versions"
		if n == 1 {
			unit = "version"
		}

		fmt.Print("  • ")
		bold.Printf("%-*s", nameWidth, name)
		dim.Printf("  (%d %s)  ", n, unit)
		yellow.Printf("[%s]\n", short)
	}

	fmt.Println()
}
