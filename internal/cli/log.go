package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <prompt>",
	Short: "Show commit history for a prompt",
	Long:  `Display the version history of a prompt, newest first.`,
	Args:  cobra.ExactArgs(1),
	Run:   runLog,
}

var logLimit int

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "Maximum number of commits to display")
}

func runLog(cmd *cobra.Command, args []string) {
	prompt := args[0]

	c := initContext()
	defer c.Close()

	history, err := c.Store.History(prompt)
	if err != nil {
		exitError("failed to get history: %v", err)
	}

	if len(history) == 0 {
		dim.Printf("  No history found for '%s'.\n", prompt)
		return
	}

	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	magenta := color.New(color.FgMagenta)

	shown := history
	if logLimit > 0 && len(history) > logLimit {
		shown = history[:logLimit]
	}

	for _, entry := range shown {
		yellow.Printf("commit %s\n", entry.ID)
		cyan.Print("Model:  ")
		fmt.Println(entry.Model)
		cyan.Print("Date:   ")
		fmt.Println(entry.CreatedAt.Format("Mon Jan 2 15:04:05 2006"))
		if len(entry.Labels) > 0 {
			cyan.Print("Labels: ")
			magenta.Println(strings.Join(entry.Labels, ", "))
		}
		fmt.Printf("\n    %s\n\n", entry.Message)
	}

	if omitted := len(history) - len(shown); omitted > 0 {
		dim.Printf("  … %d older commit(s) not shown. Use -n to see more.\n", omitted)
	}
}
