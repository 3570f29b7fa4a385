package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <prompt>",
	Short: "Show the latest committed version of a prompt",
	Args:  cobra.ExactArgs(1),
	Run:   runStatus,
}

const previewLimit = 400

func runStatus(cmd *cobra.Command, args []string) {
	prompt := args[0]

	c := initContext()
	defer c.Close()

	latest, err := c.Store.Latest(prompt)
	if err != nil {
		exitError("failed to get latest version: %v", err)
	}

	if latest == nil {
		dim.Printf("  No versions found for '%s'.\n", prompt)
		dim.Printf("  Tip: pvc commit %s <file> -m \"initial version\"\n", prompt)
		return
	}

	// Tag events are the authoritative label view; it includes both
	// commit-time labels and post-hoc tags.
	labels, err := c.Store.Labels(latest.ID)
	if err != nil {
		exitError("failed to get labels: %v", err)
	}

	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	bold := color.New(color.Bold)
	magenta := color.New(color.FgMagenta)

	fmt.Println()
	cyan.Print("Prompt: ")
	bold.Println(prompt)
	cyan.Print("Latest: ")
	yellow.Print(latest.ShortID())
	fmt.Printf("  —  %s\n", latest.Message)
	cyan.Print("Model:  ")
	fmt.Println(latest.Model)
	cyan.Print("Date:   ")
	fmt.Println(latest.CreatedAt.Format("2006-01-02  15:04") + " UTC")
	if len(labels) > 0 {
		cyan.Print("Labels: ")
		magenta.Println(strings.Join(labels, ", "))
	}

	fmt.Println()
	bold.Println("Content preview:")
	rule := strings.Repeat("─", 60)
	fmt.Println(rule)

	preview := latest.Content
	truncated := false
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
		truncated = true
	}
	fmt.Println(preview)
	if truncated {
		dim.Println("  … (truncated)")
	}

	fmt.Println(rule)
	fmt.Println()
}
