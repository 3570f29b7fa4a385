package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/pvc/internal/diff"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <prompt> <hash-a> <hash-b>",
	Short: "Compare two versions of a prompt",
	Long: `Compare two versions of a prompt line by line.

<hash-a> and <hash-b> can be full or partial commit hashes.`,
	Args: cobra.ExactArgs(3),
	Run:  runDiff,
}

var diffContext int

func init() {
	diffCmd.Flags().IntVarP(&diffContext, "context", "c", 3, "Lines of context around each change")
}

func runDiff(cmd *cobra.Command, args []string) {
	prompt, hashA, hashB := args[0], args[1], args[2]

	c := initContext()
	defer c.Close()

	versionA, err := c.Store.Resolve(prompt, hashA)
	if err != nil {
		exitResolveError(err)
	}
	versionB, err := c.Store.Resolve(prompt, hashB)
	if err != nil {
		exitResolveError(err)
	}

	lines := diff.Compute(versionA.Content, versionB.Content)

	labelA := fmt.Sprintf("%s  (%s)", versionA.ShortID(), versionA.Message)
	labelB := fmt.Sprintf("%s  (%s)", versionB.ShortID(), versionB.Message)

	printDiff(lines, labelA, labelB, diffContext)
}

// printDiff renders a colorized, context-folded diff. Only lines within
// contextLines of a change are shown; gaps collapse into a dim "···".
func printDiff(lines []diff.Line, labelA, labelB string, contextLines int) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	stats := diff.Summarize(lines)

	dim.Printf("--- %s\n", labelA)
	dim.Printf("+++ %s\n\n", labelB)

	if stats.IsIdentical() {
		dim.Println("  Versions are identical.")
		return
	}

	// Mark every index within the context window of a change.
	visible := make([]bool, len(lines))
	for i, line := range lines {
		if line.Kind == diff.Unchanged {
			continue
		}
		for j := i - contextLines; j <= i+contextLines; j++ {
			if j >= 0 && j < len(lines) {
				visible[j] = true
			}
		}
	}

	lastPrinted := -1
	for i, line := range lines {
		if !visible[i] {
			continue
		}

		if lastPrinted >= 0 && i > lastPrinted+1 {
			dim.Println("  ···")
		}

		switch line.Kind {
		case diff.Added:
			green.Printf("+ %s\n", line.Text)
		case diff.Removed:
			red.Printf("- %s\n", line.Text)
		default:
			dim.Printf("  %s\n", line.Text)
		}

		lastPrinted = i
	}

	fmt.Println()
	green.Printf("  +%d", stats.Added)
	red.Printf("  -%d", stats.Removed)
	dim.Printf("  %d unchanged\n", stats.Unchanged)
}
