package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag <prompt> <hash>",
	Short: "Attach a label to a specific commit",
	Long: `Attach a label to an existing commit.

<hash> can be a full or partial commit hash. Tags are append-only and
never removed.`,
	Args: cobra.ExactArgs(2),
	Run:  runTag,
}

var tagLabel string

func init() {
	tagCmd.Flags().StringVarP(&tagLabel, "label", "l", "", "Tag label (required)")
	tagCmd.MarkFlagRequired("label")
}

func runTag(cmd *cobra.Command, args []string) {
	prompt, hash := args[0], args[1]
	label := strings.TrimSpace(tagLabel)

	c := initContext()
	defer c.Close()

	snap, err := c.Store.Tag(prompt, hash, label)
	if err != nil {
		exitResolveError(err)
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	magenta := color.New(color.FgMagenta)
	green.Print("✓ ")
	fmt.Print("Tagged [")
	yellow.Print(snap.ShortID())
	fmt.Print("] as ")
	magenta.Printf("%q\n", label)
}
