package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <prompt> <hash>",
	Short: "Restore a prompt to a specific version",
	Long: `Write the content of a past version back to a file.

<hash> can be a full or partial commit hash. The destination defaults
to <prompt>.txt in the current directory.`,
	Args: cobra.ExactArgs(2),
	Run:  runCheckout,
}

var checkoutOutput string

func init() {
	checkoutCmd.Flags().StringVarP(&checkoutOutput, "output", "o", "", "Destination file path (defaults to <prompt>.txt)")
}

func runCheckout(cmd *cobra.Command, args []string) {
	prompt, hash := args[0], args[1]

	c := initContext()
	defer c.Close()

	version, err := c.Store.Resolve(prompt, hash)
	if err != nil {
		exitResolveError(err)
	}

	outPath := checkoutOutput
	if outPath == "" {
		outPath = prompt + ".txt"
	}

	if err := os.WriteFile(outPath, []byte(version.Content), 0644); err != nil {
		exitError("failed to write %s: %v", outPath, err)
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	green.Print("✓ ")
	fmt.Print("Checked out [")
	yellow.Print(version.ShortID())
	fmt.Printf("] → %s\n", outPath)
}
