package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kilupskalvis/pvc/internal/models"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit <prompt> <file>",
	Short: "Save a new version of a prompt from a file",
	Long: `Save the contents of <file> as a new version of <prompt>.

The version is identified by a content-addressable SHA-256 hash and can
later be retrieved by any unique prefix of it.`,
	Args: cobra.ExactArgs(2),
	Run:  runCommit,
}

var (
	commitMessage string
	commitModel   string
	commitLabels  string
)

func init() {
	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "Commit message (required)")
	commitCmd.Flags().StringVar(&commitModel, "model", "", "Target LLM model for this prompt")
	commitCmd.Flags().StringVar(&commitLabels, "labels", "", "Comma-separated labels, e.g. 'prod,stable'")
	commitCmd.MarkFlagRequired("message")
}

func runCommit(cmd *cobra.Command, args []string) {
	prompt, file := args[0], args[1]

	data, err := os.ReadFile(file)
	if err != nil {
		exitError("failed to read %s: %v", file, err)
	}
	content := string(data)

	if strings.TrimSpace(content) == "" {
		exitError("'%s' is empty. Nothing to commit", file)
	}

	c := initContext()
	defer c.Close()

	model := commitModel
	if model == "" {
		model = c.Config.DefaultModel
	}

	labels := []string{}
	for _, l := range strings.Split(commitLabels, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}

	id, err := c.Store.Commit(prompt, content, commitMessage, model, labels)
	if err != nil {
		exitError("%v", err)
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	green.Print("✓ ")
	fmt.Print("Committed [")
	yellow.Print(models.ShortID(id))
	fmt.Printf("] %s\n", commitMessage)
}
