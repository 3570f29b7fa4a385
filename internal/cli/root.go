// Package cli implements the command-line interface for PVC.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/kilupskalvis/pvc/internal/config"
	"github.com/kilupskalvis/pvc/internal/store"
	"github.com/spf13/cobra"
)

// dim renders secondary output (empty-state notices, diff context).
var dim = color.New(color.Faint)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config *config.Config
	Store  *store.Store
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Store != nil {
		c.Store.Close()
	}
}

// initContext initializes config and store
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		exitError("failed to open store: %v", err)
	}

	if err := st.Initialize(); err != nil {
		st.Close()
		exitError("failed to initialize store: %v", err)
	}

	return &cmdContext{Config: cfg, Store: st}
}

var rootCmd = &cobra.Command{
	Use:   "pvc",
	Short: "Version control for LLM prompts",
	Long: `PVC is a git-like CLI tool for version controlling LLM prompts.
Commit prompt versions, inspect their history, diff any two versions,
and restore past versions by full or short hash.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(tagCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// exitResolveError reports a resolution failure; NotFound, AmbiguousID,
// and Validation errors are expected-path and printed verbatim.
func exitResolveError(err error) {
	var notFound *store.NotFoundError
	var ambiguous *store.AmbiguousIDError
	var invalid *store.ValidationError
	if errors.As(err, &notFound) || errors.As(err, &ambiguous) || errors.As(err, &invalid) {
		exitError("%v", err)
	}
	exitError("failed to resolve snapshot: %v", err)
}
