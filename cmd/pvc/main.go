package main

import (
	"os"

	"github.com/kilupskalvis/pvc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
