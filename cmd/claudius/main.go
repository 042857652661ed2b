// Package main is the entry point for the claudius CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/claudius/cmd/claudius/commands"
	"github.com/thoreinstein/claudius/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)

		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "%s\n", exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
