package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/pdf/gohyperion/internal/tui"
)

var cmdUI = &cobra.Command{
	Use:     `ui`,
	Short:   `interactive color picker`,
	PreRun:  setupClient,
	Run:     runUI,
	PostRun: closeClient,
}

func runUI(c *cobra.Command, args []string) {
	// Logs would corrupt the alternate screen
	if cfg.Log.File == `` {
		logger.Out = io.Discard
	}
	if err := tui.Run(client, cfg.Priority); err != nil {
		logger.WithField(`error`, err).Fatalln(`Color picker failed`)
	}
}
