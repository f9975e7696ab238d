package main

import (
	"github.com/spf13/cobra"

	"github.com/spektr-org/marquee/internal/di"
	"github.com/spektr-org/marquee/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Explore the dashboard in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		injector, view, err := openCatalogue()
		if err != nil {
			return err
		}
		defer injector.Shutdown()

		// No pipeline logger: log lines would draw over the alt screen
		return tui.Run(view, di.EngineOptions(cfg, nil)...)
	},
}
