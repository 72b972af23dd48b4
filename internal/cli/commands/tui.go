package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/signalboard/internal/controller"
	"github.com/leapstack-labs/signalboard/internal/tui"
)

// NewTUICommand creates the tui command.
func NewTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the dashboard in the terminal",
		Long: `Run the dashboard as an interactive terminal application.

Switch tabs with tab/shift+tab or the arrow keys, pick a scenario with its
number key, press r to reload the active tab and q to quit.`,
		Example: `  signalboard tui
  signalboard tui --data-dir ./fixtures`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			page := controller.NewRecorder()
			ctrl, _ := cc.NewController(page)
			return tui.Run(cmd.Context(), ctrl, page, textStyles(cc.Renderer))
		},
	}
}
