package cli

import (
	"fmt"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Open the interactive viewer, optionally on a plan file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && len(args) == 0 {
				return fmt.Errorf("--watch needs a plan file")
			}
			if !app.interactive() {
				return fmt.Errorf("view needs an interactive terminal; use 'orthoplan steps' to print a plan")
			}

			var initial *planLoadedMsg
			watchPath := ""
			if len(args) == 1 {
				p, err := app.Plans.LoadFile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				initial = &planLoadedMsg{plan: p, source: domain.SourceFile, origin: args[0]}
				if watch {
					watchPath = args[0]
				}
			}
			return runTUI(cmd.Context(), app, initial, watchPath)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the plan whenever the file changes")
	return cmd
}
