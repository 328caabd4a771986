package cli

import (
	"context"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/importer"
	"github.com/alexanderramin/orthoplan/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans   service.PlanService
	Library service.LibraryService

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "orthoplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "orthoplan",
		Short: "Aligner treatment plan viewer and editor",
		Long: `orthoplan shows an aligner treatment plan step by step: which teeth carry
attachments, where interproximal reduction is performed and how much has
been removed so far. Plans come from pasted JSON, local files, the remote
document store or the local library.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(cmd.Context(), app, nil, "")
		},
	}

	root.AddCommand(
		newViewCmd(app),
		newFetchCmd(app),
		newStepsCmd(app),
		newSampleCmd(app),
		newLibraryCmd(app),
	)

	return root
}

// runTUI starts the full-screen interface. With initial set it opens straight
// on the plan; with watchPath set the file is re-read whenever it changes.
func runTUI(ctx context.Context, app *App, initial *planLoadedMsg, watchPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	model := newAppModel(app, initial)
	model.state.Watching = watchPath

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if watchPath != "" {
		w, err := importer.NewWatcher(watchPath,
			func(plan *domain.Plan) { p.Send(fileReloadedMsg{plan: plan}) },
			func(err error) { p.Send(fileWatchErrorMsg{err: err}) },
		)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
