package cli

import (
	"fmt"

	"github.com/alexanderramin/orthoplan/internal/cli/formatter"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/spf13/cobra"
)

func newLibraryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Manage saved plans",
	}

	cmd.AddCommand(
		newLibraryListCmd(app),
		newLibraryShowCmd(app),
		newLibraryImportCmd(app),
		newLibraryRemoveCmd(app),
		newLibraryOpenCmd(app),
	)

	return cmd
}

func newLibraryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved plans, most recently updated first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Library.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLibraryList(entries))
			return nil
		},
	}
}

func newLibraryShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Library.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("library entry %q: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writePlanJSON(out, entry.Plan)
			}

			fmt.Fprintln(out, formatter.Header(domain.CoalesceStr(entry.Label, entry.ShortID())))
			fmt.Fprintf(out, "%s  %s  saved %s, updated %s\n\n",
				formatter.TruncID(entry.ID),
				formatter.SourceBadge(entry.Source),
				formatter.HumanTimestamp(entry.SavedAt),
				formatter.HumanTimestamp(entry.UpdatedAt))
			fmt.Fprint(out, formatter.FormatPlanOutline(entry.Plan))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan JSON")
	return cmd
}

func newLibraryImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Save plan files to the library; nothing is saved if any file is invalid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Library.ImportFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, e := range entries {
				fmt.Fprintf(out, "Imported %s as %s\n", args[i], e.ShortID())
			}
			return nil
		},
	}
}

func newLibraryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a saved plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Library.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("library entry %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newLibraryOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open a saved plan in the viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Library.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("library entry %q: %w", args[0], err)
			}
			if !app.interactive() {
				return fmt.Errorf("open needs an interactive terminal; use 'orthoplan library show'")
			}
			return runTUI(cmd.Context(), app, &planLoadedMsg{
				plan:      entry.Plan,
				source:    entry.Source,
				origin:    domain.CoalesceStr(entry.Label, entry.ShortID()),
				libraryID: entry.ID,
			}, "")
		},
	}
}
