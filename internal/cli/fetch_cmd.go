package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/cli/formatter"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/importer"
	"github.com/alexanderramin/orthoplan/internal/nemo"
	"github.com/alexanderramin/orthoplan/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addRemoteFlags registers the per-request remote overrides on fs.
func addRemoteFlags(fs *pflag.FlagSet, o *nemo.Overrides) {
	fs.StringVar(&o.Env, "env", "", "Remote environment: production, preprod or development")
	fs.StringVar(&o.AuthHeader, "auth-header", "", "Simse auth header; configured credentials are used otherwise")
	fs.StringVar(&o.LookupURL, "lookup-url", "", "Lookup service URL, overriding the environment default")
}

func newFetchCmd(app *App) *cobra.Command {
	var (
		overrides nemo.Overrides
		version   int
		output    string
		save      bool
		label     string
		open      bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <document-id|url>",
		Short: "Retrieve a plan from the remote document store",
		Long: `Retrieve a plan from the remote document store and convert it to 0-based
steps. The argument is a bare document id or any URL containing one.
The plan is printed as JSON unless --output, --save or --open is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.RemoteRequest{Input: args[0], Overrides: overrides}
			if cmd.Flags().Changed("version") {
				if version < 0 {
					return fmt.Errorf("--version must not be negative")
				}
				req.Version = &version
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Fetching "+args[0]+"…")
			}
			p, err := app.Plans.FetchRemote(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				if err := writePlanFile(p, output); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s to %s\n", p.DisplayID(), output)
			}

			libraryID := ""
			if save {
				entry, err := app.Library.Save(cmd.Context(), p, domain.SourceRemote, strings.TrimSpace(label))
				if err != nil {
					return err
				}
				libraryID = entry.ID
				fmt.Fprintf(out, "Saved to library as %s\n", entry.ShortID())
			}

			if open {
				if !app.interactive() {
					return fmt.Errorf("--open needs an interactive terminal")
				}
				return runTUI(cmd.Context(), app, &planLoadedMsg{
					plan:      p,
					source:    domain.SourceRemote,
					origin:    p.ID,
					libraryID: libraryID,
				}, "")
			}

			if output == "" && !save {
				return writePlanJSON(out, p)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	addRemoteFlags(fs, &overrides)
	fs.IntVar(&version, "version", 0, "Document version (default latest)")
	fs.StringVarP(&output, "output", "o", "", "Write the plan JSON to this file")
	fs.BoolVar(&save, "save", false, "Save the plan to the library")
	fs.StringVar(&label, "label", "", "Library label used with --save")
	fs.BoolVar(&open, "open", false, "Open the plan in the viewer")

	return cmd
}

func writePlanJSON(w io.Writer, p *domain.Plan) error {
	data, err := importer.Marshal(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writePlanFile(p *domain.Plan, path string) error {
	data, err := importer.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
