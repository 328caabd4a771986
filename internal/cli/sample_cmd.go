package cli

import (
	"fmt"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/spf13/cobra"
)

func newSampleCmd(app *App) *cobra.Command {
	var save bool
	var output string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in sample plan as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.Plans.Sample(cmd.Context())
			out := cmd.OutOrStdout()

			if save {
				entry, err := app.Library.Save(cmd.Context(), p, domain.SourceSample, "Sample")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved to library as %s\n", entry.ShortID())
				return nil
			}
			if output != "" {
				if err := writePlanFile(p, output); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote sample to %s\n", output)
				return nil
			}
			return writePlanJSON(out, p)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the sample to the library instead of printing it")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the sample JSON to this file")
	return cmd
}
