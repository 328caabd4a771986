package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/orthoplan/internal/cli/formatter"
	"github.com/alexanderramin/orthoplan/internal/derive"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/playback"
	"github.com/spf13/cobra"
)

func newStepsCmd(app *App) *cobra.Command {
	var (
		step     int
		play     bool
		interval time.Duration
		outline  bool
	)

	cmd := &cobra.Command{
		Use:   "steps <file|->",
		Short: "Print a plan's step breakdown, or one step in detail",
		Long: `Print a plan without opening the viewer. With no flags every step is listed
with its active attachments and IPR. --step renders the tooth map for one
step, --play walks through the steps on a timer and --outline prints the
plan as a tree. Use - to read the plan from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPlanArg(cmd, app, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case outline:
				fmt.Fprint(out, formatter.FormatPlanOutline(p))
			case play:
				if interval <= 0 {
					return fmt.Errorf("--interval must be positive")
				}
				return playback.Run(cmd.Context(), playback.New(p), interval, func(c *playback.Controller) {
					fmt.Fprintln(out, stepLine(c))
				})
			case cmd.Flags().Changed("step"):
				if step < 0 {
					return fmt.Errorf("--step must not be negative")
				}
				c := playback.New(p)
				c.Seek(step)
				fmt.Fprintln(out, formatter.FormatStepReport(p, c.Step(), c.Label()))
			default:
				fmt.Fprint(out, formatter.FormatStepTable(p))
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&step, "step", 0, "Render the tooth map for this step")
	fs.BoolVar(&play, "play", false, "Print every step in turn on a timer")
	fs.DurationVar(&interval, "interval", playback.Interval, "Time between steps with --play")
	fs.BoolVar(&outline, "outline", false, "Print the plan as a tree")

	return cmd
}

// readPlanArg loads a plan from a file path, or from stdin when arg is "-".
func readPlanArg(cmd *cobra.Command, app *App, arg string) (*domain.Plan, error) {
	if arg != "-" {
		return app.Plans.LoadFile(cmd.Context(), arg)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return app.Plans.ParsePasted(cmd.Context(), string(data))
}

// stepLine summarizes the controller's current step on one line.
func stepLine(c *playback.Controller) string {
	row := derive.RowAt(c.Plan(), c.Step())
	var ipr float64
	for _, e := range row.Ipr {
		ipr += e.Total()
	}
	return fmt.Sprintf("Step %3d / %d  %-22s  %2d attachments  IPR %s mm",
		c.Step(), c.MaxStep(), c.Label(), len(row.Attachments), formatter.Millimeters(ipr))
}
