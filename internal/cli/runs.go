package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rigidsim/internal/app"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/export"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/tui"
	"github.com/san-kum/rigidsim/internal/viz"
	"github.com/spf13/cobra"
)

const maxPlots = 6

func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := opts.Store().List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs found")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSCENE\tPRESET\tTIME\tSTEPS\tDT\tBODIES\tSTATUS")
			for _, run := range runs {
				status := "done"
				if run.Cancelled {
					status = "stopped"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.4fs\t%d\t%s\n",
					run.ID,
					run.Scene,
					run.Preset,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Steps,
					run.Dt,
					run.Bodies,
					status,
				)
			}
			return w.Flush()
		},
	}
}

func NewPlotCommand(opts *RootOptions) *cobra.Command {
	var trail bool

	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body heights of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := opts.Store()
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			rec, err := st.LoadStates(args[0])
			if err != nil {
				return err
			}
			if rec.Len() == 0 {
				return fmt.Errorf("no data to plot")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run: %s\n", meta.ID)
			fmt.Fprintf(out, "scene: %s\n", meta.Scene)
			fmt.Fprintf(out, "samples: %d\n\n", rec.Len())

			for i := 0; i < rec.Bodies() && i < maxPlots; i++ {
				graph := asciigraph.Plot(rec.Heights(i),
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(fmt.Sprintf("body %d height (z) vs step", i)),
				)
				fmt.Fprintln(out, graph)
				fmt.Fprintln(out)
			}

			if trail {
				c := viz.NewCanvas(60, 15)
				c.Plot(viz.PathsXZ(rec))
				fmt.Fprintln(out, "x-z trail:")
				fmt.Fprint(out, c.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trail, "trail", false, "also draw the x-z trail of every body")
	return cmd
}

func NewExportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := opts.Store().Load(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(meta)
		},
	}
}

func NewExportJSONCommand(opts *RootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trajectory to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOutput(cmd, outPath, func(w io.Writer) error {
				return opts.Store().ExportJSON(args[0], w)
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func NewExportSVGCommand(opts *RootOptions) *cobra.Command {
	var (
		outPath string
		kind    string
		width   int
		height  int
	)

	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the x-z trajectory of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := opts.Store()
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			rec, err := st.LoadStates(args[0])
			if err != nil {
				return err
			}
			paths := viz.PathsXZ(rec)

			var svg string
			switch kind {
			case "trajectory":
				svg = export.TrajectoryToSVG(paths, width, height)
			case "canvas":
				c := viz.NewCanvas(width/8, height/16)
				c.Plot(paths)
				svg = export.CanvasToSVG(c, 4)
			case "frame":
				if rec.Len() > 0 {
					svg = export.ScreenToSVG(lastFrame(meta, rec), 16)
				}
			default:
				return fmt.Errorf("unknown svg kind %q: must be trajectory, canvas or frame", kind)
			}
			if svg == "" {
				return fmt.Errorf("no data to export")
			}

			return withOutput(cmd, outPath, func(w io.Writer) error {
				_, err := io.WriteString(w, svg)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&kind, "kind", "trajectory", "svg kind (trajectory|canvas|frame)")
	cmd.Flags().IntVar(&width, "width", 800, "image width")
	cmd.Flags().IntVar(&height, "height", 600, "image height")
	return cmd
}

// lastFrame draws the final recorded sample the way the screen display does.
func lastFrame(meta *storage.RunMetadata, rec *metrics.Recording) string {
	cfg := config.GetPreset(meta.Scene, meta.Preset)
	if cfg == nil {
		cfg = config.ForScene(meta.Scene)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	last := rec.Len() - 1
	scr := tui.NewScreen(io.Discard, tui.DefaultRows, tui.DefaultCols)
	app.LayoutFor(cfg).Draw(scr, rec.Times[last], rec.Positions[last])
	return scr.String()
}

// withOutput runs write against the named file, or the command's output
// when path is empty.
func withOutput(cmd *cobra.Command, path string, write func(w io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	return nil
}
