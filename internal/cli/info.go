package cli

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/san-kum/rigidsim/internal/app"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/scene"
	"github.com/spf13/cobra"
)

func NewPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Fprintf(out, "no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return nil
		},
	}
}

func NewScenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "list scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := scene.NewRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range reg.List() {
				fmt.Fprintf(w, "%s\t%s\n", name, reg.Describe(name))
			}
			return w.Flush()
		},
	}
}

func NewBenchCommand(opts *RootOptions) *cobra.Command {
	var (
		members  int
		parallel int
		steps    int
		preset   string
	)

	cmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "run independent copies of a scene concurrently and report throughput",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.ForScene(args[0])
			if cfg == nil {
				return fmt.Errorf("%w: %s", scene.ErrUnknownScene, args[0])
			}
			if preset != "" {
				if cfg = config.GetPreset(args[0], preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(args[0]))
				}
			}
			cfg.Steps = steps

			res, err := opts.App(cmd.OutOrStdout()).Bench(cmd.Context(), cfg, members, parallel)
			if err != nil {
				return err
			}
			return printBench(cmd, res)
		},
	}

	cmd.Flags().IntVar(&members, "members", 8, "number of independent worlds")
	cmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "worlds stepped at once")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "steps per world")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	return cmd
}

func printBench(cmd *cobra.Command, res *app.BenchResult) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tWORLDS\tSTEPS\tTIME\tSTEPS/SEC")
	fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n", res.Scene, res.Members, res.Steps, res.Elapsed, res.StepsPerSec)
	return w.Flush()
}
