package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/san-kum/rigidsim/internal/app"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/spf13/cobra"
)

type RunOptions struct {
	*RootOptions
	ConfigFile string
	Preset     string
	Steps      int
	Dt         float64
	Display    string
	Save       bool
}

func NewRunCommand(root *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: root}

	cmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene",
		Long: `Run a scene for a fixed number of steps.

Settings are applied in order: scene defaults, --preset, --config, then any
flag given explicitly.

Example:
  rigidsim run bounce
  rigidsim run chain --preset long --display live
  rigidsim run --config sim.yaml --steps 200`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScene(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&opts.Preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&opts.Steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&opts.Dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().StringVar(&opts.Display, "display", "", "display mode (text|screen|live)")
	cmd.Flags().BoolVar(&opts.Save, "save", true, "save the run to the data directory")

	return cmd
}

// resolveConfig layers scene defaults, preset, config file and explicit flags.
func resolveConfig(cmd *cobra.Command, opts *RunOptions, args []string) (*config.Config, error) {
	var fileCfg *config.Config
	if opts.ConfigFile != "" {
		var err error
		fileCfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	sceneName := "freefall"
	switch {
	case len(args) > 0:
		sceneName = args[0]
	case fileCfg != nil:
		sceneName = fileCfg.Scene
	}

	cfg := config.ForScene(sceneName)
	if cfg == nil {
		cfg = config.DefaultConfig()
		cfg.Scene = sceneName
	}

	if opts.Preset != "" {
		preset := config.GetPreset(sceneName, opts.Preset)
		if preset == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", opts.Preset, config.ListPresets(sceneName))
		}
		cfg = preset
	}

	if fileCfg != nil {
		cfg = fileCfg
		cfg.Scene = sceneName
	}

	if cmd.Flags().Changed("steps") {
		cfg.Steps = opts.Steps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = opts.Dt
	}
	if cmd.Flags().Changed("display") {
		cfg.Display.Mode = opts.Display
	}
	return cfg, nil
}

func runScene(cmd *cobra.Command, opts *RunOptions, args []string) error {
	cfg, err := resolveConfig(cmd, opts, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	res, err := opts.App(out).Run(cmd.Context(), app.Options{
		Config: cfg,
		Preset: opts.Preset,
		Save:   opts.Save,
	})
	if err != nil {
		return err
	}

	printSummary(out, res)
	return nil
}

func printSummary(w io.Writer, res *app.Result) {
	fmt.Fprintln(w)
	if res.Cancelled {
		fmt.Fprintf(w, "stopped after %d steps\n", res.Steps)
	} else {
		fmt.Fprintf(w, "completed %d steps in %v\n", res.Steps, res.Elapsed)
	}
	if res.RunID != "" {
		fmt.Fprintf(w, "run id: %s\n", res.RunID)
	}

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, res.Metrics[name])
	}
}
