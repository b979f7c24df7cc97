package cli

import (
	"io"
	"log/slog"

	"github.com/san-kum/rigidsim/internal/app"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/spf13/cobra"
)

// RootOptions holds the flags shared by every command.
type RootOptions struct {
	DataDir string
	Verbose bool

	// LogOutput receives the structured log; stderr unless a test swaps it.
	LogOutput io.Writer
}

func (o *RootOptions) Logger() *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(o.LogOutput, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) Store() *storage.Store {
	return storage.New(o.DataDir)
}

func (o *RootOptions) App(out io.Writer) *app.App {
	return app.New(o.Logger(), o.Store(), out)
}

// NewRootCommand creates the rigidsim command tree. Logs go to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	opts := &RootOptions{LogOutput: logOut}

	cmd := &cobra.Command{
		Use:           "rigidsim",
		Short:         "fixed-step rigid body simulation harness",
		Long:          "Drives small rigid body scenes through a fixed number of timesteps and shows, records and plots the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DataDir, "data", ".rigidsim", "data directory")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(
		NewRunCommand(opts),
		NewListCommand(opts),
		NewPlotCommand(opts),
		NewExportCommand(opts),
		NewExportJSONCommand(opts),
		NewExportSVGCommand(opts),
		NewPresetsCommand(),
		NewScenesCommand(),
		NewBenchCommand(opts),
	)

	return cmd
}
