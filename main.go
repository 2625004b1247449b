package main

import (
	"context"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"git.sr.ht/~whereswaldon/curvechart/backend"
	"git.sr.ht/~whereswaldon/curvechart/chart"
)

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "curvechart [trace.csv]",
		Short: "Plot CSV traces as animated line charts",
		Long: heredoc.Doc(`
			Plot a CSV trace whose first column is x and whose other columns are
			lines. A heading may pin a line's color with a trailing [#rrggbb].
			Pass - to read the trace from standard input.
		`),
		Example: heredoc.Doc(`
			# Follow a trace while it is being written
			$ curvechart --follow trace.csv

			# Plot a generated trace
			$ curvechart-gen | curvechart -
		`),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(v, cfgFile); err != nil {
				return err
			}
			logger, err := newLogger(v.GetString("log.level"))
			if err != nil {
				return err
			}
			cfg, err := chartConfig(v, logger)
			if err != nil {
				return err
			}
			go func() {
				if err := run(logger, cfg, args, v.GetString("state"), v.GetBool("follow")); err != nil {
					logger.Fatal("window failed", "err", err)
				}
				os.Exit(0)
			}()
			app.Main()
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "Config file (default is ./curvechart.yaml)")
	cmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().String("state", "", "File the view state is restored from at start and saved to on exit")
	cmd.Flags().Bool("follow", true, "Keep reading trace files as they grow")
	_ = v.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("state", cmd.Flags().Lookup("state"))
	_ = v.BindPFlag("follow", cmd.Flags().Lookup("follow"))
	return cmd
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
		Prefix:          "curvechart",
	})
	log.SetDefault(logger)
	return logger, nil
}

func run(logger *log.Logger, cfg chart.Config, args []string, statePath string, follow bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := app.NewWindow(app.Title("curvechart"))
	bundle := backend.NewBundle(ctx, backend.Options{
		Follow: follow,
		Logger: logger,
	})
	ws := backend.NewWindowState(ctx, bundle, w)
	expl := explorer.NewExplorer(w)
	ui, err := NewUI(ws, expl, cfg, logger, w.Invalidate)
	if err != nil {
		return err
	}
	defer ui.Close()
	if statePath != "" {
		if err := restoreState(statePath, ui); err != nil {
			logger.Warn("not restoring view state", "path", statePath, "err", err)
		}
	}
	if len(args) > 0 {
		if _, err := bundle.Datasource.LoadPath(args[0]); err != nil {
			logger.Error("loading trace", "err", err)
		}
	}

	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			if statePath != "" {
				if err := saveState(statePath, ui.Snapshot()); err != nil {
					logger.Error("saving view state", "path", statePath, "err", err)
				}
			}
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
