package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/curvechart/signals"
)

func newRootCmd() *cobra.Command {
	var (
		interval   time.Duration
		outputName string
		signalList string
		seed       int64
		limit      int
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:   "curvechart-gen",
		Short: "Emit a synthetic CSV trace",
		Long: heredoc.Doc(`
			Emit a CSV trace of synthetic signals, one row per interval. The first
			column is the elapsed time in seconds.
		`),
		Example: heredoc.Doc(`
			# Pipe a live trace into the chart
			$ curvechart-gen --signals sine:2s,saw,walk | curvechart -

			# Record 500 samples to a file
			$ curvechart-gen --limit 500 --output trace.csv
		`),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("parsing log level: %w", err)
			}
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				Level:           level,
				Prefix:          "curvechart-gen",
			})
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %v", interval)
			}
			sigs, err := signals.Parse(signalList, seed)
			if err != nil {
				return err
			}

			var output io.WriteCloser
			if outputName == "-" {
				output = os.Stdout
			} else {
				f, err := os.Create(outputName)
				if err != nil {
					return fmt.Errorf("opening output file %q: %w", outputName, err)
				}
				output = f
			}
			defer func() {
				if err := output.Close(); err != nil {
					logger.Error("closing output", "err", err)
				}
			}()
			return generate(output, logger, sigs, interval, limit)
		},
	}
	cmd.Flags().DurationVarP(&interval, "interval", "i", 100*time.Millisecond, "Interval between samples")
	cmd.Flags().StringVarP(&outputName, "output", "o", "-", "Output file for CSV data")
	cmd.Flags().StringVarP(&signalList, "signals", "s", "sine,saw,walk", "Comma separated signals (sine, saw, walk), each with an optional :period")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Seed for random walks")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Stop after this many samples (0 runs until interrupted)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func generate(output io.Writer, logger *log.Logger, sigs []signals.Signal, interval time.Duration, limit int) error {
	if err := writeHeadings(output, sigs); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)

	start := time.Now()
	for written := 0; limit <= 0 || written < limit; written++ {
		select {
		case <-sigChan:
			// We've gotten an interrupt; shut down.
			logger.Info("interrupted", "samples", written)
			return nil
		case now := <-ticker.C:
			if err := writeRow(output, sigs, now.Sub(start)); err != nil {
				return err
			}
		}
	}
	logger.Debug("sample limit reached", "samples", limit)
	return nil
}

func writeHeadings(output io.Writer, sigs []signals.Signal) error {
	if _, err := io.WriteString(output, "elapsed (s)"); err != nil {
		return fmt.Errorf("writing headings: %w", err)
	}
	for _, s := range sigs {
		if _, err := fmt.Fprintf(output, ", %s", s.Name()); err != nil {
			return fmt.Errorf("writing headings: %w", err)
		}
	}
	_, err := fmt.Fprintln(output)
	return err
}

func writeRow(output io.Writer, sigs []signals.Signal, elapsed time.Duration) error {
	row := strconv.FormatFloat(elapsed.Seconds(), 'f', 3, 64)
	for _, s := range sigs {
		v, err := s.Read(elapsed)
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.Name(), err)
		}
		row += ", " + strconv.FormatFloat(v, 'f', 6, 64)
	}
	if _, err := fmt.Fprintln(output, row); err != nil {
		return fmt.Errorf("writing sample: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
