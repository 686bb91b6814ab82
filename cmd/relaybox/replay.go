package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/greaheisl/relaybox/internal/metrics"
	"github.com/greaheisl/relaybox/internal/production"
	"github.com/greaheisl/relaybox/internal/scenario"
	"github.com/greaheisl/relaybox/internal/sim"
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>...",
	Short: "Replay button scenarios in the simulator",
	Long: `Loads each scenario file, replays its button readings against the box in
simulated time and prints the resulting trace.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outDir, _ := cmd.Flags().GetString("out")
		withMetrics, _ := cmd.Flags().GetBool("metrics")
		maxSteps, _ := cmd.Flags().GetUint64("max-steps")

		var store production.TraceStore
		if outDir != "" {
			if format == "text" {
				return errors.New("--out needs --format json or yaml")
			}
			var err error
			if store, err = production.NewTraceStore(format, outDir); err != nil {
				return err
			}
		}

		reg := prometheus.NewRegistry()
		collector, err := metrics.New(reg)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		pr := newPrinter(w, termenv.ColorProfile())
		for _, path := range args {
			sc, err := scenario.LoadFile(path)
			if err != nil {
				return err
			}
			trace, err := sim.New(sc,
				sim.WithLogger(logger),
				sim.WithMaxSteps(maxSteps),
				sim.WithObserver(collector),
				sim.WithRecordHook(collector.ObserveRecord),
			).Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("replay %s: %w", path, err)
			}

			switch {
			case store != nil:
				fn, err := store.Save(cmd.Context(), trace)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, fn)
			case format == "text":
				pr.trace(trace)
			case format == "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(trace); err != nil {
					return fmt.Errorf("json marshal: %w", err)
				}
			case format == "yaml":
				enc := yaml.NewEncoder(w)
				if err := enc.Encode(trace); err != nil {
					return fmt.Errorf("yaml marshal: %w", err)
				}
				if err := enc.Close(); err != nil {
					return fmt.Errorf("yaml marshal: %w", err)
				}
			default:
				return fmt.Errorf("%w: %q", production.ErrUnknownFormat, format)
			}
		}

		if withMetrics {
			return metrics.WriteText(w, reg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
	replayCmd.Flags().StringP("out", "o", "", "Store traces in this directory instead of printing them")
	replayCmd.Flags().Bool("metrics", false, "Print Prometheus metrics after the runs")
	replayCmd.Flags().Uint64("max-steps", sim.DefaultMaxSteps, "Step budget of each run")
}
