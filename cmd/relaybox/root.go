package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/greaheisl/relaybox/internal/logging"
)

var (
	logger    = logging.NewNop()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "relaybox",
	Short: "relaybox runs the button and relay logic of a relay timer box",
	Long: `relaybox drives the cooperative runtime of a relay timer box with four
buttons. Button sessions can be replayed from scenario files or played live
on the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		file, _ := cmd.Flags().GetString("log-file")
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}
		logger, logCloser, err = logging.New(level, file)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser == nil {
			return nil
		}
		return logCloser.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file, rotated by size")
}
