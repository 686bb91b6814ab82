package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
	"github.com/greaheisl/relaybox/internal/device"
	"github.com/greaheisl/relaybox/internal/scenario"
	"github.com/greaheisl/relaybox/internal/sim"
	"github.com/greaheisl/relaybox/realtime"
)

// Lower case keys tap a button, upper case keys toggle holding it.
var keyButtons = map[byte]device.ButtonFlags{
	'x': device.Escape,
	'a': device.Prev,
	'd': device.Next,
	's': device.Enter,
}

const keyHelp = "keys: x escape, a prev, d next, s enter (upper case holds), m matrix, q quit"

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the box interactively on the terminal",
	Long: `Runs the box in real time. Key strokes act as button presses; hold Escape
for two seconds (X) or press q to stop. Options and relay settings can be
taken from a scenario file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("scenario")
		tap, _ := cmd.Flags().GetDuration("tap")
		maxDelay, _ := cmd.Flags().GetDuration("max-delay")

		sc := scenario.Default()
		var rtc *device.RTCTime
		if path != "" {
			var err error
			if sc, err = scenario.LoadFile(path); err != nil {
				return err
			}
			rtc = &sc.Clock
		}

		in := os.Stdin
		eol := "\n"
		if term.IsTerminal(int(in.Fd())) {
			state, err := term.MakeRaw(int(in.Fd()))
			if err != nil {
				return fmt.Errorf("raw mode: %w", err)
			}
			defer term.Restore(int(in.Fd()), state)
			eol = "\r\n"
		}

		pr := newPrinter(cmd.OutOrStdout(), termenv.ColorProfile())
		pr.eol = eol
		pr.line("%s", keyHelp)

		err := playLive(cmd.Context(), in, pr, sc, rtc, tap, maxDelay)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("scenario", "", "Scenario file to take options and relay settings from")
	runCmd.Flags().Duration("tap", 150*time.Millisecond, "How long a tapped button stays pressed")
	runCmd.Flags().Duration("max-delay", time.Minute, "Longest pause between two steps")
}

// playLive runs the box against key strokes from in until the box shuts
// down, in is exhausted or ctx is cancelled. The RTC follows the local time
// unless rtc is set.
func playLive(ctx context.Context, in io.Reader, pr *printer, sc *scenario.Scenario, rtc *device.RTCTime, tap, maxDelay time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clock := realtime.NewWallClock()
	hw := newTerminalHardware(time.Now)
	if rtc != nil {
		hw.SetRTC(*rtc)
	}
	settings := sc.Settings.Clone()

	b := relaybox.NewExecutor[device.SignalFlags](clock.Now())
	box := device.NewBox(b.Scheduler(), hw)
	panel := sim.NewPanel(box, settings, hw.Relays, pr.record, sim.DefaultTimerDuration)
	task := device.Run(box, settings, sc.Options, panel.Run,
		device.WithLogger(logger),
		device.WithButtonEventHook(func(at relaybox.Instant, e buttons.Event[device.ButtonFlags]) {
			pr.record(sim.ButtonRecord(at, e))
		}),
		device.WithRelayHook(func(at relaybox.Instant, states device.RelayStates) {
			pr.record(sim.RelaysRecord(at, states))
		}),
	)
	exec := b.Build(task, relaybox.WithLogger(logger))
	rt := realtime.NewRuntime(exec, realtime.Config[device.SignalFlags]{
		Clock:    clock,
		Merge:    device.MergeSignals,
		MaxDelay: maxDelay,
		Logger:   logger,
	})

	go readKeys(in, hw, pr, tap, cancel, func() { rt.Notify(device.SignalButton) })
	return rt.Run(ctx)
}

// readKeys turns key strokes into button changes. It calls notify after
// each change and cancel at the end of input.
func readKeys(in io.Reader, hw *terminalHardware, pr *printer, tap time.Duration, cancel context.CancelFunc, notify func()) {
	defer cancel()
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		c := buf[0]
		switch {
		case c == 'q' || c == 3 || c == 4:
			return
		case c == 'm':
			for _, row := range renderMatrix(hw.Matrix()) {
				pr.line("%s", row)
			}
		case keyButtons[c] != 0:
			f := keyButtons[c]
			hw.press(f)
			notify()
			time.AfterFunc(tap, func() {
				hw.release(f)
				notify()
			})
		case c >= 'A' && c <= 'Z' && keyButtons[c+'a'-'A'] != 0:
			hw.toggle(keyButtons[c+'a'-'A'])
			notify()
		}
	}
}

// renderMatrix draws the LED matrix with one string per row.
func renderMatrix(m [3]uint32) []string {
	rows := make([]string, 8)
	for y := range rows {
		var sb strings.Builder
		for x := 0; x < 12; x++ {
			if device.Pixel(m, x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}
