package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodger/internal/config"
	"github.com/vovakirdan/dodger/internal/platform/headless"
)

var (
	flagFrames    uint64
	flagEmitEvery int
	flagFormat    string
	flagScript    string
	flagRealtime  bool
	flagWidth     float64
	flagHeight    float64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session and stream snapshots",
	Long: `Run a session without a terminal and write its snapshots to stdout.

By default session time advances one frame interval per frame as fast as
possible, so the output depends only on --seed, --fps and --script.
With --realtime frames are paced by the wall clock instead.

Scripts are comma-separated intent@time entries. Intents are a/left,
d/right, w/jump and s/duck; times are Go durations from session start.

Examples:
  dodger sim --seed 1 --frames 600
  dodger sim --script "w@0s,a@800ms,a@810ms" --emit-every 10
  dodger sim --format msgpack --frames 0 > run.msgpack`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagFrames, "frames", 3600, "Frame limit (0 = until game over)")
	simCmd.Flags().IntVar(&flagEmitEvery, "emit-every", 1, "Write every Nth frame")
	simCmd.Flags().StringVar(&flagFormat, "format", "json", "Output format: json, msgpack")
	simCmd.Flags().StringVar(&flagScript, "script", "", "Scripted intents, e.g. \"w@0s,a@300ms\"")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace frames with the wall clock")
	simCmd.Flags().Float64Var(&flagWidth, "width", 1280, "Viewport width in pixels")
	simCmd.Flags().Float64Var(&flagHeight, "height", 720, "Viewport height in pixels")
}

func runSim(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.LoadDodger(flagConfig)
	if err != nil {
		return err
	}

	format, err := headless.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	script, err := headless.ParseScript(flagScript)
	if err != nil {
		return err
	}

	opts := headless.DefaultOptions()
	opts.Seed = flagSeed
	if flagFPS > 0 {
		opts.FrameInterval = time.Second / time.Duration(flagFPS)
	}
	opts.MaxFrames = flagFrames
	opts.EmitEvery = flagEmitEvery
	opts.Format = format
	opts.Viewport.Width = flagWidth
	opts.Viewport.Height = flagHeight
	opts.Script = script
	opts.Realtime = flagRealtime

	runner, err := headless.NewRunner(cfg, opts, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Warn("interrupted", "frames", res.Frames)
		return nil
	}
	return err
}
