package headless

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/dodger/internal/config"
	"github.com/vovakirdan/dodger/internal/games/dodger"
)

// Format selects the snapshot stream encoding.
type Format string

const (
	FormatJSON    Format = "json"    // One JSON object per line
	FormatMsgpack Format = "msgpack" // Concatenated MessagePack maps
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("headless: unknown format %q (want json or msgpack)", s)
}

// Options control a headless run.
type Options struct {
	Seed          int64
	FrameInterval time.Duration // Session time per frame
	MaxFrames     uint64        // 0 runs until game over
	EmitEvery     int           // Write every Nth frame; the last frame is always written
	Format        Format
	Viewport      dodger.Viewport
	Script        []ScriptedIntent
	Realtime      bool // Pace frames with the wall clock instead of simulating time
}

// DefaultOptions returns options for a 60 FPS run on a 1280x720 viewport.
func DefaultOptions() Options {
	return Options{
		FrameInterval: time.Second / 60,
		EmitEvery:     1,
		Format:        FormatJSON,
		Viewport:      dodger.Viewport{Width: 1280, Height: 720},
	}
}

// Result summarizes a finished run.
type Result struct {
	Frames        uint64
	Elapsed       time.Duration
	HealthPercent int
	GameOver      bool
	EndCause      string
}

type encoder interface {
	Encode(v any) error
}

// Runner drives one session and streams its snapshots.
type Runner struct {
	cfg    config.DodgerConfig
	opts   Options
	enc    encoder
	logger *log.Logger
}

// NewRunner creates a runner writing snapshots to out. The logger may be nil.
func NewRunner(cfg config.DodgerConfig, opts Options, out io.Writer, logger *log.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.FrameInterval <= 0 {
		return nil, fmt.Errorf("headless: non-positive frame interval %v", opts.FrameInterval)
	}
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		return nil, fmt.Errorf("headless: invalid viewport %vx%v", opts.Viewport.Width, opts.Viewport.Height)
	}
	if opts.EmitEvery <= 0 {
		opts.EmitEvery = 1
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &Runner{cfg: cfg, opts: opts, logger: logger}
	switch opts.Format {
	case FormatJSON, "":
		r.enc = json.NewEncoder(out)
	case FormatMsgpack:
		r.enc = msgpack.NewEncoder(out)
	default:
		return nil, fmt.Errorf("headless: unknown format %q", opts.Format)
	}
	return r, nil
}

// Run plays the session until game over, the frame limit or ctx ends.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	s := dodger.NewSession(r.cfg, r.opts.Seed, dodger.FixedViewport(r.opts.Viewport.Width, r.opts.Viewport.Height))
	s.SetEventHandler(dodger.LogEvents(r.logger))

	r.logger.Info("headless run",
		"seed", r.opts.Seed,
		"realtime", r.opts.Realtime,
		"max_frames", r.opts.MaxFrames,
		"script", len(r.opts.Script),
	)

	var err error
	if r.opts.Realtime {
		err = r.runRealtime(ctx, s)
	} else {
		err = r.runSimulated(ctx, s)
	}

	snap := s.Snapshot()
	res := Result{
		Frames:        snap.Frame,
		Elapsed:       time.Duration(snap.ElapsedMS) * time.Millisecond,
		HealthPercent: snap.HealthPercent,
		GameOver:      snap.GameOver,
		EndCause:      snap.EndCause,
	}
	r.logger.Info("headless run finished",
		"frames", res.Frames,
		"elapsed", res.Elapsed,
		"health", res.HealthPercent,
		"game_over", res.GameOver,
	)
	return res, err
}

// runSimulated advances session time by exactly one frame interval per
// frame, as fast as possible. Output depends only on seed and script.
func (r *Runner) runSimulated(ctx context.Context, s *dodger.Session) error {
	s.Start()
	defer s.Stop()

	script := r.opts.Script
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := s.Elapsed()
		for len(script) > 0 && script[0].At <= now {
			s.Intent(script[0].Intent)
			script = script[1:]
		}

		s.Tick(r.opts.FrameInterval)
		snap := s.Snapshot()

		last := snap.GameOver || (r.opts.MaxFrames > 0 && snap.Frame >= r.opts.MaxFrames)
		if last || snap.Frame%uint64(r.opts.EmitEvery) == 0 {
			if err := r.enc.Encode(snap); err != nil {
				return fmt.Errorf("headless: encode frame %d: %w", snap.Frame, err)
			}
		}
		if last {
			return nil
		}
	}
}

// runRealtime paces frames with the wall clock and delivers scripted
// intents from timers, concurrently with the frame loop.
func (r *Runner) runRealtime(ctx context.Context, s *dodger.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timers := make([]*time.Timer, 0, len(r.opts.Script))
	for _, si := range r.opts.Script {
		si := si
		timers = append(timers, time.AfterFunc(si.At, func() {
			s.Intent(si.Intent)
		}))
	}
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	var (
		encErr   error
		finished bool // Frames racing the cancellation are dropped
	)
	onFrame := func(snap dodger.Snapshot) {
		if encErr != nil || finished {
			return
		}

		limit := r.opts.MaxFrames > 0 && snap.Frame >= r.opts.MaxFrames
		if snap.GameOver || limit || snap.Frame%uint64(r.opts.EmitEvery) == 0 {
			if err := r.enc.Encode(snap); err != nil {
				encErr = fmt.Errorf("headless: encode frame %d: %w", snap.Frame, err)
				cancel()
				return
			}
		}
		if limit {
			finished = true
			cancel()
		}
	}

	err := s.Run(ctx, r.opts.FrameInterval, onFrame)
	if encErr != nil {
		return encErr
	}
	// Reaching the frame limit cancels the run; that is a normal finish.
	if finished && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
