package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dodger/internal/core"
	"github.com/vovakirdan/dodger/internal/platform/tui"
	"github.com/vovakirdan/dodger/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play dodger in the terminal",
	Long: `Start a game in the current terminal.

Controls:
  A/Left       - Move left
  D/Right      - Move right
  W/Up/Space   - Jump
  S/Down       - Duck
  R            - Restart (after game over)
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Logs are discarded unless --log-file is set, so they do not draw over
the game.

Examples:
  dodger play
  dodger play --fps 30 --seed 7
  dodger play --config ./dodger.yaml --log-file dodger.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create("dodger")
	if err != nil {
		return err
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed

	if err := tui.Run(game, cfg, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
