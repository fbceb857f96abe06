package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name looked up in the user and local config directories.
const configFile = "dodger.yaml"

// LoadDodger loads Dodger configuration.
// Search order: customPath -> ~/.dodger/configs/dodger.yaml -> ./configs/dodger.yaml -> embedded default.
// Files only need to set the keys they override; everything else keeps its default.
func LoadDodger(customPath string) (DodgerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DodgerConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DodgerConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultDodgerYAML)
	if err != nil {
		return DefaultDodgerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (DodgerConfig, error) {
	cfg := DefaultDodgerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DodgerConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DodgerConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg DodgerConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dodger", "configs", filename)
}

// Validate reports every field that would break the simulation.
func (c DodgerConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("config: %s must be positive, got %v", name, v))
		}
	}

	p := c.Player
	positive("player.width", p.Width)
	positive("player.height", p.Height)
	positive("player.move_step", p.MoveStep)
	positive("player.duck_step", p.DuckStep)
	positive("player.jump_offset", p.JumpOffset)
	positive("player.jump_frame_ms", float64(p.JumpFrameMS))
	positive("player.jump_restore_ms", float64(p.JumpRestoreMS))
	positive("player.frames.idle", float64(p.Frames.Idle))
	positive("player.frames.left", float64(p.Frames.Left))
	positive("player.frames.right", float64(p.Frames.Right))
	positive("player.frames.jump", float64(p.Frames.Jump))
	positive("player.frames.dock", float64(p.Frames.Dock))
	if p.JumpCeiling > p.Baseline {
		errs = append(errs, fmt.Errorf("config: player.jump_ceiling (%v) must not be below player.baseline (%v)", p.JumpCeiling, p.Baseline))
	}

	positive("projectiles.spawn_interval_ms", float64(c.Projectiles.SpawnIntervalMS))
	positive("projectiles.speed", c.Projectiles.Speed)
	positive("projectiles.size", c.Projectiles.Size)
	if c.Projectiles.Damage < 0 {
		errs = append(errs, fmt.Errorf("config: projectiles.damage must not be negative, got %d", c.Projectiles.Damage))
	}

	if c.Platform.Right < c.Platform.Left {
		errs = append(errs, fmt.Errorf("config: platform.right (%v) is left of platform.left (%v)", c.Platform.Right, c.Platform.Left))
	}

	positive("falling.check_interval_ms", float64(c.Falling.CheckIntervalMS))
	positive("falling.step", c.Falling.Step)
	positive("health.max", float64(c.Health.Max))
	positive("render.cell_width", float64(c.Render.CellWidth))
	positive("render.cell_height", float64(c.Render.CellHeight))

	return errors.Join(errs...)
}
