// Package config provides YAML-based game configuration loading and
// validation for the dodger platform.
package config

import "time"

// DodgerConfig contains all configuration for the Dodger game.
// Positions and sizes are in simulation pixels; durations in milliseconds.
type DodgerConfig struct {
	Player      PlayerConfig     `yaml:"player"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Platform    PlatformConfig   `yaml:"platform"`
	Falling     FallingConfig    `yaml:"falling"`
	Health      HealthConfig     `yaml:"health"`
	Render      RenderConfig     `yaml:"render"`
}

// PlayerConfig defines the player's geometry and movement.
type PlayerConfig struct {
	StartTop      float64     `yaml:"start_top"`
	StartLeft     float64     `yaml:"start_left"`
	Baseline      float64     `yaml:"baseline"`     // Resting top position
	Width         float64     `yaml:"width"`        // Hitbox width
	Height        float64     `yaml:"height"`       // Hitbox height
	MoveStep      float64     `yaml:"move_step"`    // Horizontal shift per left/right intent
	DuckStep      float64     `yaml:"duck_step"`    // Max downward shift per duck intent
	JumpOffset    float64     `yaml:"jump_offset"`  // Upward displacement on jump
	JumpCeiling   float64     `yaml:"jump_ceiling"` // Minimum top reachable by a jump
	JumpFrameMS   int         `yaml:"jump_frame_ms"`
	JumpRestoreMS int         `yaml:"jump_restore_ms"`
	Frames        FrameCounts `yaml:"frames"`
}

// FrameCounts is the number of animation frames per player action.
type FrameCounts struct {
	Idle  int `yaml:"idle"`
	Left  int `yaml:"left"`
	Right int `yaml:"right"`
	Jump  int `yaml:"jump"`
	Dock  int `yaml:"dock"`
}

// ProjectileConfig defines projectile spawning and damage.
type ProjectileConfig struct {
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"`
	Speed           float64 `yaml:"speed"` // Pixels per rendered frame
	Size            float64 `yaml:"size"`  // Square hitbox edge
	Damage          int     `yaml:"damage"`
}

// PlatformConfig is the region the player must stay over.
// It extends downward from Top without limit.
type PlatformConfig struct {
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
	Top   float64 `yaml:"top"`
}

// FallingConfig defines the platform check and fall animation.
type FallingConfig struct {
	CheckIntervalMS int     `yaml:"check_interval_ms"`
	Step            float64 `yaml:"step"` // Descent per check while falling
}

// HealthConfig defines the health pool.
type HealthConfig struct {
	Max int `yaml:"max"`
}

// RenderConfig maps simulation pixels to terminal cells.
type RenderConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// JumpFrameInterval returns the jump animation sub-interval.
func (c PlayerConfig) JumpFrameInterval() time.Duration {
	return time.Duration(c.JumpFrameMS) * time.Millisecond
}

// JumpRestoreDelay returns the delay of the fixed position restore after a jump.
func (c PlayerConfig) JumpRestoreDelay() time.Duration {
	return time.Duration(c.JumpRestoreMS) * time.Millisecond
}

// SpawnInterval returns the spawner period.
func (c ProjectileConfig) SpawnInterval() time.Duration {
	return time.Duration(c.SpawnIntervalMS) * time.Millisecond
}

// CheckInterval returns the platform monitor period.
func (c FallingConfig) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalMS) * time.Millisecond
}
