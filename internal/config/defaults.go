package config

import (
	_ "embed"
)

//go:embed defaults/dodger.yaml
var defaultDodgerYAML []byte

// DefaultDodgerConfig returns the default Dodger configuration.
func DefaultDodgerConfig() DodgerConfig {
	return DodgerConfig{
		Player: PlayerConfig{
			StartTop:      250,
			StartLeft:     600,
			Baseline:      250,
			Width:         120,
			Height:        130,
			MoveStep:      10,
			DuckStep:      90,
			JumpOffset:    140,
			JumpCeiling:   50,
			JumpFrameMS:   100,
			JumpRestoreMS: 800,
			Frames: FrameCounts{
				Idle:  2,
				Left:  6,
				Right: 5,
				Jump:  7,
				Dock:  5,
			},
		},
		Projectiles: ProjectileConfig{
			SpawnIntervalMS: 1500,
			Speed:           1,
			Size:            50,
			Damage:          20,
		},
		Platform: PlatformConfig{
			Left:  520,
			Right: 845,
			Top:   370,
		},
		Falling: FallingConfig{
			CheckIntervalMS: 100,
			Step:            10,
		},
		Health: HealthConfig{
			Max: 100,
		},
		Render: RenderConfig{
			CellWidth:  16, // 80 columns -> 1280px
			CellHeight: 30, // 24 rows -> 720px
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDodgerYAML
}
