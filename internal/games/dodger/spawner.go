package dodger

import (
	"math/rand"

	"github.com/vovakirdan/dodger/internal/config"
)

// Spawner creates projectiles at random screen edges.
type Spawner struct {
	rng    *rand.Rand
	cfg    config.ProjectileConfig
	nextID uint64
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, cfg config.ProjectileConfig) *Spawner {
	return &Spawner{
		rng: rand.New(rand.NewSource(seed)),
		cfg: cfg,
	}
}

// Next creates one projectile. A fair coin picks the kind: vertical ones
// enter at the top edge falling down, horizontal ones at the right edge
// moving left.
func (sp *Spawner) Next(vp Viewport) Projectile {
	sp.nextID++
	p := Projectile{
		ID:    sp.nextID,
		Speed: sp.cfg.Speed,
	}

	if sp.rng.Float64() < 0.5 {
		p.Kind = KindVertical
		p.Direction = DirectionDown
		p.Pos = Point{Top: 0, Left: sp.rng.Float64() * vp.Width}
	} else {
		p.Kind = KindHorizontal
		p.Direction = DirectionLeft
		p.Pos = Point{Top: sp.rng.Float64() * vp.Height, Left: vp.Width}
	}
	return p
}

// spawn is the spawner timer callback. Must be called with s.mu held.
func (s *Session) spawn() {
	if s.health.GameOver() {
		return
	}
	p := s.spawner.Next(s.viewport())
	s.projectiles = append(s.projectiles, p)
	s.emit(SpawnedEvent{Projectile: p})
}
