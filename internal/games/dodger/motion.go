package dodger

// step runs one motion and collision frame. Must be called with s.mu held.
//
// The player hitbox is captured once so every projectile in the frame is
// tested against the same position. A projectile is dropped on its first
// hit, so it can never deal damage twice. If a hit ends the game, the rest
// of the projectiles are left where they are.
func (s *Session) step() bool {
	if s.stopped || s.health.GameOver() {
		return false
	}
	s.frame++

	vp := s.viewport()
	size := s.cfg.Projectiles.Size
	target := s.player.hitbox(s.cfg.Player)

	kept := s.projectiles[:0]
	for i := range s.projectiles {
		if s.health.GameOver() {
			kept = append(kept, s.projectiles[i:]...)
			break
		}

		p := s.projectiles[i]
		p.advance()

		if p.hitbox(size).Intersects(target) {
			s.hit(p)
			continue
		}
		if p.offscreen(vp) {
			continue
		}
		kept = append(kept, p)
	}

	// Clear the tail so dropped projectiles are not retained
	for i := len(kept); i < len(s.projectiles); i++ {
		s.projectiles[i] = Projectile{}
	}
	s.projectiles = kept
	return true
}

// hit applies one projectile's damage.
func (s *Session) hit(p Projectile) {
	applied, ended := s.health.Damage(s.cfg.Projectiles.Damage)
	if !applied {
		return
	}
	s.emit(HitEvent{ProjectileID: p.ID, Health: s.health.Value()})
	if ended {
		s.endGame()
	}
}
