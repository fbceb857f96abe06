package dodger

// EndCause records why a session reached game over.
type EndCause int

const (
	CauseNone   EndCause = iota
	CauseHealth          // Health reached zero from projectile hits
	CauseFall            // Player fell off the platform
)

// String returns a human-readable cause.
func (c EndCause) String() string {
	switch c {
	case CauseHealth:
		return "health depleted"
	case CauseFall:
		return "fell off the platform"
	default:
		return "none"
	}
}

// Health is the shared health pool and the one-way game-over flag.
// Every write goes through Damage or Deplete, which clamp and check the
// terminal condition in the same step.
type Health struct {
	value int
	max   int
	cause EndCause
}

// NewHealth creates a full health pool.
func NewHealth(max int) Health {
	return Health{value: max, max: max}
}

// Value returns the remaining health.
func (h Health) Value() int {
	return h.value
}

// Percent returns the remaining health as a percentage of the maximum.
func (h Health) Percent() int {
	if h.max <= 0 {
		return 0
	}
	return h.value * 100 / h.max
}

// GameOver reports whether the terminal state has been reached.
func (h Health) GameOver() bool {
	return h.cause != CauseNone
}

// Cause returns why the game ended, or CauseNone.
func (h Health) Cause() EndCause {
	return h.cause
}

// Damage subtracts n, clamped at zero. Returns whether damage was applied
// and whether this call ended the game. A no-op once the game is over.
func (h *Health) Damage(n int) (applied, ended bool) {
	if h.GameOver() {
		return false, false
	}
	h.value -= n
	if h.value < 0 {
		h.value = 0
	}
	if h.value == 0 {
		h.cause = CauseHealth
		return true, true
	}
	return true, false
}

// Deplete forces health to zero and ends the game with the given cause.
// Returns false if the game was already over.
func (h *Health) Deplete(cause EndCause) bool {
	if h.GameOver() {
		return false
	}
	h.value = 0
	h.cause = cause
	return true
}
