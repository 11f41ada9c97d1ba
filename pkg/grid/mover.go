package grid

import "time"

// StepDuration is the fixed length of one tile-to-tile move animation.
const StepDuration = 200 * time.Millisecond

// Mover is the grid movement controller. It owns the player's committed
// position and facing, validates move attempts against terrain and
// occupancy, and runs the tile-to-tile tween. The arrival callback is
// invoked exactly once per completed move, strictly after the position
// is committed and the moving flag is cleared, so handlers may open
// modal sessions or request scene transitions without interference.
type Mover struct {
	terrain  *Terrain
	occupied func(Position) bool
	onArrive func(Position)

	pos    Position
	facing Facing

	moving  bool
	from    Position
	to      Position
	elapsed time.Duration
}

// NewMover places a mover at start. occupied may be nil (no occupancy
// checks); onArrive may be nil (no trigger evaluation).
func NewMover(terrain *Terrain, start Position, occupied func(Position) bool, onArrive func(Position)) *Mover {
	return &Mover{
		terrain:  terrain,
		occupied: occupied,
		onArrive: onArrive,
		pos:      start,
		facing:   FaceFront,
	}
}

// Position returns the committed tile position.
func (m *Mover) Position() Position { return m.pos }

// Facing returns the current facing direction.
func (m *Mover) Facing() Facing { return m.facing }

// IsMoving reports whether a move tween is in progress.
func (m *Mover) IsMoving() bool { return m.moving }

// AttemptMove tries to step by the unit vector (dx, dy). Facing updates
// immediately even when the step is rejected. Returns true when the
// move was accepted and the tween started.
func (m *Mover) AttemptMove(dx, dy int) bool {
	if m.moving {
		return false
	}
	facing, ok := FacingFor(dx, dy)
	if !ok {
		return false
	}
	m.facing = facing

	target := m.pos.Add(dx, dy)
	if !m.terrain.Walkable(target.X, target.Y) {
		return false
	}
	if m.occupied != nil && m.occupied(target) {
		return false
	}

	m.moving = true
	m.from = m.pos
	m.to = target
	m.elapsed = 0
	return true
}

// Tick advances the move tween by dt. On completion it commits the
// position, clears the moving flag, and then fires the arrival callback.
// That ordering is load-bearing: arrival handlers may immediately start
// a new modal session or transition.
func (m *Mover) Tick(dt time.Duration) {
	if !m.moving {
		return
	}
	m.elapsed += dt
	if m.elapsed < StepDuration {
		return
	}

	m.pos = m.to
	m.moving = false
	if m.onArrive != nil {
		m.onArrive(m.pos)
	}
}

// VisualPosition returns the interpolated render position in tile
// units. Between tiles it lies on the segment from the departed tile to
// the target.
func (m *Mover) VisualPosition() (float64, float64) {
	if !m.moving {
		return float64(m.pos.X), float64(m.pos.Y)
	}
	t := float64(m.elapsed) / float64(StepDuration)
	if t > 1 {
		t = 1
	}
	x := float64(m.from.X) + (float64(m.to.X)-float64(m.from.X))*t
	y := float64(m.from.Y) + (float64(m.to.Y)-float64(m.from.Y))*t
	return x, y
}

// Teleport moves the player directly to pos without animation or
// arrival side effects. Used by scene setup and load-game.
func (m *Mover) Teleport(pos Position) {
	m.moving = false
	m.pos = pos
}
