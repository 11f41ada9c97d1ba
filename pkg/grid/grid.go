package grid

import "fmt"

// Position is a discrete tile coordinate. The player and every NPC
// occupy exactly one tile.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Facing is the direction a character sprite is looking.
type Facing string

const (
	FaceFront Facing = "front" // toward the camera (down)
	FaceBack  Facing = "back"  // away from the camera (up)
	FaceLeft  Facing = "left"
	FaceRight Facing = "right"
)

// FacingFor maps a unit move vector to a facing. Facing updates even
// when the move itself is rejected, so bumping a wall still turns the
// character toward it.
func FacingFor(dx, dy int) (Facing, bool) {
	switch {
	case dx == 0 && dy == 1:
		return FaceFront, true
	case dx == 0 && dy == -1:
		return FaceBack, true
	case dx == -1 && dy == 0:
		return FaceLeft, true
	case dx == 1 && dy == 0:
		return FaceRight, true
	default:
		return "", false
	}
}
