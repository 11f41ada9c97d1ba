package grid

// Tile is the terrain classification of one map cell.
type Tile uint8

const (
	TileOpen    Tile = iota // freely walkable
	TileRough               // walkable, reserved for slow/encounter ground
	TileBlocked             // impassable
)

// Walkable reports whether a character may stand on the tile.
func (t Tile) Walkable() bool {
	return t != TileBlocked
}

// Terrain holds the tile grid for one map. It is loaded once per scene
// and stays fixed during play except for scripted unlocks via SetTile.
type Terrain struct {
	width, height int
	tiles         [][]Tile
}

// NewTerrain builds a Terrain from row-major tile values. Rows must be
// non-empty and rectangular.
func NewTerrain(rows [][]Tile) *Terrain {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return &Terrain{}
	}
	return &Terrain{
		width:  len(rows[0]),
		height: len(rows),
		tiles:  rows,
	}
}

func (t *Terrain) Width() int  { return t.width }
func (t *Terrain) Height() int { return t.height }

// InBounds reports whether (x, y) is within the grid.
func (t *Terrain) InBounds(x, y int) bool {
	return x >= 0 && x < t.width && y >= 0 && y < t.height
}

// At returns the tile at (x, y). Out-of-bounds reads as blocked, which
// keeps passability checks branch-free for callers.
func (t *Terrain) At(x, y int) Tile {
	if !t.InBounds(x, y) {
		return TileBlocked
	}
	return t.tiles[y][x]
}

// SetTile replaces the tile at (x, y). Used only by scripted unlocks
// (e.g. a gate opened after a story event).
func (t *Terrain) SetTile(x, y int, tile Tile) {
	if !t.InBounds(x, y) {
		return
	}
	t.tiles[y][x] = tile
}

// Walkable reports whether (x, y) is in bounds and passable terrain.
func (t *Terrain) Walkable(x, y int) bool {
	return t.InBounds(x, y) && t.At(x, y).Walkable()
}
