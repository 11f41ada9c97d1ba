package grid

import "testing"

func TestTerrain_Walkable(t *testing.T) {
	terrain := NewTerrain([][]Tile{
		{TileOpen, TileRough, TileBlocked},
		{TileOpen, TileBlocked, TileOpen},
	})

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"open tile", 0, 0, true},
		{"rough tile is walkable", 1, 0, true},
		{"blocked tile", 2, 0, false},
		{"blocked interior", 1, 1, false},
		{"out of bounds negative", -1, 0, false},
		{"out of bounds x", 3, 0, false},
		{"out of bounds y", 0, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := terrain.Walkable(tt.x, tt.y); got != tt.want {
				t.Errorf("Walkable(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestTerrain_AtOutOfBoundsReadsBlocked(t *testing.T) {
	terrain := NewTerrain([][]Tile{{TileOpen}})
	if got := terrain.At(5, 5); got != TileBlocked {
		t.Errorf("expected out-of-bounds read to be TileBlocked, got %v", got)
	}
}

func TestTerrain_SetTileScriptedUnlock(t *testing.T) {
	terrain := NewTerrain([][]Tile{
		{TileOpen, TileBlocked},
	})

	if terrain.Walkable(1, 0) {
		t.Fatal("gate tile should start blocked")
	}

	terrain.SetTile(1, 0, TileOpen)
	if !terrain.Walkable(1, 0) {
		t.Error("gate tile should be walkable after unlock")
	}

	// Out-of-bounds writes are ignored.
	terrain.SetTile(9, 9, TileOpen)
	if terrain.At(9, 9) != TileBlocked {
		t.Error("out-of-bounds write should be a no-op")
	}
}
