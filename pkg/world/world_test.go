package world

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jwebster45206/tilequest/pkg/grid"
)

func validWorld() *World {
	return &World{
		Name: "oakvale_town",
		Terrain: [][]grid.Tile{
			{0, 0, 0},
			{0, 2, 0},
			{0, 0, 0},
		},
		HeroStart: grid.Position{X: 0, Y: 0},
		NPCs: []NPC{
			{ID: "elder", Name: "Elder Rowan", Position: grid.Position{X: 2, Y: 0},
				Lines: []string{"Welcome to Oakvale."}},
		},
		Triggers: []Trigger{
			{ID: "south_gate", Type: TriggerExit,
				Tiles: []grid.Position{{X: 1, Y: 2}},
				Exit:  &Exit{Map: "overworld", Position: grid.Position{X: 4, Y: 4}}},
		},
	}
}

func TestWorld_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*World)
		wantErr string
	}{
		{"valid world", func(w *World) {}, ""},
		{"missing name", func(w *World) { w.Name = "" }, "missing a name"},
		{"ragged terrain", func(w *World) { w.Terrain[1] = w.Terrain[1][:2] }, "width"},
		{"hero start blocked", func(w *World) { w.HeroStart = grid.Position{X: 1, Y: 1} }, "not walkable"},
		{"npc out of bounds", func(w *World) { w.NPCs[0].Position = grid.Position{X: 9, Y: 9} }, "out of bounds"},
		{"npc on hero start", func(w *World) { w.NPCs[0].Position = w.HeroStart }, "hero start tile"},
		{"duplicate trigger id", func(w *World) {
			w.Triggers = append(w.Triggers, w.Triggers[0])
		}, "duplicate trigger id"},
		{"exit without destination", func(w *World) { w.Triggers[0].Exit = nil }, "no destination"},
		{"unknown trigger type", func(w *World) { w.Triggers[0].Type = "portal" }, "unknown type"},
		{"trigger without region", func(w *World) { w.Triggers[0].Tiles = nil }, "no region"},
		{"battle without flag", func(w *World) {
			w.Triggers = append(w.Triggers, Trigger{ID: "fight", Type: TriggerBattle,
				Tiles: []grid.Position{{X: 0, Y: 2}}})
		}, "no completion flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWorld()
			tt.mutate(w)
			err := w.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWorld_MapDisplayName(t *testing.T) {
	w := &World{Name: "oakvale_town"}
	if got := w.MapDisplayName(); got != "Oakvale Town" {
		t.Errorf("MapDisplayName() = %q, want %q", got, "Oakvale Town")
	}

	w.DisplayName = "Oakvale Village"
	if got := w.MapDisplayName(); got != "Oakvale Village" {
		t.Errorf("declared display name not honored, got %q", got)
	}
}

func TestWorld_NewTerrainCopies(t *testing.T) {
	w := validWorld()
	terrain := w.NewTerrain()
	terrain.SetTile(1, 1, grid.TileOpen)

	if w.Terrain[1][1] != grid.TileBlocked {
		t.Error("scripted unlock mutated the loaded world data")
	}
}

func TestWorld_NPCAt(t *testing.T) {
	w := validWorld()
	if npc := w.NPCAt(grid.Position{X: 2, Y: 0}); npc == nil || npc.ID != "elder" {
		t.Errorf("NPCAt = %v, want elder", npc)
	}
	if npc := w.NPCAt(grid.Position{X: 0, Y: 2}); npc != nil {
		t.Errorf("NPCAt empty tile = %v, want nil", npc)
	}
}

func TestWorld_UnmarshalJSON(t *testing.T) {
	data := `{
		"name": "overworld",
		"terrain": [[0, 1], [2, 0]],
		"hero_start": {"x": 0, "y": 0},
		"triggers": [
			{"id": "plains", "type": "battle", "flag": "plains_cleared",
			 "rect": {"x1": 0, "y1": 0, "x2": 1, "y2": 0}, "battle": "plains_wolves"}
		]
	}`

	var w World
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if w.Terrain[0][1] != grid.TileRough {
		t.Errorf("terrain[0][1] = %v, want TileRough", w.Terrain[0][1])
	}
	if w.Triggers[0].Rect == nil || !w.Triggers[0].Rect.Contains(grid.Position{X: 1, Y: 0}) {
		t.Error("rect region not decoded")
	}
}
