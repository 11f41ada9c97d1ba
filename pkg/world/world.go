package world

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/tilequest/pkg/grid"
)

// Unlock is a scripted terrain patch gated on a story flag. Applied on
// scene load when the flag is already set, and at the moment the flag
// becomes set during play (e.g. a gate tile opened after a story event).
type Unlock struct {
	Flag string        `json:"flag"`
	Tile grid.Position `json:"tile"`
	To   grid.Tile     `json:"to"`
}

// World is the declarative map file for one scene: terrain grid, NPC
// placements, hero start, and trigger regions. Consumed read-only at
// scene start.
type World struct {
	Name        string        `json:"name"`                   // file key, lowercase snake_case
	DisplayName string        `json:"display_name,omitempty"` // shown in save previews; derived from Name when absent
	Terrain     [][]grid.Tile `json:"terrain"`
	HeroStart   grid.Position `json:"hero_start"`
	NPCs        []NPC         `json:"npcs,omitempty"`
	Triggers    []Trigger     `json:"triggers,omitempty"`
	Unlocks     []Unlock      `json:"unlocks,omitempty"`
}

var titleCaser = cases.Title(language.English)

// MapDisplayName returns the world's display name, deriving a
// title-cased name from the file key when none is declared
// ("oakvale_town" -> "Oakvale Town").
func (w *World) MapDisplayName() string {
	if w.DisplayName != "" {
		return w.DisplayName
	}
	return titleCaser.String(strings.ReplaceAll(w.Name, "_", " "))
}

// NewTerrain builds the runtime terrain grid from the declared rows.
func (w *World) NewTerrain() *grid.Terrain {
	// Copy so scripted unlocks never mutate the loaded file data.
	rows := make([][]grid.Tile, len(w.Terrain))
	for y, row := range w.Terrain {
		rows[y] = append([]grid.Tile(nil), row...)
	}
	return grid.NewTerrain(rows)
}

// NPCAt returns the NPC occupying pos, or nil.
func (w *World) NPCAt(pos grid.Position) *NPC {
	for i := range w.NPCs {
		if w.NPCs[i].Position == pos {
			return &w.NPCs[i]
		}
	}
	return nil
}

// Validate checks structural soundness of the world data. It is the
// authoring-time guard; the scene layer assumes a valid world.
func (w *World) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("world is missing a name")
	}
	if len(w.Terrain) == 0 || len(w.Terrain[0]) == 0 {
		return fmt.Errorf("world %s has an empty terrain grid", w.Name)
	}
	width := len(w.Terrain[0])
	for y, row := range w.Terrain {
		if len(row) != width {
			return fmt.Errorf("world %s terrain row %d has width %d, want %d", w.Name, y, len(row), width)
		}
		for x, tile := range row {
			if tile > grid.TileBlocked {
				return fmt.Errorf("world %s has unknown tile value %d at (%d,%d)", w.Name, tile, x, y)
			}
		}
	}

	terrain := w.NewTerrain()
	if !terrain.Walkable(w.HeroStart.X, w.HeroStart.Y) {
		return fmt.Errorf("world %s hero start %s is not walkable", w.Name, w.HeroStart)
	}

	seen := make(map[string]bool)
	for _, npc := range w.NPCs {
		if npc.ID == "" {
			return fmt.Errorf("world %s has an NPC without an id", w.Name)
		}
		if seen["npc:"+npc.ID] {
			return fmt.Errorf("world %s has duplicate NPC id %q", w.Name, npc.ID)
		}
		seen["npc:"+npc.ID] = true
		if !terrain.InBounds(npc.Position.X, npc.Position.Y) {
			return fmt.Errorf("world %s NPC %q placed out of bounds at %s", w.Name, npc.ID, npc.Position)
		}
		if npc.Position == w.HeroStart {
			return fmt.Errorf("world %s NPC %q occupies the hero start tile", w.Name, npc.ID)
		}
	}

	for _, trig := range w.Triggers {
		if trig.ID == "" {
			return fmt.Errorf("world %s has a trigger without an id", w.Name)
		}
		if seen["trigger:"+trig.ID] {
			return fmt.Errorf("world %s has duplicate trigger id %q", w.Name, trig.ID)
		}
		seen["trigger:"+trig.ID] = true
		switch trig.Type {
		case TriggerBattle, TriggerExit, TriggerBlocked, TriggerNarrative:
		default:
			return fmt.Errorf("world %s trigger %q has unknown type %q", w.Name, trig.ID, trig.Type)
		}
		if len(trig.Tiles) == 0 && trig.Rect == nil {
			return fmt.Errorf("world %s trigger %q declares no region", w.Name, trig.ID)
		}
		for _, tile := range trig.Tiles {
			if !terrain.InBounds(tile.X, tile.Y) {
				return fmt.Errorf("world %s trigger %q tile %s is out of bounds", w.Name, trig.ID, tile)
			}
		}
		if trig.Type == TriggerExit && trig.Exit == nil {
			return fmt.Errorf("world %s exit trigger %q has no destination", w.Name, trig.ID)
		}
		if trig.Type == TriggerBattle && trig.Flag == "" {
			return fmt.Errorf("world %s battle trigger %q has no completion flag", w.Name, trig.ID)
		}
	}

	for _, unlock := range w.Unlocks {
		if unlock.Flag == "" {
			return fmt.Errorf("world %s has an unlock without a flag", w.Name)
		}
		if !terrain.InBounds(unlock.Tile.X, unlock.Tile.Y) {
			return fmt.Errorf("world %s unlock %q tile %s is out of bounds", w.Name, unlock.Flag, unlock.Tile)
		}
	}

	return nil
}
