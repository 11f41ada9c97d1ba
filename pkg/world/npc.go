package world

import "github.com/jwebster45206/tilequest/pkg/grid"

// NPC is a non-player character placed on the map. NPCs are static per
// scene load and block movement onto their tile.
type NPC struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Position grid.Position `json:"position"`
	Lines    []string      `json:"lines,omitempty"`    // scripted dialogue, in order
	Portrait string        `json:"portrait,omitempty"` // optional portrait key; absent degrades to no portrait
}
