package state

import (
	"time"

	"github.com/jwebster45206/tilequest/pkg/actor"
	"github.com/jwebster45206/tilequest/pkg/grid"
)

// Transition is a destination-specific override applied when handing
// the game state to the next scene.
type Transition struct {
	Map      string          `json:"map"`
	Position grid.Position   `json:"position"`
	LevelUps []actor.LevelUp `json:"level_ups,omitempty"`
}

// Forward packages the game state for the next scene: every field is
// either carried over or intentionally defaulted, so a scene receiving
// a partial bundle (nil maps, missing inventory) gets well-defined
// values instead of failing. This is the single merge point for all
// scene transitions.
func Forward(gs *GameState, dest Transition) *GameState {
	next := &GameState{}
	if gs != nil {
		*next = *gs
	}
	next.Position = dest.Position
	if dest.Map != "" {
		next.Map = dest.Map
	}

	// Repair partial bundles.
	if next.Flags == nil {
		next.Flags = make(map[string]bool)
	}
	if next.Chests == nil {
		next.Chests = make(map[string]bool)
	}
	if next.Inventory == nil {
		next.Inventory = make([]string, 0)
	}
	if next.Party == nil {
		next.Party = make([]*actor.HeroState, 0)
	}

	// Pending level-ups are consumed by the receiving scene; new ones
	// replace, never append across a double transition.
	next.LevelUps = dest.LevelUps

	next.UpdatedAt = time.Now()
	return next
}
