package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/tilequest/pkg/actor"
	"github.com/jwebster45206/tilequest/pkg/grid"
)

// GameState is the full bundle of player progress threaded through
// every scene transition. No scene owns it; each scene mutates its
// local copy and forwards the result.
type GameState struct {
	ID        uuid.UUID          `json:"id"` // unique per playthrough
	HeroID    string             `json:"hero_id,omitempty"`
	Party     []*actor.HeroState `json:"party,omitempty"`
	Flags     map[string]bool    `json:"flags,omitempty"`
	Inventory []string           `json:"inventory,omitempty"`
	Chests    map[string]bool    `json:"chests,omitempty"` // chest ID -> opened
	PlayTime  time.Duration      `json:"play_time,omitempty"`

	Map      string        `json:"map,omitempty"` // current world file key
	Position grid.Position `json:"position"`

	LevelUps []actor.LevelUp `json:"level_ups,omitempty"` // pending overlays for the next scene
	DevMode  bool            `json:"dev_mode,omitempty"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func NewGameState(heroID string) *GameState {
	return &GameState{
		ID:        uuid.New(),
		HeroID:    heroID,
		Flags:     make(map[string]bool),
		Chests:    make(map[string]bool),
		Inventory: make([]string, 0),
	}
}

// Flag reports whether a story flag is set. Safe on a nil map.
func (gs *GameState) Flag(name string) bool {
	return gs.Flags[name]
}

// SetFlag sets a story flag, allocating the map when the bundle
// arrived partial.
func (gs *GameState) SetFlag(name string) {
	if gs.Flags == nil {
		gs.Flags = make(map[string]bool)
	}
	gs.Flags[name] = true
}

// Hero returns the party member with the given ID, or nil.
func (gs *GameState) Hero(id string) *actor.HeroState {
	for _, h := range gs.Party {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// FormatPlayTime renders elapsed play time as H:MM:SS for save-slot
// previews.
func FormatPlayTime(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
