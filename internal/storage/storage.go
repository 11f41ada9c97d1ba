package storage

import (
	"context"
	"time"

	"github.com/jwebster45206/tilequest/pkg/actor"
	"github.com/jwebster45206/tilequest/pkg/state"
	"github.com/jwebster45206/tilequest/pkg/world"
)

// MaxSlots is the number of save slots offered in the save menu.
const MaxSlots = 3

// SlotPreview is the summary line shown for one save slot.
type SlotPreview struct {
	Slot     int       `json:"slot"`
	Empty    bool      `json:"empty"`
	HeroName string    `json:"hero_name,omitempty"`
	Level    int       `json:"level,omitempty"`
	Map      string    `json:"map,omitempty"` // display name
	PlayTime string    `json:"play_time,omitempty"`
	SavedAt  time.Time `json:"saved_at,omitempty"`
}

// Storage defines a unified interface for all storage operations.
// Save slots are Redis-backed; static resources (worlds, heroes) load
// from the filesystem.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Save slot operations (Redis-backed)
	SaveSlot(ctx context.Context, slot int, gs *state.GameState) error
	LoadSlot(ctx context.Context, slot int) (*state.GameState, error)
	DeleteSlot(ctx context.Context, slot int) error
	SlotPreviews(ctx context.Context) ([]SlotPreview, error)

	// World operations (filesystem-backed)
	ListWorlds(ctx context.Context) (map[string]string, error)
	GetWorld(ctx context.Context, filename string) (*world.World, error)

	// Hero operations (filesystem-backed)
	GetHeroState(ctx context.Context, heroID string) (*actor.HeroState, error)
}
