package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jwebster45206/tilequest/pkg/actor"
	"github.com/jwebster45206/tilequest/pkg/state"
	"github.com/jwebster45206/tilequest/pkg/world"
)

// MockStorage is an in-memory Storage for tests and offline play.
type MockStorage struct {
	slots  map[int][]byte
	worlds map[string]*world.World
	heroes map[string]*actor.HeroState

	// FailSaves forces SaveSlot to return an error, for exercising the
	// save-failure dialogue path.
	FailSaves bool
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		slots:  make(map[int][]byte),
		worlds: make(map[string]*world.World),
		heroes: make(map[string]*actor.HeroState),
	}
}

// AddWorld registers a world under <name>.json.
func (m *MockStorage) AddWorld(w *world.World) {
	m.worlds[w.Name+".json"] = w
}

// AddHero registers a hero stat block.
func (m *MockStorage) AddHero(hs *actor.HeroState) {
	m.heroes[hs.ID] = hs
}

func (m *MockStorage) Ping(ctx context.Context) error { return nil }
func (m *MockStorage) Close() error                   { return nil }

func (m *MockStorage) SaveSlot(ctx context.Context, slot int, gs *state.GameState) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	if m.FailSaves {
		return fmt.Errorf("mock storage: saves disabled")
	}
	gs.UpdatedAt = time.Now()
	data, err := json.Marshal(gs)
	if err != nil {
		return err
	}
	m.slots[slot] = data
	return nil
}

func (m *MockStorage) LoadSlot(ctx context.Context, slot int) (*state.GameState, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}
	data, ok := m.slots[slot]
	if !ok {
		return nil, nil
	}
	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

func (m *MockStorage) DeleteSlot(ctx context.Context, slot int) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	delete(m.slots, slot)
	return nil
}

func (m *MockStorage) SlotPreviews(ctx context.Context) ([]SlotPreview, error) {
	previews := make([]SlotPreview, 0, MaxSlots)
	for slot := 1; slot <= MaxSlots; slot++ {
		gs, err := m.LoadSlot(ctx, slot)
		if err != nil {
			return nil, err
		}
		previews = append(previews, NewSlotPreview(ctx, m, slot, gs))
	}
	return previews, nil
}

func (m *MockStorage) ListWorlds(ctx context.Context) (map[string]string, error) {
	worlds := make(map[string]string, len(m.worlds))
	for filename, w := range m.worlds {
		worlds[w.MapDisplayName()] = filename
	}
	return worlds, nil
}

func (m *MockStorage) GetWorld(ctx context.Context, filename string) (*world.World, error) {
	w, ok := m.worlds[filename]
	if !ok {
		return nil, fmt.Errorf("world not found: %s", filename)
	}
	return w, nil
}

func (m *MockStorage) GetHeroState(ctx context.Context, heroID string) (*actor.HeroState, error) {
	hs, ok := m.heroes[heroID]
	if !ok {
		return nil, fmt.Errorf("hero not found: %s", heroID)
	}
	// Copy so callers mutating party state don't alter the template.
	cp := *hs
	return &cp, nil
}
