package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/tilequest/pkg/actor"
	"github.com/jwebster45206/tilequest/pkg/state"
	"github.com/jwebster45206/tilequest/pkg/world"
)

// RedisStorage implements the Storage interface using Redis for save
// slots and filesystem for static resources (worlds, heroes)
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  redis.NewClient(opt),
		logger:  logger,
		dataDir: dataDir,
	}, nil
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// Save slot operations (Redis-backed)

func slotKey(slot int) string {
	return fmt.Sprintf("save:slot:%d", slot)
}

func validSlot(slot int) error {
	if slot < 1 || slot > MaxSlots {
		return fmt.Errorf("slot %d out of range [1,%d]", slot, MaxSlots)
	}
	return nil
}

func (r *RedisStorage) SaveSlot(ctx context.Context, slot int, gs *state.GameState) error {
	if err := validSlot(slot); err != nil {
		return err
	}

	gs.UpdatedAt = time.Now()

	data, err := json.Marshal(gs)
	if err != nil {
		r.logger.Error("Failed to marshal save data", "slot", slot, "error", err)
		return fmt.Errorf("failed to marshal save data: %w", err)
	}

	// Saves are durable: no expiration.
	cmd := r.client.Set(ctx, slotKey(slot), string(data), 0)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to write save slot", "slot", slot, "error", err)
		return fmt.Errorf("failed to write save slot: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadSlot(ctx context.Context, slot int) (*state.GameState, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}

	cmd := r.client.Get(ctx, slotKey(slot))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil // empty slot, not an error
		}
		r.logger.Error("Failed to read save slot", "slot", slot, "error", err)
		return nil, fmt.Errorf("failed to read save slot: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal([]byte(cmd.Val()), &gs); err != nil {
		r.logger.Error("Failed to unmarshal save data", "slot", slot, "error", err)
		return nil, fmt.Errorf("failed to unmarshal save data: %w", err)
	}

	return &gs, nil
}

func (r *RedisStorage) DeleteSlot(ctx context.Context, slot int) error {
	if err := validSlot(slot); err != nil {
		return err
	}

	cmd := r.client.Del(ctx, slotKey(slot))
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to delete save slot", "slot", slot, "error", err)
		return fmt.Errorf("failed to delete save slot: %w", err)
	}
	return nil
}

func (r *RedisStorage) SlotPreviews(ctx context.Context) ([]SlotPreview, error) {
	previews := make([]SlotPreview, 0, MaxSlots)
	for slot := 1; slot <= MaxSlots; slot++ {
		gs, err := r.LoadSlot(ctx, slot)
		if err != nil {
			return nil, err
		}
		previews = append(previews, NewSlotPreview(ctx, r, slot, gs))
	}
	return previews, nil
}

// NewSlotPreview summarizes a loaded slot for the save menu. gs may be
// nil (empty slot). The world lookup is best-effort: a missing world
// file degrades to the raw map key.
func NewSlotPreview(ctx context.Context, s Storage, slot int, gs *state.GameState) SlotPreview {
	if gs == nil {
		return SlotPreview{Slot: slot, Empty: true}
	}

	preview := SlotPreview{
		Slot:     slot,
		Map:      gs.Map,
		PlayTime: state.FormatPlayTime(gs.PlayTime),
		SavedAt:  gs.UpdatedAt,
	}
	if hero := gs.Hero(gs.HeroID); hero != nil {
		preview.HeroName = hero.Name
		preview.Level = hero.Level
	}
	if w, err := s.GetWorld(ctx, gs.Map+".json"); err == nil {
		preview.Map = w.MapDisplayName()
	}
	return preview
}

// World operations (filesystem-backed)

func (r *RedisStorage) ListWorlds(ctx context.Context) (map[string]string, error) {
	worldsDir := filepath.Join(r.dataDir, "worlds")
	worlds := make(map[string]string)

	err := filepath.WalkDir(worldsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Failed to read world file", "path", path, "error", err)
			return nil
		}

		var w world.World
		if err := json.Unmarshal(file, &w); err != nil {
			r.logger.Warn("Failed to unmarshal world file", "path", path, "error", err)
			return nil
		}

		worlds[w.MapDisplayName()] = filepath.Base(path)
		return nil
	})

	if err != nil {
		r.logger.Error("Failed to walk worlds directory", "error", err)
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	return worlds, nil
}

func (r *RedisStorage) GetWorld(ctx context.Context, filename string) (*world.World, error) {
	path := filepath.Join(r.dataDir, "worlds", filename)

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("world not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}

	var w world.World
	if err := json.Unmarshal(file, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world: %w", err)
	}

	return &w, nil
}

// Hero operations (filesystem-backed)

func (r *RedisStorage) GetHeroState(ctx context.Context, heroID string) (*actor.HeroState, error) {
	path := filepath.Join(r.dataDir, "heroes", heroID+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("hero not found: %s", heroID)
		}
		return nil, fmt.Errorf("failed to read hero file %s: %w", path, err)
	}

	var hs actor.HeroState
	if err := json.Unmarshal(data, &hs); err != nil {
		return nil, fmt.Errorf("failed to parse hero JSON from %s: %w", path, err)
	}
	hs.ID = heroID // filename is authoritative

	return &hs, nil
}
