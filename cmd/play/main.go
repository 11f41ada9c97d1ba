package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/tilequest/internal/config"
	"github.com/jwebster45206/tilequest/internal/logger"
	"github.com/jwebster45206/tilequest/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Tilequest",
		"data_dir", cfg.DataDir,
		"environment", cfg.Environment,
		"start_map", cfg.StartMap,
		"dev_mode", cfg.DevMode)

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up storage: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Could not connect to the save store. Please ensure Redis is running.\nTry: docker-compose up -d\n")
		os.Exit(1)
	}

	worlds, err := store.ListWorlds(ctx)
	if err != nil || len(worlds) == 0 {
		fmt.Fprintf(os.Stderr, "No world files found in %s/worlds: %v\n", cfg.DataDir, err)
		os.Exit(1)
	}
	log.Info("World files loaded", "count", len(worlds))

	p := tea.NewProgram(NewGameUI(cfg, store, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}
}
