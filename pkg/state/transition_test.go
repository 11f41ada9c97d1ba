package state

import (
	"testing"
	"time"

	"github.com/jwebster45206/tilequest/pkg/actor"
	"github.com/jwebster45206/tilequest/pkg/grid"
)

func TestForward_CarriesEveryField(t *testing.T) {
	gs := NewGameState("aria")
	gs.Map = "oakvale_town"
	gs.SetFlag("met_elder")
	gs.Inventory = []string{"herb"}
	gs.Chests["town_chest_1"] = true
	gs.Party = []*actor.HeroState{{ID: "aria", Level: 3}}
	gs.PlayTime = 10 * time.Minute
	gs.DevMode = true

	next := Forward(gs, Transition{
		Map:      "overworld",
		Position: grid.Position{X: 5, Y: 9},
	})

	if next.ID != gs.ID {
		t.Error("playthrough ID not forwarded")
	}
	if next.Map != "overworld" || next.Position != (grid.Position{X: 5, Y: 9}) {
		t.Errorf("destination not applied: map=%q pos=%v", next.Map, next.Position)
	}
	if !next.Flag("met_elder") {
		t.Error("flags dropped at transition")
	}
	if len(next.Inventory) != 1 || next.Inventory[0] != "herb" {
		t.Error("inventory dropped at transition")
	}
	if !next.Chests["town_chest_1"] {
		t.Error("chest states dropped at transition")
	}
	if len(next.Party) != 1 || next.Party[0].Level != 3 {
		t.Error("party dropped at transition")
	}
	if next.PlayTime != gs.PlayTime {
		t.Error("play time dropped at transition")
	}
	if !next.DevMode {
		t.Error("dev mode dropped at transition")
	}
}

func TestForward_RepairsPartialBundle(t *testing.T) {
	partial := &GameState{HeroID: "aria"} // nil maps and slices

	next := Forward(partial, Transition{Map: "overworld"})

	if next.Flags == nil || next.Chests == nil || next.Inventory == nil || next.Party == nil {
		t.Error("partial bundle not repaired with defaults")
	}
	if next.HeroID != "aria" {
		t.Error("hero ID dropped")
	}
}

func TestForward_NilState(t *testing.T) {
	next := Forward(nil, Transition{Map: "overworld", Position: grid.Position{X: 1, Y: 1}})
	if next == nil {
		t.Fatal("Forward(nil) returned nil")
	}
	if next.Map != "overworld" {
		t.Errorf("Map = %q", next.Map)
	}
	if next.Flags == nil {
		t.Error("defaults not applied for nil state")
	}
}

func TestForward_LevelUpsReplacedNotAppended(t *testing.T) {
	gs := NewGameState("aria")
	gs.LevelUps = []actor.LevelUp{{HeroID: "aria", NewLevel: 2}}

	next := Forward(gs, Transition{Map: "overworld"})
	if len(next.LevelUps) != 0 {
		t.Errorf("stale level-ups forwarded: %v", next.LevelUps)
	}

	next = Forward(gs, Transition{
		Map:      "overworld",
		LevelUps: []actor.LevelUp{{HeroID: "aria", NewLevel: 3}},
	})
	if len(next.LevelUps) != 1 || next.LevelUps[0].NewLevel != 3 {
		t.Errorf("destination level-ups not applied: %v", next.LevelUps)
	}
}

func TestForward_KeepsMapWhenDestinationOmitsIt(t *testing.T) {
	gs := NewGameState("aria")
	gs.Map = "oakvale_town"

	next := Forward(gs, Transition{Position: grid.Position{X: 2, Y: 2}})
	if next.Map != "oakvale_town" {
		t.Errorf("Map = %q, want carried-over map", next.Map)
	}
}
