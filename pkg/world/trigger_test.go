package world

import (
	"testing"

	"github.com/jwebster45206/tilequest/pkg/grid"
)

func TestTrigger_Contains(t *testing.T) {
	tests := []struct {
		name    string
		trigger Trigger
		pos     grid.Position
		want    bool
	}{
		{
			name:    "single tile match",
			trigger: Trigger{Tiles: []grid.Position{{X: 3, Y: 4}}},
			pos:     grid.Position{X: 3, Y: 4},
			want:    true,
		},
		{
			name:    "tile list miss",
			trigger: Trigger{Tiles: []grid.Position{{X: 3, Y: 4}, {X: 4, Y: 4}}},
			pos:     grid.Position{X: 5, Y: 4},
			want:    false,
		},
		{
			name:    "rect interior",
			trigger: Trigger{Rect: &Rect{X1: 1, Y1: 1, X2: 3, Y2: 3}},
			pos:     grid.Position{X: 2, Y: 2},
			want:    true,
		},
		{
			name:    "rect edge inclusive",
			trigger: Trigger{Rect: &Rect{X1: 1, Y1: 1, X2: 3, Y2: 3}},
			pos:     grid.Position{X: 3, Y: 1},
			want:    true,
		},
		{
			name:    "rect miss",
			trigger: Trigger{Rect: &Rect{X1: 1, Y1: 1, X2: 3, Y2: 3}},
			pos:     grid.Position{X: 4, Y: 2},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trigger.Contains(tt.pos); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestDetector_DeclaredOrder(t *testing.T) {
	pos := grid.Position{X: 2, Y: 2}
	triggers := []Trigger{
		{ID: "first", Type: TriggerNarrative, Tiles: []grid.Position{pos}},
		{ID: "second", Type: TriggerExit, Tiles: []grid.Position{pos},
			Exit: &Exit{Map: "overworld"}},
	}
	d := NewDetector(triggers, nil)

	got := d.Evaluate(pos)
	if got == nil || got.ID != "first" {
		t.Errorf("Evaluate returned %v, want the first declared trigger", got)
	}
}

func TestDetector_BattleSuppressedByFlag(t *testing.T) {
	pos := grid.Position{X: 5, Y: 5}
	triggers := []Trigger{
		{ID: "ambush", Type: TriggerBattle, Flag: "ambush_cleared",
			Tiles: []grid.Position{pos}, Battle: "forest_ambush"},
	}

	flags := map[string]bool{}
	d := NewDetector(triggers, func(f string) bool { return flags[f] })

	if got := d.Evaluate(pos); got == nil || got.ID != "ambush" {
		t.Fatalf("battle trigger should fire before its flag is set, got %v", got)
	}

	flags["ambush_cleared"] = true
	// Repeated visits never re-fire once the completion flag is set.
	for i := 0; i < 3; i++ {
		if got := d.Evaluate(pos); got != nil {
			t.Fatalf("visit %d: suppressed battle trigger fired: %v", i, got)
		}
	}
}

func TestDetector_BlockedFiresOncePerSession(t *testing.T) {
	pos := grid.Position{X: 1, Y: 0}
	triggers := []Trigger{
		{ID: "mountain_pass", Type: TriggerBlocked,
			Tiles: []grid.Position{pos},
			Lines: []string{"The pass is buried in snow."}},
	}

	d := NewDetector(triggers, nil)
	if got := d.Evaluate(pos); got == nil {
		t.Fatal("blocked trigger should fire on first visit")
	}
	if got := d.Evaluate(pos); got != nil {
		t.Errorf("blocked trigger fired twice in one session: %v", got)
	}

	// A fresh detector (scene reload) shows the warning again.
	d2 := NewDetector(triggers, nil)
	if got := d2.Evaluate(pos); got == nil {
		t.Error("blocked trigger should fire again after scene reload")
	}
}

func TestDetector_NoMatch(t *testing.T) {
	d := NewDetector([]Trigger{
		{ID: "exit", Type: TriggerExit, Tiles: []grid.Position{{X: 0, Y: 0}},
			Exit: &Exit{Map: "town"}},
	}, nil)

	if got := d.Evaluate(grid.Position{X: 9, Y: 9}); got != nil {
		t.Errorf("Evaluate on empty tile returned %v", got)
	}
}
