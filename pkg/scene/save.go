package scene

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jwebster45206/tilequest/internal/storage"
	"github.com/jwebster45206/tilequest/pkg/dialogue"
)

// OpenSaveMenu opens the save-slot choice menu built from storage
// previews. No-op while another modal session owns input.
func (s *Scene) OpenSaveMenu(ctx context.Context) {
	if s.InputSuspended() || s.mover.IsMoving() {
		return
	}

	previews, err := s.store.SlotPreviews(ctx)
	if err != nil {
		s.logger.Error("Failed to load save previews", "error", err)
		s.startDialogue([]string{"The save book's pages are stuck together. Try again later."}, "", nil, "")
		return
	}

	choices := make([]dialogue.Choice, 0, len(previews))
	occupied := make(map[int]bool, len(previews))
	for _, p := range previews {
		occupied[p.Slot] = !p.Empty
		choices = append(choices, dialogue.Choice{
			Label: slotLabel(p),
			Value: strconv.Itoa(p.Slot),
		})
	}

	s.menuUse = menuSaveSlots
	s.menu = dialogue.NewMenu(choices, func(c dialogue.Choice) {
		slot, err := strconv.Atoi(c.Value)
		if err != nil {
			return
		}
		s.menuUse = menuNone
		if occupied[slot] {
			s.confirmOverwrite(ctx, slot)
			return
		}
		s.saveTo(ctx, slot)
	})
}

// confirmOverwrite nests a Yes/No menu before overwriting an occupied
// slot. Selecting No leaves the stored save untouched and returns to
// idle without invoking persistence.
func (s *Scene) confirmOverwrite(ctx context.Context, slot int) {
	s.pendingSaveSlot = slot
	s.menuUse = menuConfirmOverwrite
	s.startDialogue([]string{fmt.Sprintf("Overwrite the save in slot %d?", slot)}, "", func() {
		s.menu = dialogue.NewMenu([]dialogue.Choice{
			{Label: "Yes", Value: "yes"},
			{Label: "No", Value: "no"},
		}, func(c dialogue.Choice) {
			s.menuUse = menuNone
			if c.Value == "yes" {
				s.saveTo(ctx, s.pendingSaveSlot)
			}
			s.pendingSaveSlot = 0
		})
	}, "")
}

// saveTo persists the bundle. A failed save surfaces a single
// in-dialogue message; there is no retry logic.
func (s *Scene) saveTo(ctx context.Context, slot int) {
	s.State.Position = s.mover.Position()
	s.State.Map = s.World.Name

	if err := s.store.SaveSlot(ctx, slot, s.State); err != nil {
		s.logger.Error("Save failed", "slot", slot, "error", err)
		s.startDialogue([]string{"The save failed. Your progress was not recorded."}, "", nil, "")
		return
	}
	s.logger.Info("Game saved", "slot", slot, "map", s.State.Map)
	s.startDialogue([]string{fmt.Sprintf("Saved to slot %d.", slot)}, "", nil, "")
}

// DeleteHighlightedSlot deletes the save under the highlighted slot
// while the save menu is open, then rebuilds the menu. Deleting an
// empty slot is a no-op.
func (s *Scene) DeleteHighlightedSlot(ctx context.Context) {
	m := s.Menu()
	if m == nil || s.menuUse != menuSaveSlots {
		return
	}
	slot, err := strconv.Atoi(m.Selected().Value)
	if err != nil {
		return
	}
	if err := s.store.DeleteSlot(ctx, slot); err != nil {
		s.logger.Error("Failed to delete save slot", "slot", slot, "error", err)
		return
	}
	m.Cancel()
	s.menuUse = menuNone
	s.OpenSaveMenu(ctx)
}

func slotLabel(p storage.SlotPreview) string {
	if p.Empty {
		return fmt.Sprintf("Slot %d: (empty)", p.Slot)
	}
	return fmt.Sprintf("Slot %d: %s — %s %s", p.Slot, p.HeroName, p.Map, p.PlayTime)
}
