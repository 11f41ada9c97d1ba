package scene

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/tilequest/pkg/state"
)

func TestScene_SaveMenuLabels(t *testing.T) {
	s, store := newTownScene(t)
	ctx := context.Background()

	prior := state.NewGameState("aria")
	prior.Map = "oakvale_town"
	require.NoError(t, store.SaveSlot(ctx, 1, prior))

	s.OpenSaveMenu(ctx)
	m := s.Menu()
	require.NotNil(t, m, "save menu should open")

	choices := m.Choices()
	require.Len(t, choices, 3)
	assert.Equal(t, "1", choices[0].Value, "structured value carries the slot number")
	assert.False(t, strings.Contains(choices[0].Label, "(empty)"))
	assert.Equal(t, "Slot 2: (empty)", choices[1].Label)
	assert.Equal(t, 0, m.Index(), "menu opens with the first slot highlighted")
}

func TestScene_SaveToEmptySlot(t *testing.T) {
	s, store := newTownScene(t)
	ctx := context.Background()

	s.OpenSaveMenu(ctx)
	s.HandleMove(0, 1) // highlight slot 2
	s.HandleConfirm()  // empty slot saves immediately

	saved, err := store.LoadSlot(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, saved, "save should be written")
	assert.Equal(t, "oakvale_town", saved.Map)
	assert.Equal(t, s.Mover().Position(), saved.Position)

	sess := s.Session()
	require.NotNil(t, sess, "save should confirm with a dialogue line")
	assert.Contains(t, sess.Line(), "Saved to slot 2")
}

func TestScene_OverwriteDeclinedLeavesSaveUnchanged(t *testing.T) {
	s, store := newTownScene(t)
	ctx := context.Background()

	prior := state.NewGameState("aria")
	prior.Map = "overworld"
	require.NoError(t, store.SaveSlot(ctx, 1, prior))

	s.OpenSaveMenu(ctx)
	s.HandleConfirm() // select occupied slot 1

	// The overwrite prompt is dialogue; advancing it opens the nested
	// Yes/No menu (suspend ownership transfers, no double-suspension).
	require.NotNil(t, s.Session())
	s.HandleConfirm()

	m := s.Menu()
	require.NotNil(t, m, "confirmation menu should open from the dialogue completion")
	require.Len(t, m.Choices(), 2)
	assert.Equal(t, "Yes", m.Choices()[0].Label)
	assert.Equal(t, "No", m.Choices()[1].Label)

	s.HandleMove(0, 1) // highlight No
	s.HandleConfirm()

	stored, err := store.LoadSlot(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, prior.ID, stored.ID, "declining must leave the stored save unchanged")
	assert.Equal(t, "overworld", stored.Map)

	assert.False(t, s.InputSuspended(), "declining returns to idle")
}

func TestScene_OverwriteAccepted(t *testing.T) {
	s, store := newTownScene(t)
	ctx := context.Background()

	prior := state.NewGameState("aria")
	require.NoError(t, store.SaveSlot(ctx, 1, prior))

	s.OpenSaveMenu(ctx)
	s.HandleConfirm() // slot 1
	s.HandleConfirm() // advance overwrite prompt
	s.HandleConfirm() // Yes is highlighted first

	stored, err := store.LoadSlot(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, s.State.ID, stored.ID, "accepted overwrite stores the current game")
}

func TestScene_SaveFailureShowsSingleMessage(t *testing.T) {
	s, store := newTownScene(t)
	store.FailSaves = true
	ctx := context.Background()

	s.OpenSaveMenu(ctx)
	s.HandleConfirm() // empty slot 1, saves immediately

	sess := s.Session()
	require.NotNil(t, sess, "failed save surfaces an in-dialogue message")
	assert.Contains(t, sess.Line(), "save failed")

	s.HandleConfirm()
	assert.False(t, s.InputSuspended(), "failure resolves at the point of detection")
}

func TestScene_DeleteHighlightedSlot(t *testing.T) {
	s, store := newTownScene(t)
	ctx := context.Background()

	prior := state.NewGameState("aria")
	require.NoError(t, store.SaveSlot(ctx, 1, prior))

	s.OpenSaveMenu(ctx)
	s.DeleteHighlightedSlot(ctx)

	stored, err := store.LoadSlot(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stored, "highlighted save should be deleted")

	m := s.Menu()
	require.NotNil(t, m, "save menu should rebuild after deletion")
	assert.Equal(t, "Slot 1: (empty)", m.Choices()[0].Label)
}

func TestScene_SaveMenuBlockedDuringDialogue(t *testing.T) {
	s, _ := newTownScene(t)
	ctx := context.Background()

	s.HandleMove(-1, 0) // face the elder
	s.HandleConfirm()   // open dialogue
	require.NotNil(t, s.Session())

	s.OpenSaveMenu(ctx)
	assert.Nil(t, s.Menu(), "save menu must not open over active dialogue")
}
