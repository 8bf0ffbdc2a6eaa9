package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
)

type testSnapshot struct {
	Turn  int            `json:"turn"`
	Name  string         `json:"name"`
	Cargo map[string]int `json:"cargo"`
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := testSnapshot{Turn: 12, Name: "Wayfarer", Cargo: map[string]int{"arrows": 20}}
	require.NoError(t, s.Save(ctx, "slot-1", "session-a", 12, in))

	var out testSnapshot
	info, err := s.Load(ctx, "slot-1", &out)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, "slot-1", info.Slot)
	assert.Equal(t, "session-a", info.SessionID)
	assert.Equal(t, 12, info.Turn)
	assert.False(t, info.SavedAt.IsZero())
}

func TestSaveOverwritesSlot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "auto", "session-a", 1, testSnapshot{Turn: 1}))
	require.NoError(t, s.Save(ctx, "auto", "session-a", 2, testSnapshot{Turn: 2}))

	var out testSnapshot
	info, err := s.Load(ctx, "auto", &out)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Turn)
	assert.Equal(t, 2, info.Turn)

	slots, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestLoadMissing(t *testing.T) {
	s := openTestStore(t)
	var out testSnapshot
	_, err := s.Load(context.Background(), "nothing", &out)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestListAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, slot := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(ctx, slot, "session-"+slot, 3, testSnapshot{}))
	}

	slots, err := s.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(slots))
	for _, info := range slots {
		names = append(names, info.Slot)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names)

	require.NoError(t, s.Delete(ctx, "b"))
	assert.ErrorIs(t, s.Delete(ctx, "b"), ErrSlotNotFound)

	slots, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "keep", "session-k", 40, testSnapshot{Name: "kept"}))
	require.NoError(t, s.Close())

	s, err = Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	var out testSnapshot
	_, err = s.Load(ctx, "keep", &out)
	require.NoError(t, err)
	assert.Equal(t, "kept", out.Name)
}

func TestEventLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendEvents(ctx, nil))
	require.NoError(t, s.AppendEvents(ctx, []events.Event{
		events.NewTurnStartedEvent("session-a", 1),
		events.NewEntityDiedEvent("session-a", 1, 2, "Serpent", 1, 3, 3),
		events.NewTurnStartedEvent("session-b", 1),
		events.NewTurnEndedEvent("session-a", 1, 2, 0),
	}))

	all, err := s.SessionLog(ctx, "session-a", "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, events.TypeTurnStarted, all[0].Type)
	assert.Equal(t, events.TypeEntityDied, all[1].Type)
	assert.Contains(t, all[1].Payload, `"name":"Serpent"`)
	assert.Less(t, all[0].ID, all[1].ID)

	deaths, err := s.SessionLog(ctx, "session-a", events.TypeEntityDied, 0)
	require.NoError(t, err)
	assert.Len(t, deaths, 1)

	limited, err := s.SessionLog(ctx, "session-a", "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
