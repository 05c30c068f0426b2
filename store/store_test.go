package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chatme-bot/chatme/internal/profile"
	"github.com/chatme-bot/chatme/store"
	"github.com/chatme-bot/chatme/store/db/sqlite"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	p := &profile.Profile{
		Mode:   "prod",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "chatme_test.db"),
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	s := store.New(driver, p)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestReminderStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateReminder(ctx, &store.Reminder{
		ID:        "rem-1",
		UserID:    "u-1",
		Hash:      "u-1abc",
		TriggerTs: 1_800_000_000,
		Readable:  "Tue, Oct 14 2025 03:00PM",
		Summary:   "I'll call mum.",
		Messages:  []string{"remind me to call mum tomorrow at 3pm"},
		Stage:     0,
		CreatedTs: 1_799_000_000,
	})
	require.NoError(t, err)
	require.Equal(t, "rem-1", created.ID)

	_, err = s.CreateReminder(ctx, &store.Reminder{
		ID:        "rem-2",
		UserID:    "u-1",
		Hash:      "u-1def",
		TriggerTs: 1_900_000_000,
		Messages:  []string{},
		Stage:     5,
		CreatedTs: 1_799_000_000,
	})
	require.NoError(t, err)

	userID := "u-1"
	list, err := s.ListReminders(ctx, &store.FindReminder{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Ordered by trigger time.
	require.Equal(t, "rem-1", list[0].ID)
	require.Equal(t, []string{"remind me to call mum tomorrow at 3pm"}, list[0].Messages)

	// Only reminders below the stage ceiling and already due.
	before := int64(1_850_000_000)
	maxStage := 5
	due, err := s.ListReminders(ctx, &store.FindReminder{TriggerBefore: &before, MaxStage: &maxStage})
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "rem-1", due[0].ID)

	stage := 2
	require.NoError(t, s.UpdateReminder(ctx, &store.UpdateReminder{ID: "rem-1", Stage: &stage}))
	id := "rem-1"
	list, err = s.ListReminders(ctx, &store.FindReminder{ID: &id})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 2, list[0].Stage)

	require.NoError(t, s.DeleteReminder(ctx, &store.DeleteReminder{ID: "rem-1"}))
	list, err = s.ListReminders(ctx, &store.FindReminder{ID: &id})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestTimeTrackStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	got, err := s.GetTimeTrack(ctx, "u-1")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = s.UpsertTimeTrack(ctx, &store.TimeTrack{
		UserID:    "u-1",
		Payload:   `{"iteration":1}`,
		UpdatedTs: 100,
	})
	require.NoError(t, err)

	// Upsert replaces the payload for the same user.
	_, err = s.UpsertTimeTrack(ctx, &store.TimeTrack{
		UserID:    "u-1",
		Payload:   `{"iteration":2}`,
		UpdatedTs: 200,
	})
	require.NoError(t, err)

	got, err = s.GetTimeTrack(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, `{"iteration":2}`, got.Payload)
	require.Equal(t, int64(200), got.UpdatedTs)

	require.NoError(t, s.DeleteTimeTrack(ctx, &store.DeleteTimeTrack{UserID: "u-1"}))
	got, err = s.GetTimeTrack(ctx, "u-1")
	require.NoError(t, err)
	require.Nil(t, got)
}
