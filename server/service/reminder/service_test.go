package reminder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
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

func lagos(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)
	return loc
}

// Tuesday morning.
func serviceNow(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.October, 14, 10, 0, 0, 0, loc)
	}
}

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	loc := lagos(t)
	svc := NewService(st, nil, loc).WithClock(serviceNow(loc))
	return svc, st
}

func TestHandleMessage_SingleTurnComplete(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	reply, err := svc.HandleMessage(ctx, "u-1", "remind me to pay rent tomorrow at 3pm")
	require.NoError(t, err)
	assert.Contains(t, reply, "Reminder set for Wed, Oct 15 2025 03:00PM")
	assert.Contains(t, reply, "I've set your reminder.")

	reminders, err := svc.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Wed, Oct 15 2025 03:00PM", reminders[0].Readable)
	assert.Equal(t, 0, reminders[0].Stage)
	assert.Equal(t, []string{"remind me to pay rent tomorrow at 3pm"}, reminders[0].Messages)

	// The negotiation record is cleared once finalized.
	track, err := st.GetTimeTrack(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, track)
}

func TestHandleMessage_TwoTurnNegotiation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	reply, err := svc.HandleMessage(ctx, "u-1", "remind me to call the plumber on friday")
	require.NoError(t, err)
	assert.Contains(t, reply, "Could you confirm the exact time")

	inFlight, err := svc.InFlight(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, inFlight)

	reply, err = svc.HandleMessage(ctx, "u-1", "at 3pm")
	require.NoError(t, err)
	assert.Contains(t, reply, "Reminder set for Fri, Oct 17 2025 03:00PM")

	inFlight, err = svc.InFlight(ctx, "u-1")
	require.NoError(t, err)
	assert.False(t, inFlight)

	reminders, err := svc.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, []string{"remind me to call the plumber on friday", "at 3pm"}, reminders[0].Messages)
}

func TestHandleMessage_NoExtractionKeepsRecord(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.HandleMessage(ctx, "u-1", "remind me on friday")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(ctx, "u-1", "thanks in advance")
	require.NoError(t, err)
	assert.Contains(t, reply, "couldn't extract")

	// The in-flight record survives the failed turn.
	inFlight, err := svc.InFlight(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, inFlight)
}

func TestHandleMessage_NoExtractionFreshUserStaysIdle(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	reply, err := svc.HandleMessage(ctx, "u-1", "remind me to buy milk later")
	require.NoError(t, err)
	assert.Contains(t, reply, "couldn't extract")

	// No negotiation was opened, so the user is not stuck in the
	// reminder flow on their next message.
	inFlight, err := svc.InFlight(ctx, "u-1")
	require.NoError(t, err)
	assert.False(t, inFlight)

	track, err := st.GetTimeTrack(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, track)
}

func TestFinalize_Dedupes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.HandleMessage(ctx, "u-1", "remind me tomorrow at 3pm")
	require.NoError(t, err)
	_, err = svc.HandleMessage(ctx, "u-1", "remind me tomorrow at 3pm")
	require.NoError(t, err)

	reminders, err := svc.ListForUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, reminders, 1)
}

func TestReminderHash(t *testing.T) {
	a := reminderHash("u-1", 1000, []string{"remind me"})
	b := reminderHash("u-1", 1000, []string{"remind me"})
	c := reminderHash("u-2", 1000, []string{"remind me"})
	d := reminderHash("u-1", 2000, []string{"remind me"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.True(t, len(a) > len("u-1"))
	assert.Equal(t, "u-1", a[:3])
}
