package store

import (
	"context"

	"github.com/chatme-bot/chatme/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) CreateReminder(ctx context.Context, create *Reminder) (*Reminder, error) {
	return s.driver.CreateReminder(ctx, create)
}

func (s *Store) ListReminders(ctx context.Context, find *FindReminder) ([]*Reminder, error) {
	return s.driver.ListReminders(ctx, find)
}

func (s *Store) UpdateReminder(ctx context.Context, update *UpdateReminder) error {
	return s.driver.UpdateReminder(ctx, update)
}

func (s *Store) DeleteReminder(ctx context.Context, delete *DeleteReminder) error {
	return s.driver.DeleteReminder(ctx, delete)
}

func (s *Store) UpsertTimeTrack(ctx context.Context, upsert *TimeTrack) (*TimeTrack, error) {
	return s.driver.UpsertTimeTrack(ctx, upsert)
}

// GetTimeTrack returns the conversation record for a user, or nil when no
// negotiation is in flight.
func (s *Store) GetTimeTrack(ctx context.Context, userID string) (*TimeTrack, error) {
	return s.driver.GetTimeTrack(ctx, userID)
}

func (s *Store) DeleteTimeTrack(ctx context.Context, delete *DeleteTimeTrack) error {
	return s.driver.DeleteTimeTrack(ctx, delete)
}
