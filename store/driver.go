package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that a store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	Migrate(ctx context.Context) error

	// Reminder model related methods.
	CreateReminder(ctx context.Context, create *Reminder) (*Reminder, error)
	ListReminders(ctx context.Context, find *FindReminder) ([]*Reminder, error)
	UpdateReminder(ctx context.Context, update *UpdateReminder) error
	DeleteReminder(ctx context.Context, delete *DeleteReminder) error

	// TimeTrack model related methods.
	UpsertTimeTrack(ctx context.Context, upsert *TimeTrack) (*TimeTrack, error)
	GetTimeTrack(ctx context.Context, userID string) (*TimeTrack, error)
	DeleteTimeTrack(ctx context.Context, delete *DeleteTimeTrack) error
}
