package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/chatme-bot/chatme/internal/profile"
	"github.com/chatme-bot/chatme/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a SQLite database at the profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	// WAL keeps readers from blocking the single writer; busy_timeout
	// covers the brief writer lock during checkpoints.
	dsn := profile.DSN + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)"
	sqliteDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", dsn)
	}

	return &DB{db: sqliteDB, profile: profile}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS reminder (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	hash TEXT NOT NULL,
	trigger_ts INTEGER NOT NULL,
	readable TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT '',
	messages TEXT NOT NULL DEFAULT '[]',
	stage INTEGER NOT NULL DEFAULT 0,
	created_ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reminder_user_id ON reminder (user_id);
CREATE INDEX IF NOT EXISTS idx_reminder_trigger_ts ON reminder (trigger_ts);

CREATE TABLE IF NOT EXISTS timetrack (
	user_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_ts INTEGER NOT NULL
);
`

// Migrate creates the schema if it does not exist yet.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
