package postgres

import (
	"context"
	"database/sql"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/chatme-bot/chatme/internal/profile"
	"github.com/chatme-bot/chatme/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a PostgreSQL database specified by its connection string.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	pgDB, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db: %s", profile.DSN)
	}

	return &DB{db: pgDB, profile: profile}, nil
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
	trigger_ts BIGINT NOT NULL,
	readable TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT '',
	messages TEXT NOT NULL DEFAULT '[]',
	stage INTEGER NOT NULL DEFAULT 0,
	created_ts BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reminder_user_id ON reminder (user_id);
CREATE INDEX IF NOT EXISTS idx_reminder_trigger_ts ON reminder (trigger_ts);

CREATE TABLE IF NOT EXISTS timetrack (
	user_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_ts BIGINT NOT NULL
);
`

// Migrate creates the schema if it does not exist yet.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
