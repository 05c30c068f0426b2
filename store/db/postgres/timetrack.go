package postgres

import (
	"context"
	"database/sql"

	"github.com/chatme-bot/chatme/store"
)

func (d *DB) UpsertTimeTrack(ctx context.Context, upsert *store.TimeTrack) (*store.TimeTrack, error) {
	stmt := `
		INSERT INTO timetrack (user_id, payload, updated_ts)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET payload = EXCLUDED.payload, updated_ts = EXCLUDED.updated_ts`
	if _, err := d.db.ExecContext(ctx, stmt, upsert.UserID, upsert.Payload, upsert.UpdatedTs); err != nil {
		return nil, err
	}
	return upsert, nil
}

func (d *DB) GetTimeTrack(ctx context.Context, userID string) (*store.TimeTrack, error) {
	timeTrack := &store.TimeTrack{}
	err := d.db.QueryRowContext(ctx,
		`SELECT user_id, payload, updated_ts FROM timetrack WHERE user_id = $1`, userID,
	).Scan(&timeTrack.UserID, &timeTrack.Payload, &timeTrack.UpdatedTs)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return timeTrack, nil
}

func (d *DB) DeleteTimeTrack(ctx context.Context, delete *store.DeleteTimeTrack) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM timetrack WHERE user_id = $1`, delete.UserID); err != nil {
		return err
	}
	return nil
}
