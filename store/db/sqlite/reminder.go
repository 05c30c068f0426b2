package sqlite

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/chatme-bot/chatme/store"
)

func (d *DB) CreateReminder(ctx context.Context, create *store.Reminder) (*store.Reminder, error) {
	messages, err := json.Marshal(create.Messages)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal messages")
	}

	stmt := `
		INSERT INTO reminder (id, user_id, hash, trigger_ts, readable, summary, messages, stage, created_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := d.db.ExecContext(ctx, stmt,
		create.ID,
		create.UserID,
		create.Hash,
		create.TriggerTs,
		create.Readable,
		create.Summary,
		string(messages),
		create.Stage,
		create.CreatedTs,
	); err != nil {
		return nil, err
	}
	return create, nil
}

func (d *DB) ListReminders(ctx context.Context, find *store.FindReminder) ([]*store.Reminder, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if v := find.Hash; v != nil {
		where, args = append(where, "hash = ?"), append(args, *v)
	}
	if v := find.TriggerBefore; v != nil {
		where, args = append(where, "trigger_ts < ?"), append(args, *v)
	}
	if v := find.MaxStage; v != nil {
		where, args = append(where, "stage < ?"), append(args, *v)
	}

	query := `
		SELECT id, user_id, hash, trigger_ts, readable, summary, messages, stage, created_ts
		FROM reminder
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY trigger_ts ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*store.Reminder{}
	for rows.Next() {
		reminder := &store.Reminder{}
		var messages string
		if err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&reminder.Hash,
			&reminder.TriggerTs,
			&reminder.Readable,
			&reminder.Summary,
			&messages,
			&reminder.Stage,
			&reminder.CreatedTs,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(messages), &reminder.Messages); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal messages")
		}
		list = append(list, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) UpdateReminder(ctx context.Context, update *store.UpdateReminder) error {
	set, args := []string{}, []any{}
	if v := update.Stage; v != nil {
		set, args = append(set, "stage = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return errors.New("no fields to update")
	}

	stmt := `UPDATE reminder SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	args = append(args, update.ID)
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return err
	}
	return nil
}

func (d *DB) DeleteReminder(ctx context.Context, delete *store.DeleteReminder) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM reminder WHERE id = ?`, delete.ID); err != nil {
		return err
	}
	return nil
}
