package postgres

import (
	"context"
	"encoding/json"
	"fmt"
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
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
	where, args := []string{"TRUE"}, []any{}
	if v := find.ID; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("id = $%d", len(args)))
	}
	if v := find.UserID; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if v := find.Hash; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("hash = $%d", len(args)))
	}
	if v := find.TriggerBefore; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("trigger_ts < $%d", len(args)))
	}
	if v := find.MaxStage; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("stage < $%d", len(args)))
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
		args = append(args, *v)
		set = append(set, fmt.Sprintf("stage = $%d", len(args)))
	}
	if len(set) == 0 {
		return errors.New("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE reminder SET ` + strings.Join(set, ", ") + fmt.Sprintf(` WHERE id = $%d`, len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return err
	}
	return nil
}

func (d *DB) DeleteReminder(ctx context.Context, delete *store.DeleteReminder) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM reminder WHERE id = $1`, delete.ID); err != nil {
		return err
	}
	return nil
}
