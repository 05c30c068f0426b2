package store

// Reminder is a finalized reminder entity, produced when a conversation
// record completes.
type Reminder struct {
	ID        string
	UserID    string
	Hash      string
	TriggerTs int64
	Readable  string
	Summary   string
	Messages  []string
	// Stage is the dispatch cursor: how many notification stages have
	// already been sent for this reminder.
	Stage     int
	CreatedTs int64
}

// FindReminder is the find condition for reminders.
type FindReminder struct {
	ID     *string
	UserID *string
	Hash   *string

	// TriggerBefore keeps reminders whose trigger time is before the
	// given unix timestamp.
	TriggerBefore *int64

	// MaxStage keeps reminders whose stage cursor is below the given
	// value (i.e. reminders with notifications still pending).
	MaxStage *int
}

// UpdateReminder is the update request for a reminder.
type UpdateReminder struct {
	ID    string
	Stage *int
}

// DeleteReminder is the delete request for a reminder.
type DeleteReminder struct {
	ID string
}
