package store

// TimeTrack is the persisted form of an in-flight conversation time
// record, keyed by user. Payload holds the serialized record verbatim;
// the store never interprets it.
type TimeTrack struct {
	UserID    string
	Payload   string
	UpdatedTs int64
}

// DeleteTimeTrack is the delete request for a conversation record.
type DeleteTimeTrack struct {
	UserID string
}
