// Package timeframe resolves free-text date/time expressions across a
// multi-turn conversation. One pass over a message produces an Extraction
// (a fully concrete instant plus per-field provenance flags); successive
// extractions for the same user are folded into a Record until the day and
// time are pinned down precisely enough to schedule a reminder.
package timeframe

import (
	"errors"
	"time"
)

// DefaultTimezone is the civil timezone all computations run in when the
// caller does not supply one.
const DefaultTimezone = "Africa/Lagos"

// ErrNoTemporalExpression is returned when a message contains no date or
// time cue at all. The caller should re-prompt without mutating state.
var ErrNoTemporalExpression = errors.New("no temporal expression found")

// Assumptions records, per field, whether the value was stated by the user
// or filled in by a default. A true flag means "guessed, not confirmed".
type Assumptions struct {
	Year          bool `json:"year_assumed"`
	Month         bool `json:"month_assumed"`
	Week          bool `json:"week_assumed"`
	Day           bool `json:"day_assumed"`
	Time          bool `json:"time_assumed"`
	TimeAmbiguous bool `json:"time_ambiguous"`
}

// TimeKind tags the outcome of clock-time resolution.
type TimeKind int

const (
	// TimeResolved means a single interpretation was chosen.
	TimeResolved TimeKind = iota

	// TimeAmbiguous means the hour was a genuine AM/PM coin flip. Both
	// candidates are carried so the caller can ask the user to pick.
	TimeAmbiguous
)

// TimeResolution is the disambiguation outcome for the clock time. Callers
// must check Kind before treating At as final.
type TimeResolution struct {
	Kind    TimeKind
	At      time.Time
	Morning time.Time // valid when Kind == TimeAmbiguous
	Evening time.Time // valid when Kind == TimeAmbiguous
}

// Options returns the candidate display strings in (morning, evening)
// order, or nil when the resolution is not ambiguous.
func (r TimeResolution) Options() []string {
	if r.Kind != TimeAmbiguous {
		return nil
	}
	return []string{FormatClock(r.Morning), FormatClock(r.Evening)}
}

// Extraction is the result of one parsing pass over one message. Date and
// time are always concrete: an unstated field is defaulted and flagged in
// Assumed rather than left empty.
type Extraction struct {
	When             time.Time   `json:"when"`
	Assumed          Assumptions `json:"assumptions"`
	AmbiguousOptions []string    `json:"ambiguous_options,omitempty"`
	Clarification    string      `json:"clarification,omitempty"`
	SourceText       string      `json:"source_text"`
}

// FormatClock renders a time in 12-hour display form, e.g. "3:00pm".
func FormatClock(t time.Time) string {
	return t.Format("3:04pm")
}

// FormatInstant renders a full human-readable instant,
// e.g. "Tue, Oct 14 2025 03:00PM".
func FormatInstant(t time.Time) string {
	return t.Format("Mon, Jan 02 2006 03:04PM")
}
