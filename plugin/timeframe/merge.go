package timeframe

import (
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Record is the per-user accumulator for one in-flight reminder
// negotiation. Zero values (0, empty string) stand for "not yet held".
// A field whose assumed flag is false is locked and never overwritten by a
// later merge.
type Record struct {
	UID    string `json:"uid"`
	UserID string `json:"user_id"`

	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
	Time  string     `json:"time"` // 12-hour display form, e.g. "3:00pm"

	YearAssumed   bool `json:"year_assumed"`
	MonthAssumed  bool `json:"month_assumed"`
	WeekAssumed   bool `json:"week_assumed"`
	DayAssumed    bool `json:"day_assumed"`
	TimeAssumed   bool `json:"time_assumed"`
	TimeAmbiguous bool `json:"time_ambiguous"`

	AmbiguousOptions []string `json:"ambiguous_options,omitempty"`

	Messages  []string `json:"messages"`
	Iteration int      `json:"iteration"`
	Complete  bool     `json:"complete"`
}

// NewRecord creates a fresh negotiation record: every field assumed, no
// messages yet.
func NewRecord(userID string) *Record {
	return &Record{
		UID:           shortuuid.New(),
		UserID:        userID,
		YearAssumed:   true,
		MonthAssumed:  true,
		WeekAssumed:   true,
		DayAssumed:    true,
		TimeAssumed:   true,
		TimeAmbiguous: false,
	}
}

// Merge folds a fresh extraction into the prior record and returns the new
// record. Confirmed fields are immutable; a value the user restates locks;
// still-assumed fields keep updating as better information arrives. The
// prior record is not modified.
func Merge(prior *Record, ext *Extraction, message string) *Record {
	merged := prior.clone()

	merged.Year, merged.YearAssumed = mergeField(
		prior.Year, ext.When.Year(), prior.YearAssumed, ext.Assumed.Year)
	merged.Month, merged.MonthAssumed = mergeField(
		prior.Month, ext.When.Month(), prior.MonthAssumed, ext.Assumed.Month)
	merged.Day, merged.DayAssumed = mergeField(
		prior.Day, ext.When.Day(), prior.DayAssumed, ext.Assumed.Day)
	merged.Time, merged.TimeAssumed = mergeField(
		prior.Time, FormatClock(ext.When), prior.TimeAssumed, ext.Assumed.Time)

	// Ambiguity is never sticky: it reflects the current pass only.
	merged.TimeAmbiguous = ext.Assumed.TimeAmbiguous
	merged.AmbiguousOptions = ext.AmbiguousOptions
	merged.WeekAssumed = ext.Assumed.Week

	merged.Messages = append(merged.Messages, message)
	merged.Iteration = prior.Iteration + 1
	merged.Complete = isComplete(merged)
	return merged
}

// mergeField applies the lock/adopt rules to one trackable field.
func mergeField[T comparable](oldVal, newVal T, oldAssumed, newAssumed bool) (T, bool) {
	var zero T

	// Already confirmed: immutable, regardless of disagreement.
	if !oldAssumed {
		return oldVal, false
	}

	// The user restated the value currently held: explicit reconfirmation.
	if newVal == oldVal && newVal != zero {
		return newVal, false
	}

	// Freshly resolved with certainty while we were only guessing.
	if !newAssumed {
		return newVal, false
	}

	// A different guess replaces the old guess.
	if newVal != zero && newVal != oldVal {
		return newVal, newAssumed
	}

	// Fill a hole.
	if oldVal == zero && newVal != zero {
		return newVal, oldAssumed
	}

	return oldVal, oldAssumed
}

// isComplete reports whether the record pins down a usable reminder
// instant. Year, month and week being assumed does not block completeness;
// only day and time precision matter.
func isComplete(r *Record) bool {
	return !r.DayAssumed && !r.TimeAssumed && !r.TimeAmbiguous
}

// Instant converts the record's held fields into a concrete time in loc.
// The boolean is false when the date or time is not yet held or does not
// parse.
func (r *Record) Instant(loc *time.Location) (time.Time, bool) {
	if r.Year == 0 || r.Month == 0 || r.Day == 0 || r.Time == "" {
		return time.Time{}, false
	}
	clock, err := time.Parse("3:04pm", r.Time)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(r.Year, r.Month, r.Day, clock.Hour(), clock.Minute(), 0, 0, loc), true
}

// Summary renders the record's best-known instant for the user,
// e.g. "Tue, Oct 14 2025 03:00PM".
func (r *Record) Summary() string {
	if r.Year == 0 || r.Month == 0 || r.Day == 0 {
		return "unspecified date"
	}
	t, ok := r.Instant(time.UTC)
	if !ok {
		return "unknown time"
	}
	return FormatInstant(t)
}

func (r *Record) clone() *Record {
	dup := *r
	dup.Messages = make([]string, len(r.Messages))
	copy(dup.Messages, r.Messages)
	dup.AmbiguousOptions = append([]string(nil), r.AmbiguousOptions...)
	return &dup
}
