package timeframe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractAt(t *testing.T, now time.Time, input string) *Extraction {
	t.Helper()
	ext, err := testParser(t, now).Extract(input)
	require.NoError(t, err)
	return ext
}

func TestMerge_AdoptsResolvedFields(t *testing.T) {
	prior := NewRecord("u1")
	ext := extractAt(t, parserNow, "15th of december at 3pm")

	merged := Merge(prior, ext, "15th of december at 3pm")

	assert.Equal(t, 2025, merged.Year)
	assert.Equal(t, time.December, merged.Month)
	assert.Equal(t, 15, merged.Day)
	assert.Equal(t, "3:00pm", merged.Time)
	assert.False(t, merged.MonthAssumed)
	assert.False(t, merged.DayAssumed)
	assert.False(t, merged.TimeAssumed)
	assert.True(t, merged.YearAssumed) // year was defaulted, still a guess
	assert.Equal(t, 1, merged.Iteration)
	assert.Equal(t, []string{"15th of december at 3pm"}, merged.Messages)
	assert.True(t, merged.Complete)
}

func TestMerge_LockedFieldIsImmutable(t *testing.T) {
	prior := NewRecord("u1")
	first := Merge(prior, extractAt(t, parserNow, "15th of december at 3pm"), "m1")
	require.False(t, first.DayAssumed)

	// A later heuristic guess must not overwrite the confirmed day.
	second := Merge(first, extractAt(t, parserNow, "at 6pm"), "m2")

	assert.Equal(t, 15, second.Day)
	assert.False(t, second.DayAssumed)
	assert.Equal(t, time.December, second.Month)
	assert.False(t, second.MonthAssumed)
	// Time was locked too, so even an explicit new value is ignored.
	assert.Equal(t, "3:00pm", second.Time)
	assert.False(t, second.TimeAssumed)
}

func TestMerge_ReconfirmationLocks(t *testing.T) {
	// The second extraction repeats the same assumed value; repeating it
	// counts as explicit confirmation and locks the field.
	prior := NewRecord("u1")
	first := Merge(prior, extractAt(t, parserNow, "friday at 2pm"), "m1")
	require.True(t, first.MonthAssumed)

	second := Merge(first, extractAt(t, parserNow, "friday at 2pm"), "m2")
	assert.False(t, second.MonthAssumed)
	assert.Equal(t, time.October, second.Month)
}

func TestMerge_AssumedGuessKeepsUpdating(t *testing.T) {
	prior := NewRecord("u1")
	first := Merge(prior, extractAt(t, parserNow, "at 6pm"), "m1")
	require.True(t, first.DayAssumed)
	require.Equal(t, 14, first.Day)

	// The day guess moves as new information arrives.
	second := Merge(first, extractAt(t, parserNow, "friday at 6pm"), "m2")
	assert.Equal(t, 17, second.Day)
	assert.False(t, second.DayAssumed)
}

func TestMerge_AmbiguityIsNotSticky(t *testing.T) {
	prior := NewRecord("u1")
	first := Merge(prior, extractAt(t, parserNow, "friday at 12"), "m1")
	require.True(t, first.TimeAmbiguous)
	require.Len(t, first.AmbiguousOptions, 2)
	require.False(t, first.Complete)

	second := Merge(first, extractAt(t, parserNow, "12pm"), "m2")
	assert.False(t, second.TimeAmbiguous)
	assert.Empty(t, second.AmbiguousOptions)
	assert.False(t, second.TimeAssumed)
	assert.True(t, second.Complete)
}

func TestMerge_CompletenessIsPureFunctionOfFlags(t *testing.T) {
	cases := []struct {
		day, time, ambiguous bool
		want                 bool
	}{
		{false, false, false, true},
		{true, false, false, false},
		{false, true, false, false},
		{false, false, true, false},
		{true, true, true, false},
	}
	for _, c := range cases {
		r := &Record{DayAssumed: c.day, TimeAssumed: c.time, TimeAmbiguous: c.ambiguous,
			YearAssumed: true, MonthAssumed: true, WeekAssumed: true}
		assert.Equal(t, c.want, isComplete(r))
	}
}

func TestMerge_DoesNotMutatePrior(t *testing.T) {
	prior := NewRecord("u1")
	prior.Messages = []string{"m0"}
	prior.Iteration = 1

	_ = Merge(prior, extractAt(t, parserNow, "friday at 2pm"), "m1")

	assert.Equal(t, []string{"m0"}, prior.Messages)
	assert.Equal(t, 1, prior.Iteration)
	assert.True(t, prior.DayAssumed)
}

func TestRecord_Summary(t *testing.T) {
	r := &Record{Year: 2025, Month: time.October, Day: 14, Time: "3:00pm"}
	assert.Equal(t, "Tue, Oct 14 2025 03:00PM", r.Summary())

	assert.Equal(t, "unspecified date", NewRecord("u1").Summary())
}

func TestRecord_Instant(t *testing.T) {
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)

	r := &Record{Year: 2025, Month: time.December, Day: 15, Time: "9:00am"}
	got, ok := r.Instant(loc)
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2025, time.December, 15, 9, 0, 0, 0, loc)))

	_, ok = NewRecord("u1").Instant(loc)
	assert.False(t, ok)
}
