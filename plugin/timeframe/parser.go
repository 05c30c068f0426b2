package timeframe

import (
	"time"
)

// Parser turns one message into an Extraction. The clock is injectable so
// tests can pin "now"; every relative computation within a single Extract
// call uses the same instant.
type Parser struct {
	timezone *time.Location
	now      func() time.Time
}

// NewParser creates a parser operating in the given timezone.
func NewParser(timezone *time.Location) *Parser {
	if timezone == nil {
		timezone = time.Local
	}
	return &Parser{
		timezone: timezone,
		now:      time.Now,
	}
}

// WithClock returns a parser that reads "now" from the given function.
func (p *Parser) WithClock(now func() time.Time) *Parser {
	return &Parser{timezone: p.timezone, now: now}
}

// Extract runs the full pipeline over one message: normalize, resolve the
// five fields, compose the candidate instant and classify ambiguity.
// It returns ErrNoTemporalExpression when the message holds no date or
// time cue at all.
func (p *Parser) Extract(message string) (*Extraction, error) {
	text := Normalize(message)
	now := p.now().In(p.timezone)

	f := resolveFields(text, now)
	if f.yearAssumed && f.monthAssumed && f.weekAssumed && f.dayAssumed && f.timeAssumed {
		return nil, ErrNoTemporalExpression
	}

	date := composeDate(f, now)
	res, assumed := p.resolveClock(f, text, date, now)

	ext := &Extraction{
		When: res.At,
		Assumed: Assumptions{
			Year:          f.yearAssumed,
			Month:         f.monthAssumed,
			Week:          f.weekAssumed,
			Day:           f.dayAssumed,
			Time:          assumed.Time,
			TimeAmbiguous: assumed.TimeAmbiguous,
		},
		AmbiguousOptions: res.Options(),
		SourceText:       message,
	}
	if ext.Assumed.Time && !ext.Assumed.TimeAmbiguous {
		ext.Clarification = "No time specified; defaulted to 09:00am."
	}
	return ext, nil
}

// composeDate builds the candidate date by applying, in order, the year,
// the month (name or offset), the week offset and the day. A relative-day
// count overrides the month and week steps entirely. Only a month the user
// actually stated resets the base to its first day; the defaulted current
// month keeps today as the anchor so offsets count from now.
func composeDate(f fields, now time.Time) time.Time {
	loc := now.Location()
	base := time.Date(f.year, now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch {
	case f.hasRelDays:
		base = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).
			AddDate(0, 0, f.relDays)
	case f.namedMonth != 0 && f.monthOffset == 0 && !f.monthAssumed:
		year := base.Year()
		// A named month earlier than the current one almost certainly
		// means its next occurrence, unless the year was stated.
		if f.namedMonth < now.Month() && f.yearAssumed {
			year++
		}
		base = time.Date(year, f.namedMonth, 1, 0, 0, 0, 0, loc)
		base = base.AddDate(0, 0, 7*f.weekOffset)
	default:
		if f.monthOffset != 0 {
			base = addMonths(base, f.monthOffset)
		}
		base = base.AddDate(0, 0, 7*f.weekOffset)
	}

	switch {
	case f.dayOfMonth != 0:
		day := clampDay(base.Year(), base.Month(), f.dayOfMonth)
		base = time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, loc)
		if !base.After(now) && f.monthAssumed && f.monthOffset == 0 && !f.hasRelDays {
			base = addMonths(base, 1)
		}
	case f.hasWeekday:
		// Aim at the target weekday within the composed week (weeks
		// start on Monday); an occurrence not after "now" moves to the
		// following week.
		monday := base.AddDate(0, 0, -mondayOffset(base.Weekday()))
		base = monday.AddDate(0, 0, mondayOffset(f.weekday))
		if !base.After(now) {
			base = base.AddDate(0, 0, 7)
		}
	}

	return base
}

// resolveClock merges the parsed clock time onto the composed date and
// classifies bare-hour ambiguity. The returned resolution is always
// strictly in the future relative to now.
func (p *Parser) resolveClock(f fields, text string, date, now time.Time) (TimeResolution, Assumptions) {
	var assumed Assumptions

	tok, ok := parseTimeToken(f.timeToken)
	if f.timeAssumed || !ok {
		// No usable time expression: default to 9:00am.
		assumed.Time = true
		chosen := at(date, 9, 0)
		return TimeResolution{Kind: TimeResolved, At: advanceFuture(chosen, f, now)}, assumed
	}

	if tok.explicit {
		chosen := at(date, tok.hour, tok.minute)
		return TimeResolution{Kind: TimeResolved, At: advanceFuture(chosen, f, now)}, assumed
	}

	res := classifyAmbiguity(tok, text, date, now)
	if res.Kind == TimeAmbiguous {
		assumed.Time = true
		assumed.TimeAmbiguous = true
	}
	res.At = advanceFuture(res.At, f, now)
	return res, assumed
}

// classifyAmbiguity decides between the AM and PM reading of a bare hour.
// Hint words settle it outright; a literal 12 prefers noon but stays
// flagged; otherwise the temporally nearer future candidate wins, flagged
// ambiguous when the two are within one hour of each other in
// time-to-occurrence.
func classifyAmbiguity(tok timeToken, text string, date, now time.Time) TimeResolution {
	hh := tok.hour % 12
	morning := at(date, hh, tok.minute)
	evening := at(date, hh+12, tok.minute)

	pmHint := pmHintPattern.MatchString(text)
	amHint := amHintPattern.MatchString(text)

	switch {
	case amHint && !pmHint:
		return TimeResolution{Kind: TimeResolved, At: morning}
	case pmHint && !amHint:
		return TimeResolution{Kind: TimeResolved, At: evening}
	case tok.hour == 12:
		// Noon bias: a bare "12" reads as midday, but it is still worth
		// confirming against midnight.
		return TimeResolution{Kind: TimeAmbiguous, At: evening, Morning: morning, Evening: evening}
	}

	diffMorning := untilNext(morning, now)
	diffEvening := untilNext(evening, now)

	chosen := morning
	if diffEvening < diffMorning {
		chosen = evening
	}
	if absDuration(diffMorning-diffEvening) < time.Hour {
		return TimeResolution{Kind: TimeAmbiguous, At: chosen, Morning: morning, Evening: evening}
	}
	return TimeResolution{Kind: TimeResolved, At: chosen}
}

// advanceFuture pushes an instant that is not strictly after now into the
// future, stepping by the granularity that produced the date. Each step
// strictly increases the instant, so the loop is bounded by construction.
func advanceFuture(t time.Time, f fields, now time.Time) time.Time {
	for !t.After(now) {
		switch {
		case f.hasWeekday:
			t = t.AddDate(0, 0, 7)
		case f.dayOfMonth != 0:
			t = addMonths(t, 1)
		default:
			t = t.AddDate(0, 0, 1)
		}
	}
	return t
}

// untilNext returns the duration until the next occurrence of t, wrapping
// candidates already in the past forward by one day.
func untilNext(t, now time.Time) time.Duration {
	d := t.Sub(now)
	if d <= 0 {
		d += 24 * time.Hour
	}
	return d
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func at(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// addMonths shifts by whole calendar months, clamping the day-of-month to
// the target month's length (AddDate would normalize Jan 31 + 1 month to
// Mar 2/3).
func addMonths(t time.Time, months int) time.Time {
	m := int(t.Month()) - 1 + months
	year := t.Year() + m/12
	month := time.Month(m%12 + 1)
	day := clampDay(year, month, t.Day())
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

func clampDay(year int, month time.Month, day int) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day < 1 {
		return 1
	}
	if day > last {
		return last
	}
	return day
}

// mondayOffset converts a weekday to its offset from Monday.
func mondayOffset(w time.Weekday) int {
	return (int(w) + 6) % 7
}
