package timeframe

import (
	"regexp"
	"strconv"
	"time"
)

// Each field is resolved by scanning an ordered list of pattern families;
// the first matching family wins. Absence of any match falls back to a
// default and sets the field's assumed flag.

var (
	yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

	monthCountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bnext\s+(\d+)\s+months?\b`),
		regexp.MustCompile(`\bin\s+(\d+)\s+months?\b`),
	}
	nextMonthPattern = regexp.MustCompile(`\bnext\s+month\b`)

	weekCountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bnext\s+(\d+)\s+weeks?\b`),
		regexp.MustCompile(`\bin\s+(\d+)\s+weeks?\b`),
	}
	nextWeekPattern = regexp.MustCompile(`\bnext\s+week\b`)

	relDayPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bin\s+(\d+)\s+days?\b`),
		regexp.MustCompile(`\bafter\s+(\d+)\s+days?\b`),
	}
	dayAfterTomorrowPattern = regexp.MustCompile(`\bday after tomorrow\b`)
	plainTomorrowPattern    = regexp.MustCompile(`\btomorrow\b`)

	dayOfMonthPattern = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+of\s+([a-z]+)\b`)
	onTheDayPattern   = regexp.MustCompile(`\bon\s+the\s+(\d{1,2})(?:st|nd|rd|th)?\b`)

	timeTokenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2}:\d{2}\s*(?:am|pm)?)\b`),
		regexp.MustCompile(`\b(\d{1,2}\s*(?:am|pm))\b`),
		regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`),
		regexp.MustCompile(`\b(?:by|at)\s+(\d{1,2})\b`),
	}
	timeWordPattern = regexp.MustCompile(`\b(?:in the\s+)?(morning|afternoon|evening|night|noon|midday|midnight)\b`)

	pmHintPattern = regexp.MustCompile(`\b(afternoon|pm|evening|night|noon|midday)\b`)
	amHintPattern = regexp.MustCompile(`\b(morning|am)\b`)

	clockPattern         = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	clockMeridiemPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(am|pm)$`)
	hourMeridiemPattern  = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)$`)
	bareHourPattern      = regexp.MustCompile(`^(\d{1,2})$`)
)

// timeWords maps time-of-day vocabulary to a typical clock time.
var timeWords = map[string]struct{ hour, minute int }{
	"noon":      {12, 0},
	"midday":    {12, 0},
	"midnight":  {0, 0},
	"morning":   {9, 0},
	"afternoon": {13, 0},
	"evening":   {18, 0},
	"night":     {20, 0},
}

// monthNames lists full month names before their abbreviations so the full
// form is preferred when both appear.
var monthNames = []struct {
	name  string
	month time.Month
}{
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"may", time.May}, {"june", time.June},
	{"july", time.July}, {"august", time.August}, {"september", time.September},
	{"october", time.October}, {"november", time.November}, {"december", time.December},
	{"jan", time.January}, {"feb", time.February}, {"mar", time.March},
	{"apr", time.April}, {"jun", time.June}, {"jul", time.July},
	{"aug", time.August}, {"sep", time.September}, {"oct", time.October},
	{"nov", time.November}, {"dec", time.December},
}

var monthNamePatterns = buildWordPatterns(monthNames)

func buildWordPatterns(names []struct {
	name  string
	month time.Month
}) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(names))
	for i, n := range names {
		patterns[i] = regexp.MustCompile(`\b` + n.name + `\b`)
	}
	return patterns
}

// weekdayNames holds weekday vocabulary in Monday-first order.
var weekdayNames = []struct {
	name    string
	weekday time.Weekday
}{
	{"monday", time.Monday}, {"tuesday", time.Tuesday}, {"wednesday", time.Wednesday},
	{"thursday", time.Thursday}, {"friday", time.Friday}, {"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

var weekdayPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(weekdayNames))
	for i, w := range weekdayNames {
		patterns[i] = regexp.MustCompile(`\b` + w.name + `\b`)
	}
	return patterns
}()

// fields is the combined output of the five field resolvers over one
// normalized message.
type fields struct {
	year        int
	yearAssumed bool

	namedMonth   time.Month // 0 means no month name matched
	monthOffset  int
	monthAssumed bool

	weekOffset  int
	weekAssumed bool

	relDays    int
	hasRelDays bool

	dayOfMonth int // 0 means not given
	weekday    time.Weekday
	hasWeekday bool
	dayAssumed bool

	timeToken   string
	timeAssumed bool
}

// resolveFields runs the five resolvers over normalized text. now supplies
// the defaults for fields the text leaves unstated.
func resolveFields(text string, now time.Time) fields {
	var f fields

	// Year: a 4-digit token in [2000,2099], else the current year.
	if m := yearPattern.FindStringSubmatch(text); m != nil {
		f.year, _ = strconv.Atoi(m[1])
	} else {
		f.year = now.Year()
		f.yearAssumed = true
	}

	// Month: a name wins over an offset; the offset patterns are only
	// consulted when no name matched.
	for i, p := range monthNamePatterns {
		if p.MatchString(text) {
			f.namedMonth = monthNames[i].month
			break
		}
	}
	for _, p := range monthCountPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			f.monthOffset, _ = strconv.Atoi(m[1])
			break
		}
	}
	if f.monthOffset == 0 && nextMonthPattern.MatchString(text) {
		f.monthOffset = 1
	}
	if f.namedMonth != 0 {
		f.monthOffset = 0
	}
	if f.namedMonth == 0 && f.monthOffset == 0 {
		f.namedMonth = now.Month()
		f.monthAssumed = true
	}

	// Week: an offset in whole weeks. "this week" and "this month" mean
	// the zero default and need no pattern of their own.
	for _, p := range weekCountPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			f.weekOffset, _ = strconv.Atoi(m[1])
			break
		}
	}
	if f.weekOffset == 0 && nextWeekPattern.MatchString(text) {
		f.weekOffset = 1
	}
	f.weekAssumed = f.weekOffset == 0

	// Relative days take precedence over month/week offsets during
	// composition.
	for _, p := range relDayPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			f.relDays, _ = strconv.Atoi(m[1])
			f.hasRelDays = true
			break
		}
	}
	if dayAfterTomorrowPattern.MatchString(text) {
		f.relDays = 2
		f.hasRelDays = true
	} else if !f.hasRelDays && plainTomorrowPattern.MatchString(text) {
		f.relDays = 1
		f.hasRelDays = true
	}

	// Day: explicit "D of <month>" first (which may also pin the month),
	// then "on the D", then a weekday name.
	if m := dayOfMonthPattern.FindStringSubmatch(text); m != nil {
		f.dayOfMonth, _ = strconv.Atoi(m[1])
		if month, ok := monthByName(m[2]); ok {
			f.namedMonth = month
			f.monthOffset = 0
			f.monthAssumed = false
		}
	}
	if f.dayOfMonth == 0 {
		if m := onTheDayPattern.FindStringSubmatch(text); m != nil {
			f.dayOfMonth, _ = strconv.Atoi(m[1])
		}
	}
	for i, p := range weekdayPatterns {
		if p.MatchString(text) {
			f.weekday = weekdayNames[i].weekday
			f.hasWeekday = true
			break
		}
	}
	f.dayAssumed = f.dayOfMonth == 0 && !f.hasWeekday && !f.hasRelDays

	// Time: the first matching token pattern wins; time-of-day words are
	// only consulted when no numeric token matched.
	for _, p := range timeTokenPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			f.timeToken = m[1]
			break
		}
	}
	if f.timeToken == "" {
		if m := timeWordPattern.FindStringSubmatch(text); m != nil {
			f.timeToken = m[1]
		}
	}
	f.timeAssumed = f.timeToken == ""

	return f
}

func monthByName(name string) (time.Month, bool) {
	for _, n := range monthNames {
		if n.name == name {
			return n.month, true
		}
	}
	return 0, false
}

// timeToken is a parsed clock-time candidate. Explicit is false for a bare
// hour with no meridiem and no time-of-day word; those are handed to the
// ambiguity classifier.
type timeToken struct {
	hour     int
	minute   int
	explicit bool
}

// parseTimeToken converts a matched token into hour and minute. A token
// that matched a pattern but does not convert to a valid clock time is
// reported as malformed; callers fall back to the time-assumed default.
func parseTimeToken(tok string) (timeToken, bool) {
	if w, ok := timeWords[tok]; ok {
		return timeToken{hour: w.hour, minute: w.minute, explicit: true}, true
	}
	if m := clockMeridiemPattern.FindStringSubmatch(tok); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		hh, ok := applyMeridiem(hh, m[3])
		if !ok || mm > 59 {
			return timeToken{}, false
		}
		return timeToken{hour: hh, minute: mm, explicit: true}, true
	}
	if m := clockPattern.FindStringSubmatch(tok); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if hh > 23 || mm > 59 {
			return timeToken{}, false
		}
		return timeToken{hour: hh, minute: mm, explicit: true}, true
	}
	if m := hourMeridiemPattern.FindStringSubmatch(tok); m != nil {
		hh, _ := strconv.Atoi(m[1])
		hh, ok := applyMeridiem(hh, m[2])
		if !ok {
			return timeToken{}, false
		}
		return timeToken{hour: hh, explicit: true}, true
	}
	if m := bareHourPattern.FindStringSubmatch(tok); m != nil {
		hh, _ := strconv.Atoi(m[1])
		if hh > 23 {
			return timeToken{}, false
		}
		return timeToken{hour: hh}, true
	}
	return timeToken{}, false
}

func applyMeridiem(hour int, meridiem string) (int, bool) {
	if hour < 1 || hour > 12 {
		return 0, false
	}
	if meridiem == "pm" && hour != 12 {
		hour += 12
	}
	if meridiem == "am" && hour == 12 {
		hour = 0
	}
	return hour, true
}
