package timeframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase and trim", "  Remind Me FRIDAY  ", "remind me friday"},
		{"typo fixes", "firday moring", "friday morning"},
		{"weekday typos", "wednessday thrusday", "wednesday thursday"},
		{"spelled numbers", "in two weeks at seven", "in 2 weeks at 7"},
		{"larger numbers", "after fifteen days", "after 15 days"},
		{"tomorrow possessive", "tommorrow's meeting", "tomorrow meeting"},
		{"tomorrow variants", "tommorow tomorrows", "tomorrow tomorrow"},
		{"month abbreviation typo", "next mnth", "next month"},
		{"whole word only", "honeymoon", "honeymoon"},
		{"passthrough", "hello there", "hello there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}
