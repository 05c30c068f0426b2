package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	loc, err := Parse("Africa/Lagos")
	require.NoError(t, err)
	assert.Equal(t, "Africa/Lagos", loc.String())

	loc, err = Parse("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = Parse("Not/AZone")
	assert.Error(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("Africa/Lagos"))
	assert.True(t, IsValid("UTC"))
	assert.False(t, IsValid("Not/AZone"))
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { MustParse("Africa/Lagos") })
	assert.Panics(t, func() { MustParse("Not/AZone") })
}
