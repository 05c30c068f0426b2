// Package timezone resolves the single civil timezone all reminder
// computations run in.
package timezone

import (
	"fmt"
	"time"
)

// Parse resolves an IANA timezone identifier (e.g. "Africa/Lagos").
// Returns UTC alongside the error when the identifier is invalid.
func Parse(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// MustParse resolves a timezone or panics. For identifiers known valid at
// compile time.
func MustParse(tz string) *time.Location {
	loc, err := Parse(tz)
	if err != nil {
		panic(err)
	}
	return loc
}

// IsValid reports whether a timezone identifier resolves.
func IsValid(tz string) bool {
	_, err := Parse(tz)
	return err == nil
}
