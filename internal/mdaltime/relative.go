package mdaltime

import "math"

// RelativeTimestamp is a duration, stored internally as whole
// milliseconds, used to place a Dataset's time relative to its
// DatasetGroup's reference DateTime.
type RelativeTimestamp struct {
	ms int64
}

// RelativeUnit is the unit a RelativeTimestamp is expressed in at the
// API boundary; the internal representation is always milliseconds.
type RelativeUnit int

const (
	Milliseconds RelativeUnit = iota
	Seconds
	Minutes
	Hours
	Days
	Weeks
)

var unitToMillis = map[RelativeUnit]float64{
	Milliseconds: 1,
	Seconds:      1000,
	Minutes:      60 * 1000,
	Hours:        60 * 60 * 1000,
	Days:         24 * 60 * 60 * 1000,
	Weeks:        7 * 24 * 60 * 60 * 1000,
}

// NewRelativeTimestamp constructs a RelativeTimestamp of value units of
// RelativeUnit unit (e.g. NewRelativeTimestamp(90, Minutes)).
func NewRelativeTimestamp(value float64, unit RelativeUnit) RelativeTimestamp {
	return RelativeTimestamp{ms: int64(math.Round(value * unitToMillis[unit]))}
}

// Milliseconds returns the duration as whole milliseconds.
func (r RelativeTimestamp) Milliseconds() int64 {
	return r.ms
}

// In returns r's value expressed in the given unit.
func (r RelativeTimestamp) In(unit RelativeUnit) float64 {
	return float64(r.ms) / unitToMillis[unit]
}

// Add returns the sum of two RelativeTimestamps.
func (r RelativeTimestamp) Add(other RelativeTimestamp) RelativeTimestamp {
	return RelativeTimestamp{ms: r.ms + other.ms}
}

// Equal reports whether r and other represent the same duration,
// regardless of the units each was originally constructed from —
// RelativeTimestamp(90, Minutes) == RelativeTimestamp(1.5, Hours).
func (r RelativeTimestamp) Equal(other RelativeTimestamp) bool {
	return r.ms == other.ms
}

// Less reports whether r is strictly shorter than other.
func (r RelativeTimestamp) Less(other RelativeTimestamp) bool {
	return r.ms < other.ms
}
