package mdaltime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// invalidMillis is the sentinel internal value for DateTime.invalid.
// It is placed far outside any Julian day a mesh file could plausibly
// carry so it never collides with a real timestamp.
const invalidMillis = math.MinInt64

// DateTime is an absolute point in time, stored internally as whole
// milliseconds since the Julian-day epoch (JD 0.0). It compares and
// orders correctly across the 1582 Gregorian reform because the
// internal representation is calendar-independent; only construction
// and formatting need to know which calendar a caller means.
type DateTime struct {
	ms int64
}

// Invalid returns the sentinel "no such time" DateTime. Every Invalid
// value is the same sentinel: SameInstant reports two of them as equal,
// while Equal reports false for any comparison involving one.
func Invalid() DateTime {
	return DateTime{ms: invalidMillis}
}

// IsValid reports whether d is anything other than the Invalid sentinel.
func (d DateTime) IsValid() bool {
	return d.ms != invalidMillis
}

// NewCivil constructs a DateTime from a civil calendar date and
// time-of-day under the given Calendar.
func NewCivil(cal Calendar, year, month, day, hour, minute, second, millis int) DateTime {
	jd := civilToJD(cal, year, month, day, hour, minute, second, millis)
	return DateTime{ms: int64(math.Round(jd * msPerDay))}
}

// NewFromJulianDay constructs a DateTime directly from a Julian Day
// number.
func NewFromJulianDay(jd float64) DateTime {
	return DateTime{ms: int64(math.Round(jd * msPerDay))}
}

// unixEpochMs is the internal millisecond value of 1970-01-01T00:00:00Z,
// i.e. round(2440587.5 * 86400000).
const unixEpochMs int64 = 2440587*86400000 + 43200000

// NewFromUnixSeconds constructs a DateTime from a Unix epoch second count.
func NewFromUnixSeconds(sec int64) DateTime {
	return DateTime{ms: unixEpochMs + sec*1000}
}

// ToJulianDay returns d as a Julian Day number.
func (d DateTime) ToJulianDay() float64 {
	return float64(d.ms) / msPerDay
}

// Civil decomposes d back into civil date/time components under cal.
func (d DateTime) Civil(cal Calendar) (year, month, day, hour, minute, second, millis int) {
	return jdToCivil(cal, d.ToJulianDay())
}

// ToStandardCalendarISO8601 formats d as "YYYY-MM-DDTHH:MM:SS" or, when
// the millisecond component is non-zero, "YYYY-MM-DDTHH:MM:SS.fff". The
// calendar used is the historical mixed Gregorian/Julian one (spec.md
// §4.3): dates on or after 1582-10-15 format as Gregorian, earlier dates
// as Julian.
func (d DateTime) ToStandardCalendarISO8601() string {
	if !d.IsValid() {
		return ""
	}
	y, mo, day, h, mi, s, ms := d.Civil(Gregorian)
	base := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", y, mo, day, h, mi, s)
	if ms == 0 {
		return base
	}
	return fmt.Sprintf("%s.%03d", base, ms)
}

// Equal reports whether d and other represent the same valid instant.
// It returns false whenever either side is Invalid, including when both
// are; use SameInstant to treat two Invalid values as equal.
func (d DateTime) Equal(other DateTime) bool {
	if !d.IsValid() || !other.IsValid() {
		return false
	}
	return d.ms == other.ms
}

// SameInstant reports whether d and other are the exact same DateTime
// value, including both being Invalid. Use this for the "invalid equals
// itself" comparison; use Equal for comparing two points in time.
func (d DateTime) SameInstant(other DateTime) bool {
	return d.ms == other.ms
}

// Before reports whether d is strictly earlier than other. Invalid
// values are never ordered relative to anything, including each other.
func (d DateTime) Before(other DateTime) bool {
	if !d.IsValid() || !other.IsValid() {
		return false
	}
	return d.ms < other.ms
}

// Add returns d offset by r.
func (d DateTime) Add(r RelativeTimestamp) DateTime {
	return DateTime{ms: d.ms + r.ms}
}

// Sub returns the RelativeTimestamp between other and d (d - other).
func (d DateTime) Sub(other DateTime) RelativeTimestamp {
	return RelativeTimestamp{ms: d.ms - other.ms}
}

// TimeUnit is a CF-convention time unit, as used in "<unit> since
// <reference>" strings (spec.md §4.3).
type TimeUnit int

const (
	UnitHours TimeUnit = iota
	UnitMilliseconds
	UnitSeconds
	UnitMinutes
	UnitDays
	UnitWeeks
	UnitMonths
	UnitYears
)

// ParseCFTimeUnit parses a CF-convention "<unit> since <ISO time>"
// string and returns the unit portion. On any parse failure it returns
// UnitHours and ok=false, never an error — callers fall back to the
// default unit per spec.md §4.3.
func ParseCFTimeUnit(s string) (unit TimeUnit, ok bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return UnitHours, false
	}
	unit, ok = parseUnitWord(fields[0])
	if !ok {
		return UnitHours, false
	}
	return unit, true
}

func parseUnitWord(w string) (TimeUnit, bool) {
	switch strings.ToLower(strings.TrimSuffix(w, "s")) {
	case "millisecond":
		return UnitMilliseconds, true
	case "second":
		return UnitSeconds, true
	case "minute":
		return UnitMinutes, true
	case "hour":
		return UnitHours, true
	case "day":
		return UnitDays, true
	case "week":
		return UnitWeeks, true
	case "month":
		return UnitMonths, true
	case "year":
		return UnitYears, true
	default:
		return UnitHours, false
	}
}

// ParseCFReferenceTime parses the "<unit> since <ISO time>" string and
// returns the reference DateTime portion. On failure it returns an
// Invalid DateTime, never an error (spec.md §4.3).
func ParseCFReferenceTime(s string) DateTime {
	idx := strings.Index(strings.ToLower(s), "since")
	if idx < 0 {
		return Invalid()
	}
	refStr := strings.TrimSpace(s[idx+len("since"):])
	dt, ok := parseISO8601(refStr)
	if !ok {
		return Invalid()
	}
	return dt
}

// parseISO8601 parses a subset of ISO-8601 civil timestamps:
// "YYYY-MM-DD[ T]HH:MM:SS[.fff]" or just "YYYY-MM-DD".
func parseISO8601(s string) (DateTime, bool) {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, " ", "T", 1)
	datePart, timePart, hasTime := strings.Cut(s, "T")
	dateFields := strings.Split(datePart, "-")
	if len(dateFields) != 3 {
		return DateTime{}, false
	}
	y, err1 := strconv.Atoi(dateFields[0])
	mo, err2 := strconv.Atoi(dateFields[1])
	day, err3 := strconv.Atoi(dateFields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return DateTime{}, false
	}
	h, mi, sec, ms := 0, 0, 0, 0
	if hasTime {
		secFields := strings.Split(timePart, ":")
		if len(secFields) != 3 {
			return DateTime{}, false
		}
		var errH, errM error
		h, errH = strconv.Atoi(secFields[0])
		mi, errM = strconv.Atoi(secFields[1])
		if errH != nil || errM != nil {
			return DateTime{}, false
		}
		secStr := secFields[2]
		if dot := strings.IndexByte(secStr, '.'); dot >= 0 {
			fracStr := secStr[dot+1:]
			for len(fracStr) < 3 {
				fracStr += "0"
			}
			ms, _ = strconv.Atoi(fracStr[:3])
			secStr = secStr[:dot]
		}
		var errS error
		sec, errS = strconv.Atoi(secStr)
		if errS != nil {
			return DateTime{}, false
		}
	}
	return NewCivil(ProlepticGregorian, y, mo, day, h, mi, sec, ms), true
}
