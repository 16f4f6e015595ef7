// Package mdaltime implements the two time types the mesh/dataset model
// is built on: an absolute DateTime (stored internally as milliseconds
// since the Julian-day epoch) and a RelativeTimestamp duration used to
// place a Dataset's time within its DatasetGroup's reference time.
package mdaltime

import "math"

// Calendar selects which civil-calendar algorithm governs construction
// and formatting of a DateTime.
type Calendar int

const (
	// Gregorian is the historical mixed calendar: dates on or after
	// 1582-10-15 use the Gregorian algorithm, earlier dates use the
	// Julian algorithm. This is what most "just give me a date" callers
	// want.
	Gregorian Calendar = iota
	// ProlepticGregorian always applies the Gregorian algorithm, even
	// for dates before the 1582 reform.
	ProlepticGregorian
	// Julian always applies the Julian calendar algorithm.
	Julian
)

const msPerDay = 86400000.0

// gregorianReformJDN is the Julian Day Number of 1582-10-15 in the
// proleptic Gregorian calendar: the first day the Gregorian algorithm
// applies under the Calendar.Gregorian rule.
const gregorianReformJDN = 2299161.0

// civilToJD converts a civil date/time under the given calendar to a
// Julian Day number, following Meeus's algorithm (Astronomical
// Algorithms, ch. 7).
func civilToJD(cal Calendar, year, month, day, hour, minute, second, millis int) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}

	useGregorian := cal == ProlepticGregorian
	if cal == Gregorian {
		useGregorian = isOnOrAfterReform(year, month, day)
	}

	var b float64
	if useGregorian {
		a := math.Floor(float64(y) / 100)
		b = 2 - a + math.Floor(a/4)
	}

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + b - 1524.5

	dayFrac := (float64(hour)*3600 + float64(minute)*60 + float64(second) + float64(millis)/1000) / 86400.0
	return jd + dayFrac
}

// isOnOrAfterReform reports whether (year, month, day), read as a
// proleptic-Gregorian civil date, falls on or after 1582-10-15.
func isOnOrAfterReform(year, month, day int) bool {
	if year != 1582 {
		return year > 1582
	}
	if month != 10 {
		return month > 10
	}
	return day >= 15
}

// jdToCivil inverts civilToJD, returning the civil date/time components
// for a Julian Day under the given calendar.
func jdToCivil(cal Calendar, jd float64) (year, month, day, hour, minute, second, millis int) {
	jd += 0.5
	z := math.Floor(jd)
	f := jd - z

	useGregorian := cal == ProlepticGregorian
	if cal == Gregorian {
		useGregorian = z >= gregorianReformJDN
	}

	a := z
	if useGregorian {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	dayFloat := b - d - math.Floor(30.6001*e)

	if e < 14 {
		month = int(e) - 1
	} else {
		month = int(e) - 13
	}
	if month > 2 {
		year = int(c) - 4716
	} else {
		year = int(c) - 4715
	}
	day = int(dayFloat)

	totalMs := roundHalfToEven(f * msPerDay)
	if totalMs >= int64(msPerDay) {
		// Rounding pushed the time of day to the following midnight.
		totalMs -= int64(msPerDay)
		year, month, day = addOneDay(useGregorian, year, month, day)
	}
	hour = int(totalMs / 3600000)
	rem := totalMs % 3600000
	minute = int(rem / 60000)
	rem2 := rem % 60000
	second = int(rem2 / 1000)
	millis = int(rem2 % 1000)
	return
}

// isLeapYear reports whether year is a leap year under the Gregorian or
// Julian rule, as selected by gregorian.
func isLeapYear(gregorian bool, year int) bool {
	if !gregorian {
		return year%4 == 0
	}
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonthTable = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(gregorian bool, year, month int) int {
	if month == 2 && isLeapYear(gregorian, year) {
		return 29
	}
	return daysInMonthTable[month]
}

// addOneDay rolls a civil date forward by exactly one day, carrying into
// the next month/year as needed. Only ever invoked for the sub-millisecond
// rounding edge case in jdToCivil, so exact leap-year fidelity across the
// 1582 reform boundary is not a concern here.
func addOneDay(gregorian bool, year, month, day int) (int, int, int) {
	day++
	if day > daysInMonth(gregorian, year, month) {
		day = 1
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return year, month, day
}

// roundHalfToEven rounds v to the nearest integer, breaking exact ties
// toward the even neighbour (banker's rounding), as spec.md §4.3 requires
// for millisecond formatting.
func roundHalfToEven(v float64) int64 {
	floor := math.Floor(v)
	diff := v - floor
	switch {
	case diff < 0.5:
		return int64(floor)
	case diff > 0.5:
		return int64(floor) + 1
	default:
		if int64(floor)%2 == 0 {
			return int64(floor)
		}
		return int64(floor) + 1
	}
}
