package hecras

import (
	"strconv"
	"strings"

	"github.com/mdal-go/mdal/internal/mdalerr"
	"github.com/mdal-go/mdal/internal/mdaltime"
)

var monthAbbrev = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// parseTimeDateStamp parses HEC-RAS's "DDMMMYYYY HH:MM:SS" reference
// time stamp (spec.md §4.11), e.g. "30DEC1899 00:00:00".
func parseTimeDateStamp(s string) (mdaltime.DateTime, error) {
	s = strings.TrimSpace(s)
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return mdaltime.Invalid(), mdalerr.New(mdalerr.StatusInvalidData, "malformed Time Date Stamp: "+s)
	}
	datePart, timePart := parts[0], parts[1]
	if len(datePart) < 9 {
		return mdaltime.Invalid(), mdalerr.New(mdalerr.StatusInvalidData, "malformed Time Date Stamp date: "+datePart)
	}
	dayStr := datePart[0:2]
	monStr := strings.ToUpper(datePart[2:5])
	yearStr := datePart[5:]

	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return mdaltime.Invalid(), mdalerr.Wrap(mdalerr.StatusInvalidData, "Time Date Stamp day", err)
	}
	month, ok := monthAbbrev[monStr]
	if !ok {
		return mdaltime.Invalid(), mdalerr.New(mdalerr.StatusInvalidData, "unknown month abbreviation: "+monStr)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return mdaltime.Invalid(), mdalerr.Wrap(mdalerr.StatusInvalidData, "Time Date Stamp year", err)
	}

	hh, mm, ss := 0, 0, 0
	hms := strings.Split(timePart, ":")
	if len(hms) > 0 {
		hh, _ = strconv.Atoi(hms[0])
	}
	if len(hms) > 1 {
		mm, _ = strconv.Atoi(hms[1])
	}
	if len(hms) > 2 {
		ss, _ = strconv.Atoi(hms[2])
	}

	return mdaltime.NewCivil(mdaltime.Gregorian, year, month, day, hh, mm, ss, 0), nil
}
