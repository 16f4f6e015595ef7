package hecras

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdal-go/mdal/internal/mdaltime"
)

func TestParseTimeDateStampReferenceTime(t *testing.T) {
	dt, err := parseTimeDateStamp("30DEC1899 00:00:00")
	require.NoError(t, err)

	want := mdaltime.NewCivil(mdaltime.Gregorian, 1899, 12, 30, 0, 0, 0, 0)
	assert.True(t, dt.SameInstant(want), "got %s, want %s", dt.ToStandardCalendarISO8601(), want.ToStandardCalendarISO8601())
	assert.Equal(t, "1899-12-30T00:00:00", dt.ToStandardCalendarISO8601())
}

func TestParseTimeDateStampRejectsMalformed(t *testing.T) {
	_, err := parseTimeDateStamp("not-a-stamp")
	require.Error(t, err)
}
