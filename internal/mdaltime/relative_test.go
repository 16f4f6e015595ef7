package mdaltime

import "testing"

func TestRelativeTimestampUnitEquivalence(t *testing.T) {
	a := NewRelativeTimestamp(90, Minutes)
	b := NewRelativeTimestamp(1.5, Hours)
	if !a.Equal(b) {
		t.Fatalf("90 minutes should equal 1.5 hours: %v vs %v", a.ms, b.ms)
	}
}

func TestRelativeTimestampAddition(t *testing.T) {
	sum := NewRelativeTimestamp(90, Seconds).Add(NewRelativeTimestamp(1.5, Minutes))
	want := NewRelativeTimestamp(3, Minutes)
	if !sum.Equal(want) {
		t.Fatalf("90s + 1.5min should equal 3min: %v vs %v", sum.ms, want.ms)
	}
}
