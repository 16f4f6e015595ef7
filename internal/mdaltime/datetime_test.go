package mdaltime

import "testing"

func TestToStandardCalendarISO8601(t *testing.T) {
	d := NewCivil(Gregorian, 2019, 2, 28, 10, 2, 1, 0)
	got := d.ToStandardCalendarISO8601()
	want := "2019-02-28T10:02:01"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJulianDayRoundTripAcrossReform(t *testing.T) {
	jd := NewFromJulianDay(2241532.0)
	proleptic := NewCivil(ProlepticGregorian, 1425, 1, 2, 12, 0, 0, 0)
	julian := NewCivil(Julian, 1424, 12, 24, 12, 0, 0, 0)

	if !jd.Equal(proleptic) {
		t.Fatalf("JD(2241532.0) != proleptic Gregorian 1425-01-02: got JD=%v want=%v", jd.ToJulianDay(), proleptic.ToJulianDay())
	}
	if !jd.Equal(julian) {
		t.Fatalf("JD(2241532.0) != Julian 1424-12-24: got JD=%v want=%v", jd.ToJulianDay(), julian.ToJulianDay())
	}
}

func TestInvalidDateTimeComparisons(t *testing.T) {
	inv1 := Invalid()
	inv2 := Invalid()
	valid := NewCivil(Gregorian, 2020, 1, 1, 0, 0, 0, 0)

	if !inv1.SameInstant(inv2) {
		t.Fatalf("two Invalid sentinels should be the same instant")
	}
	if inv1.Equal(inv2) {
		t.Fatalf("Invalid should never Equal another DateTime, including another Invalid")
	}
	if inv1.Equal(valid) {
		t.Fatalf("Invalid should never equal a valid DateTime")
	}
}

// TestTimeAlgebraProperty checks property P6: (d + r) - d == r and
// (d - r) + r == d.
func TestTimeAlgebraProperty(t *testing.T) {
	d := NewCivil(Gregorian, 2024, 6, 15, 8, 30, 0, 0)
	r := NewRelativeTimestamp(12345, Seconds)

	if got := d.Add(r).Sub(d); !got.Equal(r) {
		t.Fatalf("(d+r)-d = %v, want %v", got.ms, r.ms)
	}
	if got := d.Add(NewRelativeTimestamp(-r.In(Milliseconds), Milliseconds)).Add(r); !got.Equal(d) {
		t.Fatalf("(d-r)+r = %v, want %v", got.ms, d.ms)
	}
}

func TestParseCFTimeUnitAndReference(t *testing.T) {
	unit, ok := ParseCFTimeUnit("hours since 2000-01-01T00:00:00")
	if !ok || unit != UnitHours {
		t.Fatalf("expected UnitHours, got %v ok=%v", unit, ok)
	}
	ref := ParseCFReferenceTime("hours since 2000-01-01T00:00:00")
	if !ref.IsValid() {
		t.Fatalf("expected valid reference time")
	}

	unit, ok = ParseCFTimeUnit("garbage")
	if ok {
		t.Fatalf("expected failure for garbage unit")
	}
	if unit != UnitHours {
		t.Fatalf("on failure should fall back to UnitHours, got %v", unit)
	}
	ref = ParseCFReferenceTime("garbage")
	if ref.IsValid() {
		t.Fatalf("expected invalid reference time for garbage input")
	}
}
