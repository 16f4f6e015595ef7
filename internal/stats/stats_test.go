package stats

import (
	"math"
	"testing"
)

func TestFromScalarsSkipsNaN(t *testing.T) {
	s := FromScalars([]float64{1, math.NaN(), 3, -2})
	if !s.IsValid || s.Min != -2 || s.Max != 3 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestFromScalarsAllNaN(t *testing.T) {
	s := FromScalars([]float64{math.NaN(), math.NaN()})
	if s.IsValid {
		t.Fatalf("expected invalid stats for all-NaN input")
	}
	if !math.IsNaN(s.Min) || !math.IsNaN(s.Max) {
		t.Fatalf("expected NaN min/max, got %+v", s)
	}
}

func TestFromVectorsRequiresBothNaN(t *testing.T) {
	// x finite, y NaN: hypot propagates NaN, so the whole sample is skipped.
	s := FromVectors([]float64{3, math.NaN()})
	if s.IsValid {
		t.Fatalf("expected invalid stats when hypot(x,y) is NaN")
	}

	s2 := FromVectors([]float64{3, 4})
	if !s2.IsValid || s2.Min != 5 || s2.Max != 5 {
		t.Fatalf("expected hypot(3,4)=5, got %+v", s2)
	}
}

func TestContainsProperty(t *testing.T) {
	s := FromScalars([]float64{1, 5, 3})
	if !s.Contains(3) || s.Contains(6) {
		t.Fatalf("Contains behaved unexpectedly: %+v", s)
	}
}

func TestMerge(t *testing.T) {
	a := FromScalars([]float64{1, 2})
	b := FromScalars([]float64{-5, 10})
	m := Merge(a, b)
	if m.Min != -5 || m.Max != 10 {
		t.Fatalf("unexpected merge: %+v", m)
	}
}
