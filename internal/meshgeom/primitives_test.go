package meshgeom

import "testing"

func TestBBoxExtendAndUnion(t *testing.T) {
	b := EmptyBBox()
	if b.IsValid() {
		t.Fatalf("empty bbox should not be valid")
	}

	b = b.Extend(1000, 2000)
	b = b.Extend(1500, 1800)
	if !b.IsValid() {
		t.Fatalf("bbox should be valid after Extend")
	}
	if b.MinX != 1000 || b.MaxX != 1500 || b.MinY != 1800 || b.MaxY != 2000 {
		t.Fatalf("unexpected bbox: %+v", b)
	}

	other := EmptyBBox().Extend(-5, -5).Extend(5, 5)
	u := Union(b, other)
	if u.MinX != -5 || u.MinY != -5 || u.MaxX != 1500 || u.MaxY != 2000 {
		t.Fatalf("unexpected union: %+v", u)
	}
}

func TestFaceDegree(t *testing.T) {
	f := Face{0, 1, 2, 3}
	if len(f) != 4 {
		t.Fatalf("expected degree 4, got %d", len(f))
	}
}
