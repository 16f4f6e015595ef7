package mdalcatalog

import (
	"testing"

	"github.com/mdal-go/mdal/internal/meshgeom"
)

func bbox(minX, minY, maxX, maxY float64) meshgeom.BBox {
	return meshgeom.BBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func TestBuildAndCount(t *testing.T) {
	entries := []Entry{
		{Path: "a.2dm", DriverName: "2DM", VertexCount: 10, Extent: bbox(0, 0, 1, 1)},
		{Path: "b.2dm", DriverName: "2DM", VertexCount: 20, Extent: bbox(5, 5, 6, 6)},
	}
	c := Build(entries)
	if c.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", c.Count())
	}
	if len(c.All()) != 2 {
		t.Fatalf("All() = %d entries, want 2", len(c.All()))
	}
}

func TestQueryReturnsOnlyIntersectingEntriesLargestFirst(t *testing.T) {
	entries := []Entry{
		{Path: "small.2dm", VertexCount: 10, Extent: bbox(0, 0, 1, 1)},
		{Path: "big.2dm", VertexCount: 50, Extent: bbox(0, 0, 2, 2)},
		{Path: "far.2dm", VertexCount: 999, Extent: bbox(100, 100, 101, 101)},
	}
	c := Build(entries)

	got := c.Query(bbox(0, 0, 1, 1))
	if len(got) != 2 {
		t.Fatalf("Query() returned %d entries, want 2 (far.2dm should not match)", len(got))
	}
	if got[0].Path != "big.2dm" || got[1].Path != "small.2dm" {
		t.Fatalf("Query() order = %v, want [big.2dm small.2dm]", got)
	}
}

func TestQueryWithNoMatchesReturnsEmpty(t *testing.T) {
	entries := []Entry{
		{Path: "only.2dm", VertexCount: 1, Extent: bbox(0, 0, 1, 1)},
	}
	c := Build(entries)
	got := c.Query(bbox(50, 50, 51, 51))
	if len(got) != 0 {
		t.Fatalf("Query() = %v, want no matches", got)
	}
}

func TestEntryBoundsHandlesDegenerateExtent(t *testing.T) {
	e := Entry{Path: "point.2dm", Extent: bbox(3, 3, 3, 3)}
	c := Build([]Entry{e})
	got := c.Query(bbox(3, 3, 3, 3))
	if len(got) != 1 || got[0].Path != "point.2dm" {
		t.Fatalf("Query() on a degenerate extent = %v, want [point.2dm]", got)
	}
}
