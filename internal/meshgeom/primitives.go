// Package meshgeom defines the primitive geometric types shared by every
// mesh driver: vertices, edges, faces and their bounding box.
package meshgeom

import "math"

// Vertex is a single mesh node. Z is the bed elevation; drivers that have
// no node-level elevation leave it at zero.
type Vertex struct {
	X, Y, Z float64
}

// Edge is an ordered pair of vertex indices. Start and End must differ and
// both must be valid indices into the owning mesh's vertex stream.
type Edge struct {
	Start, End int
}

// Face is an ordered list of vertex indices, at least two long. Meshes with
// polygonal faces (triangles, quads, arbitrary N-gons) all use this type;
// FaceVerticesMaximumCount on the owning mesh tracks the widest face seen.
type Face []int

// BBox is an axis-aligned, inclusive bounding box in the mesh's own
// coordinate system. An empty BBox (no vertices seen) has MinX > MaxX.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBBox returns a box with no extent, ready to be grown by Extend.
func EmptyBBox() BBox {
	return BBox{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// IsValid reports whether the box has been grown by at least one point.
func (b BBox) IsValid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// Extend grows the box, if necessary, to include (x, y).
func (b BBox) Extend(x, y float64) BBox {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
	return b
}

// Union returns the smallest box containing both a and b. An invalid
// operand is ignored.
func Union(a, b BBox) BBox {
	if !a.IsValid() {
		return b
	}
	if !b.IsValid() {
		return a
	}
	return BBox{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}
