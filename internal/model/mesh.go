// Package model implements the polymorphic mesh/dataset data model of
// spec.md §3–§4.6: Mesh, DatasetGroup and Dataset, their cursors, and
// the in-memory mesh variant every simple driver (2DM, and writers)
// builds directly.
//
// Per spec.md §9's design note, concrete drivers are NOT expressed as a
// deep inheritance hierarchy. Mesh is a small interface; each driver
// returns its own concrete type (MemoryMesh here, file-backed variants
// in internal/selafin and internal/hecras that hold vertices and faces
// in memory and keep their file open afterwards) that happens to
// satisfy it.
package model

import (
	"github.com/mdal-go/mdal/internal/meshgeom"
)

// Mesh is the capability set every driver's loaded mesh must satisfy
// (spec.md §4.4). A driver that cannot represent some element kind
// simply returns zero counts and an exhausted cursor for it — both
// edge-based and face-based topology may be empty at once.
type Mesh interface {
	DriverName() string
	URI() string
	CRS() string

	VertexCount() int
	EdgeCount() int
	FaceCount() int
	FaceVerticesMaximumCount() int

	// Extent computes (and caches) the mesh's bounding box, scanning
	// vertices at most once.
	Extent() meshgeom.BBox

	VertexCursor() VertexCursor
	EdgeCursor() EdgeCursor
	FaceCursor() FaceCursor

	Groups() []*DatasetGroup
	AddGroup(g *DatasetGroup)

	// Close releases any file handle the mesh holds open for lazy
	// reads (spec.md §5). Safe to call more than once.
	Close() error
}

// VertexCursor yields a mesh's vertices in batches. It is finite,
// non-restartable and single-threaded (spec.md §4.4): once Next returns
// n < len(buf), the cursor is exhausted.
type VertexCursor interface {
	Next(buf []meshgeom.Vertex) (n int, err error)
}

// EdgeCursor yields a mesh's edges in batches of parallel start/end
// index slices.
type EdgeCursor interface {
	Next(startBuf, endBuf []int) (n int, err error)
}

// FaceCursor yields a mesh's faces in batches. Each call writes
// cumulative, call-relative face-end offsets into offsetsBuf (offsets[i]
// is the number of indices across faces 0..i written so far within this
// call) and the flattened vertex indices into indicesBuf, stopping early
// if either buffer would overflow — passing a smaller buffer must yield
// the same concatenated output as a single larger call.
type FaceCursor interface {
	Next(offsetsBuf, indicesBuf []int) (facesWritten, indicesWritten int, err error)
}

// SliceVertexCursor walks a fixed in-memory vertex slice; it backs both
// MemoryMesh and any driver whose whole vertex array is cheap to hold in
// memory after a lazy read (e.g. Selafin, whose vertices still require a
// file seek but fit easily once read).
type SliceVertexCursor struct {
	values []meshgeom.Vertex
	pos    int
}

// NewSliceVertexCursor wraps values for cursor-style consumption.
func NewSliceVertexCursor(values []meshgeom.Vertex) *SliceVertexCursor {
	return &SliceVertexCursor{values: values}
}

func (c *SliceVertexCursor) Next(buf []meshgeom.Vertex) (int, error) {
	n := copy(buf, c.values[c.pos:])
	c.pos += n
	return n, nil
}

// SliceEdgeCursor walks a fixed in-memory edge slice.
type SliceEdgeCursor struct {
	edges []meshgeom.Edge
	pos   int
}

// NewSliceEdgeCursor wraps edges for cursor-style consumption.
func NewSliceEdgeCursor(edges []meshgeom.Edge) *SliceEdgeCursor {
	return &SliceEdgeCursor{edges: edges}
}

func (c *SliceEdgeCursor) Next(startBuf, endBuf []int) (int, error) {
	n := len(startBuf)
	if len(endBuf) < n {
		n = len(endBuf)
	}
	if rem := len(c.edges) - c.pos; rem < n {
		n = rem
	}
	for i := 0; i < n; i++ {
		e := c.edges[c.pos+i]
		startBuf[i] = e.Start
		endBuf[i] = e.End
	}
	c.pos += n
	return n, nil
}

// SliceFaceCursor walks a fixed in-memory face slice.
type SliceFaceCursor struct {
	faces []meshgeom.Face
	pos   int
}

// NewSliceFaceCursor wraps faces for cursor-style consumption.
func NewSliceFaceCursor(faces []meshgeom.Face) *SliceFaceCursor {
	return &SliceFaceCursor{faces: faces}
}

func (c *SliceFaceCursor) Next(offsetsBuf, indicesBuf []int) (facesWritten, indicesWritten int, err error) {
	for c.pos < len(c.faces) && facesWritten < len(offsetsBuf) {
		f := c.faces[c.pos]
		if indicesWritten+len(f) > len(indicesBuf) {
			break
		}
		copy(indicesBuf[indicesWritten:], f)
		indicesWritten += len(f)
		offsetsBuf[facesWritten] = indicesWritten
		facesWritten++
		c.pos++
	}
	return facesWritten, indicesWritten, nil
}

// ComputeExtent drains a fresh VertexCursor to build a BBox. Drivers
// call this once and cache the result behind their own Extent().
func ComputeExtent(cursor VertexCursor) meshgeom.BBox {
	box := meshgeom.EmptyBBox()
	buf := make([]meshgeom.Vertex, 1024)
	for {
		n, err := cursor.Next(buf)
		for i := 0; i < n; i++ {
			box = box.Extend(buf[i].X, buf[i].Y)
		}
		if err != nil || n < len(buf) {
			break
		}
	}
	return box
}
