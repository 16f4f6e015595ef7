package model

import (
	"sync"

	"github.com/mdal-go/mdal/internal/meshgeom"
)

// MemoryMesh is the fully in-memory Mesh implementation used by drivers
// that read their whole file up front (2DM, and any driver's
// written/edited result) — spec.md §2's "memory-backed" mesh variant.
type MemoryMesh struct {
	driverName string
	uri        string
	crs        string

	vertices []meshgeom.Vertex
	edges    []meshgeom.Edge
	faces    []meshgeom.Face

	faceVerticesMax int

	groups []*DatasetGroup

	extentOnce sync.Once
	extent     meshgeom.BBox
}

// NewMemoryMesh constructs an empty mesh; callers append vertices, edges
// and faces with AddVertex/AddEdge/AddFace while parsing their format.
func NewMemoryMesh(driverName, uri, crs string) *MemoryMesh {
	return &MemoryMesh{driverName: driverName, uri: uri, crs: crs}
}

func (m *MemoryMesh) DriverName() string { return m.driverName }
func (m *MemoryMesh) URI() string        { return m.uri }
func (m *MemoryMesh) CRS() string        { return m.crs }

func (m *MemoryMesh) VertexCount() int { return len(m.vertices) }
func (m *MemoryMesh) EdgeCount() int   { return len(m.edges) }
func (m *MemoryMesh) FaceCount() int   { return len(m.faces) }

func (m *MemoryMesh) FaceVerticesMaximumCount() int { return m.faceVerticesMax }

// AddVertex appends a single vertex.
func (m *MemoryMesh) AddVertex(v meshgeom.Vertex) { m.vertices = append(m.vertices, v) }

// AddEdge appends a single edge.
func (m *MemoryMesh) AddEdge(e meshgeom.Edge) { m.edges = append(m.edges, e) }

// AddFace appends a single face and grows FaceVerticesMaximumCount if
// this face is the widest seen so far (spec.md §3 invariant).
func (m *MemoryMesh) AddFace(f meshgeom.Face) {
	m.faces = append(m.faces, f)
	if len(f) > m.faceVerticesMax {
		m.faceVerticesMax = len(f)
	}
}

func (m *MemoryMesh) Extent() meshgeom.BBox {
	m.extentOnce.Do(func() {
		m.extent = ComputeExtent(m.VertexCursor())
	})
	return m.extent
}

func (m *MemoryMesh) VertexCursor() VertexCursor { return NewSliceVertexCursor(m.vertices) }
func (m *MemoryMesh) EdgeCursor() EdgeCursor      { return NewSliceEdgeCursor(m.edges) }
func (m *MemoryMesh) FaceCursor() FaceCursor      { return NewSliceFaceCursor(m.faces) }

func (m *MemoryMesh) Groups() []*DatasetGroup { return m.groups }
func (m *MemoryMesh) AddGroup(g *DatasetGroup) { m.groups = append(m.groups, g) }

// Close is a no-op: MemoryMesh never holds a file handle open.
func (m *MemoryMesh) Close() error { return nil }

// VertexAt returns the vertex at index i, for drivers that need direct
// random access while building faces/edges (e.g. validating an index is
// in range before appending a face).
func (m *MemoryMesh) VertexAt(i int) meshgeom.Vertex { return m.vertices[i] }
