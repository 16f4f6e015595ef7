package selafin

import (
	"os"
	"sync"

	"github.com/mdal-go/mdal/internal/binstream"
	"github.com/mdal-go/mdal/internal/meshgeom"
	"github.com/mdal-go/mdal/internal/model"
)

// Mesh is the lazily-backed Selafin mesh. Vertices and faces are
// resolved once into memory (cheap even for large files, unlike
// per-timestep dataset values) but the file handle stays open and
// shared with every Dataset's ValueSource, per spec.md §4.10's
// single-owner streaming design.
type Mesh struct {
	uri string
	h   *header
	r   *binstream.Reader
	raw *os.File

	vertices []meshgeom.Vertex
	faces    []meshgeom.Face

	groups []*model.DatasetGroup

	extentOnce sync.Once
	extent     meshgeom.BBox
}

func (m *Mesh) DriverName() string { return "Selafin" }
func (m *Mesh) URI() string        { return m.uri }
func (m *Mesh) CRS() string        { return "" }

func (m *Mesh) VertexCount() int { return len(m.vertices) }
func (m *Mesh) EdgeCount() int   { return 0 }
func (m *Mesh) FaceCount() int   { return len(m.faces) }

func (m *Mesh) FaceVerticesMaximumCount() int { return m.h.ndp }

func (m *Mesh) Extent() meshgeom.BBox {
	m.extentOnce.Do(func() {
		m.extent = model.ComputeExtent(m.VertexCursor())
	})
	return m.extent
}

func (m *Mesh) VertexCursor() model.VertexCursor { return model.NewSliceVertexCursor(m.vertices) }
func (m *Mesh) EdgeCursor() model.EdgeCursor      { return model.NewSliceEdgeCursor(nil) }
func (m *Mesh) FaceCursor() model.FaceCursor      { return model.NewSliceFaceCursor(m.faces) }

func (m *Mesh) Groups() []*model.DatasetGroup  { return m.groups }
func (m *Mesh) AddGroup(g *model.DatasetGroup) { m.groups = append(m.groups, g) }

// Close releases the shared file handle; safe to call more than once.
func (m *Mesh) Close() error {
	if m.raw == nil {
		return nil
	}
	err := m.raw.Close()
	m.raw = nil
	return err
}
