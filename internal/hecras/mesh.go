package hecras

import (
	"sync"

	"github.com/mdal-go/mdal/internal/meshgeom"
	"github.com/mdal-go/mdal/internal/model"
)

// Mesh is the HEC-RAS 2D Mesh implementation. Its vertex/face arrays
// are assembled once across all 2D Flow Areas (spec.md §4.11: "Mesh
// assembly concatenates areas in declaration order"); the backing HDF5
// file handle stays open so LoadDatasets can walk the Results tree
// lazily afterwards, mirroring the Selafin engine's shared-handle
// design (spec.md §9).
type Mesh struct {
	driverName string
	uri        string

	vertices []meshgeom.Vertex
	faces    []meshgeom.Face

	areas []*area

	groups []*model.DatasetGroup

	h *file

	extentOnce sync.Once
	extent     meshgeom.BBox
}

func (m *Mesh) DriverName() string { return m.driverName }
func (m *Mesh) URI() string        { return m.uri }
func (m *Mesh) CRS() string        { return "" }

func (m *Mesh) VertexCount() int { return len(m.vertices) }
func (m *Mesh) EdgeCount() int   { return 0 }
func (m *Mesh) FaceCount() int   { return len(m.faces) }

func (m *Mesh) FaceVerticesMaximumCount() int {
	max := 0
	for _, f := range m.faces {
		if len(f) > max {
			max = len(f)
		}
	}
	return max
}

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

// Close releases the HDF5 file handle; safe to call more than once.
func (m *Mesh) Close() error {
	if m.h == nil {
		return nil
	}
	err := m.h.Close()
	m.h = nil
	return err
}

// globalCellIndex maps an area-local cell index to the mesh-wide face
// index, using the area's recorded start offset (spec.md §4.11's
// "area_elem_start_index[]").
func (m *Mesh) globalCellIndex(areaIdx, localCell int) int {
	return m.areas[areaIdx].faceStart + localCell
}
