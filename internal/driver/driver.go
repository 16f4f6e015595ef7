// Package driver defines the driver contract of spec.md §4.7 and the
// registry/sniffing manager of §4.8. Concrete format engines
// (internal/selafin, internal/hecras, and the in-tree stub drivers in
// this package's stubs.go) implement the Driver interface; model
// never imports this package, avoiding the cycle noted in
// internal/model/datasetgroup.go.
package driver

import (
	"github.com/mdal-go/mdal/internal/mdaltime"
	"github.com/mdal-go/mdal/internal/model"
)

// Driver is the full contract of spec.md §4.7. Every format, including
// the contract-only stubs, implements it; most of a stub's methods
// return MissingDriverCapability.
type Driver interface {
	Name() string
	LongName() string
	Filters() []string
	Capabilities() model.Capability
	FaceVerticesMaximumCount() int

	// CanReadMesh peeks at uri (open, read a small header, close) and
	// never returns an error: any I/O failure during the probe itself
	// is reported as false, per spec.md §4.7.
	CanReadMesh(uri string) bool
	CanReadDatasets(uri string) bool

	Load(uri string, meshName string) (model.Mesh, error)
	LoadDatasets(uri string, mesh model.Mesh) error
	Save(uri string, mesh model.Mesh) error

	CreateDatasetGroup(mesh model.Mesh, name string, location model.DataLocation, isScalar bool) (*model.DatasetGroup, error)
	CreateDataset(group *model.DatasetGroup, time mdaltime.RelativeTimestamp, values []float64, active []bool) (*model.Dataset, error)

	// Persist satisfies model.DriverBinding, flushing an edited group
	// back to its backing URI.
	Persist(group *model.DatasetGroup) error
}

// baseDriver factors the bookkeeping every Driver, stub or not, shares:
// identity, filters and capability flags. Concrete drivers embed it and
// override Load/Save/CanReadMesh/etc.
type baseDriver struct {
	name         string
	longName     string
	filters      []string
	capabilities model.Capability
	maxVertices  int
}

func (b *baseDriver) Name() string                        { return b.name }
func (b *baseDriver) LongName() string                     { return b.longName }
func (b *baseDriver) Filters() []string                    { return b.filters }
func (b *baseDriver) Capabilities() model.Capability       { return b.capabilities }
func (b *baseDriver) FaceVerticesMaximumCount() int        { return b.maxVertices }
func (b *baseDriver) CanReadDatasets(uri string) bool      { return false }

func (b *baseDriver) CreateDatasetGroup(mesh model.Mesh, name string, location model.DataLocation, isScalar bool) (*model.DatasetGroup, error) {
	elementCount := elementCountFor(mesh, location)
	g := model.NewDatasetGroup(name, b.name, mesh.URI(), location, isScalar, elementCount, mesh.FaceCount(), nil)
	mesh.AddGroup(g)
	return g, nil
}

func (b *baseDriver) CreateDataset(group *model.DatasetGroup, time mdaltime.RelativeTimestamp, values []float64, active []bool) (*model.Dataset, error) {
	return group.AddDataset(time, values, active)
}

// elementCountFor reports how many elements a DatasetGroup at location
// needs in a mesh, per spec.md §3.
func elementCountFor(mesh model.Mesh, location model.DataLocation) int {
	switch location {
	case model.OnVertices:
		return mesh.VertexCount()
	case model.OnEdges:
		return mesh.EdgeCount()
	default:
		return mesh.FaceCount()
	}
}
