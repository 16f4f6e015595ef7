package hecras

import (
	"math"

	"github.com/mdal-go/mdal/internal/mdalerr"
	"github.com/mdal-go/mdal/internal/mdaltime"
	"github.com/mdal-go/mdal/internal/model"
)

const eps = 1e-5

// Driver implements the driver.Driver contract for HEC-RAS 2D HDF5
// results/geometry files. It is a read-only engine: spec.md §4.11 says
// nothing of a writer, and no pack example models an HDF5 writer.
type Driver struct{}

// New returns the HEC-RAS driver instance registered with the manager.
func New() *Driver { return &Driver{} }

func (d *Driver) Name() string     { return "HEC-RAS" }
func (d *Driver) LongName() string { return "HEC-RAS 2D HDF5 Results" }
func (d *Driver) Filters() []string {
	return []string{"*.hdf", "*.h5", "*.p01.hdf"}
}
func (d *Driver) Capabilities() model.Capability {
	return model.CapReadMesh | model.CapReadDatasets
}
func (d *Driver) FaceVerticesMaximumCount() int { return 8 }

// CanReadMesh checks only the File Type attribute, per spec.md §4.11's
// explicit failure-mode note.
func (d *Driver) CanReadMesh(uri string) bool {
	h, err := openFile(uri)
	if err != nil {
		return false
	}
	defer h.Close()
	ft, ok := h.stringAttribute("/", "File Type")
	if !ok {
		return false
	}
	return ft == "HEC-RAS Results" || ft == "HEC-RAS Geometry"
}

func (d *Driver) CanReadDatasets(uri string) bool { return d.CanReadMesh(uri) }

// Load walks every 2D Flow Area and concatenates their geometry into
// one Mesh, in declaration order (spec.md §4.11).
func (d *Driver) Load(uri string, meshName string) (model.Mesh, error) {
	h, err := openFile(uri)
	if err != nil {
		return nil, err
	}

	ft, ok := h.stringAttribute("/", "File Type")
	if !ok || (ft != "HEC-RAS Results" && ft != "HEC-RAS Geometry") {
		h.Close()
		return nil, mdalerr.New(mdalerr.StatusUnknownFormat, "not a HEC-RAS HDF5 file")
	}

	names, err := listAreas(h)
	if err != nil {
		h.Close()
		return nil, err
	}

	mesh := &Mesh{driverName: d.Name(), uri: uri, h: h}
	vertexStart, faceStart := 0, 0
	for _, name := range names {
		a, err := loadArea(h, name, vertexStart, faceStart)
		if err != nil {
			h.Close()
			return nil, err
		}
		mesh.areas = append(mesh.areas, a)
		mesh.vertices = append(mesh.vertices, a.vertices...)
		for _, f := range a.faces {
			shifted := make([]int, len(f))
			for i, v := range f {
				shifted[i] = v + vertexStart
			}
			mesh.faces = append(mesh.faces, shifted)
		}
		vertexStart += len(a.vertices)
		faceStart += len(a.faces)
	}

	if err := addBedElevationGroup(mesh); err != nil {
		h.Close()
		return nil, err
	}

	return mesh, nil
}

// addBedElevationGroup synthesizes the "Bed Elevation" scalar OnFaces
// group from each area's Cells Minimum Elevation (spec.md §4.11).
func addBedElevationGroup(mesh *Mesh) error {
	values := make([]float64, mesh.FaceCount())
	for _, a := range mesh.areas {
		copy(values[a.faceStart:], a.bedElevation)
	}
	g := model.NewDatasetGroup("Bed Elevation", mesh.driverName, mesh.uri, model.OnFaces, true, mesh.FaceCount(), mesh.FaceCount(), nil)
	if err := g.StartEditing(); err != nil {
		return err
	}
	if _, err := g.AddDataset(mdaltime.RelativeTimestamp{}, values, nil); err != nil {
		return err
	}
	if err := g.CloseEditMode(); err != nil {
		return err
	}
	mesh.AddGroup(g)
	return nil
}

// LoadDatasets reads the unsteady time series and the Summary/Maximums
// groups onto mesh (spec.md §4.11). Missing top-level groups fail with
// UnknownFormat; a missing individual variable just skips that
// dataset group.
func (d *Driver) LoadDatasets(uri string, meshIface model.Mesh) error {
	mesh, ok := meshIface.(*Mesh)
	if !ok {
		return mdalerr.New(mdalerr.StatusIncompatibleMesh, "mesh was not loaded by the HEC-RAS driver")
	}
	h := mesh.h
	if h == nil {
		var err error
		h, err = openFile(uri)
		if err != nil {
			return err
		}
		mesh.h = h
	}

	const outBase = "/Results/Unsteady/Output/Output Blocks/Base Output/Unsteady Time Series/"
	if !h.exists(outBase + "Time") {
		return mdalerr.New(mdalerr.StatusUnknownFormat, "no unsteady time series in file")
	}

	times, err := readTimeAxis(h, outBase+"Time")
	if err != nil {
		return err
	}
	refTime, err := readReferenceTime(h)
	if err != nil {
		return err
	}

	loadConcatenatedVariable(mesh, h, outBase, "Water Surface", model.OnFaces, times, refTime, waterSurfaceTransform)
	loadConcatenatedVariable(mesh, h, outBase, "Depth", model.OnFaces, times, refTime, depthTransform)
	loadFaceAveragedVariable(mesh, h, outBase, "Face Shear Stress", times, refTime)
	loadFaceAveragedVariable(mesh, h, outBase, "Face Velocity", times, refTime)

	loadSummaryMaximum(mesh, h, "Water Surface")
	loadSummaryMaximum(mesh, h, "Velocity")

	return nil
}

func (d *Driver) Save(uri string, mesh model.Mesh) error {
	return mdalerr.New(mdalerr.StatusMissingDriverCapability, "HEC-RAS driver is read-only")
}

func (d *Driver) CreateDatasetGroup(mesh model.Mesh, name string, location model.DataLocation, isScalar bool) (*model.DatasetGroup, error) {
	return nil, mdalerr.New(mdalerr.StatusMissingDriverCapability, "HEC-RAS driver is read-only")
}

func (d *Driver) CreateDataset(group *model.DatasetGroup, time mdaltime.RelativeTimestamp, values []float64, active []bool) (*model.Dataset, error) {
	return nil, mdalerr.New(mdalerr.StatusMissingDriverCapability, "HEC-RAS driver is read-only")
}

func (d *Driver) Persist(group *model.DatasetGroup) error {
	return mdalerr.New(mdalerr.StatusMissingDriverCapability, "HEC-RAS driver is read-only")
}

// waterSurfaceTransform applies the dry-cell NaN rule: |ws - bed| ≤ eps.
func waterSurfaceTransform(v, bed float64) float64 {
	if math.Abs(v-bed) <= eps {
		return math.NaN()
	}
	return v
}

// depthTransform applies the dry-cell NaN rule: |depth| ≤ eps.
func depthTransform(v, bed float64) float64 {
	if math.Abs(v) <= eps {
		return math.NaN()
	}
	return v
}
