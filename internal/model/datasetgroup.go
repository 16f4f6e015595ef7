package model

import (
	"github.com/mdal-go/mdal/internal/mdalerr"
	"github.com/mdal-go/mdal/internal/mdaltime"
	"github.com/mdal-go/mdal/internal/stats"
)

// editState tracks a DatasetGroup's position in the Reading → Editing →
// Closed lifecycle of spec.md §4.5.
type editState int

const (
	stateReading editState = iota
	stateEditing
	stateClosed
)

// DriverBinding is the narrow slice of the driver contract (spec.md
// §4.7) a DatasetGroup needs: its capability flags, to gate writes, and
// Persist, to flush an edited group back to storage. internal/driver's
// Driver type satisfies this structurally — model never imports driver,
// avoiding an import cycle between the data model and the driver
// registry that owns it.
type DriverBinding interface {
	Name() string
	Capabilities() Capability
	Persist(group *DatasetGroup) error
}

// DatasetGroup is an ordered collection of Datasets sharing a location
// and scalarness (spec.md §3).
type DatasetGroup struct {
	driverName    string
	uri           string
	location      DataLocation
	isScalar      bool
	referenceTime mdaltime.DateTime
	metadata      *Metadata
	datasets      []*Dataset
	elementCount  int
	meshFaceCount int
	driver        DriverBinding
	state         editState

	statsCached bool
	statsValue  stats.Statistics
}

// NewDatasetGroup constructs a group in the Reading state, as a driver
// does immediately after populating it from a file. elementCount is the
// count implied by location (vertex/edge/face/volume count, spec.md §3)
// and is used to validate every Dataset's value buffer (property P3).
// meshFaceCount is the owning mesh's face count, needed independently of
// location because the ACTIVE_INTEGER kind is always face-sized
// (spec.md §4.6) even for a group located elsewhere.
func NewDatasetGroup(name, driverName, uri string, location DataLocation, isScalar bool, elementCount, meshFaceCount int, driver DriverBinding) *DatasetGroup {
	md := NewMetadata()
	md.Set("name", name)
	return &DatasetGroup{
		driverName:    driverName,
		uri:           uri,
		location:      location,
		isScalar:      isScalar,
		referenceTime: mdaltime.Invalid(),
		metadata:      md,
		elementCount:  elementCount,
		meshFaceCount: meshFaceCount,
		driver:        driver,
		state:         stateReading,
	}
}

func (g *DatasetGroup) Name() string {
	v, _ := g.metadata.Get("name")
	return v
}

func (g *DatasetGroup) DriverName() string           { return g.driverName }
func (g *DatasetGroup) URI() string                  { return g.uri }
func (g *DatasetGroup) Location() DataLocation        { return g.location }
func (g *DatasetGroup) IsScalar() bool                { return g.isScalar }
func (g *DatasetGroup) ReferenceTime() mdaltime.DateTime { return g.referenceTime }
func (g *DatasetGroup) SetReferenceTime(t mdaltime.DateTime) { g.referenceTime = t }
func (g *DatasetGroup) Metadata() *Metadata           { return g.metadata }
func (g *DatasetGroup) Datasets() []*Dataset          { return g.datasets }
func (g *DatasetGroup) ElementCount() int             { return g.elementCount }

// AppendDatasetReading is used by drivers while populating a group
// during a load, before it is ever put into edit mode. Readers must
// publish datasets in time-ascending order (spec.md §5); drivers that
// read out of order sort before calling this.
func (g *DatasetGroup) AppendDatasetReading(d *Dataset) {
	d.group = g
	g.datasets = append(g.datasets, d)
	g.statsCached = false
}

// StartEditing transitions the group into Editing, allowing AddDataset
// calls. Returns an error if the group is already editing.
func (g *DatasetGroup) StartEditing() error {
	if g.state == stateEditing {
		return mdalerr.New(mdalerr.StatusIncompatibleDatasetGroup, "group is already in edit mode")
	}
	g.state = stateEditing
	return nil
}

// IsEditing reports whether the group currently accepts AddDataset calls.
func (g *DatasetGroup) IsEditing() bool { return g.state == stateEditing }

// AddDataset appends a new Dataset built from values (and, for vertex
// groups, an optional active-flag buffer), per spec.md §4.5's
// IncompatibleDataset rules:
//   - the group must be in edit mode;
//   - values' length must match the group's scalar/vector element count;
//   - active is only accepted for OnVertices groups;
//   - the owning driver must have the write capability for this location.
func (g *DatasetGroup) AddDataset(time mdaltime.RelativeTimestamp, values []float64, active []bool) (*Dataset, error) {
	if g.state != stateEditing {
		return nil, mdalerr.New(mdalerr.StatusIncompatibleDataset, "group is not in edit mode")
	}

	wantLen := g.elementCount
	if !g.isScalar {
		wantLen = g.elementCount * 2
	}
	if len(values) != wantLen {
		return nil, mdalerr.New(mdalerr.StatusIncompatibleDataset, "value buffer length does not match group element count")
	}

	if active != nil && g.location != OnVertices {
		return nil, mdalerr.New(mdalerr.StatusIncompatibleDataset, "active flags are only accepted for OnVertices groups")
	}

	if g.driver != nil && !g.driver.Capabilities().Has(writeCapabilityFor(g.location)) {
		return nil, mdalerr.New(mdalerr.StatusMissingDriverCapability, "driver cannot write datasets at "+g.location.String())
	}

	d := newDataset(g, time)
	if g.isScalar {
		d.sources[ScalarDouble] = NewMemoryValueSource(values, 1)
	} else {
		d.sources[Vector2DDouble] = NewMemoryValueSource(values, 2)
	}
	if active != nil {
		d.sources[ActiveInteger] = NewMemoryValueSource(boolsToFloats(active), 1)
	}
	g.datasets = append(g.datasets, d)
	g.statsCached = false
	return d, nil
}

// CloseEditMode leaves Editing, recomputes the group's cached
// statistics, and asks the owning driver to persist the group
// (spec.md §4.5).
func (g *DatasetGroup) CloseEditMode() error {
	if g.state != stateEditing {
		return mdalerr.New(mdalerr.StatusIncompatibleDatasetGroup, "group is not in edit mode")
	}
	g.state = stateClosed
	g.Statistics()
	if g.driver == nil {
		return nil
	}
	return g.driver.Persist(g)
}

// Statistics returns the group's cached min/max across all of its
// datasets, computing it on first access.
func (g *DatasetGroup) Statistics() stats.Statistics {
	if g.statsCached {
		return g.statsValue
	}
	total := stats.Invalid()
	for _, d := range g.datasets {
		total = stats.Merge(total, d.Statistics())
	}
	g.statsValue = total
	g.statsCached = true
	return total
}
