package model

import (
	"github.com/mdal-go/mdal/internal/mdaltime"
	"github.com/mdal-go/mdal/internal/stats"
)

// Dataset is one time-step's worth of values within a DatasetGroup
// (spec.md §3), exposing the uniform kind-based random-access API of
// §4.6.
type Dataset struct {
	group   *DatasetGroup
	time    mdaltime.RelativeTimestamp
	isValid bool
	sources map[ValueKind]ValueSource
	volume  *VolumeInfo

	statsCached bool
	statsValue  stats.Statistics
}

func newDataset(group *DatasetGroup, time mdaltime.RelativeTimestamp) *Dataset {
	return &Dataset{
		group:   group,
		time:    time,
		isValid: true,
		sources: make(map[ValueKind]ValueSource),
	}
}

// NewDataset is the constructor drivers use to build a Dataset directly
// (outside of DatasetGroup.AddDataset's edit-mode path), attaching
// whichever ValueSources the driver can actually serve. Kinds with no
// entry in sources report 0 from Data, per spec.md §4.6.
func NewDataset(group *DatasetGroup, time mdaltime.RelativeTimestamp, sources map[ValueKind]ValueSource, volume *VolumeInfo) *Dataset {
	d := newDataset(group, time)
	for k, v := range sources {
		d.sources[k] = v
	}
	d.volume = volume
	return d
}

func (d *Dataset) Group() *DatasetGroup               { return d.group }
func (d *Dataset) Time() mdaltime.RelativeTimestamp    { return d.time }
func (d *Dataset) IsValid() bool                       { return d.isValid }
func (d *Dataset) SetValid(v bool)                     { d.isValid = v }
func (d *Dataset) HasActiveFlagCapability() bool {
	_, ok := d.sources[ActiveInteger]
	return ok
}

// ValueCount is the element count implied by the group's location
// (spec.md §3); it equals RequiredCount(ScalarDouble) or
// RequiredCount(Vector2DDouble), whichever matches the group's scalarness.
func (d *Dataset) ValueCount() int {
	kind := ScalarDouble
	if !d.group.isScalar {
		kind = Vector2DDouble
	}
	n, _ := d.RequiredCount(kind)
	return n
}

// width reports how many float64s make up one element of kind.
func width(kind ValueKind) int {
	switch kind {
	case Vector2DDouble, Vector2DVolumesDouble:
		return 2
	default:
		return 1
	}
}

// RequiredCount returns the element count a dataset of this group/volume
// shape requires for kind, and whether kind is even compatible with this
// dataset (spec.md §4.6). 3D kinds are only valid on OnVolumes3D groups
// and vice versa.
func (d *Dataset) RequiredCount(kind ValueKind) (int, bool) {
	g := d.group
	is3D := g.location == OnVolumes3D
	switch kind {
	case ScalarDouble:
		if is3D || !g.isScalar {
			return 0, false
		}
		return g.elementCount, true
	case Vector2DDouble:
		if is3D || g.isScalar {
			return 0, false
		}
		return g.elementCount, true
	case ActiveInteger:
		return g.meshFaceCount, true
	case VerticalLevelCountInteger, FaceIndexToVolumeIndexInteger:
		if !is3D {
			return 0, false
		}
		return g.meshFaceCount, true
	case VerticalLevelDouble:
		if !is3D || d.volume == nil {
			return 0, false
		}
		return g.meshFaceCount + d.volume.VolumesCount, true
	case ScalarVolumesDouble:
		if !is3D || !g.isScalar || d.volume == nil {
			return 0, false
		}
		return d.volume.VolumesCount, true
	case Vector2DVolumesDouble:
		if !is3D || g.isScalar || d.volume == nil {
			return 0, false
		}
		return d.volume.VolumesCount, true
	default:
		return 0, false
	}
}

// Data copies count elements of kind starting at offset into buf (which
// must be at least count*width(kind) long) and returns how many
// elements were actually written. It returns 0 if offset+count exceeds
// the kind's required element count, if kind is incompatible with this
// dataset's location/scalarness, or if this dataset carries no source
// for kind (spec.md §4.6).
func (d *Dataset) Data(offset, count int, kind ValueKind, buf []float64) int {
	if offset < 0 || count < 0 {
		return 0
	}
	required, ok := d.RequiredCount(kind)
	if !ok || offset+count > required {
		return 0
	}
	src, ok := d.sources[kind]
	if !ok {
		return 0
	}
	if len(buf) < count*width(kind) {
		return 0
	}
	n, err := src.Read(offset, count, buf)
	if err != nil {
		return 0
	}
	return n
}

// Statistics returns the dataset's cached min/max, skipping NaN values
// (spec.md §4.1), computing it on first access.
func (d *Dataset) Statistics() stats.Statistics {
	if d.statsCached {
		return d.statsValue
	}
	kind := ScalarDouble
	if !d.group.isScalar {
		kind = Vector2DDouble
	}
	n := d.ValueCount()
	buf := make([]float64, n*width(kind))
	got := d.Data(0, n, kind, buf)
	buf = buf[:got*width(kind)]

	var s stats.Statistics
	if kind == ScalarDouble {
		s = stats.FromScalars(buf)
	} else {
		s = stats.FromVectors(buf)
	}
	d.statsValue = s
	d.statsCached = true
	return s
}

// Volume returns the dataset's 3D layering metadata, or nil for a
// non-OnVolumes3D dataset.
func (d *Dataset) Volume() *VolumeInfo { return d.volume }
