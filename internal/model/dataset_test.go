package model

import (
	"math"
	"testing"

	"github.com/mdal-go/mdal/internal/mdaltime"
)

type allowAllDriver struct{}

func (allowAllDriver) Name() string            { return "test" }
func (allowAllDriver) Capabilities() Capability { return math.MaxUint32 }
func (allowAllDriver) Persist(*DatasetGroup) error { return nil }

func TestAddDatasetRejectsWrongLength(t *testing.T) {
	g := NewDatasetGroup("depth", "test", "mem://", OnVertices, true, 3, 2, allowAllDriver{})
	if err := g.StartEditing(); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddDataset(mdaltime.RelativeTimestamp{}, []float64{1, 2}, nil); err == nil {
		t.Fatal("expected IncompatibleDataset error for short buffer")
	}
}

func TestAddDatasetRejectsActiveOnNonVertexLocation(t *testing.T) {
	g := NewDatasetGroup("depth", "test", "mem://", OnFaces, true, 2, 2, allowAllDriver{})
	if err := g.StartEditing(); err != nil {
		t.Fatal(err)
	}
	active := []bool{true, false}
	if _, err := g.AddDataset(mdaltime.RelativeTimestamp{}, []float64{1, 2}, active); err == nil {
		t.Fatal("expected IncompatibleDataset error for active flags on OnFaces group")
	}
}

func TestDatasetDataScalarRoundTrip(t *testing.T) {
	g := NewDatasetGroup("depth", "test", "mem://", OnVertices, true, 3, 3, allowAllDriver{})
	if err := g.StartEditing(); err != nil {
		t.Fatal(err)
	}
	d, err := g.AddDataset(mdaltime.RelativeTimestamp{}, []float64{1, 2, 3}, nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]float64, 3)
	if n := d.Data(0, 3, ScalarDouble, buf); n != 3 {
		t.Fatalf("Data returned %d, want 3", n)
	}
	if buf[0] != 1 || buf[1] != 2 || buf[2] != 3 {
		t.Fatalf("unexpected values %v", buf)
	}
	// Incompatible kind for a scalar group returns 0.
	if n := d.Data(0, 3, Vector2DDouble, buf); n != 0 {
		t.Fatalf("Data on mismatched kind returned %d, want 0", n)
	}
}

func TestDatasetDataOffsetOverflowReturnsZero(t *testing.T) {
	g := NewDatasetGroup("depth", "test", "mem://", OnVertices, true, 3, 3, allowAllDriver{})
	if err := g.StartEditing(); err != nil {
		t.Fatal(err)
	}
	d, err := g.AddDataset(mdaltime.RelativeTimestamp{}, []float64{1, 2, 3}, nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]float64, 3)
	if n := d.Data(2, 5, ScalarDouble, buf); n != 0 {
		t.Fatalf("Data past end returned %d, want 0", n)
	}
}

func TestDatasetActiveFlagsOnVertices(t *testing.T) {
	g := NewDatasetGroup("depth", "test", "mem://", OnVertices, true, 2, 4, allowAllDriver{})
	if err := g.StartEditing(); err != nil {
		t.Fatal(err)
	}
	active := []bool{true, false, true, false}
	d, err := g.AddDataset(mdaltime.RelativeTimestamp{}, []float64{1, 2}, active)
	if err != nil {
		t.Fatal(err)
	}
	if !d.HasActiveFlagCapability() {
		t.Fatal("expected active flag capability")
	}
	buf := make([]float64, 4)
	if n := d.Data(0, 4, ActiveInteger, buf); n != 4 {
		t.Fatalf("Data(ActiveInteger) returned %d, want 4", n)
	}
	if buf[0] != 1 || buf[1] != 0 || buf[2] != 1 || buf[3] != 0 {
		t.Fatalf("unexpected active flags %v", buf)
	}
}

func TestGroupStatisticsSkipsNaN(t *testing.T) {
	g := NewDatasetGroup("depth", "test", "mem://", OnVertices, true, 3, 3, allowAllDriver{})
	if err := g.StartEditing(); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddDataset(mdaltime.RelativeTimestamp{}, []float64{1, math.NaN(), 5}, nil); err != nil {
		t.Fatal(err)
	}
	if err := g.CloseEditMode(); err != nil {
		t.Fatal(err)
	}
	s := g.Statistics()
	if !s.IsValid || s.Min != 1 || s.Max != 5 {
		t.Fatalf("unexpected statistics %+v", s)
	}
}

func TestAddDatasetRejectsWhenNotEditing(t *testing.T) {
	g := NewDatasetGroup("depth", "test", "mem://", OnVertices, true, 1, 1, allowAllDriver{})
	if _, err := g.AddDataset(mdaltime.RelativeTimestamp{}, []float64{1}, nil); err == nil {
		t.Fatal("expected error adding a dataset before StartEditing")
	}
}

func TestVolumeKindsRequireOnVolumes3D(t *testing.T) {
	g := NewDatasetGroup("depth", "test", "mem://", OnFaces, true, 2, 2, allowAllDriver{})
	d := newDataset(g, mdaltime.RelativeTimestamp{})
	if _, ok := d.RequiredCount(ScalarVolumesDouble); ok {
		t.Fatal("ScalarVolumesDouble should be incompatible with an OnFaces group")
	}
}
