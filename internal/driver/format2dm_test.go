package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdal-go/mdal/internal/model"
)

// quadAndTriangle2dm mirrors spec.md §8 scenario S1: a mesh with one
// quad and one triangle, where node 2's Z coordinate (30) becomes the
// synthesized Bed Elevation dataset's second value.
const quadAndTriangle2dm = `MESH2D
ND 1 0.0 0.0 10
ND 2 1.0 0.0 30
ND 3 1.0 1.0 15
ND 4 0.0 1.0 20
ND 5 2.0 0.0 5
E4Q 1 1 2 3 4 1
E3T 2 2 5 3 1
`

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestTwoDMCanReadMesh(t *testing.T) {
	path := writeTempFile(t, "mesh.2dm", quadAndTriangle2dm)
	d := NewTwoDM()
	if !d.CanReadMesh(path) {
		t.Fatalf("CanReadMesh() = false, want true")
	}
}

func TestTwoDMCanReadMeshRejectsOtherFormats(t *testing.T) {
	path := writeTempFile(t, "notmesh.2dm", "NOT A MESH\n")
	d := NewTwoDM()
	if d.CanReadMesh(path) {
		t.Fatalf("CanReadMesh() = true, want false")
	}
}

func TestTwoDMLoadParsesNodesAndElements(t *testing.T) {
	path := writeTempFile(t, "mesh.2dm", quadAndTriangle2dm)
	d := NewTwoDM()

	mesh, err := d.Load(path, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer mesh.Close()

	if got := mesh.VertexCount(); got != 5 {
		t.Fatalf("VertexCount() = %d, want 5", got)
	}
	if got := mesh.FaceCount(); got != 2 {
		t.Fatalf("FaceCount() = %d, want 2", got)
	}
	if got := mesh.FaceVerticesMaximumCount(); got != 4 {
		t.Fatalf("FaceVerticesMaximumCount() = %d, want 4", got)
	}

	groups := mesh.Groups()
	if len(groups) != 1 || groups[0].Name() != "Bed Elevation" {
		t.Fatalf("expected a single Bed Elevation group, got %#v", groups)
	}
	ds := groups[0].Datasets()
	if len(ds) != 1 {
		t.Fatalf("Datasets() = %d, want 1", len(ds))
	}

	buf := make([]float64, 5)
	n := ds[0].Data(0, 5, model.ScalarDouble, buf)
	if n != 5 {
		t.Fatalf("Data() returned n=%d, want 5", n)
	}
	if buf[1] != 30 {
		t.Fatalf("buf[1] = %v, want 30 (scenario S1)", buf[1])
	}
}

func TestTwoDMLoadRejectsMissingHeader(t *testing.T) {
	path := writeTempFile(t, "noheader.2dm", "ND 1 0.0 0.0 0.0\n")
	d := NewTwoDM()
	if _, err := d.Load(path, ""); err == nil {
		t.Fatalf("Load() error = nil, want an error for a missing MESH2D header")
	}
}

func TestTwoDMLoadRejectsElementWithUnknownNode(t *testing.T) {
	contents := "MESH2D\nND 1 0.0 0.0 0.0\nE3T 1 1 2 3 1\n"
	path := writeTempFile(t, "badelem.2dm", contents)
	d := NewTwoDM()
	if _, err := d.Load(path, ""); err == nil {
		t.Fatalf("Load() error = nil, want an error for an element referencing an unknown node")
	}
}
