package mdalc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdal-go/mdal/internal/mdalerr"
)

const quadAndTriangle2dm = `MESH2D
ND 1 0.0 0.0 10
ND 2 1.0 0.0 30
ND 3 1.0 1.0 15
ND 4 0.0 1.0 20
ND 5 2.0 0.0 5
E4Q 1 1 2 3 4 1
E3T 2 2 5 3 1
`

func writeTempMesh(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.2dm")
	if err := os.WriteFile(path, []byte(quadAndTriangle2dm), 0o644); err != nil {
		t.Fatalf("writing mesh: %v", err)
	}
	return path
}

func TestOpenMeshAndCounts(t *testing.T) {
	h := OpenMesh(writeTempMesh(t))
	if h == 0 {
		t.Fatalf("OpenMesh() = 0, want a valid handle (LastStatus=%v)", LastStatus())
	}
	defer CloseMesh(h)

	if got := MeshVertexCount(h); got != 5 {
		t.Fatalf("MeshVertexCount() = %d, want 5", got)
	}
	if got := MeshFaceCount(h); got != 2 {
		t.Fatalf("MeshFaceCount() = %d, want 2", got)
	}
	if got := MeshEdgeCount(h); got != 0 {
		t.Fatalf("MeshEdgeCount() = %d, want 0", got)
	}
}

func TestOpenMeshUnknownURISetsStatusAndReturnsZero(t *testing.T) {
	h := OpenMesh(filepath.Join(t.TempDir(), "does-not-exist.2dm"))
	if h != 0 {
		t.Fatalf("OpenMesh() = %d, want 0 for a missing file", h)
	}
	if LastStatus() == mdalerr.StatusNone {
		t.Fatalf("LastStatus() = StatusNone, want a failure status")
	}
}

func TestGroupAndDatasetWalk(t *testing.T) {
	h := OpenMesh(writeTempMesh(t))
	if h == 0 {
		t.Fatalf("OpenMesh() returned 0")
	}
	defer CloseMesh(h)

	if got := MeshGroupCount(h); got != 1 {
		t.Fatalf("MeshGroupCount() = %d, want 1", got)
	}
	gh := MeshGroup(h, 0)
	if gh == 0 {
		t.Fatalf("MeshGroup(0) = 0, want a valid handle")
	}
	if got := GroupDatasetCount(gh); got != 1 {
		t.Fatalf("GroupDatasetCount() = %d, want 1", got)
	}
	dh := GroupDataset(gh, 0)
	if dh == 0 {
		t.Fatalf("GroupDataset(0) = 0, want a valid handle")
	}

	buf := make([]float64, 5)
	n := DatasetData(dh, 0, buf)
	if n != 5 {
		t.Fatalf("DatasetData() returned n=%d, want 5", n)
	}
	if buf[1] != 30 {
		t.Fatalf("buf[1] = %v, want 30", buf[1])
	}
}

func TestUnknownHandlesAreReportedAsInvalidData(t *testing.T) {
	if got := MeshVertexCount(MeshH(99999)); got != 0 {
		t.Fatalf("MeshVertexCount() on unknown handle = %d, want 0", got)
	}
	if LastStatus() != mdalerr.StatusInvalidData {
		t.Fatalf("LastStatus() = %v, want StatusInvalidData", LastStatus())
	}

	if got := GroupDatasetCount(DatasetGroupH(99999)); got != 0 {
		t.Fatalf("GroupDatasetCount() on unknown handle = %d, want 0", got)
	}
	if got := DatasetData(DatasetH(99999), 0, make([]float64, 1)); got != 0 {
		t.Fatalf("DatasetData() on unknown handle = %d, want 0", got)
	}
}

func TestCloseMeshOnUnknownHandleIsNoOp(t *testing.T) {
	CloseMesh(MeshH(12345))
	if LastStatus() != mdalerr.StatusNone {
		t.Fatalf("LastStatus() after closing an unknown handle = %v, want StatusNone", LastStatus())
	}
}
