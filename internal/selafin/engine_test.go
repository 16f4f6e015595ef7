package selafin

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdal-go/mdal/internal/model"
)

// writeRecord frames payload as one Fortran record: a u32 length, the
// bytes, and a trailing matching u32 length.
func writeRecord(buf *bytes.Buffer, payload []byte) {
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
}

func writeInt32Record(buf *bytes.Buffer, vals ...int32) {
	var payload bytes.Buffer
	for _, v := range vals {
		binary.Write(&payload, binary.LittleEndian, v)
	}
	writeRecord(buf, payload.Bytes())
}

func writeFloat32Record(buf *bytes.Buffer, vals ...float32) {
	var payload bytes.Buffer
	for _, v := range vals {
		binary.Write(&payload, binary.LittleEndian, v)
	}
	writeRecord(buf, payload.Bytes())
}

// buildSyntheticSelafin assembles a minimal single-precision, single
// time step Selafin file: one triangle, three vertices, and one scalar
// variable named "BOTTOM" holding [10, 20, 30].
func buildSyntheticSelafin(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer

	title := make([]byte, 80)
	copy(title, []byte("synthetic test mesh"))
	writeRecord(&buf, title)

	writeInt32Record(&buf, 1, 0) // nbv1, nbv2

	varName := bytes.Repeat([]byte(" "), 32)
	copy(varName, []byte("BOTTOM"))
	writeRecord(&buf, varName)

	writeInt32Record(&buf, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0) // params, date flag off, 3D flag off

	writeInt32Record(&buf, 1, 3, 3, 3) // nElem, nPoint, ndp, unused
	writeInt32Record(&buf, 1, 2, 3)    // ikle, 1-based
	writeInt32Record(&buf, 0, 0, 0)    // ipobo

	writeFloat32Record(&buf, 0, 1, 0) // X
	writeFloat32Record(&buf, 0, 0, 1) // Y

	writeFloat32Record(&buf, 0)             // time step 0 = 0.0s
	writeFloat32Record(&buf, 10, 20, 30)    // BOTTOM values

	path := filepath.Join(t.TempDir(), "synthetic.slf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing synthetic file: %v", err)
	}
	return path
}

func TestDriverCanReadMeshAcceptsSyntheticFile(t *testing.T) {
	path := buildSyntheticSelafin(t)
	d := New()
	if !d.CanReadMesh(path) {
		t.Fatalf("CanReadMesh() = false, want true for a valid synthetic file")
	}
}

func TestDriverLoadBuildsVerticesFacesAndDataset(t *testing.T) {
	path := buildSyntheticSelafin(t)
	d := New()

	mesh, err := d.Load(path, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer mesh.Close()

	if got := mesh.VertexCount(); got != 3 {
		t.Fatalf("VertexCount() = %d, want 3", got)
	}
	if got := mesh.FaceCount(); got != 1 {
		t.Fatalf("FaceCount() = %d, want 1", got)
	}

	groups := mesh.Groups()
	if len(groups) != 1 {
		t.Fatalf("Groups() = %d, want 1", len(groups))
	}
	g := groups[0]
	if g.Name() != "BOTTOM" {
		t.Fatalf("group name = %q, want BOTTOM", g.Name())
	}
	if !g.IsScalar() {
		t.Fatalf("group should be scalar")
	}
	if len(g.Datasets()) != 1 {
		t.Fatalf("Datasets() = %d, want 1", len(g.Datasets()))
	}

	buf := make([]float64, 3)
	n := g.Datasets()[0].Data(0, 3, model.ScalarDouble, buf)
	if n != 3 {
		t.Fatalf("Data() returned n=%d, want 3", n)
	}
	want := []float64{10, 20, 30}
	for i, v := range want {
		if buf[i] != v {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], v)
		}
	}
}

func TestDriverCanReadMeshRejectsNonSelafinFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notselafin.txt")
	if err := os.WriteFile(path, []byte("MESH2D\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	d := New()
	if d.CanReadMesh(path) {
		t.Fatalf("CanReadMesh() = true, want false for a non-Selafin file")
	}
}
