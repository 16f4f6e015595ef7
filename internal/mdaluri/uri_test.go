package mdaluri

import "testing"

func TestParseDriverQuotedPathWithMeshName(t *testing.T) {
	p, err := Parse(`Ugrid:"/tmp/a b.nc":mesh2d`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Driver != "Ugrid" || p.Path != "/tmp/a b.nc" || p.MeshName != "mesh2d" || p.MeshID != 0 {
		t.Fatalf("unexpected parse: %+v", p)
	}
}

func TestParseQuotedPathWithMeshIndex(t *testing.T) {
	p, err := Parse(`"/tmp/a b.nc":3`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Driver != "" || p.Path != "/tmp/a b.nc" || p.MeshName != "" || p.MeshID != 3 {
		t.Fatalf("unexpected parse: %+v", p)
	}
}

func TestParseBarePath(t *testing.T) {
	p, err := Parse("/home/user/mesh.2dm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Driver != "" || p.Path != "/home/user/mesh.2dm" || p.MeshName != "" || p.MeshID != 0 {
		t.Fatalf("unexpected parse: %+v", p)
	}
}

func TestParseDriverWithoutQuoteIsInvalid(t *testing.T) {
	_, err := Parse("Selafin:/home/user/mesh.slf")
	if err == nil {
		t.Fatalf("expected error: driver prefix without quoted path")
	}
}

// TestFormatInvertibility checks property P5.
func TestFormatInvertibility(t *testing.T) {
	cases := []string{
		`Ugrid:"/tmp/a b.nc":mesh2d`,
		`"/tmp/a b.nc":3`,
		`/home/user/mesh.2dm`,
	}
	for _, u := range cases {
		p, err := Parse(u)
		if err != nil {
			t.Fatalf("parse(%q): %v", u, err)
		}
		got := Format(p)
		reparsed, err := Parse(got)
		if err != nil {
			t.Fatalf("reparse of formatted URI %q failed: %v", got, err)
		}
		if reparsed != p {
			t.Fatalf("round trip mismatch for %q: got %+v, want %+v", u, reparsed, p)
		}
	}
}
