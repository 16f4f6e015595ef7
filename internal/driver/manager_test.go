package driver

import (
	"testing"
)

func newTestManager() *Manager {
	m := NewManager()
	m.Register(NewTwoDM())
	m.Register(NewPLY())
	return m
}

func TestManagerLoadSniffsRegisteredDriver(t *testing.T) {
	path := writeTempFile(t, "mesh.2dm", quadAndTriangle2dm)
	m := newTestManager()

	mesh, err := m.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer mesh.Close()
	if mesh.DriverName() != "2DM" {
		t.Fatalf("DriverName() = %q, want 2DM", mesh.DriverName())
	}
}

func TestManagerLoadHonoursExplicitDriverName(t *testing.T) {
	path := writeTempFile(t, "mesh.2dm", quadAndTriangle2dm)
	m := newTestManager()

	uri := `2DM:"` + path + `"`
	mesh, err := m.Load(uri)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer mesh.Close()
	if mesh.DriverName() != "2DM" {
		t.Fatalf("DriverName() = %q, want 2DM", mesh.DriverName())
	}
}

func TestManagerLoadReturnsUnknownFormatWhenNoDriverMatches(t *testing.T) {
	path := writeTempFile(t, "plain.txt", "nothing recognisable here\n")
	m := newTestManager()

	if _, err := m.Load(path); err == nil {
		t.Fatalf("Load() error = nil, want UnknownFormat")
	}
}

func TestManagerLoadReturnsMissingDriverForUnknownExplicitName(t *testing.T) {
	path := writeTempFile(t, "mesh.2dm", quadAndTriangle2dm)
	m := newTestManager()

	uri := `NoSuchDriver:"` + path + `"`
	if _, err := m.Load(uri); err == nil {
		t.Fatalf("Load() error = nil, want MissingDriver")
	}
}

func TestManagerByNameAndDriversReflectRegistrationOrder(t *testing.T) {
	m := newTestManager()
	drivers := m.Drivers()
	if len(drivers) != 2 || drivers[0].Name() != "2DM" || drivers[1].Name() != "PLY" {
		t.Fatalf("Drivers() = %v, want [2DM PLY] in registration order", drivers)
	}
	if _, ok := m.ByName("PLY"); !ok {
		t.Fatalf("ByName(PLY) not found")
	}
}
