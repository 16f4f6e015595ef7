package driver

import (
	"os"
	"path/filepath"
	"plugin"
	"sync"

	"github.com/mdal-go/mdal/internal/dynload"
	"github.com/mdal-go/mdal/internal/mdalerr"
	"github.com/mdal-go/mdal/internal/mdallog"
	"github.com/mdal-go/mdal/internal/mdaluri"
	"github.com/mdal-go/mdal/internal/model"
)

// Manager is the registry and sniffing loop of spec.md §4.8. Drivers
// are tried in registration order, mirroring the teacher's static
// registration-order convention carried over from
// mdal_driver_manager.cpp's driver list (see DESIGN.md).
type Manager struct {
	mu      sync.Mutex
	drivers []Driver
	byName  map[string]Driver
}

// NewManager returns an empty registry. Callers register the built-in
// drivers (and any dynamic ones under driverPath) with Register and
// LoadDynamicDrivers.
func NewManager() *Manager {
	return &Manager{byName: make(map[string]Driver)}
}

// Register appends d to the registry, in the order drivers are tried
// when a URI names no explicit driver.
func (m *Manager) Register(d Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers = append(m.drivers, d)
	m.byName[d.Name()] = d
}

// Drivers returns the registered drivers in registration order.
func (m *Manager) Drivers() []Driver {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Driver, len(m.drivers))
	copy(out, m.drivers)
	return out
}

// ByName looks up a registered driver by its short name.
func (m *Manager) ByName(name string) (Driver, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byName[name]
	return d, ok
}

// LoadDynamicDrivers scans dir (typically MDAL_DRIVER_PATH) for Go
// plugin objects and registers every driver they export, per spec.md
// §4.12. A directory that does not exist is silently skipped: dynamic
// drivers are optional.
func (m *Manager) LoadDynamicDrivers(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return mdalerr.Wrap(mdalerr.StatusInvalidData, "reading driver directory", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".so" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		p, err := plugin.Open(path)
		if err != nil {
			mdallog.Warnf("dynload", "failed to open plugin %s: %v", path, err)
			continue
		}
		sym, err := dynload.Resolve(p)
		if err != nil {
			mdallog.Warnf("dynload", "failed to resolve driver symbol in %s: %v", path, err)
			continue
		}
		d, ok := sym.(Driver)
		if !ok {
			mdallog.Warnf("dynload", "plugin %s does not export a Driver", path)
			continue
		}
		if _, exists := m.ByName(d.Name()); exists {
			mdallog.Warnf("dynload", "plugin %s driver %q duplicates a registered driver name, skipping", path, d.Name())
			continue
		}
		m.Register(d)
	}
	return nil
}

// Load implements spec.md §4.8's load algorithm: parse the URI, then
// either dispatch to the named driver or sniff registered ReadMesh
// drivers in registration order.
func (m *Manager) Load(uri string) (model.Mesh, error) {
	parsed, err := mdaluri.Parse(uri)
	if err != nil {
		return nil, err
	}

	if parsed.Driver != "" {
		d, ok := m.ByName(parsed.Driver)
		if !ok {
			return nil, mdalerr.New(mdalerr.StatusMissingDriver, "unknown driver: "+parsed.Driver)
		}
		return d.Load(parsed.Path, parsed.MeshName)
	}

	for _, d := range m.Drivers() {
		if !d.Capabilities().Has(model.CapReadMesh) {
			continue
		}
		if d.CanReadMesh(parsed.Path) {
			return d.Load(parsed.Path, parsed.MeshName)
		}
	}
	return nil, mdalerr.New(mdalerr.StatusUnknownFormat, "no registered driver recognised: "+parsed.Path)
}

// LoadDatasets implements the analogous algorithm for loading an extra
// dataset file onto an already-loaded mesh (spec.md §4.8).
func (m *Manager) LoadDatasets(uri string, mesh model.Mesh) error {
	parsed, err := mdaluri.Parse(uri)
	if err != nil {
		return err
	}

	if parsed.Driver != "" {
		d, ok := m.ByName(parsed.Driver)
		if !ok {
			return mdalerr.New(mdalerr.StatusMissingDriver, "unknown driver: "+parsed.Driver)
		}
		return d.LoadDatasets(parsed.Path, mesh)
	}

	for _, d := range m.Drivers() {
		if !d.Capabilities().Has(model.CapReadDatasets) {
			continue
		}
		if d.CanReadDatasets(parsed.Path) {
			return d.LoadDatasets(parsed.Path, mesh)
		}
	}
	return mdalerr.New(mdalerr.StatusUnknownFormat, "no registered driver recognised dataset file: "+parsed.Path)
}

// Save parses uri and dispatches to the driver it names, or to the
// mesh's own driver when uri names none, passing that driver the
// unquoted path. It fails with MissingDriverCapability if the chosen
// driver cannot save meshes.
func (m *Manager) Save(uri string, mesh model.Mesh) error {
	parsed, err := mdaluri.Parse(uri)
	if err != nil {
		return err
	}
	name := parsed.Driver
	if name == "" {
		name = mesh.DriverName()
	}
	d, ok := m.ByName(name)
	if !ok {
		return mdalerr.New(mdalerr.StatusMissingDriver, "unknown driver: "+name)
	}
	if !d.Capabilities().Has(model.CapSaveMesh) {
		return mdalerr.New(mdalerr.StatusMissingDriverCapability, "driver cannot save meshes: "+name)
	}
	return d.Save(parsed.Path, mesh)
}
